// =============================================================================
// Order Transformer - Blob Polling Worker
// =============================================================================
//
// This module is the unattended driver around the transformation pipeline.
// On a fixed interval it lists the input prefix for new blobs and feeds each
// one through the pipeline:
//
//   success -> write JSON to output/, move the input to processed/
//              (plus an XLSX validation report when findings exist)
//   failure -> move the input to failed/
//
// CONCURRENCY:
//   Blobs within a cycle are processed concurrently up to MaxConcurrency.
//   A mutex-guarded in-flight set guarantees at most one invocation per
//   blob name at a time; the pipeline itself is stateless, so independent
//   blobs need no further coordination.
//
// ERROR ISOLATION:
//   A failure on one blob never affects the others, and a cycle-level error
//   (e.g. the storage listing failing) is logged and swallowed so the poll
//   loop keeps running.
//
// =============================================================================

package worker

import (
	"context"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nordicerp/order-transformer/internal/config"
	"github.com/nordicerp/order-transformer/internal/model"
	"github.com/nordicerp/order-transformer/internal/pipeline"
	"github.com/nordicerp/order-transformer/internal/report"
	"github.com/nordicerp/order-transformer/internal/storage"
)

// Worker polls a blob store and routes each input through the pipeline.
type Worker struct {
	store    storage.Store
	pipeline *pipeline.Pipeline
	logger   *logrus.Logger
	cfg      config.StorageConfig
	interval time.Duration
	maxConc  int
	reports  bool

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// New builds a worker from the loaded configuration.
func New(store storage.Store, pipe *pipeline.Pipeline, logger *logrus.Logger, cfg *config.Config) *Worker {
	return &Worker{
		store:    store,
		pipeline: pipe,
		logger:   logger,
		cfg:      cfg.Storage,
		interval: time.Duration(cfg.Worker.PollingIntervalSeconds) * time.Second,
		maxConc:  cfg.Worker.MaxConcurrency,
		reports:  !cfg.Worker.DisableValidationReports,
		inFlight: make(map[string]struct{}),
	}
}

// =============================================================================
// POLL LOOP
// =============================================================================

// Run polls until the context is cancelled. Cycle errors are logged and
// never stop the loop.
func (w *Worker) Run(ctx context.Context) {
	w.logger.WithFields(logrus.Fields{
		"interval": w.interval.String(),
		"prefix":   w.cfg.InputPrefix,
	}).Info("polling worker started")

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("polling worker stopped")
			return
		default:
		}

		if err := w.PollOnce(ctx); err != nil {
			w.logger.WithField("error", err.Error()).Error("error during polling cycle")
		}

		select {
		case <-ctx.Done():
			w.logger.Info("polling worker stopped")
			return
		case <-time.After(w.interval):
		}
	}
}

// PollOnce runs a single polling cycle: list the input prefix and process
// every blob not already in flight, then wait for the cycle to drain.
func (w *Worker) PollOnce(ctx context.Context) error {
	cycleID := uuid.NewString()

	names, err := w.store.List(ctx, w.cfg.InputPrefix)
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, w.maxConc)

	for _, name := range names {
		if ctx.Err() != nil {
			break
		}
		if !w.acquire(name) {
			continue
		}

		wg.Add(1)
		sem <- struct{}{}

		go func(name string) {
			defer wg.Done()
			defer func() { <-sem }()
			defer w.release(name)

			w.processBlob(ctx, cycleID, name)
		}(name)
	}

	wg.Wait()
	return nil
}

// acquire reserves a blob name, reporting false when it is already being
// processed.
func (w *Worker) acquire(name string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, busy := w.inFlight[name]; busy {
		return false
	}
	w.inFlight[name] = struct{}{}
	return true
}

func (w *Worker) release(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.inFlight, name)
}

// =============================================================================
// PER-BLOB PROCESSING
// =============================================================================

// processBlob runs one blob end to end. Storage errors leave the blob in
// place so a later cycle retries it.
func (w *Worker) processBlob(ctx context.Context, cycleID, name string) {
	log := w.logger.WithFields(logrus.Fields{
		"cycle": cycleID,
		"blob":  name,
	})

	log.Info("found new blob")

	data, err := w.store.Read(ctx, name)
	if err != nil {
		log.WithField("error", err.Error()).Error("failed to read blob")
		return
	}

	result := w.pipeline.Process(string(data), name)
	base := baseName(name, w.cfg.InputPrefix)

	if !result.Success {
		if err := w.store.Move(ctx, name, w.cfg.FailedPrefix+path.Base(name)); err != nil {
			log.WithField("error", err.Error()).Error("failed to move blob to failed prefix")
			return
		}
		log.WithField("error", result.ErrorMessage).Warn("failed to process blob")
		return
	}

	outputName := w.cfg.OutputPrefix + base + ".json"
	if err := w.store.Write(ctx, outputName, []byte(result.JSON)); err != nil {
		log.WithField("error", err.Error()).Error("failed to write output blob")
		return
	}

	if w.reports && len(result.ValidationErrors) > 0 {
		w.writeReport(ctx, log, base, result.SourceName, result.ValidationErrors)
	}

	if err := w.store.Move(ctx, name, w.cfg.ProcessedPrefix+path.Base(name)); err != nil {
		log.WithField("error", err.Error()).Error("failed to move blob to processed prefix")
		return
	}

	log.WithFields(logrus.Fields{
		"output":     outputName,
		"errorCount": len(result.ValidationErrors),
	}).Info("processed blob")
}

// writeReport emits the XLSX findings workbook. Report failures are logged
// but never fail the blob: the JSON output is already persisted.
func (w *Worker) writeReport(ctx context.Context, log *logrus.Entry, base, source string, findings []model.ValidationError) {
	workbook, err := report.Build(source, findings, time.Now())
	if err != nil {
		log.WithField("error", err.Error()).Error("failed to render validation report")
		return
	}

	reportName := w.cfg.ReportsPrefix + base + ".xlsx"
	if err := w.store.Write(ctx, reportName, workbook); err != nil {
		log.WithField("error", err.Error()).Error("failed to write validation report")
		return
	}

	log.WithField("report", reportName).Info("wrote validation report")
}

// baseName strips the input prefix and file extension from a blob name,
// leaving the stem output artifacts are named after.
func baseName(name, inputPrefix string) string {
	base := path.Base(strings.TrimPrefix(name, inputPrefix))
	return strings.TrimSuffix(base, path.Ext(base))
}
