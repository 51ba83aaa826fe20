// =============================================================================
// Order Transformer - Transformation Pipeline
// =============================================================================
//
// This module composes the four stages into one operation:
//
//   Parse XML -> Validate -> Map fields -> Write JSON
//
// The pipeline is purely synchronous and performs no I/O; reading the source
// text and persisting the output belong to the polling worker. It is also
// the single failure boundary: any stage error is converted into a uniform
// failure result, a raw error never reaches the caller. Validation findings
// are not failures, a batch full of findings still succeeds.
//
// Multiple invocations may run concurrently: the pipeline keeps no mutable
// state between calls.
//
// =============================================================================

package pipeline

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/nordicerp/order-transformer/internal/jsonwriter"
	"github.com/nordicerp/order-transformer/internal/mapping"
	"github.com/nordicerp/order-transformer/internal/model"
	"github.com/nordicerp/order-transformer/internal/validation"
	"github.com/nordicerp/order-transformer/internal/xmlparser"
)

// Pipeline runs the transformation stages for one source unit at a time.
type Pipeline struct {
	writer *jsonwriter.Writer
	logger *logrus.Logger
}

// New builds a pipeline writing wall-clock timestamps.
func New(logger *logrus.Logger) *Pipeline {
	return NewWithWriter(logger, jsonwriter.New())
}

// NewWithWriter builds a pipeline around a specific output writer. Tests use
// this to inject a pinned clock.
func NewWithWriter(logger *logrus.Logger, writer *jsonwriter.Writer) *Pipeline {
	return &Pipeline{
		writer: writer,
		logger: logger,
	}
}

// Process runs the four stages over raw XML text in strict sequence and
// returns a single result for the unit named by sourceName. The name is
// passed through unchanged so the caller can route the unit afterwards.
func (p *Pipeline) Process(raw string, sourceName string) (result model.TransformationResult) {
	// Stage code is not expected to panic, but the pipeline boundary must
	// never propagate a raw failure to its caller.
	defer func() {
		if r := recover(); r != nil {
			p.logger.WithFields(logrus.Fields{
				"source": sourceName,
				"panic":  r,
			}).Error("pipeline stage panicked")
			result = failure(sourceName, fmt.Sprintf("internal error: %v", r))
		}
	}()

	p.logger.WithField("source", sourceName).Info("processing source unit")

	// Stage 1: parse XML into the order model.
	batch, err := xmlparser.Parse(raw)
	if err != nil {
		p.logger.WithFields(logrus.Fields{
			"source": sourceName,
			"error":  err.Error(),
		}).Error("failed to parse source unit")
		return failure(sourceName, err.Error())
	}

	p.logger.WithFields(logrus.Fields{
		"source":     sourceName,
		"tenantId":   batch.TenantID,
		"orderCount": len(batch.Orders),
	}).Info("parsed order batch")

	// Stage 2: validate the pre-mapping batch.
	findings := validation.Validate(batch)
	if len(findings) > 0 {
		p.logger.WithFields(logrus.Fields{
			"source":     sourceName,
			"errorCount": len(findings),
		}).Warn("validation found errors")
	}

	// Stage 3: map field values onto a fresh batch.
	mapped := mapping.MapFields(batch)

	// Stage 4: serialize the mapped batch plus findings.
	out, err := p.writer.Write(mapped, findings)
	if err != nil {
		p.logger.WithFields(logrus.Fields{
			"source": sourceName,
			"error":  err.Error(),
		}).Error("failed to serialize batch")
		return failure(sourceName, err.Error())
	}

	p.logger.WithField("source", sourceName).Info("successfully processed source unit")

	return model.TransformationResult{
		Success:          true,
		JSON:             out,
		ValidationErrors: findings,
		SourceName:       sourceName,
	}
}

func failure(sourceName, message string) model.TransformationResult {
	return model.TransformationResult{
		Success:      false,
		SourceName:   sourceName,
		ErrorMessage: message,
	}
}
