// =============================================================================
// Order Transformer - Run Command
// =============================================================================
//
// This file defines the 'run' command, which starts the unattended polling
// worker. The worker keeps scanning the configured input prefix and routes
// every discovered document through the transformation pipeline until the
// process receives SIGINT or SIGTERM.
//
// COMMAND USAGE:
//   order-transformer run [--config config.yaml]
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nordicerp/order-transformer/internal/config"
	"github.com/nordicerp/order-transformer/internal/logging"
	"github.com/nordicerp/order-transformer/internal/pipeline"
	"github.com/nordicerp/order-transformer/internal/storage"
	"github.com/nordicerp/order-transformer/internal/worker"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the unattended polling worker",
	Long: `The run command starts the polling worker. On every cycle it lists the
input prefix of the configured blob store for new XML documents and feeds
each one through the transformation pipeline.

On success:
  - The rendered JSON is written under the output prefix
  - The input document is moved under the processed prefix
  - Batches with validation findings additionally get an XLSX report

On failure:
  - The input document is moved under the failed prefix
  - The error is logged and the worker continues with the next document`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runWorker()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runWorker() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, cleanup, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	w := worker.New(store, pipeline.New(logger), logger, cfg)
	w.Run(ctx)

	return nil
}

// newStore builds the configured storage backend. The returned cleanup
// releases backend resources and is safe to call for every backend.
func newStore(ctx context.Context, cfg *config.Config) (storage.Store, func(), error) {
	switch storage.NormalizeProvider(cfg.Storage.Provider) {
	case storage.ProviderGCS:
		store, err := storage.NewGCSStore(ctx, cfg.Storage.Bucket)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize gcs storage: %w", err)
		}
		return store, func() { store.Close() }, nil

	default:
		store, err := storage.NewLocalStore(cfg.Storage.RootDir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize local storage: %w", err)
		}
		return store, func() {}, nil
	}
}
