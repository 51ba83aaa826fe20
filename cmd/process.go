// =============================================================================
// Order Transformer - Process Command
// =============================================================================
//
// This file defines the 'process' command, a one-shot transform of a single
// local XML file. It runs the same pipeline as the polling worker but reads
// from and writes to the local filesystem directly, which makes it the tool
// for operators reproducing a failure or checking a document by hand.
//
// COMMAND USAGE:
//   order-transformer process --file order.xml            # JSON to stdout
//   order-transformer process --file order.xml --out o.json
//
// EXIT BEHAVIOR:
//   A pipeline failure (malformed XML, missing container) exits non-zero
//   with the failure message. Validation findings do not: they are part of
//   the JSON output, matching the worker's semantics.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nordicerp/order-transformer/internal/logging"
	"github.com/nordicerp/order-transformer/internal/pipeline"
)

// processFile is the path to the XML file to transform.
var processFile string

// processOut is an optional path for the JSON output; empty means stdout.
var processOut string

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Transform a single XML file to JSON",
	Long: `The process command runs one XML file through the transformation
pipeline and prints the resulting JSON document, or writes it to --out.

Validation findings are embedded in the JSON output and do not fail the
command; only parse-level failures do.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess()
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(
		&processFile,
		"file",
		"",
		"Path to the XML file to transform",
	)
	processCmd.MarkFlagRequired("file")

	processCmd.Flags().StringVar(
		&processOut,
		"out",
		"",
		"Path to write the JSON output (default: stdout)",
	)
}

func runProcess() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)

	data, err := os.ReadFile(processFile)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	result := pipeline.New(logger).Process(string(data), filepath.Base(processFile))
	if !result.Success {
		return fmt.Errorf("failed to process %s: %s", processFile, result.ErrorMessage)
	}

	if processOut == "" {
		fmt.Println(result.JSON)
		return nil
	}

	if err := os.WriteFile(processOut, []byte(result.JSON), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	fmt.Printf("Wrote %s (%d validation findings)\n", processOut, len(result.ValidationErrors))
	return nil
}
