// =============================================================================
// Order Transformer - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (order-transformer)
//   ├── runCmd     (order-transformer run)      - unattended polling worker
//   ├── processCmd (order-transformer process)  - one-shot file transform
//   └── versionCmd (order-transformer version)
//
// The root command owns the global flags (--config, --verbose) and the .env
// bootstrap, so storage credentials can come from the environment in local
// setups.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nordicerp/order-transformer/internal/config"
)

// cfgFile holds the path to the configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose forces debug-level logging regardless of the configured level.
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "order-transformer",
	Short: "Order Transformer - Convert XML order batches to validated JSON",
	Long: `Order Transformer is an unattended pipeline that converts XML order
batches into JSON documents enriched with validation diagnostics.

A polling worker discovers new documents in blob storage (a local directory
or a Google Cloud Storage bucket), runs each one through the transformation
pipeline (parse, validate, map, serialize), and routes it to a processed or
failed destination based on the outcome. Validation findings are diagnostics:
they travel with the output instead of failing the document.

Example Usage:
  order-transformer run                      # Start the polling worker
  order-transformer run --config ./my.yaml   # Use a custom configuration file
  order-transformer process --file order.xml # Transform a single file to stdout`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// A .env file is optional; when present it feeds GCS_BUCKET and
	// GCS_CREDENTIALS_JSON without touching the YAML config.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		config.DefaultPath,
		"Path to the configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// loadConfig reads the configuration and applies the --verbose override.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}
