// =============================================================================
// Order Transformer - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Order Transformer CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   order-transformer run       - Start the unattended polling worker
//   order-transformer process   - Transform a single XML file to JSON
//   order-transformer version   - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Core business logic (not for external import)
//       model/       : Order batch value objects and result types
//       xmlparser/   : XML decoding into the order model
//       validation/  : Business rule validation
//       mapping/     : Static lookup-table field mapping
//       jsonwriter/  : JSON output rendering
//       pipeline/    : Stage orchestration and the failure boundary
//       storage/     : Blob store backends (local directory, GCS)
//       worker/      : Polling loop driving the pipeline
//       report/      : XLSX validation report artifact
//
// =============================================================================

package main

import (
	"github.com/nordicerp/order-transformer/cmd"
)

func main() {
	cmd.Execute()
}
