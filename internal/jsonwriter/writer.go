// =============================================================================
// Order Transformer - JSON Output Stage
// =============================================================================
//
// This module renders a mapped order batch plus the validator's findings
// into the output JSON document. Key naming is lower camel case throughout
// and field order is fixed, so output is deterministic for identical input
// and timestamp.
//
// DOCUMENT SHAPE:
//   {
//     "tenantId": "...",
//     "processedAt": "<ISO-8601 UTC, serialization time>",
//     "orderCount": N,
//     "validationErrorCount": N,
//     "validationErrors": [...],   // omitted entirely when there are none
//     "orders": [...]
//   }
//
// =============================================================================

package jsonwriter

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nordicerp/order-transformer/internal/model"
)

// document is the top-level output object. ValidationErrors carries
// omitempty so a clean batch drops the key instead of emitting [].
type document struct {
	TenantID             string                  `json:"tenantId"`
	ProcessedAt          string                  `json:"processedAt"`
	OrderCount           int                     `json:"orderCount"`
	ValidationErrorCount int                     `json:"validationErrorCount"`
	ValidationErrors     []model.ValidationError `json:"validationErrors,omitempty"`
	Orders               []model.Order           `json:"orders"`
}

// Writer renders batches to JSON. The clock is injectable so tests can pin
// the processedAt timestamp.
type Writer struct {
	now func() time.Time
}

// New returns a Writer stamping documents with the wall clock.
func New() *Writer {
	return &Writer{now: time.Now}
}

// NewWithClock returns a Writer using the given clock for processedAt.
func NewWithClock(now func() time.Time) *Writer {
	return &Writer{now: now}
}

// Write renders the batch and findings into an indented JSON document.
// The findings' field paths reference the pre-mapping batch structure, since
// validation runs before mapping; callers pass the mapped batch here.
func (w *Writer) Write(batch model.OrderBatch, validationErrors []model.ValidationError) (string, error) {
	orders := batch.Orders
	if orders == nil {
		orders = []model.Order{}
	}

	errs := validationErrors
	if len(errs) == 0 {
		// nil keeps omitempty effective for both nil and empty input.
		errs = nil
	}

	doc := document{
		TenantID:             batch.TenantID,
		ProcessedAt:          w.now().UTC().Format(time.RFC3339Nano),
		OrderCount:           len(orders),
		ValidationErrorCount: len(validationErrors),
		ValidationErrors:     errs,
		Orders:               orders,
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize batch: %w", err)
	}

	return string(out), nil
}
