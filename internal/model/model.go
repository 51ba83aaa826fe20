// =============================================================================
// Order Transformer - Shared Domain Model
// =============================================================================
//
// This package contains the in-memory representation of an order batch and
// the result types shared across the pipeline stages. Types defined here are
// used by:
//   - xmlparser
//   - validation
//   - mapping
//   - jsonwriter
//   - pipeline
//
// All model types are value objects: stages never mutate a batch they were
// handed. "Modifying" a batch means building a new one, so the pipeline can
// keep the pre-mapping batch alive for validation while the mapped copy goes
// to serialization.
//
// =============================================================================

package model

import "github.com/shopspring/decimal"

// init configures decimal JSON rendering once for the whole process.
// Monetary fields are emitted as plain JSON numbers, matching the documents
// downstream consumers already ingest.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// =============================================================================
// ORDER BATCH
// =============================================================================

// OrderBatch is one parsed document: a tenant identifier plus its orders.
// Order sequence is preserved from the source document and is significant,
// validation error paths address items by list index.
type OrderBatch struct {
	TenantID string  `json:"tenantId"`
	Orders   []Order `json:"orders"`
}

// Order is a single order within a batch. It has no identity beyond
// Header.OrderID, which is not guaranteed unique across the batch.
type Order struct {
	Header   OrderHeader `json:"header"`
	Customer Customer    `json:"customer"`
	Items    []OrderItem `json:"items"`
	Totals   OrderTotals `json:"totals"`
}

// OrderHeader carries the order-level scalars.
// OrderDate is free-form text and is never validated as a real date.
type OrderHeader struct {
	// OrderID is expected to match ORD-YYYY-NNNNNN.
	OrderID string `json:"orderId"`

	OrderDate string `json:"orderDate"`

	// Status holds the raw source token until the field mapper replaces it
	// with a display label.
	Status string `json:"status"`
}

// Customer identifies the ordering party.
type Customer struct {
	CustomerID string  `json:"customerId"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Address    Address `json:"address"`
}

// Address is the customer's postal address. Country is a 2-letter ISO code
// on input and a full country name after mapping.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// OrderItem is one line of an order.
type OrderItem struct {
	LineNumber  int             `json:"lineNumber"`
	ProductCode string          `json:"productCode"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Currency    string          `json:"currency"`
}

// OrderTotals carries the batch-level money fields. Decimals are
// fixed-point (shopspring/decimal) so monetary totals never pick up binary
// floating point drift.
type OrderTotals struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	TaxRate   decimal.Decimal `json:"taxRate"`
	TaxAmount decimal.Decimal `json:"taxAmount"`
	Total     decimal.Decimal `json:"total"`
	Currency  string          `json:"currency"`
}

// =============================================================================
// VALIDATION ERRORS
// =============================================================================

// Error codes attached to validation findings.
const (
	// ErrorCodeRequired marks a missing or whitespace-only mandatory field.
	ErrorCodeRequired = "REQUIRED"

	// ErrorCodeFormat marks a non-blank field that fails its format pattern.
	ErrorCodeFormat = "FORMAT"

	// ErrorCodeRange marks a numeric field outside its allowed range.
	ErrorCodeRange = "RANGE"
)

// UnknownOrderID is substituted into findings whose order has a blank
// OrderID, so every finding can still be attributed to something.
const UnknownOrderID = "unknown"

// ValidationError is a single field-level finding. Findings are diagnostics,
// they never fail a pipeline invocation.
type ValidationError struct {
	// OrderID is the owning order's id, or "unknown" when that id is blank.
	OrderID string `json:"orderId"`

	// Field is a dotted/bracketed path locating the offending value,
	// e.g. "Header.OrderId" or "Items[2].Quantity". Paths always reference
	// the pre-mapping batch structure.
	Field string `json:"field"`

	// Message is a human-readable description of the finding.
	Message string `json:"message"`

	// ErrorCode is one of REQUIRED, FORMAT or RANGE.
	ErrorCode string `json:"errorCode"`
}

// =============================================================================
// TRANSFORMATION RESULT
// =============================================================================

// TransformationResult is the single outcome object returned by the
// pipeline for one source unit.
//
// Success is independent of ValidationErrors: a batch full of findings still
// succeeds. Only a stage error (malformed XML, missing container,
// serialization failure) produces Success == false.
type TransformationResult struct {
	// Success reports whether every stage completed.
	Success bool

	// JSON is the rendered output document. Populated only on success.
	JSON string

	// ValidationErrors are the validator's findings, present regardless of
	// the Success flag.
	ValidationErrors []ValidationError

	// SourceName is the originating unit's name, passed through unchanged
	// so the caller can correlate the result with its input.
	SourceName string

	// ErrorMessage describes the stage failure. Populated only on failure.
	ErrorMessage string
}
