// =============================================================================
// Order Transformer - Order Validation Engine
// =============================================================================
//
// This module inspects a parsed order batch and produces the list of
// field-level findings the output document carries. It validates against the
// fixed business rules:
//   - Required field checks (REQUIRED)
//   - Format checks against compiled patterns (FORMAT)
//   - Numeric range checks for quantities, prices and totals (RANGE)
//
// VALIDATION STRATEGY:
//   Rules run per order in a fixed sequence. Findings accumulate across all
//   orders and rules, validation never stops at the first failure and never
//   raises. A finding is a diagnostic: the pipeline treats a batch with
//   findings as successfully processed.
//
// ERROR ADDRESSING:
//   Each finding addresses its field with a dotted path, using a bracketed
//   zero-based index for item-scoped fields ("Items[2].Quantity"). The
//   finding's order id falls back to the literal "unknown" when the order's
//   own id is blank.
//
// =============================================================================

package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nordicerp/order-transformer/internal/model"
)

// =============================================================================
// FORMAT PATTERNS
// =============================================================================

var (
	// orderIDPattern matches ORD- followed by a 4-digit year and a 6-digit
	// sequence number.
	orderIDPattern = regexp.MustCompile(`^ORD-\d{4}-\d{6}$`)

	// emailPattern is deliberately loose: local part, '@', domain containing
	// at least one dot. It accepts addresses a stricter check would reject;
	// downstream consumers may depend on that permissiveness.
	emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

	countryCodePattern  = regexp.MustCompile(`^[A-Z]{2}$`)
	currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)
)

// =============================================================================
// VALIDATION ENTRY POINT
// =============================================================================

// Validate runs every rule against every order and returns the accumulated
// findings in rule order. The input batch is never mutated. A nil-length
// result means the batch is clean.
func Validate(batch model.OrderBatch) []model.ValidationError {
	var errors []model.ValidationError

	for _, order := range batch.Orders {
		orderID := order.Header.OrderID
		if isBlank(orderID) {
			orderID = model.UnknownOrderID
		}

		errors = append(errors, validateRequired(orderID, order)...)
		errors = append(errors, validateFormats(orderID, order)...)
		errors = append(errors, validateRanges(orderID, order)...)
	}

	return errors
}

// =============================================================================
// RULE GROUPS
// =============================================================================

// validateRequired checks the five mandatory scalar fields. A field is
// missing when it is empty or whitespace-only.
func validateRequired(orderID string, order model.Order) []model.ValidationError {
	var errors []model.ValidationError

	required := []struct {
		value string
		field string
	}{
		{order.Header.OrderID, "Header.OrderId"},
		{order.Header.OrderDate, "Header.OrderDate"},
		{order.Customer.CustomerID, "Customer.CustomerId"},
		{order.Customer.Name, "Customer.Name"},
		{order.Customer.Email, "Customer.Email"},
	}

	for _, r := range required {
		if isBlank(r.value) {
			errors = append(errors, model.ValidationError{
				OrderID:   orderID,
				Field:     r.field,
				Message:   fmt.Sprintf("%s is required", r.field),
				ErrorCode: model.ErrorCodeRequired,
			})
		}
	}

	return errors
}

// validateFormats checks pattern rules. Blank fields are skipped so a field
// never reports both REQUIRED and FORMAT at once.
func validateFormats(orderID string, order model.Order) []model.ValidationError {
	var errors []model.ValidationError

	if !isBlank(order.Header.OrderID) && !orderIDPattern.MatchString(order.Header.OrderID) {
		errors = append(errors, model.ValidationError{
			OrderID:   orderID,
			Field:     "Header.OrderId",
			Message:   "OrderId must match pattern ORD-YYYY-NNNNNN",
			ErrorCode: model.ErrorCodeFormat,
		})
	}

	if !isBlank(order.Customer.Email) && !emailPattern.MatchString(order.Customer.Email) {
		errors = append(errors, model.ValidationError{
			OrderID:   orderID,
			Field:     "Customer.Email",
			Message:   `Email must match pattern [^@]+@[^@]+\.[^@]+`,
			ErrorCode: model.ErrorCodeFormat,
		})
	}

	if !isBlank(order.Customer.Address.Country) && !countryCodePattern.MatchString(order.Customer.Address.Country) {
		errors = append(errors, model.ValidationError{
			OrderID:   orderID,
			Field:     "Customer.Address.Country",
			Message:   "Country code must be exactly 2 uppercase letters",
			ErrorCode: model.ErrorCodeFormat,
		})
	}

	for i, item := range order.Items {
		if !isBlank(item.Currency) && !currencyCodePattern.MatchString(item.Currency) {
			errors = append(errors, model.ValidationError{
				OrderID:   orderID,
				Field:     fmt.Sprintf("Items[%d].Currency", i),
				Message:   "Currency code must be exactly 3 uppercase letters",
				ErrorCode: model.ErrorCodeFormat,
			})
		}
	}

	return errors
}

// validateRanges checks the numeric bounds on items and totals.
// TaxRate is intentionally never range-checked.
func validateRanges(orderID string, order model.Order) []model.ValidationError {
	var errors []model.ValidationError

	for i, item := range order.Items {
		if item.Quantity <= 0 {
			errors = append(errors, model.ValidationError{
				OrderID:   orderID,
				Field:     fmt.Sprintf("Items[%d].Quantity", i),
				Message:   "Quantity must be greater than 0",
				ErrorCode: model.ErrorCodeRange,
			})
		}

		if item.UnitPrice.IsNegative() {
			errors = append(errors, model.ValidationError{
				OrderID:   orderID,
				Field:     fmt.Sprintf("Items[%d].UnitPrice", i),
				Message:   "UnitPrice must be greater than or equal to 0",
				ErrorCode: model.ErrorCodeRange,
			})
		}
	}

	totals := []struct {
		value decimal.Decimal
		field string
		name  string
	}{
		{order.Totals.Subtotal, "Totals.Subtotal", "Subtotal"},
		{order.Totals.TaxAmount, "Totals.TaxAmount", "TaxAmount"},
		{order.Totals.Total, "Totals.Total", "Total"},
	}

	for _, t := range totals {
		if t.value.IsNegative() {
			errors = append(errors, model.ValidationError{
				OrderID:   orderID,
				Field:     t.field,
				Message:   fmt.Sprintf("%s must be greater than or equal to 0", t.name),
				ErrorCode: model.ErrorCodeRange,
			})
		}
	}

	return errors
}

// isBlank reports whether a value is empty or whitespace-only.
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
