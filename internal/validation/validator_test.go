package validation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordicerp/order-transformer/internal/model"
)

// cleanOrder builds an order that passes every rule; tests break one field
// at a time from this baseline.
func cleanOrder() model.Order {
	return model.Order{
		Header: model.OrderHeader{
			OrderID:   "ORD-2024-001234",
			OrderDate: "2024-01-15T10:30:00Z",
			Status:    "confirmed",
		},
		Customer: model.Customer{
			CustomerID: "CUST-5678",
			Name:       "Acme Corporation",
			Email:      "orders@acme.example.com",
			Address: model.Address{
				Street:     "Mannerheimintie 12",
				City:       "Helsinki",
				PostalCode: "00100",
				Country:    "FI",
			},
		},
		Items: []model.OrderItem{
			{
				LineNumber:  1,
				ProductCode: "PROD-001",
				Description: "Standard widget",
				Quantity:    10,
				UnitPrice:   decimal.RequireFromString("29.99"),
				Currency:    "EUR",
			},
		},
		Totals: model.OrderTotals{
			Subtotal:  decimal.RequireFromString("299.90"),
			TaxRate:   decimal.RequireFromString("24"),
			TaxAmount: decimal.RequireFromString("71.98"),
			Total:     decimal.RequireFromString("371.88"),
			Currency:  "EUR",
		},
	}
}

func batchOf(orders ...model.Order) model.OrderBatch {
	return model.OrderBatch{TenantID: "test-tenant", Orders: orders}
}

func TestValidate_CleanOrderHasNoFindings(t *testing.T) {
	findings := Validate(batchOf(cleanOrder()))
	assert.Empty(t, findings)
}

func TestValidate_EmptyBatchHasNoFindings(t *testing.T) {
	findings := Validate(model.OrderBatch{})
	assert.Empty(t, findings)
}

func TestValidate_RequiredFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*model.Order)
		field  string
	}{
		{"missing order id", func(o *model.Order) { o.Header.OrderID = "" }, "Header.OrderId"},
		{"whitespace order date", func(o *model.Order) { o.Header.OrderDate = "   " }, "Header.OrderDate"},
		{"missing customer id", func(o *model.Order) { o.Customer.CustomerID = "" }, "Customer.CustomerId"},
		{"missing customer name", func(o *model.Order) { o.Customer.Name = "" }, "Customer.Name"},
		{"missing email", func(o *model.Order) { o.Customer.Email = "" }, "Customer.Email"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := cleanOrder()
			tc.mutate(&order)

			findings := Validate(batchOf(order))

			require.Len(t, findings, 1)
			assert.Equal(t, tc.field, findings[0].Field)
			assert.Equal(t, model.ErrorCodeRequired, findings[0].ErrorCode)
			assert.Contains(t, findings[0].Message, "is required")
		})
	}
}

func TestValidate_BlankOrderIDSubstitutesUnknown(t *testing.T) {
	order := cleanOrder()
	order.Header.OrderID = ""

	findings := Validate(batchOf(order))

	require.Len(t, findings, 1)
	assert.Equal(t, model.UnknownOrderID, findings[0].OrderID)
}

func TestValidate_OrderIDFormat(t *testing.T) {
	for _, bad := range []string{"ORD-24-001234", "ORD-2024-1234", "ord-2024-001234", "ORDER-2024-001234", "ORD-2024-0012345"} {
		order := cleanOrder()
		order.Header.OrderID = bad

		findings := Validate(batchOf(order))

		require.Len(t, findings, 1, "order id %q", bad)
		assert.Equal(t, "Header.OrderId", findings[0].Field)
		assert.Equal(t, model.ErrorCodeFormat, findings[0].ErrorCode)
	}
}

func TestValidate_EmailFormat(t *testing.T) {
	order := cleanOrder()
	order.Customer.Email = "not-an-email"

	findings := Validate(batchOf(order))

	require.Len(t, findings, 1)
	assert.Equal(t, "Customer.Email", findings[0].Field)
	assert.Equal(t, model.ErrorCodeFormat, findings[0].ErrorCode)
}

func TestValidate_LooseEmailPatternAccepts(t *testing.T) {
	// The permissive pattern only demands local@domain.tld shapes.
	for _, ok := range []string{"a@b.c", "first.last+tag@sub.domain.example", "x@y.zz"} {
		order := cleanOrder()
		order.Customer.Email = ok

		assert.Empty(t, Validate(batchOf(order)), "email %q", ok)
	}
}

func TestValidate_CountryCodeFormat(t *testing.T) {
	for _, bad := range []string{"FIN", "fi", "F1", "Finland"} {
		order := cleanOrder()
		order.Customer.Address.Country = bad

		findings := Validate(batchOf(order))

		require.Len(t, findings, 1, "country %q", bad)
		assert.Equal(t, "Customer.Address.Country", findings[0].Field)
		assert.Equal(t, model.ErrorCodeFormat, findings[0].ErrorCode)
		assert.Equal(t, "Country code must be exactly 2 uppercase letters", findings[0].Message)
	}
}

func TestValidate_BlankOptionalFieldsSkipFormatChecks(t *testing.T) {
	order := cleanOrder()
	order.Customer.Address.Country = ""
	order.Items[0].Currency = "  "

	assert.Empty(t, Validate(batchOf(order)))
}

func TestValidate_ItemCurrencyUsesIndexedPath(t *testing.T) {
	order := cleanOrder()
	order.Items = append(order.Items, order.Items[0], order.Items[0])
	order.Items[2].Currency = "EURO"

	findings := Validate(batchOf(order))

	require.Len(t, findings, 1)
	assert.Equal(t, "Items[2].Currency", findings[0].Field)
	assert.Equal(t, model.ErrorCodeFormat, findings[0].ErrorCode)
}

func TestValidate_QuantityRange(t *testing.T) {
	for _, qty := range []int{0, -1} {
		order := cleanOrder()
		order.Items[0].Quantity = qty

		findings := Validate(batchOf(order))

		require.Len(t, findings, 1, "quantity %d", qty)
		assert.Equal(t, "Items[0].Quantity", findings[0].Field)
		assert.Equal(t, model.ErrorCodeRange, findings[0].ErrorCode)
		assert.Equal(t, "Quantity must be greater than 0", findings[0].Message)
	}
}

func TestValidate_NegativeUnitPrice(t *testing.T) {
	order := cleanOrder()
	order.Items[0].UnitPrice = decimal.RequireFromString("-0.01")

	findings := Validate(batchOf(order))

	require.Len(t, findings, 1)
	assert.Equal(t, "Items[0].UnitPrice", findings[0].Field)
	assert.Equal(t, model.ErrorCodeRange, findings[0].ErrorCode)
}

func TestValidate_ZeroUnitPriceIsAllowed(t *testing.T) {
	order := cleanOrder()
	order.Items[0].UnitPrice = decimal.Zero

	assert.Empty(t, Validate(batchOf(order)))
}

func TestValidate_NegativeTotals(t *testing.T) {
	order := cleanOrder()
	order.Totals.Subtotal = decimal.RequireFromString("-1")
	order.Totals.TaxAmount = decimal.RequireFromString("-2")
	order.Totals.Total = decimal.RequireFromString("-3")

	findings := Validate(batchOf(order))

	require.Len(t, findings, 3)
	assert.Equal(t, "Totals.Subtotal", findings[0].Field)
	assert.Equal(t, "Totals.TaxAmount", findings[1].Field)
	assert.Equal(t, "Totals.Total", findings[2].Field)
	for _, f := range findings {
		assert.Equal(t, model.ErrorCodeRange, f.ErrorCode)
	}
}

func TestValidate_TaxRateIsNeverRangeChecked(t *testing.T) {
	order := cleanOrder()
	order.Totals.TaxRate = decimal.RequireFromString("-24")

	assert.Empty(t, Validate(batchOf(order)))
}

func TestValidate_FindingsAccumulateAcrossRulesAndOrders(t *testing.T) {
	first := cleanOrder()
	first.Customer.Email = "bad-email"
	first.Items[0].Quantity = 0

	second := cleanOrder()
	second.Header.OrderID = ""

	findings := Validate(batchOf(first, second))

	require.Len(t, findings, 3)
	// Per-order rule order: required, then formats, then ranges.
	assert.Equal(t, "Customer.Email", findings[0].Field)
	assert.Equal(t, model.ErrorCodeFormat, findings[0].ErrorCode)
	assert.Equal(t, "Items[0].Quantity", findings[1].Field)
	assert.Equal(t, model.ErrorCodeRange, findings[1].ErrorCode)
	assert.Equal(t, "Header.OrderId", findings[2].Field)
	assert.Equal(t, model.ErrorCodeRequired, findings[2].ErrorCode)

	assert.Equal(t, "ORD-2024-001234", findings[0].OrderID)
	assert.Equal(t, model.UnknownOrderID, findings[2].OrderID)
}

func TestValidate_DoesNotMutateInput(t *testing.T) {
	order := cleanOrder()
	order.Header.OrderID = ""
	batch := batchOf(order)

	Validate(batch)

	assert.Empty(t, batch.Orders[0].Header.OrderID)
}
