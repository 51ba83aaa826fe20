// =============================================================================
// Order Transformer - XML Parser Stage
// =============================================================================
//
// This module decodes a raw order document in the fixed XML schema into
// the shared order model. It is the first pipeline stage and the only one
// that can reject an input outright.
//
// PARSING RULES:
//   - Elements are matched inside the fixed namespace; elements carrying any
//     other namespace are ignored. A document written entirely in the wrong
//     namespace therefore parses to an empty batch, it is not a parse error.
//   - tenantId is optional on the root; when absent it defaults to "".
//   - A missing mandatory container (header, customer, address, items,
//     totals) is a fatal structural error for the whole invocation.
//   - Missing leaf elements default to the empty string, never to an error.
//   - Unparseable integers and decimals silently default to zero. That
//     policy lives in the parseIntOrDefault / parseDecimalOrDefault helpers
//     so it stays explicit and testable rather than incidental.
//
// =============================================================================

package xmlparser

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nordicerp/order-transformer/internal/model"
)

// Namespace is the only namespace the order schema lives in.
const Namespace = "http://example.com/schemas/order/v1"

// =============================================================================
// ERROR TYPE
// =============================================================================

// ParseError describes why a document could not be decoded into a batch.
// It is fatal to the pipeline invocation that produced it.
type ParseError struct {
	// Detail names the structural problem, e.g. a missing container.
	Detail string

	// Err is the underlying decoder error, when there is one.
	Err error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Detail, e.Err)
	}
	return e.Detail
}

func (e *ParseError) Unwrap() error { return e.Err }

// =============================================================================
// WIRE STRUCTURES
// =============================================================================
// Containers are pointers so that an absent element is distinguishable from
// an empty one; numeric leaves are kept as strings and converted through the
// default-on-failure helpers below.

type documentElem struct {
	XMLName  xml.Name
	TenantID string      `xml:"http://example.com/schemas/order/v1 tenantId"`
	Orders   []orderElem `xml:"http://example.com/schemas/order/v1 order"`
}

type orderElem struct {
	Header   *headerElem   `xml:"http://example.com/schemas/order/v1 header"`
	Customer *customerElem `xml:"http://example.com/schemas/order/v1 customer"`
	Items    *itemsElem    `xml:"http://example.com/schemas/order/v1 items"`
	Totals   *totalsElem   `xml:"http://example.com/schemas/order/v1 totals"`
}

type headerElem struct {
	OrderID   string `xml:"http://example.com/schemas/order/v1 orderId"`
	OrderDate string `xml:"http://example.com/schemas/order/v1 orderDate"`
	Status    string `xml:"http://example.com/schemas/order/v1 status"`
}

type customerElem struct {
	CustomerID string       `xml:"http://example.com/schemas/order/v1 customerId"`
	Name       string       `xml:"http://example.com/schemas/order/v1 name"`
	Email      string       `xml:"http://example.com/schemas/order/v1 email"`
	Address    *addressElem `xml:"http://example.com/schemas/order/v1 address"`
}

type addressElem struct {
	Street     string `xml:"http://example.com/schemas/order/v1 street"`
	City       string `xml:"http://example.com/schemas/order/v1 city"`
	PostalCode string `xml:"http://example.com/schemas/order/v1 postalCode"`
	Country    string `xml:"http://example.com/schemas/order/v1 country"`
}

type itemsElem struct {
	Items []itemElem `xml:"http://example.com/schemas/order/v1 item"`
}

type itemElem struct {
	LineNumber  string `xml:"http://example.com/schemas/order/v1 lineNumber"`
	ProductCode string `xml:"http://example.com/schemas/order/v1 productCode"`
	Description string `xml:"http://example.com/schemas/order/v1 description"`
	Quantity    string `xml:"http://example.com/schemas/order/v1 quantity"`
	UnitPrice   string `xml:"http://example.com/schemas/order/v1 unitPrice"`
	Currency    string `xml:"http://example.com/schemas/order/v1 currency"`
}

type totalsElem struct {
	Subtotal  string `xml:"http://example.com/schemas/order/v1 subtotal"`
	TaxRate   string `xml:"http://example.com/schemas/order/v1 taxRate"`
	TaxAmount string `xml:"http://example.com/schemas/order/v1 taxAmount"`
	Total     string `xml:"http://example.com/schemas/order/v1 total"`
	Currency  string `xml:"http://example.com/schemas/order/v1 currency"`
}

// =============================================================================
// PARSING
// =============================================================================

// Parse decodes raw XML text into an OrderBatch.
//
// PARAMETERS:
//   - raw: The full XML document text.
//
// RETURNS:
//   - The decoded batch, with document order of <order> elements preserved.
//   - A *ParseError when the text is not well-formed XML, lacks a root
//     element, or an order is missing a mandatory container element.
func Parse(raw string) (model.OrderBatch, error) {
	var doc documentElem
	if err := xml.Unmarshal([]byte(raw), &doc); err != nil {
		return model.OrderBatch{}, &ParseError{Detail: "malformed XML document", Err: err}
	}

	orders := make([]model.Order, 0, len(doc.Orders))
	for i, elem := range doc.Orders {
		order, err := parseOrder(i, elem)
		if err != nil {
			return model.OrderBatch{}, err
		}
		orders = append(orders, order)
	}

	return model.OrderBatch{
		TenantID: doc.TenantID,
		Orders:   orders,
	}, nil
}

// parseOrder converts one <order> element, failing fast when a mandatory
// container is absent.
func parseOrder(index int, elem orderElem) (model.Order, error) {
	switch {
	case elem.Header == nil:
		return model.Order{}, missingContainer(index, "header")
	case elem.Customer == nil:
		return model.Order{}, missingContainer(index, "customer")
	case elem.Customer.Address == nil:
		return model.Order{}, missingContainer(index, "customer/address")
	case elem.Items == nil:
		return model.Order{}, missingContainer(index, "items")
	case elem.Totals == nil:
		return model.Order{}, missingContainer(index, "totals")
	}

	items := make([]model.OrderItem, 0, len(elem.Items.Items))
	for _, item := range elem.Items.Items {
		items = append(items, model.OrderItem{
			LineNumber:  parseIntOrDefault(item.LineNumber),
			ProductCode: item.ProductCode,
			Description: item.Description,
			Quantity:    parseIntOrDefault(item.Quantity),
			UnitPrice:   parseDecimalOrDefault(item.UnitPrice),
			Currency:    item.Currency,
		})
	}

	return model.Order{
		Header: model.OrderHeader{
			OrderID:   elem.Header.OrderID,
			OrderDate: elem.Header.OrderDate,
			Status:    elem.Header.Status,
		},
		Customer: model.Customer{
			CustomerID: elem.Customer.CustomerID,
			Name:       elem.Customer.Name,
			Email:      elem.Customer.Email,
			Address: model.Address{
				Street:     elem.Customer.Address.Street,
				City:       elem.Customer.Address.City,
				PostalCode: elem.Customer.Address.PostalCode,
				Country:    elem.Customer.Address.Country,
			},
		},
		Items: items,
		Totals: model.OrderTotals{
			Subtotal:  parseDecimalOrDefault(elem.Totals.Subtotal),
			TaxRate:   parseDecimalOrDefault(elem.Totals.TaxRate),
			TaxAmount: parseDecimalOrDefault(elem.Totals.TaxAmount),
			Total:     parseDecimalOrDefault(elem.Totals.Total),
			Currency:  elem.Totals.Currency,
		},
	}, nil
}

func missingContainer(index int, name string) *ParseError {
	return &ParseError{Detail: fmt.Sprintf("order %d: missing mandatory <%s> element", index, name)}
}

// =============================================================================
// DEFAULT-ON-FAILURE HELPERS
// =============================================================================

// parseIntOrDefault parses an integer leaf, substituting 0 for anything
// unparseable. A bad leaf never fails the document; range validation will
// flag the zero downstream where it matters.
func parseIntOrDefault(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// parseDecimalOrDefault parses a decimal leaf in invariant format ('.' as
// the decimal separator), substituting 0 for anything unparseable.
func parseDecimalOrDefault(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}
