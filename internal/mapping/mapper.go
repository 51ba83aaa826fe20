// =============================================================================
// Order Transformer - Field Mapping Stage
// =============================================================================
//
// This module rewrites select field values through static lookup tables:
//   - 2-letter country codes become full country names
//   - order status tokens become display labels
//   - recognized product codes replace the item description with a
//     category label
//
// Mapping is a total function: it never fails, never drops or reorders
// orders or items, and passes unmapped values through unchanged. The input
// batch is left untouched, MapFields builds an entirely new batch.
//
// =============================================================================

package mapping

import "github.com/nordicerp/order-transformer/internal/model"

// =============================================================================
// LOOKUP TABLES
// =============================================================================
// Process-wide constants: built once, shared read-only across concurrent
// pipeline invocations, never mutated at runtime.

var countryNames = map[string]string{
	"FI": "Finland",
	"SE": "Sweden",
	"NO": "Norway",
	"DK": "Denmark",
	"US": "United States",
	"GB": "United Kingdom",
	"DE": "Germany",
}

var statusLabels = map[string]string{
	"draft":      "Draft",
	"confirmed":  "Order Confirmed",
	"processing": "In Processing",
	"shipped":    "Shipped",
	"delivered":  "Delivered",
	"cancelled":  "Cancelled",
}

// productCategories maps product codes to category labels. When a code is
// recognized the label REPLACES the item description and the incoming
// description is discarded. Downstream consumers want the canonical
// category name, not free-form supplier text.
var productCategories = map[string]string{
	"PROD-001": "Widgets",
	"PROD-002": "Gadgets",
	"PROD-003": "Premium Widgets",
}

// =============================================================================
// MAPPING
// =============================================================================

// MapFields returns a new batch with the three lookup substitutions applied.
// Mapping is idempotent: none of the mapped labels are themselves keys in
// their lookup tables, so running an already-mapped batch through again is a
// no-op.
func MapFields(batch model.OrderBatch) model.OrderBatch {
	orders := make([]model.Order, len(batch.Orders))
	for i, order := range batch.Orders {
		orders[i] = mapOrder(order)
	}

	return model.OrderBatch{
		TenantID: batch.TenantID,
		Orders:   orders,
	}
}

func mapOrder(order model.Order) model.Order {
	mapped := order

	mapped.Header.Status = lookupOrSelf(statusLabels, order.Header.Status)
	mapped.Customer.Address.Country = lookupOrSelf(countryNames, order.Customer.Address.Country)

	items := make([]model.OrderItem, len(order.Items))
	for i, item := range order.Items {
		items[i] = mapItem(item)
	}
	mapped.Items = items

	return mapped
}

func mapItem(item model.OrderItem) model.OrderItem {
	if category, ok := productCategories[item.ProductCode]; ok {
		item.Description = category
	}
	return item
}

// lookupOrSelf resolves a value through a table, passing unmapped values
// through unchanged.
func lookupOrSelf(table map[string]string, value string) string {
	if mapped, ok := table[value]; ok {
		return mapped
	}
	return value
}
