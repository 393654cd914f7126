package schema

import (
	"strings"
	"unicode"
)

// fieldLabels maps common business field names to display labels. Names
// absent from the table fall back to camelCase humanization, so FieldLabel
// is total and callers never branch on a missing label.
var fieldLabels = map[string]string{
	"description":  "Description",
	"quantity":     "Qty",
	"unitPrice":    "Unit Price",
	"totalPrice":   "Total",
	"amount":       "Amount",
	"price":        "Price",
	"weight":       "Weight (kg)",
	"sku":          "SKU",
	"hoursWorked":  "Hours",
	"hourlyRate":   "Hourly Rate",
	"taxRate":      "Tax Rate (%)",
	"discount":     "Discount",
	"unit":         "Unit",
	"serialNumber": "Serial #",
	"partNumber":   "Part #",
	"category":     "Category",
	"color":        "Color",
	"size":         "Size",
	"notes":        "Notes",
}

// FieldLabel returns the display label for a field name: a dictionary hit
// when the name is a known business term, otherwise the humanized name.
func FieldLabel(name string) string {
	if label, ok := fieldLabels[name]; ok {
		return label
	}
	return Humanize(name)
}

// Humanize turns a camelCase key into a title-spaced label:
// "customSku" -> "Custom Sku", "warehouseCode" -> "Warehouse Code".
func Humanize(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)
	for i, r := range name {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
