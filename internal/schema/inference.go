package schema

import (
	"github.com/ledgerline/receipt-engine/internal/models"
)

// Column is one inferred items-table column, in render order.
type Column struct {
	Name  string           `json:"name"`
	Label string           `json:"label"`
	Type  models.FieldType `json:"type"`
}

// canonicalColumns seed every items table in fixed order. They exist even
// when the items carry legacy aliases, so the table shape is stable across
// tenants.
var canonicalColumns = []Column{
	{Name: "description", Label: "Description", Type: models.FieldTypeText},
	{Name: "quantity", Label: "Qty", Type: models.FieldTypeNumber},
	{Name: "unitPrice", Label: "Unit Price", Type: models.FieldTypeNumber},
	{Name: "totalPrice", Label: "Total", Type: models.FieldTypeNumber},
}

// InferColumns computes the ordered, deduplicated column set for the items
// table: the four canonical columns, then the author-declared additional
// fields in declaration order, then any key discovered in item data that
// no declaration covered. Discovery guarantees stored data is never
// silently dropped when its declaring metadata was lost.
//
// Order depends only on declaration and discovery order, never on content,
// so re-renders of the same receipt are visually stable.
func InferColumns(items []models.ReceiptItem, additional []models.FieldRef, tmpl *models.BusinessTemplate) []Column {
	columns := make([]Column, 0, len(canonicalColumns)+len(additional))
	seen := make(map[string]bool, len(canonicalColumns)+len(additional))

	for _, c := range canonicalColumns {
		columns = append(columns, resolveColumn(c.Name, tmpl, &c))
		seen[c.Name] = true
	}

	for _, ref := range additional {
		if ref.Name == "" || seen[ref.Name] {
			continue
		}
		col := resolveColumn(ref.Name, tmpl, nil)
		if ref.Label != "" {
			col.Label = ref.Label
		}
		if ref.Type != "" {
			col.Type = ref.Type
		}
		columns = append(columns, col)
		seen[ref.Name] = true
	}

	for _, item := range items {
		for _, key := range item.Keys() {
			if key == "id" || seen[key] {
				continue
			}
			columns = append(columns, resolveColumn(key, tmpl, nil))
			seen[key] = true
		}
	}

	return columns
}

// resolveColumn builds the column definition for a field name, preferring
// the template's declaration, then the canonical default, then a
// synthesized definition with a dictionary/humanized label and text type.
func resolveColumn(name string, tmpl *models.BusinessTemplate, canonical *Column) Column {
	if f, ok := tmpl.FieldByName(name); ok {
		col := Column{Name: name, Label: f.Label, Type: f.Type}
		if col.Label == "" {
			col.Label = FieldLabel(name)
		}
		if col.Type == "" {
			col.Type = models.FieldTypeText
		}
		return col
	}
	if canonical != nil {
		return *canonical
	}
	return Column{Name: name, Label: FieldLabel(name), Type: models.FieldTypeText}
}

// Detail is one receipt-level label/value pair for the Additional Details
// block.
type Detail struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// AdditionalDetails returns the receipt's top-level values that no
// dedicated section renders, in stored key order, skipping null and empty
// values.
func AdditionalDetails(r *models.Receipt) []Detail {
	var details []Detail
	for _, key := range r.ExtraKeys() {
		value := r.ExtraString(key)
		if value == "" {
			continue
		}
		details = append(details, Detail{
			Key:   key,
			Label: FieldLabel(key),
			Value: value,
		})
	}
	return details
}
