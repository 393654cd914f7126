package models

import "fmt"

// FieldType enumerates the value types a line-item or custom field may carry.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeNumber   FieldType = "number"
	FieldTypeDate     FieldType = "date"
	FieldTypeSelect   FieldType = "select"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeEmail    FieldType = "email"
	FieldTypePhone    FieldType = "phone"
)

// CustomFieldSection identifies where a document-level custom field renders.
type CustomFieldSection string

const (
	SectionHeader CustomFieldSection = "header"
	SectionFooter CustomFieldSection = "footer"
)

// FieldValidation holds optional validation constraints for a field.
// The form layer enforces these; the rendering engine only carries them.
type FieldValidation struct {
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	Pattern string   `json:"pattern,omitempty"`
}

// LineItemField describes one attribute of a receipt line item.
// Identity is Name (the item map key); ID is a stable ordering key,
// normally equal to Name.
type LineItemField struct {
	ID                 string           `json:"id"`
	Name               string           `json:"name"`
	Label              string           `json:"label"`
	Type               FieldType        `json:"type"`
	Required           bool             `json:"required"`
	Placeholder        string           `json:"placeholder,omitempty"`
	Options            []string         `json:"options,omitempty"`
	DefaultValue       string           `json:"defaultValue,omitempty"`
	Validation         *FieldValidation `json:"validation,omitempty"`
	AffectsCalculation bool             `json:"affectsCalculation,omitempty"`
}

// CustomField is a document-level field attached to the header or footer
// of the rendered receipt, not to individual line items.
type CustomField struct {
	LineItemField
	Section CustomFieldSection `json:"section"`
	Order   int                `json:"order"`
}

// BusinessTemplate is a tenant-owned bundle of line-item and custom field
// definitions. Exactly one template per tenant may be marked default.
type BusinessTemplate struct {
	ID             string          `json:"id"`
	TeamID         string          `json:"teamId"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	IsDefault      bool            `json:"isDefault"`
	LineItemFields []LineItemField `json:"lineItemFields"`
	CustomFields   []CustomField   `json:"customFields"`
}

var validFieldTypes = map[FieldType]bool{
	FieldTypeText:     true,
	FieldTypeNumber:   true,
	FieldTypeDate:     true,
	FieldTypeSelect:   true,
	FieldTypeTextarea: true,
	FieldTypeEmail:    true,
	FieldTypePhone:    true,
}

// Validate checks the template contract the rendering engine relies on:
// field names are unique, types are known, and custom field sections are
// either header or footer.
func (t *BusinessTemplate) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("template name is required")
	}

	seen := make(map[string]bool, len(t.LineItemFields))
	for _, f := range t.LineItemFields {
		if f.Name == "" {
			return fmt.Errorf("line item field with empty name")
		}
		if seen[f.Name] {
			return fmt.Errorf("duplicate line item field name: %s", f.Name)
		}
		seen[f.Name] = true

		if f.Type != "" && !validFieldTypes[f.Type] {
			return fmt.Errorf("unknown field type %q for field %s", f.Type, f.Name)
		}
	}

	for _, cf := range t.CustomFields {
		if cf.Name == "" {
			return fmt.Errorf("custom field with empty name")
		}
		if cf.Section != SectionHeader && cf.Section != SectionFooter {
			return fmt.Errorf("custom field %s has invalid section %q", cf.Name, cf.Section)
		}
	}

	return nil
}

// FieldByName returns the declared line-item field definition for name.
func (t *BusinessTemplate) FieldByName(name string) (LineItemField, bool) {
	if t == nil {
		return LineItemField{}, false
	}
	for _, f := range t.LineItemFields {
		if f.Name == name {
			return f, true
		}
	}
	return LineItemField{}, false
}

// FieldRef names an ad hoc line-item column the receipt author added
// explicitly. Label and Type are optional hints.
type FieldRef struct {
	Name  string    `json:"name"`
	Label string    `json:"label,omitempty"`
	Type  FieldType `json:"type,omitempty"`
}
