package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Receipt is the immutable document payload handed to the rendering
// engine. Known fields are typed; any other top-level key the CRUD layer
// stored is kept in an ordered extras map and surfaces in the rendered
// document's Additional Details block.
type Receipt struct {
	ID     string
	TeamID string

	ReceiptNumber string
	IssueDate     string
	DueDate       string
	PaymentTerms  string
	Reference     string

	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	CustomerAddress string

	BusinessName    string
	BusinessAddress string
	BusinessPhone   string
	BusinessEmail   string
	LogoURL         string

	Items                []ReceiptItem
	ItemAdditionalFields []FieldRef
	CustomFieldValues    map[string]string

	Subtotal    float64
	TaxAmount   float64
	Discount    float64
	TotalAmount float64
	Currency    string
	Status      string
	Notes       string

	extraKeys []string
	extras    map[string]any
}

// canonicalReceiptKeys is the deny-list of top-level keys already rendered
// by a dedicated document section. Anything outside it lands in the
// Additional Details block.
var canonicalReceiptKeys = map[string]bool{
	"id":                   true,
	"teamId":               true,
	"userId":               true,
	"templateId":           true,
	"receiptNumber":        true,
	"issueDate":            true,
	"dueDate":              true,
	"paymentTerms":         true,
	"reference":            true,
	"customerName":         true,
	"customerEmail":        true,
	"customerPhone":        true,
	"customerAddress":      true,
	"businessName":         true,
	"businessAddress":      true,
	"businessPhone":        true,
	"businessEmail":        true,
	"logoUrl":              true,
	"items":                true,
	"itemAdditionalFields": true,
	"customFields":         true,
	"subtotal":             true,
	"taxAmount":            true,
	"discount":             true,
	"totalAmount":          true,
	"currency":             true,
	"status":               true,
	"notes":                true,
	"createdAt":            true,
	"updatedAt":            true,
}

// SetExtra stores a non-canonical top-level value, preserving insertion
// order.
func (r *Receipt) SetExtra(key string, value any) {
	if r.extras == nil {
		r.extras = make(map[string]any)
	}
	if _, ok := r.extras[key]; !ok {
		r.extraKeys = append(r.extraKeys, key)
	}
	r.extras[key] = value
}

// ExtraKeys returns the non-canonical top-level keys in insertion order.
func (r *Receipt) ExtraKeys() []string {
	return r.extraKeys
}

// Extra returns the raw value stored for a non-canonical key.
func (r *Receipt) Extra(key string) (any, bool) {
	v, ok := r.extras[key]
	return v, ok
}

// ExtraString returns the display string for a non-canonical key. Nil and
// missing values both render empty.
func (r *Receipt) ExtraString(key string) string {
	v, ok := r.extras[key]
	if !ok || v == nil {
		return ""
	}
	return coerceString(v)
}

// UnmarshalJSON decodes the receipt, routing known keys to typed fields
// and collecting everything else, in order, as extras.
func (r *Receipt) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("receipt must be a JSON object")
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("decode receipt field %s: %w", key, err)
		}
		if err := r.assignField(key, raw); err != nil {
			return err
		}
	}

	_, err = dec.Token()
	return err
}

func (r *Receipt) assignField(key string, raw json.RawMessage) error {
	switch key {
	case "id":
		return unmarshalString(raw, &r.ID)
	case "teamId":
		return unmarshalString(raw, &r.TeamID)
	case "receiptNumber":
		return unmarshalString(raw, &r.ReceiptNumber)
	case "issueDate":
		return unmarshalString(raw, &r.IssueDate)
	case "dueDate":
		return unmarshalString(raw, &r.DueDate)
	case "paymentTerms":
		return unmarshalString(raw, &r.PaymentTerms)
	case "reference":
		return unmarshalString(raw, &r.Reference)
	case "customerName":
		return unmarshalString(raw, &r.CustomerName)
	case "customerEmail":
		return unmarshalString(raw, &r.CustomerEmail)
	case "customerPhone":
		return unmarshalString(raw, &r.CustomerPhone)
	case "customerAddress":
		return unmarshalString(raw, &r.CustomerAddress)
	case "businessName":
		return unmarshalString(raw, &r.BusinessName)
	case "businessAddress":
		return unmarshalString(raw, &r.BusinessAddress)
	case "businessPhone":
		return unmarshalString(raw, &r.BusinessPhone)
	case "businessEmail":
		return unmarshalString(raw, &r.BusinessEmail)
	case "logoUrl":
		return unmarshalString(raw, &r.LogoURL)
	case "currency":
		return unmarshalString(raw, &r.Currency)
	case "status":
		return unmarshalString(raw, &r.Status)
	case "notes":
		return unmarshalString(raw, &r.Notes)
	case "subtotal":
		return unmarshalNumber(raw, &r.Subtotal)
	case "taxAmount":
		return unmarshalNumber(raw, &r.TaxAmount)
	case "discount":
		return unmarshalNumber(raw, &r.Discount)
	case "totalAmount":
		return unmarshalNumber(raw, &r.TotalAmount)
	case "items":
		return json.Unmarshal(raw, &r.Items)
	case "itemAdditionalFields":
		return json.Unmarshal(raw, &r.ItemAdditionalFields)
	case "customFields":
		return r.assignCustomFields(raw)
	default:
		// Canonical keys without their own case (userId, createdAt, ...)
		// are storage bookkeeping with no rendered representation.
		if IsCanonicalReceiptKey(key) {
			return nil
		}
		var value any
		if err := json.Unmarshal(raw, &value); err != nil {
			return err
		}
		r.SetExtra(key, value)
		return nil
	}
}

func (r *Receipt) assignCustomFields(raw json.RawMessage) error {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return err
	}
	r.CustomFieldValues = make(map[string]string, len(m))
	for k, v := range m {
		if v == nil {
			continue
		}
		r.CustomFieldValues[k] = coerceString(v)
	}
	return nil
}

// IsCanonicalReceiptKey reports whether key belongs to the fixed set of
// top-level fields already rendered by a dedicated section.
func IsCanonicalReceiptKey(key string) bool {
	return canonicalReceiptKeys[key]
}

func unmarshalString(raw json.RawMessage, dst *string) error {
	if bytes.Equal(raw, []byte("null")) {
		return nil
	}
	// Tolerate numeric values stored where strings are expected.
	if err := json.Unmarshal(raw, dst); err != nil {
		var v any
		if err2 := json.Unmarshal(raw, &v); err2 != nil {
			return err
		}
		*dst = coerceString(v)
	}
	return nil
}

func unmarshalNumber(raw json.RawMessage, dst *float64) error {
	if bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	*dst = coerceFloat(v)
	return nil
}
