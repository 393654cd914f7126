package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ReceiptItem is an open map of field name to scalar value. Key insertion
// order is preserved so that column discovery is deterministic across
// renders of the same receipt.
type ReceiptItem struct {
	keys   []string
	values map[string]any
}

// NewReceiptItem returns an empty item.
func NewReceiptItem() ReceiptItem {
	return ReceiptItem{values: make(map[string]any)}
}

// Set stores a value, appending the key to the order list on first write.
func (it *ReceiptItem) Set(key string, value any) {
	if it.values == nil {
		it.values = make(map[string]any)
	}
	if _, ok := it.values[key]; !ok {
		it.keys = append(it.keys, key)
	}
	it.values[key] = value
}

// Get returns the raw value for key.
func (it ReceiptItem) Get(key string) (any, bool) {
	v, ok := it.values[key]
	return v, ok
}

// Keys returns the item's keys in insertion order.
func (it ReceiptItem) Keys() []string {
	return it.keys
}

// Float coerces the value at key to a float64. Non-numeric values coerce
// to 0 so aggregation never propagates NaN into the document.
func (it ReceiptItem) Float(key string) float64 {
	v, ok := it.values[key]
	if !ok {
		return 0
	}
	return coerceFloat(v)
}

// String coerces the value at key to its display string. Missing values
// render as the empty string, never a null literal.
func (it ReceiptItem) String(key string) string {
	v, ok := it.values[key]
	if !ok || v == nil {
		return ""
	}
	return coerceString(v)
}

// Amount returns the item's line total, honoring the legacy "amount" alias
// when "totalPrice" is absent.
func (it ReceiptItem) Amount() float64 {
	if _, ok := it.values["totalPrice"]; ok {
		return it.Float("totalPrice")
	}
	return it.Float("amount")
}

// UnmarshalJSON decodes the item from a JSON object while recording key
// order, which encoding/json's map decoding would otherwise discard.
func (it *ReceiptItem) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("receipt item must be a JSON object")
	}

	it.keys = nil
	it.values = make(map[string]any)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key := keyTok.(string)

		var value any
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("decode item field %s: %w", key, err)
		}
		it.Set(key, normalizeValue(value))
	}

	_, err = dec.Token() // closing brace
	return err
}

// MarshalJSON encodes the item preserving key order.
func (it ReceiptItem) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range it.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(it.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// normalizeValue converts json.Number tokens to float64 so callers see one
// numeric representation.
func normalizeValue(v any) any {
	if n, ok := v.(json.Number); ok {
		if f, err := n.Float64(); err == nil {
			return f
		}
		return n.String()
	}
	return v
}

func coerceFloat(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func coerceString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", x)
	}
}
