package document

import (
	"github.com/ledgerline/receipt-engine/internal/layout"
	"github.com/ledgerline/receipt-engine/internal/models"
	"github.com/ledgerline/receipt-engine/internal/schema"
)

// Document is the renderer-agnostic tree the assembler produces. Sections
// appear in render order; an empty/zero section means "omit", never an
// error. The tree is the engine's only contract surface.
type Document struct {
	Header            BrandHeader     `json:"header"`
	Status            string          `json:"status"`
	Customer          CustomerBlock   `json:"customer"`
	Details           DetailsBlock    `json:"details"`
	Table             ItemsTable      `json:"table"`
	Totals            TotalsBlock     `json:"totals"`
	Notes             string          `json:"notes,omitempty"`
	AdditionalDetails []schema.Detail `json:"additionalDetails,omitempty"`
	FooterFields      []FieldValue    `json:"footerFields,omitempty"`
	Footer            FooterBlock     `json:"footer"`
	Style             Style           `json:"style"`
}

// BrandHeader is the top brand block. ContactLine is the combined
// phone/email line, already joined; empty means the line is omitted
// entirely rather than rendered blank.
type BrandHeader struct {
	LogoURL         string `json:"logoUrl,omitempty"`
	BusinessName    string `json:"businessName,omitempty"`
	BusinessAddress string `json:"businessAddress,omitempty"`
	ContactLine     string `json:"contactLine,omitempty"`
}

// CustomerBlock is the bill-to block. Name is always present; the rest
// render only when set.
type CustomerBlock struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// DetailsBlock is the receipt-metadata block rendered beside the customer
// block. CustomFields carries the template's header-section custom fields
// that have a value on this receipt, in template order.
type DetailsBlock struct {
	ReceiptNumber string       `json:"receiptNumber"`
	IssueDate     string       `json:"issueDate,omitempty"`
	DueDate       string       `json:"dueDate,omitempty"`
	PaymentTerms  string       `json:"paymentTerms,omitempty"`
	Reference     string       `json:"reference,omitempty"`
	CustomFields  []FieldValue `json:"customFields,omitempty"`
}

// FieldValue is one rendered label/value pair.
type FieldValue struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// TableColumn merges a column definition with its layout allocation.
type TableColumn struct {
	Name  string           `json:"name"`
	Label string           `json:"label"`
	Type  models.FieldType `json:"type"`
	layout.ColumnLayout
}

// ItemsTable is the line-items table. Rows holds formatted cell strings,
// one slice entry per column, including the cosmetic padding rows.
type ItemsTable struct {
	Columns []TableColumn `json:"columns"`
	Rows    [][]string    `json:"rows"`
}

// TotalsBlock holds the formatted money aggregates. Discount is empty when
// no discount applies, which omits the row.
type TotalsBlock struct {
	Subtotal string `json:"subtotal"`
	Discount string `json:"discount,omitempty"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
}

// FooterBlock carries the closing text lines, both guaranteed non-empty
// via fixed fallbacks.
type FooterBlock struct {
	ThankYou string `json:"thankYou"`
	Contact  string `json:"contact"`
}

// Style carries branding knobs the renderer applies.
type Style struct {
	TableColor string `json:"tableColor"`
}
