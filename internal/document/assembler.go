package document

import (
	"sort"
	"strconv"
	"strings"

	"github.com/ledgerline/receipt-engine/internal/aggregate"
	"github.com/ledgerline/receipt-engine/internal/layout"
	"github.com/ledgerline/receipt-engine/internal/models"
	"github.com/ledgerline/receipt-engine/internal/schema"
)

// minVisibleRows and trailingPadRows implement the table padding policy:
// very short receipts get padded to at least minVisibleRows real-looking
// rows, then trailingPadRows empty rows always follow. Purely cosmetic
// spacing, not a data requirement.
const (
	minVisibleRows  = 2
	trailingPadRows = 2
)

// Fixed footer fallbacks used when the tenant set no preference.
const (
	defaultThankYouText = "Thank you for your business!"
	defaultContactText  = "Questions? Contact us anytime."
)

// moneyFieldNames are the number-typed fields formatted as currency rather
// than plain 2-decimal numbers.
var moneyFieldNames = map[string]bool{
	"amount":     true,
	"totalPrice": true,
	"price":      true,
	"unitPrice":  true,
}

// Assemble produces the document tree for one receipt. Template and
// preferences may be nil; every optional input degrades to an omitted
// section. The only hard failures are structural: a nil receipt, a missing
// items list (nil, not empty), or a missing receipt number.
//
// The pass is single and side-effect free, so concurrent calls over
// unrelated receipts need no coordination.
func Assemble(receipt *models.Receipt, tmpl *models.BusinessTemplate, prefs *models.BrandingPreferences) (*Document, error) {
	if receipt == nil {
		return nil, ErrNilReceipt
	}
	if receipt.Items == nil {
		return nil, ErrNoItems
	}
	if receipt.ReceiptNumber == "" {
		return nil, ErrNoReceiptNumber
	}

	if prefs == nil {
		prefs = &models.BrandingPreferences{}
	}

	columns := schema.InferColumns(receipt.Items, receipt.ItemAdditionalFields, tmpl)
	layouts := layout.Allocate(len(columns))

	doc := &Document{
		Header:            buildHeader(receipt, prefs),
		Status:            statusBadge(receipt.Status),
		Customer:          buildCustomer(receipt),
		Details:           buildDetails(receipt, tmpl),
		Table:             buildTable(receipt, columns, layouts),
		Totals:            buildTotals(receipt),
		Notes:             receipt.Notes,
		AdditionalDetails: schema.AdditionalDetails(receipt),
		FooterFields:      customFieldValues(receipt, tmpl, models.SectionFooter),
		Footer:            buildFooter(prefs),
		Style:             buildStyle(prefs),
	}

	return doc, nil
}

// buildHeader merges receipt-level business fields over tenant preferences
// field by field.
func buildHeader(r *models.Receipt, prefs *models.BrandingPreferences) BrandHeader {
	h := BrandHeader{
		LogoURL:         firstNonEmpty(r.LogoURL, prefs.LogoURL),
		BusinessName:    firstNonEmpty(r.BusinessName, prefs.BusinessName),
		BusinessAddress: firstNonEmpty(r.BusinessAddress, prefs.BusinessAddress),
	}

	phone := firstNonEmpty(r.BusinessPhone, prefs.BusinessPhone)
	email := firstNonEmpty(r.BusinessEmail, prefs.BusinessEmail)
	h.ContactLine = joinContact(phone, email)

	return h
}

// joinContact combines phone and email into one line, dropping whichever
// is absent. Both absent yields an empty line, which the renderer omits.
func joinContact(phone, email string) string {
	switch {
	case phone != "" && email != "":
		return phone + " | " + email
	case phone != "":
		return phone
	default:
		return email
	}
}

func statusBadge(status string) string {
	if status == "" {
		return "PENDING"
	}
	return strings.ToUpper(status)
}

func buildCustomer(r *models.Receipt) CustomerBlock {
	return CustomerBlock{
		Name:    r.CustomerName,
		Email:   r.CustomerEmail,
		Phone:   r.CustomerPhone,
		Address: r.CustomerAddress,
	}
}

func buildDetails(r *models.Receipt, tmpl *models.BusinessTemplate) DetailsBlock {
	return DetailsBlock{
		ReceiptNumber: r.ReceiptNumber,
		IssueDate:     r.IssueDate,
		DueDate:       r.DueDate,
		PaymentTerms:  r.PaymentTerms,
		Reference:     r.Reference,
		CustomFields:  customFieldValues(r, tmpl, models.SectionHeader),
	}
}

func buildTable(r *models.Receipt, columns []schema.Column, layouts []layout.ColumnLayout) ItemsTable {
	tableCols := make([]TableColumn, len(columns))
	for i, c := range columns {
		tableCols[i] = TableColumn{
			Name:         c.Name,
			Label:        c.Label,
			Type:         c.Type,
			ColumnLayout: layouts[i],
		}
	}

	rows := make([][]string, 0, max(len(r.Items), minVisibleRows)+trailingPadRows)
	for _, item := range r.Items {
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = formatCell(item, col, r.Currency)
		}
		rows = append(rows, row)
	}

	for len(rows) < minVisibleRows {
		rows = append(rows, emptyRow(len(columns)))
	}
	for i := 0; i < trailingPadRows; i++ {
		rows = append(rows, emptyRow(len(columns)))
	}

	return ItemsTable{Columns: tableCols, Rows: rows}
}

// formatCell renders one item value for its column. Number-typed cells
// with money-like names get the currency prefix; other numbers render as
// plain 2-decimal text; everything else is string-coerced. A field the
// item lacks renders as an empty string.
func formatCell(item models.ReceiptItem, col schema.Column, currency string) string {
	raw, ok := item.Get(col.Name)
	if !ok || raw == nil {
		return ""
	}

	if col.Type == models.FieldTypeNumber {
		v := item.Float(col.Name)
		if moneyFieldNames[col.Name] {
			return aggregate.FormatAmountFloat(currency, v)
		}
		return strconv.FormatFloat(v, 'f', 2, 64)
	}

	return item.String(col.Name)
}

func emptyRow(width int) []string {
	return make([]string, width)
}

func buildTotals(r *models.Receipt) TotalsBlock {
	totals := aggregate.Compute(r.Items, r.TaxAmount, r.Discount)

	block := TotalsBlock{
		Subtotal: aggregate.FormatAmount(r.Currency, totals.Subtotal),
		Tax:      aggregate.FormatAmount(r.Currency, totals.Tax),
		Total:    aggregate.FormatAmount(r.Currency, totals.Total),
	}
	if totals.Discount.IsPositive() {
		block.Discount = aggregate.FormatAmount(r.Currency, totals.Discount)
	}
	return block
}

// customFieldValues resolves the template's custom fields for one section,
// sorted by their declared order (stable, declaration order breaks ties),
// keeping only fields the receipt actually has a value for.
func customFieldValues(r *models.Receipt, tmpl *models.BusinessTemplate, section models.CustomFieldSection) []FieldValue {
	if tmpl == nil || len(tmpl.CustomFields) == 0 {
		return nil
	}

	fields := make([]models.CustomField, 0, len(tmpl.CustomFields))
	for _, cf := range tmpl.CustomFields {
		if cf.Section == section {
			fields = append(fields, cf)
		}
	}
	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].Order < fields[j].Order
	})

	var values []FieldValue
	for _, cf := range fields {
		value := r.CustomFieldValues[cf.Name]
		if value == "" {
			continue
		}
		label := cf.Label
		if label == "" {
			label = schema.FieldLabel(cf.Name)
		}
		values = append(values, FieldValue{Name: cf.Name, Label: label, Value: value})
	}
	return values
}

func buildFooter(prefs *models.BrandingPreferences) FooterBlock {
	return FooterBlock{
		ThankYou: firstNonEmpty(prefs.FooterThankYouText, defaultThankYouText),
		Contact:  firstNonEmpty(prefs.FooterContactInfo, defaultContactText),
	}
}

func buildStyle(prefs *models.BrandingPreferences) Style {
	return Style{
		TableColor: firstNonEmpty(prefs.TableColor, models.DefaultTableColor),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
