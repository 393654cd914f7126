package render

import (
	"bytes"
	"fmt"
	goimage "image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"strconv"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"go.uber.org/zap"

	"github.com/ledgerline/receipt-engine/internal/document"
	"github.com/ledgerline/receipt-engine/internal/layout"
)

// Page margins in mm.
const (
	marginLeft  = 10
	marginTop   = 15
	marginRight = 10
)

// Body font sizes per layout font class.
const (
	bodyFontNormal = 9.0
	bodyFontSmall  = 8.0
	headerFont     = 10.0
)

// maxTableColumns is maroto's physical grid width: every column needs at
// least one grid cell, so a PDF page cannot show more than 12 columns.
const maxTableColumns = 12

// Renderer walks a document tree and produces PDF bytes. It performs no
// I/O; the logo arrives as an already-fetched blob and a blob that fails
// to decode is dropped, never fatal.
type Renderer struct {
	logger *zap.Logger
}

// NewRenderer creates a PDF renderer.
func NewRenderer(logger *zap.Logger) *Renderer {
	return &Renderer{logger: logger}
}

// Render produces the PDF for an assembled document.
func (r *Renderer) Render(doc *document.Document, logo []byte) ([]byte, error) {
	cfg := config.NewBuilder().
		WithLeftMargin(marginLeft).
		WithTopMargin(marginTop).
		WithRightMargin(marginRight).
		Build()

	m := maroto.New(cfg)

	accent := parseHexColor(doc.Style.TableColor)

	r.addHeader(m, doc, logo, accent)
	r.addCustomerAndDetails(m, doc)
	r.addItemsTable(m, doc, accent)
	r.addTotals(m, doc)
	r.addNotes(m, doc)
	r.addAdditionalDetails(m, doc)
	r.addFooterFields(m, doc)
	r.addFooter(m, doc)

	generated, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate pdf: %w", err)
	}

	data := generated.GetBytes()
	r.logger.Debug("PDF generated",
		zap.String("receipt_number", doc.Details.ReceiptNumber),
		zap.Int("columns", len(doc.Table.Columns)),
		zap.Int("bytes", len(data)))
	return data, nil
}

func (r *Renderer) addHeader(m core.Maroto, doc *document.Document, logo []byte, accent *props.Color) {
	if len(logo) > 0 {
		if ext, ok := logoExtension(logo); ok {
			m.AddRow(18,
				image.NewFromBytesCol(3, logo, ext, props.Rect{
					Center:  false,
					Percent: 90,
				}),
				col.New(9),
			)
		} else {
			r.logger.Warn("Logo bytes are not a decodable image, omitting logo",
				zap.Int("bytes", len(logo)))
		}
	}

	left := col.New(7)
	if doc.Header.BusinessName != "" {
		left.Add(text.New(doc.Header.BusinessName, props.Text{
			Size:  16,
			Style: fontstyle.Bold,
			Align: align.Left,
			Color: accent,
		}))
	}
	if doc.Header.BusinessAddress != "" {
		left.Add(text.New(doc.Header.BusinessAddress, props.Text{
			Size:  bodyFontNormal,
			Top:   8,
			Align: align.Left,
		}))
	}
	if doc.Header.ContactLine != "" {
		left.Add(text.New(doc.Header.ContactLine, props.Text{
			Size:  bodyFontNormal,
			Top:   13,
			Align: align.Left,
		}))
	}

	right := col.New(5).Add(
		text.New("RECEIPT", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Right,
			Color: accent,
		}),
		text.New(fmt.Sprintf("# %s", doc.Details.ReceiptNumber), props.Text{
			Size:  headerFont,
			Top:   9,
			Align: align.Right,
		}),
		text.New(doc.Status, props.Text{
			Size:  headerFont,
			Style: fontstyle.Bold,
			Top:   14,
			Align: align.Right,
		}),
	)

	m.AddRow(26, left, right)
	m.AddRow(4, line.NewCol(12))
}

func (r *Renderer) addCustomerAndDetails(m core.Maroto, doc *document.Document) {
	left := col.New(6).Add(text.New("BILL TO:", props.Text{
		Size:  headerFont,
		Style: fontstyle.Bold,
		Align: align.Left,
	}))
	leftTop := 5.0
	for _, v := range []string{doc.Customer.Name, doc.Customer.Email, doc.Customer.Phone, doc.Customer.Address} {
		if v == "" {
			continue
		}
		left.Add(text.New(v, props.Text{Size: bodyFontNormal, Top: leftTop, Align: align.Left}))
		leftTop += 5
	}

	right := col.New(6).Add(text.New("RECEIPT DETAILS:", props.Text{
		Size:  headerFont,
		Style: fontstyle.Bold,
		Align: align.Right,
	}))
	lines := []string{fmt.Sprintf("Receipt #: %s", doc.Details.ReceiptNumber)}
	if doc.Details.IssueDate != "" {
		lines = append(lines, fmt.Sprintf("Issue Date: %s", doc.Details.IssueDate))
	}
	if doc.Details.DueDate != "" {
		lines = append(lines, fmt.Sprintf("Due Date: %s", doc.Details.DueDate))
	}
	if doc.Details.PaymentTerms != "" {
		lines = append(lines, fmt.Sprintf("Payment Terms: %s", doc.Details.PaymentTerms))
	}
	if doc.Details.Reference != "" {
		lines = append(lines, fmt.Sprintf("Reference: %s", doc.Details.Reference))
	}
	for _, cf := range doc.Details.CustomFields {
		lines = append(lines, fmt.Sprintf("%s: %s", cf.Label, cf.Value))
	}
	rightTop := 5.0
	for _, l := range lines {
		right.Add(text.New(l, props.Text{Size: bodyFontNormal, Top: rightTop, Align: align.Right}))
		rightTop += 5
	}

	height := 8 + math.Max(leftTop, rightTop)
	m.AddRow(height, left, right)
	m.AddRow(4, line.NewCol(12))
}

func (r *Renderer) addItemsTable(m core.Maroto, doc *document.Document, accent *props.Color) {
	table := r.fitTable(doc.Table)
	widths := gridWidths(table.Columns)

	headerCols := make([]core.Col, len(table.Columns))
	for i, c := range table.Columns {
		headerCols[i] = col.New(widths[i]).Add(text.New(c.Label, props.Text{
			Size:  fontSize(c.FontSize),
			Style: fontstyle.Bold,
			Align: alignment(c.Align),
			Color: accent,
		}))
	}
	m.AddRow(8, headerCols...)
	m.AddRow(2, line.NewCol(12))

	for _, row := range table.Rows {
		cols := make([]core.Col, len(table.Columns))
		for i, c := range table.Columns {
			cols[i] = col.New(widths[i]).Add(text.New(row[i], props.Text{
				Size:  fontSize(c.FontSize),
				Align: alignment(c.Align),
			}))
		}
		m.AddRow(7, cols...)
	}

	m.AddRow(3, line.NewCol(12))
}

// fitTable truncates the table to the grid's physical column limit. The
// document tree keeps every column for the preview surface; only the PDF
// loses the overflow, and loudly.
func (r *Renderer) fitTable(table document.ItemsTable) document.ItemsTable {
	if len(table.Columns) <= maxTableColumns {
		return table
	}

	r.logger.Warn("Items table exceeds the PDF column limit, truncating",
		zap.Int("columns", len(table.Columns)),
		zap.Int("limit", maxTableColumns))

	fitted := document.ItemsTable{
		Columns: table.Columns[:maxTableColumns],
		Rows:    make([][]string, len(table.Rows)),
	}
	for i, row := range table.Rows {
		if len(row) > maxTableColumns {
			row = row[:maxTableColumns]
		}
		fitted.Rows[i] = row
	}
	return fitted
}

func (r *Renderer) addTotals(m core.Maroto, doc *document.Document) {
	addTotalRow := func(label, value string, bold bool) {
		style := fontstyle.Normal
		size := bodyFontNormal
		if bold {
			style = fontstyle.Bold
			size = 12
		}
		m.AddRow(6,
			col.New(8),
			col.New(2).Add(text.New(label, props.Text{Size: size, Style: style, Align: align.Right})),
			col.New(2).Add(text.New(value, props.Text{Size: size, Style: style, Align: align.Right})),
		)
	}

	addTotalRow("Subtotal:", doc.Totals.Subtotal, false)
	if doc.Totals.Discount != "" {
		addTotalRow("Discount:", "-"+doc.Totals.Discount, false)
	}
	addTotalRow("Tax:", doc.Totals.Tax, false)
	m.AddRow(2, col.New(8), line.NewCol(4))
	addTotalRow("TOTAL:", doc.Totals.Total, true)
}

func (r *Renderer) addNotes(m core.Maroto, doc *document.Document) {
	if doc.Notes == "" {
		return
	}
	m.AddRow(4)
	m.AddRow(14, col.New(12).Add(
		text.New("Notes", props.Text{Size: headerFont, Style: fontstyle.Bold, Align: align.Left}),
		text.New(doc.Notes, props.Text{Size: bodyFontNormal, Top: 5, Align: align.Left}),
	))
}

func (r *Renderer) addAdditionalDetails(m core.Maroto, doc *document.Document) {
	if len(doc.AdditionalDetails) == 0 {
		return
	}
	m.AddRow(4)
	m.AddRow(8, col.New(12).Add(
		text.New("Additional Details", props.Text{Size: headerFont, Style: fontstyle.Bold, Align: align.Left}),
	))
	for _, d := range doc.AdditionalDetails {
		m.AddRow(6, col.New(12).Add(
			text.New(fmt.Sprintf("%s: %s", d.Label, d.Value), props.Text{Size: bodyFontNormal, Align: align.Left}),
		))
	}
}

func (r *Renderer) addFooterFields(m core.Maroto, doc *document.Document) {
	for _, f := range doc.FooterFields {
		m.AddRow(6, col.New(12).Add(
			text.New(fmt.Sprintf("%s: %s", f.Label, f.Value), props.Text{Size: bodyFontNormal, Align: align.Center}),
		))
	}
}

func (r *Renderer) addFooter(m core.Maroto, doc *document.Document) {
	m.AddRow(6)
	m.AddRow(4, line.NewCol(12))
	m.AddRow(8, col.New(12).Add(
		text.New(doc.Footer.ThankYou, props.Text{Size: bodyFontNormal, Align: align.Center}),
	))
	m.AddRow(6, col.New(12).Add(
		text.New(doc.Footer.Contact, props.Text{
			Size:  8,
			Align: align.Center,
			Color: &props.Color{Red: 128, Green: 128, Blue: 128},
		}),
	))
}

// gridWidths maps flex weights onto maroto's 12-column grid using largest
// remainder rounding, guaranteeing the widths sum to exactly 12 and every
// column gets at least one cell.
func gridWidths(columns []document.TableColumn) []int {
	n := len(columns)
	if n == 0 {
		return nil
	}

	flexes := make([]float64, n)
	total := 0.0
	for i, c := range columns {
		flexes[i] = c.Flex
		total += c.Flex
	}
	if total <= 0 {
		for i := range flexes {
			flexes[i] = 1
		}
		total = float64(n)
	}

	widths := make([]int, n)
	remainders := make([]float64, n)
	used := 0
	for i := range columns {
		exact := flexes[i] / total * 12
		widths[i] = int(exact)
		if widths[i] < 1 {
			widths[i] = 1
			exact = 1
		}
		remainders[i] = exact - float64(int(exact))
		used += widths[i]
	}

	for used < 12 {
		best := 0
		for i := 1; i < n; i++ {
			if remainders[i] > remainders[best] {
				best = i
			}
		}
		widths[best]++
		remainders[best] = 0
		used++
	}
	for used > 12 {
		widest := 0
		for i := 1; i < n; i++ {
			if widths[i] > widths[widest] {
				widest = i
			}
		}
		if widths[widest] <= 1 {
			break
		}
		widths[widest]--
		used--
	}

	return widths
}

func fontSize(fs layout.FontSize) float64 {
	if fs == layout.FontSmall {
		return bodyFontSmall
	}
	return bodyFontNormal
}

func alignment(a layout.Alignment) align.Type {
	if a == layout.AlignRight {
		return align.Right
	}
	return align.Left
}

// parseHexColor converts "#rrggbb" to a maroto color, defaulting to black
// on malformed input.
func parseHexColor(hex string) *props.Color {
	if len(hex) != 7 || hex[0] != '#' {
		return &props.Color{}
	}
	red, err1 := strconv.ParseInt(hex[1:3], 16, 0)
	green, err2 := strconv.ParseInt(hex[3:5], 16, 0)
	blue, err3 := strconv.ParseInt(hex[5:7], 16, 0)
	if err1 != nil || err2 != nil || err3 != nil {
		return &props.Color{}
	}
	return &props.Color{Red: int(red), Green: int(green), Blue: int(blue)}
}

// logoExtension verifies the blob fully decodes as a PNG or JPEG and
// returns the matching maroto extension. Anything else is dropped by the
// caller: an HTML error page fetched with status 200, a truncated image,
// or a non-image data URI must degrade to a logo-less receipt, not fail
// the render inside Generate.
func logoExtension(data []byte) (extension.Type, bool) {
	_, format, err := goimage.Decode(bytes.NewReader(data))
	if err != nil {
		return "", false
	}
	switch format {
	case "png":
		return extension.Png, true
	case "jpeg":
		return extension.Jpg, true
	default:
		return "", false
	}
}
