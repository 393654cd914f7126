package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline/receipt-engine/internal/models"
)

func newItem(fields map[string]any, order ...string) models.ReceiptItem {
	it := models.NewReceiptItem()
	if len(order) > 0 {
		for _, k := range order {
			it.Set(k, fields[k])
		}
		return it
	}
	for _, k := range []string{"description", "quantity", "unitPrice", "totalPrice"} {
		if v, ok := fields[k]; ok {
			it.Set(k, v)
		}
	}
	for k, v := range fields {
		if _, ok := it.Get(k); !ok {
			it.Set(k, v)
		}
	}
	return it
}

func baseReceipt() *models.Receipt {
	return &models.Receipt{
		ReceiptNumber: "RCP-1001",
		IssueDate:     "2025-06-01",
		CustomerName:  "Acme Corp",
		Currency:      "USD",
		Items: []models.ReceiptItem{
			newItem(map[string]any{"description": "Web Design", "quantity": 1.0, "unitPrice": 500.0, "totalPrice": 500.0}),
		},
	}
}

func TestAssemble_StructuralErrors(t *testing.T) {
	t.Run("nil receipt", func(t *testing.T) {
		_, err := Assemble(nil, nil, nil)
		assert.ErrorIs(t, err, ErrNilReceipt)
	})

	t.Run("nil items list", func(t *testing.T) {
		r := baseReceipt()
		r.Items = nil
		_, err := Assemble(r, nil, nil)
		assert.ErrorIs(t, err, ErrNoItems)
	})

	t.Run("empty items list is not an error", func(t *testing.T) {
		r := baseReceipt()
		r.Items = []models.ReceiptItem{}
		_, err := Assemble(r, nil, nil)
		assert.NoError(t, err)
	})

	t.Run("missing receipt number", func(t *testing.T) {
		r := baseReceipt()
		r.ReceiptNumber = ""
		_, err := Assemble(r, nil, nil)
		assert.ErrorIs(t, err, ErrNoReceiptNumber)
	})
}

func TestAssemble_TablePadding(t *testing.T) {
	t.Run("one item renders four rows", func(t *testing.T) {
		doc, err := Assemble(baseReceipt(), nil, nil)
		require.NoError(t, err)

		// 1 real + 1 pad to reach two visible + 2 trailing
		assert.Len(t, doc.Table.Rows, 4)
		assert.Equal(t, "Web Design", doc.Table.Rows[0][0])
		assert.Equal(t, "", doc.Table.Rows[1][0])
	})

	t.Run("padding law holds for growing item counts", func(t *testing.T) {
		for n := 0; n <= 5; n++ {
			r := baseReceipt()
			r.Items = make([]models.ReceiptItem, 0, n)
			for i := 0; i < n; i++ {
				r.Items = append(r.Items, newItem(map[string]any{"description": "row", "totalPrice": 1.0}))
			}

			doc, err := Assemble(r, nil, nil)
			require.NoError(t, err)

			want := n
			if want < 2 {
				want = 2
			}
			want += 2
			assert.Len(t, doc.Table.Rows, want, "items=%d", n)
		}
	})
}

func TestAssemble_CellFormatting(t *testing.T) {
	r := baseReceipt()
	r.Items = []models.ReceiptItem{
		newItem(map[string]any{"description": "Gadget", "quantity": 2.0, "unitPrice": 19.95, "totalPrice": 39.9}),
		newItem(map[string]any{"description": "Sparse"}),
	}

	doc, err := Assemble(r, nil, nil)
	require.NoError(t, err)

	t.Run("money columns get the currency prefix", func(t *testing.T) {
		assert.Equal(t, "$19.95", doc.Table.Rows[0][2])
		assert.Equal(t, "$39.90", doc.Table.Rows[0][3])
	})

	t.Run("plain number columns render 2-decimal without prefix", func(t *testing.T) {
		assert.Equal(t, "2.00", doc.Table.Rows[0][1])
	})

	t.Run("cells missing from an item render empty", func(t *testing.T) {
		assert.Equal(t, "Sparse", doc.Table.Rows[1][0])
		assert.Equal(t, "", doc.Table.Rows[1][1])
		assert.Equal(t, "", doc.Table.Rows[1][3])
	})
}

func TestAssemble_AdHocColumns(t *testing.T) {
	r := baseReceipt()
	r.ItemAdditionalFields = []models.FieldRef{{Name: "weight"}}
	r.Items = []models.ReceiptItem{}

	doc, err := Assemble(r, nil, nil)
	require.NoError(t, err)

	require.Len(t, doc.Table.Columns, 5)
	assert.Equal(t, "weight", doc.Table.Columns[4].Name)
	assert.Equal(t, "Weight (kg)", doc.Table.Columns[4].Label)
	assert.Equal(t, 2.5, doc.Table.Columns[0].Flex)
}

func TestAssemble_Totals(t *testing.T) {
	t.Run("subtotal and total recomputed from items", func(t *testing.T) {
		r := baseReceipt()
		r.TaxAmount = 50

		doc, err := Assemble(r, nil, nil)
		require.NoError(t, err)

		assert.Equal(t, "$500.00", doc.Totals.Subtotal)
		assert.Equal(t, "$50.00", doc.Totals.Tax)
		assert.Equal(t, "$550.00", doc.Totals.Total)
	})

	t.Run("zero discount omits the discount row", func(t *testing.T) {
		doc, err := Assemble(baseReceipt(), nil, nil)
		require.NoError(t, err)
		assert.Empty(t, doc.Totals.Discount)
	})

	t.Run("positive discount renders and reduces the total", func(t *testing.T) {
		r := baseReceipt()
		r.Discount = 100

		doc, err := Assemble(r, nil, nil)
		require.NoError(t, err)

		assert.Equal(t, "$100.00", doc.Totals.Discount)
		assert.Equal(t, "$400.00", doc.Totals.Total)
	})
}

func TestAssemble_HeaderAndStatus(t *testing.T) {
	t.Run("status badge uppercases and defaults to pending", func(t *testing.T) {
		r := baseReceipt()
		r.Status = "paid"
		doc, err := Assemble(r, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "PAID", doc.Status)

		r.Status = ""
		doc, err = Assemble(r, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "PENDING", doc.Status)
	})

	t.Run("receipt business fields override preferences per field", func(t *testing.T) {
		r := baseReceipt()
		r.BusinessName = "Receipt Co"
		prefs := &models.BrandingPreferences{
			BusinessName:    "Prefs Co",
			BusinessAddress: "1 Prefs Way",
		}

		doc, err := Assemble(r, nil, prefs)
		require.NoError(t, err)

		assert.Equal(t, "Receipt Co", doc.Header.BusinessName)
		assert.Equal(t, "1 Prefs Way", doc.Header.BusinessAddress)
	})

	t.Run("contact line omitted when phone and email both absent", func(t *testing.T) {
		doc, err := Assemble(baseReceipt(), nil, &models.BrandingPreferences{})
		require.NoError(t, err)
		assert.Empty(t, doc.Header.ContactLine)
	})

	t.Run("contact line joins phone and email", func(t *testing.T) {
		prefs := &models.BrandingPreferences{
			BusinessPhone: "555-0100",
			BusinessEmail: "billing@acme.test",
		}
		doc, err := Assemble(baseReceipt(), nil, prefs)
		require.NoError(t, err)
		assert.Equal(t, "555-0100 | billing@acme.test", doc.Header.ContactLine)
	})
}

func TestAssemble_NotesAndAdditionalDetails(t *testing.T) {
	t.Run("empty notes stay empty", func(t *testing.T) {
		doc, err := Assemble(baseReceipt(), nil, nil)
		require.NoError(t, err)
		assert.Empty(t, doc.Notes)
	})

	t.Run("extra top-level keys surface as additional details", func(t *testing.T) {
		r := baseReceipt()
		r.SetExtra("warehouseCode", "W3")

		doc, err := Assemble(r, nil, nil)
		require.NoError(t, err)

		require.Len(t, doc.AdditionalDetails, 1)
		assert.Equal(t, "Warehouse Code", doc.AdditionalDetails[0].Label)
		assert.Equal(t, "W3", doc.AdditionalDetails[0].Value)
	})
}

func TestAssemble_CustomFields(t *testing.T) {
	tmpl := &models.BusinessTemplate{
		Name: "Consulting",
		CustomFields: []models.CustomField{
			{LineItemField: models.LineItemField{Name: "warranty", Label: "Warranty"}, Section: models.SectionFooter, Order: 2},
			{LineItemField: models.LineItemField{Name: "returnPolicy", Label: "Return Policy"}, Section: models.SectionFooter, Order: 1},
			{LineItemField: models.LineItemField{Name: "poNumber", Label: "PO #"}, Section: models.SectionHeader, Order: 1},
		},
	}

	t.Run("footer fields sort by order and skip empty values", func(t *testing.T) {
		r := baseReceipt()
		r.CustomFieldValues = map[string]string{
			"warranty":     "12 months",
			"returnPolicy": "30 days",
			"poNumber":     "PO-77",
		}

		doc, err := Assemble(r, tmpl, nil)
		require.NoError(t, err)

		require.Len(t, doc.FooterFields, 2)
		assert.Equal(t, "Return Policy", doc.FooterFields[0].Label)
		assert.Equal(t, "Warranty", doc.FooterFields[1].Label)

		require.Len(t, doc.Details.CustomFields, 1)
		assert.Equal(t, "PO-77", doc.Details.CustomFields[0].Value)
	})

	t.Run("fields without a receipt value are dropped", func(t *testing.T) {
		r := baseReceipt()
		r.CustomFieldValues = map[string]string{"warranty": "12 months"}

		doc, err := Assemble(r, tmpl, nil)
		require.NoError(t, err)

		require.Len(t, doc.FooterFields, 1)
		assert.Equal(t, "Warranty", doc.FooterFields[0].Label)
		assert.Empty(t, doc.Details.CustomFields)
	})
}

func TestAssemble_FooterAndStyle(t *testing.T) {
	t.Run("fixed fallbacks when preferences are absent", func(t *testing.T) {
		doc, err := Assemble(baseReceipt(), nil, nil)
		require.NoError(t, err)

		assert.Equal(t, defaultThankYouText, doc.Footer.ThankYou)
		assert.Equal(t, defaultContactText, doc.Footer.Contact)
		assert.Equal(t, models.DefaultTableColor, doc.Style.TableColor)
	})

	t.Run("preferences override footer text and color", func(t *testing.T) {
		prefs := &models.BrandingPreferences{
			FooterThankYouText: "Cheers!",
			FooterContactInfo:  "support@acme.test",
			TableColor:         "#112233",
		}
		doc, err := Assemble(baseReceipt(), nil, prefs)
		require.NoError(t, err)

		assert.Equal(t, "Cheers!", doc.Footer.ThankYou)
		assert.Equal(t, "support@acme.test", doc.Footer.Contact)
		assert.Equal(t, "#112233", doc.Style.TableColor)
	})
}

func TestAssemble_Idempotent(t *testing.T) {
	r := baseReceipt()
	r.TaxAmount = 50
	r.SetExtra("warehouseCode", "W3")

	first, err := Assemble(r, nil, nil)
	require.NoError(t, err)
	second, err := Assemble(r, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
