package aggregate

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ledgerline/receipt-engine/internal/models"
)

func item(fields map[string]any) models.ReceiptItem {
	it := models.NewReceiptItem()
	for k, v := range fields {
		it.Set(k, v)
	}
	return it
}

func TestCompute(t *testing.T) {
	t.Run("single item, no tax or discount", func(t *testing.T) {
		items := []models.ReceiptItem{
			item(map[string]any{"description": "Web Design", "quantity": 1.0, "unitPrice": 500.0, "totalPrice": 500.0}),
		}

		totals := Compute(items, 0, 0)
		assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(500)))
		assert.True(t, totals.Total.Equal(decimal.NewFromInt(500)))
	})

	t.Run("subtotal is recomputed from items", func(t *testing.T) {
		items := []models.ReceiptItem{
			item(map[string]any{"totalPrice": 100.0}),
			item(map[string]any{"totalPrice": 250.5}),
		}

		totals := Compute(items, 0, 0)
		assert.True(t, totals.Subtotal.Equal(decimal.NewFromFloat(350.5)))
	})

	t.Run("total is subtotal minus discount plus tax", func(t *testing.T) {
		items := []models.ReceiptItem{
			item(map[string]any{"totalPrice": 200.0}),
		}

		totals := Compute(items, 16.5, 20)
		assert.True(t, totals.Total.Equal(decimal.NewFromFloat(196.5)))
	})

	t.Run("missing line totals contribute zero", func(t *testing.T) {
		items := []models.ReceiptItem{
			item(map[string]any{"totalPrice": 80.0}),
			item(map[string]any{"description": "unpriced"}),
		}

		totals := Compute(items, 0, 0)
		assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(80)))
	})

	t.Run("non-numeric line totals coerce to zero", func(t *testing.T) {
		items := []models.ReceiptItem{
			item(map[string]any{"totalPrice": "oops"}),
			item(map[string]any{"totalPrice": 40.0}),
		}

		totals := Compute(items, 0, 0)
		assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(40)))
	})

	t.Run("legacy amount alias counts toward subtotal", func(t *testing.T) {
		items := []models.ReceiptItem{
			item(map[string]any{"amount": 60.0}),
		}

		totals := Compute(items, 0, 0)
		assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(60)))
	})

	t.Run("empty item list yields zero totals", func(t *testing.T) {
		totals := Compute(nil, 0, 0)
		assert.True(t, totals.Subtotal.IsZero())
		assert.True(t, totals.Total.IsZero())
	})
}

func TestSymbol(t *testing.T) {
	assert.Equal(t, "$", Symbol("USD"))
	assert.Equal(t, "$", Symbol("usd"))
	assert.Equal(t, "€", Symbol("EUR"))
	assert.Equal(t, "CHF ", Symbol("chf"))
	assert.Equal(t, "$", Symbol(""))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "$500.00", FormatAmount("USD", decimal.NewFromInt(500)))
	assert.Equal(t, "€19.95", FormatAmount("EUR", decimal.NewFromFloat(19.95)))
	assert.Equal(t, "SEK 10.50", FormatAmount("SEK", decimal.NewFromFloat(10.5)))
	assert.Equal(t, "$-5.00", FormatAmount("USD", decimal.NewFromInt(-5)))
}

func TestFormatAmountFloat(t *testing.T) {
	assert.Equal(t, "$12.30", FormatAmountFloat("USD", 12.3))
}
