package render

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/ledgerline/receipt-engine/internal/document"
	"github.com/ledgerline/receipt-engine/internal/layout"
	"github.com/ledgerline/receipt-engine/internal/models"
)

func columnsWithFlex(flexes ...float64) []document.TableColumn {
	cols := make([]document.TableColumn, len(flexes))
	for i, f := range flexes {
		cols[i].ColumnLayout = layout.ColumnLayout{Flex: f}
	}
	return cols
}

func TestGridWidths(t *testing.T) {
	t.Run("four canonical columns fill the grid", func(t *testing.T) {
		widths := gridWidths(columnsWithFlex(3, 1, 1, 1))

		sum := 0
		for _, w := range widths {
			sum += w
		}
		assert.Equal(t, 12, sum)
		assert.Equal(t, 6, widths[0])
	})

	t.Run("every column gets at least one cell", func(t *testing.T) {
		widths := gridWidths(columnsWithFlex(2, 0.8, 0.8, 0.8, 0.8, 0.8, 0.8, 0.8, 1, 1))

		sum := 0
		for _, w := range widths {
			sum += w
			assert.GreaterOrEqual(t, w, 1)
		}
		assert.Equal(t, 12, sum)
	})

	t.Run("zero total flex splits evenly", func(t *testing.T) {
		widths := gridWidths(columnsWithFlex(0, 0, 0, 0))
		assert.Equal(t, []int{3, 3, 3, 3}, widths)
	})

	t.Run("empty input is nil", func(t *testing.T) {
		assert.Nil(t, gridWidths(nil))
	})
}

func TestParseHexColor(t *testing.T) {
	t.Run("valid color", func(t *testing.T) {
		c := parseHexColor("#3b82f6")
		require.NotNil(t, c)
		assert.Equal(t, &props.Color{Red: 0x3b, Green: 0x82, Blue: 0xf6}, c)
	})

	t.Run("malformed input defaults to black", func(t *testing.T) {
		for _, in := range []string{"", "3b82f6", "#fff", "#zzzzzz"} {
			assert.Equal(t, &props.Color{}, parseHexColor(in), in)
		}
	})
}

// onePixelPNG is a valid 1x1 PNG.
func onePixelPNG(t *testing.T) []byte {
	t.Helper()
	data, err := base64.StdEncoding.DecodeString(
		"iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg==")
	require.NoError(t, err)
	return data
}

func TestLogoExtension(t *testing.T) {
	t.Run("valid png", func(t *testing.T) {
		ext, ok := logoExtension(onePixelPNG(t))
		assert.True(t, ok)
		assert.Equal(t, extension.Png, ext)
	})

	t.Run("rejects non-image bytes", func(t *testing.T) {
		for _, data := range [][]byte{
			nil,
			[]byte("this is definitely not an image"),
			[]byte("<html><body>502 Bad Gateway</body></html>"),
			{0x89, 0x50, 0x4e, 0x47}, // png magic with no body
			{0xff, 0xd8, 0xff},       // jpeg magic with no body
		} {
			_, ok := logoExtension(data)
			assert.False(t, ok)
		}
	})
}

func renderableDocument(t *testing.T) *document.Document {
	t.Helper()

	item := models.NewReceiptItem()
	item.Set("description", "Web Design")
	item.Set("quantity", 1.0)
	item.Set("unitPrice", 500.0)
	item.Set("totalPrice", 500.0)

	doc, err := document.Assemble(&models.Receipt{
		ReceiptNumber: "RCP-1001",
		CustomerName:  "Acme Corp",
		Currency:      "USD",
		Items:         []models.ReceiptItem{item},
	}, nil, nil)
	require.NoError(t, err)
	return doc
}

func TestRenderer_Render(t *testing.T) {
	t.Run("corrupt logo bytes degrade to a logo-less receipt", func(t *testing.T) {
		r := NewRenderer(zap.NewNop())

		data, err := r.Render(renderableDocument(t), []byte("this is definitely not an image"))
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	})

	t.Run("valid logo renders", func(t *testing.T) {
		r := NewRenderer(zap.NewNop())

		data, err := r.Render(renderableDocument(t), onePixelPNG(t))
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	})

	t.Run("no logo renders", func(t *testing.T) {
		r := NewRenderer(zap.NewNop())

		data, err := r.Render(renderableDocument(t), nil)
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	})
}

func TestFitTable(t *testing.T) {
	r := NewRenderer(zap.NewNop())

	t.Run("within the limit passes through untouched", func(t *testing.T) {
		table := document.ItemsTable{
			Columns: columnsWithFlex(3, 1, 1, 1),
			Rows:    [][]string{{"a", "b", "c", "d"}},
		}
		assert.Equal(t, table, r.fitTable(table))
	})

	t.Run("overflow truncates columns and rows to the grid width", func(t *testing.T) {
		flexes := make([]float64, 14)
		for i := range flexes {
			flexes[i] = 1
		}
		row := make([]string, 14)

		fitted := r.fitTable(document.ItemsTable{
			Columns: columnsWithFlex(flexes...),
			Rows:    [][]string{row},
		})

		require.Len(t, fitted.Columns, 12)
		require.Len(t, fitted.Rows, 1)
		assert.Len(t, fitted.Rows[0], 12)

		widths := gridWidths(fitted.Columns)
		sum := 0
		for _, w := range widths {
			sum += w
		}
		assert.Equal(t, 12, sum)
	})
}
