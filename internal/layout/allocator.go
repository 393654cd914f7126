package layout

// Alignment is the horizontal alignment of a column.
type Alignment string

const (
	AlignLeft  Alignment = "left"
	AlignRight Alignment = "right"
)

// FontSize is the table font size class.
type FontSize string

const (
	FontNormal FontSize = "normal"
	FontSmall  FontSize = "small"
)

// Layout thresholds. These are pure parameters of (columnIndex,
// totalColumns); no text measurement happens, trading optimal packing for
// predictable output.
const (
	descriptionFlexWide   = 3.0 // total columns <= 4
	descriptionFlexMedium = 2.5 // total columns <= 5
	descriptionFlexNarrow = 2.0
	priceFlex             = 1.0
	middleFlexWide        = 1.0 // total columns <= 4
	middleFlexNarrow      = 0.8
	smallFontThreshold    = 5 // columns above this drop to small font
)

// ColumnLayout is the sizing decision for one column.
type ColumnLayout struct {
	Flex     float64  `json:"flex"`
	Align    Alignment `json:"align"`
	FontSize FontSize  `json:"fontSize"`
}

// Allocate assigns a relative width and alignment to each of n columns.
// The first (description) column is widest and left-aligned; the last two
// are price fields, right-aligned; middle columns shrink as ad hoc fields
// push the count up, preventing overflow instead of truncating text.
func Allocate(n int) []ColumnLayout {
	if n <= 0 {
		return nil
	}

	font := FontNormal
	if n > smallFontThreshold {
		font = FontSmall
	}

	layouts := make([]ColumnLayout, n)
	for i := range layouts {
		layouts[i] = ColumnLayout{
			Flex:     flexFor(i, n),
			Align:    alignFor(i, n),
			FontSize: font,
		}
	}
	return layouts
}

func flexFor(i, n int) float64 {
	switch {
	case i == 0:
		if n <= 4 {
			return descriptionFlexWide
		}
		if n <= 5 {
			return descriptionFlexMedium
		}
		return descriptionFlexNarrow
	case i >= n-2:
		return priceFlex
	default:
		if n <= 4 {
			return middleFlexWide
		}
		return middleFlexNarrow
	}
}

func alignFor(i, n int) Alignment {
	if i > 0 && i >= n-2 {
		return AlignRight
	}
	return AlignLeft
}
