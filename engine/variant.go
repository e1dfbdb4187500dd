package engine

// Variant selects a solitaire rule set.
type Variant uint8

const (
	VariantFreeCell Variant = iota
	VariantKlondike

	numVariants
)

func (v Variant) String() string {
	switch v {
	case VariantFreeCell:
		return "freecell"
	case VariantKlondike:
		return "klondike"
	}
	return "unknown"
}

// ParseVariant maps a variant name to its tag.
func ParseVariant(s string) (Variant, bool) {
	for v := Variant(0); v < numVariants; v++ {
		if v.String() == s {
			return v, true
		}
	}
	return 0, false
}

// Layout bounds shared by all variants.
const (
	MaxColumns     = 8
	NumFoundations = 4
	NumFreeCells   = 4
	MaxStockLen    = 24

	// MaxColumnLen is the deepest a tableau column can legally get:
	// 6 face-down cards under a 13-card King run (Klondike), or a 7-card
	// deal with a 12-card run stacked on its top card (FreeCell).
	MaxColumnLen = 19
)

// VariantConfig parameterizes the rule engine. All validation and dealing
// reads these fields; adding a variant means adding a row to the table
// below, not forking the movement code.
type VariantConfig struct {
	Columns       uint8
	DealCounts    [MaxColumns]uint8
	DealAllFaceUp bool // false: only the last card of each column is dealt face-up

	FreeCells uint8

	HasStock         bool
	DrawCount        uint8 // stock cards flipped to the waste per draw
	AllowWasteRedeal bool  // empty stock may be rebuilt from the waste

	// EmptyColumnRank restricts which rank may start an empty tableau
	// column; 0 means any card.
	EmptyColumnRank uint8

	// SupermoveFormula bounds multi-card tableau moves by free-cell and
	// empty-column capacity. Without it, any face-up run may move whole.
	SupermoveFormula bool
}

var variantConfigs = [numVariants]VariantConfig{
	VariantFreeCell: {
		Columns:          8,
		DealCounts:       [MaxColumns]uint8{7, 7, 7, 7, 6, 6, 6, 6},
		DealAllFaceUp:    true,
		FreeCells:        4,
		SupermoveFormula: true,
	},
	VariantKlondike: {
		Columns:          7,
		DealCounts:       [MaxColumns]uint8{1, 2, 3, 4, 5, 6, 7},
		HasStock:         true,
		DrawCount:        1,
		AllowWasteRedeal: true,
		EmptyColumnRank:  RankKing,
	},
}

// Config returns the rule table for the variant. Unknown variants yield the
// zero config, which every predicate treats as "nothing is legal".
func (v Variant) Config() VariantConfig {
	if v >= numVariants {
		return VariantConfig{}
	}
	return variantConfigs[v]
}
