package locale

// Direction is the writing direction of a language.
type Direction int

const (
	LeftToRight Direction = iota
	RightToLeft
)

func (d Direction) String() string {
	if d == RightToLeft {
		return "rtl"
	}
	return "ltr"
}

// Placement says on which side of a number an indicator glyph goes.
type Placement int

const (
	After Placement = iota
	Before
)

// indicatorPlacement is keyed by direction, not by locale, so adding a
// right-to-left language only needs its script in the RTL set.
var indicatorPlacement = map[Direction]Placement{
	LeftToRight: After,
	RightToLeft: Before,
}

// DefaultRightToLeftScripts are the ISO 15924 codes written right to left.
var DefaultRightToLeftScripts = []string{"Arab", "Hebr", "Thaa", "Syrc", "Nkoo", "Adlm", "Rohg", "Mand", "Samr"}

// PlaceIndicator attaches indicator to an already formatted number.
// It runs after number formatting so digit shaping never sees the glyph.
func PlaceIndicator(formatted, indicator string, dir Direction) string {
	if indicatorPlacement[dir] == Before {
		return indicator + formatted
	}
	return formatted + indicator
}
