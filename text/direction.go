package text

import "golang.org/x/text/unicode/bidi"

// Direction is the base direction of a paragraph.
type Direction uint8

const (
	// DirectionAuto detects the base direction from the first strong
	// directional rune (zero value).
	DirectionAuto Direction = iota
	// DirectionLTR forces left-to-right layout.
	DirectionLTR
	// DirectionRTL forces right-to-left layout.
	DirectionRTL
)

// String returns the string representation of the direction.
func (d Direction) String() string {
	switch d {
	case DirectionAuto:
		return "Auto"
	case DirectionLTR:
		return "LTR"
	case DirectionRTL:
		return "RTL"
	default:
		return unknownStr
	}
}

// BaseDirection detects the base direction of s per the Unicode bidi
// algorithm. Neutral or empty input resolves to LTR.
func BaseDirection(s string) Direction {
	if s == "" {
		return DirectionLTR
	}
	p := bidi.Paragraph{}
	if _, err := p.SetString(s); err != nil {
		return DirectionLTR
	}
	o, err := p.Order()
	if err != nil {
		return DirectionLTR
	}
	if o.Direction() == bidi.RightToLeft {
		return DirectionRTL
	}
	return DirectionLTR
}

// visualOrder returns runes in visual order for the given base direction.
// RTL paragraphs render with glyph order reversed; advance arithmetic is
// unaffected.
func visualOrder(runes []rune, d Direction) []rune {
	if d != DirectionRTL {
		return runes
	}
	out := make([]rune, len(runes))
	for i, r := range runes {
		out[len(runes)-1-i] = r
	}
	return out
}
