package text

import "errors"

// Sentinel errors for text package.
var (
	// ErrNilMeasurer is returned when layout is attempted without a measurer.
	ErrNilMeasurer = errors.New("text: measurer is nil")

	// ErrLineWidth is returned when a wrapped layout's line width is not
	// positive or is narrower than the widest single glyph, so wrapping
	// could not make progress.
	ErrLineWidth = errors.New("text: line width too narrow for wrapping")
)
