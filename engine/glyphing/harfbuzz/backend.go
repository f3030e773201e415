package harfbuzz

import (
	"github.com/go-text/typesetting/shaping"
	"github.com/npillmayer/termfont/core/font"
	"github.com/npillmayer/termfont/core/locate/locator"
)

// FacePair is a font face together with the means to shape text with it,
// as loaded for one position of a fallback chain.
type FacePair interface {
	// SetPixelSize sizes the face, returning the dimensions of a terminal cell.
	SetPixelSize(size float64, dpi uint32) (cellWidth, cellHeight float64, err error)
	// SizeMetrics returns the metrics of the sized face.
	SizeMetrics() font.SizeMetrics
	// Shape shapes text; clusters are byte offsets into text.
	Shape(text string, features []shaping.FontFeature) []RawGlyph
	Close() error
}

// Backend loads font faces for shaping.
type Backend interface {
	Load(h locator.Handle) (FacePair, error)
}

// BackendFunc adapts a function to the Backend interface.
type BackendFunc func(h locator.Handle) (FacePair, error)

// Load calls bf(h).
func (bf BackendFunc) Load(h locator.Handle) (FacePair, error) {
	return bf(h)
}

// DefaultBackend opens fonts with package font and shapes with go-text.
var DefaultBackend Backend = BackendFunc(loadFont)

func loadFont(h locator.Handle) (FacePair, error) {
	face, err := font.Open(h)
	if err != nil {
		return nil, err
	}
	return NewFont(face), nil
}
