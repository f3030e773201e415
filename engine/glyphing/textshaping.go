/*
Package glyphing defines the result types of shaping text for a fixed-grid
(terminal) renderer, together with the interface of shapers.

A shaper turns a string into glyphs. Every glyph carries the snippet of text
it stands for, the number of terminal cells it occupies, and the position in a
chain of fallback fonts of the font it has been taken from.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package glyphing

import (
	"fmt"

	"github.com/npillmayer/termfont/core/dimen"
)

// FallbackIdx is a position in a chain of fallback fonts. 0 is the primary font.
type FallbackIdx int

// GlyphInfo is a positioned glyph, the result of shaping.
type GlyphInfo struct {
	Text     string      // text snippet this glyph stands for, may be empty for marks
	NumCells uint8       // number of terminal cells the snippet occupies
	FontIdx  FallbackIdx // font the glyph is taken from
	GlyphPos uint32      // glyph index within that font
	Cluster  uint32      // byte offset of Text within the shaped string
	XAdvance dimen.Px    // advance after glyph has been set
	YAdvance dimen.Px    //
	XOffset  dimen.Px    // position of glyph relative to pen position
	YOffset  dimen.Px    //
}

func (g GlyphInfo) String() string {
	return fmt.Sprintf("(%q cells=%d font=%d GID=%d cluster=%d advance=%s)",
		g.Text, g.NumCells, g.FontIdx, g.GlyphPos, g.Cluster, g.XAdvance)
}

// FontMetrics are the metrics of the primary font of a shaper, at a given
// size and display density.
type FontMetrics struct {
	CellWidth          dimen.Px // width of a terminal cell
	CellHeight         dimen.Px // height of a terminal cell
	Descender          dimen.Px // negative, below the baseline
	UnderlineThickness dimen.Px //
	UnderlinePosition  dimen.Px // relative to the baseline, negative is below
}

// A Shaper creates a sequence of glyphs from a string. Glyphs are taken from
// fonts given at a size (in points) for a display density (dots per inch).
//
// Shapers are not required to be safe for concurrent use.
type Shaper interface {
	Shape(text string, size float64, dpi uint32) ([]GlyphInfo, error)
	Metrics(size float64, dpi uint32) (FontMetrics, error)
}

// Cells returns the number of terminal cells a glyph sequence occupies.
func Cells(glyphs []GlyphInfo) int {
	n := 0
	for _, g := range glyphs {
		n += int(g.NumCells)
	}
	return n
}

// Advance returns the horizontal extent of a glyph sequence.
func Advance(glyphs []GlyphInfo) dimen.Px {
	var w dimen.Px
	for _, g := range glyphs {
		w += g.XAdvance
	}
	return w
}
