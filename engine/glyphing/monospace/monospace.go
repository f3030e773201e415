package monospace

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/npillmayer/termfont/core/dimen"
	"github.com/npillmayer/termfont/engine/glyphing"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax11"
	"github.com/rivo/uniseg"
	"golang.org/x/text/width"
)

var graphemeClassesSetup sync.Once

func graphemeSplitter() *segment.Segmenter {
	graphemeClassesSetup.Do(grapheme.SetupGraphemeClasses)
	onGraphemes := grapheme.NewBreaker(1)
	return segment.NewSegmenter(onGraphemes)
}

// Graphemes calls f for every grapheme cluster of text, with the byte offset
// of the cluster and its width in cells.
func Graphemes(text string, context *uax11.Context, f func(pos int, grphm []byte, width int)) {
	if text == "" {
		return
	}
	if context == nil {
		context = uax11.LatinContext
	}
	seg := graphemeSplitter()
	seg.Init(strings.NewReader(text))
	pos := 0
	for seg.Next() {
		grphm := seg.Bytes()
		f(pos, grphm, graphemeWidth(grphm, context))
		pos += len(grphm)
	}
}

// graphemeWidth is 2 for wide and fullwidth clusters and for emoji in
// emoji presentation, 0 for lone marks and controls, and 1 otherwise.
// Ambiguous characters are wide in an East Asian context only.
func graphemeWidth(grphm []byte, context *uax11.Context) int {
	w := uniseg.StringWidth(string(grphm))
	if w == 1 && context.ForceEastAsian {
		r, _ := utf8.DecodeRune(grphm)
		if width.LookupRune(r).Kind() == width.EastAsianAmbiguous {
			return 2
		}
	}
	return w
}

// Cells returns the number of terminal cells text occupies: wide and
// fullwidth grapheme clusters count 2, as do emoji in emoji presentation.
// Text-style symbols like digits, '#' or '©' count 1. Empty text has
// zero width.
func Cells(text string) int {
	n := 0
	Graphemes(text, nil, func(_ int, _ []byte, width int) {
		n += width
	})
	return n
}

// msshape shapes text without a font: every grapheme cluster becomes a glyph
// filling its cells.
type msshape struct {
	aspect  float64 // cell width per em
	context *uax11.Context
}

// Shaper creates a shaper for monospace output, which does not consult any
// font. Cells are 0.6 em wide and 1.2 em high.
// If context is nil, widths are measured in a Latin context.
func Shaper(context *uax11.Context) glyphing.Shaper {
	if context == nil {
		context = uax11.LatinContext
	}
	return &msshape{aspect: 0.6, context: context}
}

// Shape creates a glyph sequence from a text.
func (ms *msshape) Shape(text string, size float64, dpi uint32) ([]glyphing.GlyphInfo, error) {
	if text == "" {
		return []glyphing.GlyphInfo{}, nil
	}
	cellWidth := dimen.PointsToPx(size, dpi) * dimen.Px(ms.aspect)
	glyphs := make([]glyphing.GlyphInfo, 0, len(text))
	Graphemes(text, ms.context, func(pos int, grphm []byte, width int) {
		codepoint, _ := utf8.DecodeRune(grphm)
		glyphs = append(glyphs, glyphing.GlyphInfo{
			Text:     string(grphm),
			NumCells: uint8(width),
			GlyphPos: uint32(codepoint),
			Cluster:  uint32(pos),
			XAdvance: dimen.Px(width) * cellWidth,
		})
	})
	tracer().Debugf("monospace shaper produced %d glyphs", len(glyphs))
	return glyphs, nil
}

// Metrics returns cell metrics derived from the em size alone.
func (ms *msshape) Metrics(size float64, dpi uint32) (glyphing.FontMetrics, error) {
	em := dimen.PointsToPx(size, dpi)
	return glyphing.FontMetrics{
		CellWidth:          em * dimen.Px(ms.aspect),
		CellHeight:         em * 1.2,
		Descender:          em * -0.2,
		UnderlineThickness: em / 16,
		UnderlinePosition:  em * -0.1,
	}, nil
}
