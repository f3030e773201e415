/*
Package harfbuzz uses HarfBuzz to convert text to sequences of glyphs, taking
glyphs from a chain of fallback fonts.

The HarfBuzz port of go-text (github.com/go-text/typesetting) does the
shaping for a single font. Shaper drives it for a chain of fonts: text is
shaped with the primary font first; runs of text the primary font has no
glyphs for are shaped again with the next font in the chain, and so on. If
the chain is exhausted, a replacement character is shaped instead.

Results are glyphs for a fixed-grid renderer, see package glyphing.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package harfbuzz

import (
	"math"
	"strconv"
	"strings"

	"github.com/go-text/typesetting/di"
	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/termfont/core/font"
	"golang.org/x/image/math/fixed"
)

// tracer traces with key 'termfont.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("termfont.glyphs")
}

// RawGlyph is a glyph as produced by shaping with a single font.
// Positions are in 26.6 fixed-point pixels.
type RawGlyph struct {
	GlyphID  uint32 // 0 means the font has no glyph for the text
	Cluster  uint32 // byte offset into the shaped text
	XAdvance int32
	YAdvance int32
	XOffset  int32
	YOffset  int32
}

// Font binds a font face to a HarfBuzz shaper. It is the production
// implementation of FacePair.
//
// A Font is not safe for concurrent use.
type Font struct {
	face   *font.Face
	shaper shaping.HarfbuzzShaper
	ppem   fixed.Int26_6
}

// NewFont creates a shaping font for a face.
func NewFont(face *font.Face) *Font {
	return &Font{face: face}
}

// Face returns the underlying font face.
func (f *Font) Face() *font.Face {
	return f.face
}

// SetPixelSize sizes the face and sets the scale for shaping, so that
// positions come out in pixels.
func (f *Font) SetPixelSize(size float64, dpi uint32) (cellWidth, cellHeight float64, err error) {
	cellWidth, cellHeight, err = f.face.SetPixelSize(size, dpi)
	if err != nil {
		return
	}
	ppem := size * float64(dpi) / 72
	f.ppem = fixed.Int26_6(math.Round(ppem * 64))
	return
}

// SizeMetrics returns the metrics of the sized face.
func (f *Font) SizeMetrics() font.SizeMetrics {
	return f.face.SizeMetrics()
}

// Shape shapes text left-to-right as Latin script, language "en".
// Clusters of the resulting glyphs are byte offsets into text, glyph ID 0
// denotes characters the font has no glyph for.
func (f *Font) Shape(text string, features []shaping.FontFeature) []RawGlyph {
	if text == "" {
		return nil
	}
	runes := []rune(text)
	offsets := runeOffsets(text, len(runes))
	input := shaping.Input{
		Text:         runes,
		RunStart:     0,
		RunEnd:       len(runes),
		Direction:    di.DirectionLTR,
		Face:         f.face.Shaping(),
		FontFeatures: features,
		Size:         f.ppem,
		Script:       language.Latin,
		Language:     language.NewLanguage("en"),
	}
	output := f.shaper.Shape(input)
	glyphs := make([]RawGlyph, len(output.Glyphs))
	for i, g := range output.Glyphs {
		glyphs[i] = RawGlyph{
			GlyphID:  uint32(g.GlyphID),
			Cluster:  uint32(offsetOf(offsets, g.TextIndex())),
			XAdvance: int32(g.Advance),
			XOffset:  int32(g.XOffset),
			YOffset:  int32(g.YOffset),
		}
	}
	return glyphs
}

// Close releases the sized face.
func (f *Font) Close() error {
	return f.face.Close()
}

// runeOffsets maps rune indices of text to byte offsets. The extra last entry
// is len(text). Invalid UTF-8 bytes count as one rune each, as they do when
// converting a string to []rune.
func runeOffsets(text string, runeCount int) []int {
	offsets := make([]int, 0, runeCount+1)
	for i := range text {
		offsets = append(offsets, i)
	}
	return append(offsets, len(text))
}

func offsetOf(offsets []int, runeIndex int) int {
	if runeIndex < 0 {
		return 0
	}
	if runeIndex >= len(offsets) {
		return offsets[len(offsets)-1]
	}
	return offsets[runeIndex]
}

// --- Features --------------------------------------------------------------

// ParseFeatures reads OpenType feature settings in the notation of HarfBuzz:
//
//	kern     +kern     switch feature on
//	-liga    liga=0    switch feature off
//	ss01=2             set feature value
//
// Tags shorter than 4 characters are padded with blanks. Invalid entries
// are skipped; range specifications are not supported.
func ParseFeatures(settings []string) []shaping.FontFeature {
	features := make([]shaping.FontFeature, 0, len(settings))
	for _, s := range settings {
		f, ok := parseFeature(s)
		if !ok {
			tracer().Errorf("invalid font feature %q, skipped", s)
			continue
		}
		features = append(features, f)
	}
	return features
}

func parseFeature(s string) (shaping.FontFeature, bool) {
	s = strings.TrimSpace(s)
	value := uint32(1)
	if strings.HasPrefix(s, "-") {
		value, s = 0, s[1:]
	} else if strings.HasPrefix(s, "+") {
		s = s[1:]
	}
	if eq := strings.IndexByte(s, '='); eq >= 0 {
		v, err := strconv.ParseUint(strings.TrimSpace(s[eq+1:]), 10, 32)
		if err != nil {
			return shaping.FontFeature{}, false
		}
		value, s = uint32(v), strings.TrimSpace(s[:eq])
	}
	if len(s) == 0 || len(s) > 4 {
		return shaping.FontFeature{}, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] <= ' ' || s[i] > '~' || s[i] == '[' || s[i] == ']' {
			return shaping.FontFeature{}, false
		}
	}
	tag := ot.MustNewTag(s + strings.Repeat(" ", 4-len(s)))
	return shaping.FontFeature{Tag: tag, Value: value}, true
}
