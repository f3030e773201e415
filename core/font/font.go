/*
Package font is for typeface and font handling.

There is a certain confusion in the nomenclature of typesetting. We will
stick to the following definitions:

* A "typeface" is a family of fonts. An example is "DejaVu Sans Mono".
This may correspond to a TrueType "collection" (*.ttc).

* A "scalable font" is a font, i.e. a variant of a typeface with a
certain weight, slant, etc.  An example is "DejaVu Sans Mono Bold".

* A "sized face" is a scalable font prepared for a pixel size and display
density, ready to measure glyphs for a terminal grid.

Please note that Go (Golang) does use the terms "font" and "face"
differently–actually more or less in an opposite manner.

Type Face in this package holds a scalable font parsed twice: once with
golang.org/x/image/font/sfnt for sizing, and once with go-text for shaping
and metrics tables. Faces are opened from locator handles.

----------------------------------------------------------------------

BSD License

Copyright (c) 2017-21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE. */
package font

import (
	"bytes"
	"math"

	gtfont "github.com/go-text/typesetting/font"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/termfont/core"
	"github.com/npillmayer/termfont/core/locate/locator"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// tracer traces to tracing key 'termfont.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("termfont.fonts")
}

// Face is a scalable font, opened from a locator handle. It may be sized
// for a pixel size and display density with SetPixelSize.
//
// A Face is not safe for concurrent use.
type Face struct {
	Fontname string
	handle   locator.Handle
	sfnt     *sfnt.Font   // for sizing
	shaping  *gtfont.Face // for shaping, underline metrics
	sized    xfont.Face   // nil until sized
	size     float64      // in points
	dpi      uint32
	metrics  SizeMetrics
}

// SizeMetrics are the metrics of a sized face, in the conventions of
// FreeType: lengths in pixels are 26.6 fixed point, unscaled lengths are in
// font units.
type SizeMetrics struct {
	Ascender           int32   // 26.6, positive above the baseline
	Descender          int32   // 26.6, negative below the baseline
	Height             int32   // 26.6, line height
	UnderlinePosition  float32 // font units, negative below the baseline
	UnderlineThickness float32 // font units
	YScale             int64   // 16.16, scales font units to 26.6 pixels
}

// Open reads and parses the font data a handle refers to. It fails with an
// error of code EFONTLOAD if the data cannot be read or parsed, or if the
// handle's face index is out of range for a font collection.
func Open(h locator.Handle) (*Face, error) {
	if h == nil {
		return nil, core.WrapError(core.ErrFontLoad, core.EFONTLOAD, "no font handle")
	}
	data, err := h.ReadAll()
	if err != nil {
		return nil, core.WrapError(core.ErrFontLoad, core.EFONTLOAD, "cannot read font %s: %v", h, err)
	}
	f, err := Parse(data, h.Index())
	if err != nil {
		return nil, core.WrapError(core.ErrFontLoad, core.EFONTLOAD, "cannot parse font %s: %v", h, err)
	}
	f.handle = h
	tracer().Debugf("opened font %q from %s", f.Fontname, h)
	return f, nil
}

// Parse parses font data, selecting face number index of a font collection.
// Data of a single font is treated as a collection of one font.
func Parse(data []byte, index uint32) (*Face, error) {
	coll, err := sfnt.ParseCollection(data)
	if err != nil {
		return nil, err
	}
	if int(index) >= coll.NumFonts() {
		return nil, core.Error(core.EINVALID, "face index %d out of range, collection has %d fonts",
			index, coll.NumFonts())
	}
	sf, err := coll.Font(int(index))
	if err != nil {
		return nil, err
	}
	faces, err := gtfont.ParseTTC(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if int(index) >= len(faces) {
		return nil, core.Error(core.EINVALID, "face index %d out of range, collection has %d faces",
			index, len(faces))
	}
	f := &Face{sfnt: sf, shaping: faces[index]}
	f.Fontname, _ = sf.Name(nil, sfnt.NameIDFull)
	return f, nil
}

// Handle returns the handle the face has been opened from. It is nil for faces
// created by Parse.
func (f *Face) Handle() locator.Handle {
	return f.handle
}

// Shaping returns the go-text view of the font, as needed for shaping.
func (f *Face) Shaping() *gtfont.Face {
	return f.shaping
}

// Upem returns the number of font units per em.
func (f *Face) Upem() uint16 {
	return f.shaping.Upem()
}

// HasGlyph returns true if the font maps r to a glyph.
func (f *Face) HasGlyph(r rune) bool {
	_, ok := f.shaping.NominalGlyph(r)
	return ok
}

// SetPixelSize prepares the face for a font size (in points) and a display
// density. It returns the dimensions of a terminal cell in pixels: the
// advance of 'M' and the line height.
func (f *Face) SetPixelSize(size float64, dpi uint32) (cellWidth, cellHeight float64, err error) {
	if size <= 0 || dpi == 0 {
		return 0, 0, core.Error(core.EINVALID, "cannot size font %q to %gpt at %d dpi", f.Fontname, size, dpi)
	}
	sized, err := opentype.NewFace(f.sfnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     float64(dpi),
		Hinting: xfont.HintingNone,
	})
	if err != nil {
		return 0, 0, core.WrapError(err, core.EFONTLOAD, "cannot size font %q", f.Fontname)
	}
	if f.sized != nil {
		f.sized.Close()
	}
	f.sized, f.size, f.dpi = sized, size, dpi
	m := sized.Metrics()
	ppem := size * float64(dpi) / 72
	f.metrics = SizeMetrics{
		Ascender:           int32(m.Ascent),
		Descender:          -int32(m.Descent),
		Height:             int32(m.Height),
		UnderlinePosition:  f.shaping.LineMetric(gtfont.UnderlinePosition),
		UnderlineThickness: f.shaping.LineMetric(gtfont.UnderlineThickness),
		YScale:             int64(math.Round(ppem * 64 * 65536 / float64(f.Upem()))),
	}
	cellWidth = float64(f.cellAdvance()) / 64
	cellHeight = float64(m.Height) / 64
	tracer().Debugf("font %q sized to %gpt at %d dpi, cell = %g x %g px",
		f.Fontname, size, dpi, cellWidth, cellHeight)
	return cellWidth, cellHeight, nil
}

// cellAdvance is the advance of 'M' or, for fonts without 'M', the widest
// advance of printable ASCII characters.
func (f *Face) cellAdvance() int32 {
	if adv, ok := f.sized.GlyphAdvance('M'); ok {
		return int32(adv)
	}
	var widest int32
	for r := rune(0x21); r < 0x7f; r++ {
		if adv, ok := f.sized.GlyphAdvance(r); ok && int32(adv) > widest {
			widest = int32(adv)
		}
	}
	return widest
}

// Size returns the size in points and display density of the last call to
// SetPixelSize. For an unsized face, size is 0.
func (f *Face) Size() (size float64, dpi uint32) {
	return f.size, f.dpi
}

// SizeMetrics returns the metrics of the sized face. Before SetPixelSize has
// been called, all metrics are zero.
func (f *Face) SizeMetrics() SizeMetrics {
	return f.metrics
}

// Close releases the sized face.
func (f *Face) Close() error {
	if f.sized == nil {
		return nil
	}
	err := f.sized.Close()
	f.sized = nil
	return err
}
