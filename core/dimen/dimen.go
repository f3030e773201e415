// Package dimen implements dimensions and units.
//
// Typesetting dimensions (Dimen) are kept in scaled big points, as in the rest of
// the engine. Glyph positions and cell metrics of a terminal grid, however, are
// measured in device pixels with sub-pixel precision; type Px is used for these.
//
/*
BSD License

Copyright (c) 2017–21, Norbert Pillmayer (norbert@pillmayer.com)

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
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.  */
package dimen

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"golang.org/x/image/math/fixed"
)

// Dimen is a dimension type.
// Values are in scaled big points (different from TeX).
type Dimen int32

// Some pre-defined dimensions
const (
	Zero Dimen = 0
	SP   Dimen = 1       // scaled point = BP / 65536
	BP   Dimen = 65536   // big point (PDF) = 1/72 inch
	PX   Dimen = 65536   // "pixels"
	PT   Dimen = 65291   // printers point 1/72.27 inch
	MM   Dimen = 185771  // millimeters
	CM   Dimen = 1857710 // centimeters
	IN   Dimen = 4718592 // inch
)

// Stringer implementation.
func (d Dimen) String() string {
	return fmt.Sprintf("%dsp", int32(d))
}

// Points returns a dimension in big (PDF) points.
func (d Dimen) Points() float64 {
	return float64(d) / float64(BP)
}

// Pixels returns a dimension in device pixels for a given display density.
// "px" dimensions are treated as CSS pixels, i.e. 1/96 inch.
func (d Dimen) Pixels(dpi uint32) Px {
	return Px(float64(d) / float64(IN) * float64(dpi))
}

// ---------------------------------------------------------------------------

var dimenPattern = regexp.MustCompile(`^([+\-]?[0-9]+(?:\.[0-9]+)?)(%|[cminpxtcbs]{2})?$`)

// ParseDimen parses a string to return a dimension. Syntax is CSS Unit.
// If a percentage value is given (`80%`), the second return value will be true.
// Fractional values are accepted, e.g. `10.5pt`.
func ParseDimen(s string) (Dimen, bool, error) {
	d := dimenPattern.FindStringSubmatch(s)
	if len(d) < 2 {
		return 0, false, errors.New("format error parsing dimension")
	}
	scale := SP
	ispcnt := false
	if len(d) > 2 {
		switch d[2] {
		case "pt", "PT":
			scale = PT
		case "mm", "MM":
			scale = MM
		case "bp", "BP":
			scale = BP
		case "px", "PX":
			scale = IN / 96
		case "cm", "CM":
			scale = CM
		case "in", "IN":
			scale = IN
		case "sp", "SP", "":
			scale = SP
		case "%":
			scale, ispcnt = 1, true
		default:
			return 0, false, errors.New("format error parsing dimension")
		}
	}
	n, err := strconv.ParseFloat(d[1], 64)
	if err != nil {
		return 0, false, errors.New("format error parsing dimension")
	}
	return Dimen(n * float64(scale)), ispcnt, nil
}

// --- Pixels ----------------------------------------------------------------

// Px is a length in device pixels, with sub-pixel precision.
type Px float64

// PxFrom26_6 converts a 26.6 fixed-point value (6 fractional bits) to pixels.
func PxFrom26_6(v int32) Px {
	return Px(float64(v) / 64.0)
}

// PxFromFixed converts an x/image fixed-point value to pixels.
func PxFromFixed(v fixed.Int26_6) Px {
	return PxFrom26_6(int32(v))
}

// PointsToPx converts a size in points (1/72 inch) to pixels at a display density.
func PointsToPx(pt float64, dpi uint32) Px {
	return Px(pt * float64(dpi) / 72.0)
}

// Float returns px as a float64.
func (px Px) Float() float64 {
	return float64(px)
}

func (px Px) String() string {
	return strconv.FormatFloat(float64(px), 'f', -1, 64) + "px"
}

// ---------------------------------------------------------------------------

// Min returns the smaller of two dimensions.
func Min(a, b Dimen) Dimen {
	if a < b {
		return a
	}
	return b
}

// Max returns the greater of two dimensions.
func Max(a, b Dimen) Dimen {
	if a > b {
		return a
	}
	return b
}
