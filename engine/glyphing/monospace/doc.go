/*
Package monospace measures text for a fixed grid of cells and implements a
simple shaper for monospace output.

Text is split into grapheme clusters (UAX #29); each cluster occupies one or
two cells, according to its East Asian Width (UAX #11).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package monospace

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'termfont.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("termfont.glyphs")
}
