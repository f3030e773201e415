/*
Package fontregistry manages a registry for located fonts.

Locating fonts on a system may be slow: strategies run external programs or
scan directories. The registry remembers which font resources a locator
strategy found for a font description, and answers repeated requests, e.g.
after a configuration reload, from its cache.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fontregistry

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'termfont.fonts'
func tracer() tracing.Trace {
	return tracing.Select("termfont.fonts")
}
