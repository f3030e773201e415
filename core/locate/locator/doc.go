/*
Package locator resolves abstract font selections to loadable font resources.

A font selection is a list of Attributes (family, style, weight), given in
priority order. A Locator maps it to a list of Handles, each identifying font
data either on disk or in memory, plus the index of a face within a font
collection. Entries which cannot be resolved are dropped silently; an empty
result is valid.

Several strategies exist, all of them compiled on every platform:

	FontConfig      ask the fontconfig system (fc-match)
	FontLoader      scan the system font directories, matching file names
	FontKit         use a system font index (go-text fontscan)
	ConfigDirsOnly  do not consult the system; only configured directories count

The strategy to use is selected once per process with SetDefault and read
concurrently thereafter with DefaultSelection. If a platform facility for a
strategy is unavailable, NewLocator returns a locator which finds nothing.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package locator

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'termfont.locate'.
func tracer() tracing.Trace {
	return tracing.Select("termfont.locate")
}
