/*
Package parameters reads the font configuration of a terminal renderer.

Configuration keys are

	font.families      comma-separated font descriptions, in priority order
	                   ("Fira Code, Noto Color Emoji:bold"); default "monospace"
	font.locator       locator strategy (FontConfig, FontLoader, FontKit, ConfigDirsOnly)
	font.dirs          additional font directories (comma or path-list separated)
	font.size          font size as a dimension ("12pt", "16px"); default 10pt
	font.dpi           display density; default 96
	harfbuzz.features  comma-separated OpenType feature strings; default "kern,liga,clig",
	                   "none" switches features off

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parameters

import (
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/termfont/core"
	"github.com/npillmayer/termfont/core/dimen"
	"github.com/npillmayer/termfont/core/locate/locator"
)

// tracer traces to tracing key 'termfont.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("termfont.fonts")
}

// Configuration keys
const (
	KeyFamilies = "font.families"
	KeyLocator  = "font.locator"
	KeyDirs     = "font.dirs"
	KeySize     = "font.size"
	KeyDPI      = "font.dpi"
	KeyFeatures = "harfbuzz.features"
)

// Default values
const (
	DefaultFamilies = "monospace"
	DefaultSize     = 10.0 // in points
	DefaultDPI      = 96
	DefaultFeatures = "kern,liga,clig"
)

// FontParameters is the font configuration of a renderer.
type FontParameters struct {
	Families []locator.Attributes // font selection, in priority order
	Locator  locator.Selection    // locator strategy for system fonts
	Dirs     []string             // additional font directories
	Size     float64              // font size in points
	DPI      uint32               // display density
	Features []string             // OpenType feature strings, unvalidated
}

// Defaults returns the default font configuration, using the current
// process-wide locator strategy.
func Defaults() FontParameters {
	return FontParameters{
		Families: locator.ParseFamilies(DefaultFamilies),
		Locator:  locator.DefaultSelection(),
		Size:     DefaultSize,
		DPI:      DefaultDPI,
		Features: splitList(DefaultFeatures),
	}
}

// Load reads font parameters from a configuration. Keys not set in conf get
// their default values. Unparsable values for size, density or locator
// result in an error with code EINVALID.
func Load(conf schuko.Configuration) (FontParameters, error) {
	params := Defaults()
	if conf == nil {
		return params, nil
	}
	if s := get(conf, KeyFamilies); s != "" {
		params.Families = locator.ParseFamilies(s)
	}
	if s := get(conf, KeyLocator); s != "" {
		sel, err := locator.ParseSelection(s)
		if err != nil {
			return params, err
		}
		params.Locator = sel
	}
	if s := get(conf, KeyDirs); s != "" {
		params.Dirs = splitList(strings.ReplaceAll(s, string(os.PathListSeparator), ","))
	}
	if s := get(conf, KeySize); s != "" {
		size, err := ParseFontSize(s)
		if err != nil {
			return params, err
		}
		params.Size = size
	}
	if s := get(conf, KeyDPI); s != "" {
		dpi, err := strconv.ParseUint(s, 10, 32)
		if err != nil || dpi == 0 {
			return params, core.WrapError(err, core.EINVALID, "invalid display density %q", s)
		}
		params.DPI = uint32(dpi)
	}
	if s := get(conf, KeyFeatures); s == "none" {
		params.Features = nil
	} else if s != "" {
		params.Features = splitList(s)
	}
	tracer().Debugf("font parameters = %+v", params)
	return params, nil
}

// ParseFontSize reads a font size. Plain numbers are taken as points,
// dimensions are converted to points (72 per inch).
func ParseFontSize(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if pt, err := strconv.ParseFloat(s, 64); err == nil {
		if pt <= 0 {
			return 0, core.Error(core.EINVALID, "font size must be positive: %q", s)
		}
		return pt, nil
	}
	d, pcnt, err := dimen.ParseDimen(s)
	if err != nil || pcnt || d <= 0 {
		return 0, core.WrapError(err, core.EINVALID, "invalid font size %q", s)
	}
	return d.Points(), nil
}

func get(conf schuko.Configuration, key string) string {
	return strings.TrimSpace(conf.GetString(key))
}

func splitList(s string) []string {
	var list []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}
