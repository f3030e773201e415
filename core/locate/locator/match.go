package locator

import (
	"path"
	"path/filepath"
	"strings"

	xfont "golang.org/x/image/font"
)

// NormalizeFontname produces a canonical name for a font family with style
// and weight, e.g. "fira_code-italic-bold".
func NormalizeFontname(fname string, style xfont.Style, weight xfont.Weight) string {
	fname = strings.TrimSpace(fname)
	fname = strings.ReplaceAll(fname, " ", "_")
	if dot := strings.LastIndex(fname, "."); dot > 0 {
		fname = fname[:dot]
	}
	fname = strings.ToLower(fname)
	switch style {
	case xfont.StyleItalic, xfont.StyleOblique:
		fname += "-italic"
	}
	switch weight {
	case xfont.WeightThin, xfont.WeightLight, xfont.WeightExtraLight:
		fname += "-light"
	case xfont.WeightBold, xfont.WeightExtraBold, xfont.WeightSemiBold, xfont.WeightBlack:
		fname += "-bold"
	}
	return fname
}

// GuessStyleAndWeight trys to guess a font's style and weight from the
// font's file name.
func GuessStyleAndWeight(fontfilename string) (xfont.Style, xfont.Weight) {
	fontfilename = baseName(fontfilename)
	style := xfont.StyleNormal
	if strings.Contains(fontfilename, "italic") || strings.Contains(fontfilename, "oblique") {
		style = xfont.StyleItalic
	}
	s := strings.Split(fontfilename, "-")
	if len(s) > 1 {
		switch strings.TrimSuffix(strings.TrimSuffix(s[len(s)-1], "italic"), "oblique") {
		case "thin":
			return style, xfont.WeightThin
		case "light", "xlight", "extralight":
			return style, xfont.WeightLight
		case "normal", "medium", "regular", "r", "":
			return style, xfont.WeightNormal
		case "semibold":
			return style, xfont.WeightSemiBold
		case "bold", "b":
			return style, xfont.WeightBold
		case "xbold", "extrabold", "black":
			return style, xfont.WeightExtraBold
		}
	}
	weight := xfont.WeightNormal
	if strings.Contains(fontfilename, "light") {
		weight = xfont.WeightLight
	}
	if strings.Contains(fontfilename, "bold") {
		weight = xfont.WeightBold
	}
	return style, weight
}

// Matches returns true if a font's filename contains pattern and indicators
// for a given style and weight.
func Matches(fontfilename, pattern string, style xfont.Style, weight xfont.Weight) bool {
	basename := baseName(fontfilename)
	if !familyMatches(basename, pattern) {
		return false
	}
	s, w := GuessStyleAndWeight(basename)
	return s == style && w == weight
}

// MatchConfidence is a type for expressing the confidence level of font matching.
type MatchConfidence int

const (
	NoConfidence      MatchConfidence = 0
	LowConfidence     MatchConfidence = 2
	HighConfidence    MatchConfidence = 3
	PerfectConfidence MatchConfidence = 4
)

// MatchStyle rates how well a font's style fits a requested style.
func MatchStyle(have, want xfont.Style) MatchConfidence {
	if have == want {
		return PerfectConfidence
	}
	if have != xfont.StyleNormal && want != xfont.StyleNormal {
		return HighConfidence // italic for oblique or vice versa
	}
	return LowConfidence
}

// MatchWeight rates how well a font's weight fits a requested weight.
func MatchWeight(have, want xfont.Weight) MatchConfidence {
	d := int(have) - int(want)
	if d < 0 {
		d = -d
	}
	switch {
	case d == 0:
		return PerfectConfidence
	case d == 1:
		return HighConfidence
	case d <= 3:
		return LowConfidence
	}
	return NoConfidence
}

// Confidence rates a font file as a match for attr. A file whose name does
// not contain the family name gets NoConfidence; otherwise the confidence
// is at least 1.
func Confidence(fontfilename string, attr Attributes) MatchConfidence {
	basename := baseName(fontfilename)
	if !familyMatches(basename, attr.Family) {
		return NoConfidence
	}
	s, w := GuessStyleAndWeight(basename)
	c := (MatchStyle(s, attr.Style) + MatchWeight(w, attr.Weight)) / 2
	if c < 1 {
		c = 1
	}
	return c
}

// ClosestMatch scans a list of font files and returns the closest match
// for attr. If no file matches, confidence is NoConfidence. Of equally
// rated files, the one with the shortest base name wins.
func ClosestMatch(fontfiles []string, attr Attributes) (match string, confidence MatchConfidence) {
	for _, f := range fontfiles {
		c := Confidence(f, attr)
		if c == NoConfidence {
			continue
		}
		if c > confidence || (c == confidence && len(baseName(f)) < len(baseName(match))) {
			match, confidence = f, c
		}
	}
	return
}

// closestMatchForFamilies tries the candidate families of attr in turn.
func closestMatchForFamilies(fontfiles []string, attr Attributes) (string, bool) {
	for _, family := range attr.candidateFamilies() {
		a := attr
		a.Family = family
		if match, c := ClosestMatch(fontfiles, a); c > NoConfidence {
			tracer().Debugf("font file %s matches %s with confidence %d", match, attr, c)
			return match, true
		}
	}
	return "", false
}

// isFontFile checks for the file extensions of loadable fonts.
func isFontFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".ttf", ".otf", ".ttc", ".otc":
		return true
	}
	return false
}

// baseName strips directories and extension from a font file name and
// returns it in lowercase.
func baseName(fontfilename string) string {
	fontfilename = path.Base(filepath.ToSlash(fontfilename))
	fontfilename = fontfilename[:len(fontfilename)-len(path.Ext(fontfilename))]
	return strings.ToLower(fontfilename)
}

// familyMatches checks if a (lowercase) base name contains a family name,
// disregarding blanks, dashes and underscores.
func familyMatches(basename, family string) bool {
	squeeze := strings.NewReplacer(" ", "", "-", "", "_", "")
	f := squeeze.Replace(strings.ToLower(strings.TrimSpace(family)))
	if f == "" {
		return false
	}
	return strings.Contains(squeeze.Replace(basename), f)
}
