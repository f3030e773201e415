package locator

import (
	"strings"

	xfont "golang.org/x/image/font"
)

// Attributes describe a font a user wants: family name, style and weight.
type Attributes struct {
	Family string
	Style  xfont.Style
	Weight xfont.Weight
}

// ParseAttributes reads a font description of the form
//
//	Family[:modifier]...
//
// where modifiers are `bold`, `semibold`, `light`, `thin`, `black`, `medium`,
// `italic` or `oblique`. Unknown modifiers are ignored.
// Example: "Fira Code:bold:italic".
func ParseAttributes(s string) Attributes {
	parts := strings.Split(s, ":")
	attr := Attributes{
		Family: strings.TrimSpace(parts[0]),
		Style:  xfont.StyleNormal,
		Weight: xfont.WeightNormal,
	}
	for _, m := range parts[1:] {
		switch strings.ToLower(strings.TrimSpace(m)) {
		case "italic":
			attr.Style = xfont.StyleItalic
		case "oblique":
			attr.Style = xfont.StyleOblique
		case "thin":
			attr.Weight = xfont.WeightThin
		case "light":
			attr.Weight = xfont.WeightLight
		case "medium":
			attr.Weight = xfont.WeightMedium
		case "semibold":
			attr.Weight = xfont.WeightSemiBold
		case "bold":
			attr.Weight = xfont.WeightBold
		case "extrabold":
			attr.Weight = xfont.WeightExtraBold
		case "black":
			attr.Weight = xfont.WeightBlack
		default:
			tracer().Debugf("ignoring unknown font modifier %q in %q", m, s)
		}
	}
	return attr
}

// ParseFamilies splits a comma-separated list of font descriptions.
// Empty entries are skipped.
func ParseFamilies(list string) []Attributes {
	var attrs []Attributes
	for _, entry := range strings.Split(list, ",") {
		if strings.TrimSpace(entry) == "" {
			continue
		}
		attrs = append(attrs, ParseAttributes(entry))
	}
	return attrs
}

func (attr Attributes) String() string {
	var b strings.Builder
	b.WriteString(attr.Family)
	switch attr.Style {
	case xfont.StyleItalic:
		b.WriteString(":italic")
	case xfont.StyleOblique:
		b.WriteString(":oblique")
	}
	if w := weightName(attr.Weight); w != "regular" {
		b.WriteString(":" + w)
	}
	return b.String()
}

// Normalized returns a key for attr, usable for caching.
func (attr Attributes) Normalized() string {
	return NormalizeFontname(attr.Family, attr.Style, attr.Weight)
}

func weightName(w xfont.Weight) string {
	switch w {
	case xfont.WeightThin:
		return "thin"
	case xfont.WeightExtraLight:
		return "extralight"
	case xfont.WeightLight:
		return "light"
	case xfont.WeightMedium:
		return "medium"
	case xfont.WeightSemiBold:
		return "semibold"
	case xfont.WeightBold:
		return "bold"
	case xfont.WeightExtraBold:
		return "extrabold"
	case xfont.WeightBlack:
		return "black"
	}
	return "regular"
}

// Generic family names, as understood by fontconfig. File-name based
// strategies substitute well-known families for them.
var genericFamilies = map[string][]string{
	"monospace": {
		"DejaVu Sans Mono", "Liberation Mono", "Noto Sans Mono", "Menlo",
		"Consolas", "Courier New",
	},
	"sans-serif": {
		"DejaVu Sans", "Liberation Sans", "Noto Sans", "Helvetica", "Arial",
	},
	"serif": {
		"DejaVu Serif", "Liberation Serif", "Noto Serif", "Times New Roman",
	},
}

// candidateFamilies returns the family of attr, or, for generic family names,
// a list of concrete families to try in order.
func (attr Attributes) candidateFamilies() []string {
	if alt, ok := genericFamilies[strings.ToLower(attr.Family)]; ok {
		return alt
	}
	return []string{attr.Family}
}

func isGenericFamily(family string) bool {
	_, ok := genericFamilies[strings.ToLower(family)]
	return ok
}
