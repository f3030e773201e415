package locator

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	xfont "golang.org/x/image/font"
)

type sw struct {
	s xfont.Style
	w xfont.Weight
}

func TestGuess(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "termfont.locate")
	defer teardown()
	//
	for k, v := range map[string]sw{
		"fonts/Clarendon-bold.ttf":                        {xfont.StyleNormal, xfont.WeightBold},
		"Microsoft/Gill Sans MT Bold Italic.ttf":          {xfont.StyleItalic, xfont.WeightBold},
		"Cambria Math.ttf":                                {xfont.StyleNormal, xfont.WeightNormal},
		"/usr/share/fonts/DejaVuSansMono-BoldOblique.ttf": {xfont.StyleItalic, xfont.WeightBold},
		"FiraCode-Light.otf":                              {xfont.StyleNormal, xfont.WeightLight},
		"Hack-Italic.ttf":                                 {xfont.StyleItalic, xfont.WeightNormal},
	} {
		style, weight := GuessStyleAndWeight(k)
		if style != v.s || weight != v.w {
			t.Errorf("expected different style or weight for %s: %d, %d", k, style, weight)
		}
	}
}

func TestMatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "termfont.locate")
	defer teardown()
	//
	if !Matches("fonts/Clarendon-bold.ttf",
		"clarendon", xfont.StyleNormal, xfont.WeightBold) {
		t.Errorf("expected match for Clarendon, haven't")
	}
	if !Matches("Microsoft/Gill Sans MT Bold Italic.ttf",
		"gill sans", xfont.StyleItalic, xfont.WeightBold) {
		t.Errorf("expected match for Gill, haven't")
	}
	if !Matches("Cambria Math.ttf",
		"cambria", xfont.StyleNormal, xfont.WeightNormal) {
		t.Errorf("expected match for Cambria Math, haven't")
	}
	if Matches("Cambria Math.ttf", "cambria", xfont.StyleItalic, xfont.WeightNormal) {
		t.Errorf("expected Cambria Math not to match italic")
	}
}

func TestClosestMatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "termfont.locate")
	defer teardown()
	//
	files := []string{
		"/f/FiraCodeNerdFont-Regular.ttf",
		"/f/FiraCode-Regular.ttf",
		"/f/FiraCode-Bold.ttf",
		"/f/Hack-Regular.ttf",
	}
	m, c := ClosestMatch(files, ParseAttributes("Fira Code"))
	assert.Equal(t, "/f/FiraCode-Regular.ttf", m)
	assert.Equal(t, PerfectConfidence, c)
	m, _ = ClosestMatch(files, ParseAttributes("Fira Code:bold"))
	assert.Equal(t, "/f/FiraCode-Bold.ttf", m)
	m, c = ClosestMatch(files, ParseAttributes("Hack:bold:italic"))
	assert.Equal(t, "/f/Hack-Regular.ttf", m)
	assert.True(t, c > NoConfidence && c < PerfectConfidence)
	_, c = ClosestMatch(files, ParseAttributes("Iosevka"))
	assert.Equal(t, NoConfidence, c)
}

func TestNormalizeFont(t *testing.T) {
	n := NormalizeFontname("Clarendon", xfont.StyleItalic, xfont.WeightBold)
	if n != "clarendon-italic-bold" {
		t.Errorf("expected different normalized name for clarendon")
	}
}
