package parameters

import (
	"testing"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/termfont/core"
	"github.com/npillmayer/termfont/core/locate/locator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xfont "golang.org/x/image/font"
)

func TestDefaults(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "termfont.fonts")
	defer teardown()
	//
	params, err := Load(testconfig.Conf{})
	require.NoError(t, err)
	assert.Equal(t, []locator.Attributes{{Family: "monospace"}}, params.Families)
	assert.Equal(t, locator.DefaultSelection(), params.Locator)
	assert.Equal(t, 10.0, params.Size)
	assert.Equal(t, uint32(96), params.DPI)
	assert.Equal(t, []string{"kern", "liga", "clig"}, params.Features)
	assert.Empty(t, params.Dirs)
}

func TestLoad(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "termfont.fonts")
	defer teardown()
	//
	conf := testconfig.Conf{
		"font.families":     "Fira Code, Noto Sans CJK JP:bold",
		"font.locator":      "configdirsonly",
		"font.dirs":         "/opt/fonts, ~/fonts",
		"font.size":         "16px",
		"font.dpi":          "144",
		"harfbuzz.features": "-liga, ss01=2",
	}
	params, err := Load(conf)
	require.NoError(t, err)
	assert.Equal(t, []locator.Attributes{
		{Family: "Fira Code"},
		{Family: "Noto Sans CJK JP", Weight: xfont.WeightBold},
	}, params.Families)
	assert.Equal(t, locator.ConfigDirsOnly, params.Locator)
	assert.Equal(t, []string{"/opt/fonts", "~/fonts"}, params.Dirs)
	assert.InDelta(t, 12.0, params.Size, 0.01)
	assert.Equal(t, uint32(144), params.DPI)
	assert.Equal(t, []string{"-liga", "ss01=2"}, params.Features)
	//
	params, err = Load(testconfig.Conf{"harfbuzz.features": "none"})
	require.NoError(t, err)
	assert.Empty(t, params.Features)
}

func TestInvalidConfiguration(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "termfont.fonts")
	defer teardown()
	//
	for key, value := range map[string]string{
		"font.locator": "CoreText",
		"font.size":    "huge",
		"font.dpi":     "0",
	} {
		_, err := Load(testconfig.Conf{key: value})
		require.Error(t, err, key)
		assert.Equal(t, core.EINVALID, core.Code(err), key)
	}
}

func TestParseFontSize(t *testing.T) {
	for s, pt := range map[string]float64{
		"12":   12,
		"10.5": 10.5,
		"12bp": 12,
		"1in":  72,
		"16px": 12,
	} {
		size, err := ParseFontSize(s)
		assert.NoError(t, err, s)
		assert.InDelta(t, pt, size, 0.01, s)
	}
	for _, s := range []string{"-3", "50%", "0pt", ""} {
		_, err := ParseFontSize(s)
		assert.Error(t, err, s)
	}
}
