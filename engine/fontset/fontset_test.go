package fontset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/termfont/core"
	"github.com/npillmayer/termfont/core/font"
	"github.com/npillmayer/termfont/core/font/fontregistry"
	"github.com/npillmayer/termfont/core/locate/locator"
	"github.com/npillmayer/termfont/core/parameters"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedLocator struct {
	handles map[string]locator.Handle
	calls   int
	err     error
}

func (fl *fixedLocator) LoadFonts(selection []locator.Attributes) ([]locator.Handle, error) {
	fl.calls++
	if fl.err != nil {
		return nil, fl.err
	}
	var hh []locator.Handle
	for _, attr := range selection {
		if h, ok := fl.handles[attr.Family]; ok {
			hh = append(hh, h)
		}
	}
	return hh, nil
}

func TestBuildChainOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "termfont.fonts")
	defer teardown()
	//
	dir := t.TempDir()
	local := filepath.Join(dir, "FiraCode-Regular.ttf")
	require.NoError(t, os.WriteFile(local, []byte("x"), 0644))
	system := &fixedLocator{handles: map[string]locator.Handle{
		"Fira Code":  locator.OnDisk{Path: local}, // found twice
		"Noto Emoji": locator.OnDisk{Path: "/usr/share/fonts/NotoEmoji.ttf"},
	}}
	params := parameters.Defaults()
	params.Families = locator.ParseFamilies("Fira Code, Noto Emoji, Unknown")
	params.Dirs = []string{dir}
	sh, handles, err := Build(params, WithLocator(system), WithRegistry(fontregistry.NewRegistry(10)))
	require.NoError(t, err)
	require.NotNil(t, sh)
	assert.Equal(t, []locator.Handle{
		locator.OnDisk{Path: local},
		locator.OnDisk{Path: "/usr/share/fonts/NotoEmoji.ttf"},
		font.FallbackFont(),
	}, handles)
	assert.Equal(t, handles, sh.Handles())
	assert.False(t, sh.Loaded(0))
}

func TestBuildUsesRegistry(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "termfont.fonts")
	defer teardown()
	//
	system := &fixedLocator{}
	registry := fontregistry.NewRegistry(10)
	params := parameters.Defaults()
	params.Families = locator.ParseFamilies("A, B")
	for i := 0; i < 3; i++ {
		_, handles, err := Build(params, WithLocator(system), WithRegistry(registry))
		require.NoError(t, err)
		assert.Equal(t, []locator.Handle{font.FallbackFont()}, handles)
	}
	assert.Equal(t, 2, system.calls)
	hits, misses := registry.Stats()
	assert.Equal(t, 4, hits)
	assert.Equal(t, 2, misses)
}

func TestBuildLocatorError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "termfont.fonts")
	defer teardown()
	//
	system := &fixedLocator{err: errors.New("locator broken")}
	_, _, err := Build(parameters.Defaults(), WithLocator(system), WithRegistry(fontregistry.NewRegistry(10)))
	assert.Error(t, err)
}

func TestLoadShapesWithFallbackFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "termfont.fonts")
	defer teardown()
	//
	conf := testconfig.Conf{
		"font.families":     "No Such Family",
		"font.size":         "12",
		"harfbuzz.features": "none",
	}
	sh, params, err := Load(conf, WithLocator(locator.NopLocator{}),
		WithRegistry(fontregistry.NewRegistry(10)))
	require.NoError(t, err)
	defer sh.Close()
	assert.Equal(t, 12.0, params.Size)
	assert.Empty(t, params.Features)
	require.Len(t, sh.Handles(), 1)
	glyphs, err := sh.Shape("ok", params.Size, params.DPI)
	require.NoError(t, err)
	assert.Len(t, glyphs, 2)
}

func TestLoadInvalidConfiguration(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "termfont.fonts")
	defer teardown()
	//
	_, _, err := Load(testconfig.Conf{"font.locator": "Magic"})
	require.Error(t, err)
	assert.Equal(t, core.EINVALID, core.Code(err))
}
