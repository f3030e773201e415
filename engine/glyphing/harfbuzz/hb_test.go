package harfbuzz_test

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/termfont/core/font"
	"github.com/npillmayer/termfont/core/locate/locator"
	"github.com/npillmayer/termfont/engine/glyphing"
	"github.com/npillmayer/termfont/engine/glyphing/harfbuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func goRegular() locator.Handle {
	return locator.InMemory{Name: "Go Regular", Data: goregular.TTF}
}

func TestShapeWithGoMono(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "termfont.glyphs")
	defer teardown()
	//
	sh := harfbuzz.New([]locator.Handle{font.FallbackFont()})
	defer sh.Close()
	glyphs, err := sh.Shape("Hello", 12, 96)
	require.NoError(t, err)
	require.Len(t, glyphs, 5)
	for i, g := range glyphs {
		assert.Equal(t, glyphing.FallbackIdx(0), g.FontIdx)
		assert.Equal(t, uint32(i), g.Cluster)
		assert.Equal(t, "Hello"[i:i+1], g.Text)
		assert.NotZero(t, g.GlyphPos)
		assert.True(t, g.XAdvance > 0)
	}
	assert.Equal(t, 5, glyphing.Cells(glyphs))
	// a monospace font has the same advance for every glyph
	assert.Equal(t, glyphs[0].XAdvance, glyphs[1].XAdvance)
}

func TestDigitsAreNarrow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "termfont.glyphs")
	defer teardown()
	//
	sh := harfbuzz.New([]locator.Handle{font.FallbackFont()})
	defer sh.Close()
	glyphs, err := sh.Shape("ls 2024 #1 ©", 12, 96)
	require.NoError(t, err)
	for _, g := range glyphs {
		assert.Equal(t, uint8(1), g.NumCells, "%q", g.Text)
	}
	assert.Equal(t, 12, glyphing.Cells(glyphs))
}

func TestShapeReplacesMissingGlyphs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "termfont.glyphs")
	defer teardown()
	//
	chains := [][]locator.Handle{
		{font.FallbackFont()},
		{font.FallbackFont(), goRegular()},
	}
	for _, chain := range chains {
		sh := harfbuzz.New(chain)
		glyphs, err := sh.Shape("A漢B", 12, 96)
		require.NoError(t, err)
		require.Len(t, glyphs, 3)
		assert.Equal(t, "A", glyphs[0].Text)
		assert.Equal(t, "漢", glyphs[1].Text)
		assert.Equal(t, uint8(2), glyphs[1].NumCells)
		assert.Equal(t, uint32(1), glyphs[1].Cluster)
		assert.Equal(t, glyphing.FallbackIdx(0), glyphs[1].FontIdx)
		assert.NotZero(t, glyphs[1].GlyphPos)
		assert.Equal(t, "B", glyphs[2].Text)
		assert.Equal(t, uint32(4), glyphs[2].Cluster)
		assert.Equal(t, 4, glyphing.Cells(glyphs))
		sh.Close()
	}
}

func TestMetricsOfGoMono(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "termfont.glyphs")
	defer teardown()
	//
	sh := harfbuzz.New([]locator.Handle{font.FallbackFont(), goRegular()})
	defer sh.Close()
	m, err := sh.Metrics(12, 96)
	require.NoError(t, err)
	assert.InDelta(t, 9.6, m.CellWidth.Float(), 0.2)
	assert.True(t, m.CellHeight > m.CellWidth)
	assert.True(t, m.Descender < 0)
	assert.True(t, m.UnderlineThickness > 0)
	assert.True(t, m.UnderlinePosition < 0)
	assert.False(t, sh.Loaded(1))
}

func TestLoadErrorOfBrokenFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "termfont.glyphs")
	defer teardown()
	//
	broken := locator.InMemory{Name: "broken", Data: []byte("no font")}
	sh := harfbuzz.New([]locator.Handle{broken})
	_, err := sh.Shape("A", 12, 96)
	assert.Error(t, err)
	_, err = sh.Metrics(12, 96)
	assert.Error(t, err)
}
