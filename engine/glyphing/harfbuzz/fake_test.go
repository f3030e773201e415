package harfbuzz

import (
	"strings"
	"unicode/utf8"

	"github.com/go-text/typesetting/shaping"
	"github.com/npillmayer/termfont/core"
	"github.com/npillmayer/termfont/core/font"
	"github.com/npillmayer/termfont/core/locate/locator"
)

// fakeFont shapes one glyph per rune, with the rune as glyph ID, if the rune
// is covered. A ligature is shaped into a single glyph; decomposed runes are
// shaped into two glyphs of the same cluster. If clusters is set, it
// overwrites the clusters of the first glyphs.
type fakeFont struct {
	coverage   string
	ligature   string
	decomposed map[rune][2]rune
	clusters   []uint32
	sized      int
	closed     int
}

const ligatureGID = 0xf000

func (f *fakeFont) covers(r rune) bool {
	return strings.ContainsRune(f.coverage, r)
}

func (f *fakeFont) gid(r rune) uint32 {
	if f.covers(r) {
		return uint32(r)
	}
	return 0
}

func (f *fakeFont) SetPixelSize(size float64, dpi uint32) (float64, float64, error) {
	if size <= 0 {
		return 0, 0, core.Error(core.EINVALID, "invalid size")
	}
	f.sized++
	return 10, 20, nil
}

func (f *fakeFont) SizeMetrics() font.SizeMetrics {
	return font.SizeMetrics{
		Descender:          -256,
		UnderlinePosition:  -100,
		UnderlineThickness: 50,
		YScale:             32 * 65536,
	}
}

func (f *fakeFont) Shape(text string, _ []shaping.FontFeature) []RawGlyph {
	var glyphs []RawGlyph
	for i := 0; i < len(text); {
		if f.ligature != "" && strings.HasPrefix(text[i:], f.ligature) {
			glyphs = append(glyphs, RawGlyph{GlyphID: ligatureGID, Cluster: uint32(i), XAdvance: 640})
			i += len(f.ligature)
			continue
		}
		r, size := utf8.DecodeRuneInString(text[i:])
		if d, ok := f.decomposed[r]; ok {
			glyphs = append(glyphs,
				RawGlyph{GlyphID: f.gid(d[0]), Cluster: uint32(i), XAdvance: 640},
				RawGlyph{GlyphID: f.gid(d[1]), Cluster: uint32(i), XOffset: -640})
		} else {
			glyphs = append(glyphs, RawGlyph{GlyphID: f.gid(r), Cluster: uint32(i), XAdvance: 640})
		}
		i += size
	}
	for i, c := range f.clusters {
		if i < len(glyphs) {
			glyphs[i].Cluster = c
		}
	}
	return glyphs
}

func (f *fakeFont) Close() error {
	f.closed++
	return nil
}

// fakeBackend hands out fake fonts by handle name.
type fakeBackend struct {
	fonts map[string]*fakeFont
	fail  map[string]bool
	loads map[string]int
}

func newFakeBackend(fonts map[string]*fakeFont) *fakeBackend {
	return &fakeBackend{fonts: fonts, fail: map[string]bool{}, loads: map[string]int{}}
}

func (b *fakeBackend) Load(h locator.Handle) (FacePair, error) {
	name := h.(locator.InMemory).Name
	b.loads[name]++
	if b.fail[name] {
		return nil, core.WrapError(core.ErrFontLoad, core.EFONTLOAD, "font %s is corrupt", name)
	}
	f, ok := b.fonts[name]
	if !ok {
		return nil, core.Error(core.EMISSING, "no font %s", name)
	}
	return f, nil
}

func fakeHandles(names ...string) []locator.Handle {
	handles := make([]locator.Handle, len(names))
	for i, name := range names {
		handles[i] = locator.InMemory{Name: name, Data: []byte{1}}
	}
	return handles
}

const ascii = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789 ?"
