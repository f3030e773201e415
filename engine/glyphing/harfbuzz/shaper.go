package harfbuzz

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/go-text/typesetting/shaping"
	"github.com/npillmayer/termfont/core"
	"github.com/npillmayer/termfont/core/dimen"
	"github.com/npillmayer/termfont/core/locate/locator"
	"github.com/npillmayer/termfont/engine/glyphing"
	"github.com/npillmayer/termfont/engine/glyphing/monospace"
)

// Replacement is the text shaped in place of text no font of a chain has
// glyphs for.
const Replacement = "?"

// ErrClosed is returned by a Shaper after Close.
var ErrClosed = errors.New("shaper is closed")

// ErrUnshapeableReplacement signals that not even the replacement text could be
// shaped with the fonts of a chain. It matches core.ErrNoMoreFallbacks, too.
var ErrUnshapeableReplacement = fmt.Errorf("%w for replacement %q", core.ErrNoMoreFallbacks, Replacement)

// fontPair is a loaded face of the fallback chain, together with the size it
// has last been configured for.
type fontPair struct {
	face       FacePair
	sized      bool
	size       float64
	dpi        uint32
	cellWidth  float64
	cellHeight float64
	resizes    int
}

// configure sizes the face unless it already has size and dpi.
func (p *fontPair) configure(size float64, dpi uint32) error {
	if p.sized && p.size == size && p.dpi == dpi {
		return nil
	}
	w, h, err := p.face.SetPixelSize(size, dpi)
	if err != nil {
		return err
	}
	p.sized, p.size, p.dpi = true, size, dpi
	p.cellWidth, p.cellHeight = w, h
	p.resizes++
	return nil
}

// Shaper shapes text with a chain of fallback fonts. Position 0 of the chain
// is the primary font. Faces are loaded on first use, at most once per
// position, and kept until Close. Close ends the life of a shaper.
//
// A Shaper is not safe for concurrent use; every goroutine should use its
// own instance.
type Shaper struct {
	handles  []locator.Handle
	fonts    []*fontPair // indexed by fallback position, nil if not yet loaded
	backend  Backend
	features []shaping.FontFeature
	closed   bool
}

var _ glyphing.Shaper = (*Shaper)(nil)

// Option configures a Shaper.
type Option func(*Shaper)

// WithBackend sets the backend used to load font faces.
func WithBackend(b Backend) Option {
	return func(sh *Shaper) {
		if b != nil {
			sh.backend = b
		}
	}
}

// WithFeatures sets OpenType features in HarfBuzz notation ("kern", "-liga").
// Invalid settings are skipped. Default is kern, liga and clig.
func WithFeatures(settings []string) Option {
	return func(sh *Shaper) {
		sh.features = ParseFeatures(settings)
	}
}

// New creates a shaper for a fallback chain of font handles.
// No font is loaded before it is needed.
func New(handles []locator.Handle, opts ...Option) *Shaper {
	sh := &Shaper{
		handles:  append([]locator.Handle(nil), handles...),
		fonts:    make([]*fontPair, len(handles)),
		backend:  DefaultBackend,
		features: ParseFeatures([]string{"kern", "liga", "clig"}),
	}
	for _, opt := range opts {
		opt(sh)
	}
	return sh
}

// Handles returns the fallback chain.
func (sh *Shaper) Handles() []locator.Handle {
	return sh.handles
}

// Resizes returns how often the face at fallback position idx has been sized.
func (sh *Shaper) Resizes(idx glyphing.FallbackIdx) int {
	if int(idx) < 0 || int(idx) >= len(sh.fonts) || sh.fonts[idx] == nil {
		return 0
	}
	return sh.fonts[idx].resizes
}

// Loaded returns true if the face at fallback position idx has been loaded.
func (sh *Shaper) Loaded(idx glyphing.FallbackIdx) bool {
	return int(idx) >= 0 && int(idx) < len(sh.fonts) && sh.fonts[idx] != nil
}

// Close releases all loaded faces. Shape and Metrics fail with ErrClosed
// afterwards. Closing a closed shaper does nothing.
func (sh *Shaper) Close() error {
	if sh.closed {
		return nil
	}
	sh.closed = true
	var err error
	for i, p := range sh.fonts {
		if p == nil {
			continue
		}
		if e := p.face.Close(); e != nil && err == nil {
			err = e
		}
		sh.fonts[i] = nil
	}
	return err
}

// loadFallback returns the face at fallback position idx, loading it if
// necessary. It returns nil without an error if idx is beyond the chain.
func (sh *Shaper) loadFallback(idx glyphing.FallbackIdx) (*fontPair, error) {
	if sh.closed {
		return nil, core.WrapError(ErrClosed, core.EINVALID, "cannot load font %d of a closed shaper", idx)
	}
	if int(idx) >= len(sh.handles) {
		return nil, nil
	}
	if p := sh.fonts[idx]; p != nil {
		return p, nil
	}
	h := sh.handles[idx]
	tracer().Debugf("shaper wants font %d: %s", idx, h)
	face, err := sh.backend.Load(h)
	if err != nil {
		if core.Code(err) != core.EFONTLOAD {
			err = core.WrapError(err, core.EFONTLOAD, "cannot load font %d: %s", idx, h)
		}
		return nil, err
	}
	p := &fontPair{face: face}
	sh.fonts[idx] = p
	return p, nil
}

// Shape shapes text at a font size (in points) for a display density.
//
// Glyphs are taken from the primary font wherever possible. Runs of text the
// primary font has no glyphs for are shaped with the next font of the chain,
// recursively. Text no font has glyphs for is replaced by a question mark.
// The text snippets of the resulting glyphs partition text, and clusters are
// byte offsets into text.
//
// Shape fails if a font of the chain cannot be loaded, or if not even the
// replacement character can be shaped.
func (sh *Shaper) Shape(text string, size float64, dpi uint32) ([]glyphing.GlyphInfo, error) {
	if sh.closed {
		return nil, core.WrapError(ErrClosed, core.EINVALID, "cannot shape with a closed shaper")
	}
	if text == "" {
		return []glyphing.GlyphInfo{}, nil
	}
	start := time.Now()
	glyphs, err := sh.shape(0, text, size, dpi)
	tracer().Debugf("shaping %d bytes took %s", len(text), time.Since(start))
	return glyphs, err
}

func (sh *Shaper) shape(idx glyphing.FallbackIdx, s string, size float64, dpi uint32) (
	[]glyphing.GlyphInfo, error) {
	//
	if s == "" {
		return nil, nil
	}
	p, err := sh.loadFallback(idx)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, core.WrapError(core.ErrNoMoreFallbacks, core.ENOFALLBACK,
			"no more fallbacks while shaping %x", []rune(s))
	}
	if err = p.configure(size, dpi); err != nil {
		return nil, err
	}
	raw := p.face.Shape(s, sh.features)
	sizes := clusterSizes(raw, len(s))
	unmapped := unmappedClusters(raw)
	glyphs := make([]glyphing.GlyphInfo, 0, len(raw))
	runStart, runEnd := -1, -1
	for i, g := range raw {
		pos := int(g.Cluster)
		if pos >= len(s) {
			tracer().Errorf("font %d produced glyph %d at cluster %d beyond %q, dropped",
				idx, g.GlyphID, pos, s)
			continue
		}
		if unmapped[g.Cluster] {
			if runStart < 0 || pos < runStart {
				runStart = pos
			}
			if end := pos + sizes[i]; end > runEnd {
				runEnd = end
			}
			continue
		}
		if runStart >= 0 {
			fallback, err := sh.shapeFallback(idx, s, runStart, runEnd, size, dpi)
			if err != nil {
				return nil, err
			}
			glyphs = append(glyphs, fallback...)
			runStart, runEnd = -1, -1
		}
		end := pos + sizes[i]
		if !validSpan(s, pos, end) {
			err := core.Error(core.ESPAN, "glyph %d of font %d has span [%d:%d] in %q",
				g.GlyphID, idx, pos, end, s)
			tracer().Errorf(err.Error())
			repl, err := sh.shape(0, Replacement, size, dpi)
			if err != nil {
				return nil, err
			}
			glyphs = append(glyphs, shiftClusters(repl, pos)...)
			continue
		}
		glyphs = append(glyphs, makeGlyphInfo(s[pos:end], idx, g))
	}
	if runStart >= 0 {
		fallback, err := sh.shapeFallback(idx, s, runStart, runEnd, size, dpi)
		if err != nil {
			return nil, err
		}
		glyphs = append(glyphs, fallback...)
	}
	return glyphs, nil
}

// shapeFallback shapes s[start:end], which font idx has no glyphs for, with
// the next font of the chain. If the chain is exhausted, the replacement
// text is shaped with the primary font instead. Clusters of the result are
// relative to s.
func (sh *Shaper) shapeFallback(idx glyphing.FallbackIdx, s string, start, end int,
	size float64, dpi uint32) ([]glyphing.GlyphInfo, error) {
	//
	if start < 0 || end > len(s) || start > end {
		return nil, core.Error(core.EINTERNAL, "invalid fallback run [%d:%d] in %q", start, end, s)
	}
	run := s[start:end]
	glyphs, err := sh.shape(idx+1, run, size, dpi)
	if err != nil {
		if core.Code(err) != core.ENOFALLBACK || errors.Is(err, ErrUnshapeableReplacement) {
			return nil, err
		}
		if run == Replacement {
			// the replacement is unmapped in every font up to here;
			// shaping it again from the start would recurse forever
			return nil, core.WrapError(ErrUnshapeableReplacement, core.ENOFALLBACK,
				"unable to find any usable glyphs for %q in font %d", Replacement, idx)
		}
		tracer().Errorf("%v", err)
		glyphs, err = sh.shape(0, Replacement, size, dpi)
		if err != nil {
			return nil, err
		}
		if len(glyphs) > 0 {
			// the replacement stands for the whole run
			glyphs[0].Text = run
			glyphs[0].NumCells = cellsOf(run)
		}
	}
	return shiftClusters(glyphs, start), nil
}

// Metrics returns the cell metrics of the primary font at size and dpi.
// It fails if the primary font cannot be loaded.
func (sh *Shaper) Metrics(size float64, dpi uint32) (glyphing.FontMetrics, error) {
	p, err := sh.loadFallback(0)
	if err != nil {
		return glyphing.FontMetrics{}, err
	}
	if p == nil {
		return glyphing.FontMetrics{}, core.Error(core.EMISSING, "unable to load first font, fallback chain is empty")
	}
	if err = p.configure(size, dpi); err != nil {
		return glyphing.FontMetrics{}, err
	}
	m := p.face.SizeMetrics()
	yScale := float64(m.YScale) / 65536 // font units to 26.6
	return glyphing.FontMetrics{
		CellWidth:          dimen.Px(p.cellWidth),
		CellHeight:         dimen.Px(p.cellHeight),
		Descender:          dimen.PxFrom26_6(m.Descender),
		UnderlineThickness: dimen.Px(float64(m.UnderlineThickness) * yScale / 64),
		UnderlinePosition:  dimen.Px(float64(m.UnderlinePosition) * yScale / 64),
	}, nil
}

// --- Helpers ---------------------------------------------------------------

func makeGlyphInfo(text string, idx glyphing.FallbackIdx, g RawGlyph) glyphing.GlyphInfo {
	return glyphing.GlyphInfo{
		Text:     text,
		NumCells: cellsOf(text),
		FontIdx:  idx,
		GlyphPos: g.GlyphID,
		Cluster:  g.Cluster,
		XAdvance: dimen.PxFrom26_6(g.XAdvance),
		YAdvance: dimen.PxFrom26_6(g.YAdvance),
		XOffset:  dimen.PxFrom26_6(g.XOffset),
		YOffset:  dimen.PxFrom26_6(g.YOffset),
	}
}

func cellsOf(text string) uint8 {
	n := monospace.Cells(text)
	if n > 255 {
		n = 255
	}
	return uint8(n)
}

func shiftClusters(glyphs []glyphing.GlyphInfo, offset int) []glyphing.GlyphInfo {
	for i := range glyphs {
		glyphs[i].Cluster += uint32(offset)
	}
	return glyphs
}

// validSpan checks that s[start:end] is within s and starts and ends on
// rune boundaries.
func validSpan(s string, start, end int) bool {
	if start < 0 || end > len(s) || start > end {
		return false
	}
	if start < len(s) && !utf8.RuneStart(s[start]) {
		return false
	}
	return end == len(s) || utf8.RuneStart(s[end])
}
