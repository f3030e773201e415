package locator

import (
	"sync"

	"github.com/go-text/typesetting/fontscan"
)

// fontScanLocator uses the system font index of go-text. Building the index
// is expensive the first time; it is cached in the user's cache directory and
// loaded lazily on first use.
type fontScanLocator struct {
	appKey string
	once   sync.Once
	fm     *fontScanIndex
}

// fontScanIndex wraps the calls into a fontscan.FontMap.
type fontScanIndex struct {
	find func(family string) (fontscan.Location, bool)
}

func newFontScanLocator(appKey string) *fontScanLocator {
	return &fontScanLocator{appKey: appKey}
}

// scanLogger routes fontscan's log output to our tracer.
type scanLogger struct{}

func (scanLogger) Printf(format string, args ...interface{}) {
	tracer().Debugf("fontscan: "+format, args...)
}

func (sl *fontScanLocator) index() *fontScanIndex {
	sl.once.Do(func() {
		cachedir, err := CacheDirPath(sl.appKey, "fontscan")
		if err != nil {
			tracer().Errorf("no cache directory for system font index: %v", err)
			return
		}
		fm := fontscan.NewFontMap(scanLogger{})
		if err := fm.UseSystemFonts(cachedir); err != nil {
			tracer().Errorf("cannot index system fonts: %v", err)
			return
		}
		sl.fm = &fontScanIndex{find: fm.FindSystemFont}
	})
	return sl.fm
}

// LoadFonts looks up every family of the selection in the system font index.
// Style and weight are not considered by the index lookup.
func (sl *fontScanLocator) LoadFonts(selection []Attributes) ([]Handle, error) {
	idx := sl.index()
	if idx == nil {
		return nil, nil
	}
	var handles []Handle
	for _, attr := range selection {
		for _, family := range attr.candidateFamilies() {
			if loc, ok := idx.find(family); ok {
				tracer().Debugf("system font index resolved %s to %s", attr, loc.File)
				handles = append(handles, OnDisk{Path: loc.File, FaceIndex: uint32(loc.Index)})
				break
			}
		}
	}
	return handles, nil
}
