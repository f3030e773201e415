package locator

import (
	"sync"

	"github.com/flopp/go-findfont"
)

// findFontLocator scans the platform's font directories for font files and
// matches file names against the selection. The font directories are
// scanned once.
type findFontLocator struct {
	list      func() []string
	find      func(string) (string, error)
	once      sync.Once
	fontfiles []string
}

func newFindFontLocator() *findFontLocator {
	return &findFontLocator{list: findfont.List, find: findfont.Find}
}

// LoadFonts resolves each entry of the selection by file name. A family
// given as a file name ("DejaVuSansMono.ttf") is looked up directly.
func (ff *findFontLocator) LoadFonts(selection []Attributes) ([]Handle, error) {
	var handles []Handle
	for _, attr := range selection {
		if isFontFile(attr.Family) {
			if path, err := ff.find(attr.Family); err == nil {
				handles = append(handles, OnDisk{Path: path})
				continue
			}
			tracer().Debugf("font file %s not found", attr.Family)
			continue
		}
		ff.once.Do(func() {
			ff.fontfiles = filterFontFiles(ff.list())
			tracer().Debugf("font loader found %d system font files", len(ff.fontfiles))
		})
		if path, ok := closestMatchForFamilies(ff.fontfiles, attr); ok {
			handles = append(handles, OnDisk{Path: path})
		}
	}
	return handles, nil
}

func filterFontFiles(paths []string) []string {
	files := make([]string, 0, len(paths))
	for _, p := range paths {
		if isFontFile(p) {
			files = append(files, p)
		}
	}
	return files
}
