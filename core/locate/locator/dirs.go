package locator

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// DirScanLocator searches configured font directories, matching font file
// names against the selection. Directories are scanned recursively, once.
type DirScanLocator struct {
	Dirs  []string
	files []string
}

// NewDirScanLocator creates a locator for a list of directories.
// Directories which do not exist are ignored.
func NewDirScanLocator(dirs ...string) *DirScanLocator {
	return &DirScanLocator{Dirs: dirs}
}

// LoadFonts resolves every entry of the selection against the files of the
// configured directories.
func (dl *DirScanLocator) LoadFonts(selection []Attributes) ([]Handle, error) {
	if len(dl.Dirs) == 0 {
		return nil, nil
	}
	if dl.files == nil {
		dl.files = scanFontDirs(dl.Dirs)
	}
	var handles []Handle
	for _, attr := range selection {
		if path, ok := closestMatchForFamilies(dl.files, attr); ok {
			handles = append(handles, OnDisk{Path: path})
		}
	}
	return handles, nil
}

func scanFontDirs(dirs []string) []string {
	files := []string{}
	for _, dir := range dirs {
		if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
			tracer().Infof("font directory %s not accessible, skipped", dir)
			continue
		}
		filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				tracer().Debugf("font directory scan: %v", err)
				return nil
			}
			if !d.IsDir() && isFontFile(path) {
				files = append(files, path)
			}
			return nil
		})
	}
	sort.Strings(files)
	tracer().Debugf("found %d font files in %v", len(files), dirs)
	return files
}
