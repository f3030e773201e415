package locator

import (
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/npillmayer/schuko"
	"github.com/npillmayer/termfont/core"
	"golang.org/x/text/cases"
)

// Locator maps a font selection to font resources.
//
// Entries of the selection are resolved in order. Entries which cannot be
// resolved are dropped, thus the result may be shorter than the selection or
// even empty. An error is returned only if the locator as a whole failed.
type Locator interface {
	LoadFonts(selection []Attributes) ([]Handle, error)
}

// Selection enumerates the available locator strategies.
type Selection int

// Locator strategies
const (
	FontConfig Selection = iota
	FontLoader
	FontKit
	ConfigDirsOnly
)

var selectionNames = []string{"FontConfig", "FontLoader", "FontKit", "ConfigDirsOnly"}

// Variants returns the names of all locator strategies, in declaration order.
func Variants() []string {
	v := make([]string, len(selectionNames))
	copy(v, selectionNames)
	return v
}

func (sel Selection) String() string {
	if sel < 0 || int(sel) >= len(selectionNames) {
		return fmt.Sprintf("Selection(%d)", int(sel))
	}
	return selectionNames[sel]
}

// ParseSelection reads the name of a locator strategy. Names are matched
// without regard to case. For an unknown name the error lists the valid ones.
func ParseSelection(s string) (Selection, error) {
	folder := cases.Fold()
	name := folder.String(strings.TrimSpace(s))
	for i, v := range selectionNames {
		if folder.String(v) == name {
			return Selection(i), nil
		}
	}
	return FontConfig, core.Error(core.EINVALID,
		"%s is not a valid locator selection, possible values are [%s]",
		s, strings.Join(selectionNames, ", "))
}

// --- Process-wide default --------------------------------------------------

var defaultSelection = struct {
	sync.RWMutex
	sel Selection
}{sel: platformDefault(runtime.GOOS)}

// platformDefault is FontConfig for POSIX systems other than macOS and
// FontLoader everywhere else.
func platformDefault(goos string) Selection {
	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly", "solaris", "illumos", "aix":
		return FontConfig
	}
	return FontLoader
}

// DefaultSelection returns the locator strategy currently set for the process.
func DefaultSelection() Selection {
	defaultSelection.RLock()
	defer defaultSelection.RUnlock()
	return defaultSelection.sel
}

// SetDefault sets the process-wide locator strategy. It is intended to be
// called early, from configuration, but is safe for concurrent use.
func SetDefault(sel Selection) {
	defaultSelection.Lock()
	defer defaultSelection.Unlock()
	tracer().Infof("default font locator set to %s", sel)
	defaultSelection.sel = sel
}

// DefaultLocator returns a locator for the current default strategy.
func DefaultLocator(conf schuko.Configuration) Locator {
	return DefaultSelection().NewLocator(conf)
}

// NewLocator creates a locator for strategy sel. The configuration is consulted
// for key "fontconfig" (the fc-match binary) and "app-key" (cache directories).
// conf may be nil.
//
// If the platform facility behind a strategy is not available, a locator
// which finds nothing is returned.
func (sel Selection) NewLocator(conf schuko.Configuration) Locator {
	switch sel {
	case FontConfig:
		bin := confString(conf, "fontconfig", "fc-match")
		if l, ok := newFontConfigLocator(bin); ok {
			return l
		}
		tracer().Infof("fontconfig binary %q not available, no system fonts will be located", bin)
		return NopLocator{}
	case FontLoader:
		return newFindFontLocator()
	case FontKit:
		return newFontScanLocator(confString(conf, "app-key", "termfont"))
	}
	return NopLocator{}
}

func confString(conf schuko.Configuration, key, dflt string) string {
	if conf == nil {
		return dflt
	}
	if v := strings.TrimSpace(conf.GetString(key)); v != "" {
		return v
	}
	return dflt
}

// --- Simple locators -------------------------------------------------------

// NopLocator never finds a font.
type NopLocator struct{}

// LoadFonts returns an empty list.
func (NopLocator) LoadFonts([]Attributes) ([]Handle, error) {
	return nil, nil
}

// Chain queries a list of locators in turn and concatenates their results,
// removing duplicates.
type Chain []Locator

// LoadFonts calls every locator of the chain. The first error stops the search.
func (c Chain) LoadFonts(selection []Attributes) ([]Handle, error) {
	var handles []Handle
	for _, l := range c {
		hh, err := l.LoadFonts(selection)
		if err != nil {
			return nil, err
		}
		handles = append(handles, hh...)
	}
	return Dedup(handles), nil
}
