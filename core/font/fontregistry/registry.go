package fontregistry

import (
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/termfont/core/locate/locator"
)

// DefaultCapacity is the number of font descriptions the global registry
// remembers.
const DefaultCapacity = 256

// Registry is a type for holding information about located fonts.
// It is safe for concurrent use.
type Registry struct {
	sync.Mutex
	resolved *lru.Cache // key → []locator.Handle
	hits     int
	misses   int
}

var globalFontRegistry *Registry

var globalRegistryCreation sync.Once

// GlobalRegistry is an application-wide singleton to hold information about
// located fonts.
func GlobalRegistry() *Registry {
	globalRegistryCreation.Do(func() {
		globalFontRegistry = NewRegistry(DefaultCapacity)
	})
	return globalFontRegistry
}

// NewRegistry creates a registry remembering up to capacity font descriptions.
func NewRegistry(capacity int) *Registry {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	cache, err := lru.New(capacity)
	if err != nil {
		panic(err) // cannot happen for positive capacity
	}
	return &Registry{resolved: cache}
}

// Resolve asks locator loc for each entry of a selection, unless the registry
// already knows the answer for the entry from earlier requests with the same
// strategy. strategy is an arbitrary name identifying loc's way of locating
// fonts, e.g. "FontConfig".
//
// Entries which loc cannot resolve are remembered as well. Errors are not.
func (fr *Registry) Resolve(strategy string, loc locator.Locator, selection []locator.Attributes) (
	[]locator.Handle, error) {
	//
	fr.Lock()
	defer fr.Unlock()
	var handles []locator.Handle
	for _, attr := range selection {
		key := cacheKey(strategy, attr)
		if hh, ok := fr.resolved.Get(key); ok {
			fr.hits++
			handles = append(handles, hh.([]locator.Handle)...)
			continue
		}
		fr.misses++
		hh, err := loc.LoadFonts([]locator.Attributes{attr})
		if err != nil {
			return nil, err
		}
		tracer().Debugf("registry stores %d font(s) for %s", len(hh), key)
		fr.resolved.Add(key, hh)
		handles = append(handles, hh...)
	}
	return handles, nil
}

// Purge forgets all located fonts, e.g. after fonts have been installed.
func (fr *Registry) Purge() {
	fr.Lock()
	defer fr.Unlock()
	fr.resolved.Purge()
	fr.hits, fr.misses = 0, 0
}

// Stats returns the number of entries answered from the cache and the number
// of entries for which a locator had to be asked.
func (fr *Registry) Stats() (hits, misses int) {
	fr.Lock()
	defer fr.Unlock()
	return fr.hits, fr.misses
}

// LogFontList is a helper function to dump the list of known fonts
// in a registry to the trace-file (log-level Info).
func (fr *Registry) LogFontList() {
	fr.Lock()
	defer fr.Unlock()
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelInfo)
	tracer().Infof("--- registered fonts ---")
	for _, k := range fr.resolved.Keys() {
		if hh, ok := fr.resolved.Peek(k); ok {
			tracer().Infof("font [%s] = %v", k, hh)
		}
	}
	tracer().Infof("------------------------")
	tracer().SetTraceLevel(level)
}

// cacheKey is strategy and normalized font name, e.g. "FontConfig|fira_code-bold".
func cacheKey(strategy string, attr locator.Attributes) string {
	return strings.ToLower(strategy) + "|" + attr.Normalized()
}
