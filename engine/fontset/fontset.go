/*
Package fontset puts together the fallback chain of fonts for a renderer.

The chain is made of fonts found in user-configured font directories,
followed by the fonts a system locator finds for the configured families,
followed by the built-in fallback font. The built-in font guarantees that a
chain is never empty, even on systems without any installed fonts.

Lookups of the system locator are remembered in a font registry, as
locating fonts may involve running external programs or scanning large
directory trees.

BSD License

Copyright (c) 2017–21, Norbert Pillmayer

All rights reserved.
Please refer to the License file for details.
*/
package fontset

import (
	"strings"

	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/termfont/core/font"
	"github.com/npillmayer/termfont/core/font/fontregistry"
	"github.com/npillmayer/termfont/core/locate/locator"
	"github.com/npillmayer/termfont/core/parameters"
	"github.com/npillmayer/termfont/engine/glyphing/harfbuzz"
)

// tracer traces with key 'termfont.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("termfont.fonts")
}

type builder struct {
	conf     schuko.Configuration
	registry *fontregistry.Registry
	system   locator.Locator
	backend  harfbuzz.Backend
}

// Option configures the construction of a font set.
type Option func(*builder)

// WithConfig passes a configuration to the system locator, e.g. for the
// name of the fontconfig binary.
func WithConfig(conf schuko.Configuration) Option {
	return func(b *builder) {
		b.conf = conf
	}
}

// WithRegistry sets the registry remembering located fonts. Default is the
// global registry.
func WithRegistry(r *fontregistry.Registry) Option {
	return func(b *builder) {
		if r != nil {
			b.registry = r
		}
	}
}

// WithLocator replaces the system locator selected by the font parameters.
func WithLocator(loc locator.Locator) Option {
	return func(b *builder) {
		b.system = loc
	}
}

// WithBackend sets the backend the shaper loads faces with.
func WithBackend(backend harfbuzz.Backend) Option {
	return func(b *builder) {
		b.backend = backend
	}
}

// Build locates the fonts for params and creates a shaper for them.
// It returns the shaper together with its fallback chain. Fonts are not
// loaded before the shaper needs them.
func Build(params parameters.FontParameters, opts ...Option) (*harfbuzz.Shaper, []locator.Handle, error) {
	b := &builder{registry: fontregistry.GlobalRegistry()}
	for _, opt := range opts {
		opt(b)
	}
	strategy := params.Locator.String()
	if b.system == nil {
		b.system = params.Locator.NewLocator(b.conf)
	} else {
		strategy = "custom"
	}
	var handles []locator.Handle
	if len(params.Dirs) > 0 {
		dirs := locator.NewDirScanLocator(params.Dirs...)
		hh, err := b.registry.Resolve("dirs:"+strings.Join(params.Dirs, ","), dirs, params.Families)
		if err != nil {
			return nil, nil, err
		}
		handles = append(handles, hh...)
	}
	hh, err := b.registry.Resolve(strategy, b.system, params.Families)
	if err != nil {
		return nil, nil, err
	}
	handles = append(handles, hh...)
	handles = append(handles, font.FallbackFont())
	handles = locator.Dedup(handles)
	for i, h := range handles {
		tracer().Infof("fallback font %d: %s", i, h)
	}
	shopts := []harfbuzz.Option{harfbuzz.WithFeatures(params.Features)}
	if b.backend != nil {
		shopts = append(shopts, harfbuzz.WithBackend(b.backend))
	}
	return harfbuzz.New(handles, shopts...), handles, nil
}

// Load reads the font parameters from conf and builds the font set for them.
func Load(conf schuko.Configuration, opts ...Option) (*harfbuzz.Shaper, parameters.FontParameters, error) {
	params, err := parameters.Load(conf)
	if err != nil {
		return nil, params, err
	}
	opts = append([]Option{WithConfig(conf)}, opts...)
	sh, _, err := Build(params, opts...)
	return sh, params, err
}
