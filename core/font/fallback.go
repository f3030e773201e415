package font

import (
	"github.com/npillmayer/termfont/core/locate/locator"
	"golang.org/x/image/font/gofont/gomono"
)

// FallbackFont returns a font to be used if everything else failes. It is
// always present. Currently we use Go Mono.
func FallbackFont() locator.Handle {
	return locator.InMemory{
		Name: "Go Mono",
		Data: gomono.TTF,
	}
}
