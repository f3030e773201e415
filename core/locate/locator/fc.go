package locator

import (
	"bufio"
	"bytes"
	"os/exec"
	"strconv"
	"strings"

	"github.com/npillmayer/termfont/core"
	xfont "golang.org/x/image/font"
)

// fcFormat makes fc-match print file, collection index and family names of
// the best match, tab-separated.
const fcFormat = "--format=%{file}\t%{index}\t%{family}\n"

// fontConfigLocator asks fontconfig for the best match of each entry of a
// selection, by running the fc-match binary.
type fontConfigLocator struct {
	binary string
	run    func(binary string, args ...string) ([]byte, error)
}

func newFontConfigLocator(binary string) (*fontConfigLocator, bool) {
	path, err := exec.LookPath(binary)
	if err != nil {
		tracer().Debugf("fontconfig: %v", err)
		return nil, false
	}
	return &fontConfigLocator{binary: path, run: runCommand}, true
}

func runCommand(binary string, args ...string) ([]byte, error) {
	return exec.Command(binary, args...).Output()
}

// LoadFonts calls fc-match once per entry of the selection. fc-match will
// always come up with some font; a result is accepted only if it carries the
// requested family, or if a generic family (monospace, serif, …) was requested.
func (fc *fontConfigLocator) LoadFonts(selection []Attributes) ([]Handle, error) {
	var handles []Handle
	for _, attr := range selection {
		out, err := fc.run(fc.binary, fcFormat, fcPattern(attr))
		if err != nil {
			err = core.WrapError(err, core.ECONNECTION, "fontconfig failed for %s", attr)
			tracer().Infof(err.Error())
			continue
		}
		h, families, ok := parseFcMatch(out)
		if !ok {
			tracer().Debugf("fontconfig: no usable answer for %s", attr)
			continue
		}
		if !isGenericFamily(attr.Family) && !containsFamily(families, attr.Family) {
			tracer().Debugf("fontconfig substituted %v for %s, dropped", families, attr)
			continue
		}
		tracer().Debugf("fontconfig resolved %s to %s", attr, h)
		handles = append(handles, h)
	}
	return handles, nil
}

// fcPattern creates a fontconfig pattern like "Fira Code:weight=bold:slant=italic".
func fcPattern(attr Attributes) string {
	var b strings.Builder
	b.WriteString(strings.NewReplacer("-", `\-`, ":", `\:`, ",", `\,`).Replace(attr.Family))
	if attr.Weight != xfont.WeightNormal {
		b.WriteString(":weight=" + weightName(attr.Weight))
	}
	switch attr.Style {
	case xfont.StyleItalic:
		b.WriteString(":slant=italic")
	case xfont.StyleOblique:
		b.WriteString(":slant=oblique")
	}
	return b.String()
}

// parseFcMatch reads the first non-empty line of fc-match output produced
// with fcFormat.
func parseFcMatch(out []byte) (Handle, []string, bool) {
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if fields[0] == "" || !isFontFile(fields[0]) {
			return nil, nil, false
		}
		h := OnDisk{Path: fields[0]}
		if len(fields) > 1 {
			if inx, err := strconv.ParseUint(strings.TrimSpace(fields[1]), 10, 32); err == nil {
				h.FaceIndex = uint32(inx)
			}
		}
		var families []string
		if len(fields) > 2 {
			families = strings.Split(fields[2], ",")
		}
		return h, families, true
	}
	return nil, nil, false
}

func containsFamily(families []string, family string) bool {
	for _, f := range families {
		if strings.EqualFold(strings.TrimSpace(f), strings.TrimSpace(family)) {
			return true
		}
	}
	return false
}
