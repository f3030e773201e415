/*
Command termshape shapes lines of text the way a terminal renderer does,
with a chain of fallback fonts, and prints the resulting glyphs.

Usage:

	termshape [-families "Fira Code, Noto Color Emoji"] [-size 12] [-dpi 96]
	          [-locator FontConfig] [-features kern,liga] [-mono] [-trace Info]

Every line entered is shaped and printed as a table of glyphs. Lines
starting with a colon are commands:

	:metrics    print the cell metrics of the primary font
	:fonts      list the fallback chain
	:help       list the commands
	:quit       leave (as does <ctrl>D)
*/
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/termfont/core"
	"github.com/npillmayer/termfont/core/locate/locator"
	"github.com/npillmayer/termfont/core/parameters"
	"github.com/npillmayer/termfont/engine/fontset"
	"github.com/npillmayer/termfont/engine/glyphing"
	"github.com/npillmayer/termfont/engine/glyphing/harfbuzz"
	"github.com/npillmayer/termfont/engine/glyphing/monospace"
	"github.com/pterm/pterm"
)

// tracer traces with key 'termfont.cli'
func tracer() tracing.Trace {
	return tracing.Select("termfont.cli")
}

var traceKeys = []string{"termfont.cli", "termfont.fonts", "termfont.glyphs", "termfont.locate"}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	tconf := testconfig.Conf{"tracing.adapter": "go"}
	for _, key := range traceKeys {
		tconf["trace."+key] = "Error"
	}
	if err := trace2go.ConfigureRoot(tconf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	families := flag.String("families", parameters.DefaultFamilies, "Comma separated list of font families")
	loc := flag.String("locator", "", "Font locator "+strings.Join(locator.Variants(), "|"))
	size := flag.String("size", "", "Font size, in points or as a dimension (e.g. 16px)")
	dpi := flag.String("dpi", "", "Display density")
	dirs := flag.String("dirs", "", "Additional font directories")
	features := flag.String("features", "", `OpenType features, e.g. "kern,-liga", or "none"`)
	mono := flag.Bool("mono", false, "Do not use any font, shape by cell width only")
	flag.Parse()
	level, ok := traceLevel(*tlevel)
	if !ok {
		pterm.Error.Printf("invalid trace level: %s\n", *tlevel)
		os.Exit(2)
	}
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}
	pterm.Info.Println("Welcome to the terminal font shaper")
	//
	// put the font set together
	conf := testconfig.Conf{
		parameters.KeyFamilies: *families,
		parameters.KeyLocator:  *loc,
		parameters.KeySize:     *size,
		parameters.KeyDPI:      *dpi,
		parameters.KeyDirs:     *dirs,
		parameters.KeyFeatures: *features,
	}
	intp, err := newIntp(conf, *mono)
	if err != nil {
		core.UserError(os.Stderr, err)
		os.Exit(3)
	}
	defer intp.Close()
	//
	// set up REPL
	repl, err := readline.New("shape > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(4)
	}
	defer repl.Close()
	intp.repl = repl
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	tracer().Infof("Trace level is %s", *tlevel)
	intp.REPL() // go into interactive mode
}

func traceLevel(l string) (tracing.TraceLevel, bool) {
	switch strings.ToLower(l) {
	case "debug":
		return tracing.LevelDebug, true
	case "info":
		return tracing.LevelInfo, true
	case "error":
		return tracing.LevelError, true
	}
	return tracing.LevelError, false
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	repl    *readline.Instance
	params  parameters.FontParameters
	shaper  glyphing.Shaper
	handles []locator.Handle
	errout  io.Writer
}

func newIntp(conf testconfig.Conf, mono bool) (*Intp, error) {
	intp := &Intp{errout: os.Stderr}
	if mono {
		params, err := parameters.Load(conf)
		if err != nil {
			return nil, err
		}
		intp.params, intp.shaper = params, monospace.Shaper(nil)
		return intp, nil
	}
	sh, params, err := fontset.Load(conf)
	if err != nil {
		return nil, err
	}
	intp.params, intp.shaper, intp.handles = params, sh, sh.Handles()
	return intp, nil
}

// Close releases the fonts of the interpreter.
func (intp *Intp) Close() {
	if sh, ok := intp.shaper.(*harfbuzz.Shaper); ok {
		sh.Close()
	}
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		quit, err := intp.execute(line)
		if err != nil {
			intp.report(err)
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// report prints an error of a line or command, and keeps the REPL going.
func (intp *Intp) report(err error) {
	tracer().Errorf("%v", err)
	core.UserError(intp.errout, err)
}

// execute shapes a line or, if it starts with a colon, runs a command.
func (intp *Intp) execute(line string) (quit bool, err error) {
	if !strings.HasPrefix(line, ":") {
		return false, intp.shapeLine(line)
	}
	switch cmd := strings.ToLower(strings.TrimSpace(line[1:])); cmd {
	case "quit", "q":
		return true, nil
	case "metrics", "m":
		return false, intp.printMetrics()
	case "fonts", "f":
		intp.printFonts()
	case "help", "h", "?":
		help()
	default:
		pterm.Error.Printf("unknown command :%s\n", cmd)
		help()
	}
	return false, nil
}

func help() {
	pterm.Println(`
	<text>      shape text and print the glyphs
	:metrics    print the cell metrics of the primary font
	:fonts      list the fallback chain
	:quit       leave`)
}
