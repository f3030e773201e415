package main

import (
	"fmt"
	"strconv"

	"github.com/npillmayer/termfont/engine/glyphing"
	"github.com/pterm/pterm"
)

func (intp *Intp) shapeLine(line string) error {
	glyphs, err := intp.shaper.Shape(line, intp.params.Size, intp.params.DPI)
	if err != nil {
		return err
	}
	pterm.DefaultTable.WithHasHeader().WithData(glyphTable(glyphs)).Render()
	pterm.Printf("%d glyphs, %d cells, advance %s\n", len(glyphs), glyphing.Cells(glyphs),
		glyphing.Advance(glyphs))
	return nil
}

func glyphTable(glyphs []glyphing.GlyphInfo) [][]string {
	data := [][]string{
		{"Text", "Cells", "Font", "Glyph", "Cluster", "Advance", "Offset"},
	}
	for _, g := range glyphs {
		data = append(data, []string{
			strconv.Quote(g.Text),
			strconv.Itoa(int(g.NumCells)),
			strconv.Itoa(int(g.FontIdx)),
			strconv.FormatUint(uint64(g.GlyphPos), 10),
			strconv.FormatUint(uint64(g.Cluster), 10),
			g.XAdvance.String(),
			fmt.Sprintf("%s,%s", g.XOffset, g.YOffset),
		})
	}
	return data
}

func (intp *Intp) printMetrics() error {
	m, err := intp.shaper.Metrics(intp.params.Size, intp.params.DPI)
	if err != nil {
		return err
	}
	pterm.Info.Printf("metrics at %gpt, %d dpi\n", intp.params.Size, intp.params.DPI)
	data := [][]string{
		{"Metric", "Value"},
		{"cell width", m.CellWidth.String()},
		{"cell height", m.CellHeight.String()},
		{"descender", m.Descender.String()},
		{"underline thickness", m.UnderlineThickness.String()},
		{"underline position", m.UnderlinePosition.String()},
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil
}

func (intp *Intp) printFonts() {
	if len(intp.handles) == 0 {
		pterm.Info.Println("no fonts, shaping by cell width")
		return
	}
	data := [][]string{{"Index", "Font"}}
	for i, h := range intp.handles {
		data = append(data, []string{strconv.Itoa(i), h.String()})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
