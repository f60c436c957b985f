package formatting

import (
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// MarkdownTable renders rows as a Markdown table. It is used in tool output,
// which is read by agents and rendered by chat clients.
func MarkdownTable(header []string, rows [][]string) string {
	t := table.NewWriter()
	t.AppendHeader(toRow(header))
	for _, r := range rows {
		t.AppendRow(toRow(r))
	}
	return t.RenderMarkdown()
}

// WriteTable prints rows as a rounded terminal table to w, with a colored
// header when color is set.
func WriteTable(w io.Writer, header []string, rows [][]string, color bool) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)

	h := toRow(header)
	if color {
		for i, cell := range h {
			h[i] = text.FgHiCyan.Sprint(strings.ToUpper(cell.(string)))
		}
	}
	t.AppendHeader(h)
	for _, r := range rows {
		t.AppendRow(toRow(r))
	}
	t.Render()
}

func toRow(cells []string) table.Row {
	row := make(table.Row, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	return row
}
