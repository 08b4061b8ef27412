package output

import (
	"bufio"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// WriteTable renders header and rows as a space-aligned text table. Column
// widths are measured in terminal cells, so Cyrillic and wide characters
// line up.
func WriteTable(w io.Writer, header []string, rows [][]string) error {
	widths := make([]int, len(header))
	measure := func(cells []string) {
		for i, c := range cells {
			if i < len(widths) {
				if n := runewidth.StringWidth(c); n > widths[i] {
					widths[i] = n
				}
			}
		}
	}
	measure(header)
	for _, r := range rows {
		measure(r)
	}

	bw := bufio.NewWriter(w)
	line := func(cells []string) {
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			if i == len(widths)-1 {
				bw.WriteString(cell)
			} else {
				bw.WriteString(runewidth.FillRight(cell, widths[i]))
				bw.WriteString("  ")
			}
		}
		bw.WriteByte('\n')
	}

	line(header)
	rule := make([]string, len(widths))
	for i, n := range widths {
		rule[i] = strings.Repeat("-", n)
	}
	line(rule)
	for _, r := range rows {
		line(r)
	}
	return bw.Flush()
}
