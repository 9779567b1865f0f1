package exporter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/Heart-Quake/ahref-consolidation/pkg/analyzer"
)

var tableHeader = []string{
	"URL",
	"Top mot-clé",
	"Volume du top mot-clé",
	"Position moyenne",
	"Nb mots-clés",
	"Volume total",
}

// RenderSummary formats the overall statistics for terminal display.
func RenderSummary(summary analyzer.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Mots-clés analysés : %d\n", summary.KeywordCount)
	fmt.Fprintf(&b, "Volume total       : %d\n", summary.TotalVolume)
	fmt.Fprintf(&b, "Position moyenne   : %.1f\n", summary.AvgPosition)
	return b.String()
}

// RenderTable formats the scalar columns of the group list as an aligned
// text table. The multi-value columns contain embedded newlines and are
// left to the CSV export.
func RenderTable(groups []analyzer.URLGroup) string {
	rows := make([][]string, 0, len(groups)+1)
	rows = append(rows, tableHeader)
	for _, group := range groups {
		rows = append(rows, []string{
			group.URL,
			group.TopKeyword,
			strconv.Itoa(group.TopKeywordVolume),
			strconv.FormatFloat(group.AvgPosition, 'f', 1, 64),
			strconv.Itoa(group.KeywordCount),
			strconv.Itoa(group.TotalVolume),
		})
	}

	// Column widths follow the widest cell, display width not byte length.
	widths := make([]int, len(tableHeader))
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	for rowIdx, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = runewidth.FillRight(cell, widths[i])
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")

		if rowIdx == 0 {
			separators := make([]string, len(widths))
			for i, width := range widths {
				separators[i] = strings.Repeat("-", width)
			}
			b.WriteString("|-" + strings.Join(separators, "-|-") + "-|\n")
		}
	}
	return b.String()
}
