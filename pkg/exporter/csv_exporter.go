package exporter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/Heart-Quake/ahref-consolidation/pkg/analyzer"
	"github.com/Heart-Quake/ahref-consolidation/pkg/logger"
)

// DefaultFilename is the download name offered for the exported analysis.
const DefaultFilename = "analyse_seo_complete.csv"

// External display names applied on export, in the fixed column order.
var exportHeader = []string{
	"URL",
	"Top mot-clé",
	"Volume du top mot-clé",
	"Position moyenne",
	"Nb mots-clés",
	"Volume total",
	"Mots-clés",
	"Volumes",
	"Positions",
}

// CSVExporter serializes aggregated URL groups to delimited text. The
// export delimiter is a semicolon, distinct from the tab used on input;
// multi-value cells keep their embedded newlines and rely on csv quoting.
type CSVExporter struct {
	log       *logger.Logger
	delimiter rune
}

func NewCSVExporter() *CSVExporter {
	return &CSVExporter{
		log:       logger.GetLogger().WithField("component", "csv_exporter"),
		delimiter: ';',
	}
}

func (e *CSVExporter) SetDelimiter(delimiter rune) {
	if delimiter != 0 {
		e.delimiter = delimiter
	}
}

// Export writes the group list as delimited text, one row per group.
func (e *CSVExporter) Export(groups []analyzer.URLGroup) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	writer.Comma = e.delimiter

	if err := writer.Write(exportHeader); err != nil {
		return nil, fmt.Errorf("failed to write export header: %w", err)
	}

	for _, group := range groups {
		row := []string{
			group.URL,
			group.TopKeyword,
			strconv.Itoa(group.TopKeywordVolume),
			strconv.FormatFloat(group.AvgPosition, 'f', 1, 64),
			strconv.Itoa(group.KeywordCount),
			strconv.Itoa(group.TotalVolume),
			group.KeywordsColumn(),
			group.VolumesColumn(),
			group.PositionsColumn(),
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write export row for %s: %w", group.URL, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush export: %w", err)
	}

	e.log.WithField("groups", len(groups)).Debug("Exported analysis to CSV")
	return buf.Bytes(), nil
}
