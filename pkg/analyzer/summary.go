package analyzer

import (
	"github.com/Heart-Quake/ahref-consolidation/pkg/parser"
)

// Summarize computes the overall statistics for a normalized record set:
// record count, total volume and mean position. Nil volumes and positions
// are skipped, matching the aggregation semantics.
func (a *Aggregator) Summarize(records []parser.KeywordRecord) Summary {
	summary := Summary{KeywordCount: len(records)}

	positionSum := 0.0
	positionCount := 0
	for _, record := range records {
		if record.Volume != nil {
			summary.TotalVolume += *record.Volume
		}
		if record.Position != nil {
			positionSum += *record.Position
			positionCount++
		}
	}
	if positionCount > 0 {
		summary.AvgPosition = round1(positionSum / float64(positionCount))
	}

	return summary
}
