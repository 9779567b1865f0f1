package analyzer

import (
	"github.com/Heart-Quake/ahref-consolidation/pkg/parser"
)

// URLGroup aggregates every keyword ranking for one destination URL.
// Keywords, Volumes and Positions are index-aligned and ordered by volume
// descending; the first entry is the top keyword. Groups are built once
// and never mutated afterwards.
type URLGroup struct {
	URL              string     `json:"url"`
	TopKeyword       string     `json:"top_keyword"`
	TopKeywordVolume int        `json:"top_keyword_volume"`
	AvgPosition      float64    `json:"avg_position"`
	KeywordCount     int        `json:"keyword_count"`
	TotalVolume      int        `json:"total_volume"`
	Keywords         []string   `json:"keywords"`
	Volumes          []*int     `json:"volumes"`
	Positions        []*float64 `json:"positions"`
}

// Summary holds the overall statistics shown alongside the grouped result.
// It is computed from the flat record set, not from the groups.
type Summary struct {
	KeywordCount int     `json:"keyword_count"`
	TotalVolume  int     `json:"total_volume"`
	AvgPosition  float64 `json:"avg_position"`
}

// URLAggregator groups normalized records by destination URL.
type URLAggregator interface {
	Aggregate(records []parser.KeywordRecord) ([]URLGroup, error)
	Summarize(records []parser.KeywordRecord) Summary
}
