package analyzer

import (
	"errors"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/Heart-Quake/ahref-consolidation/pkg/logger"
	"github.com/Heart-Quake/ahref-consolidation/pkg/parser"
)

// ErrNoRecords is returned when aggregation is asked to process an empty
// record set.
var ErrNoRecords = errors.New("no records to aggregate")

// Aggregator groups keyword records by destination URL and derives the
// per-group metrics. It is a pure function of its input: no state is kept
// between runs.
type Aggregator struct {
	log *logger.Logger
}

func NewAggregator() *Aggregator {
	return &Aggregator{
		log: logger.GetLogger().WithField("component", "aggregator"),
	}
}

// Aggregate builds one URLGroup per distinct destination URL.
//
// Records are first stably sorted by volume descending (nil volumes last,
// ties keep input order), then partitioned by exact URL string equality so
// each group's sequences inherit that ordering and its first entry is the
// top keyword. The final group list is stably sorted by top keyword volume
// ascending, so the lowest-value URLs surface first.
func (a *Aggregator) Aggregate(records []parser.KeywordRecord) ([]URLGroup, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	sorted := make([]parser.KeywordRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		vi, vj := sorted[i].Volume, sorted[j].Volume
		if vi == nil {
			return false
		}
		if vj == nil {
			return true
		}
		return *vi > *vj
	})

	groupsByURL := make(map[string]*URLGroup)
	order := make([]string, 0)
	for _, record := range sorted {
		group, ok := groupsByURL[record.URL]
		if !ok {
			group = &URLGroup{URL: record.URL, TopKeyword: record.Keyword}
			if record.Volume != nil {
				group.TopKeywordVolume = *record.Volume
			}
			groupsByURL[record.URL] = group
			order = append(order, record.URL)
		}
		group.Keywords = append(group.Keywords, record.Keyword)
		group.Volumes = append(group.Volumes, record.Volume)
		group.Positions = append(group.Positions, record.Position)
	}

	groups := make([]URLGroup, 0, len(order))
	for _, url := range order {
		group := groupsByURL[url]
		group.KeywordCount = len(group.Keywords)
		group.TotalVolume = sumVolumes(group.Volumes)
		group.AvgPosition = meanPositions(group.Positions)
		groups = append(groups, *group)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].TopKeywordVolume < groups[j].TopKeywordVolume
	})

	a.log.WithFields(map[string]interface{}{
		"records": len(records),
		"groups":  len(groups),
	}).Debug("Aggregated keyword records")

	return groups, nil
}

// KeywordsColumn returns the group's keywords as newline-joined text, one
// value per line in volume-descending order.
func (g URLGroup) KeywordsColumn() string {
	return strings.Join(g.Keywords, "\n")
}

// VolumesColumn returns the group's volumes as newline-joined text,
// index-aligned with KeywordsColumn. Nil volumes render as empty lines.
func (g URLGroup) VolumesColumn() string {
	lines := make([]string, len(g.Volumes))
	for i, volume := range g.Volumes {
		if volume != nil {
			lines[i] = strconv.Itoa(*volume)
		}
	}
	return strings.Join(lines, "\n")
}

// PositionsColumn returns the group's rank positions as newline-joined
// text, index-aligned with KeywordsColumn. Nil positions render as empty
// lines.
func (g URLGroup) PositionsColumn() string {
	lines := make([]string, len(g.Positions))
	for i, position := range g.Positions {
		if position != nil {
			lines[i] = strconv.FormatFloat(*position, 'f', -1, 64)
		}
	}
	return strings.Join(lines, "\n")
}

// sumVolumes adds the non-nil volumes. Unparseable source values are
// excluded from the sum, never coerced to zero.
func sumVolumes(volumes []*int) int {
	total := 0
	for _, volume := range volumes {
		if volume != nil {
			total += *volume
		}
	}
	return total
}

// meanPositions averages the non-nil positions, rounded to one decimal
// place. All-nil input yields 0.
func meanPositions(positions []*float64) float64 {
	sum := 0.0
	count := 0
	for _, position := range positions {
		if position != nil {
			sum += *position
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return round1(sum / float64(count))
}

func round1(value float64) float64 {
	return math.Round(value*10) / 10
}
