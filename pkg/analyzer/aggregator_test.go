package analyzer

import (
	"errors"
	"reflect"
	"testing"

	"github.com/Heart-Quake/ahref-consolidation/pkg/parser"
)

func record(keyword string, volume *int, position *float64, url string) parser.KeywordRecord {
	return parser.KeywordRecord{
		Keyword:  keyword,
		Volume:   volume,
		Position: position,
		URL:      url,
	}
}

func intPtr(v int) *int {
	return &v
}

func floatPtr(v float64) *float64 {
	return &v
}

func TestAggregator_Aggregate_TwoGroups(t *testing.T) {
	aggregator := NewAggregator()

	records := []parser.KeywordRecord{
		record("shoes", intPtr(1000), floatPtr(3), "/a"),
		record("sneakers", intPtr(500), floatPtr(5), "/a"),
		record("boots", intPtr(2000), floatPtr(1), "/b"),
	}

	groups, err := aggregator.Aggregate(records)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("Expected 2 groups, got: %d", len(groups))
	}

	// Final ordering is top keyword volume ascending: /a (1000) before /b (2000).
	a, b := groups[0], groups[1]
	if a.URL != "/a" || b.URL != "/b" {
		t.Fatalf("Expected order /a, /b, got: %s, %s", a.URL, b.URL)
	}

	if a.TopKeyword != "shoes" || a.TopKeywordVolume != 1000 {
		t.Errorf("Expected /a top keyword shoes@1000, got: %s@%d", a.TopKeyword, a.TopKeywordVolume)
	}
	if a.KeywordCount != 2 {
		t.Errorf("Expected /a keyword count 2, got: %d", a.KeywordCount)
	}
	if a.TotalVolume != 1500 {
		t.Errorf("Expected /a total volume 1500, got: %d", a.TotalVolume)
	}
	if a.AvgPosition != 4.0 {
		t.Errorf("Expected /a avg position 4.0, got: %f", a.AvgPosition)
	}

	if b.TopKeyword != "boots" || b.TopKeywordVolume != 2000 {
		t.Errorf("Expected /b top keyword boots@2000, got: %s@%d", b.TopKeyword, b.TopKeywordVolume)
	}
	if b.KeywordCount != 1 || b.TotalVolume != 2000 || b.AvgPosition != 1.0 {
		t.Errorf("Unexpected /b metrics: %+v", b)
	}
}

func TestAggregator_Aggregate_EmptyInput(t *testing.T) {
	aggregator := NewAggregator()

	_, err := aggregator.Aggregate(nil)
	if !errors.Is(err, ErrNoRecords) {
		t.Fatalf("Expected ErrNoRecords, got: %v", err)
	}
}

func TestAggregator_Aggregate_EveryRecordLandsInOneGroup(t *testing.T) {
	aggregator := NewAggregator()

	records := []parser.KeywordRecord{
		record("a", intPtr(10), floatPtr(1), "/x"),
		record("b", intPtr(20), floatPtr(2), "/y"),
		record("c", nil, floatPtr(3), "/x"),
		record("d", intPtr(5), nil, "/z"),
		record("e", intPtr(7), floatPtr(4), "/y"),
	}

	groups, err := aggregator.Aggregate(records)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	total := 0
	for _, group := range groups {
		total += group.KeywordCount
		if len(group.Keywords) != group.KeywordCount ||
			len(group.Volumes) != group.KeywordCount ||
			len(group.Positions) != group.KeywordCount {
			t.Errorf("Group %s sequences not index-aligned: %+v", group.URL, group)
		}
	}
	if total != len(records) {
		t.Errorf("Expected %d records across groups, got: %d", len(records), total)
	}
}

func TestAggregator_Aggregate_GroupOrderNonDecreasing(t *testing.T) {
	aggregator := NewAggregator()

	records := []parser.KeywordRecord{
		record("k1", intPtr(300), floatPtr(1), "/c"),
		record("k2", intPtr(100), floatPtr(1), "/a"),
		record("k3", intPtr(200), floatPtr(1), "/b"),
		record("k4", intPtr(100), floatPtr(1), "/d"),
	}

	groups, err := aggregator.Aggregate(records)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	for i := 1; i < len(groups); i++ {
		if groups[i].TopKeywordVolume < groups[i-1].TopKeywordVolume {
			t.Errorf("Group order decreasing at %d: %d < %d",
				i, groups[i].TopKeywordVolume, groups[i-1].TopKeywordVolume)
		}
	}
}

func TestAggregator_Aggregate_NilVolumesSortLast(t *testing.T) {
	aggregator := NewAggregator()

	records := []parser.KeywordRecord{
		record("unknown", nil, floatPtr(2), "/p"),
		record("known", intPtr(50), floatPtr(4), "/p"),
	}

	groups, err := aggregator.Aggregate(records)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	group := groups[0]
	if group.TopKeyword != "known" {
		t.Errorf("Expected top keyword with parsed volume first, got: %s", group.TopKeyword)
	}
	if group.Keywords[1] != "unknown" {
		t.Errorf("Expected nil-volume keyword last, got: %v", group.Keywords)
	}
	// Nil volume stays out of the sum but the keyword still counts.
	if group.TotalVolume != 50 {
		t.Errorf("Expected total volume 50, got: %d", group.TotalVolume)
	}
	if group.KeywordCount != 2 {
		t.Errorf("Expected keyword count 2, got: %d", group.KeywordCount)
	}
}

func TestAggregator_Aggregate_StableTieBreak(t *testing.T) {
	aggregator := NewAggregator()

	records := []parser.KeywordRecord{
		record("first", intPtr(100), floatPtr(1), "/t"),
		record("second", intPtr(100), floatPtr(2), "/t"),
		record("third", intPtr(100), floatPtr(3), "/t"),
	}

	groups, err := aggregator.Aggregate(records)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	expected := []string{"first", "second", "third"}
	if !reflect.DeepEqual(groups[0].Keywords, expected) {
		t.Errorf("Expected input order preserved on equal volumes, got: %v", groups[0].Keywords)
	}
}

func TestAggregator_Aggregate_Idempotent(t *testing.T) {
	aggregator := NewAggregator()

	records := []parser.KeywordRecord{
		record("a", intPtr(10), floatPtr(1.5), "/x"),
		record("b", nil, nil, "/y"),
		record("c", intPtr(30), floatPtr(2), "/x"),
	}

	first, err := aggregator.Aggregate(records)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	second, err := aggregator.Aggregate(records)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("Expected identical output for identical input")
	}
}

func TestAggregator_Aggregate_AvgPositionRounding(t *testing.T) {
	aggregator := NewAggregator()

	records := []parser.KeywordRecord{
		record("a", intPtr(10), floatPtr(1), "/r"),
		record("b", intPtr(9), floatPtr(2), "/r"),
		record("c", intPtr(8), floatPtr(2), "/r"),
	}

	groups, err := aggregator.Aggregate(records)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	// (1+2+2)/3 = 1.666... rounds to 1.7
	if groups[0].AvgPosition != 1.7 {
		t.Errorf("Expected avg position 1.7, got: %f", groups[0].AvgPosition)
	}
}

func TestAggregator_Aggregate_AllNilMetrics(t *testing.T) {
	aggregator := NewAggregator()

	records := []parser.KeywordRecord{
		record("only", nil, nil, "/n"),
	}

	groups, err := aggregator.Aggregate(records)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	group := groups[0]
	if group.TopKeywordVolume != 0 || group.TotalVolume != 0 || group.AvgPosition != 0 {
		t.Errorf("Expected zeroed metrics for all-nil group, got: %+v", group)
	}
	if group.TopKeyword != "only" || group.KeywordCount != 1 {
		t.Errorf("Expected keyword still counted, got: %+v", group)
	}
}

func TestURLGroup_Columns(t *testing.T) {
	group := URLGroup{
		Keywords:  []string{"un", "deux", "trois"},
		Volumes:   []*int{intPtr(100), nil, intPtr(10)},
		Positions: []*float64{floatPtr(1), floatPtr(2.5), nil},
	}

	if got := group.KeywordsColumn(); got != "un\ndeux\ntrois" {
		t.Errorf("Unexpected keywords column: %q", got)
	}
	if got := group.VolumesColumn(); got != "100\n\n10" {
		t.Errorf("Unexpected volumes column: %q", got)
	}
	if got := group.PositionsColumn(); got != "1\n2.5\n" {
		t.Errorf("Unexpected positions column: %q", got)
	}
}
