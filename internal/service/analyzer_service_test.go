package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Heart-Quake/ahref-consolidation/pkg/analyzer"
)

const sampleExport = `"Keyword"	"Volume"	"Current position"	"Current URL"	"Branded"	"Local"	"Informational"	"Commercial"	"Transactional"
"shoes"	"1,000"	"3"	"/a"	"false"	"false"	"true"	"false"	"false"
"sneakers"	"500"	"5"	"/a"	"false"	"false"	"true"	"false"	"false"
"boots"	"2000"	"1"	"/b"	"false"	"false"	"false"	"true"	"false"
`

func TestAnalyzerService_Analyze(t *testing.T) {
	svc := NewAnalyzerService(nil)

	report, err := svc.Analyze(context.Background(), []byte(sampleExport))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if report.Summary.KeywordCount != 3 {
		t.Errorf("Expected 3 keywords, got: %d", report.Summary.KeywordCount)
	}
	if report.Summary.TotalVolume != 3500 {
		t.Errorf("Expected total volume 3500, got: %d", report.Summary.TotalVolume)
	}
	if report.Summary.AvgPosition != 3.0 {
		t.Errorf("Expected avg position 3.0, got: %f", report.Summary.AvgPosition)
	}

	if len(report.Groups) != 2 {
		t.Fatalf("Expected 2 groups, got: %d", len(report.Groups))
	}
	if report.Groups[0].URL != "/a" || report.Groups[1].URL != "/b" {
		t.Errorf("Expected groups ordered /a, /b, got: %s, %s",
			report.Groups[0].URL, report.Groups[1].URL)
	}
}

func TestAnalyzerService_Analyze_NoRecords(t *testing.T) {
	svc := NewAnalyzerService(nil)

	headerOnly := strings.SplitN(sampleExport, "\n", 2)[0] + "\n"
	_, err := svc.Analyze(context.Background(), []byte(headerOnly))
	if !errors.Is(err, analyzer.ErrNoRecords) {
		t.Fatalf("Expected ErrNoRecords, got: %v", err)
	}
}

func TestAnalyzerService_ExportCSV(t *testing.T) {
	svc := NewAnalyzerService(nil)

	data, err := svc.ExportCSV(context.Background(), []byte(sampleExport))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	out := string(data)
	if !strings.HasPrefix(out, "URL;Top mot-clé;") {
		t.Errorf("Expected French export header, got: %s", strings.SplitN(out, "\n", 2)[0])
	}
	if !strings.Contains(out, "/a;shoes;1000;4.0;2;1500;") {
		t.Errorf("Expected /a row in export, got:\n%s", out)
	}
}
