package service

import (
	"context"

	"github.com/Heart-Quake/ahref-consolidation/pkg/analyzer"
)

// Report is the complete result of one analysis run: the overall
// statistics plus the ordered URL groups.
type Report struct {
	Summary analyzer.Summary    `json:"summary"`
	Groups  []analyzer.URLGroup `json:"groups"`
}

type AnalyzerService interface {
	Analyze(ctx context.Context, raw []byte) (*Report, error)
	ExportCSV(ctx context.Context, raw []byte) ([]byte, error)
}
