package service

import (
	"context"

	"github.com/Heart-Quake/ahref-consolidation/internal/config"
	"github.com/Heart-Quake/ahref-consolidation/pkg/analyzer"
	"github.com/Heart-Quake/ahref-consolidation/pkg/exporter"
	"github.com/Heart-Quake/ahref-consolidation/pkg/logger"
	"github.com/Heart-Quake/ahref-consolidation/pkg/parser"
)

// analyzerService wires the normalizer, the aggregator and the exporter
// into one pipeline. Each call processes exactly one export file end to
// end in memory; a failure halts the run with no partial result.
type analyzerService struct {
	parser     *parser.TSVParser
	aggregator *analyzer.Aggregator
	exporter   *exporter.CSVExporter
	log        *logger.Logger
}

func NewAnalyzerService(cfg *config.Config) AnalyzerService {
	tsvParser := parser.NewTSVParser()
	csvExporter := exporter.NewCSVExporter()
	if cfg != nil {
		tsvParser.SetMaxRows(cfg.Analyzer.MaxRows)
		if runes := []rune(cfg.Export.Delimiter); len(runes) == 1 {
			csvExporter.SetDelimiter(runes[0])
		}
	}

	return &analyzerService{
		parser:     tsvParser,
		aggregator: analyzer.NewAggregator(),
		exporter:   csvExporter,
		log:        logger.GetLogger().WithField("component", "analyzer_service"),
	}
}

func (s *analyzerService) Analyze(ctx context.Context, raw []byte) (*Report, error) {
	records, err := s.parser.Parse(raw)
	if err != nil {
		return nil, err
	}

	groups, err := s.aggregator.Aggregate(records)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Summary: s.aggregator.Summarize(records),
		Groups:  groups,
	}

	s.log.WithFields(map[string]interface{}{
		"records": report.Summary.KeywordCount,
		"groups":  len(report.Groups),
	}).Info("Analysis completed")

	return report, nil
}

func (s *analyzerService) ExportCSV(ctx context.Context, raw []byte) ([]byte, error) {
	report, err := s.Analyze(ctx, raw)
	if err != nil {
		return nil, err
	}
	return s.exporter.Export(report.Groups)
}
