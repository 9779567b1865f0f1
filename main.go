package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/Heart-Quake/ahref-consolidation/pkg/analyzer"
	"github.com/Heart-Quake/ahref-consolidation/pkg/exporter"
	"github.com/Heart-Quake/ahref-consolidation/pkg/logger"
	"github.com/Heart-Quake/ahref-consolidation/pkg/parser"
)

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBoolOrDefault returns environment variable as bool or default
func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func main() {
	// Environment variable defaults (CI friendly)
	defaultInput := getEnvOrDefault("EXPORT_FILE", "")
	defaultDebug := getEnvBoolOrDefault("DEBUG", false)

	// Command line flags (override environment variables)
	var (
		input  = flag.String("input", defaultInput, "Keyword export file to analyze (env: EXPORT_FILE)")
		output = flag.String("output", "", "Write the analysis as ;-delimited CSV to this path")
		format = flag.String("format", "table", "Console output format: table or csv")
		debug  = flag.Bool("debug", defaultDebug, "Enable debug logging (env: DEBUG)")
		help   = flag.Bool("help", false, "Show help message")
	)
	flag.Parse()

	if *help || *input == "" {
		fmt.Println("Usage: ahref-consolidation -input <export.csv> [-output <analysis.csv>] [-format table|csv]")
		fmt.Println()
		flag.PrintDefaults()
		if *help {
			os.Exit(0)
		}
		os.Exit(2)
	}

	level := "warn"
	if *debug {
		level = "debug"
	}
	logger.SetLogger(logger.New(logger.Config{Level: level, Format: "console"}))

	if err := run(*input, *output, *format); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(input, output, format string) error {
	raw, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", input, err)
	}

	records, err := parser.NewTSVParser().Parse(raw)
	if err != nil {
		return err
	}

	aggregator := analyzer.NewAggregator()
	groups, err := aggregator.Aggregate(records)
	if err != nil {
		return err
	}
	summary := aggregator.Summarize(records)

	fmt.Print(exporter.RenderSummary(summary))
	fmt.Println()

	switch format {
	case "table":
		fmt.Print(exporter.RenderTable(groups))
	case "csv":
		data, err := exporter.NewCSVExporter().Export(groups)
		if err != nil {
			return err
		}
		os.Stdout.Write(data)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if output != "" {
		data, err := exporter.NewCSVExporter().Export(groups)
		if err != nil {
			return err
		}
		if err := os.WriteFile(output, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", output, err)
		}
		fmt.Printf("\nAnalyse exportée vers %s\n", output)
	}

	return nil
}
