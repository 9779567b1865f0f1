package parser

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"

	"github.com/Heart-Quake/ahref-consolidation/pkg/logger"
)

// TSVParser normalizes tab-separated keyword exports. Field values in the
// source are fully double-quoted, header included; the parser selects
// columns by their quoted names and strips one quote layer from every cell.
type TSVParser struct {
	log     *logger.Logger
	maxRows int
}

func NewTSVParser() *TSVParser {
	return &TSVParser{
		log:     logger.GetLogger().WithField("component", "tsv_parser"),
		maxRows: 200000, // Limit to prevent memory issues
	}
}

func (p *TSVParser) SetMaxRows(maxRows int) {
	if maxRows > 0 {
		p.maxRows = maxRows
	}
}

// Parse decodes and normalizes a raw export file. The whole record set is
// built in memory; export files are bounded in size.
func (p *TSVParser) Parse(raw []byte) ([]KeywordRecord, error) {
	text, err := p.decode(raw)
	if err != nil {
		p.log.WithError(err).Error("Failed to decode export file")
		return nil, err
	}

	records, err := p.parseRows(text)
	if err != nil {
		return nil, err
	}

	p.log.WithField("count", len(records)).Debug("Normalized export file")
	return records, nil
}

// decode attempts the supported encodings in fixed priority order: UTF-16
// first (the export tool's default), then UTF-8. Both failing is fatal.
func (p *TSVParser) decode(raw []byte) (string, error) {
	if text, err := p.decodeUTF16(raw); err == nil {
		p.log.WithField("encoding", "utf-16").Debug("Decoded export file")
		return text, nil
	} else {
		p.log.WithError(err).Debug("UTF-16 decode failed, retrying as UTF-8")
	}

	if text, err := p.decodeUTF8(raw); err == nil {
		p.log.WithField("encoding", "utf-8").Debug("Decoded export file")
		return text, nil
	}

	return "", &EncodingError{Tried: []string{"utf-16", "utf-8"}}
}

func (p *TSVParser) decodeUTF16(raw []byte) (string, error) {
	if len(raw)%2 != 0 {
		return "", fmt.Errorf("odd byte length %d", len(raw))
	}

	hasBOM := len(raw) >= 2 &&
		(bytes.Equal(raw[:2], []byte{0xFF, 0xFE}) || bytes.Equal(raw[:2], []byte{0xFE, 0xFF}))
	if !hasBOM && !bytes.ContainsRune(raw, 0x00) {
		// Plain single-byte text; let the UTF-8 strategy handle it.
		return "", fmt.Errorf("no BOM and no UTF-16 byte pattern")
	}

	decoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	decoded, err := decoder.Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("utf-16 conversion failed: %w", err)
	}
	if !utf8.Valid(decoded) || bytes.ContainsRune(decoded, utf8.RuneError) {
		return "", fmt.Errorf("utf-16 decode produced invalid text")
	}
	return string(decoded), nil
}

func (p *TSVParser) decodeUTF8(raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("content is not valid UTF-8")
	}
	if bytes.ContainsRune(raw, 0x00) {
		return "", fmt.Errorf("content contains NUL bytes")
	}
	return strings.TrimPrefix(string(raw), "\uFEFF"), nil
}

// parseRows splits decoded text into the header and data rows. Input row
// order is preserved; no sorting happens at this stage.
func (p *TSVParser) parseRows(text string) ([]KeywordRecord, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	headerIdx := -1
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return []KeywordRecord{}, nil
	}

	columns, err := columnIndex(strings.Split(lines[headerIdx], "\t"))
	if err != nil {
		return nil, err
	}

	records := make([]KeywordRecord, 0, len(lines)-headerIdx-1)
	for i := headerIdx + 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}
		if len(records) >= p.maxRows {
			p.log.WithField("max_rows", p.maxRows).Warn("Reached maximum row limit")
			break
		}

		record, err := p.buildRecord(strings.Split(lines[i], "\t"), columns, i+1)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

func (p *TSVParser) buildRecord(cells []string, columns map[string]int, line int) (KeywordRecord, error) {
	cell := func(name string) (string, error) {
		idx := columns[name]
		if idx >= len(cells) {
			return "", &RowError{Line: line, Reason: fmt.Sprintf("expected at least %d columns, got %d", idx+1, len(cells))}
		}
		return unquote(cells[idx]), nil
	}

	var record KeywordRecord
	fields := []struct {
		name string
		dst  *string
	}{
		{colKeyword, &record.Keyword},
		{colURL, &record.URL},
		{colBranded, &record.Branded},
		{colLocal, &record.Local},
		{colInformational, &record.Informational},
		{colCommercial, &record.Commercial},
		{colTransactional, &record.Transactional},
	}
	for _, f := range fields {
		value, err := cell(f.name)
		if err != nil {
			return KeywordRecord{}, err
		}
		*f.dst = value
	}

	// Every record must carry a keyword and a destination URL; rows that
	// do not are a hard parse error, never silently dropped.
	if record.Keyword == "" {
		return KeywordRecord{}, &RowError{Line: line, Reason: "empty keyword"}
	}
	if record.URL == "" {
		return KeywordRecord{}, &RowError{Line: line, Reason: "empty url"}
	}

	rawVolume, err := cell(colVolume)
	if err != nil {
		return KeywordRecord{}, err
	}
	record.Volume = parseVolume(rawVolume)

	rawPosition, err := cell(colPosition)
	if err != nil {
		return KeywordRecord{}, err
	}
	record.Position = parsePosition(rawPosition)

	return record, nil
}

// unquote strips exactly one layer of surrounding double quotes.
func unquote(value string) string {
	if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
		return value[1 : len(value)-1]
	}
	return value
}

// parseVolume coerces a volume cell to an integer. Thousands-separator
// commas are stripped first; unparseable values become nil, not zero.
func parseVolume(value string) *int {
	cleaned := strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	volume, err := strconv.Atoi(cleaned)
	if err != nil {
		return nil
	}
	return &volume
}

// parsePosition coerces a rank position cell; unparseable values become nil.
func parsePosition(value string) *float64 {
	position, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return nil
	}
	return &position
}
