package parser

// Source columns are selected by their quoted header names, exactly as the
// export tool writes them. Selection is by name; column order in the file
// is irrelevant.
const (
	colKeyword       = `"Keyword"`
	colVolume        = `"Volume"`
	colPosition      = `"Current position"`
	colURL           = `"Current URL"`
	colBranded       = `"Branded"`
	colLocal         = `"Local"`
	colInformational = `"Informational"`
	colCommercial    = `"Commercial"`
	colTransactional = `"Transactional"`
)

func requiredColumns() []string {
	return []string{
		colKeyword,
		colVolume,
		colPosition,
		colURL,
		colBranded,
		colLocal,
		colInformational,
		colCommercial,
		colTransactional,
	}
}

// columnIndex maps each required quoted header name to its position in the
// header row. Missing names are reported together in a single FormatError.
func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		if _, exists := index[name]; !exists {
			index[name] = i
		}
	}

	var missing []string
	for _, name := range requiredColumns() {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &FormatError{Missing: missing, Found: header}
	}
	return index, nil
}
