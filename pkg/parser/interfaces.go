package parser

// KeywordRecord is one normalized row of a keyword export file.
// Volume and Position are nil when the source value could not be parsed;
// aggregation must skip nil values rather than treat them as zero.
type KeywordRecord struct {
	Keyword  string   `json:"keyword"`
	Volume   *int     `json:"volume"`
	Position *float64 `json:"position"`
	URL      string   `json:"url"`

	// Category flags, passed through untouched for downstream use.
	Branded       string `json:"branded"`
	Local         string `json:"local"`
	Informational string `json:"informational"`
	Commercial    string `json:"commercial"`
	Transactional string `json:"transactional"`
}

// RecordParser normalizes a raw export file into typed keyword records.
type RecordParser interface {
	Parse(raw []byte) ([]KeywordRecord, error)
}
