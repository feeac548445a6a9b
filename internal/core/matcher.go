package core

import (
	"strings"

	"github.com/ysamfaidi-del/boublenza-command-center-sub001/internal/excel"
)

// Match confidence levels. Exact means the normalized header equals a
// synonym verbatim; partial means one contains the other.
const (
	ConfidenceExact   = 1.0
	ConfidencePartial = 0.7
)

// sampleRows is how many leading data rows are scanned for sample values.
const sampleRows = 5

// maxSamples caps the sample values attached to one column mapping.
const maxSamples = 5

// NormalizeHeader lowercases a header, collapses the separator characters
// '_', '-', '.' and whitespace runs to single spaces, and trims.
func NormalizeHeader(h string) string {
	h = strings.ToLower(h)
	h = strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(h)
	return strings.Join(strings.Fields(h), " ")
}

// Matcher resolves spreadsheet headers to canonical fields using an
// immutable synonym table fixed at construction.
type Matcher struct {
	synonyms []FieldSynonyms
}

// NewMatcher builds a matcher over the given synonym table. Pass
// DefaultSynonyms() unless a test needs a reduced table.
func NewMatcher(synonyms []FieldSynonyms) *Matcher {
	return &Matcher{synonyms: synonyms}
}

// MatchHeaders maps every header of a table to a canonical field with a
// confidence score, attaching up to five non-empty sample values from the
// first five data rows for human review. Headers are matched
// independently; two columns may resolve to the same field.
func (m *Matcher) MatchHeaders(table *excel.RawTable) []ColumnMapping {
	mappings := make([]ColumnMapping, 0, len(table.Headers))
	for _, h := range table.Headers {
		field, confidence := m.matchField(NormalizeHeader(h))
		mappings = append(mappings, ColumnMapping{
			ExcelColumn:    h,
			CanonicalField: field,
			SampleValues:   collectSamples(table.Rows, h),
			Confidence:     confidence,
		})
	}
	return mappings
}

// matchField runs the two-pass match: a full exact pass over the table in
// order, then a partial pass. The first field whose synonym matches wins;
// the table order is part of the contract (see DefaultSynonyms).
func (m *Matcher) matchField(norm string) (string, float64) {
	if norm == "" {
		return "", 0
	}

	for _, fs := range m.synonyms {
		for _, syn := range fs.Synonyms {
			if norm == syn {
				return fs.Field, ConfidenceExact
			}
		}
	}

	for _, fs := range m.synonyms {
		for _, syn := range fs.Synonyms {
			if strings.Contains(norm, syn) || strings.Contains(syn, norm) {
				return fs.Field, ConfidencePartial
			}
		}
	}

	return "", 0
}

func collectSamples(rows []excel.Row, header string) []string {
	samples := make([]string, 0, maxSamples)
	for i := 0; i < len(rows) && i < sampleRows; i++ {
		v := CleanCell(rows[i][header])
		if v == "" {
			continue
		}
		samples = append(samples, v)
		if len(samples) == maxSamples {
			break
		}
	}
	return samples
}
