package tabular

import "strings"

// HeaderIndex maps lower-cased, trimmed column names to zero-based column
// positions, so rows can be read by logical name regardless of column order.
type HeaderIndex map[string]int

// NewHeaderIndex builds the index from a header row. The first occurrence of
// a duplicated name wins.
func NewHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if _, exists := idx[key]; exists {
			continue
		}
		idx[key] = i
	}

	return idx
}

// Cell returns the raw cell text for the named column. The second return is
// false when the column is absent from the header or the row is too short;
// a present column with an empty cell returns ("", true). Callers that care
// about required fields must treat those two cases differently.
func (idx HeaderIndex) Cell(row []string, name string) (string, bool) {
	pos, ok := idx[strings.ToLower(strings.TrimSpace(name))]
	if !ok || pos >= len(row) {
		return "", false
	}

	return row[pos], true
}

// Has reports whether the named column exists in the header.
func (idx HeaderIndex) Has(name string) bool {
	_, ok := idx[strings.ToLower(strings.TrimSpace(name))]
	return ok
}
