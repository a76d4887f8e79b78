package catalog

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Column headers expected in the dataset export. Matching is
// case-insensitive and order-independent.
const (
	colSymptom       = "symptom"
	colQuestion      = "follow-up question"
	colAnswer        = "answer"
	colCondition     = "probable condition"
	colRemedies      = "remedies"
	colSuggestions   = "suggestions"
	colCommonTablets = "common tablets"
)

// Load reads the symptom dataset from a CSV file and builds the catalog.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("catalog %s has no data rows", path)
	}

	idx := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{colSymptom, colQuestion, colAnswer} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("catalog %s missing column %q", path, required)
		}
	}

	field := func(record []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, Row{
			Symptom:       field(record, colSymptom),
			Question:      field(record, colQuestion),
			Answer:        field(record, colAnswer),
			Condition:     field(record, colCondition),
			Remedies:      field(record, colRemedies),
			Suggestions:   field(record, colSuggestions),
			CommonTablets: field(record, colCommonTablets),
		})
	}
	return New(rows), nil
}
