package seed

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// dateLayout is the only accepted format for the date_x column.
const dateLayout = "2006-01-02"

// placeholder substitutes missing values in categorical columns.
const placeholder = "Unknown"

var datasetColumns = []string{
	"names", "date_x", "score", "genre", "overview", "crew",
	"orig_lang", "status", "budget_x", "revenue", "country",
}

// RawRow is one record of the movies CSV before normalization, all fields
// as they appear in the file.
type RawRow struct {
	Name     string
	Date     string
	Score    string
	Genre    string
	Overview string
	Crew     string
	OrigLang string
	Status   string
	Budget   string
	Revenue  string
	Country  string
}

// Row is one normalized dataset record. Genre, Crew and OrigLang remain
// comma-separated strings; token extraction happens downstream.
type Row struct {
	Name     string
	Date     time.Time
	Score    float64
	Genre    string
	Overview string
	Crew     string
	OrigLang string
	Status   string
	Budget   float64
	Revenue  float64
	Country  string
}

// Dataset holds the normalized movie records in file order.
type Dataset struct {
	Rows []Row
}

// LoadCSV reads the movies dataset and maps its columns by header name.
func LoadCSV(path string) ([]RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse dataset csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset %s is empty", path)
	}

	index := make(map[string]int, len(records[0]))
	for i, col := range records[0] {
		index[strings.TrimSpace(col)] = i
	}
	for _, col := range datasetColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("dataset missing column %q", col)
		}
	}

	field := func(record []string, col string) string {
		i := index[col]
		if i >= len(record) {
			return ""
		}
		return record[i]
	}

	rows := make([]RawRow, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, RawRow{
			Name:     field(record, "names"),
			Date:     field(record, "date_x"),
			Score:    field(record, "score"),
			Genre:    field(record, "genre"),
			Overview: field(record, "overview"),
			Crew:     field(record, "crew"),
			OrigLang: field(record, "orig_lang"),
			Status:   field(record, "status"),
			Budget:   field(record, "budget_x"),
			Revenue:  field(record, "revenue"),
			Country:  field(record, "country"),
		})
	}
	return rows, nil
}

// Normalize cleans the raw records: duplicate (name, date) rows collapse to
// the first occurrence, missing categorical values become the placeholder,
// multi-valued columns are canonicalized, and dates and numbers are parsed.
// A malformed date or number aborts the run.
func Normalize(raws []RawRow) (*Dataset, error) {
	seen := make(map[string]struct{}, len(raws))
	rows := make([]Row, 0, len(raws))

	for _, raw := range raws {
		rawDate := strings.TrimSpace(raw.Date)
		key := raw.Name + "\x00" + rawDate
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		date, err := time.Parse(dateLayout, rawDate)
		if err != nil {
			return nil, fmt.Errorf("row %q: parse date %q: %w", raw.Name, rawDate, err)
		}

		score, err := parseNumeric(raw.Score)
		if err != nil {
			return nil, fmt.Errorf("row %q: parse score: %w", raw.Name, err)
		}
		budget, err := parseNumeric(raw.Budget)
		if err != nil {
			return nil, fmt.Errorf("row %q: parse budget: %w", raw.Name, err)
		}
		revenue, err := parseNumeric(raw.Revenue)
		if err != nil {
			return nil, fmt.Errorf("row %q: parse revenue: %w", raw.Name, err)
		}

		crew := orPlaceholder(stripWhitespace(raw.Crew))
		if crew != placeholder {
			crew = canonicalizeList(crew)
		}

		rows = append(rows, Row{
			Name:     raw.Name,
			Date:     date,
			Score:    score,
			Genre:    orPlaceholder(strings.ReplaceAll(raw.Genre, "\u00a0", "")),
			Overview: raw.Overview,
			Crew:     crew,
			OrigLang: orPlaceholder(stripWhitespace(raw.OrigLang)),
			Status:   orPlaceholder(strings.TrimSpace(raw.Status)),
			Budget:   budget,
			Revenue:  revenue,
			Country:  orPlaceholder(strings.TrimSpace(raw.Country)),
		})
	}

	return &Dataset{Rows: rows}, nil
}

// WriteCSV persists the normalized dataset back to path for inspection.
func (d *Dataset) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dataset: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(datasetColumns); err != nil {
		return fmt.Errorf("write dataset header: %w", err)
	}
	for _, row := range d.Rows {
		record := []string{
			row.Name,
			row.Date.Format(dateLayout),
			formatNumeric(row.Score),
			row.Genre,
			row.Overview,
			row.Crew,
			row.OrigLang,
			row.Status,
			formatNumeric(row.Budget),
			formatNumeric(row.Revenue),
			row.Country,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write dataset row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush dataset: %w", err)
	}
	return nil
}

// Countries returns the distinct country codes, sorted.
func (d *Dataset) Countries() []string {
	set := make(map[string]struct{}, len(d.Rows))
	for _, row := range d.Rows {
		set[row.Country] = struct{}{}
	}
	return sortedKeys(set)
}

// Genres returns the distinct genre tokens across all rows, sorted.
func (d *Dataset) Genres() []string {
	return d.tokenSet(func(r Row) string { return r.Genre })
}

// Actors returns the distinct crew tokens across all rows, sorted.
func (d *Dataset) Actors() []string {
	return d.tokenSet(func(r Row) string { return r.Crew })
}

// Languages returns the distinct original-language tokens, sorted.
func (d *Dataset) Languages() []string {
	return d.tokenSet(func(r Row) string { return r.OrigLang })
}

func (d *Dataset) tokenSet(field func(Row) string) []string {
	set := make(map[string]struct{})
	for _, row := range d.Rows {
		for _, token := range splitTokens(field(row)) {
			set[token] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// splitTokens splits a comma-separated value into trimmed, non-empty tokens.
func splitTokens(value string) []string {
	parts := strings.Split(value, ",")
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		if token := strings.TrimSpace(part); token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// canonicalizeList rewrites a comma-separated value as the sorted set of its
// tokens so equal sets compare equal regardless of input order.
func canonicalizeList(value string) string {
	tokens := splitTokens(value)
	set := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		set[token] = struct{}{}
	}
	return strings.Join(sortedKeys(set), ",")
}

func stripWhitespace(value string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, value)
}

func orPlaceholder(value string) string {
	if value == "" {
		return placeholder
	}
	return value
}

func parseNumeric(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

func formatNumeric(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
