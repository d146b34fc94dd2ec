package chart

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// LoadRecords reads records from a CSV file (header row names the fields)
// or a JSON file (array of flat objects). JSON numbers and booleans are
// stringified so downstream parsing is uniform.
func LoadRecords(path string) ([]Record, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return loadJSON(path)
	case ".csv":
		return loadCSV(path)
	default:
		return nil, fmt.Errorf("unsupported data format %q (want .csv or .json)", filepath.Ext(path))
	}
}

func loadCSV(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) < 1 {
		return []Record{}, nil
	}

	header := rows[0]
	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(Record, len(header))
		for i, name := range header {
			if i < len(row) {
				rec[name] = row[i]
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func loadJSON(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}

	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode json records: %w", err)
	}

	records := make([]Record, len(raw))
	for i, obj := range raw {
		rec := make(Record, len(obj))
		for k, v := range obj {
			rec[k] = stringify(v)
		}
		records[i] = rec
	}
	return records, nil
}

func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", x)
	}
}

// FieldKind is the inferred value kind of a field across a record set.
type FieldKind string

const (
	FieldNumeric FieldKind = "numeric"
	FieldString  FieldKind = "string"
	FieldEmpty   FieldKind = "empty"
)

// InferFields returns the sorted field names seen across records with
// their inferred kind. A field is numeric when every non-empty value
// parses as a number.
func InferFields(records []Record) ([]string, map[string]FieldKind) {
	kinds := make(map[string]FieldKind)
	for _, rec := range records {
		for name, val := range rec {
			cur, seen := kinds[name]
			if val == "" {
				if !seen {
					kinds[name] = FieldEmpty
				}
				continue
			}
			if _, err := strconv.ParseFloat(val, 64); err != nil {
				kinds[name] = FieldString
			} else if !seen || cur == FieldEmpty {
				kinds[name] = FieldNumeric
			}
		}
	}

	names := make([]string, 0, len(kinds))
	for name := range kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, kinds
}
