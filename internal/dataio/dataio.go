// Package dataio loads raw dataset row files into the loosely-typed rows the
// extractor consumes. Column/document order is preserved because the
// extractor's value-pick heuristic depends on it.
package dataio

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/foredeck/foredeck/schema"
)

// Dataset holds the four raw row collections a view build consumes.
// Any of them may be empty when the corresponding file is absent.
type Dataset struct {
	Historical []schema.RawRow
	Test       []schema.RawRow
	Forecast   []schema.RawRow
	Drivers    []schema.RawRow
}

// Base names looked up (with .csv or .json extension) inside a dataset dir.
const (
	historicalBase = "historical"
	testBase       = "test_predictions"
	forecastBase   = "forecast"
	driversBase    = "drivers"
)

// LoadDataset reads the known dataset files from dir. Missing files yield
// empty collections, matching the engine's best-effort input contract; only
// unreadable or malformed files error.
func LoadDataset(dir string) (*Dataset, error) {
	ds := &Dataset{}
	loaders := []struct {
		base string
		dst  *[]schema.RawRow
	}{
		{historicalBase, &ds.Historical},
		{testBase, &ds.Test},
		{forecastBase, &ds.Forecast},
		{driversBase, &ds.Drivers},
	}
	for _, l := range loaders {
		rows, err := loadOptional(dir, l.base)
		if err != nil {
			return nil, err
		}
		*l.dst = rows
	}
	return ds, nil
}

func loadOptional(dir, base string) ([]schema.RawRow, error) {
	for _, ext := range []string{".csv", ".json"} {
		path := filepath.Join(dir, base+ext)
		rows, err := LoadRowsFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return rows, nil
	}
	return nil, nil
}

// LoadRowsFile reads one row file, dispatching on extension.
func LoadRowsFile(path string) ([]schema.RawRow, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return loadCSVRows(path)
	case ".json":
		return loadJSONRows(path)
	default:
		return nil, fmt.Errorf("unsupported dataset file type: %s", path)
	}
}

func loadCSVRows(path string) ([]schema.RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // tolerate ragged rows

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header from %s: %w", path, err)
	}

	var rows []schema.RawRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row from %s: %w", path, err)
		}
		fields := make(map[string]any, len(header))
		order := make([]string, 0, len(header))
		for i, col := range header {
			if i >= len(record) {
				break
			}
			fields[col] = record[i]
			order = append(order, col)
		}
		rows = append(rows, schema.RawRow{Fields: fields, Order: order})
	}
	return rows, nil
}

func loadJSONRows(path string) ([]schema.RawRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("failed to parse JSON rows from %s: %w", path, err)
	}

	rows := make([]schema.RawRow, 0, len(raws))
	for _, raw := range raws {
		row, err := decodeOrderedObject(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse JSON row in %s: %w", path, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// decodeOrderedObject decodes one JSON object while recording its key order,
// which encoding/json maps do not preserve.
func decodeOrderedObject(raw json.RawMessage) (schema.RawRow, error) {
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return schema.RawRow{}, err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return schema.RawRow{}, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return schema.RawRow{}, fmt.Errorf("expected JSON object, got %v", tok)
	}

	var order []string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return schema.RawRow{}, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return schema.RawRow{}, fmt.Errorf("expected object key, got %v", keyTok)
		}
		order = append(order, key)

		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return schema.RawRow{}, err
		}
	}

	return schema.RawRow{Fields: fields, Order: order}, nil
}

// LoadStoriesFile reads a JSON array of story records, for callers that keep
// local story fixtures on disk.
func LoadStoriesFile(path string) ([]schema.StoryRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var stories []schema.StoryRecord
	if err := json.Unmarshal(data, &stories); err != nil {
		return nil, fmt.Errorf("failed to parse stories from %s: %w", path, err)
	}
	return stories, nil
}
