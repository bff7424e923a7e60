package data

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ryuk2git/tuitiontier/pkg/core"
)

// Dataset is a raw table: a header and one record per row.
type Dataset struct {
	Columns []string
	Rows    []core.Record
}

// missingTokens are cell values treated as absent, compared in lower case.
// The set matches the NA markers common spreadsheet and dataframe exports write.
var missingTokens = map[string]struct{}{
	"":         {},
	"na":       {},
	"n/a":      {},
	"#n/a":     {},
	"#n/a n/a": {},
	"#na":      {},
	"<na>":     {},
	"nan":      {},
	"-nan":     {},
	"-1.#ind":  {},
	"-1.#qnan": {},
	"1.#ind":   {},
	"1.#qnan":  {},
	"null":     {},
	"none":     {},
}

// IsMissingToken reports whether a trimmed cell denotes a missing value.
func IsMissingToken(cell string) bool {
	_, ok := missingTokens[strings.ToLower(cell)]
	return ok
}

// ReadCSVFile loads a CSV file with a header row.
func ReadCSVFile(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	ds, err := ReadCSV(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// ReadCSV reads a header row followed by data rows. Cells keep their raw text;
// missing tokens ("", "NA", "N/A", "NaN", "null", "None", ...) become nil. Rows with the wrong
// number of cells are an error.
func ReadCSV(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("csv: empty input")
	}
	if err != nil {
		return nil, fmt.Errorf("csv header: %w", err)
	}
	columns := make([]string, len(header))
	seen := make(map[string]struct{}, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := seen[h]; dup {
			return nil, fmt.Errorf("csv header: duplicate column %q", h)
		}
		seen[h] = struct{}{}
		columns[i] = h
	}

	ds := &Dataset{Columns: columns}
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: %w", err)
		}
		row := make(core.Record, len(columns))
		for i, cell := range rec {
			cell = strings.TrimSpace(cell)
			if IsMissingToken(cell) {
				row[columns[i]] = nil
				continue
			}
			row[columns[i]] = cell
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds, nil
}
