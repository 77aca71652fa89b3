// Copyright 2025 Linh Pham
// SPDX-License-Identifier: Apache-2.0

package locations

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/questionlp/wwdtm-import-location-latlong/spatial"
)

// Expected CSV header columns, in order.
var csvHeader = []string{"locationid", "location", "latitude", "longitude"}

// Errors returned while validating the CSV structure.
var (
	ErrMissingHeader = errors.New("missing header line")
	ErrBadHeader     = errors.New("unexpected header")
)

// ReadFile parses the import CSV at path. The file must start with the
// locationid,location,latitude,longitude header. Structural problems
// (missing header, wrong column count, unparsable numbers) fail the whole
// read; rows with an empty location name are returned as-is and left to the
// importer's skip policy.
func ReadFile(path string) ([]Row, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("opening CSV file: %w", err)
	}
	defer f.Close()

	rows, err := readRows(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return rows, nil
}

func readRows(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrMissingHeader
	} else if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	if err := validateHeader(header); err != nil {
		return nil, err
	}

	var rows []Row

	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			// csv.Reader reports wrong column counts here
			return nil, fmt.Errorf("reading record: %w", err)
		}

		row, err := parseRow(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func validateHeader(header []string) error {
	if len(header) != len(csvHeader) {
		return fmt.Errorf("%w: got %d columns, want %d", ErrBadHeader, len(header), len(csvHeader))
	}

	for i, name := range header {
		if !strings.EqualFold(strings.TrimSpace(name), csvHeader[i]) {
			return fmt.Errorf("%w: column %d is %q, want %q", ErrBadHeader, i+1, name, csvHeader[i])
		}
	}

	return nil
}

func parseRow(record []string) (Row, error) {
	row := Row{Name: strings.TrimSpace(record[1])}

	if id := strings.TrimSpace(record[0]); id != "" {
		n, err := strconv.Atoi(id)
		if err != nil {
			return Row{}, fmt.Errorf("invalid locationid %q: %w", id, err)
		}

		row.ID = n
	}

	lat := strings.TrimSpace(record[2])
	lng := strings.TrimSpace(record[3])

	// A row with either coordinate missing carries no usable point; the
	// original import script skipped such rows, the importer may geocode
	// them instead.
	if lat == "" || lng == "" {
		return row, nil
	}

	latVal, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return Row{}, fmt.Errorf("invalid latitude %q: %w", lat, err)
	}

	lngVal, err := strconv.ParseFloat(lng, 64)
	if err != nil {
		return Row{}, fmt.Errorf("invalid longitude %q: %w", lng, err)
	}

	point := spatial.Point{Lat: latVal, Lng: lngVal}
	if err := point.Validate(); err != nil {
		return Row{}, err
	}

	row.Point = &point

	return row, nil
}

// WriteFile writes locations in the import CSV format. The coordinate
// columns are left empty for locations without a stored point, which makes
// the output directly usable as input for an import run.
func WriteFile(path string, locs []Location) (err error) {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("creating CSV file: %w", err)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("closing CSV file: %w", cerr))
		}
	}()

	w := csv.NewWriter(f)

	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, loc := range locs {
		record := []string{strconv.Itoa(loc.ID), loc.Name, "", ""}
		if loc.Point != nil {
			record[2] = strconv.FormatFloat(loc.Point.Lat, 'f', 6, 64)
			record[3] = strconv.FormatFloat(loc.Point.Lng, 'f', 6, 64)
		}

		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing record for location %d: %w", loc.ID, err)
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing CSV file: %w", err)
	}

	return nil
}
