// Copyright 2025 Linh Pham
// SPDX-License-Identifier: Apache-2.0

package locations

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"github.com/questionlp/wwdtm-import-location-latlong/geocode"
)

// Options configures an import run.
type Options struct {
	// Resolve and log every row but don't persist any change
	DryRun bool

	// Resolve coordinate-less rows through the geocoder instead of
	// skipping them
	Geocode bool
}

// Metrics tracks statistics collected during an import run.
type Metrics struct {
	RowsRead      int // data rows read from the CSV
	RowsUpdated   int // rows written (or, in a dry run, that would be written)
	RowsSkipped   int // rows skipped by the skip-and-continue policy
	GeocodeHits   int // rows resolved through the geocoder
	GeocodeErrors int // rows the geocoder could not resolve
}

// Merge combines two Metrics objects.
func (m *Metrics) Merge(o *Metrics) *Metrics {
	m.RowsRead += o.RowsRead
	m.RowsUpdated += o.RowsUpdated
	m.RowsSkipped += o.RowsSkipped
	m.GeocodeHits += o.GeocodeHits
	m.GeocodeErrors += o.GeocodeErrors

	return m
}

// Importer drives a single CSV-to-database import run. Row-level problems
// (empty name, unresolvable coordinates, unmatched record) are logged and
// skipped; file and database failures abort the run.
type Importer struct {
	options  *Options
	repo     LocationRepository
	geocoder geocode.Geocoder // may be nil when Options.Geocode is unset
	Metrics  Metrics
}

// NewImporter creates an importer over the given repository. The geocoder
// is only consulted when Options.Geocode is set.
func NewImporter(options *Options, repo LocationRepository, geocoder geocode.Geocoder) *Importer {
	return &Importer{
		options:  options,
		repo:     repo,
		geocoder: geocoder,
	}
}

// Run imports every data row of the CSV file at path.
func (imp *Importer) Run(path string) error {
	rows, err := ReadFile(path)
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		log.Printf("No locations found in %s", path)

		return nil
	}

	var bar *progressbar.ProgressBar
	if isatty.IsTerminal(os.Stderr.Fd()) {
		bar = progressbar.NewOptions(len(rows),
			progressbar.OptionSetDescription("Importing "+filepath.Base(path)),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	for i := range rows {
		imp.Metrics.RowsRead++

		if err := imp.importRow(&rows[i]); err != nil {
			return err
		}

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	log.Printf(
		"Import metrics - %d rows read, %d updated, %d skipped, %d geocoded, %d geocoding errors",
		imp.Metrics.RowsRead,
		imp.Metrics.RowsUpdated,
		imp.Metrics.RowsSkipped,
		imp.Metrics.GeocodeHits,
		imp.Metrics.GeocodeErrors,
	)

	return nil
}

// skip logs a row-level warning and counts the row as skipped.
func (imp *Importer) skip(format string, args ...any) {
	log.Printf("WARN: skipping row: "+format, args...)
	imp.Metrics.RowsSkipped++
}

func (imp *Importer) importRow(row *Row) error {
	if row.Name == "" {
		imp.skip("empty location name")

		return nil
	}

	point := row.Point
	if point == nil {
		if !imp.options.Geocode || imp.geocoder == nil {
			imp.skip("%q: no coordinates in CSV", row.Name)

			return nil
		}

		result, err := imp.geocoder.Geocode(row.Name)
		if err != nil {
			imp.Metrics.GeocodeErrors++
			imp.skip("%q: geocoding failed: %v", row.Name, err)

			return nil
		}

		imp.Metrics.GeocodeHits++
		log.Printf(
			"Geocoded %q to %s via %s (%s confidence)",
			row.Name, result.Point, result.Provider, result.Confidence,
		)

		point = &result.Point
	}

	id := row.ID
	if id == 0 {
		var err error

		id, err = imp.repo.FindIDByName(row.Name)
		if errors.Is(err, ErrLocationNotFound) {
			imp.skip("%v", err)

			return nil
		} else if err != nil {
			return fmt.Errorf("matching %q: %w", row.Name, err)
		}
	}

	prev, err := imp.repo.GetCoordinates(id)
	if errors.Is(err, ErrLocationNotFound) {
		imp.skip("%v", err)

		return nil
	} else if err != nil {
		return err
	}

	if prev != nil && *prev != *point {
		log.Printf(
			"Location %d %q moves %.0f meters from its stored coordinates",
			id, row.Name, prev.HaversineDistance(point),
		)
	}

	if imp.options.DryRun {
		log.Printf("Dry run: would set location %d %q to %s", id, row.Name, point)
		imp.Metrics.RowsUpdated++

		return nil
	}

	affected, err := imp.repo.UpdateCoordinates(id, *point)
	if err != nil {
		return err
	}

	if affected == 0 {
		imp.skip("no location record with id %d", id)

		return nil
	}

	imp.Metrics.RowsUpdated++

	return nil
}
