// Copyright 2025 Linh Pham
// SPDX-License-Identifier: Apache-2.0

package locations

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/questionlp/wwdtm-import-location-latlong/spatial"
)

// ErrLocationNotFound is returned when no database record matches a
// location id or display name.
var ErrLocationNotFound = errors.New("location not found")

// LocationRepository defines the database operations used by the importer
// and exporter.
type LocationRepository interface {
	// FindIDByName returns the locationid whose display name matches name.
	// Returns ErrLocationNotFound when there is no match and an error when
	// the name is ambiguous.
	FindIDByName(name string) (int, error)

	// GetCoordinates returns the stored coordinates for a location, or nil
	// when latitude/longitude are unset. Returns ErrLocationNotFound when
	// the id does not exist.
	GetCoordinates(id int) (*spatial.Point, error)

	// UpdateCoordinates sets latitude/longitude for a location and returns
	// the number of matched rows.
	UpdateCoordinates(id int, p spatial.Point) (int64, error)

	// MissingCoordinates lists locations whose coordinates are unset,
	// ordered by locationid.
	MissingCoordinates() ([]Location, error)
}

type sqlLocationRepository struct {
	db *sql.DB
}

// NewLocationRepository creates a repository over a MySQL ww_locations
// table. The connection must be opened with CLIENT_FOUND_ROWS so that
// re-applying identical coordinates still reports a matched row.
func NewLocationRepository(db *sql.DB) LocationRepository {
	return &sqlLocationRepository{db: db}
}

// displayName mirrors how the Wait Wait Stats reports render a location.
const displayNameExpr = "TRIM(CONCAT_WS(', ', venue, city, state))"

func (r *sqlLocationRepository) FindIDByName(name string) (int, error) {
	rows, err := r.db.Query(
		"SELECT locationid FROM ww_locations WHERE "+displayNameExpr+" = ?",
		name,
	)
	if err != nil {
		return 0, fmt.Errorf("querying location by name: %w", err)
	}
	defer rows.Close()

	ids := make([]int, 0, 1)

	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return 0, fmt.Errorf("scanning locationid: %w", err)
		}

		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("iterating locations: %w", err)
	}

	switch len(ids) {
	case 0:
		return 0, fmt.Errorf("%w: %q", ErrLocationNotFound, name)
	case 1:
		return ids[0], nil
	default:
		return 0, fmt.Errorf("ambiguous location %q: matches %d records", name, len(ids))
	}
}

func (r *sqlLocationRepository) GetCoordinates(id int) (*spatial.Point, error) {
	var lat, lng sql.NullFloat64

	err := r.db.QueryRow(
		"SELECT latitude, longitude FROM ww_locations WHERE locationid = ?",
		id,
	).Scan(&lat, &lng)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", ErrLocationNotFound, id)
	} else if err != nil {
		return nil, fmt.Errorf("querying coordinates for location %d: %w", id, err)
	}

	if !lat.Valid || !lng.Valid {
		return nil, nil
	}

	return &spatial.Point{Lat: lat.Float64, Lng: lng.Float64}, nil
}

func (r *sqlLocationRepository) UpdateCoordinates(id int, p spatial.Point) (int64, error) {
	result, err := r.db.Exec(
		"UPDATE ww_locations SET latitude = ?, longitude = ? WHERE locationid = ?",
		p.Lat, p.Lng, id,
	)
	if err != nil {
		return 0, fmt.Errorf("updating coordinates for location %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading affected rows for location %d: %w", id, err)
	}

	return affected, nil
}

func (r *sqlLocationRepository) MissingCoordinates() ([]Location, error) {
	rows, err := r.db.Query(
		"SELECT locationid, " + displayNameExpr + " FROM ww_locations " +
			"WHERE latitude IS NULL OR longitude IS NULL ORDER BY locationid",
	)
	if err != nil {
		return nil, fmt.Errorf("querying locations without coordinates: %w", err)
	}
	defer rows.Close()

	var locs []Location

	for rows.Next() {
		var loc Location
		if err := rows.Scan(&loc.ID, &loc.Name); err != nil {
			return nil, fmt.Errorf("scanning location: %w", err)
		}

		locs = append(locs, loc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating locations: %w", err)
	}

	return locs, nil
}
