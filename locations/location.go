// Copyright 2025 Linh Pham
// SPDX-License-Identifier: Apache-2.0

package locations

import (
	"github.com/questionlp/wwdtm-import-location-latlong/spatial"
)

// Location is one record of the ww_locations table. Name is the display
// name built from the venue, city and state columns.
type Location struct {
	ID    int
	Name  string
	Point *spatial.Point // nil when latitude/longitude are unset
}

// Row is one parsed data line of the import CSV.
type Row struct {
	ID    int            // 0 when the locationid column is empty
	Name  string         // location display name, used for matching when ID is 0
	Point *spatial.Point // nil when the latitude/longitude columns are empty
}
