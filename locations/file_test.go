// Copyright 2025 Linh Pham
// SPDX-License-Identifier: Apache-2.0

package locations

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/questionlp/wwdtm-import-location-latlong/spatial"
)

func TestReadRows(t *testing.T) {
	input := `locationid,location,latitude,longitude
95,"Chase Auditorium, Chicago, IL",41.8885,-87.6229
,"Chicago, IL",41.8781,-87.6298
148,"Harrah's, Las Vegas, NV",,
,"",,
`

	expected := []Row{
		{
			ID:    95,
			Name:  "Chase Auditorium, Chicago, IL",
			Point: &spatial.Point{Lat: 41.8885, Lng: -87.6229},
		},
		{
			Name:  "Chicago, IL",
			Point: &spatial.Point{Lat: 41.8781, Lng: -87.6298},
		},
		{
			ID:   148,
			Name: "Harrah's, Las Vegas, NV",
		},
		{},
	}

	rows, err := readRows(strings.NewReader(input))
	require.NoError(t, err)

	if diff := cmp.Diff(expected, rows); diff != "" {
		t.Errorf("readRows() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadRows_HalfFilledCoordinates(t *testing.T) {
	// A single missing coordinate means the row carries no usable point,
	// matching how the original import script treated such rows.
	input := "locationid,location,latitude,longitude\n12,\"Chicago, IL\",41.8781,\n"

	rows, err := readRows(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].Point)
}

func TestReadRows_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "empty file",
			input:   "",
			wantErr: "missing header line",
		},
		{
			name:    "wrong header name",
			input:   "id,place,lat,lng\n",
			wantErr: "unexpected header",
		},
		{
			name:    "wrong header column count",
			input:   "locationid,location\n",
			wantErr: "unexpected header",
		},
		{
			name:    "wrong column count in record",
			input:   "locationid,location,latitude,longitude\n95,\"Chicago, IL\",41.8781\n",
			wantErr: "reading record",
		},
		{
			name:    "bad locationid",
			input:   "locationid,location,latitude,longitude\nabc,\"Chicago, IL\",41.8781,-87.6298\n",
			wantErr: "invalid locationid",
		},
		{
			name:    "bad latitude",
			input:   "locationid,location,latitude,longitude\n95,\"Chicago, IL\",north,-87.6298\n",
			wantErr: "invalid latitude",
		},
		{
			name:    "bad longitude",
			input:   "locationid,location,latitude,longitude\n95,\"Chicago, IL\",41.8781,west\n",
			wantErr: "invalid longitude",
		},
		{
			name:    "latitude out of range",
			input:   "locationid,location,latitude,longitude\n95,\"Chicago, IL\",141.8781,-87.6298\n",
			wantErr: "latitude out of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readRows(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestReadFile(t *testing.T) {
	rows, err := ReadFile("testdata/locations.csv")
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, 95, rows[0].ID)
	assert.Equal(t, "Chase Auditorium, Chicago, IL", rows[0].Name)
	require.NotNil(t, rows[0].Point)
	assert.InDelta(t, 41.8885, rows[0].Point.Lat, 1e-9)
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile("testdata/does-not-exist.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening CSV file")
}

func TestWriteFile_RoundTrip(t *testing.T) {
	locs := []Location{
		{ID: 2, Name: "Chicago, IL"},
		{
			ID:    95,
			Name:  "Chase Auditorium, Chicago, IL",
			Point: &spatial.Point{Lat: 41.8885, Lng: -87.6229},
		},
	}

	path := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, WriteFile(path, locs))

	rows, err := ReadFile(path)
	require.NoError(t, err)

	expected := []Row{
		{ID: 2, Name: "Chicago, IL"},
		{
			ID:    95,
			Name:  "Chase Auditorium, Chicago, IL",
			Point: &spatial.Point{Lat: 41.8885, Lng: -87.6229},
		},
	}

	if diff := cmp.Diff(expected, rows); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteFile_BadPath(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "export.csv"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating CSV file")
}

func TestWriteFile_HeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, WriteFile(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "locationid,location,latitude,longitude\n", string(data))
}
