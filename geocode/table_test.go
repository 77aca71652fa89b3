// Copyright 2025 Linh Pham
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/questionlp/wwdtm-import-location-latlong/spatial"
)

func TestTableGeocoder_Geocode(t *testing.T) {
	table, err := NewTableGeocoder([]SeedEntry{
		{
			Location: "Chicago, IL",
			Point:    spatial.Point{Lat: 41.8781, Lng: -87.6298},
		},
		{
			Location: "Ciudad de México",
			Point:    spatial.Point{Lat: 19.4326, Lng: -99.1332},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())

	tests := []struct {
		name     string
		location string
		expected *Result
	}{
		{
			name:     "exact match",
			location: "Chicago, IL",
			expected: &Result{
				Point:       spatial.Point{Lat: 41.8781, Lng: -87.6298},
				Confidence:  "high",
				Provider:    "table",
				DisplayName: "Chicago, IL",
			},
		},
		{
			name:     "case insensitive match",
			location: "chicago, il",
			expected: &Result{
				Point:       spatial.Point{Lat: 41.8781, Lng: -87.6298},
				Confidence:  "high",
				Provider:    "table",
				DisplayName: "Chicago, IL",
			},
		},
		{
			name:     "accent folded match",
			location: "Ciudad de Mexico",
			expected: &Result{
				Point:       spatial.Point{Lat: 19.4326, Lng: -99.1332},
				Confidence:  "high",
				Provider:    "table",
				DisplayName: "Ciudad de México",
			},
		},
		{
			name:     "surrounding whitespace",
			location: "  Chicago, IL  ",
			expected: &Result{
				Point:       spatial.Point{Lat: 41.8781, Lng: -87.6298},
				Confidence:  "high",
				Provider:    "table",
				DisplayName: "Chicago, IL",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := table.Geocode(tt.location)
			require.NoError(t, err)

			if diff := cmp.Diff(tt.expected, result); diff != "" {
				t.Errorf("Geocode() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTableGeocoder_NotFound(t *testing.T) {
	table, err := NewTableGeocoder(nil)
	require.NoError(t, err)

	_, err = table.Geocode("Chicago, IL")
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
}

func TestNewTableGeocoder_InvalidEntries(t *testing.T) {
	_, err := NewTableGeocoder([]SeedEntry{{Location: ""}})
	assert.Error(t, err)

	_, err = NewTableGeocoder([]SeedEntry{
		{Location: "Chicago, IL", Point: spatial.Point{Lat: 91, Lng: 0}},
	})
	assert.Error(t, err)
}

func TestLoadTableGeocoder(t *testing.T) {
	table, err := LoadTableGeocoder("testdata/seed.json")
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())

	result, err := table.Geocode("chicago, il")
	require.NoError(t, err)
	assert.InDelta(t, 41.8781, result.Point.Lat, 1e-9)
	assert.InDelta(t, -87.6298, result.Point.Lng, 1e-9)
}

func TestLoadTableGeocoder_MissingFile(t *testing.T) {
	_, err := LoadTableGeocoder("testdata/nope.json")
	assert.Error(t, err)
}

type stubGeocoder struct {
	result *Result
	err    error
	calls  int
}

func (s *stubGeocoder) Geocode(string) (*Result, error) {
	s.calls++

	return s.result, s.err
}

func TestChain_FallsThroughNotFound(t *testing.T) {
	miss := &stubGeocoder{err: &Error{Type: ErrorTypeNotFound, Message: "not in table"}}
	hit := &stubGeocoder{result: &Result{Provider: "google_maps"}}

	result, err := Chain{miss, hit}.Geocode("Chicago, IL")
	require.NoError(t, err)
	assert.Equal(t, "google_maps", result.Provider)
	assert.Equal(t, 1, miss.calls)
	assert.Equal(t, 1, hit.calls)
}

func TestChain_StopsOnProviderFailure(t *testing.T) {
	broken := &stubGeocoder{err: &Error{Type: ErrorTypeRateLimit, Message: "rate limit reached"}}
	next := &stubGeocoder{result: &Result{Provider: "table"}}

	_, err := Chain{broken, next}.Geocode("Chicago, IL")
	require.Error(t, err)
	assert.True(t, IsRateLimitError(err))
	assert.Equal(t, 0, next.calls)
}

func TestChain_AllMiss(t *testing.T) {
	miss := &stubGeocoder{err: &Error{Type: ErrorTypeNotFound, Message: "not found"}}

	_, err := Chain{miss}.Geocode("Nowhere, ZZ")
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
}

func TestChain_Empty(t *testing.T) {
	_, err := Chain{}.Geocode("Chicago, IL")
	assert.Error(t, err)
}

func TestFold(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Chicago, IL", "chicago, il"},
		{"  Miami, FL ", "miami, fl"},
		{"São Paulo", "sao paulo"},
		{"MONTRÉAL", "montreal"},
	}

	for _, tt := range tests {
		if got := Fold(tt.in); got != tt.want {
			t.Errorf("Fold(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
