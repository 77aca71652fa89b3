// Copyright 2025 Linh Pham
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/questionlp/wwdtm-import-location-latlong/spatial"
)

// Result represents a geocoding result from any provider.
type Result struct {
	Point       spatial.Point
	Confidence  string // high, medium, low
	Provider    string
	DisplayName string
}

// Geocoder resolves a free-form location name to coordinates.
type Geocoder interface {
	Geocode(location string) (*Result, error)
}

// Chain tries each provider in order. A provider that doesn't know the
// location falls through to the next one; any other provider failure stops
// the chain.
type Chain []Geocoder

func (c Chain) Geocode(location string) (*Result, error) {
	if len(c) == 0 {
		return nil, errors.New("geocode: no providers configured")
	}

	var lastErr error

	for _, g := range c {
		result, err := g.Geocode(location)
		if err == nil {
			return result, nil
		}

		if !IsNotFoundError(err) {
			return nil, err
		}

		lastErr = err
	}

	return nil, lastErr
}

// Fold normalizes a location name for lookups by removing accents,
// lowercasing, and trimming spaces.
func Fold(s string) string {
	s, _, _ = transform.String(
		transform.Chain(
			norm.NFD,
			runes.Remove(runes.In(unicode.Mn)),
			norm.NFC,
		),
		strings.TrimSpace(strings.ToLower(s)),
	)

	return s
}
