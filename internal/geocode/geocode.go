// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package geocode resolves free-form addresses to coordinates and back.
package geocode

import (
	"context"
	"errors"

	"github.com/wneessen/placeutil/internal/geo"
)

var (
	// ErrNotFound is returned when the geocoder has no result for the query.
	ErrNotFound = errors.New("no geocoding result found")
	// ErrNoGeocoder is returned for lookups that need a geocoder when none is configured.
	ErrNoGeocoder = errors.New("no geocoder available")
)

type Address struct {
	Latitude    float64 `json:"lat"`
	Longitude   float64 `json:"lng"`
	DisplayName string  `json:"display_name"`
	Country     string  `json:"country,omitempty"`
	CountryCode string  `json:"country_code,omitempty"`
	State       string  `json:"state,omitempty"`
	County      string  `json:"county,omitempty"`
	Postcode    string  `json:"postcode,omitempty"`
	City        string  `json:"city,omitempty"`
	Suburb      string  `json:"suburb,omitempty"`
	Street      string  `json:"street,omitempty"`
	HouseNumber string  `json:"house_number,omitempty"`

	CacheHit bool `json:"-"`
}

// Coordinate returns the position of the address.
func (a Address) Coordinate() geo.Coordinate {
	return geo.Coordinate{Lat: a.Latitude, Lon: a.Longitude}
}

type Geocoder interface {
	Name() string
	Search(ctx context.Context, address string) (geo.Coordinate, error)
	Reverse(ctx context.Context, coords geo.Coordinate) (Address, error)
}

// Resolve parses value as a "lat,lon" pair and falls back to a forward lookup with coder if
// that fails. A nil coder only accepts coordinates.
func Resolve(ctx context.Context, coder Geocoder, value string) (geo.Coordinate, error) {
	coords, err := geo.ParseCoordinate(value)
	if err == nil {
		return coords, nil
	}
	if coder == nil {
		return geo.Coordinate{}, err
	}
	return coder.Search(ctx, value)
}
