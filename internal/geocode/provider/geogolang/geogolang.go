// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package geogolang adapts the geocoders of github.com/codingsince1985/geo-golang to the
// geocode.Geocoder interface.
package geogolang

import (
	"context"
	"errors"
	"fmt"
	"strings"

	geolib "github.com/codingsince1985/geo-golang"
	"github.com/codingsince1985/geo-golang/google"
	"github.com/codingsince1985/geo-golang/openstreetmap"

	"github.com/wneessen/placeutil/internal/geo"
	"github.com/wneessen/placeutil/internal/geocode"
)

const (
	ProviderGoogle        = "google"
	ProviderOpenStreetMap = "openstreetmap"
)

var (
	ErrUnknownProvider = errors.New("unknown geocoding provider")
	ErrMissingAPIKey   = errors.New("geocoding provider requires an API key")
)

type GeoGolang struct {
	name  string
	coder geolib.Geocoder
}

// New returns a geocoder for the named provider. The Google provider requires an API key.
func New(provider, apikey string) (*GeoGolang, error) {
	switch strings.ToLower(provider) {
	case ProviderGoogle:
		if apikey == "" {
			return nil, ErrMissingAPIKey
		}
		return Wrap(ProviderGoogle, google.Geocoder(apikey)), nil
	case ProviderOpenStreetMap:
		return Wrap(ProviderOpenStreetMap, openstreetmap.Geocoder()), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
	}
}

// Wrap adapts an existing geo-golang geocoder.
func Wrap(name string, coder geolib.Geocoder) *GeoGolang {
	return &GeoGolang{name: name, coder: coder}
}

func (g *GeoGolang) Name() string {
	return "geo-golang " + g.name
}

func (g *GeoGolang) Search(ctx context.Context, address string) (geo.Coordinate, error) {
	location, err := call(ctx, func() (*geolib.Location, error) {
		return g.coder.Geocode(address)
	})
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("failed to geocode address %q: %w", address, err)
	}
	if location == nil {
		return geo.Coordinate{}, fmt.Errorf("%w: %q", geocode.ErrNotFound, address)
	}

	return geo.Coordinate{Lat: location.Lat, Lon: location.Lng}, nil
}

func (g *GeoGolang) Reverse(ctx context.Context, coords geo.Coordinate) (geocode.Address, error) {
	result, err := call(ctx, func() (*geolib.Address, error) {
		return g.coder.ReverseGeocode(coords.Lat, coords.Lon)
	})
	if err != nil {
		return geocode.Address{}, fmt.Errorf("failed to reverse geocode coordinates %s: %w", coords, err)
	}
	if result == nil {
		return geocode.Address{}, fmt.Errorf("%w: %s", geocode.ErrNotFound, coords)
	}

	return geocode.Address{
		Latitude:    coords.Lat,
		Longitude:   coords.Lon,
		DisplayName: result.FormattedAddress,
		Country:     result.Country,
		CountryCode: result.CountryCode,
		State:       result.State,
		County:      result.County,
		Postcode:    result.Postcode,
		City:        result.City,
		Suburb:      result.Suburb,
		Street:      result.Street,
		HouseNumber: result.HouseNumber,
	}, nil
}

// call runs fn and returns early when ctx is done. geo-golang has no context support, so an
// abandoned call finishes in the background on its own timeout.
func call[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	type result struct {
		value T
		err   error
	}
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, err
	}
	done := make(chan result, 1)
	go func() {
		value, err := fn()
		done <- result{value: value, err: err}
	}()
	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case res := <-done:
		return res.value, res.err
	}
}
