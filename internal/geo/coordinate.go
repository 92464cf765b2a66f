// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package geo provides the geographic coordinate type and great-circle distance helpers.
package geo

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// EarthRadiusKm is the mean Earth radius in kilometers.
const EarthRadiusKm = 6371.0

var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Coordinate represents a geographic coordinate in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lng"`
}

// Distance returns the great-circle surface distance between a and b in kilometers. We are
// using the Haversine formula on a spherical Earth. Input is not validated.
func Distance(a, b Coordinate) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLon := toRad(b.Lon - a.Lon)
	lat1 := toRad(a.Lat)
	lat2 := toRad(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// DistanceTo returns the distance from c to other in kilometers.
func (c Coordinate) DistanceTo(other Coordinate) float64 {
	return Distance(c, other)
}

// Valid checks if the coordinate is valid according to the EPSG logic
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// String returns the coordinate as "lat,lon".
func (c Coordinate) String() string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lon, 'f', -1, 64)
}

// ParseCoordinate parses a "lat,lon" pair. The parsed coordinate must be valid.
func ParseCoordinate(value string) (Coordinate, error) {
	latStr, lonStr, ok := strings.Cut(value, ",")
	if !ok {
		return Coordinate{}, fmt.Errorf("%w: %q is not a lat,lon pair", ErrInvalidCoordinate, value)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("%w: failed to parse latitude: %w", ErrInvalidCoordinate, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("%w: failed to parse longitude: %w", ErrInvalidCoordinate, err)
	}
	coords := Coordinate{Lat: lat, Lon: lon}
	if !coords.Valid() {
		return Coordinate{}, fmt.Errorf("%w: %q is out of range", ErrInvalidCoordinate, value)
	}
	return coords, nil
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
