// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geocode

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/wneessen/placeutil/internal/cache"
	"github.com/wneessen/placeutil/internal/geo"
)

// coordPrecision is the precision used to quantize coordinates (0.01 degrees ≈ 1.1 km)
const coordPrecision = 1e-2

type reverseKey struct {
	LatQ int32
	LonQ int32
}

type reverseEntry struct {
	address Address
	err     error
}

type searchEntry struct {
	coords geo.Coordinate
	err    error
}

// CachedGeocoder caches the results of another Geocoder. Reverse lookups are keyed by the
// quantized coordinates, searches by the normalized query. Lookups that found nothing are
// kept for ttlMiss, other errors are not cached.
type CachedGeocoder struct {
	coder   Geocoder
	ttlHit  time.Duration
	ttlMiss time.Duration

	reverse *cache.Cache[reverseKey, reverseEntry]
	search  *cache.Cache[string, searchEntry]
}

func NewCachedGeocoder(coder Geocoder, ttlHit, ttlMiss time.Duration) *CachedGeocoder {
	return &CachedGeocoder{
		coder:   coder,
		ttlHit:  ttlHit,
		ttlMiss: ttlMiss,
		reverse: cache.New[reverseKey, reverseEntry](),
		search:  cache.New[string, searchEntry](),
	}
}

func (c *CachedGeocoder) Name() string {
	return "geocoder cache using " + c.coder.Name()
}

func (c *CachedGeocoder) Reverse(ctx context.Context, coords geo.Coordinate) (Address, error) {
	key := newKey(coords.Lat, coords.Lon)
	if entry, ok := c.reverse.Get(key); ok {
		if entry.err != nil {
			return Address{}, entry.err
		}
		addr := entry.address
		addr.CacheHit = true
		return addr, nil
	}

	addr, err := c.coder.Reverse(ctx, coords)
	switch {
	case errors.Is(err, ErrNotFound):
		c.reverse.Set(key, reverseEntry{err: err}, c.ttlMiss)
		return addr, err
	case err != nil:
		return addr, err
	}
	c.reverse.Set(key, reverseEntry{address: addr}, c.ttlHit)

	return addr, nil
}

func (c *CachedGeocoder) Search(ctx context.Context, address string) (geo.Coordinate, error) {
	key := strings.ToLower(strings.TrimSpace(address))
	if entry, ok := c.search.Get(key); ok {
		return entry.coords, entry.err
	}

	coords, err := c.coder.Search(ctx, address)
	switch {
	case errors.Is(err, ErrNotFound):
		c.search.Set(key, searchEntry{err: err}, c.ttlMiss)
		return coords, err
	case err != nil:
		return coords, err
	}
	c.search.Set(key, searchEntry{coords: coords}, c.ttlHit)

	return coords, nil
}

// Purge drops all expired entries and returns the number of removed entries.
func (c *CachedGeocoder) Purge() int {
	return c.reverse.Purge() + c.search.Purge()
}

func quantizeCoord(val float64) int32 {
	return int32(math.Round(val / coordPrecision))
}

func newKey(lat, lon float64) reverseKey {
	return reverseKey{
		LatQ: quantizeCoord(lat),
		LonQ: quantizeCoord(lon),
	}
}
