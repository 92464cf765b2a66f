// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package places

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/wneessen/placeutil/internal/cache"
)

type detailsEntry struct {
	place *Place
	err   error
}

type suggestEntry struct {
	predictions []Prediction
	err         error
}

// CacheStats counts the lookups answered from the cache and those passed to the provider.
type CacheStats struct {
	Hits   uint64
	Misses uint64
}

// CachedProvider caches the results of another Provider. Successful lookups are kept for
// ttlHit, lookups that found nothing for ttlMiss. Other errors are not cached.
type CachedProvider struct {
	provider Provider
	ttlHit   time.Duration
	ttlMiss  time.Duration

	details     *cache.Cache[string, detailsEntry]
	suggestions *cache.Cache[string, suggestEntry]
	hits        atomic.Uint64
	misses      atomic.Uint64
}

func NewCachedProvider(provider Provider, ttlHit, ttlMiss time.Duration) *CachedProvider {
	return &CachedProvider{
		provider:    provider,
		ttlHit:      ttlHit,
		ttlMiss:     ttlMiss,
		details:     cache.New[string, detailsEntry](),
		suggestions: cache.New[string, suggestEntry](),
	}
}

func (c *CachedProvider) Name() string {
	return "places cache using " + c.provider.Name()
}

func (c *CachedProvider) Suggest(ctx context.Context, req SuggestRequest) ([]Prediction, error) {
	key := suggestKey(req)
	if entry, ok := c.suggestions.Get(key); ok {
		c.hits.Add(1)
		if entry.err != nil {
			return nil, entry.err
		}
		return clonePredictions(entry.predictions), nil
	}
	c.misses.Add(1)

	predictions, err := c.provider.Suggest(ctx, req)
	switch {
	case errors.Is(err, ErrZeroResults):
		c.suggestions.Set(key, suggestEntry{err: err}, c.ttlMiss)
		return nil, err
	case err != nil:
		return nil, err
	}
	c.suggestions.Set(key, suggestEntry{predictions: clonePredictions(predictions)}, c.ttlHit)
	return predictions, nil
}

func (c *CachedProvider) Details(ctx context.Context, req DetailsRequest) (*Place, error) {
	key := detailsKey(req)
	if entry, ok := c.details.Get(key); ok {
		c.hits.Add(1)
		if entry.err != nil {
			return nil, entry.err
		}
		place := entry.place.Clone()
		place.CacheHit = true
		return place, nil
	}
	c.misses.Add(1)

	place, err := c.provider.Details(ctx, req)
	if err == nil && place == nil {
		err = ErrZeroResults
	}
	switch {
	case errors.Is(err, ErrZeroResults):
		c.details.Set(key, detailsEntry{err: err}, c.ttlMiss)
		return nil, err
	case err != nil:
		return nil, err
	}
	c.details.Set(key, detailsEntry{place: place.Clone()}, c.ttlHit)
	return place, nil
}

// Purge drops all expired entries and returns the number of removed entries.
func (c *CachedProvider) Purge() int {
	return c.details.Purge() + c.suggestions.Purge()
}

func (c *CachedProvider) Stats() CacheStats {
	return CacheStats{Hits: c.hits.Load(), Misses: c.misses.Load()}
}

func suggestKey(req SuggestRequest) string {
	categories := make([]string, 0, len(req.Categories))
	for _, category := range req.Categories {
		categories = append(categories, string(category))
	}
	slices.Sort(categories)
	return strings.ToLower(strings.TrimSpace(req.Input)) + "\x00" + strings.Join(categories, "|")
}

func detailsKey(req DetailsRequest) string {
	fields := slices.Clone(req.Fields)
	slices.Sort(fields)
	return req.PlaceID + "\x00" + strings.Join(fields, ",")
}

func clonePredictions(predictions []Prediction) []Prediction {
	if predictions == nil {
		return nil
	}
	clone := make([]Prediction, len(predictions))
	for i, p := range predictions {
		p.Types = slices.Clone(p.Types)
		p.DistanceMeters = clonePtr(p.DistanceMeters)
		p.MatchedSubstrings = slices.Clone(p.MatchedSubstrings)
		p.StructuredFormatting.MainTextMatchedSubstrings = slices.Clone(p.StructuredFormatting.MainTextMatchedSubstrings)
		p.Terms = slices.Clone(p.Terms)
		clone[i] = p
	}
	return clone
}
