// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package places

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/wneessen/placeutil/internal/geo"
	"github.com/wneessen/placeutil/internal/geocode"
	"github.com/wneessen/placeutil/internal/logger"
)

// PlaceRefPrefix marks a location value as a place ID instead of an address or coordinate.
const PlaceRefPrefix = "place:"

// Details field sets requested by the convenience lookups of Client.
var (
	FieldsAddress      = []string{"place_id", "formatted_address", "address_component"}
	FieldsOpeningHours = []string{"place_id", "opening_hours"}
	FieldsTypes        = []string{"place_id", "types"}
	FieldsLocation     = []string{"place_id", "geometry/location"}
)

// Client performs lookups against an injected Provider. Every method returns ErrNoProvider
// when no provider was given.
type Client struct {
	provider Provider
	logger   *logger.Logger
}

// NewClient returns a Client for provider. A nil log discards all records.
func NewClient(provider Provider, log *logger.Logger) *Client {
	if log == nil {
		log = logger.NewLogger(slog.LevelError, io.Discard)
	}
	return &Client{
		provider: provider,
		logger:   log,
	}
}

// Name returns the name of the underlying provider.
func (c *Client) Name() string {
	if c.provider == nil {
		return "none"
	}
	return c.provider.Name()
}

// Suggest returns autocomplete predictions for input, optionally restricted to categories.
func (c *Client) Suggest(ctx context.Context, input string, categories ...SuggestCategory) ([]Prediction, error) {
	if c.provider == nil {
		return nil, ErrNoProvider
	}
	if strings.TrimSpace(input) == "" {
		return nil, ErrEmptyInput
	}
	for _, category := range categories {
		if !category.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
		}
	}

	predictions, err := c.provider.Suggest(ctx, SuggestRequest{Input: input, Categories: categories})
	if err != nil {
		return nil, fmt.Errorf("failed to look up suggestions for %q: %w", input, err)
	}
	c.logger.Debug("suggestions retrieved", slog.String("provider", c.provider.Name()),
		slog.String("input", input), slog.Int("count", len(predictions)))
	return predictions, nil
}

// Details returns the place record for placeID. If fields are given, only those are requested.
func (c *Client) Details(ctx context.Context, placeID string, fields ...string) (*Place, error) {
	if c.provider == nil {
		return nil, ErrNoProvider
	}
	if strings.TrimSpace(placeID) == "" {
		return nil, ErrEmptyPlaceID
	}

	place, err := c.provider.Details(ctx, DetailsRequest{PlaceID: placeID, Fields: fields})
	if err == nil && place == nil {
		err = ErrZeroResults
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up details for place %q: %w", placeID, err)
	}
	c.logger.Debug("place details retrieved", slog.String("provider", c.provider.Name()),
		slog.String("place_id", placeID), slog.Bool("cache_hit", place.CacheHit))
	return place, nil
}

// Address looks up placeID and returns its normalized address.
func (c *Client) Address(ctx context.Context, placeID string) (*NormalizedAddress, error) {
	place, err := c.Details(ctx, placeID, FieldsAddress...)
	if err != nil {
		return nil, err
	}
	return NormalizeAddress(place), nil
}

// OpeningHours looks up placeID and returns its opening periods. The summary is nil if the
// provider has no opening hours for the place.
func (c *Client) OpeningHours(ctx context.Context, placeID string) (*OpeningHoursSummary, error) {
	place, err := c.Details(ctx, placeID, FieldsOpeningHours...)
	if err != nil {
		return nil, err
	}
	return FormatOpeningHours(place.OpeningHours), nil
}

// Categories looks up placeID and maps its place types to the labels of typeMap.
func (c *Client) Categories(ctx context.Context, placeID string, typeMap TypeMap) ([]string, error) {
	place, err := c.Details(ctx, placeID, FieldsTypes...)
	if err != nil {
		return nil, err
	}
	return ParseTypes(place.Types, typeMap), nil
}

// Location looks up the coordinates of placeID.
func (c *Client) Location(ctx context.Context, placeID string) (geo.Coordinate, error) {
	place, err := c.Details(ctx, placeID, FieldsLocation...)
	if err != nil {
		return geo.Coordinate{}, err
	}
	if place.Geometry == nil {
		return geo.Coordinate{}, fmt.Errorf("%w: %q", ErrNoLocation, placeID)
	}
	return place.Geometry.Location, nil
}

// DistanceBetween returns the great-circle distance in kilometers between two places.
func (c *Client) DistanceBetween(ctx context.Context, fromID, toID string) (float64, error) {
	from, err := c.Location(ctx, fromID)
	if err != nil {
		return 0, err
	}
	to, err := c.Location(ctx, toID)
	if err != nil {
		return 0, err
	}
	return geo.Distance(from, to), nil
}

// PlaceRef reports whether value has the form "place:<id>" and returns the place ID.
func PlaceRef(value string) (string, bool) {
	id, ok := strings.CutPrefix(value, PlaceRefPrefix)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(id), true
}

// Locate resolves value to coordinates. A "place:<id>" reference is looked up with the places
// provider, everything else is passed to geocode.Resolve with coder.
func (c *Client) Locate(ctx context.Context, coder geocode.Geocoder, value string) (geo.Coordinate, error) {
	if id, ok := PlaceRef(value); ok {
		return c.Location(ctx, id)
	}
	return geocode.Resolve(ctx, coder, value)
}
