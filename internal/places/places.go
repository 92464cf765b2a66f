// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package places wraps a places provider (autocomplete and place details) and reshapes its
// results into flat records: normalized addresses, opening hours summaries and category labels.
package places

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/wneessen/placeutil/internal/geo"
)

var (
	ErrNoProvider      = errors.New("no places provider available")
	ErrZeroResults     = errors.New("no results found")
	ErrMissingAPIKey   = errors.New("places provider requires an API key")
	ErrInvalidCategory = errors.New("invalid suggestion category")
	ErrEmptyInput      = errors.New("suggestion input must not be empty")
	ErrEmptyPlaceID    = errors.New("place ID must not be empty")
	ErrNoLocation      = errors.New("place has no location")
)

// StatusError is returned when the provider answered the request with an error status.
type StatusError struct {
	Provider string
	Status   string
	Message  string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s API returned status %s", e.Provider, e.Status)
	}
	return fmt.Sprintf("%s API returned status %s: %s", e.Provider, e.Status, e.Message)
}

// SuggestCategory restricts autocomplete suggestions to a class of places.
type SuggestCategory string

const (
	CategoryCities        SuggestCategory = "(cities)"
	CategoryEstablishment SuggestCategory = "establishment"
)

// Valid reports whether c is a supported suggestion category.
func (c SuggestCategory) Valid() bool {
	return c == CategoryCities || c == CategoryEstablishment
}

// ParseSuggestCategory maps the short names "cities" and "establishment" as well as the
// provider values to a SuggestCategory.
func ParseSuggestCategory(value string) (SuggestCategory, error) {
	switch value {
	case "cities", string(CategoryCities):
		return CategoryCities, nil
	case string(CategoryEstablishment):
		return CategoryEstablishment, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, value)
	}
}

// ParseSuggestCategories parses a comma separated list of suggestion categories. Blank items
// are skipped.
func ParseSuggestCategories(value string) ([]SuggestCategory, error) {
	var categories []SuggestCategory
	for _, item := range SplitList(value) {
		category, err := ParseSuggestCategory(item)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, nil
}

// SplitList splits a comma separated list, trims every item and drops empty ones.
func SplitList(value string) []string {
	if value == "" {
		return nil
	}
	var list []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}

// Provider is a places backend. Implementations return ErrZeroResults when the provider found
// nothing and a *StatusError when it reported a failure. Details returns a non-nil place if
// the error is nil; callers treat a nil place as ErrZeroResults.
type Provider interface {
	Name() string
	Suggest(ctx context.Context, req SuggestRequest) ([]Prediction, error)
	Details(ctx context.Context, req DetailsRequest) (*Place, error)
}

type SuggestRequest struct {
	Input      string
	Categories []SuggestCategory
}

type DetailsRequest struct {
	PlaceID string
	// Fields limits the returned place data. Empty means all fields.
	Fields []string
}

// Prediction is a single autocomplete suggestion as returned by the provider.
type Prediction struct {
	Description          string               `json:"description"`
	PlaceID              string               `json:"place_id"`
	Types                []string             `json:"types"`
	DistanceMeters       *int                 `json:"distance_meters,omitempty"`
	MatchedSubstrings    []Substring          `json:"matched_substrings,omitempty"`
	StructuredFormatting StructuredFormatting `json:"structured_formatting"`
	Terms                []Term               `json:"terms,omitempty"`
}

type Substring struct {
	Length int `json:"length"`
	Offset int `json:"offset"`
}

type StructuredFormatting struct {
	MainText                  string      `json:"main_text"`
	MainTextMatchedSubstrings []Substring `json:"main_text_matched_substrings,omitempty"`
	SecondaryText             string      `json:"secondary_text,omitempty"`
}

type Term struct {
	Offset int    `json:"offset"`
	Value  string `json:"value"`
}

// AddressComponent is one tagged fragment of a structured address.
type AddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

type Geometry struct {
	Location geo.Coordinate `json:"location"`
	Viewport *Viewport      `json:"viewport,omitempty"`
}

type Viewport struct {
	Northeast geo.Coordinate `json:"northeast"`
	Southwest geo.Coordinate `json:"southwest"`
}

// PeriodEvent is an opening or closing point in time. Time is formatted as HHMM.
type PeriodEvent struct {
	Day  int    `json:"day"`
	Time string `json:"time"`
}

// Period is one opening period. Close is nil for places that are always open.
type Period struct {
	Open  PeriodEvent  `json:"open"`
	Close *PeriodEvent `json:"close,omitempty"`
}

type OpeningHours struct {
	OpenNow     *bool    `json:"open_now,omitempty"`
	Periods     []Period `json:"periods,omitempty"`
	WeekdayText []string `json:"weekday_text,omitempty"`
}

// Place is the place record returned by a details lookup.
type Place struct {
	PlaceID           string             `json:"place_id"`
	Name              string             `json:"name,omitempty"`
	FormattedAddress  string             `json:"formatted_address,omitempty"`
	AddressComponents []AddressComponent `json:"address_components,omitempty"`
	Types             []string           `json:"types,omitempty"`
	Geometry          *Geometry          `json:"geometry,omitempty"`
	OpeningHours      *OpeningHours      `json:"opening_hours,omitempty"`
	PriceLevel        *int               `json:"price_level,omitempty"`
	Rating            float64            `json:"rating,omitempty"`
	UserRatingsTotal  int                `json:"user_ratings_total,omitempty"`
	Website           string             `json:"website,omitempty"`
	URL               string             `json:"url,omitempty"`
	UTCOffset         *int               `json:"utc_offset,omitempty"`

	CacheHit bool `json:"-"`
}

// Clone returns a deep copy of p.
func (p *Place) Clone() *Place {
	if p == nil {
		return nil
	}
	clone := *p
	clone.AddressComponents = make([]AddressComponent, len(p.AddressComponents))
	for i, comp := range p.AddressComponents {
		comp.Types = slices.Clone(comp.Types)
		clone.AddressComponents[i] = comp
	}
	if p.AddressComponents == nil {
		clone.AddressComponents = nil
	}
	clone.Types = slices.Clone(p.Types)
	if p.Geometry != nil {
		geometry := *p.Geometry
		if p.Geometry.Viewport != nil {
			viewport := *p.Geometry.Viewport
			geometry.Viewport = &viewport
		}
		clone.Geometry = &geometry
	}
	if p.OpeningHours != nil {
		hours := OpeningHours{
			OpenNow:     clonePtr(p.OpeningHours.OpenNow),
			WeekdayText: slices.Clone(p.OpeningHours.WeekdayText),
		}
		if p.OpeningHours.Periods != nil {
			hours.Periods = make([]Period, len(p.OpeningHours.Periods))
			for i, period := range p.OpeningHours.Periods {
				period.Close = clonePtr(period.Close)
				hours.Periods[i] = period
			}
		}
		clone.OpeningHours = &hours
	}
	clone.PriceLevel = clonePtr(p.PriceLevel)
	clone.UTCOffset = clonePtr(p.UTCOffset)
	return &clone
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
