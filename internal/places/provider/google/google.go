// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package google implements a places.Provider for the Google Places web service.
package google

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/wneessen/placeutil/internal/http"
	"github.com/wneessen/placeutil/internal/places"
)

const (
	APIAutocompleteEndpoint = "https://maps.googleapis.com/maps/api/place/autocomplete/json"
	APIDetailsEndpoint      = "https://maps.googleapis.com/maps/api/place/details/json"
	APITimeout              = time.Second * 10
	name                    = "google"
)

const (
	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
	statusNotFound    = "NOT_FOUND"
	typeSeparator     = "|"
	fieldSeparator    = ","
	countryComponent  = "country:"
)

type Google struct {
	http    *http.Client
	lang    language.Tag
	apikey  string
	region  string
	timeout time.Duration
}

type autocompleteResponse struct {
	Status       string              `json:"status"`
	ErrorMessage string              `json:"error_message"`
	Predictions  []places.Prediction `json:"predictions"`
}

type detailsResponse struct {
	Status       string       `json:"status"`
	ErrorMessage string       `json:"error_message"`
	Result       places.Place `json:"result"`
}

// New returns a Google Places provider. region restricts autocomplete suggestions to a
// country (ISO 3166-1 alpha-2) and may be empty.
func New(client *http.Client, lang language.Tag, apikey, region string) (*Google, error) {
	if apikey == "" {
		return nil, places.ErrMissingAPIKey
	}
	return &Google{
		http:    client,
		lang:    lang,
		apikey:  apikey,
		region:  strings.ToLower(region),
		timeout: APITimeout,
	}, nil
}

// SetTimeout overrides the per-request timeout.
func (g *Google) SetTimeout(timeout time.Duration) {
	if timeout > 0 {
		g.timeout = timeout
	}
}

func (g *Google) Name() string {
	return name
}

func (g *Google) Suggest(ctx context.Context, req places.SuggestRequest) ([]places.Prediction, error) {
	var result autocompleteResponse

	query := url.Values{}
	query.Set("input", req.Input)
	if len(req.Categories) > 0 {
		types := make([]string, 0, len(req.Categories))
		for _, category := range req.Categories {
			types = append(types, string(category))
		}
		query.Set("types", strings.Join(types, typeSeparator))
	}
	if g.region != "" {
		query.Set("components", countryComponent+g.region)
	}
	query.Set("language", g.lang.String())
	query.Set("key", g.apikey)

	if _, err := g.http.GetWithTimeout(ctx, APIAutocompleteEndpoint, &result, query, nil, g.timeout); err != nil {
		return nil, fmt.Errorf("failed to fetch suggestions from Google Places API: %w", err)
	}
	if err := statusErr(result.Status, result.ErrorMessage); err != nil {
		return nil, err
	}

	return result.Predictions, nil
}

func (g *Google) Details(ctx context.Context, req places.DetailsRequest) (*places.Place, error) {
	var result detailsResponse

	query := url.Values{}
	query.Set("place_id", req.PlaceID)
	if len(req.Fields) > 0 {
		query.Set("fields", strings.Join(req.Fields, fieldSeparator))
	}
	query.Set("language", g.lang.String())
	query.Set("key", g.apikey)

	if _, err := g.http.GetWithTimeout(ctx, APIDetailsEndpoint, &result, query, nil, g.timeout); err != nil {
		return nil, fmt.Errorf("failed to fetch place details from Google Places API: %w", err)
	}
	if err := statusErr(result.Status, result.ErrorMessage); err != nil {
		return nil, err
	}

	return &result.Result, nil
}

// statusErr maps the status field of a Places API response to the places error types.
func statusErr(status, message string) error {
	switch status {
	case statusOK:
		return nil
	case statusZeroResults, statusNotFound:
		return places.ErrZeroResults
	default:
		return &places.StatusError{Provider: name, Status: status, Message: message}
	}
}
