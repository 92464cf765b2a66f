// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package places

import (
	"context"
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/wneessen/placeutil/internal/geo"
	"github.com/wneessen/placeutil/internal/geocode"
)

const (
	testPlaceBerlin = "place-berlin"
	testPlaceParis  = "place-paris"
	testPlaceNoGeo  = "place-nogeo"
	testPlaceDenied = "place-denied"
	testPlaceNone   = "place-none"
	testPlaceEmpty  = "place-empty"
)

type mockProvider struct {
	suggestCalls int
	detailsCalls int
	lastDetails  DetailsRequest
	lastSuggest  SuggestRequest
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) Suggest(_ context.Context, req SuggestRequest) ([]Prediction, error) {
	m.suggestCalls++
	m.lastSuggest = req
	switch req.Input {
	case "nothing":
		return nil, ErrZeroResults
	case "denied":
		return nil, &StatusError{Provider: "mock", Status: "REQUEST_DENIED", Message: "invalid key"}
	case "broken":
		return nil, errors.New("lookup intentionally failed")
	}
	return []Prediction{
		{Description: "Berlin, Germany", PlaceID: testPlaceBerlin, Types: []string{"locality"}},
		{Description: "Bern, Switzerland", PlaceID: "place-bern", Types: []string{"locality"}},
	}, nil
}

func (m *mockProvider) Details(ctx context.Context, req DetailsRequest) (*Place, error) {
	m.detailsCalls++
	m.lastDetails = req
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch req.PlaceID {
	case testPlaceBerlin:
		return &Place{
			PlaceID:          testPlaceBerlin,
			FormattedAddress: "Friedrichstraße 67, 10117 Berlin, Germany",
			AddressComponents: []AddressComponent{
				{LongName: "Friedrichstraße", Types: []string{"route"}},
				{LongName: "Berlin", Types: []string{"locality", "political"}},
				{LongName: "Berlin", Types: []string{"administrative_area_level_1", "political"}},
				{LongName: "10117", Types: []string{"postal_code"}},
				{LongName: "Germany", Types: []string{"country", "political"}},
			},
			Types:    []string{"restaurant", "food", "point_of_interest"},
			Geometry: &Geometry{Location: geo.Coordinate{Lat: 52.5129, Lon: 13.3910}},
			OpeningHours: &OpeningHours{Periods: []Period{
				{Open: PeriodEvent{Day: 1, Time: "0900"}, Close: &PeriodEvent{Day: 1, Time: "1700"}},
			}},
		}, nil
	case testPlaceParis:
		return &Place{
			PlaceID:  testPlaceParis,
			Geometry: &Geometry{Location: geo.Coordinate{Lat: 48.8566, Lon: 2.3522}},
		}, nil
	case testPlaceNoGeo:
		return &Place{PlaceID: testPlaceNoGeo}, nil
	case testPlaceDenied:
		return nil, &StatusError{Provider: "mock", Status: "REQUEST_DENIED"}
	case testPlaceEmpty:
		return nil, nil
	}
	return nil, ErrZeroResults
}

func TestNewClient(t *testing.T) {
	t.Run("client reports the provider name", func(t *testing.T) {
		client := NewClient(&mockProvider{}, nil)
		if client.Name() != "mock" {
			t.Errorf("expected name to be %q, got %q", "mock", client.Name())
		}
	})
	t.Run("client without provider", func(t *testing.T) {
		client := NewClient(nil, nil)
		if client.Name() != "none" {
			t.Errorf("expected name to be %q, got %q", "none", client.Name())
		}
		if _, err := client.Suggest(t.Context(), "Berlin"); !errors.Is(err, ErrNoProvider) {
			t.Errorf("expected suggest error to be %s, got %v", ErrNoProvider, err)
		}
		if _, err := client.Details(t.Context(), testPlaceBerlin); !errors.Is(err, ErrNoProvider) {
			t.Errorf("expected details error to be %s, got %v", ErrNoProvider, err)
		}
		if _, err := client.Address(t.Context(), testPlaceBerlin); !errors.Is(err, ErrNoProvider) {
			t.Errorf("expected address error to be %s, got %v", ErrNoProvider, err)
		}
	})
}

func TestClient_Suggest(t *testing.T) {
	t.Run("suggestions are returned", func(t *testing.T) {
		provider := &mockProvider{}
		client := NewClient(provider, nil)
		predictions, err := client.Suggest(t.Context(), "Ber", CategoryCities)
		if err != nil {
			t.Fatalf("failed to get suggestions: %s", err)
		}
		if len(predictions) != 2 {
			t.Fatalf("expected 2 predictions, got %d", len(predictions))
		}
		if predictions[0].PlaceID != testPlaceBerlin {
			t.Errorf("expected first prediction to be %q, got %q", testPlaceBerlin, predictions[0].PlaceID)
		}
		if !slices.Equal(provider.lastSuggest.Categories, []SuggestCategory{CategoryCities}) {
			t.Errorf("expected categories to be passed on, got %v", provider.lastSuggest.Categories)
		}
	})
	t.Run("empty input is rejected", func(t *testing.T) {
		provider := &mockProvider{}
		_, err := NewClient(provider, nil).Suggest(t.Context(), "  ")
		if !errors.Is(err, ErrEmptyInput) {
			t.Errorf("expected error to be %s, got %v", ErrEmptyInput, err)
		}
		if provider.suggestCalls != 0 {
			t.Error("expected provider not to be called")
		}
	})
	t.Run("unknown categories are rejected", func(t *testing.T) {
		provider := &mockProvider{}
		_, err := NewClient(provider, nil).Suggest(t.Context(), "Berlin", "(regions)")
		if !errors.Is(err, ErrInvalidCategory) {
			t.Errorf("expected error to be %s, got %v", ErrInvalidCategory, err)
		}
		if provider.suggestCalls != 0 {
			t.Error("expected provider not to be called")
		}
	})
	t.Run("no results are distinguishable from provider errors", func(t *testing.T) {
		client := NewClient(&mockProvider{}, nil)
		_, err := client.Suggest(t.Context(), "nothing")
		if !errors.Is(err, ErrZeroResults) {
			t.Errorf("expected error to be %s, got %v", ErrZeroResults, err)
		}
		_, err = client.Suggest(t.Context(), "denied")
		var statusErr *StatusError
		if !errors.As(err, &statusErr) {
			t.Fatalf("expected a status error, got %v", err)
		}
		if statusErr.Status != "REQUEST_DENIED" {
			t.Errorf("expected status to be REQUEST_DENIED, got %s", statusErr.Status)
		}
		if errors.Is(err, ErrZeroResults) {
			t.Error("expected status error not to be a zero results error")
		}
	})
	t.Run("transport errors are returned", func(t *testing.T) {
		_, err := NewClient(&mockProvider{}, nil).Suggest(t.Context(), "broken")
		if err == nil {
			t.Fatal("expected an error")
		}
	})
}

func TestClient_Details(t *testing.T) {
	t.Run("details are returned", func(t *testing.T) {
		place, err := NewClient(&mockProvider{}, nil).Details(t.Context(), testPlaceBerlin)
		if err != nil {
			t.Fatalf("failed to get details: %s", err)
		}
		if place.PlaceID != testPlaceBerlin {
			t.Errorf("expected place ID to be %q, got %q", testPlaceBerlin, place.PlaceID)
		}
	})
	t.Run("fields are passed to the provider", func(t *testing.T) {
		provider := &mockProvider{}
		_, err := NewClient(provider, nil).Details(t.Context(), testPlaceBerlin, "name", "geometry")
		if err != nil {
			t.Fatalf("failed to get details: %s", err)
		}
		if !slices.Equal(provider.lastDetails.Fields, []string{"name", "geometry"}) {
			t.Errorf("expected fields to be passed on, got %v", provider.lastDetails.Fields)
		}
	})
	t.Run("empty place ID is rejected", func(t *testing.T) {
		_, err := NewClient(&mockProvider{}, nil).Details(t.Context(), "")
		if !errors.Is(err, ErrEmptyPlaceID) {
			t.Errorf("expected error to be %s, got %v", ErrEmptyPlaceID, err)
		}
	})
	t.Run("unknown place returns zero results", func(t *testing.T) {
		_, err := NewClient(&mockProvider{}, nil).Details(t.Context(), testPlaceNone)
		if !errors.Is(err, ErrZeroResults) {
			t.Errorf("expected error to be %s, got %v", ErrZeroResults, err)
		}
	})
	t.Run("a provider returning no place and no error reports zero results", func(t *testing.T) {
		place, err := NewClient(&mockProvider{}, nil).Details(t.Context(), testPlaceEmpty)
		if !errors.Is(err, ErrZeroResults) {
			t.Errorf("expected error to be %s, got %v", ErrZeroResults, err)
		}
		if place != nil {
			t.Errorf("expected no place, got %+v", place)
		}
	})
	t.Run("cancelled context is reported", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		_, err := NewClient(&mockProvider{}, nil).Details(ctx, testPlaceBerlin)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected error to be %s, got %v", context.Canceled, err)
		}
	})
}

func TestClient_Address(t *testing.T) {
	t.Run("the address is normalized", func(t *testing.T) {
		provider := &mockProvider{}
		addr, err := NewClient(provider, nil).Address(t.Context(), testPlaceBerlin)
		if err != nil {
			t.Fatalf("failed to get address: %s", err)
		}
		if addr.Address1 != "Berlin, Friedrichstraße, " {
			t.Errorf("expected address1 to be %q, got %q", "Berlin, Friedrichstraße, ", addr.Address1)
		}
		if addr.Zipcode.Value() != "10117" {
			t.Errorf("expected zipcode to be 10117, got %q", addr.Zipcode.Value())
		}
		if !slices.Equal(provider.lastDetails.Fields, FieldsAddress) {
			t.Errorf("expected address fields to be requested, got %v", provider.lastDetails.Fields)
		}
	})
	t.Run("provider errors are returned", func(t *testing.T) {
		_, err := NewClient(&mockProvider{}, nil).Address(t.Context(), testPlaceDenied)
		var statusErr *StatusError
		if !errors.As(err, &statusErr) {
			t.Errorf("expected a status error, got %v", err)
		}
	})
}

func TestClient_OpeningHours(t *testing.T) {
	t.Run("opening hours are formatted", func(t *testing.T) {
		summary, err := NewClient(&mockProvider{}, nil).OpeningHours(t.Context(), testPlaceBerlin)
		if err != nil {
			t.Fatalf("failed to get opening hours: %s", err)
		}
		want := OpeningPeriod{Open: "0900", Close: "1700", Day: 1}
		if len(summary.Periods) != 1 || summary.Periods[0] != want {
			t.Errorf("expected periods [%+v], got %+v", want, summary.Periods)
		}
	})
	t.Run("missing opening hours return nil", func(t *testing.T) {
		summary, err := NewClient(&mockProvider{}, nil).OpeningHours(t.Context(), testPlaceParis)
		if err != nil {
			t.Fatalf("failed to get opening hours: %s", err)
		}
		if summary != nil {
			t.Errorf("expected nil summary, got %+v", summary)
		}
	})
}

func TestClient_Categories(t *testing.T) {
	typeMap := NewTypeMap(map[string][]string{"restaurant": {"food", "restaurant"}, "lodging": {"lodging"}})
	labels, err := NewClient(&mockProvider{}, nil).Categories(t.Context(), testPlaceBerlin, typeMap)
	if err != nil {
		t.Fatalf("failed to get categories: %s", err)
	}
	want := []string{"restaurant", "restaurant"}
	if !slices.Equal(labels, want) {
		t.Errorf("expected %v, got %v", want, labels)
	}
}

func TestClient_DistanceBetween(t *testing.T) {
	t.Run("distance between two places", func(t *testing.T) {
		d, err := NewClient(&mockProvider{}, nil).DistanceBetween(t.Context(), testPlaceBerlin, testPlaceParis)
		if err != nil {
			t.Fatalf("failed to get distance: %s", err)
		}
		want := geo.Distance(geo.Coordinate{Lat: 52.5129, Lon: 13.3910}, geo.Coordinate{Lat: 48.8566, Lon: 2.3522})
		if math.Abs(d-want) > 1e-9 {
			t.Errorf("expected distance %f, got %f", want, d)
		}
	})
	t.Run("a place without location fails", func(t *testing.T) {
		_, err := NewClient(&mockProvider{}, nil).DistanceBetween(t.Context(), testPlaceBerlin, testPlaceNoGeo)
		if !errors.Is(err, ErrNoLocation) {
			t.Errorf("expected error to be %s, got %v", ErrNoLocation, err)
		}
	})
	t.Run("an unknown place fails", func(t *testing.T) {
		_, err := NewClient(&mockProvider{}, nil).DistanceBetween(t.Context(), testPlaceNone, testPlaceBerlin)
		if !errors.Is(err, ErrZeroResults) {
			t.Errorf("expected error to be %s, got %v", ErrZeroResults, err)
		}
	})
}

func TestParseSuggestCategory(t *testing.T) {
	tests := []struct {
		value   string
		want    SuggestCategory
		wantErr bool
	}{
		{"cities", CategoryCities, false},
		{"(cities)", CategoryCities, false},
		{"establishment", CategoryEstablishment, false},
		{"regions", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.value, func(t *testing.T) {
			got, err := ParseSuggestCategory(tc.value)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidCategory) {
					t.Errorf("expected error to be %s, got %v", ErrInvalidCategory, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("failed to parse category: %s", err)
			}
			if got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestParseSuggestCategories(t *testing.T) {
	t.Run("a trailing comma is ignored", func(t *testing.T) {
		got, err := ParseSuggestCategories("cities,")
		if err != nil {
			t.Fatalf("failed to parse categories: %s", err)
		}
		if !slices.Equal(got, []SuggestCategory{CategoryCities}) {
			t.Errorf("expected %v, got %v", []SuggestCategory{CategoryCities}, got)
		}
	})
	t.Run("items are trimmed", func(t *testing.T) {
		got, err := ParseSuggestCategories(" cities , establishment ")
		if err != nil {
			t.Fatalf("failed to parse categories: %s", err)
		}
		want := []SuggestCategory{CategoryCities, CategoryEstablishment}
		if !slices.Equal(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})
	t.Run("an empty value yields no categories", func(t *testing.T) {
		got, err := ParseSuggestCategories("")
		if err != nil {
			t.Fatalf("failed to parse categories: %s", err)
		}
		if len(got) != 0 {
			t.Errorf("expected no categories, got %v", got)
		}
	})
	t.Run("an unknown category fails", func(t *testing.T) {
		if _, err := ParseSuggestCategories("cities,regions"); !errors.Is(err, ErrInvalidCategory) {
			t.Errorf("expected error to be %s, got %v", ErrInvalidCategory, err)
		}
	})
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{"empty value", "", nil},
		{"single item", "name", []string{"name"}},
		{"items are trimmed", "name, geometry", []string{"name", "geometry"}},
		{"blank items are dropped", " ,name,, ", []string{"name"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SplitList(tc.value); !slices.Equal(got, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

type mockGeocoder struct{}

func (m *mockGeocoder) Name() string { return "mock" }

func (m *mockGeocoder) Search(_ context.Context, address string) (geo.Coordinate, error) {
	if address == "Paris" {
		return geo.Coordinate{Lat: 48.8566, Lon: 2.3522}, nil
	}
	return geo.Coordinate{}, geocode.ErrNotFound
}

func (m *mockGeocoder) Reverse(context.Context, geo.Coordinate) (geocode.Address, error) {
	return geocode.Address{}, geocode.ErrNotFound
}

func TestPlaceRef(t *testing.T) {
	if id, ok := PlaceRef("place: " + testPlaceBerlin); !ok || id != testPlaceBerlin {
		t.Errorf("expected place ID %q, got %q (ok: %t)", testPlaceBerlin, id, ok)
	}
	if _, ok := PlaceRef("Paris"); ok {
		t.Error("expected plain value not to be a place reference")
	}
}

func TestClient_Locate(t *testing.T) {
	client := NewClient(&mockProvider{}, nil)
	t.Run("a place reference uses the place location", func(t *testing.T) {
		coords, err := client.Locate(t.Context(), &mockGeocoder{}, PlaceRefPrefix+testPlaceBerlin)
		if err != nil {
			t.Fatalf("failed to locate place: %s", err)
		}
		if coords != (geo.Coordinate{Lat: 52.5129, Lon: 13.3910}) {
			t.Errorf("unexpected coordinates: %s", coords)
		}
	})
	t.Run("a place without location fails", func(t *testing.T) {
		_, err := client.Locate(t.Context(), &mockGeocoder{}, PlaceRefPrefix+testPlaceNoGeo)
		if !errors.Is(err, ErrNoLocation) {
			t.Errorf("expected error to be %s, got %v", ErrNoLocation, err)
		}
	})
	t.Run("coordinates are parsed", func(t *testing.T) {
		coords, err := client.Locate(t.Context(), nil, "1.5,2.5")
		if err != nil {
			t.Fatalf("failed to locate coordinates: %s", err)
		}
		if coords != (geo.Coordinate{Lat: 1.5, Lon: 2.5}) {
			t.Errorf("unexpected coordinates: %s", coords)
		}
	})
	t.Run("addresses are geocoded", func(t *testing.T) {
		coords, err := client.Locate(t.Context(), &mockGeocoder{}, "Paris")
		if err != nil {
			t.Fatalf("failed to locate address: %s", err)
		}
		if coords != (geo.Coordinate{Lat: 48.8566, Lon: 2.3522}) {
			t.Errorf("unexpected coordinates: %s", coords)
		}
	})
	t.Run("unknown addresses fail", func(t *testing.T) {
		if _, err := client.Locate(t.Context(), &mockGeocoder{}, "Atlantis"); !errors.Is(err, geocode.ErrNotFound) {
			t.Errorf("expected error to be %s, got %v", geocode.ErrNotFound, err)
		}
	})
}

func TestStatusError_Error(t *testing.T) {
	err := &StatusError{Provider: "google", Status: "OVER_QUERY_LIMIT", Message: "quota exceeded"}
	want := "google API returned status OVER_QUERY_LIMIT: quota exceeded"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
	err.Message = ""
	if err.Error() != "google API returned status OVER_QUERY_LIMIT" {
		t.Errorf("unexpected error text without message: %q", err.Error())
	}
}
