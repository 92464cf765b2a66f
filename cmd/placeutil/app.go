// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/wneessen/placeutil/internal/config"
	"github.com/wneessen/placeutil/internal/geo"
	"github.com/wneessen/placeutil/internal/geocode"
	"github.com/wneessen/placeutil/internal/geocode/provider/geogolang"
	"github.com/wneessen/placeutil/internal/http"
	"github.com/wneessen/placeutil/internal/logger"
	"github.com/wneessen/placeutil/internal/places"
	"github.com/wneessen/placeutil/internal/places/provider/google"
	"github.com/wneessen/placeutil/internal/server"
)

type app struct {
	config *config.Config
	logger *logger.Logger
	out    *printer

	// provider and geocoder are created on first use unless set
	provider places.Provider
	geocoder geocode.Geocoder
	purgers  []server.Purger
}

type distanceResult struct {
	From       geo.Coordinate `json:"from"`
	To         geo.Coordinate `json:"to"`
	DistanceKm float64        `json:"distance_km"`
}

func newApp(conf *config.Config, log *logger.Logger, out *printer) *app {
	return &app{config: conf, logger: log, out: out}
}

func (a *app) execute(ctx context.Context, command string, args []string) error {
	switch command {
	case "suggest":
		return a.suggest(ctx, args)
	case "details":
		return a.details(ctx, args)
	case "address":
		return a.withPlaceID(args, func(client *places.Client, id string) error {
			address, err := client.Address(ctx, id)
			if err != nil {
				return err
			}
			return a.out.print(address)
		})
	case "hours":
		return a.withPlaceID(args, func(client *places.Client, id string) error {
			hours, err := client.OpeningHours(ctx, id)
			if err != nil {
				return err
			}
			return a.out.print(hours)
		})
	case "categories":
		return a.withPlaceID(args, func(client *places.Client, id string) error {
			labels, err := client.Categories(ctx, id, a.config.TypeMap())
			if err != nil {
				return err
			}
			return a.out.print(labels)
		})
	case "distance":
		return a.distance(ctx, args)
	case "reverse":
		return a.reverse(ctx, args)
	case "serve":
		return a.serve(ctx)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
}

func (a *app) suggest(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("suggest", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	types := flags.String("types", "", "comma separated suggestion categories")
	if err := flags.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if flags.NArg() < 1 {
		return fmt.Errorf("%w: suggest requires an input", errUsage)
	}
	categories, err := places.ParseSuggestCategories(*types)
	if err != nil {
		return err
	}

	client, err := a.placesClient()
	if err != nil {
		return err
	}
	predictions, err := client.Suggest(ctx, strings.Join(flags.Args(), " "), categories...)
	if err != nil {
		return err
	}
	return a.out.print(predictions)
}

func (a *app) details(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("details", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	fields := flags.String("fields", "", "comma separated place fields")
	if err := flags.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	return a.withPlaceID(flags.Args(), func(client *places.Client, id string) error {
		place, err := client.Details(ctx, id, places.SplitList(*fields)...)
		if err != nil {
			return err
		}
		return a.out.print(place)
	})
}

func (a *app) withPlaceID(args []string, fn func(*places.Client, string) error) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: exactly one place ID required", errUsage)
	}
	client, err := a.placesClient()
	if err != nil {
		return err
	}
	return fn(client, args[0])
}

func (a *app) distance(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: distance requires two locations", errUsage)
	}
	coords := make([]geo.Coordinate, 0, len(args))
	for _, arg := range args {
		point, err := a.locate(ctx, arg)
		if err != nil {
			return err
		}
		coords = append(coords, point)
	}
	return a.out.print(distanceResult{From: coords[0], To: coords[1], DistanceKm: geo.Distance(coords[0], coords[1])})
}

// locate resolves a distance argument. Place references are looked up with the places
// provider, everything else goes through geocode.Resolve.
func (a *app) locate(ctx context.Context, value string) (geo.Coordinate, error) {
	if _, ok := places.PlaceRef(value); ok {
		client, err := a.placesClient()
		if err != nil {
			return geo.Coordinate{}, err
		}
		return client.Locate(ctx, nil, value)
	}

	// coordinates resolve without a geocoder
	coder, coderErr := a.geocoderClient()
	coords, err := geocode.Resolve(ctx, coder, value)
	if err != nil && coderErr != nil {
		return geo.Coordinate{}, coderErr
	}
	return coords, err
}

func (a *app) reverse(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: reverse requires a lat,lon pair", errUsage)
	}
	coords, err := geo.ParseCoordinate(strings.Join(args, ""))
	if err != nil {
		return err
	}
	coder, err := a.geocoderClient()
	if err != nil {
		return err
	}
	address, err := coder.Reverse(ctx, coords)
	if err != nil {
		return fmt.Errorf("failed to look up address for %s: %w", coords, err)
	}
	return a.out.print(address)
}

func (a *app) serve(ctx context.Context) error {
	client, err := a.placesClient()
	if err != nil {
		return err
	}
	coder, err := a.geocoderClient()
	if err != nil {
		a.logger.Warn("geocoder unavailable, distance lookups accept coordinates and place references only",
			logger.Err(err))
		coder = nil
	}
	srv, err := server.New(a.config, client, coder, a.logger, a.purgers...)
	if err != nil {
		return fmt.Errorf("failed to initialize API server: %w", err)
	}

	a.logger.Info("starting placeutil API server", slog.String("version", version),
		slog.String("commit", commit), slog.String("date", date))
	if err = srv.Run(ctx); err != nil {
		return err
	}
	a.logger.Info("shutting down placeutil API server")
	return nil
}

// placesClient returns a Client for the configured places provider, wrapped in a cache
// unless caching is disabled.
func (a *app) placesClient() (*places.Client, error) {
	if a.provider == nil {
		httpClient := http.New(a.logger, http.WithRateLimit(a.config.RateLimit.RequestsPerSecond,
			a.config.RateLimit.Burst))
		provider, err := google.New(httpClient, a.config.Language(), a.config.Places.APIKey,
			a.config.Places.Region)
		if err != nil {
			return nil, fmt.Errorf("failed to create places provider: %w", err)
		}
		provider.SetTimeout(a.config.Places.Timeout)
		a.provider = provider
		if !a.config.Cache.Disable {
			cached := places.NewCachedProvider(provider, a.config.Cache.HitTTL, a.config.Cache.MissTTL)
			a.purgers = append(a.purgers, cached)
			a.provider = cached
		}
	}
	return places.NewClient(a.provider, a.logger), nil
}

func (a *app) geocoderClient() (geocode.Geocoder, error) {
	if a.geocoder != nil {
		return a.geocoder, nil
	}
	apikey := a.config.Geocoder.APIKey
	if apikey == "" && a.config.Geocoder.Provider == config.ProviderGoogle {
		apikey = a.config.Places.APIKey
	}
	coder, err := geogolang.New(a.config.Geocoder.Provider, apikey)
	if err != nil {
		return nil, fmt.Errorf("failed to create geocoder: %w", err)
	}
	a.geocoder = coder
	if !a.config.Cache.Disable {
		cached := geocode.NewCachedGeocoder(coder, a.config.Cache.HitTTL, a.config.Cache.MissTTL)
		a.purgers = append(a.purgers, cached)
		a.geocoder = cached
	}
	return a.geocoder, nil
}
