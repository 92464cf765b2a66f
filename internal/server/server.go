// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package server exposes the places lookups as JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron/v2"

	"github.com/wneessen/placeutil/internal/config"
	"github.com/wneessen/placeutil/internal/geocode"
	"github.com/wneessen/placeutil/internal/logger"
	"github.com/wneessen/placeutil/internal/places"
)

const (
	shutdownTimeout = time.Second * 10
	readTimeout     = time.Second * 10
	purgeJobName    = "cache_purge_job"
)

// Purger is a cache that can drop its expired entries.
type Purger interface {
	Purge() int
}

// statsReporter is a Purger that also counts its hits and misses.
type statsReporter interface {
	Name() string
	Stats() places.CacheStats
}

type Server struct {
	config    *config.Config
	client    *places.Client
	geocoder  geocode.Geocoder
	logger    *logger.Logger
	purgers   []Purger
	router    *gin.Engine
	scheduler gocron.Scheduler
	typeMap   places.TypeMap
}

// New returns a Server answering requests with client. geocoder resolves addresses for the
// distance endpoint and may be nil, in which case only coordinates are accepted. The purgers
// are purged periodically while the server is running.
func New(conf *config.Config, client *places.Client, geocoder geocode.Geocoder, log *logger.Logger,
	purgers ...Purger,
) (*Server, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	server := &Server{
		config:    conf,
		client:    client,
		geocoder:  geocoder,
		logger:    log,
		purgers:   purgers,
		scheduler: scheduler,
		typeMap:   conf.TypeMap(),
	}
	server.router = server.newRouter()
	return server, nil
}

// Handler returns the HTTP handler of the API.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves the API on the configured address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	if len(s.purgers) > 0 {
		if err := s.createScheduledJob(ctx, s.config.Cache.PurgeInterval, s.purgeCaches,
			purgeJobName); err != nil {
			return err
		}
	}
	s.scheduler.Start()

	httpServer := &http.Server{
		Addr:              s.config.Server.Address,
		Handler:           s.router,
		ReadHeaderTimeout: readTimeout,
	}
	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP API server", slog.String("address", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			runErr = fmt.Errorf("failed to serve HTTP API: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	return errors.Join(runErr, httpServer.Shutdown(shutdownCtx), s.scheduler.Shutdown())
}

func (s *Server) createScheduledJob(ctx context.Context, interval time.Duration, task func(context.Context),
	jobName string,
) error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithContext(ctx),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithName(jobName),
	)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", jobName, err)
	}
	return nil
}

// purgeCaches drops the expired entries of all registered caches and logs the hit rate of
// those that keep statistics.
func (s *Server) purgeCaches(context.Context) {
	removed := 0
	for _, purger := range s.purgers {
		removed += purger.Purge()
		if reporter, ok := purger.(statsReporter); ok {
			stats := reporter.Stats()
			s.logger.Debug("cache statistics", slog.String("cache", reporter.Name()),
				slog.Uint64("hits", stats.Hits), slog.Uint64("misses", stats.Misses))
		}
	}
	s.logger.Debug("expired cache entries purged", slog.Int("removed", removed))
}
