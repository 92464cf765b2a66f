// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package main implements the placeutil command line tool and API server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/wneessen/placeutil/internal/config"
	"github.com/wneessen/placeutil/internal/logger"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var errUsage = errors.New("invalid usage")

const usage = `usage: placeutil [-config file] [-format json|table] <command> [args]

commands:
  suggest [-types cities,establishment] <input>   autocomplete suggestions
  details [-fields a,b] <place_id>                 place details
  address <place_id>                               normalized address
  hours <place_id>                                 opening hours
  categories <place_id>                            category labels
  distance <from> <to>                             distance in km between "lat,lon" pairs, addresses
                                                   or place references ("place:<place_id>")
  reverse <lat,lon>                                address at the given coordinates
  serve                                            run the HTTP API server
`

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGABRT, os.Interrupt)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, errUsage) {
			_, _ = fmt.Fprint(os.Stderr, usage)
		}
		os.Exit(1)
	}
}

// run parses args, loads the config and executes the requested command. Errors are logged
// to stderr before they are returned.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize logger
	log := logger.NewLogger(slog.LevelError, stderr)

	flags := flag.NewFlagSet("placeutil", flag.ContinueOnError)
	flags.SetOutput(stderr)
	confPath := flags.String("config", "", "path to the config file")
	format := flags.String("format", formatJSON, "output format (json or table)")
	if err := flags.Parse(args); err != nil {
		return errUsage
	}
	if flags.NArg() < 1 {
		log.Error("no command given")
		return errUsage
	}
	out, err := newPrinter(stdout, *format)
	if err != nil {
		log.Error("failed to initialize output", logger.Err(err))
		return errUsage
	}

	// Read config
	if err = config.LoadDotEnv(); err != nil {
		log.Error("failed to load environment", logger.Err(err))
		return err
	}
	conf, err := loadConfig(*confPath)
	if err != nil {
		log.Error("failed to load config", logger.Err(err))
		return err
	}
	log = logger.NewLogger(conf.LogLevel, stderr)

	app := newApp(conf, log, out)
	if err = app.execute(ctx, flags.Arg(0), flags.Args()[1:]); err != nil {
		log.Error("command failed", slog.String("command", flags.Arg(0)), logger.Err(err))
		return err
	}
	return nil
}

// loadConfig reads the config from confPath, from the default config directory or from the
// environment only, in this order.
func loadConfig(confPath string) (*config.Config, error) {
	if confPath != "" {
		return config.NewFromFile(filepath.Dir(confPath), filepath.Base(confPath))
	}
	if path, file := findConfigFile(); path != "" && file != "" {
		return config.NewFromFile(path, file)
	}
	return config.New()
}

func findConfigFile() (string, string) {
	exts := []string{"toml", "yaml", "yml", "json"}
	for _, ext := range exts {
		path := filepath.Join(config.DefaultDir(), "config."+ext)
		if _, err := os.Stat(path); err == nil {
			return filepath.Dir(path), filepath.Base(path)
		}
	}
	return "", ""
}
