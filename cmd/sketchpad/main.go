// seehuhn.de/go/sketchpad - a freehand drawing surface
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Command sketchpad serves freehand drawing sessions to a browser or other
// websocket client, and stores exported drawings in a directory.
//
// Usage:
//
//	sketchpad [-config file.toml] [-listen addr] [-log-level level]
//	          [-export-dir dir] [-advertise]
//
// Flags which are given on the command line override the values from the
// configuration file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/mdns"
	"golang.org/x/sync/errgroup"

	"seehuhn.de/go/sketchpad"
	"seehuhn.de/go/sketchpad/export"
	"seehuhn.de/go/sketchpad/internal/config"
	"seehuhn.de/go/sketchpad/server"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "sketchpad:", err)
		os.Exit(1)
	}
}

func run() error {
	configFile := flag.String("config", "", "read settings from this TOML `file`")
	listen := flag.String("listen", "", "listen on this TCP `address`")
	logLevel := flag.String("log-level", "", "log `level` (debug, info, warn, error)")
	exportDir := flag.String("export-dir", "", "store exported drawings in `dir`")
	advertise := flag.Bool("advertise", false, "announce the server via mDNS")
	flag.Parse()

	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			return err
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "listen":
			cfg.Listen = *listen
		case "log-level":
			cfg.LogLevel = *logLevel
		case "export-dir":
			cfg.Export.Dir = *exportDir
		case "advertise":
			cfg.Advertise = *advertise
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	sketchpad.SetLogger(logger)

	store, err := export.NewDirStore(cfg.Export.Dir)
	if err != nil {
		return err
	}
	exp := export.New(store)
	exp.Style = cfg.Style()
	exp.MaxPixels = cfg.Export.MaxPixels

	hub := server.NewHub(server.Options{
		Exporter:       exp,
		Downloads:      store,
		CanvasWidth:    cfg.Canvas.Width,
		CanvasHeight:   cfg.Canvas.Height,
		Format:         cfg.Format(),
		IncludeCurrent: cfg.Export.IncludeCurrent,
	})

	ln, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		return err
	}
	var responder *mdns.Server
	if cfg.Advertise {
		port := ln.Addr().(*net.TCPAddr).Port
		responder, err = server.Advertise(cfg.Instance, port)
		if err != nil {
			ln.Close()
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Handler:           hub.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening",
			"addr", ln.Addr().String(),
			"exports", store.Dir(),
			"advertise", cfg.Advertise)
		err := srv.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", "sessions", hub.Sessions())

		if responder != nil {
			if err := responder.Shutdown(); err != nil {
				logger.Warn("stopping mDNS responder", "error", err)
			}
		}
		hub.Close()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := srv.Shutdown(sctx)
		hub.Wait()
		return err
	})
	return g.Wait()
}
