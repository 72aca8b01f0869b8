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

// Package config reads the configuration of the sketchpad command.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net"
	"strings"

	"github.com/BurntSushi/toml"

	"seehuhn.de/go/sketchpad/curve"
	"seehuhn.de/go/sketchpad/export"
)

// Config holds all settings of the sketchpad command.
type Config struct {
	// Listen is the TCP address of the HTTP server.
	Listen string `toml:"listen"`

	// LogLevel is one of "debug", "info", "warn" or "error".
	LogLevel string `toml:"log_level"`

	// Advertise enables mDNS advertisement on the local network.
	Advertise bool `toml:"advertise"`

	// Instance is the mDNS instance name.
	Instance string `toml:"instance"`

	Canvas Canvas `toml:"canvas"`
	Stroke Stroke `toml:"stroke"`
	Export Export `toml:"export"`
}

// Canvas describes the drawing area, in canvas units.
type Canvas struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// Stroke holds the smoothing parameters.
type Stroke struct {
	Width      float64 `toml:"width"`
	Smoothness float64 `toml:"smoothness"`
}

// Export configures image export.
type Export struct {
	Dir            string `toml:"dir"`
	Format         string `toml:"format"`
	IncludeCurrent bool   `toml:"include_current"`

	// MaxPixels limits the width×height of exported images.
	MaxPixels int64 `toml:"max_pixels"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Listen:   "localhost:8080",
		LogLevel: "info",
		Instance: "sketchpad",
		Canvas:   Canvas{Width: 1080, Height: 1920},
		Stroke:   Stroke{Width: curve.DefaultWidth, Smoothness: curve.DefaultSmoothness},
		Export:   Export{
			Dir:       "exports",
			Format:    string(export.PNG),
			MaxPixels: export.DefaultMaxPixels,
		},
	}
}

// Load reads a TOML file on top of the defaults. Unknown keys are an
// error.
func Load(path string) (*Config, error) {
	c := Default()
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	var errs []error
	if _, _, err := net.SplitHostPort(c.Listen); err != nil {
		errs = append(errs, fmt.Errorf("listen: %w", err))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if c.Advertise && c.Instance == "" {
		errs = append(errs, errors.New("instance: must not be empty when advertising"))
	}
	if !positive(c.Canvas.Width) || !positive(c.Canvas.Height) {
		errs = append(errs, fmt.Errorf("canvas: invalid size %gx%g", c.Canvas.Width, c.Canvas.Height))
	}
	if !positive(c.Stroke.Width) {
		errs = append(errs, fmt.Errorf("stroke.width: must be positive, got %g", c.Stroke.Width))
	}
	if !(c.Stroke.Smoothness >= 0) || math.IsInf(c.Stroke.Smoothness, 0) {
		errs = append(errs, fmt.Errorf("stroke.smoothness: must be non-negative, got %g", c.Stroke.Smoothness))
	}
	if c.Export.Dir == "" {
		errs = append(errs, errors.New("export.dir: must not be empty"))
	}
	if c.Export.MaxPixels <= 0 {
		errs = append(errs, fmt.Errorf("export.max_pixels: must be positive, got %d", c.Export.MaxPixels))
	}
	if _, err := export.ParseFormat(c.Export.Format); err != nil {
		errs = append(errs, fmt.Errorf("export.format: %w", err))
	}
	return errors.Join(errs...)
}

func positive(x float64) bool {
	return x > 0 && !math.IsInf(x, 0)
}

// Level returns the log level as a slog.Level.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}

// Style returns the stroke style.
func (c *Config) Style() curve.Style {
	return curve.Style{Width: c.Stroke.Width, Smoothness: c.Stroke.Smoothness}
}

// Format returns the export format. It must only be called on a valid
// configuration.
func (c *Config) Format() export.Format {
	f, _ := export.ParseFormat(c.Export.Format)
	return f
}
