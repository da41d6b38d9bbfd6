/**
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2026 attrcore contributors
 */

// Package config loads the pool-sizing knobs cmd/attrcore needs to
// construct an attrstore.Storage: how many pool nodes to start with,
// how many it may grow to, and a handful of named presets a user can
// select with --preset instead of spelling out both numbers.
//
// Defaults are built in; a TOML file at ~/.attrcore/conf.toml, if
// present, overrides them field-by-field via mergo.
package config

import (
	"io/ioutil"
	"path/filepath"

	"github.com/imdario/mergo"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/sisatech/toml"
)

// Pool is the sizing knobs for one attrstore.Storage instance.
type Pool struct {
	InitialNodes int `toml:"initial-nodes"`
	MaxNodes     int `toml:"max-nodes"`
}

// Preset is a named Pool configuration, selectable via --preset.
type Preset struct {
	Name string `toml:"name"`
	Pool Pool   `toml:"pool"`
}

// Settings is the full configuration surface for cmd/attrcore.
type Settings struct {
	Pool    Pool              `toml:"pool"`
	Presets map[string]Preset `toml:"-"`
}

// fileSettings mirrors the on-disk TOML shape; Presets there is a
// list (TOML has no convenient map-of-tables-by-key syntax), folded
// into Settings.Presets by name after unmarshaling.
type fileSettings struct {
	Pool    Pool     `toml:"pool"`
	Presets []Preset `toml:"presets"`
}

// Default returns the built-in configuration: a small starting pool
// that can grow to a generous ceiling, plus "small"/"large" presets
// for the CLI's --preset flag.
func Default() Settings {
	return Settings{
		Pool: Pool{InitialNodes: 64, MaxNodes: 1 << 16},
		Presets: map[string]Preset{
			"small": {Name: "small", Pool: Pool{InitialNodes: 8, MaxNodes: 256}},
			"large": {Name: "large", Pool: Pool{InitialNodes: 1024, MaxNodes: 1 << 20}},
		},
	}
}

// Load reads ~/.attrcore/conf.toml, if present, and overrides
// Default()'s fields with whatever it sets. A missing file is not an
// error — Default() alone is returned.
func Load() (Settings, error) {
	s := Default()

	home, err := homedir.Dir()
	if err != nil {
		return s, errors.Wrap(err, "config: resolving home directory")
	}

	path := filepath.Join(home, ".attrcore", "conf.toml")
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return s, nil
	}

	var fromFile fileSettings
	if err := toml.Unmarshal(data, &fromFile); err != nil {
		return s, errors.Wrapf(err, "config: parsing %s", path)
	}

	if err := mergo.Merge(&s.Pool, &fromFile.Pool, mergo.WithOverride); err != nil {
		return s, errors.Wrap(err, "config: merging pool settings")
	}
	for _, p := range fromFile.Presets {
		if p.Name == "" {
			continue
		}
		s.Presets[p.Name] = p
	}

	return s, nil
}

// Resolve picks the Pool settings for a CLI invocation: an explicit
// --preset name wins if known, otherwise s.Pool (Default()'s or the
// file-overridden base).
func (s Settings) Resolve(preset string) (Pool, error) {
	if preset == "" {
		return s.Pool, nil
	}
	p, ok := s.Presets[preset]
	if !ok {
		return Pool{}, errors.Errorf("config: unknown preset %q", preset)
	}
	return p.Pool, nil
}
