// TagVault Core
// Copyright (c) 2026 The TagVault Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of TagVault Core.
//
// TagVault Core is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// TagVault Core is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with TagVault Core.  If not, see <http://www.gnu.org/licenses/>.

// Package config loads and saves the TagVault TOML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
)

const (
	SchemaVersion = 1
	CfgEnv        = "TAGVAULT_CFG"

	AppVersion = "0.1.0"

	CfgFile     = "config.toml"
	LogFile     = "tagvault.log"
	CatalogFile = "catalog.db"
	AppName     = "tagvault"
)

// Values is the on-disk configuration shape. Fields not present in the
// file keep their defaults.
type Values struct {
	Reader       Reader  `toml:"reader,omitempty"`
	Catalog      Catalog `toml:"catalog,omitempty"`
	API          API     `toml:"api,omitempty"`
	ConfigSchema int     `toml:"config_schema"`
	DebugLogging bool    `toml:"debug_logging"`
}

type API struct {
	Port int `toml:"port"`
}

type Reader struct {
	// Connection is a libnfc connection string; empty means the first
	// available device.
	Connection string `toml:"connection,omitempty"`
	// ScanTimeout bounds a single scan request, in seconds; 0 waits
	// forever.
	ScanTimeout int `toml:"scan_timeout,omitempty"`
}

type Catalog struct {
	// Path overrides the default catalog database location.
	Path string `toml:"path,omitempty"`
}

var BaseDefaults = Values{
	ConfigSchema: SchemaVersion,
	API: API{
		Port: 7511,
	},
	Reader: Reader{
		ScanTimeout: 30,
	},
}

// Instance is a live configuration bound to a file path.
type Instance struct {
	cfgPath  string
	vals     Values
	defaults Values
	mu       sync.RWMutex
}

//nolint:gocritic // config struct copied for immutability
func NewConfig(configDir string, defaults Values) (*Instance, error) {
	cfgPath := os.Getenv(CfgEnv)
	if cfgPath == "" {
		cfgPath = filepath.Join(configDir, CfgFile)
	}

	cfg := Instance{
		cfgPath:  cfgPath,
		vals:     defaults,
		defaults: defaults,
	}

	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		log.Info().Msg("saving new default config to disk")

		if err := os.MkdirAll(filepath.Dir(cfgPath), 0o750); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}
		if err := cfg.Save(); err != nil {
			return nil, err
		}
	}

	if err := cfg.Load(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Instance) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	data, err := os.ReadFile(c.cfgPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then unmarshal file values on top, so fields
	// missing from the file keep their default values.
	newVals := c.defaults
	if err := toml.Unmarshal(data, &newVals); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if newVals.ConfigSchema != SchemaVersion {
		log.Error().Msgf(
			"schema version mismatch: got %d, expecting %d",
			newVals.ConfigSchema, SchemaVersion,
		)
		return errors.New("schema version mismatch")
	}

	c.vals = newVals
	return nil
}

func (c *Instance) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	data, err := toml.Marshal(&c.vals)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(c.cfgPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (c *Instance) APIPort() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.API.Port
}

func (c *Instance) ReaderConnection() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Reader.Connection
}

func (c *Instance) ScanTimeout() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Reader.ScanTimeout
}

func (c *Instance) CatalogPath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Catalog.Path
}

func (c *Instance) SetCatalogPath(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Catalog.Path = path
}

func (c *Instance) DebugLogging() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.DebugLogging
}

func (c *Instance) SetDebugLogging(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.DebugLogging = enabled
}
