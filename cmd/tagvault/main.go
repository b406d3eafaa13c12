/*
TagVault Core
Copyright (c) 2026 The TagVault Project Contributors.
SPDX-License-Identifier: GPL-3.0-or-later

This file is part of TagVault Core.

TagVault Core is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

TagVault Core is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with TagVault Core.  If not, see <http://www.gnu.org/licenses/>.
*/

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TagVaultProject/tagvault-core/pkg/api"
	"github.com/TagVaultProject/tagvault-core/pkg/catalog"
	"github.com/TagVaultProject/tagvault-core/pkg/config"
	"github.com/TagVaultProject/tagvault-core/pkg/helpers"
	"github.com/TagVaultProject/tagvault-core/pkg/service"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	daemonMode := flag.Bool(
		"daemon",
		false,
		"run service in foreground, logging to stderr",
	)
	apiPort := flag.Int(
		"port",
		0,
		"override the API listen port",
	)
	cfgPath := flag.String(
		"config",
		"",
		"path to config file",
	)
	showVersion := flag.Bool(
		"version",
		false,
		"print version and exit",
	)
	flag.Parse()

	if *showVersion {
		fmt.Println("tagvault v" + config.AppVersion)
		return nil
	}

	var logWriters []io.Writer
	if *daemonMode {
		logWriters = append(logWriters, os.Stderr)
	}
	if err := helpers.InitLogging(helpers.DataDir(), logWriters...); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	if *cfgPath != "" {
		if err := os.Setenv(config.CfgEnv, *cfgPath); err != nil {
			return fmt.Errorf("failed to set config path: %w", err)
		}
	}
	cfg, err := config.NewConfig(helpers.ConfigDir(), config.BaseDefaults)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	helpers.SetLogLevel(cfg.DebugLogging())

	defer func() {
		if r := recover(); r != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Panic: %s\n", r)
			log.Fatal().Msgf("panic: %v", r)
		}
	}()

	store, err := catalog.OpenBoltStore(helpers.CatalogPath(cfg))
	if err != nil {
		return fmt.Errorf("failed to open catalog store: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("error closing catalog store")
		}
	}()

	session := openSession(cfg)
	svc := service.New(catalog.Open(store), session,
		service.WithScanTimeout(time.Duration(cfg.ScanTimeout())*time.Second))
	defer func() {
		if closeErr := svc.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("error closing service")
		}
	}()

	port := cfg.APIPort()
	if *apiPort != 0 {
		port = *apiPort
	}

	apiErr := make(chan error, 1)
	go func() {
		apiErr <- api.Start(port, svc)
	}()
	log.Info().Int("port", port).Msg("tagvault service started")

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigs:
		log.Info().Msgf("received signal %s, shutting down", sig)
		return nil
	case err := <-apiErr:
		return fmt.Errorf("api server stopped: %w", err)
	}
}
