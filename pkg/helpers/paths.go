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

// Package helpers holds small shared utilities that don't belong to a
// single domain package.
package helpers

import (
	"path/filepath"

	"github.com/TagVaultProject/tagvault-core/pkg/config"
	"github.com/adrg/xdg"
)

// ConfigDir returns the directory holding the user's config file.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, config.AppName)
}

// DataDir returns the directory holding logs and the catalog database.
func DataDir() string {
	return filepath.Join(xdg.DataHome, config.AppName)
}

// CatalogPath resolves the catalog database location, preferring an
// explicit path from the config file.
func CatalogPath(cfg *config.Instance) string {
	if p := cfg.CatalogPath(); p != "" {
		return p
	}
	return filepath.Join(DataDir(), config.CatalogFile)
}
