//go:build !linux || !cgo

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
	"github.com/TagVaultProject/tagvault-core/pkg/config"
	"github.com/TagVaultProject/tagvault-core/pkg/radio"
	"github.com/rs/zerolog/log"
)

// Reader hardware is only wired up on linux. Everywhere else the
// service runs catalog-only.
func openSession(_ *config.Instance) radio.Session {
	log.Warn().Msg("NFC readers are not supported on this platform, running catalog-only")
	return nil
}
