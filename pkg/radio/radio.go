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

// Package radio defines the boundary to the physical NFC session layer.
// The catalog core consumes exactly two operations through it: scan a tag
// into raw UID bytes plus wire records, and write wire records to a
// connected tag. Drivers live in subpackages; everything above this
// interface stays hardware-free.
package radio

import (
	"context"
	"errors"
	"fmt"

	"github.com/TagVaultProject/tagvault-core/pkg/ndef"
)

// Scan errors. Messages distinguish device limitations from user actions
// so the presentation layer can choose between silent and alerting
// behavior.
var (
	// ErrUnavailable is returned when no NFC reader hardware is present
	// or it cannot be opened.
	ErrUnavailable = errors.New("NFC reader is not available")
	// ErrNoNDEFSupport is returned when a detected tag does not carry
	// readable NDEF data.
	ErrNoNDEFSupport = errors.New("tag does not support NDEF")
	// ErrUserCanceled is returned when the user canceled the session.
	ErrUserCanceled = errors.New("session canceled by user")
	// ErrTimeout is returned when no tag was presented in time.
	ErrTimeout = errors.New("timed out waiting for a tag")
)

// Write errors.
var (
	// ErrNotWritable is returned when the presented tag is read-only.
	ErrNotWritable = errors.New("tag is not writable")
	// ErrNoValidRecords is returned when a write is requested with
	// nothing encodable to write.
	ErrNoValidRecords = errors.New("no valid records to write")
	// ErrWriteFailed is returned when the tag write itself failed; the
	// wrapped detail says why.
	ErrWriteFailed = errors.New("failed to write tag")
)

// WriteFailedf wraps ErrWriteFailed with detail.
func WriteFailedf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrWriteFailed, fmt.Sprintf(format, args...))
}

// ScanResult is everything the radio layer reports about one scanned tag.
// Standard and Family are the hardware's own type detection when it has
// one; empty fields mean "not reported" and callers fall back to UID
// classification.
type ScanResult struct {
	Writable *bool
	Standard string
	Family   string
	UID      []byte
	Records  []ndef.Record
	Capacity int
}

// Session is one reader's scan/write surface. Implementations own polling,
// connection management and multi-tag arbitration; cancellation arrives
// through the context.
type Session interface {
	// Scan blocks until a tag is read or the context ends.
	Scan(ctx context.Context) (*ScanResult, error)
	// Write blocks until records are written to a presented tag or the
	// context ends. Radio errors pass through to the caller untouched.
	Write(ctx context.Context, records []ndef.Record) error
	// Close releases the reader.
	Close() error
}
