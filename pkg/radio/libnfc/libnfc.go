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

//go:build linux && cgo

// Package libnfc is a radio.Session driver for libnfc-compatible readers.
// NDEF read/write is implemented for Type 2 (Ultralight/NTAG) tags;
// MIFARE Classic and DESFire tags are detected and classified but their
// protected memory is not read, since sector authentication is out of
// scope.
package libnfc

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/TagVaultProject/tagvault-core/pkg/ndef"
	"github.com/TagVaultProject/tagvault-core/pkg/radio"
	"github.com/clausecker/freefare"
	"github.com/clausecker/nfc/v2"
	"github.com/rs/zerolog/log"
)

const (
	connectMaxTries = 3
	pollInterval    = 250 * time.Millisecond

	// Type 2 tag memory layout
	ccPage        = 3
	userStartPage = 4
	pageSize      = 4
)

// Driver drives a single libnfc reader. A zero connection string opens the
// first available device.
type Driver struct {
	pnd  nfc.Device
	conn string
	mu   sync.Mutex
}

// Open connects to a libnfc device, retrying a few times since readers
// commonly need a moment after enumeration.
func Open(conn string) (*Driver, error) {
	var pnd nfc.Device
	var err error

	for tries := 0; tries < connectMaxTries; tries++ {
		pnd, err = nfc.Open(conn)
		if err == nil {
			break
		}
		time.Sleep(pollInterval)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s", radio.ErrUnavailable, err)
	}

	if err := pnd.InitiatorInit(); err != nil {
		closeErr := pnd.Close()
		if closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing device after failed init")
		}
		return nil, fmt.Errorf("%w: could not init initiator: %s", radio.ErrUnavailable, err)
	}

	log.Info().Str("device", pnd.String()).Msg("opened NFC reader")
	return &Driver{pnd: pnd, conn: conn}, nil
}

func (d *Driver) Close() error {
	if err := d.pnd.Close(); err != nil {
		return fmt.Errorf("failed to close NFC device: %w", err)
	}
	return nil
}

// Scan polls until a tag is presented or the context ends.
func (d *Driver) Scan(ctx context.Context) (*radio.ScanResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for {
		if err := ctx.Err(); err != nil {
			return nil, sessionErr(err)
		}

		tags, err := freefare.GetTags(d.pnd)
		if err != nil {
			if errors.Is(err, nfc.Error(nfc.EIO)) {
				return nil, fmt.Errorf("%w: %s", radio.ErrUnavailable, err)
			}
			log.Debug().Err(err).Msg("error polling for tags")
		}

		if len(tags) == 0 {
			time.Sleep(pollInterval)
			continue
		}
		if len(tags) > 1 {
			log.Info().Int("count", len(tags)).Msg("more than one tag on the reader, using first")
		}

		return d.readTag(tags[0])
	}
}

// Write polls for a Type 2 tag and writes records to it as a single NDEF
// message.
func (d *Driver) Write(ctx context.Context, records []ndef.Record) error {
	if len(records) == 0 {
		return radio.ErrNoValidRecords
	}

	msg, err := ndef.BuildMessage(records)
	if err != nil {
		return fmt.Errorf("%w: %s", radio.ErrNoValidRecords, err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	for {
		if err := ctx.Err(); err != nil {
			return sessionErr(err)
		}

		tags, err := freefare.GetTags(d.pnd)
		if err != nil {
			log.Debug().Err(err).Msg("error polling for tags")
		}
		if len(tags) == 0 {
			time.Sleep(pollInterval)
			continue
		}

		ul, ok := tags[0].(freefare.UltralightTag)
		if !ok {
			return fmt.Errorf("%w: %s tags are not supported for writing",
				radio.ErrNotWritable, familyName(tags[0]))
		}

		return writeType2(ul, msg)
	}
}

func (d *Driver) readTag(tag freefare.Tag) (*radio.ScanResult, error) {
	uid, err := hex.DecodeString(strings.TrimSpace(tag.UID()))
	if err != nil {
		log.Warn().Err(err).Str("uid", tag.UID()).Msg("undecodable tag UID")
	}

	result := &radio.ScanResult{
		UID:      uid,
		Standard: standardName(tag),
		Family:   familyName(tag),
	}

	ul, ok := tag.(freefare.UltralightTag)
	if !ok {
		// Classified but unread: protected memory needs vendor commands.
		log.Debug().Str("family", result.Family).Msg("tag detected without Type 2 NDEF area")
		return result, nil
	}

	if err := ul.Connect(); err != nil {
		return nil, fmt.Errorf("could not connect to tag: %w", err)
	}
	defer func() {
		if err := ul.Disconnect(); err != nil {
			log.Warn().Err(err).Msg("error disconnecting tag")
		}
	}()

	cc, err := ul.ReadPage(ccPage)
	if err != nil {
		return nil, fmt.Errorf("%w: could not read capability container: %s",
			radio.ErrNoNDEFSupport, err)
	}
	if cc[0] != 0xE1 {
		return result, fmt.Errorf("%w: capability container missing", radio.ErrNoNDEFSupport)
	}

	result.Capacity = int(cc[2]) * 8
	writable := cc[3]&0x0F == 0
	result.Writable = &writable

	data := readUserPages(ul, result.Capacity)
	records, err := ndef.ParseMessage(data)
	if err != nil {
		// An empty or unformatted NDEF area is still a valid scan.
		log.Debug().Err(err).Msg("no NDEF message on tag")
		return result, nil
	}

	result.Records = records
	return result, nil
}

func readUserPages(ul freefare.UltralightTag, capacity int) []byte {
	pages := capacity / pageSize
	data := make([]byte, 0, capacity)
	for page := 0; page < pages; page++ {
		chunk, err := ul.ReadPage(byte(userStartPage + page))
		if err != nil {
			log.Debug().Err(err).Int("page", userStartPage+page).Msg("stopping read at bad page")
			break
		}
		data = append(data, chunk[:]...)
	}
	return data
}

func writeType2(ul freefare.UltralightTag, msg []byte) error {
	if err := ul.Connect(); err != nil {
		return radio.WriteFailedf("could not connect to tag: %s", err)
	}
	defer func() {
		if err := ul.Disconnect(); err != nil {
			log.Warn().Err(err).Msg("error disconnecting tag")
		}
	}()

	cc, err := ul.ReadPage(ccPage)
	if err != nil {
		return radio.WriteFailedf("could not read capability container: %s", err)
	}
	if cc[0] != 0xE1 {
		return fmt.Errorf("%w: tag has no NDEF capability container", radio.ErrNotWritable)
	}
	if cc[3]&0x0F != 0 {
		return radio.ErrNotWritable
	}
	if len(msg) > int(cc[2])*8 {
		return radio.WriteFailedf("message is %d bytes, tag holds %d", len(msg), int(cc[2])*8)
	}

	for offset := 0; offset < len(msg); offset += pageSize {
		var page [pageSize]byte
		copy(page[:], msg[offset:])

		pageNum := byte(userStartPage + offset/pageSize)
		if err := ul.WritePage(pageNum, page); err != nil {
			return radio.WriteFailedf("page %d: %s", pageNum, err)
		}
	}

	log.Info().Int("bytes", len(msg)).Msg("wrote NDEF message to tag")
	return nil
}

func familyName(tag freefare.Tag) string {
	switch tag.Type() {
	case freefare.Ultralight:
		return "MIFARE Ultralight"
	case freefare.UltralightC:
		return "MIFARE Ultralight C"
	case freefare.Classic1k:
		return "MIFARE Classic 1K"
	case freefare.Classic4k:
		return "MIFARE Classic 4K"
	case freefare.DESFire:
		return "MIFARE DESFire"
	default:
		return ""
	}
}

func standardName(tag freefare.Tag) string {
	switch tag.Type() {
	case freefare.Ultralight, freefare.UltralightC, freefare.Classic1k, freefare.Classic4k:
		return "ISO 14443-3"
	case freefare.DESFire:
		return "ISO 14443-4"
	default:
		return ""
	}
}

// sessionErr maps a context error to the session taxonomy: cancellation is
// a user action, deadline is a timeout.
func sessionErr(err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return radio.ErrUserCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return radio.ErrTimeout
	default:
		return err
	}
}
