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

package catalog

import (
	"github.com/TagVaultProject/tagvault-core/pkg/ndef"
	"github.com/google/uuid"
)

// Record is one NDEF record on a cataloged tag. Payload is the source of
// truth: decoded text and URIs are computed from it on demand and never
// stored alongside it, so they cannot drift. Byte fields serialize as
// base64 and round-trip exactly.
type Record struct {
	ID         string   `json:"id"`
	Type       string   `json:"type"`
	Identifier []byte   `json:"identifier"`
	Payload    []byte   `json:"payload"`
	Format     ndef.TNF `json:"format"`
}

// NewRecord returns an empty record with a fresh identity, as created by
// an "add record" action before any content is written to it.
func NewRecord() Record {
	return Record{
		ID:     uuid.NewString(),
		Format: ndef.TNFEmpty,
	}
}

// RecordFromWire reconstructs a record from a scanned wire triple,
// assigning it a fresh identity.
func RecordFromWire(w ndef.Record) Record {
	var id []byte
	if w.ID != "" {
		id = []byte(w.ID)
	}
	return Record{
		ID:         uuid.NewString(),
		Format:     w.TNF,
		Type:       w.Type,
		Identifier: id,
		Payload:    w.Payload,
	}
}

// Wire returns the record as a wire triple for the radio layer.
func (r *Record) Wire() ndef.Record {
	return ndef.Record{
		TNF:     r.Format,
		Type:    r.Type,
		ID:      string(r.Identifier),
		Payload: r.Payload,
	}
}

// SetText replaces the record's content with a well-known Text record.
// Format, type and payload always change together.
func (r *Record) SetText(text, lang string) {
	r.Format = ndef.TNFWellKnown
	r.Type = ndef.TypeText
	r.Payload = ndef.EncodeText(text, lang)
}

// SetURI replaces the record's content with a well-known URI record.
func (r *Record) SetURI(uri string) {
	r.Format = ndef.TNFWellKnown
	r.Type = ndef.TypeURI
	r.Payload = ndef.EncodeURI(uri)
}

// SetMedia replaces the record's content with a media-type record carrying
// data verbatim. The payload is opaque to the catalog.
func (r *Record) SetMedia(mimeType string, data []byte) {
	r.Format = ndef.TNFMediaType
	r.Type = mimeType
	r.Payload = data
}

// Decode returns the decoded payload. Non-well-known records and records
// that fail to decode come back opaque; Decode never fails.
func (r *Record) Decode() ndef.Payload {
	return ndef.Decode(r.Wire())
}

// Display returns a human-readable rendering of the record's payload:
// decoded text or URI for well-known records, hex for everything else.
func (r *Record) Display() string {
	return r.Decode().String()
}
