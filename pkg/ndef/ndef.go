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

// Package ndef implements encoding and decoding of NDEF records for the
// NFC Forum Text and URI well-known types. Records of any other type are
// carried through as opaque payloads.
package ndef

import (
	"encoding/hex"
	"errors"
)

// TNF is an NDEF Type Name Format field. Values are fixed by the NDEF
// specification (3 bits, 0-6; 7 is reserved).
type TNF uint8

const (
	TNFEmpty TNF = iota
	TNFWellKnown
	TNFMediaType
	TNFAbsoluteURI
	TNFExternal
	TNFUnknown
	TNFUnchanged
)

// Well-known record type names.
const (
	TypeText = "T"
	TypeURI  = "U"
)

var (
	// ErrMalformedPayload is returned when a payload is structurally too
	// short or its length fields are inconsistent.
	ErrMalformedPayload = errors.New("malformed NDEF payload")
	// ErrInvalidEncoding is returned when payload bytes are not valid UTF-8
	// where text is expected.
	ErrInvalidEncoding = errors.New("invalid text encoding in NDEF payload")
	// ErrUnsupportedFormat is returned when semantic decoding is requested
	// for a record type other than Text or URI.
	ErrUnsupportedFormat = errors.New("unsupported NDEF record format")
)

// Record is a single wire-level NDEF record triple as exchanged with the
// radio layer: type name format, type, optional identifier and raw payload.
type Record struct {
	Type    string
	ID      string
	Payload []byte
	TNF     TNF
}

// Payload is the decoded form of a record payload. It is a closed union:
// TextPayload, URIPayload or OpaquePayload. Opaque is the catch-all for
// every record that is not a well-known Text or URI record, or that failed
// to decode, carrying the raw bytes for lossless round-tripping.
type Payload interface {
	// String returns a human-readable rendering of the payload.
	String() string
	isPayload()
}

// TextPayload is a decoded well-known Text record.
type TextPayload struct {
	Text string
	Lang string
}

func (TextPayload) isPayload() {}

func (p TextPayload) String() string { return p.Text }

// URIPayload is a decoded well-known URI record.
type URIPayload struct {
	URI string
}

func (URIPayload) isPayload() {}

func (p URIPayload) String() string { return p.URI }

// OpaquePayload carries raw bytes for records this package does not
// semantically decode.
type OpaquePayload struct {
	Raw []byte
}

func (OpaquePayload) isPayload() {}

func (p OpaquePayload) String() string { return hex.EncodeToString(p.Raw) }

// Decode returns the decoded payload of r. Text and URI well-known records
// are decoded semantically; everything else, including well-known records
// that fail to decode, comes back as an OpaquePayload. Decode never fails:
// a record that cannot be decoded is surfaced raw rather than dropped, so a
// bad record never hides its siblings.
func Decode(r Record) Payload {
	if r.TNF != TNFWellKnown {
		return OpaquePayload{Raw: r.Payload}
	}

	switch r.Type {
	case TypeText:
		text, lang, err := DecodeText(r.Payload)
		if err != nil {
			return OpaquePayload{Raw: r.Payload}
		}
		return TextPayload{Text: text, Lang: lang}
	case TypeURI:
		uri, err := DecodeURI(r.Payload)
		if err != nil {
			return OpaquePayload{Raw: r.Payload}
		}
		return URIPayload{URI: uri}
	default:
		return OpaquePayload{Raw: r.Payload}
	}
}
