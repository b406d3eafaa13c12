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

package ndef

import (
	"testing"

	"pgregory.net/rapid"
)

// langGen generates short ASCII language tags, the only kind callers are
// allowed to encode (status byte holds 6 bits of length).
func langGen() *rapid.Generator[string] {
	chars := []rune("abcdefghijklmnopqrstuvwxyz-")
	return rapid.StringOfN(rapid.SampledFrom(chars), 0, 35, -1)
}

// TestPropertyTextRoundTrip verifies decode(encode(text, lang)) is the
// identity for any text and any short language tag.
func TestPropertyTextRoundTrip(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.String().Draw(t, "text")
		lang := langGen().Draw(t, "lang")
		if lang == "" {
			lang = DefaultLanguage
		}

		gotText, gotLang, err := DecodeText(EncodeText(text, lang))
		if err != nil {
			t.Fatalf("round trip failed for (%q, %q): %v", text, lang, err)
		}
		if gotText != text || gotLang != lang {
			t.Fatalf("round trip mismatch: (%q, %q) → (%q, %q)",
				text, lang, gotText, gotLang)
		}
	})
}

// TestPropertyURIRoundTrip verifies decode(encode(uri)) is the identity.
func TestPropertyURIRoundTrip(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		uri := rapid.String().Draw(t, "uri")

		got, err := DecodeURI(EncodeURI(uri))
		if err != nil {
			t.Fatalf("round trip failed for %q: %v", uri, err)
		}
		if got != uri {
			t.Fatalf("round trip mismatch: %q → %q", uri, got)
		}
	})
}

// TestPropertySplitURIPrefixRejoins verifies the split prefix and remainder
// always rejoin to the original URI.
func TestPropertySplitURIPrefixRejoins(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		uri := rapid.String().Draw(t, "uri")

		code, remainder := SplitURIPrefix(uri)
		if URIPrefix(code)+remainder != uri {
			t.Fatalf("split %q → (0x%02X, %q) does not rejoin", uri, code, remainder)
		}
	})
}

// TestPropertyDecodeNeverPanics drives Decode with arbitrary records; it
// must never panic and must always yield one of the three payload kinds.
func TestPropertyDecodeNeverPanics(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		rec := Record{
			TNF:     TNF(rapid.Uint8Range(0, 7).Draw(t, "tnf")),
			Type:    rapid.StringN(0, 4, -1).Draw(t, "type"),
			Payload: rapid.SliceOfN(rapid.Byte(), 0, 64).Draw(t, "payload"),
		}

		switch Decode(rec).(type) {
		case TextPayload, URIPayload, OpaquePayload:
		default:
			t.Fatalf("unexpected payload kind for %#v", rec)
		}
	})
}
