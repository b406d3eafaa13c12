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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		wantErr  error
		name     string
		wantText string
		wantLang string
		payload  []byte
	}{
		{
			name:     "simple english text",
			payload:  []byte{0x02, 'e', 'n', 'h', 'e', 'l', 'l', 'o'},
			wantText: "hello",
			wantLang: "en",
		},
		{
			name:     "empty text with language",
			payload:  []byte{0x02, 'e', 'n'},
			wantText: "",
			wantLang: "en",
		},
		{
			name:     "empty language code",
			payload:  []byte{0x00, 'h', 'i'},
			wantText: "hi",
			wantLang: "",
		},
		{
			name:     "unicode text",
			payload:  append([]byte{0x02, 'j', 'a'}, []byte("テスト")...),
			wantText: "テスト",
			wantLang: "ja",
		},
		{
			name:     "utf16 flag ignored, low bits still drive language length",
			payload:  []byte{0x82, 'e', 'n', 'h', 'i'},
			wantText: "hi",
			wantLang: "en",
		},
		{
			name:    "empty payload",
			payload: []byte{},
			wantErr: ErrMalformedPayload,
		},
		{
			name:    "language length exceeds payload",
			payload: []byte{0x3F, 'e', 'n'},
			wantErr: ErrMalformedPayload,
		},
		{
			name:    "invalid utf8 text",
			payload: []byte{0x02, 'e', 'n', 0xFF, 0xFE},
			wantErr: ErrInvalidEncoding,
		},
		{
			name:    "invalid utf8 language code",
			payload: []byte{0x02, 0xFF, 0xFE, 'h', 'i'},
			wantErr: ErrInvalidEncoding,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			text, lang, err := DecodeText(tt.payload)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantText, text)
			assert.Equal(t, tt.wantLang, lang)
		})
	}
}

func TestEncodeText(t *testing.T) {
	t.Parallel()

	payload := EncodeText("hello", "en")
	assert.Equal(t, []byte{0x02, 'e', 'n', 'h', 'e', 'l', 'l', 'o'}, payload)

	// Empty language falls back to the default, never a zero status byte
	// with trailing garbage.
	payload = EncodeText("x", "")
	assert.Equal(t, []byte{0x02, 'e', 'n', 'x'}, payload)

	// The UTF-16 flag is never set.
	assert.Zero(t, payload[0]&0x80)
}

func TestDecodeURI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		wantErr error
		name    string
		want    string
		payload []byte
	}{
		{
			name:    "https prefix",
			payload: append([]byte{0x04}, []byte("example.com")...),
			want:    "https://example.com",
		},
		{
			name:    "no prefix",
			payload: append([]byte{0x00}, []byte("zaproto://thing")...),
			want:    "zaproto://thing",
		},
		{
			name:    "out of range prefix code decodes with no prefix",
			payload: append([]byte{0xC8}, []byte("example.com")...),
			want:    "example.com",
		},
		{
			name:    "prefix only",
			payload: []byte{0x05},
			want:    "tel:",
		},
		{
			name:    "empty payload",
			payload: []byte{},
			wantErr: ErrMalformedPayload,
		},
		{
			name:    "invalid utf8",
			payload: []byte{0x04, 0xFF, 0xFE},
			wantErr: ErrInvalidEncoding,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			uri, err := DecodeURI(tt.payload)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, uri)
		})
	}
}

func TestSplitURIPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		uri           string
		wantRemainder string
		wantCode      byte
	}{
		{
			// "https://www." (0x02) is checked before "https://" (0x04):
			// first match in table order wins, not longest match.
			name:          "https www takes lower code",
			uri:           "https://www.example.com",
			wantCode:      0x02,
			wantRemainder: "example.com",
		},
		{
			name:          "plain https",
			uri:           "https://example.com",
			wantCode:      0x04,
			wantRemainder: "example.com",
		},
		{
			name:          "tel",
			uri:           "tel:+15551234567",
			wantCode:      0x05,
			wantRemainder: "+15551234567",
		},
		{
			// "urn:" (0x13) sits ahead of "urn:epc:id:" (0x1E) in the
			// table, so the shorter prefix wins.
			name:          "urn shadows urn epc id",
			uri:           "urn:epc:id:sgtin:0614141",
			wantCode:      0x13,
			wantRemainder: "epc:id:sgtin:0614141",
		},
		{
			name:          "no match",
			uri:           "zaproto://custom",
			wantCode:      0x00,
			wantRemainder: "zaproto://custom",
		},
		{
			name:          "empty uri",
			uri:           "",
			wantCode:      0x00,
			wantRemainder: "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			code, remainder := SplitURIPrefix(tt.uri)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantRemainder, remainder)
		})
	}
}

func TestURIPrefix_OutOfRange(t *testing.T) {
	t.Parallel()

	assert.Empty(t, URIPrefix(0x00))
	assert.Empty(t, URIPrefix(0x24))
	assert.Empty(t, URIPrefix(255))
	assert.Equal(t, "http://www.", URIPrefix(0x01))
	assert.Equal(t, "urn:nfc:", URIPrefix(0x23))
}

func TestDecode_Union(t *testing.T) {
	t.Parallel()

	tests := []struct {
		want   Payload
		name   string
		record Record
	}{
		{
			name: "text record",
			record: Record{
				TNF:     TNFWellKnown,
				Type:    TypeText,
				Payload: []byte{0x02, 'e', 'n', 'h', 'i'},
			},
			want: TextPayload{Text: "hi", Lang: "en"},
		},
		{
			name: "uri record",
			record: Record{
				TNF:     TNFWellKnown,
				Type:    TypeURI,
				Payload: append([]byte{0x02}, []byte("example.com")...),
			},
			want: URIPayload{URI: "https://www.example.com"},
		},
		{
			name: "media record stays opaque",
			record: Record{
				TNF:     TNFMediaType,
				Type:    "text/plain",
				Payload: []byte("not decoded"),
			},
			want: OpaquePayload{Raw: []byte("not decoded")},
		},
		{
			name: "unknown well-known type stays opaque",
			record: Record{
				TNF:     TNFWellKnown,
				Type:    "Sp",
				Payload: []byte{0x01, 0x02},
			},
			want: OpaquePayload{Raw: []byte{0x01, 0x02}},
		},
		{
			name: "undecodable text surfaces raw, not dropped",
			record: Record{
				TNF:     TNFWellKnown,
				Type:    TypeText,
				Payload: []byte{0x3F, 'e', 'n'},
			},
			want: OpaquePayload{Raw: []byte{0x3F, 'e', 'n'}},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Decode(tt.record))
		})
	}
}

func TestDecodeWellKnown_Unsupported(t *testing.T) {
	t.Parallel()

	_, err := DecodeWellKnown("Sp", []byte{0x01})
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}
