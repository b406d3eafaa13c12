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

func TestBuildParseMessage_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		records []Record
	}{
		{
			name: "single text record",
			records: []Record{
				{TNF: TNFWellKnown, Type: TypeText, Payload: EncodeText("hello", "en")},
			},
		},
		{
			name: "single uri record",
			records: []Record{
				{TNF: TNFWellKnown, Type: TypeURI, Payload: EncodeURI("https://www.example.com")},
			},
		},
		{
			name: "order preserved across mixed records",
			records: []Record{
				{TNF: TNFWellKnown, Type: TypeURI, Payload: EncodeURI("tel:+15550001111")},
				{TNF: TNFWellKnown, Type: TypeText, Payload: EncodeText("label", "en")},
			},
		},
		{
			name: "media record payload survives byte-for-byte",
			records: []Record{
				{
					TNF:     TNFMediaType,
					Type:    "application/octet-stream",
					Payload: []byte{0x00, 0xFF, 0x10, 0x80, 0xFE},
				},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data, err := BuildMessage(tt.records)
			require.NoError(t, err)

			// TLV framing: starts with the NDEF TLV, ends with terminator.
			require.NotEmpty(t, data)
			assert.Equal(t, byte(0x03), data[0])
			assert.Equal(t, byte(0xFE), data[len(data)-1])

			parsed, err := ParseMessage(data)
			require.NoError(t, err)
			require.Len(t, parsed, len(tt.records))

			for i, want := range tt.records {
				assert.Equal(t, want.TNF, parsed[i].TNF)
				assert.Equal(t, want.Type, parsed[i].Type)
				assert.Equal(t, want.Payload, parsed[i].Payload)
			}
		})
	}
}

func TestBuildMessage_Empty(t *testing.T) {
	t.Parallel()

	_, err := BuildMessage(nil)
	require.ErrorIs(t, err, ErrNoMessage)
}

func TestParseMessage_NoTLV(t *testing.T) {
	t.Parallel()

	_, err := ParseMessage([]byte{0x00, 0x01, 0x02})
	require.ErrorIs(t, err, ErrNoMessage)

	_, err = ParseMessage(nil)
	require.ErrorIs(t, err, ErrNoMessage)
}

func TestParseMessage_TruncatedTLV(t *testing.T) {
	t.Parallel()

	// Claims 16 bytes of payload, carries none.
	_, err := ParseMessage([]byte{0x03, 0x10})
	require.ErrorIs(t, err, ErrNoMessage)

	// Long format length with no payload behind it.
	_, err = ParseMessage([]byte{0x03, 0xFF, 0x00, 0x10})
	require.ErrorIs(t, err, ErrNoMessage)
}

func TestParseMessage_TLVAfterLeadingBytes(t *testing.T) {
	t.Parallel()

	msg, err := BuildMessage([]Record{
		{TNF: TNFWellKnown, Type: TypeText, Payload: EncodeText("offset", "en")},
	})
	require.NoError(t, err)

	// Type 2 tags commonly carry null TLVs before the NDEF TLV.
	data := append([]byte{0x00, 0x00}, msg...)

	parsed, err := ParseMessage(data)
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, TypeText, parsed[0].Type)
}

func TestTLVHeader_LongFormat(t *testing.T) {
	t.Parallel()

	payload := make([]byte, 300)
	header, err := tlvHeader(payload)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x03, 0xFF, 0x01, 0x2C}, header)

	_, err = tlvHeader(make([]byte, 0x10000))
	require.ErrorIs(t, err, ErrMessageTooLarge)
}
