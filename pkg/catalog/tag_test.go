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
	"encoding/json"
	"testing"
	"time"

	"github.com/TagVaultProject/tagvault-core/pkg/ndef"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteStatus_JSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		json   string
		status WriteStatus
	}{
		{name: "unknown is null", json: "null", status: WriteStatusUnknown},
		{name: "writable is true", json: "true", status: WriteStatusWritable},
		{name: "read-only is false", json: "false", status: WriteStatusReadOnly},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data, err := json.Marshal(tt.status)
			require.NoError(t, err)
			assert.Equal(t, tt.json, string(data))

			var got WriteStatus
			require.NoError(t, json.Unmarshal([]byte(tt.json), &got))
			assert.Equal(t, tt.status, got)
		})
	}
}

func TestFromReported(t *testing.T) {
	t.Parallel()

	yes, no := true, false
	assert.Equal(t, WriteStatusUnknown, FromReported(nil))
	assert.Equal(t, WriteStatusWritable, FromReported(&yes))
	assert.Equal(t, WriteStatusReadOnly, FromReported(&no))
}

func TestTag_JSONFieldSet(t *testing.T) {
	t.Parallel()

	tag := NewTag("shelf")
	tag.UID = []byte{0x04, 0x7F, 0x12}
	tag.Timestamp = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	data, err := json.Marshal(tag)
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &fields))

	for _, key := range []string{
		"id", "name", "identifier", "isWritable", "memorySize",
		"records", "timestamp", "isoStandard", "tagFamily",
	} {
		assert.Contains(t, fields, key)
	}

	// Derived fields are recomputed on load, never persisted.
	for _, key := range []string{
		"manufacturer", "specification", "family",
		"serialNumber", "usedSize", "displayTime",
	} {
		assert.NotContains(t, fields, key)
	}
}

func TestTag_UIDRoundTripsExactly(t *testing.T) {
	t.Parallel()

	tag := NewTag("exact")
	tag.UID = []byte{0x00, 0xFF, 0x10, 0x80}

	data, err := json.Marshal(tag)
	require.NoError(t, err)

	var got Tag
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, tag.UID, got.UID)
}

func TestTag_ClassificationFallback(t *testing.T) {
	t.Parallel()

	tag := NewTag("desfire")
	tag.UID = []byte{0x08, 0x04}

	// No hardware report: everything is derived from the UID.
	assert.Equal(t, "NXP Semiconductors", tag.Manufacturer())
	assert.Equal(t, "ISO 14443-4", tag.Specification())
	assert.Equal(t, "MIFARE DESFire", tag.Family())

	// Hardware-reported values take precedence over the heuristic.
	tag.ISOStandard = "ISO 15693"
	tag.TagFamily = "ICODE SLIX"
	assert.Equal(t, "ISO 15693", tag.Specification())
	assert.Equal(t, "ICODE SLIX", tag.Family())
}

func TestTag_SerialNumber(t *testing.T) {
	t.Parallel()

	tag := NewTag("serial")
	assert.Empty(t, tag.SerialNumber())

	tag.UID = []byte{0x04, 0x7F, 0xAB}
	assert.Equal(t, "04:7F:AB", tag.SerialNumber())
}

func TestTag_UsedSize(t *testing.T) {
	t.Parallel()

	tag := NewTag("size")
	assert.Zero(t, tag.UsedSize())

	rec := tag.AddRecord()
	rec.SetText("hello", "en")
	assert.Positive(t, tag.UsedSize())
}

func TestTag_DisplayTime(t *testing.T) {
	t.Parallel()

	tag := NewTag("time")
	assert.Empty(t, tag.DisplayTime())

	tag.Timestamp = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.NotEmpty(t, tag.DisplayTime())
}

func TestTag_RemoveRecord(t *testing.T) {
	t.Parallel()

	tag := NewTag("records")
	a := tag.AddRecord()
	b := tag.AddRecord()
	bID := b.ID

	assert.True(t, tag.RemoveRecord(a.ID))
	assert.False(t, tag.RemoveRecord("missing"))
	require.Len(t, tag.Records, 1)
	assert.Equal(t, bID, tag.Records[0].ID)
}

func TestRecord_Mutators(t *testing.T) {
	t.Parallel()

	rec := NewRecord()
	assert.Equal(t, ndef.TNFEmpty, rec.Format)

	rec.SetText("note", "en")
	assert.Equal(t, ndef.TNFWellKnown, rec.Format)
	assert.Equal(t, ndef.TypeText, rec.Type)
	assert.Equal(t, "note", rec.Display())

	rec.SetURI("https://www.example.com")
	assert.Equal(t, ndef.TypeURI, rec.Type)
	assert.Equal(t, "https://www.example.com", rec.Display())

	rec.SetMedia("image/png", []byte{0x89, 0x50})
	assert.Equal(t, ndef.TNFMediaType, rec.Format)
	assert.Equal(t, "image/png", rec.Type)
	assert.Equal(t, "8950", rec.Display())

	// Identity is stable across content rewrites.
	assert.NotEmpty(t, rec.ID)
}

func TestRecord_WireRoundTrip(t *testing.T) {
	t.Parallel()

	wire := ndef.Record{
		TNF:     ndef.TNFExternal,
		Type:    "example.com:thing",
		ID:      "r1",
		Payload: []byte{0x01, 0x02},
	}

	rec := RecordFromWire(wire)
	assert.NotEmpty(t, rec.ID)

	back := rec.Wire()
	assert.Equal(t, wire.TNF, back.TNF)
	assert.Equal(t, wire.Type, back.Type)
	assert.Equal(t, wire.ID, back.ID)
	assert.Equal(t, wire.Payload, back.Payload)
}
