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
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/TagVaultProject/tagvault-core/pkg/ndef"
	"github.com/TagVaultProject/tagvault-core/pkg/tagid"
	"github.com/google/uuid"
)

// WriteStatus is a tag's reported NDEF write status. The zero value means
// the status was never reported. It serializes as a nullable bool so the
// catalog blob stays compatible with readers expecting true/false/null.
type WriteStatus int

const (
	WriteStatusUnknown WriteStatus = iota
	WriteStatusWritable
	WriteStatusReadOnly
)

func (s WriteStatus) MarshalJSON() ([]byte, error) {
	switch s {
	case WriteStatusWritable:
		return []byte("true"), nil
	case WriteStatusReadOnly:
		return []byte("false"), nil
	case WriteStatusUnknown:
		return []byte("null"), nil
	default:
		return nil, fmt.Errorf("invalid write status: %d", s)
	}
}

func (s *WriteStatus) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "null":
		*s = WriteStatusUnknown
	case "true":
		*s = WriteStatusWritable
	case "false":
		*s = WriteStatusReadOnly
	default:
		return fmt.Errorf("invalid write status value: %s", data)
	}
	return nil
}

// FromReported converts a radio-layer writable flag into a WriteStatus.
func FromReported(writable *bool) WriteStatus {
	switch {
	case writable == nil:
		return WriteStatusUnknown
	case *writable:
		return WriteStatusWritable
	default:
		return WriteStatusReadOnly
	}
}

// Tag is one physical NFC tag's catalog entry. ID is the catalog key,
// assigned once at creation and never regenerated; UID holds the raw
// identifier bytes read from the tag and is immutable after a scan.
// Timestamp is owned by the catalog and set on every save.
//
// ISOStandard and TagFamily hold hardware-reported type information when
// the radio layer provides it; when empty, the equivalent values are
// derived lazily from the UID. Derived fields are never serialized.
type Tag struct {
	Timestamp   time.Time   `json:"timestamp"`
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	ISOStandard string      `json:"isoStandard"`
	TagFamily   string      `json:"tagFamily"`
	UID         []byte      `json:"identifier"`
	Records     []Record    `json:"records"`
	MemorySize  int         `json:"memorySize"`
	WriteStatus WriteStatus `json:"isWritable"`
}

// NewTag returns a freshly authored tag that has not been scanned yet: no
// UID, no records, write status unknown.
func NewTag(name string) *Tag {
	return &Tag{
		ID:      uuid.NewString(),
		Name:    name,
		Records: []Record{},
	}
}

// Manufacturer is derived from the UID. Unlike specification and family it
// has no hardware-reported counterpart, so the UID heuristic is always
// used.
func (t *Tag) Manufacturer() string {
	return tagid.Classify(t.UID).Manufacturer
}

// Specification returns the hardware-reported ISO standard when present,
// falling back to UID classification.
func (t *Tag) Specification() string {
	if t.ISOStandard != "" {
		return t.ISOStandard
	}
	return tagid.Classify(t.UID).Specification
}

// Family returns the hardware-reported tag family when present, falling
// back to UID classification.
func (t *Tag) Family() string {
	if t.TagFamily != "" {
		return t.TagFamily
	}
	return tagid.Classify(t.UID).Family
}

// SerialNumber renders the UID as colon-separated uppercase hex, or empty
// for a tag that was authored but never scanned.
func (t *Tag) SerialNumber() string {
	if len(t.UID) == 0 {
		return ""
	}
	parts := make([]string, len(t.UID))
	for i, b := range t.UID {
		parts[i] = strings.ToUpper(hex.EncodeToString([]byte{b}))
	}
	return strings.Join(parts, ":")
}

// UsedSize is the size in bytes of the tag's records encoded as a complete
// NDEF message, or 0 for a tag with no records.
func (t *Tag) UsedSize() int {
	if len(t.Records) == 0 {
		return 0
	}
	msg, err := ndef.BuildMessage(t.WireRecords())
	if err != nil {
		return 0
	}
	return len(msg)
}

// DisplayTime renders the last-saved time for lists, or empty when the tag
// was never saved.
func (t *Tag) DisplayTime() string {
	if t.Timestamp.IsZero() {
		return ""
	}
	return t.Timestamp.Local().Format("2 Jan 2006 15:04")
}

// WireRecords returns the tag's records as wire triples in catalog order,
// which is the order they are written to the physical tag.
func (t *Tag) WireRecords() []ndef.Record {
	wire := make([]ndef.Record, 0, len(t.Records))
	for i := range t.Records {
		wire = append(wire, t.Records[i].Wire())
	}
	return wire
}

// AddRecord appends an empty record and returns a pointer to it.
func (t *Tag) AddRecord() *Record {
	t.Records = append(t.Records, NewRecord())
	return &t.Records[len(t.Records)-1]
}

// RemoveRecord deletes the record with the given id, reporting whether a
// record was removed.
func (t *Tag) RemoveRecord(id string) bool {
	for i := range t.Records {
		if t.Records[i].ID == id {
			t.Records = append(t.Records[:i], t.Records[i+1:]...)
			return true
		}
	}
	return false
}

// marshalTags serializes the full catalog sequence. The persisted format
// is a single JSON array of tags; there is no incremental form.
func marshalTags(tags []Tag) ([]byte, error) {
	data, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal catalog: %w", err)
	}
	return data, nil
}

func unmarshalTags(data []byte) ([]Tag, error) {
	var tags []Tag
	if err := json.Unmarshal(data, &tags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog: %w", err)
	}
	return tags, nil
}
