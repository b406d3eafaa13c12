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
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	gondef "github.com/hsanjuan/go-ndef"
	"github.com/hsanjuan/go-ndef/types/generic"
)

// NDEF TLV markers for Type 2 tag memory.
var (
	ndefTLV = byte(0x03)
	ndefEnd = []byte{0xFE}
)

var (
	// ErrNoMessage is returned when no NDEF TLV is present in tag data.
	ErrNoMessage = errors.New("no NDEF message found")
	// ErrMessageTooLarge is returned when a message exceeds the two-byte
	// TLV length format.
	ErrMessageTooLarge = errors.New("NDEF message too large")
)

// BuildMessage marshals records into a complete NDEF message wrapped in a
// Type 2 tag TLV, ready to be written to tag memory.
func BuildMessage(records []Record) ([]byte, error) {
	if len(records) == 0 {
		return nil, ErrNoMessage
	}

	wire := make([]*gondef.Record, 0, len(records))
	for i := range records {
		r := &records[i]
		// go-ndef wants a RecordPayload; generic keeps the bytes as-is.
		wire = append(wire, gondef.NewRecord(byte(r.TNF), r.Type, r.ID, generic.New(r.Payload)))
	}

	msg := gondef.NewMessageFromRecords(wire...)
	payload, err := msg.Marshal()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal NDEF message: %w", err)
	}

	header, err := tlvHeader(payload)
	if err != nil {
		return nil, err
	}

	result := make([]byte, 0, len(header)+len(payload)+1)
	result = append(result, header...)
	result = append(result, payload...)
	result = append(result, ndefEnd...)
	return result, nil
}

// ParseMessage locates the NDEF TLV in raw tag memory and unmarshals the
// contained message into wire records.
func ParseMessage(data []byte) ([]Record, error) {
	payload := extractTLVPayload(data)
	if payload == nil {
		return nil, ErrNoMessage
	}

	msg := &gondef.Message{}
	if _, err := msg.Unmarshal(payload); err != nil {
		return nil, fmt.Errorf("failed to parse NDEF message: %w", err)
	}

	records := make([]Record, 0, len(msg.Records))
	for _, rec := range msg.Records {
		raw, err := recordPayloadBytes(rec)
		if err != nil {
			return nil, err
		}
		records = append(records, Record{
			TNF:     TNF(rec.TNF()),
			Type:    rec.Type(),
			ID:      rec.ID(),
			Payload: raw,
		})
	}

	return records, nil
}

// tlvHeader calculates the NDEF TLV header for a payload. Short format for
// lengths under 255; three-byte format per NFCForum-TS-Type-2-Tag_1.1
// otherwise, capped at 0xFFFF.
func tlvHeader(payload []byte) ([]byte, error) {
	length := len(payload)

	if length < 255 {
		return []byte{ndefTLV, byte(length)}, nil
	}

	if length > 0xFFFF {
		return nil, ErrMessageTooLarge
	}

	header := []byte{ndefTLV, 0xFF}
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.BigEndian, uint16(length)); err != nil {
		return nil, fmt.Errorf("failed to write NDEF length header: %w", err)
	}
	return append(header, buf.Bytes()...), nil
}

// extractTLVPayload scans data for the NDEF TLV and returns the contained
// message bytes, or nil if no complete TLV is present.
func extractTLVPayload(data []byte) []byte {
	for i := 0; i+1 < len(data); i++ {
		if data[i] != ndefTLV {
			continue
		}

		// Short format
		if data[i+1] != 0xFF {
			length := int(data[i+1])
			if i+2+length <= len(data) {
				return data[i+2 : i+2+length]
			}
			continue
		}

		// Long format
		if i+4 > len(data) {
			continue
		}
		length := int(binary.BigEndian.Uint16(data[i+2 : i+4]))
		if i+4+length <= len(data) {
			return data[i+4 : i+4+length]
		}
	}
	return nil
}

func recordPayloadBytes(rec *gondef.Record) ([]byte, error) {
	payload, err := rec.Payload()
	if err != nil {
		return nil, fmt.Errorf("failed to get NDEF record payload: %w", err)
	}
	return payload.Marshal(), nil
}
