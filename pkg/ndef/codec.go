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
	"fmt"
	"unicode/utf8"
)

// DefaultLanguage is the language tag used when encoding text records
// without an explicit language code.
const DefaultLanguage = "en"

// DecodeText decodes a well-known Text record payload into its text and
// language code. The low 6 bits of the status byte give the language code
// length; the UTF-16 flag in the high bit is not interpreted and the text
// is always decoded as UTF-8. UTF-16 encoded records will fail with
// ErrInvalidEncoding, a known limitation.
func DecodeText(payload []byte) (text, lang string, err error) {
	if len(payload) == 0 {
		return "", "", fmt.Errorf("%w: empty text payload", ErrMalformedPayload)
	}

	langLen := int(payload[0] & 0x3F)
	if len(payload) < 1+langLen {
		return "", "", fmt.Errorf(
			"%w: language code length %d exceeds payload length %d",
			ErrMalformedPayload, langLen, len(payload),
		)
	}

	langBytes := payload[1 : 1+langLen]
	textBytes := payload[1+langLen:]

	if !utf8.Valid(langBytes) {
		return "", "", fmt.Errorf("%w: language code is not UTF-8", ErrInvalidEncoding)
	}
	if !utf8.Valid(textBytes) {
		return "", "", fmt.Errorf("%w: text is not UTF-8", ErrInvalidEncoding)
	}

	return string(textBytes), string(langBytes), nil
}

// EncodeText encodes text as a well-known Text record payload. An empty
// lang falls back to DefaultLanguage. The status byte is the language
// code's byte length and must stay within 6 bits: callers are expected to
// pass short language tags (ISO 639-1 style), since a tag longer than 63
// bytes would corrupt the status byte. The UTF-16 flag is never set.
func EncodeText(text, lang string) []byte {
	if lang == "" {
		lang = DefaultLanguage
	}

	payload := make([]byte, 0, 1+len(lang)+len(text))
	payload = append(payload, byte(len(lang)))
	payload = append(payload, lang...)
	payload = append(payload, text...)
	return payload
}

// DecodeURI decodes a well-known URI record payload. The first byte is the
// URI identifier code, resolved through the prefix table; out-of-range
// codes resolve to no prefix rather than failing.
func DecodeURI(payload []byte) (string, error) {
	if len(payload) == 0 {
		return "", fmt.Errorf("%w: empty URI payload", ErrMalformedPayload)
	}

	rest := payload[1:]
	if !utf8.Valid(rest) {
		return "", fmt.Errorf("%w: URI is not UTF-8", ErrInvalidEncoding)
	}

	return URIPrefix(payload[0]) + string(rest), nil
}

// EncodeURI encodes uri as a well-known URI record payload, abbreviating
// the first matching prefix from the table into the identifier code byte.
func EncodeURI(uri string) []byte {
	code, rest := SplitURIPrefix(uri)

	payload := make([]byte, 0, 1+len(rest))
	payload = append(payload, code)
	payload = append(payload, rest...)
	return payload
}

// DecodeWellKnown semantically decodes a well-known record payload by type
// name. Types other than Text and URI fail with ErrUnsupportedFormat;
// callers that want a never-fails path should use Decode instead.
func DecodeWellKnown(recordType string, payload []byte) (Payload, error) {
	switch recordType {
	case TypeText:
		text, lang, err := DecodeText(payload)
		if err != nil {
			return nil, err
		}
		return TextPayload{Text: text, Lang: lang}, nil
	case TypeURI:
		uri, err := DecodeURI(payload)
		if err != nil {
			return nil, err
		}
		return URIPayload{URI: uri}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, recordType)
	}
}
