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

import "strings"

// uriPrefixes is the URI identifier code table from the NFC Forum URI RTD,
// indexed by code (0x00-0x23). Code 0x00 means "no prefix". The order is
// fixed by the RTD and is load-bearing for encoding: SplitURIPrefix takes
// the first match in ascending index order, so "https://www." (0x02) wins
// over "https://" (0x04) for URIs that start with both.
var uriPrefixes = []string{
	"",
	"http://www.",
	"https://www.",
	"http://",
	"https://",
	"tel:",
	"mailto:",
	"ftp://anonymous:anonymous@",
	"ftp://ftp.",
	"ftps://",
	"sftp://",
	"smb://",
	"nfs://",
	"ftp://",
	"dav://",
	"news:",
	"telnet://",
	"imap:",
	"rtsp://",
	"urn:",
	"pop:",
	"sip:",
	"sips:",
	"tftp:",
	"btspp://",
	"btl2cap://",
	"btgoep://",
	"tcpobex://",
	"irdaobex://",
	"file://",
	"urn:epc:id:",
	"urn:epc:tag:",
	"urn:epc:pat:",
	"urn:epc:raw:",
	"urn:epc:",
	"urn:nfc:",
}

// URIPrefix returns the prefix string for a URI identifier code. Codes
// outside the table resolve to the empty prefix rather than an error, per
// the RTD's guidance to treat reserved codes as "no prefix".
func URIPrefix(code byte) string {
	if int(code) >= len(uriPrefixes) {
		return ""
	}
	return uriPrefixes[code]
}

// SplitURIPrefix splits uri into a URI identifier code and the remainder
// after the matched prefix. The table is scanned in ascending code order
// and the first non-empty prefix match wins; when nothing matches the full
// uri is returned under code 0x00.
func SplitURIPrefix(uri string) (byte, string) {
	for code := 1; code < len(uriPrefixes); code++ {
		if strings.HasPrefix(uri, uriPrefixes[code]) {
			return byte(code), strings.TrimPrefix(uri, uriPrefixes[code])
		}
	}
	return 0, uri
}
