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

// Package tagid infers an NFC tag's manufacturer, ISO specification and
// tag family from its UID bytes. The inference is a heuristic fallback:
// when the radio layer reports explicit tag-type information, that value
// is authoritative and this package is not consulted.
package tagid

import "fmt"

// Common field values.
const (
	SpecISO14443A  = "ISO 14443-A"
	SpecISO14443x3 = "ISO 14443-3"
	SpecISO14443x4 = "ISO 14443-4"
	SpecISO18092   = "ISO 18092"
	SpecUnknown    = "Unknown"

	FamilyMifareClassic = "MIFARE Classic"
	FamilyMifareDESFire = "MIFARE DESFire"
	FamilyFudanFM11RF08 = "Fudan FM11RF08"
	FamilyFeliCa        = "FeliCa"
)

// Classification is the inferred identity of a tag.
type Classification struct {
	Manufacturer  string
	Specification string
	Family        string
}

type classifier struct {
	classify  func(uid []byte) Classification
	firstByte byte
}

// classifiers is evaluated in order; the two-byte matchers for 0x08 and
// 0x1D must stay ahead of the generic one-byte vendor entries so they are
// never shadowed. Do not reorder.
var classifiers = []classifier{
	{firstByte: 0x08, classify: classifyNXPMifare},
	{firstByte: 0x1D, classify: classifyFudan},
	{firstByte: 0xFE, classify: classifyFeliCa},
	{firstByte: 0x04, classify: iso14443aVendor("NXP Semiconductors")},
	{firstByte: 0x05, classify: iso14443aVendor("Infineon Technologies")},
	{firstByte: 0x07, classify: iso14443aVendor("Texas Instruments")},
	{firstByte: 0x28, classify: iso14443aVendor("LEGIC")},
	{firstByte: 0x38, classify: iso14443aVendor("Nationz Technologies")},
	{firstByte: 0x01, classify: iso14443aVendor("Motorola")},
	{firstByte: 0x02, classify: iso14443aVendor("STMicroelectronics")},
	{firstByte: 0x03, classify: iso14443aVendor("Hitachi")},
	{firstByte: 0x20, classify: iso14443aVendor("EM Microelectronic")},
	{firstByte: 0x88, classify: iso14443aVendor("Infineon Technologies (licensed)")},
	{firstByte: 0xD0, classify: iso14443aVendor("Gemalto")},
}

// Classify infers manufacturer, specification and family from uid. A UID
// shorter than two bytes yields Unknown fields; an unrecognized first byte
// yields an Unknown manufacturer annotated with the byte in hex. Classify
// never fails.
func Classify(uid []byte) Classification {
	if len(uid) < 2 {
		return Classification{
			Manufacturer:  SpecUnknown,
			Specification: SpecUnknown,
		}
	}

	for _, c := range classifiers {
		if uid[0] == c.firstByte {
			return c.classify(uid)
		}
	}

	return Classification{
		Manufacturer:  fmt.Sprintf("Unknown (0x%02X)", uid[0]),
		Specification: SpecUnknown,
	}
}

// 0x08 UIDs are NXP MIFARE: the second byte distinguishes DESFire from
// Classic parts.
func classifyNXPMifare(uid []byte) Classification {
	if uid[1] == 0x04 {
		return Classification{
			Manufacturer:  "NXP Semiconductors",
			Specification: SpecISO14443x4,
			Family:        FamilyMifareDESFire,
		}
	}
	return Classification{
		Manufacturer:  "NXP Semiconductors",
		Specification: SpecISO14443x3,
		Family:        FamilyMifareClassic,
	}
}

func classifyFudan(uid []byte) Classification {
	c := Classification{
		Manufacturer:  "Shanghai Fudan Microelectronics",
		Specification: SpecISO14443x4,
	}
	if uid[1] == 0x3C {
		c.Family = FamilyFudanFM11RF08
	}
	return c
}

func classifyFeliCa([]byte) Classification {
	return Classification{
		Manufacturer:  "Sony FeliCa",
		Specification: SpecISO18092,
		Family:        FamilyFeliCa,
	}
}

func iso14443aVendor(name string) func([]byte) Classification {
	return func([]byte) Classification {
		return Classification{
			Manufacturer:  name,
			Specification: SpecISO14443A,
		}
	}
}
