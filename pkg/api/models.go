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

package api

import "github.com/TagVaultProject/tagvault-core/pkg/catalog"

// TagView is a catalog tag plus its derived fields for API consumers. The
// derived fields exist only in responses; the catalog never persists them.
type TagView struct {
	catalog.Tag
	Manufacturer  string       `json:"manufacturer"`
	Specification string       `json:"specification"`
	Family        string       `json:"family"`
	SerialNumber  string       `json:"serialNumber"`
	DisplayTime   string       `json:"displayTime"`
	RecordViews   []RecordView `json:"recordViews"`
	UsedSize      int          `json:"usedSize"`
}

// RecordView is one record's decoded display form.
type RecordView struct {
	ID      string `json:"id"`
	Display string `json:"display"`
}

func viewOf(tag catalog.Tag) TagView {
	views := make([]RecordView, 0, len(tag.Records))
	for i := range tag.Records {
		views = append(views, RecordView{
			ID:      tag.Records[i].ID,
			Display: tag.Records[i].Display(),
		})
	}
	return TagView{
		Tag:           tag,
		Manufacturer:  tag.Manufacturer(),
		Specification: tag.Specification(),
		Family:        tag.Family(),
		SerialNumber:  tag.SerialNumber(),
		UsedSize:      tag.UsedSize(),
		DisplayTime:   tag.DisplayTime(),
		RecordViews:   views,
	}
}

// SaveTagRequest creates or updates a catalog entry. With an ID it updates
// that entry's name and records; without one it authors a new tag.
type SaveTagRequest struct {
	ID      string          `json:"id,omitempty"`
	Name    string          `json:"name"`
	Records []RecordRequest `json:"records,omitempty"`
}

// RecordRequest is one user-composed record. Kind selects which content
// fields apply: "text" uses Text and Lang, "uri" uses URI, "media" uses
// MimeType and Data.
type RecordRequest struct {
	Kind     string `json:"kind"`
	Text     string `json:"text,omitempty"`
	Lang     string `json:"lang,omitempty"`
	URI      string `json:"uri,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
	Data     []byte `json:"data,omitempty"`
}

// WriteRequest writes a cataloged tag's records to a physical tag.
type WriteRequest struct {
	TagID string `json:"tagId"`
}

// ErrorResponse carries a human-readable failure description.
type ErrorResponse struct {
	Error string `json:"error"`
}
