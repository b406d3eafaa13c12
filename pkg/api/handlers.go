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

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/TagVaultProject/tagvault-core/pkg/catalog"
	"github.com/TagVaultProject/tagvault-core/pkg/radio"
	"github.com/TagVaultProject/tagvault-core/pkg/service"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

func handleListTags(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		tags := svc.Tags()
		views := make([]TagView, 0, len(tags))
		for _, tag := range tags {
			views = append(views, viewOf(tag))
		}
		respond(w, http.StatusOK, views)
	}
}

func handleGetTag(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tag, found := svc.GetTag(chi.URLParam(r, "id"))
		if !found {
			respondError(w, http.StatusNotFound, "tag not found")
			return
		}
		respond(w, http.StatusOK, viewOf(tag))
	}
}

func handleSaveTag(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SaveTagRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Name == "" {
			respondError(w, http.StatusBadRequest, "tag name must not be empty")
			return
		}

		var tag *catalog.Tag
		if req.ID != "" {
			existing, found := svc.GetTag(req.ID)
			if !found {
				respondError(w, http.StatusNotFound, "tag not found")
				return
			}
			tag = &existing
		} else {
			tag = catalog.NewTag("")
		}

		tag.Name = req.Name
		if req.Records != nil {
			records, err := buildRecords(req.Records)
			if err != nil {
				respondError(w, http.StatusBadRequest, err.Error())
				return
			}
			tag.Records = records
		}

		if err := svc.SaveTag(tag); err != nil {
			log.Error().Err(err).Msg("failed to save tag")
			respondError(w, http.StatusInternalServerError, "failed to save tag")
			return
		}
		respond(w, http.StatusOK, viewOf(*tag))
	}
}

func handleDeleteTag(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteTag(chi.URLParam(r, "id")); err != nil {
			log.Error().Err(err).Msg("failed to delete tag")
			respondError(w, http.StatusInternalServerError, "failed to delete tag")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleClearTags(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		if err := svc.ClearCatalog(); err != nil {
			log.Error().Err(err).Msg("failed to clear catalog")
			respondError(w, http.StatusInternalServerError, "failed to clear catalog")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleScan(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tag, err := svc.ScanTag(r.Context())
		if err != nil {
			respondRadioError(w, err)
			return
		}
		respond(w, http.StatusOK, viewOf(*tag))
	}
}

func handleWrite(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req WriteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		tag, found := svc.GetTag(req.TagID)
		if !found {
			respondError(w, http.StatusNotFound, "tag not found")
			return
		}

		if err := svc.WriteTag(r.Context(), tag.Records); err != nil {
			respondRadioError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// buildRecords converts user-composed record requests into catalog
// records.
func buildRecords(reqs []RecordRequest) ([]catalog.Record, error) {
	records := make([]catalog.Record, 0, len(reqs))
	for _, req := range reqs {
		rec := catalog.NewRecord()
		switch req.Kind {
		case "text":
			rec.SetText(req.Text, req.Lang)
		case "uri":
			rec.SetURI(req.URI)
		case "media":
			rec.SetMedia(req.MimeType, req.Data)
		default:
			return nil, errors.New("record kind must be text, uri or media")
		}
		records = append(records, rec)
	}
	return records, nil
}

// respondRadioError maps the radio error taxonomy onto HTTP statuses so
// clients can tell user cancellation from device limitations.
func respondRadioError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, radio.ErrUnavailable):
		respondError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, radio.ErrTimeout):
		respondError(w, http.StatusGatewayTimeout, err.Error())
	case errors.Is(err, radio.ErrUserCanceled):
		respondError(w, http.StatusRequestTimeout, err.Error())
	case errors.Is(err, radio.ErrNoNDEFSupport),
		errors.Is(err, radio.ErrNotWritable),
		errors.Is(err, radio.ErrNoValidRecords):
		respondError(w, http.StatusConflict, err.Error())
	default:
		log.Error().Err(err).Msg("radio operation failed")
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respond(w, status, ErrorResponse{Error: msg})
}
