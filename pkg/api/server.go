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

// Package api exposes the tag catalog and reader operations over HTTP,
// with a WebSocket stream for change notifications.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/TagVaultProject/tagvault-core/pkg/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/olahol/melody"
	"github.com/rs/zerolog/log"
)

const requestTimeout = 60 * time.Second

// Router builds the HTTP handler over svc. Split from Start so tests can
// drive it with httptest.
func Router(svc *service.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.NoCache)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{"GET", "POST", "DELETE"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	ws := melody.New()
	ws.Upgrader.CheckOrigin = func(_ *http.Request) bool { return true }
	go broadcastNotifications(ws, svc.Notifications())

	r.Get("/api/ws", func(w http.ResponseWriter, r *http.Request) {
		if err := ws.HandleRequest(w, r); err != nil {
			log.Error().Err(err).Msg("handling websocket request")
		}
	})

	r.Route("/api/tags", func(r chi.Router) {
		r.Get("/", handleListTags(svc))
		r.Post("/", handleSaveTag(svc))
		r.Delete("/", handleClearTags(svc))
		r.Get("/{id}", handleGetTag(svc))
		r.Delete("/{id}", handleDeleteTag(svc))
	})
	r.Post("/api/scan", handleScan(svc))
	r.Post("/api/write", handleWrite(svc))

	return r
}

// Start serves the API on port, blocking until the listener fails.
func Start(port int, svc *service.Service) error {
	log.Info().Int("port", port).Msg("starting API server")
	//nolint:gosec // timeouts are set by the router middleware
	return http.ListenAndServe(":"+strconv.Itoa(port), Router(svc))
}

// broadcastNotifications fans service events out to every connected
// WebSocket client.
func broadcastNotifications(ws *melody.Melody, notifs <-chan service.Notification) {
	for n := range notifs {
		data, err := json.Marshal(n)
		if err != nil {
			log.Error().Err(err).Str("method", n.Method).Msg("failed to marshal notification")
			continue
		}
		if err := ws.Broadcast(data); err != nil {
			log.Error().Err(err).Msg("failed to broadcast notification")
		}
	}
}
