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

// Package service assembles scans into catalog tags and catalog records
// into tag writes. Radio errors pass through it untouched; codec failures
// on individual records degrade that record to opaque instead of failing
// the scan.
package service

import (
	"context"
	"time"

	"github.com/TagVaultProject/tagvault-core/pkg/catalog"
	"github.com/TagVaultProject/tagvault-core/pkg/ndef"
	"github.com/TagVaultProject/tagvault-core/pkg/radio"
	"github.com/rs/zerolog/log"
)

// Notification methods emitted to API listeners.
const (
	NotificationTagSaved   = "tags.saved"
	NotificationTagDeleted = "tags.deleted"
	NotificationCleared    = "tags.cleared"
	NotificationScanned    = "readers.scanned"
)

// Notification is one event for the API layer's broadcast channel.
type Notification struct {
	Params any    `json:"params,omitempty"`
	Method string `json:"method"`
}

// Service owns the catalog and an optional radio session.
type Service struct {
	catalog     *catalog.Catalog
	session     radio.Session
	notifs      chan Notification
	scanTimeout time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithScanTimeout bounds each scan and write request. Zero waits until
// the caller's context ends.
func WithScanTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.scanTimeout = d
	}
}

// New returns a service over cat. session may be nil when no reader is
// attached; scan and write then fail with radio.ErrUnavailable.
func New(cat *catalog.Catalog, session radio.Session, opts ...Option) *Service {
	s := &Service{
		catalog: cat,
		session: session,
		notifs:  make(chan Notification, 16),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Notifications returns the event stream for API broadcast.
func (s *Service) Notifications() <-chan Notification {
	return s.notifs
}

// ScanTag reads one tag through the radio session and assembles it into a
// catalog tag. The tag is not saved; that is an explicit user action.
func (s *Service) ScanTag(ctx context.Context) (*catalog.Tag, error) {
	if s.session == nil {
		return nil, radio.ErrUnavailable
	}

	ctx, cancel := s.sessionContext(ctx)
	defer cancel()

	result, err := s.session.Scan(ctx)
	if err != nil {
		// Radio errors reach the caller untouched so the presentation
		// layer can distinguish cancellation from hardware trouble.
		return nil, err
	}

	tag := assembleTag(result)
	log.Info().
		Str("serial", tag.SerialNumber()).
		Int("records", len(tag.Records)).
		Msg("scanned tag")

	s.notify(Notification{Method: NotificationScanned, Params: tag})
	return tag, nil
}

// WriteTag writes records to a presented tag. Records that carry no
// writable content are filtered out first; if nothing remains the session
// is never touched.
func (s *Service) WriteTag(ctx context.Context, records []catalog.Record) error {
	if s.session == nil {
		return radio.ErrUnavailable
	}

	wire := make([]ndef.Record, 0, len(records))
	for i := range records {
		if records[i].Format == ndef.TNFEmpty && len(records[i].Payload) == 0 {
			continue
		}
		wire = append(wire, records[i].Wire())
	}
	if len(wire) == 0 {
		return radio.ErrNoValidRecords
	}

	ctx, cancel := s.sessionContext(ctx)
	defer cancel()

	if err := s.session.Write(ctx, wire); err != nil {
		return err
	}

	log.Info().Int("records", len(wire)).Msg("wrote records to tag")
	return nil
}

// SaveTag persists tag through the catalog.
func (s *Service) SaveTag(tag *catalog.Tag) error {
	if err := s.catalog.Save(tag); err != nil {
		return err
	}
	s.notify(Notification{Method: NotificationTagSaved, Params: tag})
	return nil
}

// DeleteTag removes a tag from the catalog.
func (s *Service) DeleteTag(id string) error {
	if err := s.catalog.Delete(id); err != nil {
		return err
	}
	s.notify(Notification{Method: NotificationTagDeleted, Params: id})
	return nil
}

// ClearCatalog empties the catalog.
func (s *Service) ClearCatalog() error {
	if err := s.catalog.Clear(); err != nil {
		return err
	}
	s.notify(Notification{Method: NotificationCleared})
	return nil
}

// Tags returns the cataloged tags in order.
func (s *Service) Tags() []catalog.Tag {
	return s.catalog.All()
}

// GetTag returns one cataloged tag by id.
func (s *Service) GetTag(id string) (catalog.Tag, bool) {
	return s.catalog.Get(id)
}

// Close releases the radio session, if any.
func (s *Service) Close() error {
	if s.session == nil {
		return nil
	}
	return s.session.Close()
}

func (s *Service) sessionContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.scanTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.scanTimeout)
}

// notify never blocks: a slow or absent listener drops events rather than
// stalling a mutation.
func (s *Service) notify(n Notification) {
	select {
	case s.notifs <- n:
	default:
		log.Debug().Str("method", n.Method).Msg("dropping notification, no listener")
	}
}

// assembleTag builds a catalog tag from a scan. Hardware-reported standard
// and family are stored as authoritative; when the hardware reported
// nothing the catalog derives them from the UID on demand. Each record is
// reconstructed independently, so one undecodable record never hides the
// rest.
func assembleTag(result *radio.ScanResult) *catalog.Tag {
	tag := catalog.NewTag("")
	tag.UID = result.UID
	tag.WriteStatus = catalog.FromReported(result.Writable)
	tag.MemorySize = result.Capacity
	tag.ISOStandard = result.Standard
	tag.TagFamily = result.Family

	for _, rec := range result.Records {
		tag.Records = append(tag.Records, catalog.RecordFromWire(rec))
	}
	return tag
}
