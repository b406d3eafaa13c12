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

// Package catalog persists a local collection of scanned or authored NFC
// tags as a single JSON blob behind an injected key-value store.
package catalog

import (
	"errors"
	"fmt"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// ErrPersistence is returned when the backing store fails to load or save
// the catalog blob. Store failures surface to the caller; they are never
// silently dropped.
var ErrPersistence = errors.New("catalog persistence failure")

// Store is the key-value blob store behind a catalog. Load returns nil
// data when nothing has been stored yet.
type Store interface {
	Load() ([]byte, error)
	Save([]byte) error
}

// Catalog is an in-memory, persisted sequence of tags keyed by tag ID.
// Mutations are serialized: each one rewrites the entire persisted blob,
// so at most one may be in flight at a time.
type Catalog struct {
	store Store
	clock clockwork.Clock
	tags  []Tag
	mu    sync.Mutex
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithClock injects the clock used for save timestamps.
func WithClock(clock clockwork.Clock) Option {
	return func(c *Catalog) {
		c.clock = clock
	}
}

// Open loads the catalog from store. A missing or corrupt blob is not
// fatal: the catalog starts empty and the condition is logged.
func Open(store Store, opts ...Option) *Catalog {
	c := &Catalog{
		store: store,
		clock: clockwork.NewRealClock(),
		tags:  []Tag{},
	}
	for _, opt := range opts {
		opt(c)
	}

	data, err := store.Load()
	if err != nil {
		log.Warn().Err(err).Msg("failed to load tag catalog, starting empty")
		return c
	}
	if len(data) == 0 {
		return c
	}

	tags, err := unmarshalTags(data)
	if err != nil {
		log.Warn().Err(err).Msg("tag catalog blob is corrupt, starting empty")
		return c
	}

	c.tags = tags
	log.Debug().Int("tags", len(tags)).Msg("loaded tag catalog")
	return c
}

// Save upserts tag into the catalog and persists the full sequence. An
// existing entry with the same ID is replaced in place, keeping its
// position; a new tag is appended. The tag's timestamp is set by the
// catalog on every save.
func (c *Catalog) Save(tag *Tag) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	tag.Timestamp = c.clock.Now().UTC()

	replaced := false
	for i := range c.tags {
		if c.tags[i].ID == tag.ID {
			c.tags[i] = *tag
			replaced = true
			break
		}
	}
	if !replaced {
		c.tags = append(c.tags, *tag)
	}

	return c.persist()
}

// Delete removes the tag with the given id. Deleting an unknown id is a
// no-op and does not rewrite the persisted blob.
func (c *Catalog) Delete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.tags {
		if c.tags[i].ID == id {
			c.tags = append(c.tags[:i], c.tags[i+1:]...)
			return c.persist()
		}
	}
	return nil
}

// Clear empties the catalog and persists the empty sequence.
func (c *Catalog) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tags = []Tag{}
	return c.persist()
}

// Get returns the tag with the given id.
func (c *Catalog) Get(id string) (Tag, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.tags {
		if c.tags[i].ID == id {
			return c.tags[i], true
		}
	}
	return Tag{}, false
}

// All returns the tags in catalog order.
func (c *Catalog) All() []Tag {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Tag, len(c.tags))
	copy(out, c.tags)
	return out
}

// Find returns the tags matching pred, in catalog order.
func (c *Catalog) Find(pred func(Tag) bool) []Tag {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []Tag
	for i := range c.tags {
		if pred(c.tags[i]) {
			out = append(out, c.tags[i])
		}
	}
	return out
}

// Len returns the number of cataloged tags.
func (c *Catalog) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tags)
}

// persist re-serializes the full sequence to the store. Callers must hold
// the mutex.
func (c *Catalog) persist() error {
	data, err := marshalTags(c.tags)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	if err := c.store.Save(data); err != nil {
		log.Warn().Err(err).Msg("failed to persist tag catalog")
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}
