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
	"fmt"
	"os"
	"path/filepath"

	bolt "go.etcd.io/bbolt"
)

const (
	boltBucket = "catalog"
	boltKey    = "tags"
)

// BoltStore keeps the catalog blob under a single key in a bbolt database.
type BoltStore struct {
	bdb *bolt.DB
}

// OpenBoltStore opens (creating if necessary) the bolt database at path.
func OpenBoltStore(path string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	bdb, err := bolt.Open(path, 0o600, &bolt.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}
	return &BoltStore{bdb: bdb}, nil
}

func (s *BoltStore) Load() ([]byte, error) {
	var data []byte
	err := s.bdb.View(func(txn *bolt.Tx) error {
		b := txn.Bucket([]byte(boltBucket))
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(boltKey)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to view bolt database: %w", err)
	}
	return data, nil
}

func (s *BoltStore) Save(data []byte) error {
	err := s.bdb.Update(func(txn *bolt.Tx) error {
		b, err := txn.CreateBucketIfNotExists([]byte(boltBucket))
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
		return b.Put([]byte(boltKey), data)
	})
	if err != nil {
		return fmt.Errorf("failed to update bolt database: %w", err)
	}
	return nil
}

func (s *BoltStore) Close() error {
	if err := s.bdb.Close(); err != nil {
		return fmt.Errorf("failed to close bolt database: %w", err)
	}
	return nil
}
