// seehuhn.de/go/sketchpad - a freehand drawing surface
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"
)

// Store is a storage backend for exported images.
type Store interface {
	// Create starts a new pending entry. The entry becomes visible under
	// name only once it is committed.
	Create(ctx context.Context, name, mediaType string) (Entry, error)
}

// Entry is a pending storage entry.
//
// The exporter writes the encoded image to the entry and then either
// commits it or removes it. Close is always called last, whatever happened
// before, and must release all resources held by the entry. An entry which
// is closed without being committed must not become visible.
type Entry interface {
	io.Writer

	// Commit makes the entry visible under its name.
	Commit() error

	// Remove deletes the entry and everything written to it so far.
	Remove() error

	// Close releases the entry. It may be called more than once.
	Close() error
}

// ErrExists is returned by Create if an entry with the given name exists.
var ErrExists = errors.New("entry already exists")

// ErrNotFound is returned when a committed entry does not exist.
var ErrNotFound = errors.New("entry not found")

// MemStore is a Store which keeps committed entries in memory.
// The zero value is ready to use.
type MemStore struct {
	mu      sync.Mutex
	entries map[string]memItem
	pending map[string]bool
}

type memItem struct {
	mediaType string
	data      []byte
}

// Create implements the Store interface.
func (s *MemStore) Create(ctx context.Context, name, mediaType string) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[name]; ok || s.pending[name] {
		return nil, fmt.Errorf("%q: %w", name, ErrExists)
	}
	if s.pending == nil {
		s.pending = make(map[string]bool)
	}
	s.pending[name] = true
	return &memEntry{store: s, name: name, mediaType: mediaType}, nil
}

// Get returns the data and media type of a committed entry.
func (s *MemStore) Get(name string) ([]byte, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.entries[name]
	if !ok {
		return nil, "", fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return item.data, item.mediaType, nil
}

// Names returns the names of all committed entries, in sorted order.
func (s *MemStore) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Pending returns the number of entries which have been created but
// neither committed nor released.
func (s *MemStore) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

type memEntry struct {
	store     *MemStore
	name      string
	mediaType string
	buf       bytes.Buffer
	committed bool
	done      bool // committed, removed or closed
}

var errEntryDone = errors.New("entry already committed or released")

func (e *memEntry) Write(p []byte) (int, error) {
	if e.done {
		return 0, errEntryDone
	}
	return e.buf.Write(p)
}

func (e *memEntry) Commit() error {
	if e.done {
		return errEntryDone
	}

	s := e.store
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, e.name)
	if s.entries == nil {
		s.entries = make(map[string]memItem)
	}
	s.entries[e.name] = memItem{
		mediaType: e.mediaType,
		data:      bytes.Clone(e.buf.Bytes()),
	}
	e.committed = true
	e.done = true
	return nil
}

func (e *memEntry) Remove() error {
	s := e.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.committed {
		delete(s.entries, e.name)
		e.committed = false
	} else if !e.done {
		delete(s.pending, e.name)
	}
	e.done = true
	e.buf = bytes.Buffer{}
	return nil
}

func (e *memEntry) Close() error {
	s := e.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if !e.done {
		delete(s.pending, e.name)
	}
	e.done = true
	return nil
}
