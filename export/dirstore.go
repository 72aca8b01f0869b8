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
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"seehuhn.de/go/sketchpad"
)

// DirStore stores exported images as files in a directory.
//
// Entries are written to a hidden temporary file which is linked to its
// final name on commit, so that readers never see partial files. A commit
// fails with ErrExists if the name has been taken in the meantime; existing
// entries are never replaced. The directory must be on a file system which
// supports hard links.
type DirStore struct {
	dir string
}

// pendingPrefix marks temporary files of uncommitted entries.
const pendingPrefix = ".pending-"

// NewDirStore returns a DirStore for dir, creating the directory if
// needed.
func NewDirStore(dir string) (*DirStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DirStore{dir: dir}, nil
}

// Dir returns the directory the store writes to.
func (s *DirStore) Dir() string {
	return s.dir
}

// ErrInvalidName is returned for entry names which are not plain file
// names.
var ErrInvalidName = errors.New("invalid entry name")

func checkName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.HasPrefix(name, ".") ||
		strings.ContainsAny(name, `/\`) ||
		filepath.Base(name) != name {
		return fmt.Errorf("%q: %w", name, ErrInvalidName)
	}
	return nil
}

// Create implements the Store interface.
func (s *DirStore) Create(ctx context.Context, name, mediaType string) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkName(name); err != nil {
		return nil, err
	}
	final := filepath.Join(s.dir, name)
	if _, err := os.Lstat(final); err == nil {
		return nil, fmt.Errorf("%q: %w", name, ErrExists)
	}

	f, err := os.CreateTemp(s.dir, pendingPrefix+"*")
	if err != nil {
		return nil, err
	}
	return &fileEntry{f: f, tmp: f.Name(), final: final}, nil
}

// Open opens a committed entry for reading.
func (s *DirStore) Open(name string) (*os.File, error) {
	if err := checkName(name); err != nil {
		return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	f, err := os.Open(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return f, err
}

// Names returns the names of all committed entries, in sorted order.
func (s *DirStore) Names() ([]string, error) {
	ee, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range ee {
		if e.Type().IsRegular() && checkName(e.Name()) == nil {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)
	return names, nil
}

type fileEntry struct {
	f         *os.File
	tmp       string
	final     string
	committed bool
	removed   bool
}

func (e *fileEntry) Write(p []byte) (int, error) {
	if e.f == nil {
		return 0, errEntryDone
	}
	return e.f.Write(p)
}

func (e *fileEntry) Commit() error {
	if e.f == nil || e.committed || e.removed {
		return errEntryDone
	}
	if err := e.f.Sync(); err != nil {
		return err
	}
	err := e.f.Close()
	e.f = nil
	if err != nil {
		return err
	}
	if err := os.Link(e.tmp, e.final); errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%q: %w", filepath.Base(e.final), ErrExists)
	} else if err != nil {
		return err
	}
	e.committed = true
	if err := os.Remove(e.tmp); err != nil {
		sketchpad.Logger().Warn("removing temporary export file", "file", e.tmp, "error", err)
	}
	return nil
}

func (e *fileEntry) Remove() error {
	if e.removed {
		return nil
	}
	e.removed = true
	closeErr := e.Close()

	target := e.tmp
	if e.committed {
		target = e.final
	}
	err := os.Remove(target)
	if errors.Is(err, fs.ErrNotExist) {
		err = nil
	}
	return errors.Join(closeErr, err)
}

func (e *fileEntry) Close() error {
	var err error
	if e.f != nil {
		err = e.f.Close()
		e.f = nil
	}
	if !e.committed && !e.removed {
		// never committed: the temporary file must not outlive the entry
		e.removed = true
		if rmErr := os.Remove(e.tmp); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			err = errors.Join(err, rmErr)
		}
	}
	return err
}
