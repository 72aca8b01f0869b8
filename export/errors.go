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
)

var (
	// ErrNothingToExport is returned when the export would produce an empty
	// image: the target or the canvas has zero area, or there is no stroke
	// with at least one point. No storage entry is created in this case.
	ErrNothingToExport = errors.New("nothing to export")

	// ErrTooLarge is returned when the requested image has more pixels
	// than the exporter allows. No storage entry is created in this case.
	ErrTooLarge = errors.New("export too large")

	// ErrStorage matches every *StorageError.
	ErrStorage = errors.New("storage failed")
)

// StorageError reports a failure of the storage backend. The partially
// written entry, if any, has been removed when the error is returned.
type StorageError struct {
	Op   string // "create", "write" or "commit"
	Name string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("export %s: %s: %v", e.Name, e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrStorage) report true for storage errors.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// Reason returns a short machine-readable description of an export error:
// "empty", "too_large", "storage", "canceled", "timeout" or "failed".
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNothingToExport):
		return "empty"
	case errors.Is(err, ErrTooLarge):
		return "too_large"
	case errors.Is(err, ErrStorage):
		return "storage"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "failed"
	}
}
