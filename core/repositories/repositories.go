// Package repositories holds the errors shared by every repository and store.
package repositories

import "errors"

// ErrNotFound is returned by a store when no row matches the id.
var ErrNotFound = errors.New("record not found")
