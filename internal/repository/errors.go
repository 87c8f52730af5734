// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values allow higher layers such as
// services and handlers to distinguish a missing row from a database
// failure without inspecting driver errors.
package repository

import "errors"

// ErrNotFound is returned when no row matches the requested id.  Handlers
// should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")
