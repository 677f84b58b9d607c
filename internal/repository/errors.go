// Package repository provides data access over MySQL.  Repositories take
// a *sql.DB; methods with a Tx suffix run inside a caller-provided
// transaction so higher layers can compose check-then-write sequences
// atomically.  All timestamps are stored and compared in UTC.
package repository

import "errors"

// ErrProductNotFound is returned when a product ID does not resolve to a
// row.  Handlers translate this into an HTTP 404.
var ErrProductNotFound = errors.New("product not found")

// ErrUnitNotFound is returned when a candidate references a unit that no
// longer exists; the candidate is stale and the caller must re-resolve.
var ErrUnitNotFound = errors.New("unit not found")

// ErrResourceNotFound is returned when a candidate references a crew or
// vehicle that no longer exists; like ErrUnitNotFound it marks a stale
// candidate.
var ErrResourceNotFound = errors.New("ops resource not found")
