package config

import "errors"

// Sentinel errors for rejected input. Setters wrap them with the field and
// value, so callers match with errors.Is.
var (
	ErrOutOfRange  = errors.New("value out of range")
	ErrNotNumeric  = errors.New("value is not a number")
	ErrUnknownPly  = errors.New("unknown ply")
	ErrUnknownUnit = errors.New("unknown unit")
)
