package model

import "errors"

// ErrNotFound is returned by the stores when no row matches the lookup.
var ErrNotFound = errors.New("record not found")
