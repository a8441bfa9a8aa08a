package models

import "github.com/go-faster/errors"

// ErrNotFound is returned by repositories and services when an order does
// not exist or is not visible to the caller.
var ErrNotFound = errors.New("not found")
