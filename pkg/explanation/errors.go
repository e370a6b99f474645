package explanation

import "errors"

// ErrNotFound is returned by library adapters when an explanation id is unknown.
var ErrNotFound = errors.New("explanation not found")
