package match

import (
	"context"
	"errors"
)

// SearchField selects which name column a term search runs against.
type SearchField string

const (
	FieldFirstName SearchField = "first"
	FieldLastName  SearchField = "last"
)

// ErrSearchFailure is returned when every sub-search of a match attempt
// failed. Individual sub-search failures are tolerated; ranking proceeds
// with whatever candidates the surviving searches produced.
var ErrSearchFailure = errors.New("contact search failure")

// ContactSearch is the external contact-store capability the ranker fans out
// over. Implementations match a term exactly or as a prefix against the
// selected field; limit bounds the result set.
type ContactSearch interface {
	SearchByTerm(ctx context.Context, field SearchField, term string, limit int) ([]PersonRecord, error)
	SearchAll(ctx context.Context, limit int) ([]PersonRecord, error)
}
