package match

import "time"

// PersonRecord is a candidate returned by the contact-search capability.
// Records are read-only; the pipeline never mutates one, it only pairs a
// copy with a MatchScore.
type PersonRecord struct {
	ID          string
	FirstName   string
	LastName    string
	DateOfBirth string // arbitrary external format, may be empty
	CreatedAt   time.Time
}

// Bonus identifies which tie-break bonus applied to a score.
type Bonus string

const (
	BonusNone                  Bonus = "none"
	BonusExactFirstExactLast   Bonus = "exact_first_exact_last"
	BonusPartialFirstExactLast Bonus = "partial_first_exact_last"
	BonusPartialFirstPartial   Bonus = "partial_first_partial_last"
)

// MatchScore is the scored outcome of comparing one candidate against one
// scanned identity. Recomputed on every match attempt, never persisted.
type MatchScore struct {
	Total          int // always in [0,100]
	FirstComponent int // 0-40
	LastComponent  int // 0-40
	DOBComponent   int // 0-20
	Bonus          Bonus
	Rationale      []string
}

// RankedMatch pairs a candidate with its score. Lists of RankedMatch are
// ordered by descending Total; ties keep their input order.
type RankedMatch struct {
	Person PersonRecord
	Score  MatchScore
}

// Query carries the normalized search terms extracted from a scanned
// identity. FirstNameTerms holds one entry per whitespace-separated token of
// the scanned first name.
type Query struct {
	FirstNameTerms []string
	LastName       string
	DateOfBirth    string
}

// Empty reports whether the query carries no usable criteria at all.
func (q Query) Empty() bool {
	return len(q.FirstNameTerms) == 0 && q.LastName == "" && q.DateOfBirth == ""
}
