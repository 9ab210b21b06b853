package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"scanmatch/internal/logging"
	"scanmatch/internal/match"
	"scanmatch/internal/scan"
	"scanmatch/internal/textutil"
)

// ErrInsufficientCriteria means the scanned identity carries no usable
// search field at all: no first name, no last name, no date of birth.
var ErrInsufficientCriteria = errors.New("insufficient match criteria")

// Pipeline runs identity matches against an injected contact-search
// capability. Construct one per search backend; there is no global state.
type Pipeline struct {
	ranker *match.Ranker
	logger *slog.Logger
}

// New builds a pipeline over the given search capability. pageSize bounds
// fallback searches; <= 0 uses the ranker default.
func New(search match.ContactSearch, logger *slog.Logger, pageSize int) *Pipeline {
	return &Pipeline{
		ranker: match.NewRanker(search, logger, pageSize),
		logger: logging.NewComponentLogger(logger, "pipeline"),
	}
}

// RunMatch ranks contact candidates against the scanned identity. It fails
// with ErrInsufficientCriteria before issuing any search when the identity
// has no usable fields, and with match.ErrSearchFailure when every
// sub-search failed.
func (p *Pipeline) RunMatch(ctx context.Context, identity scan.Identity) ([]match.RankedMatch, error) {
	if !identity.HasCriteria() {
		return nil, fmt.Errorf("%w: scan has no name or date of birth", ErrInsufficientCriteria)
	}

	query := buildQuery(identity)
	p.logger.Debug("running match",
		logging.Int("first_name_terms", len(query.FirstNameTerms)),
		logging.String("last_name", query.LastName),
		logging.Bool("has_dob", query.DateOfBirth != ""),
	)

	ranked, err := p.ranker.Rank(ctx, query)
	if err != nil {
		return nil, err
	}

	p.logger.Info("match complete",
		logging.Int("candidates", len(ranked)),
	)
	return ranked, nil
}

// buildQuery extracts normalized search terms from the scan. When the
// scanner populated only the combined full-name field, first and last are
// derived from it: last token as surname, the rest as given names.
func buildQuery(identity scan.Identity) match.Query {
	first := strings.TrimSpace(identity.FirstName)
	last := strings.TrimSpace(identity.LastName)
	if first == "" && last == "" {
		first, last = splitFullName(identity.FullName)
	}

	var terms []string
	for _, token := range textutil.NameTokens(first) {
		terms = append(terms, textutil.TitleCase(token))
	}

	return match.Query{
		FirstNameTerms: terms,
		LastName:       textutil.TitleCase(last),
		DateOfBirth:    strings.TrimSpace(identity.DateOfBirth),
	}
}

func splitFullName(fullName string) (first, last string) {
	tokens := textutil.NameTokens(fullName)
	switch len(tokens) {
	case 0:
		return "", ""
	case 1:
		return tokens[0], ""
	default:
		return strings.Join(tokens[:len(tokens)-1], " "), tokens[len(tokens)-1]
	}
}
