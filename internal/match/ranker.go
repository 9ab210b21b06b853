package match

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"scanmatch/internal/logging"
)

// DefaultPageSize bounds unfiltered fallback searches when no explicit page
// size is configured.
const DefaultPageSize = 50

// Ranker orchestrates per-term contact searches and scoring for one query.
type Ranker struct {
	search   ContactSearch
	logger   *slog.Logger
	pageSize int
}

// NewRanker builds a Ranker over the given search capability. pageSize <= 0
// falls back to DefaultPageSize.
func NewRanker(search ContactSearch, logger *slog.Logger, pageSize int) *Ranker {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Ranker{
		search:   search,
		logger:   logging.NewComponentLogger(logger, "ranker"),
		pageSize: pageSize,
	}
}

// Rank gathers candidates for the query, scores them, and returns them in
// descending score order. An empty query yields an empty result, not an
// error. Individual sub-search failures are tolerated; ErrSearchFailure is
// returned only when every sub-search failed.
func (r *Ranker) Rank(ctx context.Context, query Query) ([]RankedMatch, error) {
	if query.Empty() {
		return nil, nil
	}

	candidates, err := r.gather(ctx, query)
	if err != nil {
		return nil, err
	}

	ranked := make([]RankedMatch, 0, len(candidates))
	for _, candidate := range candidates {
		ranked = append(ranked, RankedMatch{
			Person: candidate,
			Score:  Score(candidate, query),
		})
	}

	// Stable: candidates with equal scores keep their gathered order, which
	// is itself deterministic (first-name term order, then last name, then
	// fallback, first occurrence winning the dedup).
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score.Total > ranked[j].Score.Total
	})
	return ranked, nil
}

// gather unions the per-term search results, deduplicated by record ID with
// the first occurrence winning. When the term searches produce nothing, an
// unfiltered page is fetched so there is always something to score against.
func (r *Ranker) gather(ctx context.Context, query Query) ([]PersonRecord, error) {
	var (
		candidates []PersonRecord
		seen       = make(map[string]struct{})
		attempted  int
		failed     int
	)

	absorb := func(records []PersonRecord) {
		for _, record := range records {
			if _, ok := seen[record.ID]; ok {
				continue
			}
			seen[record.ID] = struct{}{}
			candidates = append(candidates, record)
		}
	}

	for _, term := range distinctTerms(query.FirstNameTerms) {
		attempted++
		records, err := r.search.SearchByTerm(ctx, FieldFirstName, term, r.pageSize)
		if err != nil {
			failed++
			r.logger.Warn("first-name search failed",
				logging.String("term", term),
				logging.Error(err),
			)
			continue
		}
		absorb(records)
	}

	if query.LastName != "" {
		attempted++
		records, err := r.search.SearchByTerm(ctx, FieldLastName, query.LastName, r.pageSize)
		if err != nil {
			failed++
			r.logger.Warn("last-name search failed",
				logging.String("term", query.LastName),
				logging.Error(err),
			)
		} else {
			absorb(records)
		}
	}

	if attempted > 0 && failed == attempted {
		return nil, fmt.Errorf("%w: all %d sub-searches failed", ErrSearchFailure, attempted)
	}
	if failed > 0 {
		// Partial result set: distinguishable from "zero matches" in logs.
		r.logger.Warn("ranking on partial results",
			logging.Int("failed_searches", failed),
			logging.Int("attempted_searches", attempted),
		)
	}

	if len(candidates) == 0 {
		records, err := r.search.SearchAll(ctx, r.pageSize)
		if err != nil {
			if attempted == 0 {
				return nil, fmt.Errorf("%w: fallback search: %v", ErrSearchFailure, err)
			}
			r.logger.Warn("fallback search failed", logging.Error(err))
			return nil, nil
		}
		absorb(records)
	}

	return candidates, nil
}

func distinctTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	seen := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		trimmed := strings.TrimSpace(term)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}
