package match

import (
	"fmt"
	"math"
	"strings"

	"scanmatch/internal/textutil"
)

// Component weights. Raw component sums plus bonuses can exceed 100; Score
// caps the total.
const (
	firstNameWeight = 40
	lastNameWeight  = 40
	dobWeight       = 20

	lastNamePrefixScore     = 30
	lastNameSimilarityScale = 25

	bonusExactFirstExactLast   = 20
	bonusPartialFirstExactLast = 15
	bonusPartialFirstPartial   = 8
)

// Score compares one candidate against the query and produces a confidence
// score with its rationale. Absent fields contribute 0 to their component;
// there are no failure modes.
func Score(candidate PersonRecord, query Query) MatchScore {
	var score MatchScore

	first := scoreFirstName(candidate, query, &score)
	last := scoreLastName(candidate, query, &score)
	scoreDateOfBirth(candidate, query, &score)

	bonus := applyBonus(first, last, &score)

	total := score.FirstComponent + score.LastComponent + score.DOBComponent + bonus
	if total > 100 {
		total = 100
	}
	score.Total = total
	return score
}

type firstNameOutcome struct {
	exactMatches int
	hasPartial   bool
}

type lastNameOutcome struct {
	exact  bool
	prefix bool
}

func scoreFirstName(candidate PersonRecord, query Query, score *MatchScore) firstNameOutcome {
	var out firstNameOutcome

	tokens := textutil.NameTokens(candidate.FirstName)
	if len(query.FirstNameTerms) == 0 || len(tokens) == 0 {
		return out
	}

	for _, term := range query.FirstNameTerms {
		matched := false
		for _, token := range tokens {
			if strings.EqualFold(term, token) {
				out.exactMatches++
				matched = true
				score.Rationale = append(score.Rationale, fmt.Sprintf("first name token %q matches exactly", token))
				break
			}
		}
		if matched {
			continue
		}
		for _, token := range tokens {
			if textutil.PrefixFold(term, token) {
				out.hasPartial = true
				score.Rationale = append(score.Rationale, fmt.Sprintf("first name %q partially matches %q", term, token))
				break
			}
		}
	}

	denominator := len(query.FirstNameTerms)
	if len(tokens) > denominator {
		denominator = len(tokens)
	}
	component := int(math.Round(float64(out.exactMatches) / float64(denominator) * firstNameWeight))
	if out.hasPartial {
		component += 10
		if component > firstNameWeight {
			component = firstNameWeight
		}
	}
	score.FirstComponent = component
	return out
}

func scoreLastName(candidate PersonRecord, query Query, score *MatchScore) lastNameOutcome {
	var out lastNameOutcome

	candLast := strings.TrimSpace(candidate.LastName)
	queryLast := strings.TrimSpace(query.LastName)
	if candLast == "" || queryLast == "" {
		return out
	}

	switch {
	case strings.EqualFold(candLast, queryLast):
		out.exact = true
		score.LastComponent = lastNameWeight
		score.Rationale = append(score.Rationale, "last name matches exactly")
	case textutil.PrefixFold(candLast, queryLast):
		out.prefix = true
		score.LastComponent = lastNamePrefixScore
		score.Rationale = append(score.Rationale, fmt.Sprintf("last name %q prefix-matches %q", queryLast, candLast))
	default:
		similarity := textutil.Similarity(strings.ToLower(candLast), strings.ToLower(queryLast))
		component := int(math.Round(similarity * lastNameSimilarityScale))
		score.LastComponent = component
		if component > 10 {
			score.Rationale = append(score.Rationale, fmt.Sprintf("last name similar to %q (%d/%d)", candLast, component, lastNameSimilarityScale))
		}
	}
	return out
}

func scoreDateOfBirth(candidate PersonRecord, query Query, score *MatchScore) int {
	candDOB, candOK := textutil.NormalizeDate(candidate.DateOfBirth)
	queryDOB, queryOK := textutil.NormalizeDate(query.DateOfBirth)
	if !candOK || !queryOK || candDOB != queryDOB {
		return 0
	}
	score.DOBComponent = dobWeight
	score.Rationale = append(score.Rationale, "date of birth matches")
	return dobWeight
}

// applyBonus picks at most one bonus; the chain is first-condition-wins and
// the conditions are mutually exclusive on purpose.
func applyBonus(first firstNameOutcome, last lastNameOutcome, score *MatchScore) int {
	switch {
	case first.exactMatches > 0 && last.exact:
		score.Bonus = BonusExactFirstExactLast
		score.Rationale = append(score.Rationale, "bonus: exact first and last name")
		return bonusExactFirstExactLast
	case first.hasPartial && last.exact:
		score.Bonus = BonusPartialFirstExactLast
		score.Rationale = append(score.Rationale, "bonus: partial first with exact last name")
		return bonusPartialFirstExactLast
	case first.hasPartial && score.LastComponent >= lastNamePrefixScore:
		score.Bonus = BonusPartialFirstPartial
		score.Rationale = append(score.Rationale, "bonus: partial first with strong last name")
		return bonusPartialFirstPartial
	default:
		score.Bonus = BonusNone
		return 0
	}
}
