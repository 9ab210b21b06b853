package match

import (
	"strings"
	"testing"
)

func TestScorePerfectMatch(t *testing.T) {
	candidate := PersonRecord{ID: "1", FirstName: "Brandon", LastName: "Smith", DateOfBirth: "1990-01-15"}
	query := Query{FirstNameTerms: []string{"Brandon"}, LastName: "Smith", DateOfBirth: "01-15-1990"}

	score := Score(candidate, query)
	if score.Total != 100 {
		t.Fatalf("Total = %d, want 100", score.Total)
	}
	if score.FirstComponent != 40 || score.LastComponent != 40 || score.DOBComponent != 20 {
		t.Fatalf("components = %d/%d/%d, want 40/40/20", score.FirstComponent, score.LastComponent, score.DOBComponent)
	}
	if score.Bonus != BonusExactFirstExactLast {
		t.Fatalf("Bonus = %q, want %q", score.Bonus, BonusExactFirstExactLast)
	}
}

func TestScoreExactNamesMismatchedDOBStillCapped(t *testing.T) {
	candidate := PersonRecord{ID: "1", FirstName: "Brandon", LastName: "Smith", DateOfBirth: "1985-06-01"}
	query := Query{FirstNameTerms: []string{"Brandon"}, LastName: "Smith", DateOfBirth: "01-15-1990"}

	score := Score(candidate, query)
	if score.DOBComponent != 0 {
		t.Fatalf("DOBComponent = %d, want 0", score.DOBComponent)
	}
	// 40 + 40 + 0 + 20 bonus, capped at 100.
	if score.Total != 100 {
		t.Fatalf("Total = %d, want 100", score.Total)
	}
}

func TestScorePartialFirstExactLast(t *testing.T) {
	candidate := PersonRecord{ID: "1", FirstName: "Robert", LastName: "Smith"}
	query := Query{FirstNameTerms: []string{"Rob"}, LastName: "Smith"}

	score := Score(candidate, query)
	if score.FirstComponent != 10 {
		t.Fatalf("FirstComponent = %d, want 10 (partial bump only)", score.FirstComponent)
	}
	if score.LastComponent != 40 {
		t.Fatalf("LastComponent = %d, want 40", score.LastComponent)
	}
	if score.Bonus != BonusPartialFirstExactLast {
		t.Fatalf("Bonus = %q, want %q", score.Bonus, BonusPartialFirstExactLast)
	}
	want := 10 + 40 + 15
	if score.Total != want {
		t.Fatalf("Total = %d, want %d", score.Total, want)
	}
}

func TestScoreMultiTokenFirstName(t *testing.T) {
	candidate := PersonRecord{ID: "1", FirstName: "Mary Anne", LastName: "Jones"}
	query := Query{FirstNameTerms: []string{"Mary", "Anne"}, LastName: "Jones"}

	score := Score(candidate, query)
	if score.FirstComponent != 40 {
		t.Fatalf("FirstComponent = %d, want 40 (2/2 exact)", score.FirstComponent)
	}

	// One of two terms exact: round(1/2 * 40) = 20.
	query.FirstNameTerms = []string{"Mary", "Beth"}
	score = Score(candidate, query)
	if score.FirstComponent != 20 {
		t.Fatalf("FirstComponent = %d, want 20 (1/2 exact)", score.FirstComponent)
	}
}

func TestScoreLastNameTiers(t *testing.T) {
	query := Query{FirstNameTerms: []string{"Ann"}, LastName: "Smith"}

	prefix := Score(PersonRecord{ID: "1", FirstName: "Ann", LastName: "Smithson"}, query)
	if prefix.LastComponent != 30 {
		t.Fatalf("prefix LastComponent = %d, want 30", prefix.LastComponent)
	}

	// "smyth" vs "smith": one substitution over five runes, similarity 0.8,
	// round(0.8 * 25) = 20.
	fuzzy := Score(PersonRecord{ID: "2", FirstName: "Ann", LastName: "Smyth"}, query)
	if fuzzy.LastComponent != 20 {
		t.Fatalf("fuzzy LastComponent = %d, want 20", fuzzy.LastComponent)
	}

	far := Score(PersonRecord{ID: "3", FirstName: "Ann", LastName: "Zukowski"}, query)
	if far.LastComponent > 10 {
		t.Fatalf("far LastComponent = %d, want <= 10", far.LastComponent)
	}
}

func TestScorePartialFirstStrongLastBonus(t *testing.T) {
	candidate := PersonRecord{ID: "1", FirstName: "Robert", LastName: "Smithson"}
	query := Query{FirstNameTerms: []string{"Rob"}, LastName: "Smith"}

	score := Score(candidate, query)
	if score.Bonus != BonusPartialFirstPartial {
		t.Fatalf("Bonus = %q, want %q", score.Bonus, BonusPartialFirstPartial)
	}
	want := 10 + 30 + 8
	if score.Total != want {
		t.Fatalf("Total = %d, want %d", score.Total, want)
	}
}

func TestScoreAbsentFieldsContributeZero(t *testing.T) {
	score := Score(PersonRecord{ID: "1"}, Query{FirstNameTerms: []string{"Brandon"}, LastName: "Smith", DateOfBirth: "01-15-1990"})
	if score.Total != 0 {
		t.Fatalf("Total = %d, want 0 for empty candidate", score.Total)
	}
	if score.Bonus != BonusNone {
		t.Fatalf("Bonus = %q, want none", score.Bonus)
	}

	score = Score(PersonRecord{ID: "2", FirstName: "Brandon", LastName: "Smith", DateOfBirth: "garbage"}, Query{
		FirstNameTerms: []string{"Brandon"}, LastName: "Smith", DateOfBirth: "also garbage",
	})
	// Two unparseable dates never compare equal.
	if score.DOBComponent != 0 {
		t.Fatalf("DOBComponent = %d, want 0 for unparseable dates", score.DOBComponent)
	}
}

func TestScoreRationaleOrder(t *testing.T) {
	candidate := PersonRecord{ID: "1", FirstName: "Brandon", LastName: "Smith", DateOfBirth: "1990-01-15"}
	query := Query{FirstNameTerms: []string{"Brandon"}, LastName: "Smith", DateOfBirth: "01-15-1990"}

	score := Score(candidate, query)
	if len(score.Rationale) != 4 {
		t.Fatalf("rationale entries = %d, want 4: %v", len(score.Rationale), score.Rationale)
	}
	checks := []string{"first name", "last name", "date of birth", "bonus"}
	for i, want := range checks {
		if !strings.Contains(score.Rationale[i], want) {
			t.Fatalf("rationale[%d] = %q, want mention of %q", i, score.Rationale[i], want)
		}
	}
}

func TestScoreTotalNeverExceedsBounds(t *testing.T) {
	candidates := []PersonRecord{
		{ID: "1", FirstName: "Brandon Michael", LastName: "Smith", DateOfBirth: "1990-01-15"},
		{ID: "2", FirstName: "Rob", LastName: "Smith", DateOfBirth: "1990-01-15"},
		{ID: "3"},
	}
	query := Query{FirstNameTerms: []string{"Brandon", "Michael"}, LastName: "Smith", DateOfBirth: "01-15-1990"}
	for _, candidate := range candidates {
		score := Score(candidate, query)
		if score.Total < 0 || score.Total > 100 {
			t.Fatalf("Total = %d out of [0,100] for candidate %s", score.Total, candidate.ID)
		}
	}
}
