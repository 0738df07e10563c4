package survey

import (
	"errors"
	"fmt"
)

// Category is one of the six personality categories. The single-letter
// encoding matches the option ids used by the primary questions.
type Category string

const (
	CategoryMysterious   Category = "A"
	CategoryIntellectual Category = "B"
	CategoryNurturing    Category = "C"
	CategorySocial       Category = "D"
	CategoryAdventurous  Category = "E"
	CategoryArtistic     Category = "F"
)

// Categories lists all categories in scoring order. The order matters:
// ScorePrimary breaks ties by first-encountered maximum.
var Categories = []Category{
	CategoryMysterious,
	CategoryIntellectual,
	CategoryNurturing,
	CategorySocial,
	CategoryAdventurous,
	CategoryArtistic,
}

func (c Category) String() string { return string(c) }

// Name returns the human-readable name of the category.
func (c Category) Name() string {
	switch c {
	case CategoryMysterious:
		return "Mysterious"
	case CategoryIntellectual:
		return "Intellectual"
	case CategoryNurturing:
		return "Nurturing"
	case CategorySocial:
		return "Social"
	case CategoryAdventurous:
		return "Adventurous"
	case CategoryArtistic:
		return "Artistic"
	default:
		return "Unknown"
	}
}

// Valid reports whether c is one of the six known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryMysterious, CategoryIntellectual, CategoryNurturing,
		CategorySocial, CategoryAdventurous, CategoryArtistic:
		return true
	}
	return false
}

// ParseCategory accepts either the letter encoding ("C") or the category
// name ("Nurturing", any case handled by the caller) and returns the Category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if c.Valid() {
		return c, nil
	}
	for _, known := range Categories {
		if known.Name() == s {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown personality category: %q", s)
}

// PlantID identifies a plant companion. Secondary question option ids are
// plant ids by construction, so no mapping table is needed.
type PlantID string

// DefaultPlant is the rendering fallback for unknown plant ids. The scorer
// never substitutes it; that is a client concern.
const DefaultPlant PlantID = "default"

// Answers maps primary question ids (q1..q10) to the selected category letter.
type Answers map[string]Category

// ErrMissingSecondaryAnswer indicates the secondary answer for the winning
// category is absent. It is fatal to the survey-completion flow: callers must
// not fall back to a default plant, since it signals an upstream data error.
var ErrMissingSecondaryAnswer = errors.New("missing secondary answer for primary category")

// ScorePrimary tallies the answers per category and returns the category with
// the highest count. Ties are broken by scanning order (A through F): a
// category takes the lead only when its count strictly exceeds the running
// maximum. With no answers every count is zero and category A is returned;
// callers are expected to enforce survey completeness before acting on the
// result.
func ScorePrimary(answers Answers) Category {
	counts := make(map[Category]int, len(Categories))
	for _, a := range answers {
		counts[a]++
	}

	leader := Categories[0]
	max := -1
	for _, c := range Categories {
		if counts[c] > max {
			max = counts[c]
			leader = c
		}
	}
	return leader
}

// ResolvePlant picks the plant for a completed survey. The primary category
// selects which secondary question applies; the answer recorded for that
// question is returned verbatim as the plant id; membership in the known
// plant table is not checked.
func ResolvePlant(primary Category, secondary map[string]PlantID) (PlantID, error) {
	q, ok := secondaryQuestionFor(primary)
	if !ok {
		return "", fmt.Errorf("no secondary question for category %s", primary)
	}
	plant, ok := secondary[q.ID]
	if !ok || plant == "" {
		return "", fmt.Errorf("%w: category %s", ErrMissingSecondaryAnswer, primary)
	}
	return plant, nil
}
