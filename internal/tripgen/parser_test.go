package tripgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngabriel/sproutquest/internal/quest"
	"github.com/ngabriel/sproutquest/internal/survey"
)

const validPlan = `{
  "summary": "A slow afternoon around the river park.",
  "quests": [
    {"easy_description": "Order a drink you know", "hard_description": "Order something you cannot pronounce", "check_value": 8, "attribute": "Social"},
    {"easy_description": "Walk the short trail", "hard_description": "Walk the full loop", "check_value": 12, "attribute": "Adventurous"}
  ]
}`

func TestParsePlanValid(t *testing.T) {
	plan, err := ParsePlan(validPlan, 2)
	require.NoError(t, err)

	assert.Equal(t, "A slow afternoon around the river park.", plan.Summary)
	require.Len(t, plan.Quests, 2)
	assert.Equal(t, survey.CategorySocial, plan.Quests[0].Attribute)
	assert.Equal(t, survey.CategoryAdventurous, plan.Quests[1].Attribute)
	assert.Equal(t, 8, plan.Quests[0].CheckValue)
}

func TestParsePlanStripsCodeFences(t *testing.T) {
	fenced := "```json\n" + validPlan + "\n```"
	plan, err := ParsePlan(fenced, 2)
	require.NoError(t, err)
	assert.Len(t, plan.Quests, 2)
}

func TestParsePlanRepairsMalformedJSON(t *testing.T) {
	// trailing comma and single quotes, the usual model damage
	broken := `{
  'summary': 'Short trip',
  'quests': [
    {'easy_description': 'Wave at a stranger', 'hard_description': 'Start a conversation', 'check_value': 10, 'attribute': 'Social'},
  ]
}`
	plan, err := ParsePlan(broken, 1)
	require.NoError(t, err)
	require.Len(t, plan.Quests, 1)
	assert.Equal(t, survey.CategorySocial, plan.Quests[0].Attribute)
}

func TestParsePlanTruncatesExtraQuests(t *testing.T) {
	plan, err := ParsePlan(validPlan, 1)
	require.NoError(t, err)
	assert.Len(t, plan.Quests, 1)
}

func TestParsePlanTooFewQuests(t *testing.T) {
	_, err := ParsePlan(validPlan, 6)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want 6")
}

func TestParsePlanEmpty(t *testing.T) {
	_, err := ParsePlan("   \n", 6)
	assert.ErrorIs(t, err, ErrEmptyPlan)

	_, err = ParsePlan("```json\n```", 6)
	assert.ErrorIs(t, err, ErrEmptyPlan)
}

func TestParsePlanInvalidQuest(t *testing.T) {
	bad := `{"summary": "x", "quests": [
    {"easy_description": "", "hard_description": "y", "check_value": 10, "attribute": "Social"}
  ]}`
	_, err := ParsePlan(bad, 1)
	assert.ErrorIs(t, err, quest.ErrMissingDescription)

	bad = `{"summary": "x", "quests": [
    {"easy_description": "a", "hard_description": "b", "check_value": 25, "attribute": "Social"}
  ]}`
	_, err = ParsePlan(bad, 1)
	assert.ErrorIs(t, err, quest.ErrInvalidCheckValue)

	bad = `{"summary": "x", "quests": [
    {"easy_description": "a", "hard_description": "b", "check_value": 10, "attribute": "Sleepy"}
  ]}`
	_, err = ParsePlan(bad, 1)
	assert.ErrorIs(t, err, quest.ErrInvalidAttribute)
}

func TestNormalizeAttribute(t *testing.T) {
	assert.Equal(t, survey.CategoryAdventurous, normalizeAttribute("adventurous"))
	assert.Equal(t, survey.CategoryAdventurous, normalizeAttribute("E"))
	assert.Equal(t, survey.Category("Sleepy"), normalizeAttribute("Sleepy"))
}
