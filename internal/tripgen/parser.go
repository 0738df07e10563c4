package tripgen

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/ngabriel/sproutquest/internal/quest"
	"github.com/ngabriel/sproutquest/internal/survey"
)

// ErrEmptyPlan indicates the model returned no usable text.
var ErrEmptyPlan = errors.New("model returned an empty plan")

// Plan is the structured output expected from the model.
type Plan struct {
	Summary string            `json:"summary"`
	Quests  []quest.SideQuest `json:"quests"`
}

// ParsePlan turns raw model output into a validated Plan. Model output is
// frequently wrapped in markdown code fences or slightly malformed, so the
// raw text is unfenced first and, when strict parsing fails, run through
// jsonrepair before a second attempt.
func ParsePlan(raw string, questCount int) (*Plan, error) {
	text := stripFences(raw)
	if text == "" {
		return nil, ErrEmptyPlan
	}

	var plan Plan
	if err := json.Unmarshal([]byte(text), &plan); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(text)
		if repairErr != nil {
			return nil, fmt.Errorf("plan is not valid JSON: %w", err)
		}
		if err := json.Unmarshal([]byte(repaired), &plan); err != nil {
			return nil, fmt.Errorf("plan is not valid JSON after repair: %w", err)
		}
	}

	if len(plan.Quests) < questCount {
		return nil, fmt.Errorf("plan has %d quests, want %d", len(plan.Quests), questCount)
	}
	plan.Quests = plan.Quests[:questCount]

	for i := range plan.Quests {
		plan.Quests[i].Attribute = normalizeAttribute(plan.Quests[i].Attribute)
		if err := quest.Validate(plan.Quests[i]); err != nil {
			return nil, fmt.Errorf("quest %d: %w", i+1, err)
		}
	}
	return &plan, nil
}

// normalizeAttribute maps whatever the model wrote ("adventurous", "E") to
// the canonical letter encoding. Unknown values pass through so Validate can
// reject them with a useful message.
func normalizeAttribute(a survey.Category) survey.Category {
	if a.Valid() {
		return a
	}
	for _, c := range survey.Categories {
		if strings.EqualFold(c.Name(), string(a)) {
			return c
		}
	}
	return a
}

// stripFences removes a surrounding markdown code fence, with or without a
// language tag, and trims whitespace.
func stripFences(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		first := strings.TrimSpace(text[:idx])
		// drop a language tag like "json"
		if first != "" && !strings.ContainsAny(first, "{[") {
			text = text[idx+1:]
		}
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
