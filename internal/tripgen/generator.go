package tripgen

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/ngabriel/sproutquest/internal/logger"
	"github.com/ngabriel/sproutquest/internal/places"
	"github.com/ngabriel/sproutquest/internal/survey"
)

// Generator produces a trip plan for a group of players.
// This interface enables testability by allowing mock implementations.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Plan, error)
}

// Request carries everything the model needs to write a plan.
type Request struct {
	GroupName  string
	Plants     []survey.PlantID
	POIs       []places.POI
	QuestCount int
}

// Disabled is the Generator used when no API key is configured. Every
// generation attempt fails, which surfaces on the trip as a failed plan.
type Disabled struct{}

func (Disabled) Generate(ctx context.Context, req Request) (*Plan, error) {
	return nil, fmt.Errorf("trip generation is not configured")
}

// GeminiGenerator generates trip plans with the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
	log    *logger.Logger
}

// Ensure GeminiGenerator implements the interface
var _ Generator = (*GeminiGenerator)(nil)

func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GeminiGenerator{
		client: client,
		model:  model,
		log:    logger.Default().WithPrefix("tripgen"),
	}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, req Request) (*Plan, error) {
	log := logger.FromContext(ctx).WithPrefix("tripgen").WithField("group", req.GroupName)
	log.Debug("generating plan: plants=%d, pois=%d, quests=%d", len(req.Plants), len(req.POIs), req.QuestCount)
	start := time.Now()

	prompt := buildPrompt(req)

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		log.Error("generate content failed: %v", err)
		return nil, err
	}

	raw := resp.Text()
	log.Debug("model responded in %v with %d chars", time.Since(start), len(raw))

	plan, err := ParsePlan(raw, req.QuestCount)
	if err != nil {
		log.Error("failed to parse plan: %v", err)
		return nil, err
	}

	log.Info("generated plan with %d quests for group %s", len(plan.Quests), req.GroupName)
	return plan, nil
}

func buildPrompt(req Request) string {
	var b strings.Builder

	b.WriteString("You are the game master for a plant-themed adventure app. ")
	b.WriteString("Write a day-trip plan for the group below as a single JSON object with this shape:\n")
	b.WriteString(`{"summary": "...", "quests": [{"easy_description": "...", "hard_description": "...", "check_value": 12, "attribute": "Adventurous"}]}` + "\n\n")

	fmt.Fprintf(&b, "Group name: %s\n", req.GroupName)

	b.WriteString("Member plant personalities: ")
	for i, p := range req.Plants {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(string(p))
	}
	b.WriteString("\n\n")

	if len(req.POIs) > 0 {
		b.WriteString("Nearby places to build quests around:\n")
		for _, poi := range req.POIs {
			fmt.Fprintf(&b, "- %s (%s) %s\n", poi.Name, poi.Category, poi.Address)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Produce exactly %d quests. ", req.QuestCount)
	b.WriteString("Each quest needs an easy and a hard variant of the same activity, ")
	b.WriteString("a checkValue between 1 and 20, and an attribute that is one of: ")
	for i, c := range survey.Categories {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.Name())
	}
	b.WriteString(". Respond with the JSON object only, no markdown fences.")

	return b.String()
}
