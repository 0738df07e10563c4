package services

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/ngabriel/sproutquest/internal/errors"
	"github.com/ngabriel/sproutquest/internal/logger"
	"github.com/ngabriel/sproutquest/internal/models"
	"github.com/ngabriel/sproutquest/internal/repository"
	"github.com/ngabriel/sproutquest/internal/survey"
)

// SurveySubmission is a full onboarding survey as submitted by the client:
// one answer per primary question plus one answer per secondary question.
// Secondary answers are keyed by secondary question id and carry the chosen
// plant id.
type SurveySubmission struct {
	Primary   map[string]string `json:"primary"`
	Secondary map[string]string `json:"secondary"`
}

// SurveyResult is what the client renders after completing the survey.
type SurveyResult struct {
	Primary     survey.Category `json:"primary"`
	PrimaryName string          `json:"primary_name"`
	PlantMatch  survey.PlantID  `json:"plant_match"`
}

// SurveyService handles the onboarding survey flow
type SurveyService interface {
	Questions(ctx context.Context) ([]survey.Question, []survey.Question)
	CompleteSurvey(ctx context.Context, userID int64, sub SurveySubmission) (*SurveyResult, error)
}

type surveyService struct {
	userRepo repository.UserRepository
}

// NewSurveyService creates a new SurveyService
func NewSurveyService(userRepo repository.UserRepository) SurveyService {
	return &surveyService{userRepo: userRepo}
}

// Questions returns the primary questions and all secondary questions. The
// client shows the secondary question matching the primary result, but it
// needs the full catalog up front to render the survey offline.
func (s *surveyService) Questions(ctx context.Context) ([]survey.Question, []survey.Question) {
	primary := survey.PrimaryQuestions()
	secondary := make([]survey.Question, 0, len(survey.Categories))
	for _, c := range survey.Categories {
		if q, ok := survey.SecondaryQuestion(c); ok {
			secondary = append(secondary, q)
		}
	}
	return primary, secondary
}

func (s *surveyService) CompleteSurvey(ctx context.Context, userID int64, sub SurveySubmission) (*SurveyResult, error) {
	log := logger.FromContext(ctx).WithField("user_id", userID)
	log.Debug("completing survey")

	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		log.Error("failed to load user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user", userID)
	}
	if user.SurveyCompleted {
		return nil, errors.NewConflictError("survey already completed")
	}

	answers, err := validateAnswers(sub.Primary)
	if err != nil {
		return nil, err
	}

	primary := survey.ScorePrimary(answers)

	secondary := make(map[string]survey.PlantID, len(sub.Secondary))
	for id, plant := range sub.Secondary {
		secondary[id] = survey.PlantID(plant)
	}

	plant, err := survey.ResolvePlant(primary, secondary)
	if err != nil {
		if stderrors.Is(err, survey.ErrMissingSecondaryAnswer) {
			return nil, errors.NewValidationError("secondary", "missing answer for the matched personality")
		}
		return nil, errors.NewInternalError(err)
	}

	rawAnswers, err := json.Marshal(sub)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	secondaryQuestion, _ := survey.SecondaryQuestion(primary)
	resp := models.SurveyResponse{
		UserID:      userID,
		Primary:     primary,
		Secondary:   secondaryQuestion.ID,
		PlantMatch:  plant,
		AnswersJSON: string(rawAnswers),
	}
	if err := s.userRepo.CompleteSurvey(ctx, resp); err != nil {
		if stderrors.Is(err, repository.ErrSurveyAlreadyCompleted) {
			return nil, errors.NewConflictError("survey already completed")
		}
		log.Error("failed to persist survey: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("survey completed: primary=%s, plant=%s", primary, plant)
	return &SurveyResult{
		Primary:     primary,
		PrimaryName: primary.Name(),
		PlantMatch:  plant,
	}, nil
}

// validateAnswers checks that every primary question has exactly one valid
// category answer. The scorer itself is total, so completeness is enforced
// here at the boundary.
func validateAnswers(raw map[string]string) (survey.Answers, error) {
	answers := make(survey.Answers, len(raw))
	for _, q := range survey.PrimaryQuestions() {
		val, ok := raw[q.ID]
		if !ok {
			return nil, errors.NewValidationError(q.ID, "answer is required")
		}
		c, err := survey.ParseCategory(val)
		if err != nil {
			return nil, errors.NewValidationError(q.ID, fmt.Sprintf("invalid answer %q", val))
		}
		answers[q.ID] = c
	}
	return answers, nil
}
