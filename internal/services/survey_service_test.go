package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ngabriel/sproutquest/internal/errors"
	"github.com/ngabriel/sproutquest/internal/models"
	"github.com/ngabriel/sproutquest/internal/services"
	"github.com/ngabriel/sproutquest/internal/survey"
	"github.com/ngabriel/sproutquest/internal/testutil/mocks"
)

func fullSubmission() services.SurveySubmission {
	// seven C answers out of ten makes Nurturing the clear winner
	primary := map[string]string{}
	for i, q := range survey.PrimaryQuestions() {
		if i < 7 {
			primary[q.ID] = "C"
		} else {
			primary[q.ID] = "E"
		}
	}
	sq, _ := survey.SecondaryQuestion(survey.CategoryNurturing)
	return services.SurveySubmission{
		Primary: primary,
		Secondary: map[string]string{
			sq.ID: "aloeVera",
		},
	}
}

func TestCompleteSurvey(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	svc := services.NewSurveyService(userRepo)

	user := &models.User{ID: 7, Username: "fern"}
	userRepo.On("Get", mock.Anything, int64(7)).Return(user, nil)
	userRepo.On("CompleteSurvey", mock.Anything, mock.MatchedBy(func(resp models.SurveyResponse) bool {
		return resp.UserID == 7 &&
			resp.Primary == survey.CategoryNurturing &&
			resp.PlantMatch == survey.PlantID("aloeVera")
	})).Return(nil)

	result, err := svc.CompleteSurvey(context.Background(), 7, fullSubmission())
	require.NoError(t, err)
	assert.Equal(t, survey.CategoryNurturing, result.Primary)
	assert.Equal(t, "Nurturing", result.PrimaryName)
	assert.Equal(t, survey.PlantID("aloeVera"), result.PlantMatch)
	userRepo.AssertExpectations(t)
}

func TestCompleteSurvey_UserNotFound(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	svc := services.NewSurveyService(userRepo)

	userRepo.On("Get", mock.Anything, int64(404)).Return(nil, nil)

	_, err := svc.CompleteSurvey(context.Background(), 404, fullSubmission())
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeNotFound, appErr.Code)
}

func TestCompleteSurvey_AlreadyCompleted(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	svc := services.NewSurveyService(userRepo)

	user := &models.User{ID: 7, Username: "fern", SurveyCompleted: true}
	userRepo.On("Get", mock.Anything, int64(7)).Return(user, nil)

	_, err := svc.CompleteSurvey(context.Background(), 7, fullSubmission())
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeConflict, appErr.Code)
}

func TestCompleteSurvey_MissingPrimaryAnswer(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	svc := services.NewSurveyService(userRepo)

	userRepo.On("Get", mock.Anything, int64(7)).Return(&models.User{ID: 7}, nil)

	sub := fullSubmission()
	delete(sub.Primary, "q4")

	_, err := svc.CompleteSurvey(context.Background(), 7, sub)
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
}

func TestCompleteSurvey_InvalidAnswer(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	svc := services.NewSurveyService(userRepo)

	userRepo.On("Get", mock.Anything, int64(7)).Return(&models.User{ID: 7}, nil)

	sub := fullSubmission()
	sub.Primary["q1"] = "Z"

	_, err := svc.CompleteSurvey(context.Background(), 7, sub)
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
}

func TestCompleteSurvey_MissingSecondaryAnswer(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	svc := services.NewSurveyService(userRepo)

	userRepo.On("Get", mock.Anything, int64(7)).Return(&models.User{ID: 7}, nil)

	sub := fullSubmission()
	sub.Secondary = map[string]string{}

	_, err := svc.CompleteSurvey(context.Background(), 7, sub)
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
	// nothing was persisted
	userRepo.AssertNotCalled(t, "CompleteSurvey", mock.Anything, mock.Anything)
}

func TestQuestionsCatalog(t *testing.T) {
	svc := services.NewSurveyService(new(mocks.MockUserRepository))

	primary, secondary := svc.Questions(context.Background())
	assert.Len(t, primary, survey.PrimaryQuestionCount)
	assert.Len(t, secondary, len(survey.Categories))
	for _, q := range secondary {
		assert.Len(t, q.Options, 4)
	}
}
