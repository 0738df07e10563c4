package services

import (
	"context"
	stderrors "errors"

	"github.com/ngabriel/sproutquest/internal/errors"
	"github.com/ngabriel/sproutquest/internal/logger"
	"github.com/ngabriel/sproutquest/internal/models"
	"github.com/ngabriel/sproutquest/internal/places"
	"github.com/ngabriel/sproutquest/internal/quest"
	"github.com/ngabriel/sproutquest/internal/repository"
	"github.com/ngabriel/sproutquest/internal/survey"
	"github.com/ngabriel/sproutquest/internal/tripgen"
	"github.com/ngabriel/sproutquest/internal/worker"
)

// Dice rolls a d20 against a quest for a player. The production roller is
// entropy-seeded; tests inject a deterministic one.
type Dice interface {
	Roll(q quest.SideQuest, playerCategory survey.Category) quest.Resolution
}

// PlanTripRequest is the input to trip planning: where the group is.
type PlanTripRequest struct {
	GroupID int64
	UserID  int64
	Lat     float64
	Lon     float64
}

// QuestRollResult pairs the rolled quest with the trip it belongs to.
type QuestRollResult struct {
	Quest models.TripQuest `json:"quest"`
	Trip  models.Trip      `json:"trip"`
}

// TripService handles trip planning and quest resolution
type TripService interface {
	PlanTrip(ctx context.Context, req PlanTripRequest) (*models.Trip, error)
	GetTrip(ctx context.Context, id int64) (*models.TripDetail, error)
	ListTrips(ctx context.Context, filter models.TripFilter) ([]models.Trip, error)
	StartTrip(ctx context.Context, tripID, userID int64) (*models.TripDetail, error)
	RollQuest(ctx context.Context, tripID int64, seq int, userID int64) (*QuestRollResult, error)
	CompleteQuest(ctx context.Context, tripID int64, seq int) (*models.TripDetail, error)
	SkipQuest(ctx context.Context, tripID int64, seq int) (*models.TripDetail, error)
}

type tripService struct {
	tripRepo     repository.TripRepository
	groupRepo    repository.GroupRepository
	userRepo     repository.UserRepository
	groupService GroupService
	generator    tripgen.Generator
	places       places.ClientInterface
	pool         *worker.Pool
	dice         Dice
	questCount   int
	threshold    int
}

// NewTripService creates a new TripService
func NewTripService(
	tripRepo repository.TripRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	groupService GroupService,
	generator tripgen.Generator,
	placesClient places.ClientInterface,
	pool *worker.Pool,
	dice Dice,
	questCount, threshold int,
) TripService {
	if questCount <= 0 {
		questCount = quest.DefaultQuestCount
	}
	if threshold <= 0 {
		threshold = quest.DefaultPassingThreshold
	}
	return &tripService{
		tripRepo:     tripRepo,
		groupRepo:    groupRepo,
		userRepo:     userRepo,
		groupService: groupService,
		generator:    generator,
		places:       placesClient,
		pool:         pool,
		dice:         dice,
		questCount:   questCount,
		threshold:    threshold,
	}
}

func (s *tripService) PlanTrip(ctx context.Context, req PlanTripRequest) (*models.Trip, error) {
	log := logger.FromContext(ctx)
	log.Debug("planning trip: group_id=%d, user_id=%d", req.GroupID, req.UserID)

	group, err := s.groupRepo.Get(ctx, req.GroupID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if group == nil {
		return nil, errors.NewNotFoundError("group", req.GroupID)
	}

	isMember, err := s.groupRepo.IsMember(ctx, req.GroupID, req.UserID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if !isMember {
		return nil, errors.NewValidationError("user_id", "not a member of this group")
	}

	tripID, err := s.tripRepo.Insert(ctx, models.Trip{
		GroupID:          req.GroupID,
		UserID:           req.UserID,
		Status:           models.TripStatusPlanning,
		TotalQuests:      s.questCount,
		PassingThreshold: s.threshold,
	})
	if err != nil {
		log.Error("failed to insert trip: %v", err)
		return nil, errors.NewInternalError(err)
	}

	s.pool.Submit(&worker.PlanTripJob{
		TripRepo:   s.tripRepo,
		GroupRepo:  s.groupRepo,
		Places:     s.places,
		Generator:  s.generator,
		TripID:     tripID,
		GroupID:    req.GroupID,
		GroupName:  group.Name,
		Lat:        req.Lat,
		Lon:        req.Lon,
		QuestCount: s.questCount,
	})

	log.Info("trip %d queued for generation", tripID)
	return s.tripRepo.Get(ctx, tripID)
}

func (s *tripService) GetTrip(ctx context.Context, id int64) (*models.TripDetail, error) {
	trip, err := s.tripRepo.Get(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if trip == nil {
		return nil, errors.NewNotFoundError("trip", id)
	}

	quests, err := s.tripRepo.Quests(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return &models.TripDetail{Trip: *trip, Quests: quests}, nil
}

func (s *tripService) ListTrips(ctx context.Context, filter models.TripFilter) ([]models.Trip, error) {
	trips, err := s.tripRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return trips, nil
}

func (s *tripService) StartTrip(ctx context.Context, tripID, userID int64) (*models.TripDetail, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting trip: trip_id=%d, user_id=%d", tripID, userID)

	trip, err := s.tripRepo.Get(ctx, tripID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if trip == nil {
		return nil, errors.NewNotFoundError("trip", tripID)
	}

	switch trip.Status {
	case models.TripStatusReady:
		// the one valid transition
	case models.TripStatusPlanning:
		return nil, errors.NewConflictError("trip is still generating")
	case models.TripStatusFailed:
		return nil, errors.NewConflictError("trip generation failed")
	default:
		return nil, errors.NewConflictError("trip already started")
	}

	if err := s.tripRepo.UpdateStatus(ctx, tripID, models.TripStatusActive); err != nil {
		log.Error("failed to start trip: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("trip %d started", tripID)
	return s.GetTrip(ctx, tripID)
}

func (s *tripService) RollQuest(ctx context.Context, tripID int64, seq int, userID int64) (*QuestRollResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("rolling quest: trip_id=%d, seq=%d, user_id=%d", tripID, seq, userID)

	trip, tq, err := s.loadActiveQuest(ctx, tripID, seq)
	if err != nil {
		return nil, err
	}
	if tq.State != models.QuestStatePending {
		return nil, errors.NewConflictError("quest was already rolled")
	}

	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user", userID)
	}

	res := s.dice.Roll(tq.SideQuest(), user.Category())
	if err := s.tripRepo.RecordRoll(ctx, tq.ID, res); err != nil {
		if stderrors.Is(err, repository.ErrQuestStateConflict) {
			return nil, errors.NewConflictError("quest was already rolled")
		}
		log.Error("failed to record roll: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("quest %d/%d rolled: %d (+bonus=%t) vs %d => %s",
		tripID, seq, res.Roll, res.BonusApplied, tq.CheckValue, res.Outcome)

	updated, err := s.tripRepo.GetQuest(ctx, tripID, seq)
	if err != nil || updated == nil {
		return nil, errors.NewInternalError(err)
	}
	return &QuestRollResult{Quest: *updated, Trip: *trip}, nil
}

func (s *tripService) CompleteQuest(ctx context.Context, tripID int64, seq int) (*models.TripDetail, error) {
	log := logger.FromContext(ctx)
	log.Debug("completing quest: trip_id=%d, seq=%d", tripID, seq)

	_, tq, err := s.loadActiveQuest(ctx, tripID, seq)
	if err != nil {
		return nil, err
	}
	if tq.State != models.QuestStateRolled || tq.PointValue == nil {
		return nil, errors.NewConflictError("quest must be rolled before completing")
	}

	if err := s.tripRepo.ResolveQuest(ctx, tripID, tq.ID, models.QuestStateCompleted, *tq.PointValue); err != nil {
		if stderrors.Is(err, repository.ErrQuestStateConflict) {
			return nil, errors.NewConflictError("quest already resolved")
		}
		log.Error("failed to complete quest: %v", err)
		return nil, errors.NewInternalError(err)
	}

	if err := s.maybeFinalize(ctx, tripID); err != nil {
		return nil, err
	}
	return s.GetTrip(ctx, tripID)
}

func (s *tripService) SkipQuest(ctx context.Context, tripID int64, seq int) (*models.TripDetail, error) {
	log := logger.FromContext(ctx)
	log.Debug("skipping quest: trip_id=%d, seq=%d", tripID, seq)

	_, tq, err := s.loadActiveQuest(ctx, tripID, seq)
	if err != nil {
		return nil, err
	}
	if tq.State == models.QuestStateCompleted || tq.State == models.QuestStateSkipped {
		return nil, errors.NewConflictError("quest already resolved")
	}

	// skipped quests count toward completion but score nothing
	if err := s.tripRepo.ResolveQuest(ctx, tripID, tq.ID, models.QuestStateSkipped, 0); err != nil {
		if stderrors.Is(err, repository.ErrQuestStateConflict) {
			return nil, errors.NewConflictError("quest already resolved")
		}
		log.Error("failed to skip quest: %v", err)
		return nil, errors.NewInternalError(err)
	}

	if err := s.maybeFinalize(ctx, tripID); err != nil {
		return nil, err
	}
	return s.GetTrip(ctx, tripID)
}

func (s *tripService) loadActiveQuest(ctx context.Context, tripID int64, seq int) (*models.Trip, *models.TripQuest, error) {
	trip, err := s.tripRepo.Get(ctx, tripID)
	if err != nil {
		return nil, nil, errors.NewInternalError(err)
	}
	if trip == nil {
		return nil, nil, errors.NewNotFoundError("trip", tripID)
	}
	if trip.Status != models.TripStatusActive {
		return nil, nil, errors.NewConflictError("trip is not active")
	}

	tq, err := s.tripRepo.GetQuest(ctx, tripID, seq)
	if err != nil {
		return nil, nil, errors.NewInternalError(err)
	}
	if tq == nil {
		return nil, nil, errors.NewNotFoundError("quest", seq)
	}
	return trip, tq, nil
}

// maybeFinalize closes the trip once every quest is resolved, and feeds the
// outcome into the group garden.
func (s *tripService) maybeFinalize(ctx context.Context, tripID int64) error {
	log := logger.FromContext(ctx)

	trip, err := s.tripRepo.Get(ctx, tripID)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if trip == nil {
		return errors.NewNotFoundError("trip", tripID)
	}
	if trip.QuestsResolved < trip.TotalQuests {
		return nil
	}

	outcome, err := quest.Finalize(trip.Progress(), trip.PassingThreshold)
	if err != nil {
		log.Error("failed to compute trip outcome: %v", err)
		return errors.NewInternalError(err)
	}

	if err := s.tripRepo.Finalize(ctx, tripID, outcome); err != nil {
		if stderrors.Is(err, repository.ErrTripStateConflict) {
			// another resolver finalized first
			return nil
		}
		log.Error("failed to finalize trip: %v", err)
		return errors.NewInternalError(err)
	}

	progress, err := s.groupService.RecordTripOutcome(ctx, trip.GroupID, outcome.Success)
	if err != nil {
		return err
	}

	log.Info("trip %d finished: success=%t, points=%d, group progress=%d",
		tripID, outcome.Success, outcome.PointTotal, progress)
	return nil
}
