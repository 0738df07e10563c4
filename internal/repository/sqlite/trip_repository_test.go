package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/ngabriel/sproutquest/internal/models"
	"github.com/ngabriel/sproutquest/internal/quest"
	"github.com/ngabriel/sproutquest/internal/repository"
	"github.com/ngabriel/sproutquest/internal/repository/sqlite"
	"github.com/ngabriel/sproutquest/internal/survey"
	"github.com/ngabriel/sproutquest/internal/testutil"
)

type TripRepositorySuite struct {
	suite.Suite
	db      *sql.DB
	repo    repository.TripRepository
	userID  int64
	groupID int64
}

func (s *TripRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewTripRepository(s.db)

	ctx := context.Background()
	user, err := sqlite.NewUserRepository(s.db).Upsert(ctx, "fern", "")
	s.Require().NoError(err)
	s.userID = user.ID

	s.groupID, err = sqlite.NewGroupRepository(s.db).Insert(ctx, models.Group{
		Name:         "Garden Gang",
		CreatedBy:    s.userID,
		BackgroundID: 1,
	})
	s.Require().NoError(err)
}

func (s *TripRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *TripRepositorySuite) newTrip() int64 {
	id, err := s.repo.Insert(context.Background(), models.Trip{
		GroupID:          s.groupID,
		UserID:           s.userID,
		Status:           models.TripStatusPlanning,
		TotalQuests:      2,
		PassingThreshold: 3,
	})
	s.Require().NoError(err)
	return id
}

func (s *TripRepositorySuite) sampleQuests() []quest.SideQuest {
	return []quest.SideQuest{
		{
			EasyDescription: "Walk the short trail",
			HardDescription: "Walk the full loop",
			CheckValue:      10,
			Attribute:       survey.CategoryAdventurous,
		},
		{
			EasyDescription: "Order a known drink",
			HardDescription: "Order the house special",
			CheckValue:      14,
			Attribute:       survey.CategorySocial,
		},
	}
}

// ready moves a fresh trip through planning -> ready and returns its id.
func (s *TripRepositorySuite) ready() int64 {
	id := s.newTrip()
	s.Require().NoError(s.repo.MarkReady(context.Background(), id, "A day out", s.sampleQuests()))
	return id
}

func (s *TripRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()
	id := s.newTrip()

	trip, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(trip)
	s.Assert().Equal(models.TripStatusPlanning, trip.Status)
	s.Assert().Equal(2, trip.TotalQuests)
	s.Assert().Equal(3, trip.PassingThreshold)
	s.Assert().Nil(trip.Success)
	s.Assert().Nil(trip.CompletedAt)
}

func (s *TripRepositorySuite) TestMarkReady() {
	ctx := context.Background()
	id := s.ready()

	trip, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Assert().Equal(models.TripStatusReady, trip.Status)
	s.Assert().Equal("A day out", trip.PlanText)

	quests, err := s.repo.Quests(ctx, id)
	s.Require().NoError(err)
	s.Require().Len(quests, 2)
	s.Assert().Equal(1, quests[0].Seq)
	s.Assert().Equal(models.QuestStatePending, quests[0].State)
	s.Assert().Equal(survey.CategoryAdventurous, quests[0].Attribute)
}

func (s *TripRepositorySuite) TestMarkReady_WrongStatus() {
	ctx := context.Background()
	id := s.ready()

	err := s.repo.MarkReady(ctx, id, "again", s.sampleQuests())
	s.Assert().ErrorIs(err, repository.ErrTripStateConflict)
}

func (s *TripRepositorySuite) TestMarkFailed() {
	ctx := context.Background()
	id := s.newTrip()

	s.Require().NoError(s.repo.MarkFailed(ctx, id, "model unavailable"))

	trip, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Assert().Equal(models.TripStatusFailed, trip.Status)
	s.Assert().Equal("model unavailable", trip.GenerationError)
}

func (s *TripRepositorySuite) TestRecordRoll() {
	ctx := context.Background()
	id := s.ready()

	tq, err := s.repo.GetQuest(ctx, id, 1)
	s.Require().NoError(err)
	s.Require().NotNil(tq)

	res := quest.ResolveRoll(tq.SideQuest(), survey.CategoryAdventurous, 9)
	s.Require().NoError(s.repo.RecordRoll(ctx, tq.ID, res))

	rolled, err := s.repo.GetQuest(ctx, id, 1)
	s.Require().NoError(err)
	s.Assert().Equal(models.QuestStateRolled, rolled.State)
	s.Require().NotNil(rolled.Roll)
	s.Assert().Equal(9, *rolled.Roll)
	s.Require().NotNil(rolled.FinalRoll)
	s.Assert().Equal(11, *rolled.FinalRoll)
	s.Assert().True(rolled.BonusApplied)
	s.Require().NotNil(rolled.Outcome)
	s.Assert().Equal(quest.OutcomeEasy, *rolled.Outcome)

	// a second roll on the same quest is rejected
	err = s.repo.RecordRoll(ctx, tq.ID, res)
	s.Assert().ErrorIs(err, repository.ErrQuestStateConflict)
}

func (s *TripRepositorySuite) TestResolveQuestAccumulates() {
	ctx := context.Background()
	id := s.ready()

	tq, err := s.repo.GetQuest(ctx, id, 1)
	s.Require().NoError(err)
	res := quest.ResolveRoll(tq.SideQuest(), "", 2) // hard outcome
	s.Require().NoError(s.repo.RecordRoll(ctx, tq.ID, res))

	s.Require().NoError(s.repo.ResolveQuest(ctx, id, tq.ID, models.QuestStateCompleted, res.PointValue))

	trip, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Assert().Equal(quest.HardPoints, trip.PointTotal)
	s.Assert().Equal(1, trip.QuestsResolved)

	// resolving again is rejected
	err = s.repo.ResolveQuest(ctx, id, tq.ID, models.QuestStateCompleted, res.PointValue)
	s.Assert().ErrorIs(err, repository.ErrQuestStateConflict)
}

func (s *TripRepositorySuite) TestSkipFromPending() {
	ctx := context.Background()
	id := s.ready()

	tq, err := s.repo.GetQuest(ctx, id, 2)
	s.Require().NoError(err)

	s.Require().NoError(s.repo.ResolveQuest(ctx, id, tq.ID, models.QuestStateSkipped, 0))

	trip, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Assert().Equal(0, trip.PointTotal)
	s.Assert().Equal(1, trip.QuestsResolved)
}

func (s *TripRepositorySuite) TestFinalize() {
	ctx := context.Background()
	id := s.ready()
	s.Require().NoError(s.repo.UpdateStatus(ctx, id, models.TripStatusActive))

	outcome := quest.TripOutcome{Success: true, PointTotal: 4}
	s.Require().NoError(s.repo.Finalize(ctx, id, outcome))

	trip, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Assert().Equal(models.TripStatusCompleted, trip.Status)
	s.Require().NotNil(trip.Success)
	s.Assert().True(*trip.Success)
	s.Assert().NotNil(trip.CompletedAt)

	// finalizing twice is rejected
	err = s.repo.Finalize(ctx, id, outcome)
	s.Assert().ErrorIs(err, repository.ErrTripStateConflict)
}

func (s *TripRepositorySuite) TestListFiltered() {
	ctx := context.Background()
	s.newTrip()
	ready := s.ready()

	all, err := s.repo.List(ctx, models.TripFilter{GroupID: s.groupID})
	s.Require().NoError(err)
	s.Assert().Len(all, 2)

	readyOnly, err := s.repo.List(ctx, models.TripFilter{GroupID: s.groupID, Status: models.TripStatusReady})
	s.Require().NoError(err)
	s.Require().Len(readyOnly, 1)
	s.Assert().Equal(ready, readyOnly[0].ID)
}

func TestTripRepositorySuite(t *testing.T) {
	suite.Run(t, new(TripRepositorySuite))
}
