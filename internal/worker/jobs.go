package worker

import (
	"context"

	"github.com/ngabriel/sproutquest/internal/logger"
	"github.com/ngabriel/sproutquest/internal/places"
	"github.com/ngabriel/sproutquest/internal/quest"
	"github.com/ngabriel/sproutquest/internal/repository"
	"github.com/ngabriel/sproutquest/internal/survey"
	"github.com/ngabriel/sproutquest/internal/tripgen"
)

// PlanTripJob runs trip generation in the background: it gathers the group's
// plant roster and nearby places, asks the generator for a plan, and moves
// the trip from planning to ready (or failed). The trip row already exists
// when the job is queued.
type PlanTripJob struct {
	TripRepo   repository.TripRepository
	GroupRepo  repository.GroupRepository
	Places     places.ClientInterface
	Generator  tripgen.Generator
	TripID     int64
	GroupID    int64
	GroupName  string
	Lat        float64
	Lon        float64
	QuestCount int
}

func (j *PlanTripJob) Name() string { return "plan_trip" }

func (j *PlanTripJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"trip_id":  j.TripID,
		"group_id": j.GroupID,
	})
	log.Info("starting trip generation")

	questCount := j.QuestCount
	if questCount <= 0 {
		questCount = quest.DefaultQuestCount
	}

	members, err := j.GroupRepo.Members(ctx, j.GroupID)
	if err != nil {
		log.Error("failed to load group members: %v", err)
		return j.fail(ctx, "could not load group members")
	}

	plants := make([]survey.PlantID, 0, len(members))
	for _, m := range members {
		plants = append(plants, m.PlantMatch)
	}

	// Place lookup is best effort; the generator can still write a plan
	// from the plant roster alone.
	var pois []places.POI
	if j.Places != nil {
		pois, err = j.Places.Nearby(ctx, j.Lat, j.Lon)
		if err != nil {
			log.Warn("place lookup failed, generating without places: %v", err)
			pois = nil
		}
	}

	plan, err := j.Generator.Generate(ctx, tripgen.Request{
		GroupName:  j.GroupName,
		Plants:     plants,
		POIs:       pois,
		QuestCount: questCount,
	})
	if err != nil {
		log.Error("trip generation failed: %v", err)
		return j.fail(ctx, err.Error())
	}

	if err := j.TripRepo.MarkReady(ctx, j.TripID, plan.Summary, plan.Quests); err != nil {
		log.Error("failed to persist plan: %v", err)
		return err
	}

	log.Info("trip ready with %d quests", len(plan.Quests))
	return nil
}

func (j *PlanTripJob) fail(ctx context.Context, reason string) error {
	if err := j.TripRepo.MarkFailed(ctx, j.TripID, reason); err != nil {
		return err
	}
	return nil
}
