package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"

	"github.com/ngabriel/sproutquest/internal/logger"
	"github.com/ngabriel/sproutquest/internal/models"
	"github.com/ngabriel/sproutquest/internal/quest"
	"github.com/ngabriel/sproutquest/internal/repository"
)

type tripRepository struct {
	db *sql.DB
}

// NewTripRepository creates a new TripRepository implementation
func NewTripRepository(db *sql.DB) repository.TripRepository {
	return &tripRepository{db: db}
}

const tripColumns = `id, group_id, user_id, status, plan_text, generation_error,
point_total, quests_resolved, total_quests, passing_threshold, success,
created_at, completed_at`

func scanTrip(row interface{ Scan(...any) error }) (*models.Trip, error) {
	var t models.Trip
	var success sql.NullBool
	var completedAt sql.NullTime
	err := row.Scan(&t.ID, &t.GroupID, &t.UserID, &t.Status, &t.PlanText, &t.GenerationError,
		&t.PointTotal, &t.QuestsResolved, &t.TotalQuests, &t.PassingThreshold, &success,
		&t.CreatedAt, &completedAt)
	if err != nil {
		return nil, err
	}
	if success.Valid {
		t.Success = &success.Bool
	}
	if completedAt.Valid {
		t.CompletedAt = &completedAt.Time
	}
	return &t, nil
}

func (r *tripRepository) Insert(ctx context.Context, trip models.Trip) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("trip_repo")
	log.Debug("inserting trip: group_id=%d, user_id=%d", trip.GroupID, trip.UserID)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO trips (group_id, user_id, status, total_quests, passing_threshold)
VALUES (?, ?, ?, ?, ?)
`, trip.GroupID, trip.UserID, trip.Status, trip.TotalQuests, trip.PassingThreshold)
	if err != nil {
		log.Error("failed to insert trip: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	log.Debug("trip inserted: id=%d", id)
	return id, nil
}

func (r *tripRepository) Get(ctx context.Context, id int64) (*models.Trip, error) {
	log := logger.FromContext(ctx).WithPrefix("trip_repo")
	log.Debug("getting trip: id=%d", id)

	row := r.db.QueryRowContext(ctx, `SELECT `+tripColumns+` FROM trips WHERE id = ?`, id)
	t, err := scanTrip(row)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("trip not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get trip: %v", err)
		return nil, err
	}
	return t, nil
}

func (r *tripRepository) List(ctx context.Context, filter models.TripFilter) ([]models.Trip, error) {
	log := logger.FromContext(ctx).WithPrefix("trip_repo")
	log.Debug("listing trips: group_id=%d, user_id=%d, status=%s", filter.GroupID, filter.UserID, filter.Status)

	q := sqlBuilder.
		Select("id", "group_id", "user_id", "status", "plan_text", "generation_error",
			"point_total", "quests_resolved", "total_quests", "passing_threshold", "success",
			"created_at", "completed_at").
		From("trips").
		OrderBy("created_at DESC")

	if filter.GroupID > 0 {
		q = q.Where(squirrel.Eq{"group_id": filter.GroupID})
	}
	if filter.UserID > 0 {
		q = q.Where(squirrel.Eq{"user_id": filter.UserID})
	}
	if filter.Status != "" {
		q = q.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sqlStr, args, err := q.ToSql()
	if err != nil {
		log.Error("failed to build trip list query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list trips: %v", err)
		return nil, err
	}
	defer rows.Close()

	var trips []models.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			log.Error("failed to scan trip row: %v", err)
			return nil, err
		}
		trips = append(trips, *t)
	}

	log.Debug("found %d trips", len(trips))
	return trips, rows.Err()
}

const questColumns = `id, trip_id, seq, easy_description, hard_description,
check_value, attribute, state, roll, final_roll, bonus_applied, outcome, point_value`

func scanQuest(row interface{ Scan(...any) error }) (*models.TripQuest, error) {
	var q models.TripQuest
	var roll, finalRoll, pointValue sql.NullInt64
	var outcome sql.NullString
	err := row.Scan(&q.ID, &q.TripID, &q.Seq, &q.EasyDescription, &q.HardDescription,
		&q.CheckValue, &q.Attribute, &q.State, &roll, &finalRoll, &q.BonusApplied, &outcome, &pointValue)
	if err != nil {
		return nil, err
	}
	if roll.Valid {
		v := int(roll.Int64)
		q.Roll = &v
	}
	if finalRoll.Valid {
		v := int(finalRoll.Int64)
		q.FinalRoll = &v
	}
	if pointValue.Valid {
		v := int(pointValue.Int64)
		q.PointValue = &v
	}
	if outcome.Valid {
		o := quest.Outcome(outcome.String)
		q.Outcome = &o
	}
	return &q, nil
}

func (r *tripRepository) Quests(ctx context.Context, tripID int64) ([]models.TripQuest, error) {
	log := logger.FromContext(ctx).WithPrefix("trip_repo")
	log.Debug("listing quests: trip_id=%d", tripID)

	rows, err := r.db.QueryContext(ctx, `
SELECT `+questColumns+` FROM trip_quests WHERE trip_id = ? ORDER BY seq ASC
`, tripID)
	if err != nil {
		log.Error("failed to list quests: %v", err)
		return nil, err
	}
	defer rows.Close()

	var quests []models.TripQuest
	for rows.Next() {
		q, err := scanQuest(rows)
		if err != nil {
			log.Error("failed to scan quest row: %v", err)
			return nil, err
		}
		quests = append(quests, *q)
	}
	return quests, rows.Err()
}

func (r *tripRepository) GetQuest(ctx context.Context, tripID int64, seq int) (*models.TripQuest, error) {
	log := logger.FromContext(ctx).WithPrefix("trip_repo")
	log.Debug("getting quest: trip_id=%d, seq=%d", tripID, seq)

	row := r.db.QueryRowContext(ctx, `
SELECT `+questColumns+` FROM trip_quests WHERE trip_id = ? AND seq = ?
`, tripID, seq)
	q, err := scanQuest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get quest: %v", err)
		return nil, err
	}
	return q, nil
}

func (r *tripRepository) MarkReady(ctx context.Context, tripID int64, planText string, quests []quest.SideQuest) error {
	log := logger.FromContext(ctx).WithPrefix("trip_repo")
	log.Debug("marking trip ready: trip_id=%d, quests=%d", tripID, len(quests))

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
UPDATE trips SET status = ?, plan_text = ?, total_quests = ?
WHERE id = ? AND status = ?
`, models.TripStatusReady, planText, len(quests), tripID, models.TripStatusPlanning)
		if err != nil {
			log.Error("failed to update trip status: %v", err)
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return repository.ErrTripStateConflict
		}

		for i, q := range quests {
			if _, err := tx.ExecContext(ctx, `
INSERT INTO trip_quests (trip_id, seq, easy_description, hard_description, check_value, attribute)
VALUES (?, ?, ?, ?, ?, ?)
`, tripID, i+1, q.EasyDescription, q.HardDescription, q.CheckValue, string(q.Attribute)); err != nil {
				log.Error("failed to insert quest %d: %v", i+1, err)
				return err
			}
		}
		return nil
	})
}

func (r *tripRepository) MarkFailed(ctx context.Context, tripID int64, genErr string) error {
	log := logger.FromContext(ctx).WithPrefix("trip_repo")
	log.Warn("marking trip failed: trip_id=%d, error=%s", tripID, genErr)

	_, err := r.db.ExecContext(ctx, `
UPDATE trips SET status = ?, generation_error = ? WHERE id = ?
`, models.TripStatusFailed, genErr, tripID)
	if err != nil {
		log.Error("failed to mark trip failed: %v", err)
	}
	return err
}

func (r *tripRepository) UpdateStatus(ctx context.Context, tripID int64, status string) error {
	log := logger.FromContext(ctx).WithPrefix("trip_repo")
	log.Debug("updating trip status: trip_id=%d, status=%s", tripID, status)

	_, err := r.db.ExecContext(ctx, `UPDATE trips SET status = ? WHERE id = ?`, status, tripID)
	if err != nil {
		log.Error("failed to update trip status: %v", err)
	}
	return err
}

func (r *tripRepository) RecordRoll(ctx context.Context, questID int64, res quest.Resolution) error {
	log := logger.FromContext(ctx).WithPrefix("trip_repo")
	log.Debug("recording roll: quest_id=%d, roll=%d, final=%d, outcome=%s", questID, res.Roll, res.FinalRoll, res.Outcome)

	result, err := r.db.ExecContext(ctx, `
UPDATE trip_quests
SET state = ?, roll = ?, final_roll = ?, bonus_applied = ?, outcome = ?, point_value = ?
WHERE id = ? AND state = ?
`, models.QuestStateRolled, res.Roll, res.FinalRoll, res.BonusApplied, string(res.Outcome), res.PointValue,
		questID, models.QuestStatePending)
	if err != nil {
		log.Error("failed to record roll: %v", err)
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrQuestStateConflict
	}
	return nil
}

func (r *tripRepository) ResolveQuest(ctx context.Context, tripID, questID int64, state string, pointDelta int) error {
	log := logger.FromContext(ctx).WithPrefix("trip_repo")
	log.Debug("resolving quest: trip_id=%d, quest_id=%d, state=%s, points=%d", tripID, questID, state, pointDelta)

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		// completing requires a roll; skipping is allowed straight from pending
		allowedFrom := []any{models.QuestStateRolled, models.QuestStateRolled}
		if state == models.QuestStateSkipped {
			allowedFrom[1] = models.QuestStatePending
		}
		res, err := tx.ExecContext(ctx, `
UPDATE trip_quests SET state = ?
WHERE id = ? AND trip_id = ? AND state IN (?, ?)
`, state, questID, tripID, allowedFrom[0], allowedFrom[1])
		if err != nil {
			log.Error("failed to update quest state: %v", err)
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return repository.ErrQuestStateConflict
		}

		if _, err := tx.ExecContext(ctx, `
UPDATE trips
SET point_total = point_total + ?, quests_resolved = quests_resolved + 1
WHERE id = ?
`, pointDelta, tripID); err != nil {
			log.Error("failed to update trip totals: %v", err)
			return err
		}
		return nil
	})
}

func (r *tripRepository) Finalize(ctx context.Context, tripID int64, outcome quest.TripOutcome) error {
	log := logger.FromContext(ctx).WithPrefix("trip_repo")
	log.Debug("finalizing trip: trip_id=%d, success=%t, points=%d", tripID, outcome.Success, outcome.PointTotal)

	res, err := r.db.ExecContext(ctx, `
UPDATE trips SET status = ?, success = ?, completed_at = CURRENT_TIMESTAMP
WHERE id = ? AND status = ?
`, models.TripStatusCompleted, outcome.Success, tripID, models.TripStatusActive)
	if err != nil {
		log.Error("failed to finalize trip: %v", err)
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrTripStateConflict
	}
	return nil
}
