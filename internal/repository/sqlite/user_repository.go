package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ngabriel/sproutquest/internal/logger"
	"github.com/ngabriel/sproutquest/internal/models"
	"github.com/ngabriel/sproutquest/internal/repository"
	"github.com/ngabriel/sproutquest/internal/survey"
)

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository implementation
func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, username, email, created_at, survey_completed, personality, plant_match`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	var personality, plant sql.NullString
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt, &u.SurveyCompleted, &personality, &plant); err != nil {
		return nil, err
	}
	if personality.Valid {
		c := survey.Category(personality.String)
		u.Personality = &c
	}
	if plant.Valid {
		p := survey.PlantID(plant.String)
		u.PlantMatch = &p
	}
	return &u, nil
}

func (r *userRepository) Upsert(ctx context.Context, username, email string) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("upserting user: username=%s", username)

	row := r.db.QueryRowContext(ctx, `
INSERT INTO users (username, email)
VALUES (?, ?)
ON CONFLICT(username) DO UPDATE SET email = CASE WHEN excluded.email != '' THEN excluded.email ELSE users.email END
RETURNING `+userColumns, username, email)

	u, err := scanUser(row)
	if err != nil {
		log.Error("failed to upsert user: %v", err)
		return nil, err
	}
	log.Debug("user upserted: id=%d", u.ID)
	return u, nil
}

func (r *userRepository) Get(ctx context.Context, id int64) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("getting user: id=%d", id)

	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("user not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get user: %v", err)
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("getting user: username=%s", username)

	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get user by username: %v", err)
		return nil, err
	}
	return u, nil
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("listing users")

	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at ASC`)
	if err != nil {
		log.Error("failed to list users: %v", err)
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			log.Error("failed to scan user row: %v", err)
			return nil, err
		}
		users = append(users, *u)
	}

	log.Debug("found %d users", len(users))
	return users, rows.Err()
}

func (r *userRepository) CompleteSurvey(ctx context.Context, resp models.SurveyResponse) error {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("completing survey: user_id=%d, primary=%s, plant=%s", resp.UserID, resp.Primary, resp.PlantMatch)

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		// plant_match is write-once
		res, err := tx.ExecContext(ctx, `
UPDATE users
SET survey_completed = 1, personality = ?, plant_match = ?
WHERE id = ? AND plant_match IS NULL
`, string(resp.Primary), string(resp.PlantMatch), resp.UserID)
		if err != nil {
			log.Error("failed to update user survey state: %v", err)
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return repository.ErrSurveyAlreadyCompleted
		}

		if _, err := tx.ExecContext(ctx, `
INSERT INTO survey_responses (user_id, primary_category, secondary_question, plant_match, answers_json)
VALUES (?, ?, ?, ?, ?)
`, resp.UserID, string(resp.Primary), resp.Secondary, string(resp.PlantMatch), resp.AnswersJSON); err != nil {
			log.Error("failed to insert survey response: %v", err)
			return err
		}

		log.Debug("survey completed for user %d", resp.UserID)
		return nil
	})
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("deleting user: id=%d", id)

	if _, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id); err != nil {
		log.Error("failed to delete user %d: %v", id, err)
		return err
	}
	return nil
}
