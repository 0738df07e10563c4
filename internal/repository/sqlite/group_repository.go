package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"

	"github.com/ngabriel/sproutquest/internal/logger"
	"github.com/ngabriel/sproutquest/internal/models"
	"github.com/ngabriel/sproutquest/internal/repository"
)

type groupRepository struct {
	db *sql.DB
}

// NewGroupRepository creates a new GroupRepository implementation
func NewGroupRepository(db *sql.DB) repository.GroupRepository {
	return &groupRepository{db: db}
}

const groupColumns = `id, name, description, created_by, created_at, progress, background_id`

func scanGroup(row interface{ Scan(...any) error }) (*models.Group, error) {
	var g models.Group
	if err := row.Scan(&g.ID, &g.Name, &g.Description, &g.CreatedBy, &g.CreatedAt, &g.Progress, &g.BackgroundID); err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *groupRepository) Insert(ctx context.Context, group models.Group) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("group_repo")
	log.Debug("inserting group: name=%s, created_by=%d", group.Name, group.CreatedBy)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO groups (name, description, created_by, background_id)
VALUES (?, ?, ?, ?)
`, group.Name, group.Description, group.CreatedBy, group.BackgroundID)
	if err != nil {
		log.Error("failed to insert group: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	log.Debug("group inserted: id=%d", id)
	return id, nil
}

func (r *groupRepository) Get(ctx context.Context, id int64) (*models.Group, error) {
	log := logger.FromContext(ctx).WithPrefix("group_repo")
	log.Debug("getting group: id=%d", id)

	row := r.db.QueryRowContext(ctx, `SELECT `+groupColumns+` FROM groups WHERE id = ?`, id)
	g, err := scanGroup(row)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("group not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get group: %v", err)
		return nil, err
	}
	return g, nil
}

func (r *groupRepository) List(ctx context.Context, filter models.GroupFilter) ([]models.Group, error) {
	log := logger.FromContext(ctx).WithPrefix("group_repo")
	log.Debug("listing groups: member_id=%d, limit=%d, offset=%d", filter.MemberID, filter.Limit, filter.Offset)

	q := sqlBuilder.
		Select("g.id", "g.name", "g.description", "g.created_by", "g.created_at", "g.progress", "g.background_id").
		From("groups g").
		OrderBy("g.created_at DESC")

	if filter.MemberID > 0 {
		q = q.Join("group_members gm ON gm.group_id = g.id").
			Where(squirrel.Eq{"gm.user_id": filter.MemberID})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sqlStr, args, err := q.ToSql()
	if err != nil {
		log.Error("failed to build group list query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list groups: %v", err)
		return nil, err
	}
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			log.Error("failed to scan group row: %v", err)
			return nil, err
		}
		groups = append(groups, *g)
	}

	log.Debug("found %d groups", len(groups))
	return groups, rows.Err()
}

func (r *groupRepository) AddMember(ctx context.Context, groupID, userID int64) error {
	log := logger.FromContext(ctx).WithPrefix("group_repo")
	log.Debug("adding member: group_id=%d, user_id=%d", groupID, userID)

	// joining twice is a no-op
	_, err := r.db.ExecContext(ctx, `
INSERT OR IGNORE INTO group_members (group_id, user_id)
VALUES (?, ?)
`, groupID, userID)
	if err != nil {
		log.Error("failed to add member: %v", err)
		return err
	}
	return nil
}

func (r *groupRepository) Members(ctx context.Context, groupID int64) ([]models.GroupMember, error) {
	log := logger.FromContext(ctx).WithPrefix("group_repo")
	log.Debug("listing members: group_id=%d", groupID)

	rows, err := r.db.QueryContext(ctx, `
SELECT u.id, u.username, COALESCE(u.plant_match, 'default'), gm.joined_at
FROM group_members gm
JOIN users u ON u.id = gm.user_id
WHERE gm.group_id = ?
ORDER BY gm.joined_at ASC
`, groupID)
	if err != nil {
		log.Error("failed to list members: %v", err)
		return nil, err
	}
	defer rows.Close()

	var members []models.GroupMember
	for rows.Next() {
		var m models.GroupMember
		if err := rows.Scan(&m.UserID, &m.Username, &m.PlantMatch, &m.JoinedAt); err != nil {
			log.Error("failed to scan member row: %v", err)
			return nil, err
		}
		members = append(members, m)
	}

	log.Debug("found %d members", len(members))
	return members, rows.Err()
}

func (r *groupRepository) IsMember(ctx context.Context, groupID, userID int64) (bool, error) {
	var exists int
	err := r.db.QueryRowContext(ctx, `
SELECT 1 FROM group_members WHERE group_id = ? AND user_id = ?
`, groupID, userID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *groupRepository) IncrementProgress(ctx context.Context, groupID int64) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("group_repo")
	log.Debug("incrementing progress: group_id=%d", groupID)

	// Guarded update so concurrent trip completions cannot push the meter
	// past the cap.
	if _, err := r.db.ExecContext(ctx, `
UPDATE groups SET progress = progress + 1
WHERE id = ? AND progress < ?
`, groupID, models.MaxGroupProgress); err != nil {
		log.Error("failed to increment progress: %v", err)
		return 0, err
	}

	var progress int
	err := r.db.QueryRowContext(ctx, `SELECT progress FROM groups WHERE id = ?`, groupID).Scan(&progress)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, repository.ErrGroupNotFound
	}
	if err != nil {
		log.Error("failed to read progress: %v", err)
		return 0, err
	}

	log.Debug("group %d progress now %d", groupID, progress)
	return progress, nil
}
