package services

import (
	"context"
	"math/rand"
	"strings"

	"github.com/ngabriel/sproutquest/internal/errors"
	"github.com/ngabriel/sproutquest/internal/logger"
	"github.com/ngabriel/sproutquest/internal/models"
	"github.com/ngabriel/sproutquest/internal/repository"
)

// GroupService handles group business logic
type GroupService interface {
	CreateGroup(ctx context.Context, name, description string, createdBy int64) (*models.GroupDetail, error)
	GetGroup(ctx context.Context, id int64) (*models.GroupDetail, error)
	ListGroups(ctx context.Context, filter models.GroupFilter) ([]models.Group, error)
	JoinGroup(ctx context.Context, groupID, userID int64) (*models.GroupDetail, error)
	// RecordTripOutcome advances the group garden meter when a trip
	// succeeded. Returns the resulting progress value.
	RecordTripOutcome(ctx context.Context, groupID int64, success bool) (int, error)
}

type groupService struct {
	groupRepo repository.GroupRepository
	userRepo  repository.UserRepository
}

// NewGroupService creates a new GroupService
func NewGroupService(groupRepo repository.GroupRepository, userRepo repository.UserRepository) GroupService {
	return &groupService{groupRepo: groupRepo, userRepo: userRepo}
}

func (s *groupService) CreateGroup(ctx context.Context, name, description string, createdBy int64) (*models.GroupDetail, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating group: name=%s, created_by=%d", name, createdBy)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewValidationError("name", "cannot be empty")
	}

	creator, err := s.userRepo.Get(ctx, createdBy)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if creator == nil {
		return nil, errors.NewNotFoundError("user", createdBy)
	}

	group := models.Group{
		Name:         name,
		Description:  strings.TrimSpace(description),
		CreatedBy:    createdBy,
		BackgroundID: rand.Intn(models.BackgroundCount) + 1,
	}
	id, err := s.groupRepo.Insert(ctx, group)
	if err != nil {
		log.Error("failed to insert group: %v", err)
		return nil, errors.NewInternalError(err)
	}

	// the creator is always a member
	if err := s.groupRepo.AddMember(ctx, id, createdBy); err != nil {
		log.Error("failed to add creator as member: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("group created: id=%d, name=%s", id, name)
	return s.GetGroup(ctx, id)
}

func (s *groupService) GetGroup(ctx context.Context, id int64) (*models.GroupDetail, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting group: id=%d", id)

	group, err := s.groupRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get group: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if group == nil {
		return nil, errors.NewNotFoundError("group", id)
	}

	members, err := s.groupRepo.Members(ctx, id)
	if err != nil {
		log.Error("failed to list members: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return &models.GroupDetail{Group: *group, Members: members}, nil
}

func (s *groupService) ListGroups(ctx context.Context, filter models.GroupFilter) ([]models.Group, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing groups")

	groups, err := s.groupRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list groups: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return groups, nil
}

func (s *groupService) JoinGroup(ctx context.Context, groupID, userID int64) (*models.GroupDetail, error) {
	log := logger.FromContext(ctx)
	log.Debug("joining group: group_id=%d, user_id=%d", groupID, userID)

	group, err := s.groupRepo.Get(ctx, groupID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if group == nil {
		return nil, errors.NewNotFoundError("group", groupID)
	}

	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user", userID)
	}

	if err := s.groupRepo.AddMember(ctx, groupID, userID); err != nil {
		log.Error("failed to add member: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("user %d joined group %d", userID, groupID)
	return s.GetGroup(ctx, groupID)
}

func (s *groupService) RecordTripOutcome(ctx context.Context, groupID int64, success bool) (int, error) {
	log := logger.FromContext(ctx)
	log.Debug("recording trip outcome: group_id=%d, success=%t", groupID, success)

	if !success {
		// failed trips leave the garden untouched
		group, err := s.groupRepo.Get(ctx, groupID)
		if err != nil {
			return 0, errors.NewInternalError(err)
		}
		if group == nil {
			return 0, errors.NewNotFoundError("group", groupID)
		}
		return group.Progress, nil
	}

	progress, err := s.groupRepo.IncrementProgress(ctx, groupID)
	if err != nil {
		if err == repository.ErrGroupNotFound {
			return 0, errors.NewNotFoundError("group", groupID)
		}
		log.Error("failed to increment progress: %v", err)
		return 0, errors.NewInternalError(err)
	}

	log.Info("group %d progress now %d", groupID, progress)
	return progress, nil
}
