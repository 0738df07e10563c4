package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/ngabriel/sproutquest/internal/models"
	"github.com/ngabriel/sproutquest/internal/repository"
	"github.com/ngabriel/sproutquest/internal/repository/sqlite"
	"github.com/ngabriel/sproutquest/internal/survey"
	"github.com/ngabriel/sproutquest/internal/testutil"
)

type GroupRepositorySuite struct {
	suite.Suite
	db    *sql.DB
	repo  repository.GroupRepository
	users repository.UserRepository
}

func (s *GroupRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewGroupRepository(s.db)
	s.users = sqlite.NewUserRepository(s.db)
}

func (s *GroupRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *GroupRepositorySuite) newUser(username string) int64 {
	user, err := s.users.Upsert(context.Background(), username, "")
	s.Require().NoError(err)
	return user.ID
}

func (s *GroupRepositorySuite) newGroup(name string, createdBy int64) int64 {
	id, err := s.repo.Insert(context.Background(), models.Group{
		Name:         name,
		CreatedBy:    createdBy,
		BackgroundID: 3,
	})
	s.Require().NoError(err)
	return id
}

func (s *GroupRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()
	userID := s.newUser("fern")

	id, err := s.repo.Insert(ctx, models.Group{
		Name:         "Garden Gang",
		Description:  "weekend wanderers",
		CreatedBy:    userID,
		BackgroundID: 4,
	})
	s.Require().NoError(err)
	s.Assert().Greater(id, int64(0))

	group, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(group)
	s.Assert().Equal("Garden Gang", group.Name)
	s.Assert().Equal(0, group.Progress)
	s.Assert().Equal(4, group.BackgroundID)
}

func (s *GroupRepositorySuite) TestGet_NotFound() {
	group, err := s.repo.Get(context.Background(), 99999)
	s.Assert().NoError(err)
	s.Assert().Nil(group)
}

func (s *GroupRepositorySuite) TestMembers() {
	ctx := context.Background()
	fern := s.newUser("fern")
	moss := s.newUser("moss")
	groupID := s.newGroup("Garden Gang", fern)

	s.Require().NoError(s.repo.AddMember(ctx, groupID, fern))
	s.Require().NoError(s.repo.AddMember(ctx, groupID, moss))
	// joining twice is a no-op
	s.Require().NoError(s.repo.AddMember(ctx, groupID, moss))

	members, err := s.repo.Members(ctx, groupID)
	s.Require().NoError(err)
	s.Require().Len(members, 2)
	// no survey yet, so the default plant shows
	s.Assert().Equal(survey.DefaultPlant, members[0].PlantMatch)

	ok, err := s.repo.IsMember(ctx, groupID, moss)
	s.Require().NoError(err)
	s.Assert().True(ok)

	ok, err = s.repo.IsMember(ctx, groupID, 424242)
	s.Require().NoError(err)
	s.Assert().False(ok)
}

func (s *GroupRepositorySuite) TestListByMember() {
	ctx := context.Background()
	fern := s.newUser("fern")
	moss := s.newUser("moss")

	g1 := s.newGroup("Garden Gang", fern)
	g2 := s.newGroup("Moss Patrol", moss)
	s.Require().NoError(s.repo.AddMember(ctx, g1, fern))
	s.Require().NoError(s.repo.AddMember(ctx, g2, moss))
	s.Require().NoError(s.repo.AddMember(ctx, g2, fern))

	groups, err := s.repo.List(ctx, models.GroupFilter{})
	s.Require().NoError(err)
	s.Assert().Len(groups, 2)

	mine, err := s.repo.List(ctx, models.GroupFilter{MemberID: moss})
	s.Require().NoError(err)
	s.Require().Len(mine, 1)
	s.Assert().Equal("Moss Patrol", mine[0].Name)
}

func (s *GroupRepositorySuite) TestIncrementProgressCapped() {
	ctx := context.Background()
	fern := s.newUser("fern")
	groupID := s.newGroup("Garden Gang", fern)

	for want := 1; want <= models.MaxGroupProgress; want++ {
		progress, err := s.repo.IncrementProgress(ctx, groupID)
		s.Require().NoError(err)
		s.Assert().Equal(want, progress)
	}

	// further increments do not move a full meter
	progress, err := s.repo.IncrementProgress(ctx, groupID)
	s.Require().NoError(err)
	s.Assert().Equal(models.MaxGroupProgress, progress)
}

func (s *GroupRepositorySuite) TestIncrementProgress_MissingGroup() {
	_, err := s.repo.IncrementProgress(context.Background(), 99999)
	s.Assert().ErrorIs(err, repository.ErrGroupNotFound)
}

func TestGroupRepositorySuite(t *testing.T) {
	suite.Run(t, new(GroupRepositorySuite))
}
