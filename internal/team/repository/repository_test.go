package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	memberModel "github.com/festy23/querydsl_study/internal/member/model"
	teamModel "github.com/festy23/querydsl_study/internal/team/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&teamModel.Team{}, &memberModel.Member{}))
	return db
}

func newTestRepository(t *testing.T) (Repository, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	return New(db, zap.NewNop().Sugar(), nil), db
}

func TestRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo, _ := newTestRepository(t)

		team, err := repo.Create(ctx, "teamA")

		require.NoError(t, err)
		assert.NotZero(t, team.ID)
		assert.Equal(t, "teamA", team.Name)
	})

	t.Run("duplicate name", func(t *testing.T) {
		repo, _ := newTestRepository(t)

		_, err := repo.Create(ctx, "teamA")
		require.NoError(t, err)

		_, err = repo.Create(ctx, "teamA")
		assert.ErrorIs(t, err, teamModel.ErrTeamExists)
	})
}

func TestRepository_GetByName(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		repo, _ := newTestRepository(t)
		created, err := repo.Create(ctx, "teamB")
		require.NoError(t, err)

		team, err := repo.GetByName(ctx, "teamB")

		require.NoError(t, err)
		assert.Equal(t, created.ID, team.ID)
	})

	t.Run("not found", func(t *testing.T) {
		repo, _ := newTestRepository(t)

		_, err := repo.GetByName(ctx, "missing")

		assert.ErrorIs(t, err, teamModel.ErrTeamNotFound)
	})
}

func TestRepository_Members(t *testing.T) {
	ctx := context.Background()
	repo, db := newTestRepository(t)

	teamA, err := repo.Create(ctx, "teamA")
	require.NoError(t, err)
	teamB, err := repo.Create(ctx, "teamB")
	require.NoError(t, err)

	require.NoError(t, repo.AddMembers(ctx, teamA.ID, []teamModel.NewTeamMember{
		{Username: "member1", Age: 10},
		{Username: "", Age: 20},
	}))
	require.NoError(t, repo.AddMembers(ctx, teamB.ID, []teamModel.NewTeamMember{{Username: "member3", Age: 30}}))
	require.NoError(t, repo.AddMembers(ctx, teamB.ID, nil))

	members, err := repo.GetMembers(ctx, teamA.ID)
	require.NoError(t, err)

	require.Len(t, members, 2)
	assert.Equal(t, "member1", *members[0].Username)
	assert.Nil(t, members[1].Username)
	assert.Equal(t, 20, members[1].Age)

	var total int64
	require.NoError(t, db.Model(&memberModel.Member{}).Count(&total).Error)
	assert.Equal(t, int64(3), total)
}

func TestRepository_GetMembers_EmptyTeam(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)
	team, err := repo.Create(ctx, "empty")
	require.NoError(t, err)

	members, err := repo.GetMembers(ctx, team.ID)

	require.NoError(t, err)
	assert.Empty(t, members)
	assert.NotNil(t, members)
}

func TestRepository_WithTx(t *testing.T) {
	ctx := context.Background()
	repo, db := newTestRepository(t)

	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := repo.WithTx(tx).Create(ctx, "rolled-back")
		require.NoError(t, err)
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	_, err = repo.GetByName(ctx, "rolled-back")
	assert.ErrorIs(t, err, teamModel.ErrTeamNotFound)
}
