package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/posk43/api-final-yatube/internal/domain"
)

var testDBSeq int

// newTestDB opens a fresh in-memory SQLite database with the schema
// migrated. cache=shared keeps the database alive across pooled
// connections within one test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	testDBSeq++
	dsn := fmt.Sprintf("file:repotest%d?mode=memory&cache=shared", testDBSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	assert.NoError(t, err)

	sqlDB, err := db.DB()
	assert.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	assert.NoError(t, db.AutoMigrate(
		&domain.UserModel{},
		&domain.GroupModel{},
		&domain.PostModel{},
		&domain.CommentModel{},
		&domain.FollowModel{},
	))

	return db
}

func seedUsers(t *testing.T, db *gorm.DB) {
	t.Helper()
	users := []domain.UserModel{
		{ID: "user-1", Username: "alice"},
		{ID: "user-2", Username: "bob"},
		{ID: "user-3", Username: "bobette"},
	}
	assert.NoError(t, db.Create(&users).Error)
}

func TestFollowCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	seedUsers(t, db)
	repo := NewGormFollowRepository(db)
	ctx := context.Background()

	follow := &domain.Follow{FollowerID: "user-1", FollowingID: "user-2"}
	assert.NoError(t, repo.Create(ctx, follow))
	assert.NotZero(t, follow.ID)

	got, err := repo.GetByID(ctx, follow.ID)
	assert.NoError(t, err)
	assert.Equal(t, "alice", got.FollowerUsername)
	assert.Equal(t, "bob", got.FollowingUsername)
}

func TestFollowCreateDuplicateHitsUniqueIndex(t *testing.T) {
	db := newTestDB(t)
	seedUsers(t, db)
	repo := NewGormFollowRepository(db)
	ctx := context.Background()

	assert.NoError(t, repo.Create(ctx, &domain.Follow{FollowerID: "user-1", FollowingID: "user-2"}))

	err := repo.Create(ctx, &domain.Follow{FollowerID: "user-1", FollowingID: "user-2"})
	assert.ErrorIs(t, err, ErrAlreadyFollowing)
}

func TestFollowReversePairIsAllowed(t *testing.T) {
	db := newTestDB(t)
	seedUsers(t, db)
	repo := NewGormFollowRepository(db)
	ctx := context.Background()

	assert.NoError(t, repo.Create(ctx, &domain.Follow{FollowerID: "user-1", FollowingID: "user-2"}))
	assert.NoError(t, repo.Create(ctx, &domain.Follow{FollowerID: "user-2", FollowingID: "user-1"}))
}

func TestFollowListByFollowerWithSearch(t *testing.T) {
	db := newTestDB(t)
	seedUsers(t, db)
	repo := NewGormFollowRepository(db)
	ctx := context.Background()

	assert.NoError(t, repo.Create(ctx, &domain.Follow{FollowerID: "user-1", FollowingID: "user-2"}))
	assert.NoError(t, repo.Create(ctx, &domain.Follow{FollowerID: "user-1", FollowingID: "user-3"}))
	assert.NoError(t, repo.Create(ctx, &domain.Follow{FollowerID: "user-2", FollowingID: "user-1"}))

	all, err := repo.ListByFollower(ctx, "user-1", "")
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := repo.ListByFollower(ctx, "user-1", "bobette")
	assert.NoError(t, err)
	assert.Len(t, filtered, 1)
	assert.Equal(t, "bobette", filtered[0].FollowingUsername)

	substr, err := repo.ListByFollower(ctx, "user-1", "bob")
	assert.NoError(t, err)
	assert.Len(t, substr, 2)
}

func TestFollowExistsAndDelete(t *testing.T) {
	db := newTestDB(t)
	seedUsers(t, db)
	repo := NewGormFollowRepository(db)
	ctx := context.Background()

	follow := &domain.Follow{FollowerID: "user-1", FollowingID: "user-2"}
	assert.NoError(t, repo.Create(ctx, follow))

	exists, err := repo.Exists(ctx, "user-1", "user-2")
	assert.NoError(t, err)
	assert.True(t, exists)

	assert.NoError(t, repo.Delete(ctx, follow.ID))

	exists, err = repo.Exists(ctx, "user-1", "user-2")
	assert.NoError(t, err)
	assert.False(t, exists)

	assert.ErrorIs(t, repo.Delete(ctx, follow.ID), ErrFollowNotFound)
}
