package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/domen5/TaskTrail-sub000/internal/apperr"
	"github.com/domen5/TaskTrail-sub000/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.TokenVersion{}))
	return db
}

func TestVersionStore_EnsureCreatesAtOne(t *testing.T) {
	s := NewVersionStore(newTestDB(t))
	ctx := context.Background()

	v, err := s.Ensure(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	// second login keeps the existing record
	v, err = s.Ensure(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestVersionStore_GetMissing(t *testing.T) {
	s := NewVersionStore(newTestDB(t))

	_, err := s.Get(context.Background(), 99)
	assert.True(t, errors.Is(err, apperr.ErrVersionMissing))
}

func TestVersionStore_Increment(t *testing.T) {
	s := NewVersionStore(newTestDB(t))
	ctx := context.Background()

	_, err := s.Ensure(ctx, 1)
	require.NoError(t, err)

	v, err := s.Increment(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	v, err = s.Increment(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	v, err = s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, v)
}

func TestVersionStore_IncrementMissingIsFatal(t *testing.T) {
	s := NewVersionStore(newTestDB(t))

	// refresh implies a prior login; the record is never lazily created here
	_, err := s.Increment(context.Background(), 42)
	assert.True(t, errors.Is(err, apperr.ErrVersionMissing))
}
