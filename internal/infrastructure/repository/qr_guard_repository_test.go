package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/dinetrack/dinetrack-api/internal/domain/entity"
	domainRepo "github.com/dinetrack/dinetrack-api/internal/domain/repository"
)

func newGuardDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.QrRequestKey{}, &entity.QrRateWindow{}))
	return db
}

func TestReserveRequestKey_FirstClaimWins(t *testing.T) {
	db := newGuardDB(t)
	repo := NewQRGuardRepository(db)
	ctx := context.Background()

	ok, err := repo.ReserveRequestKey(ctx, "req-1", "5", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ReserveRequestKey(ctx, "req-1", "5", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	// A different key is unaffected.
	ok, err = repo.ReserveRequestKey(ctx, "req-2", "5", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestReserveRequestKey_ExpiredKeyTakeover(t *testing.T) {
	db := newGuardDB(t)
	repo := NewQRGuardRepository(db)
	ctx := context.Background()

	stale := &entity.QrRequestKey{
		ClientRequestID: "req-old",
		TableNumber:     "5",
		ExpiresAt:       time.Now().Add(-time.Minute),
	}
	orderID := uuid.New()
	stale.OrderID = &orderID
	require.NoError(t, db.Create(stale).Error)

	ok, err := repo.ReserveRequestKey(ctx, "req-old", "6", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	// The takeover rebinds the key and clears the stale order reference.
	var key entity.QrRequestKey
	require.NoError(t, db.First(&key, "client_request_id = ?", "req-old").Error)
	assert.Equal(t, "6", key.TableNumber)
	assert.Nil(t, key.OrderID)
	assert.True(t, key.ExpiresAt.After(time.Now()))
}

func TestReleaseRequestKey_AllowsRetry(t *testing.T) {
	db := newGuardDB(t)
	repo := NewQRGuardRepository(db)
	ctx := context.Background()

	ok, err := repo.ReserveRequestKey(ctx, "req-fail", "5", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, repo.ReleaseRequestKey(ctx, "req-fail"))

	ok, err = repo.ReserveRequestKey(ctx, "req-fail", "5", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAllow_WindowCeiling(t *testing.T) {
	db := newGuardDB(t)
	repo := NewQRGuardRepository(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		decision, err := repo.Allow(ctx, "10.0.0.1:5", time.Minute, 3, 0)
		require.NoError(t, err)
		assert.Equal(t, domainRepo.RateAllowed, decision, "submission %d", i+1)
	}

	decision, err := repo.Allow(ctx, "10.0.0.1:5", time.Minute, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, domainRepo.RateLimited, decision)

	// A different key has its own window.
	decision, err = repo.Allow(ctx, "10.0.0.2:5", time.Minute, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, domainRepo.RateAllowed, decision)
}

func TestAllow_ExpiredWindowResets(t *testing.T) {
	db := newGuardDB(t)
	repo := NewQRGuardRepository(db)
	ctx := context.Background()

	// A full window that started two minutes ago.
	require.NoError(t, db.Create(&entity.QrRateWindow{
		Key:             "10.0.0.1:5",
		WindowStartedAt: time.Now().Add(-2 * time.Minute),
		Count:           3,
		LastSeenAt:      time.Now().Add(-2 * time.Minute),
	}).Error)

	decision, err := repo.Allow(ctx, "10.0.0.1:5", time.Minute, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, domainRepo.RateAllowed, decision)

	var window entity.QrRateWindow
	require.NoError(t, db.First(&window, "key = ?", "10.0.0.1:5").Error)
	assert.Equal(t, 1, window.Count)
	assert.WithinDuration(t, time.Now(), window.WindowStartedAt, 5*time.Second)
}

func TestAllow_MinGapCrossesWindowBoundary(t *testing.T) {
	db := newGuardDB(t)
	repo := NewQRGuardRepository(db)
	ctx := context.Background()

	// An expired window whose last submission was a moment ago.
	require.NoError(t, db.Create(&entity.QrRateWindow{
		Key:             "10.0.0.1:5",
		WindowStartedAt: time.Now().Add(-2 * time.Minute),
		Count:           1,
		LastSeenAt:      time.Now().Add(-500 * time.Millisecond),
	}).Error)

	decision, err := repo.Allow(ctx, "10.0.0.1:5", time.Minute, 3, 2*time.Second)
	require.NoError(t, err)
	assert.Equal(t, domainRepo.RateTooSoon, decision)
}

func TestDeleteExpired_SweepsKeysAndStaleWindows(t *testing.T) {
	db := newGuardDB(t)
	repo := NewQRGuardRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&entity.QrRequestKey{
		ClientRequestID: "req-dead",
		TableNumber:     "5",
		ExpiresAt:       time.Now().Add(-time.Minute),
	}).Error)
	require.NoError(t, db.Create(&entity.QrRequestKey{
		ClientRequestID: "req-live",
		TableNumber:     "5",
		ExpiresAt:       time.Now().Add(time.Minute),
	}).Error)
	require.NoError(t, db.Create(&entity.QrRateWindow{
		Key:             "stale",
		WindowStartedAt: time.Now().Add(-3 * time.Hour),
		Count:           1,
		LastSeenAt:      time.Now().Add(-3 * time.Hour),
	}).Error)
	require.NoError(t, db.Create(&entity.QrRateWindow{
		Key:             "recent",
		WindowStartedAt: time.Now(),
		Count:           1,
		LastSeenAt:      time.Now(),
	}).Error)

	require.NoError(t, repo.DeleteExpired(ctx, time.Hour))

	var keys []entity.QrRequestKey
	require.NoError(t, db.Find(&keys).Error)
	require.Len(t, keys, 1)
	assert.Equal(t, "req-live", keys[0].ClientRequestID)

	var windows []entity.QrRateWindow
	require.NoError(t, db.Find(&windows).Error)
	require.Len(t, windows, 1)
	assert.Equal(t, "recent", windows[0].Key)
}
