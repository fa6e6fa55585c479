package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dinetrack/dinetrack-api/internal/domain/entity"
	infraRepo "github.com/dinetrack/dinetrack-api/internal/infrastructure/repository"
	"github.com/dinetrack/dinetrack-api/pkg/apperror"
)

func newDayFixture(t *testing.T) (*BusinessDayService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewBusinessDayService(
		infraRepo.NewBusinessDayRepository(db),
		infraRepo.NewAuditRepository(db),
	)
	return svc, db
}

func TestOpenDay_SingleOpenDay(t *testing.T) {
	svc, db := newDayFixture(t)
	ctx := context.Background()

	day, err := svc.OpenDay(ctx, &OpenDayInput{OpeningCash: 50000, ActorID: uuid.New()})
	require.NoError(t, err)
	assert.EqualValues(t, 50000, day.OpeningCash)
	assert.EqualValues(t, 50000, day.ExpectedCash)

	_, err = svc.OpenDay(ctx, &OpenDayInput{OpeningCash: 10000, ActorID: uuid.New()})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))

	var log entity.AuditLog
	require.NoError(t, db.First(&log, "action = ?", entity.AuditDayOpened).Error)
}

func TestOpenDay_NegativeOpeningCash(t *testing.T) {
	svc, _ := newDayFixture(t)

	_, err := svc.OpenDay(context.Background(), &OpenDayInput{OpeningCash: -1, ActorID: uuid.New()})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestCloseDay_DrawerReconciliation(t *testing.T) {
	svc, _ := newDayFixture(t)
	ctx := context.Background()
	actorID := uuid.New()

	day, err := svc.OpenDay(ctx, &OpenDayInput{OpeningCash: 50000, ActorID: actorID})
	require.NoError(t, err)

	// Counted 30 short of the float.
	closed, err := svc.CloseDay(ctx, &CloseDayInput{
		DayID:       day.ID,
		ClosingCash: 49970,
		ActorID:     actorID,
	})
	require.NoError(t, err)

	assert.EqualValues(t, 50000, closed.ExpectedCash)
	assert.EqualValues(t, -30, closed.CashDifference)
	require.NotNil(t, closed.ClosedAt)
	require.NotNil(t, closed.ClosedBy)
	assert.Equal(t, actorID, *closed.ClosedBy)
}

func TestCloseDay_IsTerminal(t *testing.T) {
	svc, _ := newDayFixture(t)
	ctx := context.Background()

	day, err := svc.OpenDay(ctx, &OpenDayInput{OpeningCash: 10000, ActorID: uuid.New()})
	require.NoError(t, err)

	_, err = svc.CloseDay(ctx, &CloseDayInput{DayID: day.ID, ClosingCash: 10000, ActorID: uuid.New()})
	require.NoError(t, err)

	_, err = svc.CloseDay(ctx, &CloseDayInput{DayID: day.ID, ClosingCash: 10000, ActorID: uuid.New()})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	// A new day can open after the close.
	_, err = svc.OpenDay(ctx, &OpenDayInput{OpeningCash: 20000, ActorID: uuid.New()})
	require.NoError(t, err)
}

func TestCurrent_NoOpenDay(t *testing.T) {
	svc, _ := newDayFixture(t)

	_, err := svc.Current(context.Background())
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
