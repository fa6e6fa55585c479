package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dinetrack/dinetrack-api/internal/domain/enum"
	infraRepo "github.com/dinetrack/dinetrack-api/internal/infrastructure/repository"
	"github.com/dinetrack/dinetrack-api/pkg/apperror"
)

func newSessionFixture(t *testing.T) (*SessionService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewSessionService(
		infraRepo.NewSessionRepository(db),
		infraRepo.NewTableRepository(db),
		infraRepo.NewBusinessDayRepository(db),
	)
	return svc, db
}

func TestOpenDineIn_OneActiveSessionPerTable(t *testing.T) {
	svc, db := newSessionFixture(t)
	ctx := context.Background()

	seedDay(t, db)
	table := seedTable(t, db, "3", true)

	session, err := svc.OpenDineIn(ctx, &OpenDineInInput{
		TableID:    table.ID,
		GuestCount: 4,
		ActorID:    uuid.New(),
	})
	require.NoError(t, err)
	assert.Equal(t, enum.OrderTypeDineIn, session.OrderType)
	assert.Equal(t, enum.SessionActive, session.Status)
	assert.Equal(t, 4, session.GuestCount)

	_, err = svc.OpenDineIn(ctx, &OpenDineInInput{TableID: table.ID, ActorID: uuid.New()})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))

	// Closing the session frees the table.
	session.Status = enum.SessionClosed
	require.NoError(t, db.Save(session).Error)

	_, err = svc.OpenDineIn(ctx, &OpenDineInInput{TableID: table.ID, ActorID: uuid.New()})
	require.NoError(t, err)
}

func TestOpenDineIn_RequiresOpenDay(t *testing.T) {
	svc, db := newSessionFixture(t)
	table := seedTable(t, db, "3", true)

	_, err := svc.OpenDineIn(context.Background(), &OpenDineInInput{
		TableID: table.ID,
		ActorID: uuid.New(),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindPrecondition))
}

func TestOpenDineIn_InactiveTable(t *testing.T) {
	svc, db := newSessionFixture(t)
	seedDay(t, db)

	table := seedTable(t, db, "3", true)
	table.IsActive = false
	require.NoError(t, db.Save(table).Error)

	_, err := svc.OpenDineIn(context.Background(), &OpenDineInInput{
		TableID: table.ID,
		ActorID: uuid.New(),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestOpenTakeaway_NoTableNeeded(t *testing.T) {
	svc, db := newSessionFixture(t)
	seedDay(t, db)

	session, err := svc.OpenTakeaway(context.Background(), &OpenTakeawayInput{
		CustomerName: "Walk-in",
		ActorID:      uuid.New(),
	})
	require.NoError(t, err)
	assert.Nil(t, session.TableID)
	assert.Equal(t, enum.OrderTypeTakeaway, session.OrderType)
}

func TestOpenDelivery_RequiresDispatchDetails(t *testing.T) {
	svc, db := newSessionFixture(t)
	seedDay(t, db)
	ctx := context.Background()

	_, err := svc.OpenDelivery(ctx, &OpenDeliveryInput{
		CustomerName: "Jo",
		ActorID:      uuid.New(),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	session, err := svc.OpenDelivery(ctx, &OpenDeliveryInput{
		CustomerName:    "Jo",
		CustomerPhone:   "555-0101",
		CustomerAddress: "12 Main St",
		DeliveryFee:     500,
		ActorID:         uuid.New(),
	})
	require.NoError(t, err)
	assert.Equal(t, enum.OrderTypeDelivery, session.OrderType)
	assert.EqualValues(t, 500, session.DeliveryFee)
}

func TestOpenDelivery_NegativeFee(t *testing.T) {
	svc, db := newSessionFixture(t)
	seedDay(t, db)

	_, err := svc.OpenDelivery(context.Background(), &OpenDeliveryInput{
		CustomerName:    "Jo",
		CustomerPhone:   "555-0101",
		CustomerAddress: "12 Main St",
		DeliveryFee:     -1,
		ActorID:         uuid.New(),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}
