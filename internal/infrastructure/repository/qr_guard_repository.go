package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dinetrack/dinetrack-api/internal/domain/entity"
	domainRepo "github.com/dinetrack/dinetrack-api/internal/domain/repository"
)

type qrGuardRepository struct {
	db *gorm.DB
}

// NewQRGuardRepository creates a new QR guard repository
func NewQRGuardRepository(db *gorm.DB) domainRepo.QRGuardRepository {
	return &qrGuardRepository{db: db}
}

// ReserveRequestKey claims a clientRequestId by inserting against the unique
// index on client_request_id. Concurrent submissions with the same key race on
// the insert itself, so exactly one wins regardless of timing.
func (r *qrGuardRepository) ReserveRequestKey(ctx context.Context, clientRequestID, tableNumber string, ttl time.Duration) (bool, error) {
	key := &entity.QrRequestKey{
		ClientRequestID: clientRequestID,
		TableNumber:     tableNumber,
		ExpiresAt:       time.Now().Add(ttl),
	}

	err := r.db.WithContext(ctx).Create(key).Error
	if err == nil {
		return true, nil
	}
	if !IsUniqueViolation(err) {
		return false, err
	}

	// Key already claimed. If the prior claim expired, take it over;
	// otherwise this is a replay.
	var existing entity.QrRequestKey
	if err := r.db.WithContext(ctx).First(&existing, "client_request_id = ?", clientRequestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Swept between our insert and this read. Treat as replay and
			// let the client retry.
			return false, nil
		}
		return false, err
	}
	if !existing.IsExpired() {
		return false, nil
	}

	res := r.db.WithContext(ctx).Model(&entity.QrRequestKey{}).
		Where("client_request_id = ? AND expires_at <= ?", clientRequestID, time.Now()).
		Updates(map[string]interface{}{
			"table_number": tableNumber,
			"order_id":     nil,
			"expires_at":   time.Now().Add(ttl),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *qrGuardRepository) ReleaseRequestKey(ctx context.Context, clientRequestID string) error {
	return r.db.WithContext(ctx).
		Delete(&entity.QrRequestKey{}, "client_request_id = ?", clientRequestID).Error
}

func (r *qrGuardRepository) AttachOrder(ctx context.Context, clientRequestID string, orderID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.QrRequestKey{}).
		Where("client_request_id = ?", clientRequestID).
		Update("order_id", orderID).Error
}

// Allow advances the fixed window for key with a conditional UPDATE, so two
// concurrent submissions cannot both slip under the ceiling.
func (r *qrGuardRepository) Allow(ctx context.Context, key string, window time.Duration, max int, minGap time.Duration) (domainRepo.RateDecision, error) {
	now := time.Now()
	windowFloor := now.Add(-window)
	gapFloor := now.Add(-minGap)

	// Fast path: increment inside the current window.
	res := r.db.WithContext(ctx).Model(&entity.QrRateWindow{}).
		Where("key = ? AND window_started_at > ? AND count < ? AND last_seen_at <= ?",
			key, windowFloor, max, gapFloor).
		Updates(map[string]interface{}{
			"count":        gorm.Expr("count + 1"),
			"last_seen_at": now,
		})
	if res.Error != nil {
		return domainRepo.RateAllowed, res.Error
	}
	if res.RowsAffected == 1 {
		return domainRepo.RateAllowed, nil
	}

	var existing entity.QrRateWindow
	err := r.db.WithContext(ctx).First(&existing, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		created := &entity.QrRateWindow{
			Key:             key,
			WindowStartedAt: now,
			Count:           1,
			LastSeenAt:      now,
		}
		if err := r.db.WithContext(ctx).Create(created).Error; err != nil {
			if IsUniqueViolation(err) {
				// Lost the creation race; the winner just submitted.
				return domainRepo.RateTooSoon, nil
			}
			return domainRepo.RateAllowed, err
		}
		return domainRepo.RateAllowed, nil
	}
	if err != nil {
		return domainRepo.RateAllowed, err
	}

	// The gap applies across window boundaries too.
	if now.Sub(existing.LastSeenAt) < minGap {
		return domainRepo.RateTooSoon, nil
	}

	if existing.WindowStartedAt.After(windowFloor) {
		return domainRepo.RateLimited, nil
	}

	// Window expired; start a new one.
	reset := r.db.WithContext(ctx).Model(&entity.QrRateWindow{}).
		Where("key = ? AND window_started_at <= ?", key, windowFloor).
		Updates(map[string]interface{}{
			"window_started_at": now,
			"count":             1,
			"last_seen_at":      now,
		})
	if reset.Error != nil {
		return domainRepo.RateAllowed, reset.Error
	}
	if reset.RowsAffected == 0 {
		// Another submission reset the window first.
		return domainRepo.RateTooSoon, nil
	}
	return domainRepo.RateAllowed, nil
}

func (r *qrGuardRepository) DeleteExpired(ctx context.Context, windowRetention time.Duration) error {
	now := time.Now()
	if err := r.db.WithContext(ctx).
		Delete(&entity.QrRequestKey{}, "expires_at < ?", now).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Delete(&entity.QrRateWindow{}, "last_seen_at < ?", now.Add(-windowRetention)).Error
}
