package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RateDecision is the outcome of a rate-limit check
type RateDecision int

const (
	RateAllowed RateDecision = iota
	RateLimited              // window ceiling reached
	RateTooSoon              // minimum gap between submissions not elapsed
)

// QRGuardRepository backs the two defenses on the public QR endpoint: the
// clientRequestId idempotency store and the per-(IP, table) rate window.
// Both stores must behave atomically under concurrent submissions, so the
// implementations rely on unique-index inserts and conditional updates, not
// read-then-write.
type QRGuardRepository interface {
	// ReserveRequestKey atomically claims a clientRequestId. It returns
	// false when the key is already claimed and unexpired (a replay).
	ReserveRequestKey(ctx context.Context, clientRequestID, tableNumber string, ttl time.Duration) (bool, error)
	// ReleaseRequestKey frees a claimed key after the guarded submission
	// failed downstream, so the client can legitimately retry.
	ReleaseRequestKey(ctx context.Context, clientRequestID string) error
	// AttachOrder records the order created under a claimed key.
	AttachOrder(ctx context.Context, clientRequestID string, orderID uuid.UUID) error
	// Allow advances the rate window for key ("ip:table") and decides
	// whether this submission may proceed.
	Allow(ctx context.Context, key string, window time.Duration, max int, minGap time.Duration) (RateDecision, error)
	// DeleteExpired sweeps expired request keys and stale rate windows.
	DeleteExpired(ctx context.Context, windowRetention time.Duration) error
}
