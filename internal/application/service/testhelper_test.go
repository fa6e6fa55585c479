package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/dinetrack/dinetrack-api/internal/domain/entity"
	"github.com/dinetrack/dinetrack-api/internal/domain/enum"
)

// newTestDB opens an isolated in-memory database per test and migrates the
// full schema, including the partial unique indexes the services rely on.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.Staff{},
		&entity.MenuCategory{},
		&entity.MenuItem{},
		&entity.ModifierGroup{},
		&entity.Modifier{},
		&entity.BusinessDay{},
		&entity.Table{},
		&entity.Session{},
		&entity.Order{},
		&entity.OrderItem{},
		&entity.OrderItemModifier{},
		&entity.Bill{},
		&entity.Payment{},
		&entity.AuditLog{},
		&entity.IdempotencyKey{},
		&entity.QrRequestKey{},
		&entity.QrRateWindow{},
	))

	require.NoError(t, db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS uidx_business_days_single_open
			ON business_days (status) WHERE status = 0`).Error)
	require.NoError(t, db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS uidx_sessions_active_table
			ON sessions (table_id) WHERE status = 0 AND table_id IS NOT NULL AND deleted_at IS NULL`).Error)

	return db
}

func seedDay(t *testing.T, db *gorm.DB) *entity.BusinessDay {
	t.Helper()
	day := &entity.BusinessDay{
		Status:      enum.BusinessDayOpen,
		OpenedAt:    time.Now(),
		OpenedBy:    uuid.New(),
		OpeningCash: 50000,
	}
	require.NoError(t, db.Create(day).Error)
	return day
}

func seedTable(t *testing.T, db *gorm.DB, number string, qrEnabled bool) *entity.Table {
	t.Helper()
	table := &entity.Table{
		TableNumber: number,
		Capacity:    4,
		QREnabled:   qrEnabled,
		IsActive:    true,
	}
	require.NoError(t, db.Create(table).Error)
	if !qrEnabled {
		// The entity's `gorm:"default:true"` tag makes Create drop the
		// zero-value false, so persist it explicitly.
		require.NoError(t, db.Model(table).Update("qr_enabled", false).Error)
	}
	return table
}

func seedSession(t *testing.T, db *gorm.DB, day *entity.BusinessDay, table *entity.Table, orderType enum.OrderType) *entity.Session {
	t.Helper()
	session := &entity.Session{
		BusinessDayID: day.ID,
		OrderType:     orderType,
		Status:        enum.SessionActive,
		GuestCount:    2,
		OpenedAt:      time.Now(),
		CreatedBy:     uuid.New(),
	}
	if table != nil {
		session.TableID = &table.ID
	}
	require.NoError(t, db.Create(session).Error)
	return session
}

func seedMenuItem(t *testing.T, db *gorm.DB, name string, price int64) *entity.MenuItem {
	t.Helper()
	category := &entity.MenuCategory{Name: name + " category", IsActive: true}
	require.NoError(t, db.Create(category).Error)
	item := &entity.MenuItem{
		CategoryID:  category.ID,
		Name:        name,
		Price:       price,
		IsAvailable: true,
		IsActive:    true,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

// seedOrder creates an order with one line per price in the given status
func seedOrder(t *testing.T, db *gorm.DB, session *entity.Session, status enum.OrderStatus, prices ...int64) *entity.Order {
	t.Helper()
	order := &entity.Order{
		SessionID:     session.ID,
		BusinessDayID: session.BusinessDayID,
		OrderNumber:   "MN-" + uuid.New().String()[:12],
		Source:        enum.OrderSourceManual,
		Status:        status,
	}
	require.NoError(t, db.Create(order).Error)

	for i, price := range prices {
		item := seedMenuItem(t, db, fmt.Sprintf("item %s %d", order.OrderNumber, i), price)
		line := &entity.OrderItem{
			OrderID:    order.ID,
			MenuItemID: item.ID,
			Quantity:   1,
			UnitPrice:  price,
			Subtotal:   price,
		}
		require.NoError(t, db.Create(line).Error)
	}
	return order
}

func floatPtr(v float64) *float64 { return &v }
func int64Ptr(v int64) *int64     { return &v }
