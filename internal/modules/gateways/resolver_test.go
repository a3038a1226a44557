package gateways

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&GatewayConfig{}))
	return db
}

func seedConfig(t *testing.T, db *gorm.DB, mode string, testValues, liveValues string, active bool) {
	t.Helper()
	now := time.Now()
	cfg := GatewayConfig{
		ID:          uuid.NewString(),
		GatewayName: "zalopay",
		Mode:        mode,
		IsActive:    active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if testValues != "" {
		cfg.TestValues = []byte(testValues)
	}
	if liveValues != "" {
		cfg.LiveValues = []byte(liveValues)
	}
	require.NoError(t, db.Create(&cfg).Error)
}

func TestResolveTestMode(t *testing.T) {
	db := newTestDB(t)
	seedConfig(t, db, ModeTest,
		`{"app_id":"553","key1":"sandbox-k1","key2":"sandbox-k2"}`,
		`{"app_id":"900","key1":"live-k1","key2":"live-k2"}`,
		true)

	creds, err := NewResolver(db).Resolve(context.Background(), "zalopay")
	require.NoError(t, err)

	assert.Equal(t, ModeTest, creds.Mode)
	assert.Equal(t, "553", creds.AppID)
	assert.Equal(t, "sandbox-k1", creds.Key1)
	assert.Equal(t, "sandbox-k2", creds.Key2)
}

func TestResolveLiveMode(t *testing.T) {
	db := newTestDB(t)
	seedConfig(t, db, ModeLive,
		`{"app_id":"553","key1":"sandbox-k1","key2":"sandbox-k2"}`,
		`{"app_id":"900","key1":"live-k1","key2":"live-k2"}`,
		true)

	creds, err := NewResolver(db).Resolve(context.Background(), "zalopay")
	require.NoError(t, err)

	assert.Equal(t, ModeLive, creds.Mode)
	assert.Equal(t, "900", creds.AppID)
	assert.Equal(t, "live-k1", creds.Key1)
	assert.Equal(t, "live-k2", creds.Key2)
}

func TestResolveMissingConfig(t *testing.T) {
	db := newTestDB(t)

	_, err := NewResolver(db).Resolve(context.Background(), "zalopay")
	assert.ErrorIs(t, err, ErrConfigMissing)
}

func TestResolveInactiveConfig(t *testing.T) {
	db := newTestDB(t)
	seedConfig(t, db, ModeTest,
		`{"app_id":"553","key1":"k1","key2":"k2"}`, "", false)

	_, err := NewResolver(db).Resolve(context.Background(), "zalopay")
	assert.ErrorIs(t, err, ErrConfigMissing)
}

func TestResolveUnknownModeRejected(t *testing.T) {
	db := newTestDB(t)
	// "prod" is a typo for "live"; resolution must refuse to guess
	seedConfig(t, db, "prod",
		`{"app_id":"553","key1":"k1","key2":"k2"}`,
		`{"app_id":"900","key1":"k1","key2":"k2"}`,
		true)

	_, err := NewResolver(db).Resolve(context.Background(), "zalopay")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestResolveBadValues(t *testing.T) {
	db := newTestDB(t)
	seedConfig(t, db, ModeTest, `{not json`, "", true)

	_, err := NewResolver(db).Resolve(context.Background(), "zalopay")
	assert.ErrorIs(t, err, ErrBadValues)
}

func TestResolveIncompleteValues(t *testing.T) {
	db := newTestDB(t)
	seedConfig(t, db, ModeTest, `{"app_id":"553","key1":"k1"}`, "", true)

	_, err := NewResolver(db).Resolve(context.Background(), "zalopay")
	assert.ErrorIs(t, err, ErrBadValues)
}
