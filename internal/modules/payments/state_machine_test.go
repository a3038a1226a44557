package payments

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
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
	require.NoError(t, db.AutoMigrate(&Payment{}, &CallbackEvent{}))
	return db
}

func seedPayment(t *testing.T, db *gorm.DB, hook string) Payment {
	t.Helper()
	now := time.Now()
	p := Payment{
		ID:               uuid.NewString(),
		PaymentAmount:    decimal.RequireFromString("10.00"),
		PayerInformation: []byte(`{"email":"a@b.com","name":"Anh"}`),
		IsPaid:           false,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if hook != "" {
		p.SuccessHook = &hook
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func transIDFor(p Payment) string {
	return "240101_" + p.ID
}

func TestApplyCallbackTransition(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepo(db)

	var hooked []Payment
	hooks := NewHookRegistry()
	hooks.Register("payment_receipt_email", func(ctx context.Context, p Payment) error {
		hooked = append(hooked, p)
		return nil
	})

	p := seedPayment(t, db, "payment_receipt_email")
	sm := NewStateMachine(repo, hooks)

	got, transitioned, err := sm.ApplyCallback(context.Background(), transIDFor(p), "zalopay")
	require.NoError(t, err)
	assert.True(t, transitioned)

	assert.True(t, got.IsPaid)
	require.NotNil(t, got.TransactionID)
	assert.Equal(t, transIDFor(p), *got.TransactionID)
	require.NotNil(t, got.PaymentMethod)
	assert.Equal(t, "zalopay", *got.PaymentMethod)

	require.Len(t, hooked, 1)
	assert.Equal(t, p.ID, hooked[0].ID)
	assert.True(t, hooked[0].IsPaid, "hook sees the updated record")
}

func TestApplyCallbackIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepo(db)

	hookCalls := 0
	hooks := NewHookRegistry()
	hooks.Register("payment_receipt_email", func(ctx context.Context, p Payment) error {
		hookCalls++
		return nil
	})

	p := seedPayment(t, db, "payment_receipt_email")
	sm := NewStateMachine(repo, hooks)

	first, transitioned, err := sm.ApplyCallback(context.Background(), transIDFor(p), "zalopay")
	require.NoError(t, err)
	require.True(t, transitioned)

	// duplicate delivery: same transaction, same verified callback
	second, transitioned, err := sm.ApplyCallback(context.Background(), transIDFor(p), "zalopay")
	require.NoError(t, err)
	assert.False(t, transitioned)

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.IsPaid)
	assert.Equal(t, *first.TransactionID, *second.TransactionID)
	assert.Equal(t, 1, hookCalls, "hook fires at most once")
}

func TestApplyCallbackUnknownTransaction(t *testing.T) {
	db := newTestDB(t)
	sm := NewStateMachine(NewRepo(db), NewHookRegistry())

	_, _, err := sm.ApplyCallback(context.Background(), "240101_"+uuid.NewString(), "zalopay")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestApplyCallbackMalformedTransID(t *testing.T) {
	db := newTestDB(t)
	sm := NewStateMachine(NewRepo(db), NewHookRegistry())

	_, _, err := sm.ApplyCallback(context.Background(), "garbage", "zalopay")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestApplyCallbackUnregisteredHook(t *testing.T) {
	db := newTestDB(t)
	p := seedPayment(t, db, "no_such_hook")
	sm := NewStateMachine(NewRepo(db), NewHookRegistry())

	got, transitioned, err := sm.ApplyCallback(context.Background(), transIDFor(p), "zalopay")
	require.NoError(t, err)
	assert.True(t, transitioned)
	assert.True(t, got.IsPaid, "missing hook never blocks the transition")
}

func TestApplyCallbackHookErrorKeepsRecordPaid(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepo(db)

	hooks := NewHookRegistry()
	hooks.Register("payment_receipt_email", func(ctx context.Context, p Payment) error {
		return assert.AnError
	})

	p := seedPayment(t, db, "payment_receipt_email")
	sm := NewStateMachine(repo, hooks)

	_, transitioned, err := sm.ApplyCallback(context.Background(), transIDFor(p), "zalopay")
	require.NoError(t, err)
	assert.True(t, transitioned)

	reloaded, err := repo.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.IsPaid)
}

func TestApplyCallbackPaidViaOtherTransaction(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepo(db)

	p := seedPayment(t, db, "")
	otherTx := "231231_" + p.ID
	rows, err := repo.ConditionalMarkPaid(context.Background(), otherTx, "zalopay")
	require.NoError(t, err)
	require.EqualValues(t, 1, rows)

	sm := NewStateMachine(repo, NewHookRegistry())

	got, transitioned, err := sm.ApplyCallback(context.Background(), transIDFor(p), "zalopay")
	require.NoError(t, err)
	assert.False(t, transitioned, "already-paid record is a no-op")
	assert.True(t, got.IsPaid)
	assert.Equal(t, otherTx, *got.TransactionID, "original transaction id untouched")
}

func TestConditionalMarkPaidOnlyOnce(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepo(db)
	p := seedPayment(t, db, "")

	rows, err := repo.ConditionalMarkPaid(context.Background(), transIDFor(p), "zalopay")
	require.NoError(t, err)
	assert.EqualValues(t, 1, rows)

	// second attempt hits the is_paid guard
	rows, err = repo.ConditionalMarkPaid(context.Background(), transIDFor(p), "zalopay")
	require.NoError(t, err)
	assert.EqualValues(t, 0, rows)
}

func TestFindUnpaidExcludesPaid(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepo(db)
	p := seedPayment(t, db, "")

	got, err := repo.FindUnpaid(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	_, err = repo.ConditionalMarkPaid(context.Background(), transIDFor(p), "zalopay")
	require.NoError(t, err)

	_, err = repo.FindUnpaid(context.Background(), p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
