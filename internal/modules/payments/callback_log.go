package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/sakevn/Gateways/internal/storage"
)

// CallbackEvent is the audit row written for every callback attempt,
// verified or not. MAC mismatches are recorded too; that is the audit trail
// for signature failures.
type CallbackEvent struct {
	ID         string         `gorm:"type:char(36);primaryKey"`
	Gateway    string         `gorm:"type:varchar(64);not null;index:ix_callback_events_gateway_trans,priority:1"`
	AppTransID string         `gorm:"type:varchar(80);not null;index:ix_callback_events_gateway_trans,priority:2"`
	Verified   bool           `gorm:"not null"`
	Payload    datatypes.JSON `gorm:"type:json;not null"`
	ArchiveKey *string        `gorm:"type:varchar(255)"`
	ReceivedAt time.Time      `gorm:"type:datetime(3);not null"`
}

func (CallbackEvent) TableName() string { return "callback_events" }

// CallbackLog persists callback attempts and archives the raw body through
// the storage layer. It is an audit trail only; idempotency lives in the
// conditional update, not here.
type CallbackLog struct {
	db     *gorm.DB
	store  storage.Storage // nil disables archiving
	logger *slog.Logger
}

func NewCallbackLog(db *gorm.DB, store storage.Storage) *CallbackLog {
	return &CallbackLog{db: db, store: store, logger: slog.Default()}
}

func (l *CallbackLog) SetLogger(logger *slog.Logger) {
	l.logger = logger
}

func (l *CallbackLog) Record(ctx context.Context, gateway, appTransID string, verified bool, rawBody []byte) {
	var archiveKey *string
	if l.store != nil {
		res, err := l.store.Put(ctx, bytes.NewReader(rawBody), storage.PutInput{
			Filename:    "callback.json",
			ContentType: "application/json",
			Size:        int64(len(rawBody)),
		})
		if err != nil {
			l.logger.ErrorContext(ctx, "callback archive failed",
				"gateway", gateway, "app_trans_id", appTransID, "err", err)
		} else {
			archiveKey = &res.Key
		}
	}

	ev := CallbackEvent{
		ID:         uuid.NewString(),
		Gateway:    gateway,
		AppTransID: appTransID,
		Verified:   verified,
		Payload:    jsonPayload(rawBody),
		ArchiveKey: archiveKey,
		ReceivedAt: time.Now(),
	}

	if err := l.db.WithContext(ctx).Create(&ev).Error; err != nil {
		// audit write failures must not block callback handling
		l.logger.ErrorContext(ctx, "callback audit write failed",
			"gateway", gateway, "app_trans_id", appTransID, "err", err)
	}
}

// jsonPayload keeps the column insertable even when a caller posts garbage:
// non-JSON bodies are stored as a JSON string.
func jsonPayload(raw []byte) datatypes.JSON {
	if json.Valid(raw) {
		return datatypes.JSON(raw)
	}
	quoted, _ := json.Marshal(string(raw))
	return datatypes.JSON(quoted)
}
