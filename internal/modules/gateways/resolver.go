package gateways

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type Resolver struct{ db *gorm.DB }

func NewResolver(db *gorm.DB) *Resolver { return &Resolver{db: db} }

type modeValues struct {
	AppID string `json:"app_id"`
	Key1  string `json:"key1"`
	Key2  string `json:"key2"`
}

// Resolve loads the active config row for the named gateway and returns the
// credential set for its current mode. Mode must be exactly "test" or "live";
// anything else fails with ErrUnknownMode.
func (r *Resolver) Resolve(ctx context.Context, name string) (Credentials, error) {
	var cfg GatewayConfig
	err := r.db.WithContext(ctx).
		First(&cfg, "gateway_name = ? AND is_active = 1", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Credentials{}, ErrConfigMissing
		}
		return Credentials{}, err
	}

	var blob []byte
	switch cfg.Mode {
	case ModeTest:
		blob = cfg.TestValues
	case ModeLive:
		blob = cfg.LiveValues
	default:
		return Credentials{}, fmt.Errorf("%w: %q", ErrUnknownMode, cfg.Mode)
	}

	var v modeValues
	if err := json.Unmarshal(blob, &v); err != nil {
		return Credentials{}, fmt.Errorf("%w: %v", ErrBadValues, err)
	}
	if v.AppID == "" || v.Key1 == "" || v.Key2 == "" {
		return Credentials{}, fmt.Errorf("%w: app_id/key1/key2 required", ErrBadValues)
	}

	return Credentials{
		Mode:  cfg.Mode,
		AppID: v.AppID,
		Key1:  v.Key1,
		Key2:  v.Key2,
	}, nil
}
