package gateways

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ModeTest = "test"
	ModeLive = "live"
)

type GatewayConfig struct {
	ID          string         `gorm:"type:char(36);primaryKey"`
	GatewayName string         `gorm:"type:varchar(64);not null;uniqueIndex:ux_gateway_configs_name"`
	Mode        string         `gorm:"type:varchar(8);not null"`
	TestValues  datatypes.JSON `gorm:"type:json"`
	LiveValues  datatypes.JSON `gorm:"type:json"`
	IsActive    bool           `gorm:"not null;default:true"`
	CreatedAt   time.Time      `gorm:"type:datetime(3);not null"`
	UpdatedAt   time.Time      `gorm:"type:datetime(3);not null"`
}

func (GatewayConfig) TableName() string { return "gateway_configs" }

// Credentials is the resolved key set for one mode. Key1 signs outbound
// orders, Key2 verifies inbound callbacks; the two are never interchangeable.
type Credentials struct {
	Mode  string
	AppID string
	Key1  string
	Key2  string
}
