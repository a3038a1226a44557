package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sakevn/Gateways/internal/modules/gateways"
)

// Seeds (or updates) the zalopay row in gateway_configs.
func main() {
	_ = godotenv.Load()

	mode := flag.String("mode", gateways.ModeTest, "gateway mode (test|live)")
	appID := flag.String("app-id", "", "ZaloPay app_id")
	key1 := flag.String("key1", "", "order signing key")
	key2 := flag.String("key2", "", "callback verification key")
	flag.Parse()

	if *mode != gateways.ModeTest && *mode != gateways.ModeLive {
		log.Fatalf("invalid -mode %q: must be test or live", *mode)
	}
	if *appID == "" || *key1 == "" || *key2 == "" {
		log.Fatal("-app-id, -key1 and -key2 are required")
	}

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN environment variable is required")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	values, err := json.Marshal(map[string]string{
		"app_id": *appID,
		"key1":   *key1,
		"key2":   *key2,
	})
	if err != nil {
		log.Fatalf("Failed to marshal values: %v", err)
	}

	now := time.Now()
	cfg := gateways.GatewayConfig{
		ID:          uuid.NewString(),
		GatewayName: "zalopay",
		Mode:        *mode,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if *mode == gateways.ModeTest {
		cfg.TestValues = values
	} else {
		cfg.LiveValues = values
	}

	// upsert on gateway_name; only the active mode's blob is replaced
	assign := map[string]any{"mode": cfg.Mode, "is_active": true, "updated_at": now}
	if *mode == gateways.ModeTest {
		assign["test_values"] = values
	} else {
		assign["live_values"] = values
	}

	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "gateway_name"}},
		DoUpdates: clause.Assignments(assign),
	}).Create(&cfg).Error
	if err != nil {
		log.Fatalf("Failed to seed gateway config: %v", err)
	}

	log.Printf("✓ zalopay config seeded (mode=%s)", *mode)
}
