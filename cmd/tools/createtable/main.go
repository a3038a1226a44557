package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN environment variable is required")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get DB: %v", err)
	}

	sql := `
	CREATE TABLE IF NOT EXISTS payments (
	  id CHAR(36) NOT NULL,
	  payment_amount DECIMAL(12,2) NOT NULL,
	  payer_information JSON NOT NULL,
	  is_paid TINYINT(1) NOT NULL DEFAULT 0,
	  transaction_id VARCHAR(80) NULL,
	  payment_method VARCHAR(32) NULL,
	  success_hook VARCHAR(64) NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  UNIQUE KEY ux_payments_transaction_id (transaction_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS gateway_configs (
	  id CHAR(36) NOT NULL,
	  gateway_name VARCHAR(64) NOT NULL,
	  mode VARCHAR(8) NOT NULL,
	  test_values JSON NULL,
	  live_values JSON NULL,
	  is_active TINYINT(1) NOT NULL DEFAULT 1,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  UNIQUE KEY ux_gateway_configs_name (gateway_name)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS callback_events (
	  id CHAR(36) NOT NULL,
	  gateway VARCHAR(64) NOT NULL,
	  app_trans_id VARCHAR(80) NOT NULL,
	  verified TINYINT(1) NOT NULL,
	  payload JSON NOT NULL,
	  archive_key VARCHAR(255) NULL,
	  received_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  KEY ix_callback_events_gateway_trans (gateway, app_trans_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;
	`

	if _, err := sqlDB.Exec(sql); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}

	log.Println("✓ payments table created successfully")
	log.Println("✓ gateway_configs table created successfully")
	log.Println("✓ callback_events table created successfully")
}
