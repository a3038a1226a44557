package config

import "os"

type SMTPConfig struct {
	Host          string
	Port          string
	User          string
	Pass          string
	TLSMode       string // "", "starttls", "tls"
	SkipVerifyTLS bool
}

type AppConfig struct {
	ListenAddr string
	DBDSN      string

	// PublicBaseURL is the externally reachable base URL of this service;
	// the gateway callback route is registered under it.
	PublicBaseURL string

	SMTP SMTPConfig
}

func FromEnv() AppConfig {
	return AppConfig{
		ListenAddr:    envOr("LISTEN_ADDR", ":8080"),
		DBDSN:         os.Getenv("DB_DSN"),
		PublicBaseURL: envOr("PUBLIC_BASE_URL", "http://localhost:8080"),
		SMTP: SMTPConfig{
			Host:          envOr("SMTP_HOST", "localhost"),
			Port:          envOr("SMTP_PORT", "1025"),
			User:          os.Getenv("SMTP_USER"),
			Pass:          os.Getenv("SMTP_PASS"),
			TLSMode:       os.Getenv("SMTP_TLS_MODE"),
			SkipVerifyTLS: os.Getenv("SMTP_TLS_SKIP_VERIFY") == "1",
		},
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
