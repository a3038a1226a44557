package main

import (
	"context"
	"log"
	"os"
	"time"

	"log/slog"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/sakevn/Gateways/internal/config"
	apphttp "github.com/sakevn/Gateways/internal/http"
	"github.com/sakevn/Gateways/internal/mailer"
	"github.com/sakevn/Gateways/internal/modules/email"
	"github.com/sakevn/Gateways/internal/modules/gateways"
	"github.com/sakevn/Gateways/internal/modules/payments"
	"github.com/sakevn/Gateways/internal/modules/zalopay"
	"github.com/sakevn/Gateways/internal/storage"
)

func main() {
	// Load .env file (ignore error if not found - prod uses real env vars)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.FromEnv()
	if cfg.DBDSN == "" {
		log.Fatal("DB_DSN environment variable is required")
	}

	db, err := gorm.Open(mysql.Open(cfg.DBDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	store, err := storage.FromEnv(context.Background())
	if err != nil {
		log.Fatalf("failed to init callback archive storage: %v", err)
	}
	logger.Info("callback archive storage ready", "driver", store.Driver)

	emailSvc := newEmailService(cfg)
	logger.Info("email service ready", "driver", envOr("EMAIL_DRIVER", "smtp"))

	repo := payments.NewRepo(db)
	resolver := gateways.NewResolver(db)
	client := zalopay.NewClient(10 * time.Second)

	hooks := payments.NewHookRegistry()
	hooks.Register("payment_receipt_email", func(ctx context.Context, p payments.Payment) error {
		payer, err := p.Payer()
		if err != nil {
			return err
		}
		txID := ""
		if p.TransactionID != nil {
			txID = *p.TransactionID
		}
		return email.SendPaymentReceipt(emailSvc, payer.Email, payer.Name,
			p.ID, txID, p.PaymentAmount.StringFixed(2))
	})

	callbackURL := cfg.PublicBaseURL + "/payment/zalopay/callback"
	svc := payments.NewService(repo, resolver, client, callbackURL)
	svc.SetLogger(logger)

	state := payments.NewStateMachine(repo, hooks)
	state.SetLogger(logger)

	audit := payments.NewCallbackLog(db, store.Storage)
	audit.SetLogger(logger)

	r := apphttp.NewRouter(apphttp.Deps{
		Logger:   logger,
		DB:       db,
		Service:  svc,
		State:    state,
		Audit:    audit,
		Resolver: resolver,
	})
	_ = r.Run(cfg.ListenAddr)
}

// newEmailService picks the receipt mail transport: plain SMTP (MailHog in
// dev), the Mailtrap HTTP API, or a collecting mock for local runs with no
// mail server at all.
func newEmailService(cfg config.AppConfig) email.Service {
	fromAddr := envOr("EMAIL_FROM", "no-reply@local.test")
	fromName := envOr("EMAIL_FROM_NAME", "Gateway Payments")

	switch envOr("EMAIL_DRIVER", "smtp") {
	case "mailtrap":
		return email.NewMailtrapProvider()
	case "mock":
		return email.NewMailerAdapter(&mailer.Mock{}, fromAddr, fromName)
	default:
		return email.NewMailerAdapter(mailer.NewSMTPMailer(cfg.SMTP), fromAddr, fromName)
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
