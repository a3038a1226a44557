package payments

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sakevn/Gateways/internal/modules/gateways"
	"github.com/sakevn/Gateways/internal/modules/zalopay"
)

// CredentialResolver resolves the active credential set for a gateway.
type CredentialResolver interface {
	Resolve(ctx context.Context, name string) (gateways.Credentials, error)
}

// GatewayClient performs the outbound create-order call.
type GatewayClient interface {
	CreateOrder(ctx context.Context, mode string, order zalopay.Order) (zalopay.OrderResult, error)
}

// Service drives payment initiation: resolve credentials, fresh unpaid read,
// build and sign the order, create it at the gateway. The payment record is
// never written here; only the verified callback moves it to paid.
type Service struct {
	repo        *Repo
	resolver    CredentialResolver
	client      GatewayClient
	callbackURL string
	logger      *slog.Logger
}

func NewService(repo *Repo, resolver CredentialResolver, client GatewayClient, callbackURL string) *Service {
	return &Service{
		repo:        repo,
		resolver:    resolver,
		client:      client,
		callbackURL: callbackURL,
		logger:      slog.Default(),
	}
}

func (s *Service) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

// Initiate returns the hosted-checkout redirect URL for an unpaid payment.
// An already-paid or unknown id fails with ErrNotFound before any gateway
// call is made. A gateway timeout leaves the record untouched; the payer may
// retry, which produces a fresh order with a fresh MAC.
func (s *Service) Initiate(ctx context.Context, paymentID string) (string, error) {
	creds, err := s.resolver.Resolve(ctx, zalopay.MethodName)
	if err != nil {
		return "", err
	}

	p, err := s.repo.FindUnpaid(ctx, paymentID)
	if err != nil {
		return "", err
	}

	payer, err := p.Payer()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPayerMissing, err)
	}

	order, err := zalopay.BuildOrder(zalopay.OrderPayment{
		ID:         p.ID,
		Amount:     p.PaymentAmount,
		PayerEmail: payer.Email,
	}, creds, s.callbackURL, time.Now())
	if err != nil {
		return "", err
	}

	res, err := s.client.CreateOrder(ctx, creds.Mode, order)
	if err != nil {
		s.logger.WarnContext(ctx, "gateway order creation failed",
			"payment_id", p.ID, "app_trans_id", order.AppTransID, "err", err)
		return "", err
	}

	s.logger.InfoContext(ctx, "gateway order created",
		"payment_id", p.ID, "app_trans_id", order.AppTransID, "mode", creds.Mode)
	return res.RedirectURL, nil
}
