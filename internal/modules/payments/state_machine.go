package payments

import (
	"context"
	"errors"
	"log/slog"
)

// StateMachine applies verified gateway callbacks to payment records.
// States: unpaid -> paid, terminal. Duplicate or concurrent callbacks for
// the same transaction are absorbed by the conditional update in the repo.
type StateMachine struct {
	repo   *Repo
	hooks  *HookRegistry
	logger *slog.Logger
}

func NewStateMachine(repo *Repo, hooks *HookRegistry) *StateMachine {
	return &StateMachine{repo: repo, hooks: hooks, logger: slog.Default()}
}

func (s *StateMachine) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

// ApplyCallback transitions the matching unpaid record to paid and reports
// whether this call performed the transition. Callers must only invoke it
// after the callback MAC verified.
//
// If the record is already paid the call is a no-op that returns its current
// state; an unknown transaction id returns ErrNotFound. The success hook
// fires only on a real transition, at most once per payment.
func (s *StateMachine) ApplyCallback(ctx context.Context, appTransID, method string) (Payment, bool, error) {
	rows, err := s.repo.ConditionalMarkPaid(ctx, appTransID, method)
	if err != nil {
		return Payment{}, false, err
	}

	p, err := s.repo.FindByTransaction(ctx, appTransID)
	if errors.Is(err, ErrNotFound) {
		// no record carries this transaction id; fall back to the embedded
		// payment id so an already-paid-elsewhere record still reports state
		if paymentID, ok := PaymentIDFromTransID(appTransID); ok {
			p, err = s.repo.FindByID(ctx, paymentID)
		}
	}
	if err != nil {
		return Payment{}, false, err
	}

	transitioned := rows == 1
	if transitioned {
		s.logger.InfoContext(ctx, "payment marked paid",
			"payment_id", p.ID, "app_trans_id", appTransID, "method", method)
		s.dispatchHook(ctx, p)
	}

	return p, transitioned, nil
}

// dispatchHook runs the record's registered success hook, if any. Hook
// failures are logged and do not revert the transition; the payment is paid
// the moment the conditional update landed.
func (s *StateMachine) dispatchHook(ctx context.Context, p Payment) {
	if p.SuccessHook == nil || *p.SuccessHook == "" {
		return
	}

	fn, ok := s.hooks.Resolve(*p.SuccessHook)
	if !ok {
		s.logger.WarnContext(ctx, "success hook not registered",
			"payment_id", p.ID, "hook", *p.SuccessHook)
		return
	}

	if err := fn(ctx, p); err != nil {
		s.logger.ErrorContext(ctx, "success hook failed",
			"payment_id", p.ID, "hook", *p.SuccessHook, "err", err)
	}
}
