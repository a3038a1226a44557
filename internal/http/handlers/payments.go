package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sakevn/Gateways/internal/http/middleware"
	"github.com/sakevn/Gateways/internal/http/validation"
	"github.com/sakevn/Gateways/internal/modules/gateways"
	"github.com/sakevn/Gateways/internal/modules/payments"
	"github.com/sakevn/Gateways/internal/modules/zalopay"
	"github.com/sakevn/Gateways/internal/shared/apperr"
)

type PaymentHandler struct {
	Logger *slog.Logger
	Svc    *payments.Service
}

func NewPaymentHandler(logger *slog.Logger, svc *payments.Service) *PaymentHandler {
	return &PaymentHandler{Logger: logger, Svc: svc}
}

type initiateInput struct {
	PaymentID string `json:"payment_id" binding:"required,uuid4"`
}

// POST /payment/zalopay
// Redirects the payer to the hosted checkout, or returns a structured error.
func (h *PaymentHandler) Initiate(c *gin.Context) {
	var in initiateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		errs := validation.FromBindError(err, &in)
		middleware.Fail(c, apperr.InvalidErr("Request is invalid.", errs))
		return
	}

	redirect, err := h.Svc.Initiate(c.Request.Context(), in.PaymentID)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Redirect(http.StatusFound, redirect)
}

func (h *PaymentHandler) fail(c *gin.Context, err error) {
	var rejected *zalopay.RejectedError
	var transport *zalopay.TransportError

	switch {
	case errors.Is(err, payments.ErrNotFound):
		// no unpaid payment with that id; neutral body, not an error
		c.JSON(http.StatusOK, gin.H{"ok": false, "message": "No unpaid payment found."})

	case errors.Is(err, gateways.ErrConfigMissing),
		errors.Is(err, gateways.ErrUnknownMode),
		errors.Is(err, gateways.ErrBadValues):
		middleware.Fail(c, &apperr.AppError{
			Kind:      apperr.Internal,
			PublicMsg: "Payment gateway is not configured.",
			Err:       err,
		})

	case errors.Is(err, zalopay.ErrInvalidPayer),
		errors.Is(err, payments.ErrPayerMissing):
		middleware.Fail(c, apperr.InvalidErr("Payer email is missing or invalid.", nil))

	case errors.Is(err, zalopay.ErrBadAmount):
		middleware.Fail(c, apperr.InvalidErr("Payment amount cannot be processed.", nil))

	case errors.As(err, &rejected):
		// gateway business failure: message passed through verbatim
		middleware.Fail(c, apperr.InvalidErr(rejected.Message, nil))

	case errors.As(err, &transport):
		middleware.Fail(c, apperr.UnavailableErr("Payment gateway unreachable. Try again later.", err))

	default:
		middleware.Fail(c, apperr.Wrap(err))
	}
}
