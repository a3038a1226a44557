package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sakevn/Gateways/internal/http/middleware"
	"github.com/sakevn/Gateways/internal/modules/payments"
	"github.com/sakevn/Gateways/internal/modules/zalopay"
)

type CallbackHandler struct {
	Logger   *slog.Logger
	Resolver payments.CredentialResolver
	State    *payments.StateMachine
	Audit    *payments.CallbackLog
}

func NewCallbackHandler(logger *slog.Logger, resolver payments.CredentialResolver, state *payments.StateMachine, audit *payments.CallbackLog) *CallbackHandler {
	return &CallbackHandler{Logger: logger, Resolver: resolver, State: state, Audit: audit}
}

type callbackInput struct {
	Data       string `json:"data"`
	Mac        string `json:"mac"`
	AppTransID string `json:"app_trans_id"`
}

// POST /payment/zalopay/callback
// The MAC is recomputed over the raw data string, never over re-serialized
// fields. A mismatch gets one generic 400 body regardless of what failed.
func (h *CallbackHandler) Handle(c *gin.Context) {
	ctx := c.Request.Context()

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	var in callbackInput
	if err := json.Unmarshal(body, &in); err != nil || in.Data == "" || in.Mac == "" || in.AppTransID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	creds, err := h.Resolver.Resolve(ctx, zalopay.MethodName)
	if err != nil {
		// cannot verify anything without a key; never fall through to apply
		middleware.Fail(c, err)
		return
	}

	verified := zalopay.VerifyCallback(in.Data, in.Mac, creds.Key2)
	h.Audit.Record(ctx, zalopay.MethodName, in.AppTransID, verified, body)

	if !verified {
		h.Logger.WarnContext(ctx, "callback mac mismatch",
			"app_trans_id", in.AppTransID, "request_id", middleware.GetRequestID(c))
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid MAC"})
		return
	}

	p, transitioned, err := h.State.ApplyCallback(ctx, in.AppTransID, zalopay.MethodName)
	if err != nil {
		if errors.Is(err, payments.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{"ok": true, "message": "No matching payment."})
			return
		}
		// 500 so the gateway redelivers
		h.Logger.ErrorContext(ctx, "callback apply failed",
			"app_trans_id", in.AppTransID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":             true,
		"payment_id":     p.ID,
		"is_paid":        p.IsPaid,
		"already_paid":   !transitioned,
		"transaction_id": in.AppTransID,
	})
}
