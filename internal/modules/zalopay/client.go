package zalopay

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// createOrderResponse mirrors the fields we interpret from the gateway.
// return_code 1 means the order was accepted; order_token feeds the
// hosted-checkout redirect.
type createOrderResponse struct {
	ReturnCode    int    `json:"return_code"`
	ReturnMessage string `json:"return_message"`
	OrderToken    string `json:"order_token"`
}

type OrderResult struct {
	OrderToken  string
	RedirectURL string
}

type Client struct {
	http *resty.Client

	// overrides for tests; empty means the mode-appropriate production URLs
	createURLOverride   string
	checkoutURLOverride string
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		http: resty.New().SetTimeout(timeout),
	}
}

// NewClientWithBaseURLs points the client at alternate endpoints.
func NewClientWithBaseURLs(timeout time.Duration, createURL, checkoutURL string) *Client {
	c := NewClient(timeout)
	c.createURLOverride = createURL
	c.checkoutURLOverride = checkoutURL
	return c
}

// CreateOrder posts the signed order and, on success, returns the checkout
// redirect target with the order token appended. It performs no retries;
// retry policy belongs to the caller, and TransportError vs RejectedError
// tells it which failures are worth retrying.
func (c *Client) CreateOrder(ctx context.Context, mode string, order Order) (OrderResult, error) {
	endpoint := c.createURLOverride
	if endpoint == "" {
		endpoint = createURL(mode)
	}

	var out createOrderResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(order).
		SetResult(&out).
		SetError(&out).
		Post(endpoint)

	if err != nil {
		return OrderResult{}, &TransportError{Err: err}
	}
	if resp.IsError() && out.ReturnCode == 0 {
		// non-2xx without a readable gateway body
		return OrderResult{}, &TransportError{Err: fmt.Errorf("gateway returned %s", resp.Status())}
	}

	if out.ReturnCode != returnCodeSuccess {
		return OrderResult{}, &RejectedError{Code: out.ReturnCode, Message: out.ReturnMessage}
	}

	checkout := c.checkoutURLOverride
	if checkout == "" {
		checkout = checkoutURL(mode)
	}

	return OrderResult{
		OrderToken:  out.OrderToken,
		RedirectURL: checkout + "?order_token=" + out.OrderToken,
	}, nil
}
