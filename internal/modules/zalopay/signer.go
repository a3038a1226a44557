package zalopay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sakevn/Gateways/internal/modules/gateways"
)

// OrderPayment is the snapshot of the payment record an order is built from.
type OrderPayment struct {
	ID         string
	Amount     decimal.Decimal // merchant base currency, 2dp
	PayerEmail string
}

// Order is the outbound create-order payload. Built fresh per attempt,
// never persisted.
type Order struct {
	AppID      string `json:"app_id"`
	AppTransID string `json:"app_trans_id"`
	AppUser    string `json:"app_user"`
	Amount     int64  `json:"amount"`
	AppTime    int64  `json:"app_time"`
	Item       string `json:"item"`
	EmbedData  string `json:"embed_data"`
	Mac        string `json:"mac"`
}

// BuildOrder assembles the signed order payload. The caller passes the clock
// reading; it is used for both app_time and the MAC so the transmitted
// timestamp always matches the signed one, and for the app_trans_id date
// prefix (yymmdd in the signer's local time).
func BuildOrder(p OrderPayment, creds gateways.Credentials, callbackURL string, at time.Time) (Order, error) {
	email := strings.TrimSpace(p.PayerEmail)
	if email == "" {
		return Order{}, ErrInvalidPayer
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return Order{}, ErrInvalidPayer
	}

	amountMinor, err := minorUnits(p.Amount)
	if err != nil {
		return Order{}, err
	}

	appTransID := at.Format("060102") + "_" + p.ID
	appTime := at.UnixMilli()

	embed, _ := json.Marshal(map[string]string{"redirecturl": callbackURL})

	mac := signOrder(creds, p.ID, amountMinor, appTime, email)

	return Order{
		AppID:      creds.AppID,
		AppTransID: appTransID,
		AppUser:    email,
		Amount:     amountMinor,
		AppTime:    appTime,
		Item:       "Payment for order " + p.ID,
		EmbedData:  string(embed),
		Mac:        mac,
	}, nil
}

// minorUnits scales the base amount by 1000 (VND minor units). The scaled
// value must be a whole number; anything else means the stored amount was
// more precise than the gateway can carry.
func minorUnits(amount decimal.Decimal) (int64, error) {
	scaled := amount.Mul(decimal.NewFromInt(1000))
	if !scaled.IsInteger() {
		return 0, ErrBadAmount
	}
	return scaled.IntPart(), nil
}

// signOrder computes the order MAC. Field order is fixed by the gateway
// protocol: app_id|payment_id|amount|app_time|email, keyed with key1.
func signOrder(creds gateways.Credentials, paymentID string, amountMinor, appTime int64, email string) string {
	msg := creds.AppID + "|" + paymentID + "|" +
		strconv.FormatInt(amountMinor, 10) + "|" +
		strconv.FormatInt(appTime, 10) + "|" + email

	m := hmac.New(sha256.New, []byte(creds.Key1))
	m.Write([]byte(msg))
	return hex.EncodeToString(m.Sum(nil))
}
