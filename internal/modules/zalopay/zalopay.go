// Package zalopay implements the ZaloPay hosted-checkout protocol: signed
// order creation, redirect URL construction and callback MAC verification.
package zalopay

import "github.com/sakevn/Gateways/internal/modules/gateways"

const MethodName = "zalopay"

// return_code value ZaloPay uses for a successful order creation.
const returnCodeSuccess = 1

const (
	sandboxCreateURL = "https://sandbox.zalopay.vn/v001/tpe/createorder"
	liveCreateURL    = "https://openapi.zalopay.vn/v2/create"

	sandboxCheckoutURL = "https://sandbox.zalopay.vn/checkout"
	liveCheckoutURL    = "https://zalopay.vn/checkout"
)

func createURL(mode string) string {
	if mode == gateways.ModeTest {
		return sandboxCreateURL
	}
	return liveCreateURL
}

func checkoutURL(mode string) string {
	if mode == gateways.ModeTest {
		return sandboxCheckoutURL
	}
	return liveCheckoutURL
}
