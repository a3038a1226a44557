package zalopay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VerifyCallback recomputes the callback MAC over the gateway's opaque data
// string with key2 and compares it to the supplied one. The compare is
// constant-time (hmac.Equal). Malformed input is treated the same as a
// mismatch: false, never an error or panic.
func VerifyCallback(rawData, providedMac, key string) bool {
	if rawData == "" || providedMac == "" || key == "" {
		return false
	}

	provided, err := hex.DecodeString(providedMac)
	if err != nil {
		return false
	}

	m := hmac.New(sha256.New, []byte(key))
	m.Write([]byte(rawData))
	return hmac.Equal(provided, m.Sum(nil))
}
