package main

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

type callbackPayload struct {
	Data       string `json:"data"`
	Mac        string `json:"mac"`
	AppTransID string `json:"app_trans_id"`
}

type callbackData struct {
	AppTransID string `json:"app_trans_id"`
	AppID      string `json:"app_id"`
	Amount     int64  `json:"amount"`
	ServerTime int64  `json:"server_time"`
}

// Sends a ZaloPay-shaped callback to a local instance, signed with key2.
func main() {
	url := flag.String("url", "http://localhost:8080/payment/zalopay/callback", "Callback URL")
	key2 := flag.String("key2", os.Getenv("ZALOPAY_KEY2"), "Callback verification key")
	appID := flag.String("app-id", "553", "ZaloPay app_id")
	appTransID := flag.String("app-trans-id", "", "Transaction id (yymmdd_<payment id>)")
	amount := flag.Int64("amount", 10000, "Amount in gateway minor units")
	breakMac := flag.Bool("break-mac", false, "Corrupt the MAC to exercise the mismatch path")
	dryRun := flag.Bool("dry-run", false, "Only print the payload, don't send")

	flag.Parse()

	if *key2 == "" {
		fmt.Fprintf(os.Stderr, "Error: key2 not provided and ZALOPAY_KEY2 not set\n")
		os.Exit(1)
	}
	if *appTransID == "" {
		fmt.Fprintf(os.Stderr, "Error: -app-trans-id is required\n")
		os.Exit(1)
	}

	data, err := json.Marshal(callbackData{
		AppTransID: *appTransID,
		AppID:      *appID,
		Amount:     *amount,
		ServerTime: time.Now().UnixMilli(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling data: %v\n", err)
		os.Exit(1)
	}

	mac := computeMac([]byte(*key2), data)
	if *breakMac {
		mac = "00" + mac[2:]
	}

	body, err := json.Marshal(callbackPayload{
		Data:       string(data),
		Mac:        mac,
		AppTransID: *appTransID,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling payload: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Body: %s\n", string(body))

	if *dryRun {
		fmt.Println("\n[DRY RUN] Not sending request")
		return
	}

	fmt.Printf("\nSending to %s...\n", *url)
	req, err := http.NewRequest("POST", *url, bytes.NewReader(body))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error sending request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	fmt.Printf("Status: %d\n", resp.StatusCode)
	fmt.Printf("Response: %s\n", string(respBody))

	if resp.StatusCode != http.StatusOK {
		os.Exit(1)
	}
}

func computeMac(key, data []byte) string {
	m := hmac.New(sha256.New, key)
	m.Write(data)
	return hex.EncodeToString(m.Sum(nil))
}
