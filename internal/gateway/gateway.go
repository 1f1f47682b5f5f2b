// Package gateway provides the payment gateway adapters the payment service
// creates orders on and verifies payments with.
package gateway

import (
	"net/http"
	"time"
)

// Gateway ids.
const (
	IDRazorpay = "razorpay"
	IDStripe   = "stripe"
	IDPayPal   = "paypal"
)

const requestTimeout = 30 * time.Second

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: requestTimeout}
}
