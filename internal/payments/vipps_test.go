package payments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newVippsTestServer(t *testing.T, tokenRequests *int) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/accesstoken/get":
			*tokenRequests++
			if r.Header.Get("client_id") == "" || r.Header.Get("client_secret") == "" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			json.NewEncoder(w).Encode(map[string]interface{}{
				"access_token": "token-1",
				"expires_in":   3600,
			})
		case r.URL.Path == "/epayment/v1/payments" && r.Method == http.MethodPost:
			if r.Header.Get("Idempotency-Key") == "" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			var payload vippsCreatePaymentRequest
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]string{
				"redirectUrl": "https://wallet.example/redirect",
				"reference":   payload.Reference,
			})
		case strings.HasSuffix(r.URL.Path, "/capture"):
			json.NewEncoder(w).Encode(map[string]interface{}{
				"aggregate": map[string]interface{}{
					"capturedAmount": map[string]interface{}{"currency": "NOK", "value": 50800},
				},
			})
		case strings.HasPrefix(r.URL.Path, "/epayment/v1/payments/"):
			json.NewEncoder(w).Encode(map[string]interface{}{
				"state": "AUTHORIZED",
				"aggregate": map[string]interface{}{
					"authorizedAmount": map[string]interface{}{"currency": "NOK", "value": 50800},
					"capturedAmount":   map[string]interface{}{"currency": "NOK", "value": 0},
				},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func newTestVippsClient(serverURL string, now *time.Time) *VippsClient {
	client := NewVippsClient(VippsConfig{
		APIURL:          serverURL,
		ClientID:        "client-id",
		ClientSecret:    "client-secret",
		SubscriptionKey: "sub-key",
		MerchantSerial:  "123456",
	})
	client.now = func() time.Time { return *now }
	return client
}

func TestVippsTokenIsCachedUntilRefreshBuffer(t *testing.T) {
	tokenRequests := 0
	server := newVippsTestServer(t, &tokenRequests)
	defer server.Close()

	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	client := newTestVippsClient(server.URL, &now)
	ctx := context.Background()

	if _, err := client.PaymentStatus(ctx, "fp-ref-1"); err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	if _, err := client.PaymentStatus(ctx, "fp-ref-1"); err != nil {
		t.Fatalf("second call failed: %v", err)
	}
	if tokenRequests != 1 {
		t.Fatalf("expected 1 token request while cached, got %d", tokenRequests)
	}

	// 61 seconds before expiry: still inside the valid window.
	now = now.Add(3600*time.Second - 61*time.Second)
	if _, err := client.PaymentStatus(ctx, "fp-ref-1"); err != nil {
		t.Fatalf("call before buffer failed: %v", err)
	}
	if tokenRequests != 1 {
		t.Fatalf("expected cached token just before buffer, got %d requests", tokenRequests)
	}

	// Inside the 60-second refresh buffer: must fetch a fresh token.
	now = now.Add(2 * time.Second)
	if _, err := client.PaymentStatus(ctx, "fp-ref-1"); err != nil {
		t.Fatalf("call inside buffer failed: %v", err)
	}
	if tokenRequests != 2 {
		t.Fatalf("expected refresh inside buffer, got %d requests", tokenRequests)
	}
}

func TestVippsCreatePaymentUsesIdempotencyKeyAndReference(t *testing.T) {
	tokenRequests := 0
	server := newVippsTestServer(t, &tokenRequests)
	defer server.Close()

	now := time.Now()
	client := newTestVippsClient(server.URL, &now)

	payment, err := client.CreatePayment(context.Background(), CreatePaymentParams{
		AmountMinor:    50800,
		Description:    "Ordre FP2026080012",
		ReturnURL:      "https://firmaprint.no/checkout/vipps",
		Reference:      "fp-20260828120000-abcd1234",
		IdempotencyKey: "11111111-2222-3333-4444-555555555555",
	})
	if err != nil {
		t.Fatalf("CreatePayment failed: %v", err)
	}
	if payment.RedirectURL != "https://wallet.example/redirect" {
		t.Fatalf("unexpected redirect url %q", payment.RedirectURL)
	}
	if payment.Reference != "fp-20260828120000-abcd1234" {
		t.Fatalf("unexpected reference %q", payment.Reference)
	}
}

func TestVippsCaptureReturnsCapturedAmount(t *testing.T) {
	tokenRequests := 0
	server := newVippsTestServer(t, &tokenRequests)
	defer server.Close()

	now := time.Now()
	client := newTestVippsClient(server.URL, &now)

	result, err := client.Capture(context.Background(), "fp-ref-1", 50800)
	if err != nil {
		t.Fatalf("Capture failed: %v", err)
	}
	if result.CapturedAmount != 50800 {
		t.Fatalf("expected captured amount 50800, got %d", result.CapturedAmount)
	}
}

func TestVippsUnconfiguredClientFailsFast(t *testing.T) {
	client := NewVippsClient(VippsConfig{APIURL: "http://localhost:0"})

	_, err := client.PaymentStatus(context.Background(), "fp-ref-1")
	upstream, ok := err.(*UpstreamError)
	if !ok {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstream.Provider != "vipps" {
		t.Fatalf("unexpected provider %q", upstream.Provider)
	}
}

func TestVippsRejectionIsNotRetryable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/accesstoken/get" {
			json.NewEncoder(w).Encode(map[string]interface{}{"access_token": "t", "expires_in": 3600})
			return
		}
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	now := time.Now()
	client := newTestVippsClient(server.URL, &now)

	_, err := client.CreatePayment(context.Background(), CreatePaymentParams{
		AmountMinor: 100, Reference: "fp-x", IdempotencyKey: "k",
	})
	upstream, ok := err.(*UpstreamError)
	if !ok {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstream.Retryable() {
		t.Fatal("4xx rejection must not be retryable")
	}
}

func TestNewPaymentReferenceFormat(t *testing.T) {
	now := time.Date(2026, 8, 28, 9, 30, 15, 0, time.UTC)
	reference := NewPaymentReference(now)

	if !strings.HasPrefix(reference, "fp-20260828093015-") {
		t.Fatalf("unexpected reference prefix: %q", reference)
	}
	suffix := strings.TrimPrefix(reference, "fp-20260828093015-")
	if len(suffix) != 8 {
		t.Fatalf("expected 8-char suffix, got %q", suffix)
	}
	if reference == NewPaymentReference(now) {
		t.Fatal("expected unique references for identical timestamps")
	}
}
