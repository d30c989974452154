package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func signWebhook(secret string, timestamp int64, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", timestamp)
	mac.Write(body)
	return fmt.Sprintf("t=%d,v1=%s", timestamp, hex.EncodeToString(mac.Sum(nil)))
}

func newTestStripeClient(now time.Time) *StripeClient {
	client := NewStripeClient("sk_test_key", "whsec_test")
	client.now = func() time.Time { return now }
	return client
}

func TestHandleWebhookAcceptsValidSignature(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	client := newTestStripeClient(now)

	body := []byte(`{"type":"checkout.session.completed","data":{"object":{"id":"cs_test_123","payment_status":"paid"}}}`)
	signature := signWebhook("whsec_test", now.Unix(), body)

	event, err := client.HandleWebhook(body, signature)
	if err != nil {
		t.Fatalf("HandleWebhook failed: %v", err)
	}
	if event.SessionID != "cs_test_123" {
		t.Fatalf("unexpected session id %q", event.SessionID)
	}
	if event.PaymentStatus != "paid" {
		t.Fatalf("unexpected payment status %q", event.PaymentStatus)
	}
	if event.EventType != "checkout.session.completed" {
		t.Fatalf("unexpected event type %q", event.EventType)
	}
}

func TestHandleWebhookRejectsTamperedBody(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	client := newTestStripeClient(now)

	body := []byte(`{"type":"checkout.session.completed","data":{"object":{"id":"cs_test_123","payment_status":"paid"}}}`)
	signature := signWebhook("whsec_test", now.Unix(), body)

	tampered := []byte(`{"type":"checkout.session.completed","data":{"object":{"id":"cs_evil","payment_status":"paid"}}}`)
	if _, err := client.HandleWebhook(tampered, signature); err == nil {
		t.Fatal("expected signature mismatch for tampered body")
	}
}

func TestHandleWebhookRejectsStaleTimestamp(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	client := newTestStripeClient(now)

	body := []byte(`{"type":"checkout.session.completed","data":{"object":{"id":"cs_test_123","payment_status":"paid"}}}`)
	stale := now.Add(-10 * time.Minute).Unix()
	signature := signWebhook("whsec_test", stale, body)

	if _, err := client.HandleWebhook(body, signature); err == nil {
		t.Fatal("expected rejection for timestamp outside tolerance")
	}
}

func TestHandleWebhookRejectsMalformedHeader(t *testing.T) {
	client := newTestStripeClient(time.Now())

	for _, header := range []string{"", "v1=abc", "t=notanumber,v1=abc"} {
		if _, err := client.HandleWebhook([]byte(`{}`), header); err == nil {
			t.Fatalf("expected error for header %q", header)
		}
	}
}

func TestCreateSessionSendsMinorUnitsAndMetadata(t *testing.T) {
	var gotForm map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		gotForm = r.PostForm
		json.NewEncoder(w).Encode(map[string]string{
			"id":  "cs_test_123",
			"url": "https://checkout.example/pay/cs_test_123",
		})
	}))
	defer server.Close()

	client := newTestStripeClient(time.Now())
	client.baseURL = server.URL

	session, err := client.CreateSession(context.Background(), CreateSessionParams{
		Amount:     508.0,
		Currency:   "NOK",
		SuccessURL: "https://firmaprint.no/checkout/success",
		CancelURL:  "https://firmaprint.no/checkout/cancel",
		Metadata:   map[string]string{"order_number": "FP2026080012"},
	})
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if session.SessionID != "cs_test_123" || session.URL == "" {
		t.Fatalf("unexpected session %+v", session)
	}

	if got := gotForm["line_items[0][price_data][unit_amount]"]; len(got) != 1 || got[0] != "50800" {
		t.Fatalf("expected unit_amount 50800, got %v", got)
	}
	if got := gotForm["line_items[0][price_data][currency]"]; len(got) != 1 || got[0] != "nok" {
		t.Fatalf("expected lowercase currency, got %v", got)
	}
	if got := gotForm["metadata[order_number]"]; len(got) != 1 || got[0] != "FP2026080012" {
		t.Fatalf("expected order_number metadata, got %v", got)
	}
}

func TestCreateSessionServerErrorIsRetryable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestStripeClient(time.Now())
	client.baseURL = server.URL

	_, err := client.CreateSession(context.Background(), CreateSessionParams{Amount: 100, Currency: "NOK"})
	upstream, ok := err.(*UpstreamError)
	if !ok {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if !upstream.Retryable() {
		t.Fatal("5xx must be retryable")
	}
}
