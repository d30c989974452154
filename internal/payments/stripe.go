package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const stripeAPIBase = "https://api.stripe.com"

// webhookTolerance bounds how old a signed webhook timestamp may be before
// the delivery is rejected as a possible replay.
const webhookTolerance = 5 * time.Minute

// StripeClient talks to the hosted-checkout API over plain HTTP. It
// implements Checkout.
type StripeClient struct {
	apiKey        string
	webhookSecret string
	baseURL       string
	httpClient    *http.Client
	now           func() time.Time
}

func NewStripeClient(apiKey, webhookSecret string) *StripeClient {
	return &StripeClient{
		apiKey:        apiKey,
		webhookSecret: webhookSecret,
		baseURL:       stripeAPIBase,
		httpClient:    &http.Client{Timeout: 15 * time.Second},
		now:           time.Now,
	}
}

type stripeSessionResponse struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	AmountTotal   int64  `json:"amount_total"`
	Currency      string `json:"currency"`
}

// CreateSession opens a hosted checkout session for the full order amount as
// a single line item.
func (c *StripeClient) CreateSession(ctx context.Context, params CreateSessionParams) (CheckoutSession, error) {
	amountMinor := decimal.NewFromFloat(params.Amount).Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", params.SuccessURL)
	form.Set("cancel_url", params.CancelURL)
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", strings.ToLower(params.Currency))
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(amountMinor, 10))
	form.Set("line_items[0][price_data][product_data][name]", "Firmaprint bestilling")
	for key, value := range params.Metadata {
		form.Set(fmt.Sprintf("metadata[%s]", key), value)
	}

	var session stripeSessionResponse
	if err := c.do(ctx, http.MethodPost, "/v1/checkout/sessions", strings.NewReader(form.Encode()), &session); err != nil {
		return CheckoutSession{}, err
	}
	return CheckoutSession{SessionID: session.ID, URL: session.URL}, nil
}

// GetStatus polls a hosted checkout session.
func (c *StripeClient) GetStatus(ctx context.Context, sessionID string) (CheckoutStatus, error) {
	var session stripeSessionResponse
	path := "/v1/checkout/sessions/" + url.PathEscape(sessionID)
	if err := c.do(ctx, http.MethodGet, path, nil, &session); err != nil {
		return CheckoutStatus{}, err
	}
	return CheckoutStatus{
		SessionID:     session.ID,
		Status:        session.Status,
		PaymentStatus: session.PaymentStatus,
		AmountTotal:   session.AmountTotal,
		Currency:      session.Currency,
	}, nil
}

type stripeWebhookPayload struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID            string `json:"id"`
			PaymentStatus string `json:"payment_status"`
		} `json:"object"`
	} `json:"data"`
}

// HandleWebhook verifies the signature header (t=...,v1=... over
// "<timestamp>.<body>" with HMAC-SHA256) and decodes the event.
func (c *StripeClient) HandleWebhook(body []byte, signature string) (WebhookEvent, error) {
	timestamp, candidates, err := parseSignatureHeader(signature)
	if err != nil {
		return WebhookEvent{}, &UpstreamError{Provider: "stripe", StatusCode: http.StatusBadRequest, Message: err.Error()}
	}

	age := c.now().Sub(time.Unix(timestamp, 0))
	if age > webhookTolerance || age < -webhookTolerance {
		return WebhookEvent{}, &UpstreamError{Provider: "stripe", StatusCode: http.StatusBadRequest, Message: "webhook timestamp outside tolerance"}
	}

	mac := hmac.New(sha256.New, []byte(c.webhookSecret))
	fmt.Fprintf(mac, "%d.", timestamp)
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	verified := false
	for _, candidate := range candidates {
		if subtle.ConstantTimeCompare([]byte(candidate), []byte(expected)) == 1 {
			verified = true
			break
		}
	}
	if !verified {
		return WebhookEvent{}, &UpstreamError{Provider: "stripe", StatusCode: http.StatusBadRequest, Message: "webhook signature mismatch"}
	}

	var payload stripeWebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return WebhookEvent{}, &UpstreamError{Provider: "stripe", StatusCode: http.StatusBadRequest, Message: "invalid webhook payload"}
	}

	return WebhookEvent{
		EventType:     payload.Type,
		SessionID:     payload.Data.Object.ID,
		PaymentStatus: payload.Data.Object.PaymentStatus,
	}, nil
}

func parseSignatureHeader(header string) (int64, []string, error) {
	var timestamp int64
	var signatures []string

	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "t":
			parsed, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return 0, nil, fmt.Errorf("invalid signature timestamp")
			}
			timestamp = parsed
		case "v1":
			signatures = append(signatures, value)
		}
	}

	if timestamp == 0 || len(signatures) == 0 {
		return 0, nil, fmt.Errorf("malformed signature header")
	}
	return timestamp, signatures, nil
}

func (c *StripeClient) do(ctx context.Context, method, path string, body io.Reader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &UpstreamError{Provider: "stripe", Message: err.Error()}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &UpstreamError{Provider: "stripe", Message: "request failed"}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		log.Printf("[STRIPE] [ERROR] %s %s -> %d: %s", method, path, resp.StatusCode, detail)
		return &UpstreamError{Provider: "stripe", StatusCode: resp.StatusCode, Message: "checkout request rejected"}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &UpstreamError{Provider: "stripe", StatusCode: resp.StatusCode, Message: "invalid response body"}
	}
	return nil
}
