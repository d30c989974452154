package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	vippsSystemName    = "Firmaprint"
	vippsSystemVersion = "1.0.0"

	// Access tokens last about an hour; refresh when within this buffer of
	// expiry so an in-flight request never rides an expiring token.
	tokenRefreshBuffer = 60 * time.Second
)

// VippsConfig carries the merchant credentials for the ePayment API.
type VippsConfig struct {
	APIURL          string
	ClientID        string
	ClientSecret    string
	SubscriptionKey string
	MerchantSerial  string
}

// VippsClient implements Wallet against the ePayment API. The access token
// is cached on the client behind a mutex; concurrent refreshes collapse to
// one request per holder of the lock.
type VippsClient struct {
	cfg        VippsConfig
	httpClient *http.Client
	now        func() time.Time

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

func NewVippsClient(cfg VippsConfig) *VippsClient {
	return &VippsClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		now:        time.Now,
	}
}

// Configured reports whether all merchant credentials are present.
func (c *VippsClient) Configured() bool {
	return c.cfg.ClientID != "" && c.cfg.ClientSecret != "" &&
		c.cfg.SubscriptionKey != "" && c.cfg.MerchantSerial != ""
}

// NewPaymentReference builds a unique human-readable payment reference.
func NewPaymentReference(now time.Time) string {
	return fmt.Sprintf("fp-%s-%s", now.Format("20060102150405"), uuid.NewString()[:8])
}

type vippsTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (c *VippsClient) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Before(c.tokenExpiry.Add(-tokenRefreshBuffer)) {
		return c.token, nil
	}

	if !c.Configured() {
		return "", &UpstreamError{Provider: "vipps", StatusCode: http.StatusInternalServerError, Message: "vipps is not configured"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL+"/accesstoken/get", nil)
	if err != nil {
		return "", &UpstreamError{Provider: "vipps", Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("client_id", c.cfg.ClientID)
	req.Header.Set("client_secret", c.cfg.ClientSecret)
	c.merchantHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &UpstreamError{Provider: "vipps", Message: "token request failed"}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		log.Printf("[VIPPS] [ERROR] token request -> %d: %s", resp.StatusCode, detail)
		return "", &UpstreamError{Provider: "vipps", StatusCode: resp.StatusCode, Message: "could not obtain access token"}
	}

	var token vippsTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", &UpstreamError{Provider: "vipps", StatusCode: resp.StatusCode, Message: "invalid token response"}
	}

	c.token = token.AccessToken
	c.tokenExpiry = c.now().Add(time.Duration(token.ExpiresIn) * time.Second)
	return c.token, nil
}

type vippsAmount struct {
	Currency string `json:"currency"`
	Value    int64  `json:"value"`
}

type vippsCreatePaymentRequest struct {
	Amount        vippsAmount       `json:"amount"`
	PaymentMethod map[string]string `json:"paymentMethod"`
	Reference     string            `json:"reference"`
	ReturnURL     string            `json:"returnUrl"`
	UserFlow      string            `json:"userFlow"`
	Description   string            `json:"paymentDescription"`
}

type vippsCreatePaymentResponse struct {
	RedirectURL string `json:"redirectUrl"`
	Reference   string `json:"reference"`
}

// CreatePayment submits a wallet payment request for web redirect flow.
func (c *VippsClient) CreatePayment(ctx context.Context, params CreatePaymentParams) (WalletPayment, error) {
	payload := vippsCreatePaymentRequest{
		Amount:        vippsAmount{Currency: "NOK", Value: params.AmountMinor},
		PaymentMethod: map[string]string{"type": "WALLET"},
		Reference:     params.Reference,
		ReturnURL:     params.ReturnURL,
		UserFlow:      "WEB_REDIRECT",
		Description:   params.Description,
	}

	var created vippsCreatePaymentResponse
	err := c.do(ctx, http.MethodPost, "/epayment/v1/payments", params.IdempotencyKey, payload, http.StatusCreated, &created)
	if err != nil {
		return WalletPayment{}, err
	}

	reference := created.Reference
	if reference == "" {
		reference = params.Reference
	}
	return WalletPayment{RedirectURL: created.RedirectURL, Reference: reference}, nil
}

type vippsPaymentState struct {
	State     string `json:"state"`
	Aggregate struct {
		AuthorizedAmount vippsAmount `json:"authorizedAmount"`
		CapturedAmount   vippsAmount `json:"capturedAmount"`
	} `json:"aggregate"`
}

// PaymentStatus fetches the provider-side state of a payment.
func (c *VippsClient) PaymentStatus(ctx context.Context, reference string) (WalletStatus, error) {
	var state vippsPaymentState
	path := "/epayment/v1/payments/" + url.PathEscape(reference)
	if err := c.do(ctx, http.MethodGet, path, "", nil, http.StatusOK, &state); err != nil {
		return WalletStatus{}, err
	}
	return WalletStatus{
		State:            state.State,
		AuthorizedAmount: state.Aggregate.AuthorizedAmount.Value,
		CapturedAmount:   state.Aggregate.CapturedAmount.Value,
	}, nil
}

type vippsCaptureRequest struct {
	ModificationAmount vippsAmount `json:"modificationAmount"`
}

// Capture captures an authorized payment for the given amount in øre.
func (c *VippsClient) Capture(ctx context.Context, reference string, amountMinor int64) (CaptureResult, error) {
	payload := vippsCaptureRequest{
		ModificationAmount: vippsAmount{Currency: "NOK", Value: amountMinor},
	}

	var state vippsPaymentState
	path := "/epayment/v1/payments/" + url.PathEscape(reference) + "/capture"
	if err := c.do(ctx, http.MethodPost, path, uuid.NewString(), payload, http.StatusOK, &state); err != nil {
		return CaptureResult{}, err
	}
	return CaptureResult{CapturedAmount: state.Aggregate.CapturedAmount.Value}, nil
}

func (c *VippsClient) do(ctx context.Context, method, path, idempotencyKey string, payload interface{}, wantStatus int, out interface{}) error {
	token, err := c.accessToken(ctx)
	if err != nil {
		return err
	}

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return &UpstreamError{Provider: "vipps", Message: err.Error()}
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.APIURL+path, body)
	if err != nil {
		return &UpstreamError{Provider: "vipps", Message: err.Error()}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}
	c.merchantHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &UpstreamError{Provider: "vipps", Message: "request failed"}
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		log.Printf("[VIPPS] [ERROR] %s %s -> %d: %s", method, path, resp.StatusCode, detail)
		return &UpstreamError{Provider: "vipps", StatusCode: resp.StatusCode, Message: "payment request rejected"}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &UpstreamError{Provider: "vipps", StatusCode: resp.StatusCode, Message: "invalid response body"}
	}
	return nil
}

func (c *VippsClient) merchantHeaders(req *http.Request) {
	req.Header.Set("Ocp-Apim-Subscription-Key", c.cfg.SubscriptionKey)
	req.Header.Set("Merchant-Serial-Number", c.cfg.MerchantSerial)
	req.Header.Set("Vipps-System-Name", vippsSystemName)
	req.Header.Set("Vipps-System-Version", vippsSystemVersion)
}
