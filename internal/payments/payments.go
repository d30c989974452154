// Package payments holds the external payment-provider clients. The rest of
// the application depends on the Checkout and Wallet interfaces only.
package payments

import "context"

// CreateSessionParams describes a hosted-checkout session request. Amount is
// in NOK.
type CreateSessionParams struct {
	Amount     float64
	Currency   string
	SuccessURL string
	CancelURL  string
	Metadata   map[string]string
}

// CheckoutSession is the provider handle for a hosted payment page.
type CheckoutSession struct {
	SessionID string
	URL       string
}

// CheckoutStatus is the result of polling a hosted session.
type CheckoutStatus struct {
	SessionID     string
	Status        string
	PaymentStatus string
	AmountTotal   int64
	Currency      string
}

// WebhookEvent is the verified payload of a provider webhook delivery.
type WebhookEvent struct {
	EventType     string
	SessionID     string
	PaymentStatus string
}

// Checkout is the redirect-checkout flavor of payment collaborator.
type Checkout interface {
	CreateSession(ctx context.Context, params CreateSessionParams) (CheckoutSession, error)
	GetStatus(ctx context.Context, sessionID string) (CheckoutStatus, error)
	HandleWebhook(body []byte, signature string) (WebhookEvent, error)
}

// CreatePaymentParams describes a push-wallet payment request. AmountMinor
// is in øre.
type CreatePaymentParams struct {
	AmountMinor    int64
	Description    string
	ReturnURL      string
	Reference      string
	IdempotencyKey string
}

// WalletPayment is the provider response to an initiated wallet payment.
type WalletPayment struct {
	RedirectURL string
	Reference   string
}

// WalletStatus reports the provider-side state of a wallet payment. Amounts
// are in øre.
type WalletStatus struct {
	State            string
	AuthorizedAmount int64
	CapturedAmount   int64
}

// CaptureResult reports the captured amount in øre.
type CaptureResult struct {
	CapturedAmount int64
}

// Wallet is the push-wallet flavor of payment collaborator.
type Wallet interface {
	CreatePayment(ctx context.Context, params CreatePaymentParams) (WalletPayment, error)
	PaymentStatus(ctx context.Context, reference string) (WalletStatus, error)
	Capture(ctx context.Context, reference string, amountMinor int64) (CaptureResult, error)
}
