// Package orders converts finalized carts into immutable order snapshots and
// drives the payment hand-off.
package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vetleolai-cyber/Firmaprint-nettside/internal/cart"
	"github.com/vetleolai-cyber/Firmaprint-nettside/internal/models"
	"github.com/vetleolai-cyber/Firmaprint-nettside/internal/payments"
)

// Store persists orders and hands out order-number sequence values.
type Store interface {
	NextSequence(ctx context.Context) (int64, error)
	Insert(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id string) (models.Order, error)
	FindByNumber(ctx context.Context, orderNumber string) (models.Order, error)
	MarkPaidByStripeSession(ctx context.Context, sessionID string) error
	MarkPaidByVippsReference(ctx context.Context, reference string) error
	SetVippsReference(ctx context.Context, orderID, reference string) error
}

// TransactionRecorder persists payment-transaction audit records.
type TransactionRecorder interface {
	Record(ctx context.Context, tx models.PaymentTransaction) error
	UpdateStatus(ctx context.Context, reference, status string, capturedAmount int64) error
	FindByReference(ctx context.Context, reference string) (models.PaymentTransaction, error)
}

// CreateParams is one checkout submission after boundary validation. UserID
// is nil for guest checkout.
type CreateParams struct {
	CartSessionID   string
	UserID          *primitive.ObjectID
	ShippingAddress models.ShippingAddress
	PaymentMethod   string
	Notes           string
	SuccessURL      string
	CancelURL       string
}

// CreateResult carries the persisted order and, for redirect checkout, the
// hosted payment page URL.
type CreateResult struct {
	Order       models.Order
	CheckoutURL string
}

type Assembler struct {
	carts        cart.Store
	orders       Store
	transactions TransactionRecorder
	checkout     payments.Checkout
	now          func() time.Time
}

func NewAssembler(carts cart.Store, orders Store, transactions TransactionRecorder, checkout payments.Checkout) *Assembler {
	return &Assembler{
		carts:        carts,
		orders:       orders,
		transactions: transactions,
		checkout:     checkout,
		now:          time.Now,
	}
}

// Create snapshots the session's cart into a new order. For the redirect
// checkout method the payment session is opened before anything is
// persisted, so a provider failure leaves no stored state behind. On success
// the source cart is deleted.
func (a *Assembler) Create(ctx context.Context, params CreateParams) (CreateResult, error) {
	switch params.PaymentMethod {
	case models.PaymentMethodStripe, models.PaymentMethodVipps, models.PaymentMethodInvoice:
	default:
		return CreateResult{}, UnsupportedPaymentMethodError{Method: params.PaymentMethod}
	}

	sourceCart, err := a.carts.Load(ctx, params.CartSessionID)
	if err != nil {
		return CreateResult{}, err
	}
	if sourceCart == nil || len(sourceCart.Items) == 0 {
		return CreateResult{}, EmptyCartError{SessionID: params.CartSessionID}
	}

	sequence, err := a.orders.NextSequence(ctx)
	if err != nil {
		return CreateResult{}, err
	}

	userID := sourceCart.UserID
	if params.UserID != nil {
		userID = params.UserID
	}

	now := a.now().UTC()
	order := models.Order{
		OrderNumber:     fmt.Sprintf("FP%s%04d", now.Format("200601"), sequence),
		UserID:          userID,
		Items:           append([]models.CartItem(nil), sourceCart.Items...),
		ShippingAddress: params.ShippingAddress,
		PaymentMethod:   params.PaymentMethod,
		PaymentStatus:   models.PaymentStatusPending,
		Subtotal:        sourceCart.Subtotal,
		DesignTotal:     sourceCart.DesignTotal,
		ShippingCost:    sourceCart.Shipping,
		Total:           sourceCart.Total,
		Status:          models.OrderStatusPending,
		Notes:           params.Notes,
		CreatedAt:       now,
	}

	result := CreateResult{}

	if params.PaymentMethod == models.PaymentMethodStripe {
		session, err := a.checkout.CreateSession(ctx, payments.CreateSessionParams{
			Amount:     order.Total,
			Currency:   "NOK",
			SuccessURL: params.SuccessURL,
			CancelURL:  params.CancelURL,
			Metadata: map[string]string{
				"order_number": order.OrderNumber,
			},
		})
		if err != nil {
			return CreateResult{}, err
		}
		order.StripeSessionID = session.SessionID
		result.CheckoutURL = session.URL
	} else {
		// Invoice-like path; wallet payments are initiated against the
		// persisted order by a separate endpoint.
		order.PaymentStatus = models.PaymentStatusAwaitingInvoice
		order.Status = models.OrderStatusAwaitingPayment
	}

	if err := a.orders.Insert(ctx, &order); err != nil {
		return CreateResult{}, err
	}

	if order.StripeSessionID != "" {
		tx := models.PaymentTransaction{
			TransactionID: uuid.NewString(),
			OrderID:       order.ID,
			Provider:      models.PaymentMethodStripe,
			SessionID:     order.StripeSessionID,
			Amount:        order.Total,
			Currency:      "NOK",
			PaymentStatus: models.PaymentStatusPending,
			Metadata:      map[string]string{"order_number": order.OrderNumber},
			CreatedAt:     now,
		}
		if err := a.transactions.Record(ctx, tx); err != nil {
			return CreateResult{}, err
		}
	}

	if err := a.carts.Delete(ctx, params.CartSessionID); err != nil {
		return CreateResult{}, err
	}

	result.Order = order
	return result, nil
}

type EmptyCartError struct {
	SessionID string
}

func (e EmptyCartError) Error() string {
	return "cart is empty"
}

type UnsupportedPaymentMethodError struct {
	Method string
}

func (e UnsupportedPaymentMethodError) Error() string {
	return fmt.Sprintf("unsupported payment method: %q", e.Method)
}

type NotFoundError struct {
	Ref string
}

func (e NotFoundError) Error() string {
	return "order not found"
}
