package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"

	"github.com/vetleolai-cyber/Firmaprint-nettside/internal/models"
	"github.com/vetleolai-cyber/Firmaprint-nettside/internal/payments"
	"github.com/vetleolai-cyber/Firmaprint-nettside/internal/payments/mocks"
)

type memCartStore struct {
	carts   map[string]models.Cart
	deletes []string
}

func (s *memCartStore) Load(ctx context.Context, sessionID string) (*models.Cart, error) {
	stored, ok := s.carts[sessionID]
	if !ok {
		return nil, nil
	}
	copied := stored
	copied.Items = append([]models.CartItem(nil), stored.Items...)
	return &copied, nil
}

func (s *memCartStore) Save(ctx context.Context, cart *models.Cart) error {
	s.carts[cart.SessionID] = *cart
	return nil
}

func (s *memCartStore) Delete(ctx context.Context, sessionID string) error {
	s.deletes = append(s.deletes, sessionID)
	delete(s.carts, sessionID)
	return nil
}

type memOrderStore struct {
	sequence int64
	seqCalls int
	inserted []models.Order
}

func (s *memOrderStore) NextSequence(ctx context.Context) (int64, error) {
	s.seqCalls++
	s.sequence++
	return s.sequence, nil
}

func (s *memOrderStore) Insert(ctx context.Context, order *models.Order) error {
	order.ID = primitive.NewObjectID()
	s.inserted = append(s.inserted, *order)
	return nil
}

func (s *memOrderStore) FindByID(ctx context.Context, id string) (models.Order, error) {
	return models.Order{}, NotFoundError{Ref: id}
}

func (s *memOrderStore) FindByNumber(ctx context.Context, orderNumber string) (models.Order, error) {
	return models.Order{}, NotFoundError{Ref: orderNumber}
}

func (s *memOrderStore) MarkPaidByStripeSession(ctx context.Context, sessionID string) error {
	return nil
}

func (s *memOrderStore) MarkPaidByVippsReference(ctx context.Context, reference string) error {
	return nil
}

func (s *memOrderStore) SetVippsReference(ctx context.Context, orderID, reference string) error {
	return nil
}

type memTransactions struct {
	recorded []models.PaymentTransaction
}

func (r *memTransactions) Record(ctx context.Context, tx models.PaymentTransaction) error {
	r.recorded = append(r.recorded, tx)
	return nil
}

func (r *memTransactions) UpdateStatus(ctx context.Context, reference, status string, capturedAmount int64) error {
	return nil
}

func (r *memTransactions) FindByReference(ctx context.Context, reference string) (models.PaymentTransaction, error) {
	return models.PaymentTransaction{}, NotFoundError{Ref: reference}
}

func filledCart(sessionID string) models.Cart {
	return models.Cart{
		SessionID: sessionID,
		Items: []models.CartItem{
			{
				ProductID:    primitive.NewObjectID(),
				ProductName:  "Tracker 1010 Original T-Shirt",
				VariantColor: "Sort",
				Size:         "L",
				Quantity:     2,
				BasePrice:    149.0,
				TotalPrice:   298.0,
			},
		},
		Subtotal:    298.0,
		DesignTotal: 0,
		Shipping:    99.0,
		Total:       397.0,
	}
}

func testAddress() models.ShippingAddress {
	return models.ShippingAddress{
		Name:       "Ola Nordmann",
		Street:     "Storgata 1",
		City:       "Oslo",
		PostalCode: "0155",
		Country:    "Norge",
		Phone:      "+4740000000",
		Email:      "ola@example.no",
	}
}

func newTestAssembler(t *testing.T, checkout payments.Checkout) (*Assembler, *memCartStore, *memOrderStore, *memTransactions) {
	t.Helper()
	carts := &memCartStore{carts: map[string]models.Cart{}}
	orderStore := &memOrderStore{}
	transactions := &memTransactions{}
	assembler := NewAssembler(carts, orderStore, transactions, checkout)
	assembler.now = func() time.Time {
		return time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	}
	return assembler, carts, orderStore, transactions
}

func TestCreateOrderEmptyCartHasNoSideEffects(t *testing.T) {
	ctrl := gomock.NewController(t)
	checkout := mocks.NewMockCheckout(ctrl)
	assembler, carts, orderStore, transactions := newTestAssembler(t, checkout)

	// Missing cart and present-but-empty cart behave the same.
	carts.carts["empty"] = models.Cart{SessionID: "empty", Items: []models.CartItem{}}

	for _, session := range []string{"missing", "empty"} {
		_, err := assembler.Create(context.Background(), CreateParams{
			CartSessionID:   session,
			ShippingAddress: testAddress(),
			PaymentMethod:   models.PaymentMethodStripe,
		})
		var emptyErr EmptyCartError
		if !errors.As(err, &emptyErr) {
			t.Fatalf("expected EmptyCartError for %q, got %v", session, err)
		}
	}

	if orderStore.seqCalls != 0 || len(orderStore.inserted) != 0 {
		t.Fatal("expected no sequence allocation or persistence for empty carts")
	}
	if len(transactions.recorded) != 0 {
		t.Fatal("expected no payment transactions for empty carts")
	}
	// The gomock controller verifies no checkout call was made.
}

func TestCreateOrderRejectsUnknownPaymentMethod(t *testing.T) {
	ctrl := gomock.NewController(t)
	assembler, carts, _, _ := newTestAssembler(t, mocks.NewMockCheckout(ctrl))
	carts.carts["sess-1"] = filledCart("sess-1")

	_, err := assembler.Create(context.Background(), CreateParams{
		CartSessionID:   "sess-1",
		ShippingAddress: testAddress(),
		PaymentMethod:   "bitcoin",
	})

	var unsupported UnsupportedPaymentMethodError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedPaymentMethodError, got %v", err)
	}
}

func TestCreateOrderInvoicePath(t *testing.T) {
	ctrl := gomock.NewController(t)
	assembler, carts, orderStore, transactions := newTestAssembler(t, mocks.NewMockCheckout(ctrl))
	carts.carts["sess-1"] = filledCart("sess-1")

	result, err := assembler.Create(context.Background(), CreateParams{
		CartSessionID:   "sess-1",
		ShippingAddress: testAddress(),
		PaymentMethod:   models.PaymentMethodInvoice,
		Notes:           "Leveres til resepsjonen",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	order := result.Order
	if order.OrderNumber != "FP2026080001" {
		t.Fatalf("unexpected order number %q", order.OrderNumber)
	}
	if order.Status != models.OrderStatusAwaitingPayment {
		t.Fatalf("expected status awaiting_payment, got %q", order.Status)
	}
	if order.PaymentStatus != models.PaymentStatusAwaitingInvoice {
		t.Fatalf("expected payment status awaiting_invoice, got %q", order.PaymentStatus)
	}
	if order.Subtotal != 298.0 || order.Total != 397.0 {
		t.Fatalf("totals not copied from cart: %+v", order)
	}
	if result.CheckoutURL != "" {
		t.Fatalf("invoice path must not return a checkout url, got %q", result.CheckoutURL)
	}
	if len(transactions.recorded) != 0 {
		t.Fatal("invoice path must not record payment transactions")
	}
	if len(carts.deletes) != 1 || carts.deletes[0] != "sess-1" {
		t.Fatalf("expected source cart cleared, deletes=%v", carts.deletes)
	}
	if len(orderStore.inserted) != 1 {
		t.Fatalf("expected one persisted order, got %d", len(orderStore.inserted))
	}
}

func TestCreateOrderStripePath(t *testing.T) {
	ctrl := gomock.NewController(t)
	checkout := mocks.NewMockCheckout(ctrl)
	assembler, carts, orderStore, transactions := newTestAssembler(t, checkout)
	carts.carts["sess-1"] = filledCart("sess-1")

	checkout.EXPECT().
		CreateSession(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, params payments.CreateSessionParams) (payments.CheckoutSession, error) {
			if params.Amount != 397.0 {
				t.Fatalf("expected session amount 397.00, got %v", params.Amount)
			}
			if params.Metadata["order_number"] != "FP2026080001" {
				t.Fatalf("expected order number metadata, got %v", params.Metadata)
			}
			return payments.CheckoutSession{
				SessionID: "cs_test_123",
				URL:       "https://checkout.example/pay/cs_test_123",
			}, nil
		})

	result, err := assembler.Create(context.Background(), CreateParams{
		CartSessionID:   "sess-1",
		ShippingAddress: testAddress(),
		PaymentMethod:   models.PaymentMethodStripe,
		SuccessURL:      "https://firmaprint.no/checkout/success",
		CancelURL:       "https://firmaprint.no/checkout/cancel",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if result.CheckoutURL != "https://checkout.example/pay/cs_test_123" {
		t.Fatalf("unexpected checkout url %q", result.CheckoutURL)
	}
	if result.Order.StripeSessionID != "cs_test_123" {
		t.Fatalf("expected session id on order, got %q", result.Order.StripeSessionID)
	}
	if result.Order.PaymentStatus != models.PaymentStatusPending {
		t.Fatalf("stripe path keeps payment status pending, got %q", result.Order.PaymentStatus)
	}

	if len(transactions.recorded) != 1 {
		t.Fatalf("expected one payment transaction, got %d", len(transactions.recorded))
	}
	tx := transactions.recorded[0]
	if tx.SessionID != "cs_test_123" || tx.Amount != 397.0 || tx.Provider != models.PaymentMethodStripe {
		t.Fatalf("unexpected transaction %+v", tx)
	}
	if tx.TransactionID == "" {
		t.Fatal("expected transaction audit id")
	}
	if len(carts.deletes) != 1 {
		t.Fatal("expected source cart cleared after checkout session creation")
	}
	if len(orderStore.inserted) != 1 {
		t.Fatalf("expected one persisted order, got %d", len(orderStore.inserted))
	}
}

func TestCreateOrderStripeFailureLeavesNoState(t *testing.T) {
	ctrl := gomock.NewController(t)
	checkout := mocks.NewMockCheckout(ctrl)
	assembler, carts, orderStore, transactions := newTestAssembler(t, checkout)
	carts.carts["sess-1"] = filledCart("sess-1")

	upstream := &payments.UpstreamError{Provider: "stripe", StatusCode: 502, Message: "checkout request rejected"}
	checkout.EXPECT().
		CreateSession(gomock.Any(), gomock.Any()).
		Return(payments.CheckoutSession{}, upstream)

	_, err := assembler.Create(context.Background(), CreateParams{
		CartSessionID:   "sess-1",
		ShippingAddress: testAddress(),
		PaymentMethod:   models.PaymentMethodStripe,
	})

	var gotUpstream *payments.UpstreamError
	if !errors.As(err, &gotUpstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if len(orderStore.inserted) != 0 {
		t.Fatal("order must not be persisted when session creation fails")
	}
	if len(transactions.recorded) != 0 {
		t.Fatal("no transaction may be recorded when session creation fails")
	}
	if len(carts.deletes) != 0 {
		t.Fatal("cart must survive a failed checkout")
	}
	if _, ok := carts.carts["sess-1"]; !ok {
		t.Fatal("cart document missing after failed checkout")
	}
}

func TestOrderNumbersFollowSequence(t *testing.T) {
	ctrl := gomock.NewController(t)
	assembler, carts, _, _ := newTestAssembler(t, mocks.NewMockCheckout(ctrl))

	for i, want := range []string{"FP2026080001", "FP2026080002", "FP2026080003"} {
		session := string(rune('a' + i))
		carts.carts[session] = filledCart(session)

		result, err := assembler.Create(context.Background(), CreateParams{
			CartSessionID:   session,
			ShippingAddress: testAddress(),
			PaymentMethod:   models.PaymentMethodInvoice,
		})
		if err != nil {
			t.Fatalf("Create %d failed: %v", i, err)
		}
		if result.Order.OrderNumber != want {
			t.Fatalf("expected order number %q, got %q", want, result.Order.OrderNumber)
		}
	}
}

func TestCreateOrderBindsAuthenticatedUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	assembler, carts, orderStore, _ := newTestAssembler(t, mocks.NewMockCheckout(ctrl))

	carts.carts["sess-u"] = filledCart("sess-u")
	userID := primitive.NewObjectID()

	result, err := assembler.Create(context.Background(), CreateParams{
		CartSessionID:   "sess-u",
		UserID:          &userID,
		ShippingAddress: testAddress(),
		PaymentMethod:   models.PaymentMethodInvoice,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if result.Order.UserID == nil || *result.Order.UserID != userID {
		t.Fatalf("expected order bound to user %s, got %v", userID.Hex(), result.Order.UserID)
	}
	if len(orderStore.inserted) != 1 || orderStore.inserted[0].UserID == nil {
		t.Fatal("expected persisted order to carry the user id")
	}
}
