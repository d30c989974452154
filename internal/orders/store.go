package orders

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vetleolai-cyber/Firmaprint-nettside/internal/models"
)

type mongoStore struct {
	orders   *mongo.Collection
	counters *mongo.Collection
}

// NewMongoStore returns a Store backed by the "orders" and "counters"
// collections. Sequence values come from an atomic $inc on a counter
// document, so concurrent order creation cannot hand out duplicates.
func NewMongoStore(db *mongo.Database) Store {
	return &mongoStore{
		orders:   db.Collection("orders"),
		counters: db.Collection("counters"),
	}
}

func (s *mongoStore) NextSequence(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := s.counters.FindOneAndUpdate(
		ctx,
		bson.M{"_id": "orders"},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}

func (s *mongoStore) Insert(ctx context.Context, order *models.Order) error {
	res, err := s.orders.InsertOne(ctx, order)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		order.ID = id
	}
	return nil
}

func (s *mongoStore) FindByID(ctx context.Context, id string) (models.Order, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Order{}, NotFoundError{Ref: id}
	}

	var order models.Order
	err = s.orders.FindOne(ctx, bson.M{"_id": objectID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return models.Order{}, NotFoundError{Ref: id}
	}
	if err != nil {
		return models.Order{}, err
	}
	return order, nil
}

func (s *mongoStore) FindByNumber(ctx context.Context, orderNumber string) (models.Order, error) {
	var order models.Order
	err := s.orders.FindOne(ctx, bson.M{"orderNumber": orderNumber}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return models.Order{}, NotFoundError{Ref: orderNumber}
	}
	if err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// markPaid flips payment status to paid and order status to processing in a
// single update, keeping the two fields in step.
func (s *mongoStore) markPaid(ctx context.Context, filter bson.M) error {
	_, err := s.orders.UpdateOne(ctx, filter, bson.M{"$set": bson.M{
		"paymentStatus": models.PaymentStatusPaid,
		"status":        models.OrderStatusProcessing,
	}})
	return err
}

func (s *mongoStore) MarkPaidByStripeSession(ctx context.Context, sessionID string) error {
	return s.markPaid(ctx, bson.M{"stripeSessionId": sessionID})
}

func (s *mongoStore) MarkPaidByVippsReference(ctx context.Context, reference string) error {
	return s.markPaid(ctx, bson.M{"vippsReference": reference})
}

func (s *mongoStore) SetVippsReference(ctx context.Context, orderID, reference string) error {
	objectID, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return NotFoundError{Ref: orderID}
	}
	res, err := s.orders.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{
		"$set": bson.M{"vippsReference": reference},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return NotFoundError{Ref: orderID}
	}
	return nil
}

type mongoTransactions struct {
	transactions *mongo.Collection
}

// NewMongoTransactionRecorder persists payment audit rows in the
// "payment_transactions" collection.
func NewMongoTransactionRecorder(db *mongo.Database) TransactionRecorder {
	return &mongoTransactions{transactions: db.Collection("payment_transactions")}
}

func (r *mongoTransactions) Record(ctx context.Context, tx models.PaymentTransaction) error {
	_, err := r.transactions.InsertOne(ctx, tx)
	return err
}

func (r *mongoTransactions) UpdateStatus(ctx context.Context, reference, status string, capturedAmount int64) error {
	set := bson.M{
		"paymentStatus": status,
		"updatedAt":     time.Now().UTC(),
	}
	if capturedAmount > 0 {
		set["capturedAmount"] = capturedAmount
	}

	filter := bson.M{"$or": []bson.M{
		{"sessionId": reference},
		{"reference": reference},
	}}
	_, err := r.transactions.UpdateOne(ctx, filter, bson.M{"$set": set})
	return err
}

func (r *mongoTransactions) FindByReference(ctx context.Context, reference string) (models.PaymentTransaction, error) {
	var tx models.PaymentTransaction
	err := r.transactions.FindOne(ctx, bson.M{"reference": reference}).Decode(&tx)
	if err == mongo.ErrNoDocuments {
		return models.PaymentTransaction{}, NotFoundError{Ref: reference}
	}
	if err != nil {
		return models.PaymentTransaction{}, err
	}
	return tx, nil
}
