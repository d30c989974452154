package cart

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vetleolai-cyber/Firmaprint-nettside/internal/models"
)

type mongoStore struct {
	carts *mongo.Collection
}

// NewMongoStore returns a Store backed by the "carts" collection. Saves are
// upserts keyed by sessionId so first write and later writes share a path.
func NewMongoStore(db *mongo.Database) Store {
	return &mongoStore{carts: db.Collection("carts")}
}

func (s *mongoStore) Load(ctx context.Context, sessionID string) (*models.Cart, error) {
	var cart models.Cart
	err := s.carts.FindOne(ctx, bson.M{"sessionId": sessionID}).Decode(&cart)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (s *mongoStore) Save(ctx context.Context, cart *models.Cart) error {
	_, err := s.carts.ReplaceOne(
		ctx,
		bson.M{"sessionId": cart.SessionID},
		cart,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (s *mongoStore) Delete(ctx context.Context, sessionID string) error {
	_, err := s.carts.DeleteOne(ctx, bson.M{"sessionId": sessionID})
	return err
}

type mongoProducts struct {
	products *mongo.Collection
}

// NewMongoProductFinder resolves active catalog products for cart lines.
func NewMongoProductFinder(db *mongo.Database) ProductFinder {
	return &mongoProducts{products: db.Collection("products")}
}

func (f *mongoProducts) FindProduct(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	var product models.Product
	err := f.products.FindOne(ctx, bson.M{
		"_id":    id,
		"active": bson.M{"$ne": false},
	}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return models.Product{}, ProductNotFoundError{ProductID: id}
	}
	if err != nil {
		return models.Product{}, err
	}
	return product, nil
}
