// Package cart maintains per-session shopping carts and their derived
// totals. Totals are always recomputed from the full item list on every
// mutation; there is no incremental accounting to drift out of sync.
package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vetleolai-cyber/Firmaprint-nettside/internal/models"
	"github.com/vetleolai-cyber/Firmaprint-nettside/internal/pricing"
)

// Store persists carts keyed by session id. Load returns nil without error
// when no cart exists for the session.
type Store interface {
	Load(ctx context.Context, sessionID string) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
	Delete(ctx context.Context, sessionID string) error
}

// ProductFinder resolves catalog products referenced by cart lines.
type ProductFinder interface {
	FindProduct(ctx context.Context, id primitive.ObjectID) (models.Product, error)
}

// AddItemParams describes one add-to-cart request after boundary validation.
type AddItemParams struct {
	ProductID    primitive.ObjectID
	VariantColor string
	Size         string
	Quantity     int
	Design       *models.DesignSpec
}

type Aggregator struct {
	store    Store
	products ProductFinder
}

func NewAggregator(store Store, products ProductFinder) *Aggregator {
	return &Aggregator{store: store, products: products}
}

// GetOrCreate returns the session's cart, creating and persisting an empty
// one on first access.
func (a *Aggregator) GetOrCreate(ctx context.Context, sessionID string) (*models.Cart, error) {
	cart, err := a.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}

	cart = emptyCart(sessionID)
	if err := a.store.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// AddOrUpdateItem prices the design, builds the line item and merges it into
// the cart. A line with the same product, variant color and size is replaced
// outright; quantities are never accumulated across adds. Monetary fields
// are computed here, never taken from the client.
func (a *Aggregator) AddOrUpdateItem(ctx context.Context, sessionID string, params AddItemParams) (*models.Cart, error) {
	if params.Quantity <= 0 {
		return nil, InvalidItemError{Reason: "quantity must be greater than zero"}
	}

	product, err := a.products.FindProduct(ctx, params.ProductID)
	if err != nil {
		return nil, err
	}

	designPrice := 0.0
	if params.Design != nil {
		if err := pricing.ValidateDesign(*params.Design); err != nil {
			return nil, InvalidItemError{Reason: err.Error()}
		}
		if !product.HasPrintArea(params.Design.PrintArea) {
			return nil, InvalidItemError{
				Reason: fmt.Sprintf("product has no print area %q", params.Design.PrintArea),
			}
		}
		designPrice = pricing.DesignUnitPrice(*params.Design, params.Quantity)
	}

	cart, err := a.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = emptyCart(sessionID)
	}

	item := models.CartItem{
		ProductID:    product.ID,
		ProductName:  product.Name,
		VariantColor: params.VariantColor,
		Size:         params.Size,
		Quantity:     params.Quantity,
		BasePrice:    product.BasePrice,
		Design:       params.Design,
		DesignPrice:  designPrice,
		TotalPrice:   pricing.Round2(float64(params.Quantity) * (product.BasePrice + designPrice)),
	}

	replaced := false
	for i, existing := range cart.Items {
		if existing.SameLine(params.ProductID, params.VariantColor, params.Size) {
			cart.Items[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		cart.Items = append(cart.Items, item)
	}

	recomputeTotals(cart)
	cart.UpdatedAt = time.Now().UTC()

	if err := a.store.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem drops the line at the given position and recomputes totals. The
// stored cart is untouched when the index is out of range.
func (a *Aggregator) RemoveItem(ctx context.Context, sessionID string, index int) (*models.Cart, error) {
	cart, err := a.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, NotFoundError{SessionID: sessionID}
	}
	if index < 0 || index >= len(cart.Items) {
		return nil, OutOfRangeError{Index: index, Length: len(cart.Items)}
	}

	cart.Items = append(cart.Items[:index], cart.Items[index+1:]...)
	recomputeTotals(cart)
	cart.UpdatedAt = time.Now().UTC()

	if err := a.store.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear deletes the cart document entirely.
func (a *Aggregator) Clear(ctx context.Context, sessionID string) error {
	return a.store.Delete(ctx, sessionID)
}

func emptyCart(sessionID string) *models.Cart {
	return &models.Cart{
		SessionID: sessionID,
		Items:     []models.CartItem{},
		UpdatedAt: time.Now().UTC(),
	}
}

func recomputeTotals(cart *models.Cart) {
	subtotal := decimal.Zero
	designTotal := decimal.Zero

	for _, item := range cart.Items {
		qty := decimal.NewFromInt(int64(item.Quantity))
		subtotal = subtotal.Add(decimal.NewFromFloat(item.BasePrice).Mul(qty))
		designTotal = designTotal.Add(decimal.NewFromFloat(item.DesignPrice).Mul(qty))
	}

	goods := subtotal.Add(designTotal)
	goodsFloat, _ := goods.Float64()
	shipping := decimal.NewFromFloat(pricing.ShippingFor(goodsFloat))

	cart.Subtotal, _ = subtotal.Round(2).Float64()
	cart.DesignTotal, _ = designTotal.Round(2).Float64()
	cart.Shipping, _ = shipping.Round(2).Float64()
	cart.Total, _ = goods.Add(shipping).Round(2).Float64()
}

type NotFoundError struct {
	SessionID string
}

func (e NotFoundError) Error() string {
	return "cart not found"
}

type OutOfRangeError struct {
	Index  int
	Length int
}

func (e OutOfRangeError) Error() string {
	return fmt.Sprintf("item index %d out of range (cart has %d items)", e.Index, e.Length)
}

type InvalidItemError struct {
	Reason string
}

func (e InvalidItemError) Error() string {
	return e.Reason
}

type ProductNotFoundError struct {
	ProductID primitive.ObjectID
}

func (e ProductNotFoundError) Error() string {
	return "product not found"
}
