package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"go-marketplace/apperrors"
	"go-marketplace/models"
	"go-marketplace/store"
)

// OrderService implements purchases. Orders are historical records: they are
// never cascaded when the referenced product or user later disappears.
type OrderService struct {
	store *store.Store
	log   *zap.SugaredLogger
}

func NewOrderService(st *store.Store, log *zap.SugaredLogger) *OrderService {
	return &OrderService{store: st, log: log}
}

// Create records a purchase for the authenticated caller. Any authenticated
// identity may place an order. The buyer email always comes from the token
// subject, and the seller email is denormalized from the product at creation
// time.
func (s *OrderService) Create(ctx context.Context, callerEmail string, order models.Order) (*store.InsertResult, error) {
	if err := checkPayload(order); err != nil {
		return nil, err
	}
	order.BuyerEmail = callerEmail
	order.CreatedAt = time.Now().UTC()

	oid, err := parseID(order.ProductID)
	if err != nil {
		return nil, err
	}
	var product models.Product
	found, err := s.store.Products.FindOne(ctx, bson.M{"_id": oid}, &product)
	if err != nil {
		return nil, err
	}
	if found {
		order.SellerEmail = product.SellerEmail
		if order.ProductName == "" {
			order.ProductName = product.Name
		}
		if order.Price == 0 {
			order.Price = product.Price
		}
	}

	id, err := s.store.Orders.InsertOne(ctx, order)
	if err != nil {
		return nil, err
	}
	s.log.Infow("order placed", "buyer", callerEmail, "product", order.ProductID)
	return &store.InsertResult{InsertedID: id}, nil
}

// ListByBuyer returns the caller's own orders. The filter email is always
// the verified token subject; client-supplied parameters are never consulted,
// so one buyer can never read another's orders.
func (s *OrderService) ListByBuyer(ctx context.Context, callerEmail string) ([]models.Order, error) {
	var orders []models.Order
	if err := s.store.Orders.FindAll(ctx, bson.M{"buyerEmail": callerEmail}, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListBySeller returns orders placed against the caller's listings.
func (s *OrderService) ListBySeller(ctx context.Context, callerEmail string) ([]models.Order, error) {
	var orders []models.Order
	if err := s.store.Orders.FindAll(ctx, bson.M{"sellerEmail": callerEmail}, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetByID returns one order, readable only by its buyer, its seller, or an
// admin.
func (s *OrderService) GetByID(ctx context.Context, callerEmail, id string) (*models.Order, bool, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, false, err
	}
	var order models.Order
	found, err := s.store.Orders.FindOne(ctx, bson.M{"_id": oid}, &order)
	if err != nil || !found {
		return nil, false, err
	}
	if order.BuyerEmail != callerEmail && order.SellerEmail != callerEmail {
		if _, err := callerWithRole(ctx, s.store.Users, callerEmail, models.RoleAdmin); err != nil {
			return nil, false, apperrors.RoleDenied("order belongs to another account")
		}
	}
	return &order, true, nil
}

// DeleteByID removes an order: the buyer who created it, or an admin.
func (s *OrderService) DeleteByID(ctx context.Context, callerEmail, id string) (*store.DeleteResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var order models.Order
	found, err := s.store.Orders.FindOne(ctx, bson.M{"_id": oid}, &order)
	if err != nil {
		return nil, err
	}
	if !found {
		return &store.DeleteResult{}, nil
	}
	if order.BuyerEmail != callerEmail {
		if _, err := callerWithRole(ctx, s.store.Users, callerEmail, models.RoleAdmin); err != nil {
			return nil, apperrors.RoleDenied("only the buyer or an admin may delete an order")
		}
	}
	return s.store.Orders.DeleteOne(ctx, bson.M{"_id": oid})
}
