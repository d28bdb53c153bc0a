package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"go-marketplace/apperrors"
	"go-marketplace/models"
	"go-marketplace/store"
)

// ProductService implements seller listings and their moderation flags.
type ProductService struct {
	store *store.Store
	log   *zap.SugaredLogger
}

func NewProductService(st *store.Store, log *zap.SugaredLogger) *ProductService {
	return &ProductService{store: st, log: log}
}

// Create inserts a listing. The caller must hold the seller role and must be
// the seller named in the payload; listing on someone else's behalf is an
// authorization failure, not a data error. The seller-verification mirror is
// seeded from the caller's current flag.
func (s *ProductService) Create(ctx context.Context, callerEmail string, product models.Product) (*store.InsertResult, error) {
	caller, err := callerWithRole(ctx, s.store.Users, callerEmail, models.RoleSeller)
	if err != nil {
		return nil, err
	}
	if err := checkPayload(product); err != nil {
		return nil, err
	}
	if product.SellerEmail != callerEmail {
		return nil, apperrors.RoleDenied("sellers may only create their own listings")
	}

	if product.SaleStatus == "" {
		product.SaleStatus = models.SaleStatusAvailable
	}
	product.SellerVerified = caller.IsVerified

	id, err := s.store.Products.InsertOne(ctx, product)
	if err != nil {
		return nil, err
	}
	s.log.Infow("product listed", "seller", callerEmail, "product", id)
	return &store.InsertResult{InsertedID: id}, nil
}

// ListBySeller returns the caller's own listings, whatever their status.
func (s *ProductService) ListBySeller(ctx context.Context, sellerEmail string) ([]models.Product, error) {
	var products []models.Product
	if err := s.store.Products.FindAll(ctx, bson.M{"sellerEmail": sellerEmail}, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// AllProductsID lists every available product regardless of category.
const AllProductsID = "all-products"

// ListByCategory returns available products in one category, or across all
// of them for the special identifier.
func (s *ProductService) ListByCategory(ctx context.Context, categoryID string) ([]models.Product, error) {
	filter := bson.M{"saleStatus": models.SaleStatusAvailable}
	if categoryID != AllProductsID && categoryID != "all" {
		filter["categoryId"] = categoryID
	}
	var products []models.Product
	if err := s.store.Products.FindAll(ctx, filter, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ListAdvertised returns advertised products still for sale.
func (s *ProductService) ListAdvertised(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	filter := bson.M{"advertised": true, "saleStatus": models.SaleStatusAvailable}
	if err := s.store.Products.FindAll(ctx, filter, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ListReported returns products flagged for moderation. Admin only.
func (s *ProductService) ListReported(ctx context.Context, callerEmail string) ([]models.Product, error) {
	if _, err := callerWithRole(ctx, s.store.Users, callerEmail, models.RoleAdmin); err != nil {
		return nil, err
	}
	var products []models.Product
	if err := s.store.Products.FindAll(ctx, bson.M{"reported": true}, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ToggleAdvertise flips a listing's advertised flag. The stored flag is read
// first and the inverse written back explicitly, so there is never ambiguity
// about which side of the toggle was applied. Owning seller or admin.
func (s *ProductService) ToggleAdvertise(ctx context.Context, callerEmail, id string) (*store.UpdateResult, error) {
	product, oid, err := s.ownedProduct(ctx, callerEmail, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return &store.UpdateResult{}, nil
	}
	return s.store.Products.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"advertised": !product.Advertised}, false)
}

// ToggleReported flips a listing's reported flag. Any authenticated caller
// may report; clearing a report is how admins resolve it without deleting.
func (s *ProductService) ToggleReported(ctx context.Context, id string) (*store.UpdateResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var product models.Product
	found, err := s.store.Products.FindOne(ctx, bson.M{"_id": oid}, &product)
	if err != nil {
		return nil, err
	}
	if !found {
		return &store.UpdateResult{}, nil
	}
	return s.store.Products.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"reported": !product.Reported}, false)
}

// DeleteByID removes a listing. Owning seller or admin.
func (s *ProductService) DeleteByID(ctx context.Context, callerEmail, id string) (*store.DeleteResult, error) {
	product, oid, err := s.ownedProduct(ctx, callerEmail, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return &store.DeleteResult{}, nil
	}
	return s.store.Products.DeleteOne(ctx, bson.M{"_id": oid})
}

// ownedProduct loads a product and checks the caller may mutate it: either
// the owning seller, or an admin. Absent products come back nil with no
// error, matching the empty-success convention.
func (s *ProductService) ownedProduct(ctx context.Context, callerEmail, id string) (*models.Product, primitive.ObjectID, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, oid, err
	}
	var product models.Product
	found, err := s.store.Products.FindOne(ctx, bson.M{"_id": oid}, &product)
	if err != nil {
		return nil, oid, err
	}
	if !found {
		return nil, oid, nil
	}
	if product.SellerEmail == callerEmail {
		return &product, oid, nil
	}
	if _, err := callerWithRole(ctx, s.store.Users, callerEmail, models.RoleAdmin); err != nil {
		return nil, oid, err
	}
	return &product, oid, nil
}
