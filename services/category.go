package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"go-marketplace/apperrors"
	"go-marketplace/models"
	"go-marketplace/store"
)

// CategoryService implements category lifecycle, including the delete
// cascade over products.
type CategoryService struct {
	store *store.Store
	log   *zap.SugaredLogger
}

func NewCategoryService(st *store.Store, log *zap.SugaredLogger) *CategoryService {
	return &CategoryService{store: st, log: log}
}

// Create inserts a category. Admin only.
func (s *CategoryService) Create(ctx context.Context, callerEmail string, category models.Category) (*store.InsertResult, error) {
	if _, err := callerWithRole(ctx, s.store.Users, callerEmail, models.RoleAdmin); err != nil {
		return nil, err
	}
	if err := checkPayload(category); err != nil {
		return nil, err
	}
	id, err := s.store.Categories.InsertOne(ctx, category)
	if err != nil {
		return nil, err
	}
	return &store.InsertResult{InsertedID: id}, nil
}

// ListAll returns every category. Unauthenticated read.
func (s *CategoryService) ListAll(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.store.Categories.FindAll(ctx, bson.M{}, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Delete removes a category and every product referencing it. Admin only.
// Products go first; if that step fails the category stays in place so the
// whole operation can be retried, and the failure is reported as a partial
// cascade. The category is only deleted once zero products reference it.
func (s *CategoryService) Delete(ctx context.Context, callerEmail, id, categoryName string) (*store.DeleteResult, error) {
	if _, err := callerWithRole(ctx, s.store.Users, callerEmail, models.RoleAdmin); err != nil {
		return nil, err
	}
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	removed, err := s.store.Products.DeleteMany(ctx, bson.M{"productCategory": categoryName})
	if err != nil {
		s.log.Errorw("category product cascade failed", "category", categoryName, "error", err)
		return nil, apperrors.PartialCascade("category product cascade", err)
	}
	s.log.Infow("category cascade removed products", "category", categoryName, "count", removed.DeletedCount)

	return s.store.Categories.DeleteOne(ctx, bson.M{"_id": oid})
}
