package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-marketplace/apperrors"
	"go-marketplace/logger"
	"go-marketplace/models"
	"go-marketplace/store"
	"go-marketplace/utils"
)

func newTestUserService(st *store.Store) *UserService {
	return NewUserService(st, utils.NewTokenService("test-secret"), utils.NewEmailService("", ""), logger.Nop())
}

func seedUser(t *testing.T, st *store.Store, email, role string, verified bool) string {
	t.Helper()
	id, err := st.Users.InsertOne(context.Background(), models.User{
		Name:       "Test " + email,
		Email:      email,
		Role:       role,
		IsVerified: verified,
	})
	require.NoError(t, err)
	return id
}

func seedProduct(t *testing.T, st *store.Store, p models.Product) string {
	t.Helper()
	if p.SaleStatus == "" {
		p.SaleStatus = models.SaleStatusAvailable
	}
	id, err := st.Products.InsertOne(context.Background(), p)
	require.NoError(t, err)
	return id
}

func mustOID(t *testing.T, id string) primitive.ObjectID {
	t.Helper()
	oid, err := primitive.ObjectIDFromHex(id)
	require.NoError(t, err)
	return oid
}

func memUsers(st *store.Store) *store.MemoryCollection {
	return st.Users.(*store.MemoryCollection)
}

func memProducts(st *store.Store) *store.MemoryCollection {
	return st.Products.(*store.MemoryCollection)
}

func countProducts(st *store.Store, filter bson.M) int {
	return memProducts(st).Count(filter)
}

// failingCollection injects store failures into bulk operations so cascade
// error paths can be exercised.
type failingCollection struct {
	store.Collection
	failUpdateMany bool
	failDeleteMany bool
}

func (f *failingCollection) UpdateMany(ctx context.Context, filter, set bson.M) (*store.UpdateResult, error) {
	if f.failUpdateMany {
		return nil, apperrors.StoreUnavailable("injected update failure", nil)
	}
	return f.Collection.UpdateMany(ctx, filter, set)
}

func (f *failingCollection) DeleteMany(ctx context.Context, filter bson.M) (*store.DeleteResult, error) {
	if f.failDeleteMany {
		return nil, apperrors.StoreUnavailable("injected delete failure", nil)
	}
	return f.Collection.DeleteMany(ctx, filter)
}

// blindCollection reports not-found for the first skipFinds lookups while
// delegating everything else, simulating the read side of a first-login race.
type blindCollection struct {
	store.Collection
	skipFinds int
}

func (b *blindCollection) FindOne(ctx context.Context, filter bson.M, out interface{}) (bool, error) {
	if b.skipFinds > 0 {
		b.skipFinds--
		return false, nil
	}
	return b.Collection.FindOne(ctx, filter, out)
}
