package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-marketplace/apperrors"
	"go-marketplace/models"
	"go-marketplace/store"
)

func TestLoginTwiceCreatesOneAccount(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	svc := newTestUserService(st)

	payload := models.User{Name: "Alice", Email: "alice@example.com", Role: models.RoleBuyer}

	first, err := svc.LoginOrRegister(ctx, payload)
	require.NoError(t, err)
	assert.True(t, first.Created)
	assert.NotEmpty(t, first.Token)

	second, err := svc.LoginOrRegister(ctx, payload)
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.NotEmpty(t, second.Token)

	assert.Equal(t, 1, memUsers(st).Count(bson.M{"email": "alice@example.com"}))
}

func TestLoginDuplicateInsertResolvedAsExisting(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	seedUser(t, st, "alice@example.com", models.RoleBuyer, false)

	// First lookup misses even though the account exists, as when a
	// concurrent first login inserted between our read and our write.
	st.Users = &blindCollection{Collection: st.Users, skipFinds: 1}
	svc := newTestUserService(st)

	result, err := svc.LoginOrRegister(ctx, models.User{
		Name: "Alice", Email: "alice@example.com", Role: models.RoleBuyer,
	})
	require.NoError(t, err)
	assert.False(t, result.Created)
	assert.NotEmpty(t, result.Token)
}

func TestLoginRejectsBadPayload(t *testing.T) {
	svc := newTestUserService(store.NewMemory())

	_, err := svc.LoginOrRegister(context.Background(), models.User{Email: "not-an-email", Role: "buyer"})
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))

	_, err = svc.LoginOrRegister(context.Background(), models.User{Email: "a@b.com", Role: "superuser"})
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))
}

func TestListByRoleAdminOnly(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	svc := newTestUserService(st)
	seedUser(t, st, "admin@example.com", models.RoleAdmin, false)
	seedUser(t, st, "seller@example.com", models.RoleSeller, false)
	seedUser(t, st, "buyer@example.com", models.RoleBuyer, false)

	_, err := svc.ListByRole(ctx, "seller@example.com", models.RoleBuyer)
	assert.True(t, apperrors.Is(err, apperrors.CodeRoleDenied))

	sellers, err := svc.ListByRole(ctx, "admin@example.com", models.RoleSeller)
	require.NoError(t, err)
	require.Len(t, sellers, 1)
	assert.Equal(t, "seller@example.com", sellers[0].Email)
}

func TestSetSellerVerificationCascades(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	svc := newTestUserService(st)
	seedUser(t, st, "admin@example.com", models.RoleAdmin, false)
	sellerID := seedUser(t, st, "seller@example.com", models.RoleSeller, false)
	seedProduct(t, st, models.Product{Name: "P1", SellerEmail: "seller@example.com", CategoryID: "c1"})
	seedProduct(t, st, models.Product{Name: "P2", SellerEmail: "seller@example.com", CategoryID: "c2"})
	seedProduct(t, st, models.Product{Name: "P3", SellerEmail: "other@example.com", CategoryID: "c1"})

	result, err := svc.SetSellerVerification(ctx, "admin@example.com", sellerID, true)
	require.NoError(t, err)
	assert.EqualValues(t, 1, result.MatchedCount)

	assert.Equal(t, 1, memUsers(st).Count(bson.M{"email": "seller@example.com", "userIsVerified": true}))
	assert.Equal(t, 2, countProducts(st, bson.M{"sellerEmail": "seller@example.com", "sellerIsVerified": true}))
	assert.Equal(t, 0, countProducts(st, bson.M{"sellerEmail": "other@example.com", "sellerIsVerified": true}))

	// And back: the toggle is an explicit target state, not a blind flip.
	_, err = svc.SetSellerVerification(ctx, "admin@example.com", sellerID, false)
	require.NoError(t, err)
	assert.Equal(t, 0, countProducts(st, bson.M{"sellerEmail": "seller@example.com", "sellerIsVerified": true}))
}

func TestSetSellerVerificationPartialCascade(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	seedUser(t, st, "admin@example.com", models.RoleAdmin, false)
	sellerID := seedUser(t, st, "seller@example.com", models.RoleSeller, false)
	seedProduct(t, st, models.Product{Name: "P1", SellerEmail: "seller@example.com", CategoryID: "c1"})

	st.Products = &failingCollection{Collection: st.Products, failUpdateMany: true}
	svc := newTestUserService(st)

	_, err := svc.SetSellerVerification(ctx, "admin@example.com", sellerID, true)
	assert.True(t, apperrors.Is(err, apperrors.CodePartialCascade))

	// The primary write committed first; the user never lags its mirrors.
	assert.Equal(t, 1, memUsers(st).Count(bson.M{"email": "seller@example.com", "userIsVerified": true}))
}

func TestSetSellerVerificationUnknownUser(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	svc := newTestUserService(st)
	seedUser(t, st, "admin@example.com", models.RoleAdmin, false)

	result, err := svc.SetSellerVerification(ctx, "admin@example.com", primitive.NewObjectID().Hex(), true)
	require.NoError(t, err)
	assert.EqualValues(t, 0, result.MatchedCount)
}

func TestSetSellerVerificationAdminOnly(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	svc := newTestUserService(st)
	sellerID := seedUser(t, st, "seller@example.com", models.RoleSeller, false)

	_, err := svc.SetSellerVerification(ctx, "seller@example.com", sellerID, true)
	assert.True(t, apperrors.Is(err, apperrors.CodeRoleDenied))
}

func TestDeleteByIDDoesNotCascade(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	svc := newTestUserService(st)
	seedUser(t, st, "admin@example.com", models.RoleAdmin, false)
	sellerID := seedUser(t, st, "seller@example.com", models.RoleSeller, true)
	seedProduct(t, st, models.Product{Name: "P1", SellerEmail: "seller@example.com", CategoryID: "c1"})

	result, err := svc.DeleteByID(ctx, "admin@example.com", sellerID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, result.DeletedCount)

	// Products of a deleted seller are deliberately orphaned.
	assert.Equal(t, 0, memUsers(st).Count(bson.M{"email": "seller@example.com"}))
	assert.Equal(t, 1, countProducts(st, bson.M{"sellerEmail": "seller@example.com"}))
}

func TestUpdateProfileStripsProtectedFields(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	svc := newTestUserService(st)
	id := seedUser(t, st, "alice@example.com", models.RoleBuyer, false)

	result, err := svc.UpdateProfile(ctx, id, bson.M{"location": "Dhaka", "email": "evil@example.com"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, result.MatchedCount)

	assert.Equal(t, 1, memUsers(st).Count(bson.M{"email": "alice@example.com", "location": "Dhaka"}))
	assert.Equal(t, 0, memUsers(st).Count(bson.M{"email": "evil@example.com"}))
}
