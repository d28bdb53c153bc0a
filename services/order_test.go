package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"go-marketplace/apperrors"
	"go-marketplace/logger"
	"go-marketplace/models"
	"go-marketplace/store"
)

func newTestOrderService(st *store.Store) *OrderService {
	return NewOrderService(st, logger.Nop())
}

func TestOrderCreateForcesBuyerFromIdentity(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	svc := newTestOrderService(st)
	productID := seedProduct(t, st, models.Product{
		Name: "Lamp", SellerEmail: "seller@example.com", CategoryID: "c1", Price: 40,
	})

	// The payload claims another buyer; the stored order carries the caller.
	result, err := svc.Create(ctx, "buyer@example.com", models.Order{
		BuyerEmail: "victim@example.com",
		ProductID:  productID,
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.InsertedID)

	orders, err := svc.ListByBuyer(ctx, "buyer@example.com")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "buyer@example.com", orders[0].BuyerEmail)
	assert.Equal(t, "seller@example.com", orders[0].SellerEmail)
	assert.Equal(t, "Lamp", orders[0].ProductName)
	assert.Equal(t, 40.0, orders[0].Price)
	assert.False(t, orders[0].CreatedAt.IsZero())

	victim, err := svc.ListByBuyer(ctx, "victim@example.com")
	require.NoError(t, err)
	assert.Empty(t, victim)
}

func TestOrderListingsAreScoped(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	svc := newTestOrderService(st)

	p1 := seedProduct(t, st, models.Product{Name: "Lamp", SellerEmail: "s1@example.com", CategoryID: "c1"})
	p2 := seedProduct(t, st, models.Product{Name: "Desk", SellerEmail: "s2@example.com", CategoryID: "c1"})

	_, err := svc.Create(ctx, "b1@example.com", models.Order{ProductID: p1})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "b2@example.com", models.Order{ProductID: p2})
	require.NoError(t, err)

	b1Orders, err := svc.ListByBuyer(ctx, "b1@example.com")
	require.NoError(t, err)
	require.Len(t, b1Orders, 1)
	assert.Equal(t, "b1@example.com", b1Orders[0].BuyerEmail)

	s2Orders, err := svc.ListBySeller(ctx, "s2@example.com")
	require.NoError(t, err)
	require.Len(t, s2Orders, 1)
	assert.Equal(t, "b2@example.com", s2Orders[0].BuyerEmail)
}

func TestOrderGetByIDReadScope(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	svc := newTestOrderService(st)
	seedUser(t, st, "admin@example.com", models.RoleAdmin, false)
	seedUser(t, st, "stranger@example.com", models.RoleBuyer, false)

	productID := seedProduct(t, st, models.Product{Name: "Lamp", SellerEmail: "seller@example.com", CategoryID: "c1"})
	created, err := svc.Create(ctx, "buyer@example.com", models.Order{ProductID: productID})
	require.NoError(t, err)

	for _, caller := range []string{"buyer@example.com", "seller@example.com", "admin@example.com"} {
		order, found, err := svc.GetByID(ctx, caller, created.InsertedID)
		require.NoError(t, err, caller)
		require.True(t, found, caller)
		assert.Equal(t, "buyer@example.com", order.BuyerEmail)
	}

	_, _, err = svc.GetByID(ctx, "stranger@example.com", created.InsertedID)
	assert.True(t, apperrors.Is(err, apperrors.CodeRoleDenied))
}

func TestOrderDeleteByBuyerOrAdmin(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	svc := newTestOrderService(st)
	seedUser(t, st, "admin@example.com", models.RoleAdmin, false)
	seedUser(t, st, "seller@example.com", models.RoleSeller, false)

	productID := seedProduct(t, st, models.Product{Name: "Lamp", SellerEmail: "seller@example.com", CategoryID: "c1"})
	created, err := svc.Create(ctx, "buyer@example.com", models.Order{ProductID: productID})
	require.NoError(t, err)

	_, err = svc.DeleteByID(ctx, "seller@example.com", created.InsertedID)
	assert.True(t, apperrors.Is(err, apperrors.CodeRoleDenied))

	result, err := svc.DeleteByID(ctx, "buyer@example.com", created.InsertedID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, result.DeletedCount)
}

func TestOrderDeletedProductStillOrderable(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	svc := newTestOrderService(st)

	productID := seedProduct(t, st, models.Product{Name: "Lamp", SellerEmail: "seller@example.com", CategoryID: "c1"})
	orders, err := svc.Create(ctx, "buyer@example.com", models.Order{ProductID: productID})
	require.NoError(t, err)
	require.NotEmpty(t, orders.InsertedID)

	// Deleting the product leaves the order untouched; orders are history.
	_, err = st.Products.DeleteMany(ctx, bson.M{"_id": mustOID(t, productID)})
	require.NoError(t, err)

	kept, err := svc.ListByBuyer(ctx, "buyer@example.com")
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}
