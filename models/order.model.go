package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order records a purchase. BuyerEmail and SellerEmail are denormalized at
// creation time; orders are historical and never cascaded afterwards.
type Order struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	BuyerEmail  string             `bson:"buyerEmail" json:"buyerEmail"`
	SellerEmail string             `bson:"sellerEmail" json:"sellerEmail"`
	ProductID   string             `bson:"productId" json:"productId" validate:"required"`
	ProductName string             `bson:"productName,omitempty" json:"productName,omitempty"`
	Price       float64            `bson:"price,omitempty" json:"price,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
