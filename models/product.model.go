package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sale statuses a product moves through.
const (
	SaleStatusAvailable = "available"
	SaleStatusSold      = "sold"
	SaleStatusRemoved   = "removed"
)

// Product is a seller listing. SellerVerified mirrors the owning user's
// verification flag and is kept in sync when that flag changes.
type Product struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name           string             `bson:"productName" json:"productName" validate:"required"`
	SellerEmail    string             `bson:"sellerEmail" json:"sellerEmail" validate:"required,email"`
	SellerName     string             `bson:"sellerName,omitempty" json:"sellerName,omitempty"`
	CategoryID     string             `bson:"categoryId" json:"categoryId" validate:"required"`
	CategoryName   string             `bson:"productCategory" json:"productCategory"`
	Price          float64            `bson:"price" json:"price"`
	OriginalPrice  float64            `bson:"originalPrice,omitempty" json:"originalPrice,omitempty"`
	Description    string             `bson:"description,omitempty" json:"description,omitempty"`
	ImageURL       string             `bson:"imageURL,omitempty" json:"imageURL,omitempty"`
	SaleStatus     string             `bson:"saleStatus" json:"saleStatus"`
	Advertised     bool               `bson:"advertised" json:"advertised"`
	Reported       bool               `bson:"reported" json:"reported"`
	SellerVerified bool               `bson:"sellerIsVerified" json:"sellerIsVerified"`
	PostedAt       string             `bson:"postedAt,omitempty" json:"postedAt,omitempty"`
}
