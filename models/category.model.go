package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category groups products. Deleting a category cascades to its products.
type Category struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name string             `bson:"categoryName" json:"categoryName" validate:"required"`
}
