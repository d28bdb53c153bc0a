package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user document may carry.
const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

// IsValidRole checks whether the given role string is one of the known roles.
func IsValidRole(role string) bool {
	return role == RoleBuyer || role == RoleSeller || role == RoleAdmin
}

// User represents a user in the system. Email is the unique business key;
// IsVerified is meaningful only for the seller role.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name       string             `bson:"name" json:"name"`
	Email      string             `bson:"email" json:"email" validate:"required,email"`
	Role       string             `bson:"userType" json:"userType" validate:"required,oneof=buyer seller admin"`
	IsVerified bool               `bson:"userIsVerified" json:"userIsVerified"`
	PhotoURL   string             `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	Location   string             `bson:"location,omitempty" json:"location,omitempty"`
	Phone      string             `bson:"phone,omitempty" json:"phone,omitempty"`
}
