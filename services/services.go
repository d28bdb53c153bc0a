package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-marketplace/apperrors"
	"go-marketplace/models"
	"go-marketplace/store"
)

var validate = validator.New()

// checkPayload runs struct validation and converts failures into the
// validation error the transport layer knows how to encode.
func checkPayload(payload interface{}) error {
	if err := validate.Struct(payload); err != nil {
		return apperrors.Validation("invalid payload: "+err.Error(), err)
	}
	return nil
}

// parseID converts a transport-supplied hex id into an ObjectID.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperrors.Validation("invalid document id", err)
	}
	return oid, nil
}

// callerWithRole loads the authenticated caller's user record and checks it
// holds one of the given roles. The identity token carries only an email, so
// the caller's role is always resolved from the store, never from the token.
func callerWithRole(ctx context.Context, users store.Collection, email string, roles ...string) (*models.User, error) {
	var caller models.User
	found, err := users.FindOne(ctx, bson.M{"email": email}, &caller)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.RoleDenied("no account for caller")
	}
	for _, role := range roles {
		if caller.Role == role {
			return &caller, nil
		}
	}
	return nil, apperrors.RoleDenied(
		fmt.Sprintf("operation requires role %s", strings.Join(roles, " or ")))
}
