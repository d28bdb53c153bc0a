package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"go-marketplace/apperrors"
	"go-marketplace/models"
	"go-marketplace/store"
	"go-marketplace/utils"
)

// UserService implements user lifecycle and the seller-verification cascade.
type UserService struct {
	store  *store.Store
	tokens *utils.TokenService
	mail   *utils.EmailService
	log    *zap.SugaredLogger
}

func NewUserService(st *store.Store, tokens *utils.TokenService, mail *utils.EmailService, log *zap.SugaredLogger) *UserService {
	return &UserService{store: st, tokens: tokens, mail: mail, log: log}
}

// LoginResult is what a login returns: whether an account was created, and a
// freshly issued token either way.
type LoginResult struct {
	Created bool   `json:"created"`
	UserID  string `json:"userId,omitempty"`
	Token   string `json:"token"`
}

// LoginOrRegister looks the user up by email and inserts on first login.
// Concurrent first logins for the same email may race; the unique email index
// turns the loser's insert into a duplicate-key failure, which is resolved by
// falling back to the lookup path.
func (s *UserService) LoginOrRegister(ctx context.Context, user models.User) (*LoginResult, error) {
	if err := checkPayload(user); err != nil {
		return nil, err
	}

	var existing models.User
	found, err := s.store.Users.FindOne(ctx, bson.M{"email": user.Email}, &existing)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return nil, apperrors.Internal("token issue failed", err)
	}

	if found {
		return &LoginResult{Created: false, UserID: existing.ID.Hex(), Token: token}, nil
	}

	id, err := s.store.Users.InsertOne(ctx, user)
	if err == store.ErrDuplicateKey {
		// Lost a first-login race; the account exists now.
		s.log.Infow("duplicate login insert resolved as existing account", "email", user.Email)
		if _, err := s.store.Users.FindOne(ctx, bson.M{"email": user.Email}, &existing); err != nil {
			return nil, err
		}
		return &LoginResult{Created: false, UserID: existing.ID.Hex(), Token: token}, nil
	}
	if err != nil {
		return nil, err
	}

	s.log.Infow("registered user", "email", user.Email, "role", user.Role)
	return &LoginResult{Created: true, UserID: id, Token: token}, nil
}

// GetByEmail returns the user with the given email, or found=false.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, bool, error) {
	var user models.User
	found, err := s.store.Users.FindOne(ctx, bson.M{"email": email}, &user)
	if err != nil || !found {
		return nil, false, err
	}
	return &user, true, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, bool, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, false, err
	}
	var user models.User
	found, err := s.store.Users.FindOne(ctx, bson.M{"_id": oid}, &user)
	if err != nil || !found {
		return nil, false, err
	}
	return &user, true, nil
}

// UpdateProfile sets profile fields on the user with the given id. Upserts
// when the id is absent; a defensive default, not the intended path.
func (s *UserService) UpdateProfile(ctx context.Context, id string, fields bson.M) (*store.UpdateResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	delete(fields, "_id")
	delete(fields, "email")
	if len(fields) == 0 {
		return nil, apperrors.Validation("no updatable fields in payload", nil)
	}
	return s.store.Users.UpdateOne(ctx, bson.M{"_id": oid}, fields, true)
}

// DeleteByEmail removes the account with the given email. Admin only.
func (s *UserService) DeleteByEmail(ctx context.Context, callerEmail, email string) (*store.DeleteResult, error) {
	if _, err := callerWithRole(ctx, s.store.Users, callerEmail, models.RoleAdmin); err != nil {
		return nil, err
	}
	return s.store.Users.DeleteOne(ctx, bson.M{"email": email})
}

// ListByRole lists accounts holding one role. Admin only.
func (s *UserService) ListByRole(ctx context.Context, callerEmail, role string) ([]models.User, error) {
	if _, err := callerWithRole(ctx, s.store.Users, callerEmail, models.RoleAdmin); err != nil {
		return nil, err
	}
	if !models.IsValidRole(role) {
		return nil, apperrors.Validation("unknown role", nil)
	}
	var users []models.User
	if err := s.store.Users.FindAll(ctx, bson.M{"userType": role}, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SetSellerVerification sets a seller's verification flag to an explicit
// target state, then cascades the flag onto every product the seller owns.
// The user flag commits first so a reader never sees verified products under
// an unverified seller record. The cascade is a plain set on all matching
// products and can be re-run safely after a partial failure.
func (s *UserService) SetSellerVerification(ctx context.Context, callerEmail, id string, verified bool) (*store.UpdateResult, error) {
	if _, err := callerWithRole(ctx, s.store.Users, callerEmail, models.RoleAdmin); err != nil {
		return nil, err
	}
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var target models.User
	found, err := s.store.Users.FindOne(ctx, bson.M{"_id": oid}, &target)
	if err != nil {
		return nil, err
	}
	if !found {
		return &store.UpdateResult{}, nil
	}

	// The id was just read, so this is a plain update, not an upsert.
	result, err := s.store.Users.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"userIsVerified": verified}, false)
	if err != nil {
		return nil, err
	}

	_, err = s.store.Products.UpdateMany(ctx,
		bson.M{"sellerEmail": target.Email},
		bson.M{"sellerIsVerified": verified})
	if err != nil {
		s.log.Errorw("verification mirror cascade failed",
			"seller", target.Email, "verified", verified, "error", err)
		return nil, apperrors.PartialCascade("product verification mirror", err)
	}

	if err := s.mail.SendSellerVerifiedEmail(target.Email, verified); err != nil {
		// Mail is best effort; the state change already stands.
		s.log.Warnw("verification email failed", "seller", target.Email, "error", err)
	}

	return result, nil
}

// DeleteByID removes a user document. Admin only. Products and orders are
// left in place; the system does not cascade on user deletion.
func (s *UserService) DeleteByID(ctx context.Context, callerEmail, id string) (*store.DeleteResult, error) {
	if _, err := callerWithRole(ctx, s.store.Users, callerEmail, models.RoleAdmin); err != nil {
		return nil, err
	}
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.store.Users.DeleteOne(ctx, bson.M{"_id": oid})
}
