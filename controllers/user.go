package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"

	"go-marketplace/apperrors"
	"go-marketplace/models"
	"go-marketplace/services"
	"go-marketplace/utils"
)

// UserController handles user-related requests
type UserController struct {
	Users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{Users: users}
}

// Login handles login-or-register. First login creates the account; any
// later login with the same email just gets a fresh token.
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		utils.WriteError(w, apperrors.Validation("invalid input", err))
		return
	}

	result, err := uc.Users.LoginOrRegister(r.Context(), user)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	message := "Successfully login"
	if result.Created {
		message = "Account created, successfully login"
	}
	utils.WriteJSON(w, http.StatusOK, message, result)
}

// GetByEmail returns the user for ?email=. Missing users come back as an
// empty success payload.
func (uc *UserController) GetByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	user, found, err := uc.Users.GetByEmail(r.Context(), email)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	if !found {
		utils.WriteJSON(w, http.StatusOK, "No user with that email", nil)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "Successfully get user data", user)
}

// GetProfile returns one user by id.
func (uc *UserController) GetProfile(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	user, found, err := uc.Users.GetByID(r.Context(), id)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	if !found {
		utils.WriteJSON(w, http.StatusOK, "No user with that id", nil)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "Successfully get user data", user)
}

// UpdateProfile patches profile fields on one user.
func (uc *UserController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var fields bson.M
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		utils.WriteError(w, apperrors.Validation("invalid input", err))
		return
	}

	result, err := uc.Users.UpdateProfile(r.Context(), id, fields)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "Profile updated", result)
}

// DeleteByEmail removes the user for ?email=. Admin only.
func (uc *UserController) DeleteByEmail(w http.ResponseWriter, r *http.Request) {
	caller, err := subject(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	email := r.URL.Query().Get("email")

	result, err := uc.Users.DeleteByEmail(r.Context(), caller, email)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "User deleted", result)
}

// ListByRole lists accounts holding the role baked into the route. Admin
// only; the role check lives in the service.
func (uc *UserController) ListByRole(role string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := subject(r)
		if err != nil {
			utils.WriteError(w, err)
			return
		}

		users, err := uc.Users.ListByRole(r.Context(), caller, role)
		if err != nil {
			utils.WriteError(w, err)
			return
		}
		utils.WriteJSON(w, http.StatusOK, "Successfully get "+role+"s", users)
	}
}

// SetVerification sets a seller's verification flag and cascades the change
// onto the seller's listings.
func (uc *UserController) SetVerification(w http.ResponseWriter, r *http.Request) {
	caller, err := subject(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	id := mux.Vars(r)["id"]

	var body struct {
		Verified bool `json:"verified"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteError(w, apperrors.Validation("invalid input", err))
		return
	}

	result, err := uc.Users.SetSellerVerification(r.Context(), caller, id, body.Verified)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "Seller verification updated", result)
}

// DeleteByID removes one user document by id. Admin only.
func (uc *UserController) DeleteByID(w http.ResponseWriter, r *http.Request) {
	caller, err := subject(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	id := mux.Vars(r)["id"]

	result, err := uc.Users.DeleteByID(r.Context(), caller, id)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "User deleted", result)
}
