package controllers

import (
	"net/http"

	"go-marketplace/apperrors"
	"go-marketplace/middleware"
)

// subject returns the verified caller email the auth guard attached.
func subject(r *http.Request) (string, error) {
	email, ok := middleware.Subject(r.Context())
	if !ok {
		return "", apperrors.Unauthorized("no verified identity on request", nil)
	}
	return email, nil
}
