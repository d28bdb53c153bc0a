package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"go-marketplace/apperrors"
)

// Response is the JSON envelope every endpoint speaks.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// WriteJSON encodes a success envelope.
func WriteJSON(w http.ResponseWriter, status int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// WriteError encodes a failure envelope, mapping application errors to their
// HTTP status and code.
func WriteError(w http.ResponseWriter, err error) {
	message := "internal error"
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apperrors.StatusOf(err))
	json.NewEncoder(w).Encode(Response{
		Success: false,
		Message: message,
	})
}
