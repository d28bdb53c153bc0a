package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"go-marketplace/apperrors"
	"go-marketplace/models"
	"go-marketplace/services"
	"go-marketplace/utils"
)

// ProductController handles product-related requests
type ProductController struct {
	Products *services.ProductService
}

func NewProductController(products *services.ProductService) *ProductController {
	return &ProductController{Products: products}
}

// Create inserts a listing for the authenticated seller.
func (pc *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	caller, err := subject(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		utils.WriteError(w, apperrors.Validation("invalid input", err))
		return
	}

	result, err := pc.Products.Create(r.Context(), caller, product)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, "Product listed", result)
}

// ListBySeller returns the caller's own listings. The seller email comes
// from the verified token subject, not the query string.
func (pc *ProductController) ListBySeller(w http.ResponseWriter, r *http.Request) {
	caller, err := subject(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	products, err := pc.Products.ListBySeller(r.Context(), caller)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "Successfully get seller products", products)
}

// ListAdvertised returns advertised, available products. Public.
func (pc *ProductController) ListAdvertised(w http.ResponseWriter, r *http.Request) {
	products, err := pc.Products.ListAdvertised(r.Context())
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "Successfully get advertised products", products)
}

// ListReported returns reported products. Admin only.
func (pc *ProductController) ListReported(w http.ResponseWriter, r *http.Request) {
	caller, err := subject(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	products, err := pc.Products.ListReported(r.Context(), caller)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "Successfully get reported products", products)
}

// ToggleAdvertise flips a listing's advertised flag.
func (pc *ProductController) ToggleAdvertise(w http.ResponseWriter, r *http.Request) {
	caller, err := subject(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	id := mux.Vars(r)["id"]

	result, err := pc.Products.ToggleAdvertise(r.Context(), caller, id)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "Advertise flag updated", result)
}

// ToggleReported flips a listing's reported flag.
func (pc *ProductController) ToggleReported(w http.ResponseWriter, r *http.Request) {
	if _, err := subject(r); err != nil {
		utils.WriteError(w, err)
		return
	}
	id := mux.Vars(r)["id"]

	result, err := pc.Products.ToggleReported(r.Context(), id)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "Report flag updated", result)
}

// Delete removes a listing. Owning seller or admin.
func (pc *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	caller, err := subject(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	id := mux.Vars(r)["id"]

	result, err := pc.Products.DeleteByID(r.Context(), caller, id)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "Product deleted", result)
}
