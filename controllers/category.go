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

// CategoryController handles category-related requests
type CategoryController struct {
	Categories *services.CategoryService
	Products   *services.ProductService
}

func NewCategoryController(categories *services.CategoryService, products *services.ProductService) *CategoryController {
	return &CategoryController{Categories: categories, Products: products}
}

// Create inserts a category. Admin only.
func (cc *CategoryController) Create(w http.ResponseWriter, r *http.Request) {
	caller, err := subject(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	var category models.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		utils.WriteError(w, apperrors.Validation("invalid input", err))
		return
	}

	result, err := cc.Categories.Create(r.Context(), caller, category)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, "Category created", result)
}

// ListAll returns every category. Public.
func (cc *CategoryController) ListAll(w http.ResponseWriter, r *http.Request) {
	categories, err := cc.Categories.ListAll(r.Context())
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "Successfully get categories", categories)
}

// ProductsByCategory lists available products in one category; the special
// id lists across all categories. Public.
func (cc *CategoryController) ProductsByCategory(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	products, err := cc.Products.ListByCategory(r.Context(), id)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "Successfully get products", products)
}

// Delete removes a category and cascades over its products. Admin only. The
// category name rides in as ?categoryName= because products reference
// categories by name.
func (cc *CategoryController) Delete(w http.ResponseWriter, r *http.Request) {
	caller, err := subject(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	id := mux.Vars(r)["id"]
	categoryName := r.URL.Query().Get("categoryName")

	result, err := cc.Categories.Delete(r.Context(), caller, id, categoryName)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "Category deleted", result)
}
