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

// OrderController handles order-related requests
type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

// Create places an order for the authenticated caller.
func (oc *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	caller, err := subject(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	var order models.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		utils.WriteError(w, apperrors.Validation("invalid input", err))
		return
	}

	result, err := oc.Orders.Create(r.Context(), caller, order)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, "Order placed", result)
}

// ListByBuyer returns the caller's own orders. Query parameters carry no
// weight here; the filter is always the verified token subject.
func (oc *OrderController) ListByBuyer(w http.ResponseWriter, r *http.Request) {
	caller, err := subject(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	orders, err := oc.Orders.ListByBuyer(r.Context(), caller)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "Successfully get orders", orders)
}

// ListBySeller returns orders placed against the caller's listings.
func (oc *OrderController) ListBySeller(w http.ResponseWriter, r *http.Request) {
	caller, err := subject(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	orders, err := oc.Orders.ListBySeller(r.Context(), caller)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "Successfully get ordered products", orders)
}

// GetByID returns one order, readable by its buyer, its seller, or an admin.
func (oc *OrderController) GetByID(w http.ResponseWriter, r *http.Request) {
	caller, err := subject(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	id := mux.Vars(r)["id"]

	order, found, err := oc.Orders.GetByID(r.Context(), caller, id)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	if !found {
		utils.WriteJSON(w, http.StatusOK, "No order with that id", nil)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "Successfully get order", order)
}

// Delete removes an order: its buyer, or an admin.
func (oc *OrderController) Delete(w http.ResponseWriter, r *http.Request) {
	caller, err := subject(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	id := mux.Vars(r)["id"]

	result, err := oc.Orders.DeleteByID(r.Context(), caller, id)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "Order deleted", result)
}
