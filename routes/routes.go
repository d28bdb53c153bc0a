// routes/routes.go
package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"go-marketplace/controllers"
	"go-marketplace/middleware"
	"go-marketplace/models"
	"go-marketplace/utils"
)

// RegisterRoutes sets up all the routes for the application. Public routes
// are registered ahead of the guarded subrouter so they never hit the auth
// middleware.
func RegisterRoutes(
	router *mux.Router,
	tokens *utils.TokenService,
	userController *controllers.UserController,
	categoryController *controllers.CategoryController,
	productController *controllers.ProductController,
	orderController *controllers.OrderController,
) {
	// Public routes
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Marketplace server is running"))
	}).Methods("GET")

	router.HandleFunc("/users", userController.Login).Methods("POST")
	router.HandleFunc("/users", userController.GetByEmail).Methods("GET")
	router.HandleFunc("/user/profile/{id}", userController.GetProfile).Methods("GET")
	router.HandleFunc("/user/profile/{id}", userController.UpdateProfile).Methods("PATCH")

	router.HandleFunc("/categories", categoryController.ListAll).Methods("GET")
	router.HandleFunc("/category/{id}", categoryController.ProductsByCategory).Methods("GET")
	router.HandleFunc("/advertised", productController.ListAdvertised).Methods("GET")

	// Protected routes
	protected := router.PathPrefix("/").Subrouter()
	protected.Use(middleware.Auth(tokens))

	protected.HandleFunc("/users", userController.DeleteByEmail).Methods("DELETE")

	protected.HandleFunc("/categories", categoryController.Create).Methods("POST")
	protected.HandleFunc("/categories/{id}", categoryController.Delete).Methods("DELETE")

	protected.HandleFunc("/seller-product", productController.Create).Methods("POST")
	protected.HandleFunc("/seller-products", productController.ListBySeller).Methods("GET")
	protected.HandleFunc("/seller-product/{id}", productController.ToggleAdvertise).Methods("PUT")
	protected.HandleFunc("/seller-product/{id}", productController.Delete).Methods("DELETE")

	protected.HandleFunc("/all-sellers", userController.ListByRole(models.RoleSeller)).Methods("GET")
	protected.HandleFunc("/all-sellers/{id}", userController.SetVerification).Methods("PUT")
	protected.HandleFunc("/all-sellers/{id}", userController.DeleteByID).Methods("DELETE")
	protected.HandleFunc("/all-buyers", userController.ListByRole(models.RoleBuyer)).Methods("GET")
	protected.HandleFunc("/all-buyers/{id}", userController.DeleteByID).Methods("DELETE")
	protected.HandleFunc("/all-admins", userController.ListByRole(models.RoleAdmin)).Methods("GET")
	protected.HandleFunc("/all-admins/{id}", userController.DeleteByID).Methods("DELETE")

	protected.HandleFunc("/orders", orderController.Create).Methods("POST")
	protected.HandleFunc("/orders", orderController.ListByBuyer).Methods("GET")
	protected.HandleFunc("/orders/{id}", orderController.GetByID).Methods("GET")
	protected.HandleFunc("/orders/{id}", orderController.Delete).Methods("DELETE")
	protected.HandleFunc("/ordered-products", orderController.ListBySeller).Methods("GET")

	protected.HandleFunc("/reported-products", productController.ListReported).Methods("GET")
	protected.HandleFunc("/reported-products/{id}", productController.ToggleReported).Methods("PUT")
	protected.HandleFunc("/reported-products/{id}", productController.Delete).Methods("DELETE")
}
