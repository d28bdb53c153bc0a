// main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"go-marketplace/config"
	"go-marketplace/controllers"
	"go-marketplace/logger"
	"go-marketplace/routes"
	"go-marketplace/services"
	"go-marketplace/store"
	"go-marketplace/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.Environment == "development")
	defer log.Sync()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	st, err := store.Connect(ctx, cfg.MongoURI, cfg.Database)
	cancel()
	if err != nil {
		log.Fatalf("store connect: %v", err)
	}
	defer func() {
		if err := st.Disconnect(context.Background()); err != nil {
			log.Errorf("store disconnect: %v", err)
		}
	}()

	tokens := utils.NewTokenService(cfg.JWTSecret)
	mail := utils.NewEmailService(cfg.PostmarkToken, cfg.EmailSender)

	userService := services.NewUserService(st, tokens, mail, log)
	categoryService := services.NewCategoryService(st, log)
	productService := services.NewProductService(st, log)
	orderService := services.NewOrderService(st, log)

	userController := controllers.NewUserController(userService)
	categoryController := controllers.NewCategoryController(categoryService, productService)
	productController := controllers.NewProductController(productService)
	orderController := controllers.NewOrderController(orderService)

	router := mux.NewRouter()
	routes.RegisterRoutes(router, tokens, userController, categoryController, productController, orderController)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Infof("Marketplace server is running on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("server shutdown: %v", err)
	}
	log.Info("server stopped")
}
