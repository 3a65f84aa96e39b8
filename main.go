package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"techub/internal/cache"
	"techub/internal/commerce"
	"techub/internal/config"
	"techub/internal/database"
	"techub/internal/events"
	"techub/internal/handlers"
	"techub/internal/middleware"
)

func main() {
	config.Load()

	if config.AppEnv.JWTSecret == "" {
		log.Fatal("[BOOT] [ERROR] JWT_SECRET is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	pool, err := database.ConnectPostgres(ctx, config.AppEnv.PostgresDSN)
	if err != nil {
		cancel()
		log.Fatal("[BOOT] [ERROR] postgres connect failed: ", err)
	}
	if err := database.EnsureSchema(ctx, pool); err != nil {
		cancel()
		log.Fatal("[BOOT] [ERROR] schema migration failed: ", err)
	}
	cancel()
	defer pool.Close()
	log.Println("[BOOT] [INFO] postgres connected")

	if config.AppEnv.MongoURI == "" {
		log.Fatal("[BOOT] [ERROR] MONGO_URI is required")
	}
	client, err := database.ConnectMongo(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal("[BOOT] [ERROR] mongo connect failed: ", err)
	}
	defer func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	authDB := client.Database(config.AppEnv.DBName)
	log.Println("[BOOT] [INFO] mongo connected to:", authDB.Name())

	if err := database.EnsureUserIndexes(authDB); err != nil {
		log.Println("[BOOT] [WARN] user index:", err)
	}
	if err := database.EnsureRefreshTokenIndexes(authDB); err != nil {
		log.Println("[BOOT] [WARN] refresh token index:", err)
	}

	productCache := cache.New(config.AppEnv.RedisAddr)
	if productCache != nil {
		defer productCache.Close()
		log.Println("[BOOT] [INFO] product cache enabled:", config.AppEnv.RedisAddr)
	}

	publisher := events.NewPublisher(config.AppEnv.KafkaBrokers, config.AppEnv.ServiceName)
	publisher.Start()
	defer publisher.Close()

	catalog := &commerce.Catalog{DB: pool}
	carts := &commerce.CartStore{DB: pool}
	orders := &commerce.OrderStore{DB: pool}
	checkout := &commerce.Checkout{DB: pool}
	addresses := &commerce.AddressStore{DB: pool}

	secret := config.AppEnv.JWTSecret
	accessTTL := config.AppEnv.AccessTokenTTL
	refreshTTL := config.AppEnv.RefreshTokenTTL

	metrics := middleware.NewServerMetrics(config.AppEnv.ServiceName)

	r := gin.Default()
	r.Use(metrics.Middleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", middleware.MetricsHandler())

	r.POST("/api/user/register", handlers.Register(authDB, secret, accessTTL, refreshTTL))
	r.POST("/api/user/login", handlers.Login(authDB, secret, accessTTL, refreshTTL))
	r.POST("/api/user/refresh", handlers.Refresh(authDB, secret, accessTTL, refreshTTL))
	r.POST("/api/user/logout", handlers.Logout(authDB))
	r.GET("/api/user/me", middleware.UserAuth(secret), handlers.GetMe(authDB))

	r.GET("/api/products", handlers.GetProducts(catalog))
	r.GET("/api/products/:id", handlers.GetProduct(catalog, productCache))
	r.GET("/api/products/:id/related", handlers.GetRelatedProducts(catalog))
	r.GET("/api/categories", handlers.GetCategories(catalog))
	r.GET("/api/brands", handlers.GetBrands(catalog))

	// Payment provider callback: authenticated out of band, not by user JWT.
	r.PATCH("/api/orders/payment/:payment_id", handlers.UpdatePaymentStatus(orders, publisher))

	user := r.Group("/api")
	user.Use(middleware.UserAuth(secret))
	{
		user.GET("/carts", handlers.GetCart(carts))
		user.POST("/carts/items", handlers.AddToCart(carts, catalog))
		user.PATCH("/carts/items/:product_id", handlers.UpdateCartItem(carts))
		user.DELETE("/carts/items/:product_id", handlers.RemoveFromCart(carts))
		user.DELETE("/carts", handlers.ClearCart(carts))

		user.POST("/orders/checkout", handlers.CheckoutCart(checkout, publisher, productCache))
		user.GET("/orders", handlers.GetMyOrders(orders))
		user.GET("/orders/:order_id", handlers.GetOrderDetails(orders))

		user.POST("/address", handlers.CreateAddress(addresses))
		user.GET("/address", handlers.GetUserAddresses(addresses))
		user.GET("/address/:id", handlers.GetAddress(addresses))
		user.PUT("/address/:id", handlers.UpdateAddress(addresses))
		user.DELETE("/address/:id", handlers.DeleteAddress(addresses))
	}

	r.POST("/api/admin/login", handlers.AdminLogin(config.AppEnv.AdminEmail, config.AppEnv.AdminPassword, secret))

	admin := r.Group("/api/admin")
	admin.Use(middleware.AdminAuth(secret))
	{
		admin.GET("/verify", handlers.VerifyAdmin())
		admin.GET("/users", handlers.ListUsers(authDB))

		admin.POST("/products", handlers.CreateProduct(catalog))
		admin.PUT("/products/:id", handlers.UpdateProduct(catalog, productCache))
		admin.DELETE("/products/:id", handlers.DeleteProduct(catalog, productCache))

		admin.POST("/categories", handlers.CreateCategory(catalog))
		admin.PUT("/categories/:id", handlers.UpdateCategory(catalog))
		admin.DELETE("/categories/:id", handlers.DeleteCategory(catalog))

		admin.POST("/brands", handlers.CreateBrand(catalog))
		admin.PUT("/brands/:id", handlers.UpdateBrand(catalog))
		admin.DELETE("/brands/:id", handlers.DeleteBrand(catalog))

		admin.GET("/orders", handlers.GetAllOrders(orders))
		admin.GET("/orders/user/:user_id", handlers.GetOrdersByUser(orders))
		admin.PATCH("/orders/:order_id/status", handlers.UpdateOrderStatus(orders, publisher, productCache))
		admin.PATCH("/orders/:order_id/shipping", handlers.UpdateShippingTracking(orders))
	}

	srv := &http.Server{
		Addr:    ":" + config.AppEnv.Port,
		Handler: r,
	}

	go func() {
		log.Println("[BOOT] [INFO] listening on", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("[BOOT] [ERROR] server stopped: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("[BOOT] [INFO] shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Println("[BOOT] [ERROR] graceful shutdown failed:", err)
	}
	log.Println("[BOOT] [INFO] server stopped")
}
