package main

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	config "github.com/andovskaana/Food-Delivery-App-DNICK/configs"
	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/auth"
	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/db"
	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/handlers"
	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/models"
	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/payments"
	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/seed"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Debug(".env not found, relying on environment")
	}

	cfg := config.LoadAppConfig()

	db.Init()
	auth.Init()
	handlers.InitPayments(payments.NewStripeGateway(config.LoadStripeConfig().SecretKey), cfg.Currency)

	if cfg.SeedData {
		if err := seed.Run(db.DB); err != nil {
			logrus.Fatalf("failed to seed database: %v", err)
		}
	}

	r := gin.Default()

	// ── session store ──
	store := sessionStore(cfg)
	r.Use(sessions.Sessions(cfg.SessionName, store))

	// ── public endpoints ──
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	r.POST("/auth/register", auth.Register)
	r.POST("/auth/login", auth.Login)
	r.POST("/auth/logout", auth.Logout)
	r.GET("/auth/oidc/login", auth.OIDCLogin)
	r.GET("/auth/oidc/callback", auth.OIDCCallback)
	r.GET("/api/restaurants", handlers.ListRestaurants)
	r.GET("/api/restaurants/:id", handlers.GetRestaurant)
	r.GET("/api/restaurants/:id/products", handlers.ListProducts)
	r.GET("/api/products/average", handlers.GetAveragePrice)

	// ── protected API ──
	api := r.Group("/api")
	api.Use(auth.RequireAuth())
	{
		api.POST("/cart/add/:product_id", handlers.AddToCart)
		api.GET("/cart", handlers.GetCart)
		api.POST("/cart", handlers.UpdateCart)

		api.GET("/checkout", handlers.CheckoutSummary)
		api.POST("/checkout", handlers.Checkout)

		api.GET("/orders/my", handlers.MyOrders)
		api.POST("/orders/:order_id/confirm", handlers.ConfirmOrder)
		api.POST("/orders/:order_id/cancel", handlers.CancelOrder)
		api.GET("/orders/:order_id/track", handlers.TrackOrder)
		api.POST("/orders/:order_id/track/delivered", handlers.TrackMarkDelivered)

		api.POST("/payments/:order_id/intent", handlers.CreatePaymentIntent)
		api.GET("/payments/:payment_id", handlers.GetPayment)
		api.POST("/payments/:payment_id/simulate-success", handlers.SimulatePaymentSuccess)
		api.POST("/payments/:payment_id/simulate-failure", handlers.SimulatePaymentFailure)

		owner := api.Group("/owner")
		owner.Use(auth.RequireRole(models.RoleOwner))
		{
			owner.GET("/restaurants", handlers.OwnerRestaurants)
			owner.POST("/restaurants", handlers.CreateRestaurant)
			owner.PUT("/restaurants/:id", handlers.UpdateRestaurant)
			owner.POST("/restaurants/:id/products", handlers.CreateProduct)
			owner.PUT("/products/:product_id", handlers.UpdateProduct)
			owner.DELETE("/products/:product_id", handlers.DeleteProduct)
			owner.GET("/orders", handlers.OwnerOrders)
		}

		courier := api.Group("/courier")
		courier.Use(auth.RequireRole(models.RoleCourier))
		{
			courier.GET("/dashboard", handlers.CourierDashboard)
			courier.POST("/accept/:order_id", handlers.AcceptOrder)
			courier.POST("/start/:order_id", handlers.StartDelivery)
			courier.POST("/complete/:order_id", handlers.CompleteOrder)
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		logrus.Fatalf("server exited: %v", err)
	}
}

func sessionStore(cfg config.AppConfig) sessions.Store {
	if cfg.RedisAddr != "" {
		store, err := redis.NewStore(10, "tcp", cfg.RedisAddr, "", []byte(cfg.SessionSecret))
		if err != nil {
			logrus.Fatalf("failed to connect session store to redis: %v", err)
		}
		logrus.Infof("sessions stored in redis at %s", cfg.RedisAddr)
		return store
	}
	return cookie.NewStore([]byte(cfg.SessionSecret))
}
