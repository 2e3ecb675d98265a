package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Tyagi221B/Ecommerce-backend/internal/config"
	"github.com/Tyagi221B/Ecommerce-backend/internal/database"
	"github.com/Tyagi221B/Ecommerce-backend/internal/handlers"
	"github.com/Tyagi221B/Ecommerce-backend/internal/metrics"
	"github.com/Tyagi221B/Ecommerce-backend/internal/middleware"
	"github.com/Tyagi221B/Ecommerce-backend/internal/otp"
	"github.com/Tyagi221B/Ecommerce-backend/internal/services"
)

func main() {
	config.Load()
	cfg := config.AppEnv

	client, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatal("[MAIN] [FATAL] mongo connection failed: ", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			log.Println("[MAIN] [ERROR] mongo disconnect failed:", err)
		}
	}()

	db := client.Database(cfg.DBName)

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Fatal("[MAIN] [FATAL] user indexes: ", err)
	}
	if err := database.EnsureProductIndexes(db); err != nil {
		log.Fatal("[MAIN] [FATAL] product indexes: ", err)
	}
	if err := database.EnsureCategoryIndexes(db); err != nil {
		log.Fatal("[MAIN] [FATAL] category indexes: ", err)
	}
	if err := database.EnsureLivePriceIndexes(db); err != nil {
		log.Fatal("[MAIN] [FATAL] live price indexes: ", err)
	}

	verifier := otp.New(cfg, db)

	feed := services.NewPriceFeed(db, cfg.GoldPriceURL, cfg.DiamondPriceURL, cfg.SolitairePriceURL)
	if feed.Configured() {
		go feed.Run(context.Background(), cfg.LivePriceRefresh)
	} else {
		log.Println("[MAIN] [WARN] live price feed not configured, price calculation needs seeded rates")
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-ReAuth-Token"},
		ExposeHeaders:    []string{"X-ReAuth-Token"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(metrics.Middleware())

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "API Working with /api/v1")
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.Static("/uploads", "./uploads")

	api := r.Group("/api/v1")

	user := api.Group("/user")
	{
		user.POST("/new", handlers.RegisterUser(db, cfg))
		user.POST("/send-otp", handlers.SendOtp(verifier))
		user.POST("/verify-otp", handlers.VerifyOtp(db, verifier, cfg))
		user.POST("/send-reauth-otp", middleware.VerifyJWT(db, cfg.AccessTokenSecret), handlers.SendReAuthOtp(verifier))
		user.POST("/verify-reauth-otp", middleware.VerifyJWT(db, cfg.AccessTokenSecret), handlers.VerifyReAuthOtp(verifier, cfg))
		user.GET("/all", middleware.AdminOnly(db), handlers.GetAllUsers(db))
		user.GET("/getuser/:phone", handlers.GetUserByPhone(db))
		user.GET("/:id", handlers.GetUser(db))
		user.PUT("/:id", middleware.VerifyJWT(db, cfg.AccessTokenSecret), middleware.RequireReAuth(cfg.ReAuthTokenSecret), handlers.EditUserInfo(db))
		user.DELETE("/:id", middleware.AdminOnly(db), handlers.DeleteUser(db))
	}

	address := api.Group("/address")
	{
		address.POST("/addresses", handlers.AddAddress(db))
		address.PUT("/addresses/:addressId", handlers.UpdateAddress(db))
		address.DELETE("/addresses/:addressId", handlers.DeleteAddress(db))
		address.GET("/addresses/user/:userId", handlers.GetAddressesForUser(db))
		address.GET("/addresses/:addressId", handlers.GetAddressByID(db))
	}

	product := api.Group("/product")
	{
		product.GET("/all", handlers.GetAllProducts(db))
		product.POST("/new", handlers.CreateProduct(db))
		product.GET("/:id", handlers.GetProductByID(db))
		product.PUT("/:id", handlers.UpdateProduct(db))
		product.DELETE("/:id", handlers.DeleteProduct(db))
	}

	category := api.Group("/category")
	{
		category.GET("/all", handlers.GetAllCategories(db))
		category.POST("/new", middleware.AdminOnly(db), handlers.CreateCategory(db))
		category.GET("/:id", handlers.GetSingleCategory(db))
		category.PUT("/:id", middleware.AdminOnly(db), handlers.UpdateCategory(db))
	}

	dashboard := api.Group("/dashboard")
	{
		dashboard.POST("/calculate", handlers.CalculatePrice(db))
	}

	log.Println("[MAIN] [INFO] listening on port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("[MAIN] [FATAL] server stopped: ", err)
	}
}
