package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/vetleolai-cyber/Firmaprint-nettside/internal/cart"
	"github.com/vetleolai-cyber/Firmaprint-nettside/internal/config"
	"github.com/vetleolai-cyber/Firmaprint-nettside/internal/database"
	"github.com/vetleolai-cyber/Firmaprint-nettside/internal/handlers"
	"github.com/vetleolai-cyber/Firmaprint-nettside/internal/middleware"
	"github.com/vetleolai-cyber/Firmaprint-nettside/internal/orders"
	"github.com/vetleolai-cyber/Firmaprint-nettside/internal/payments"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureProductIndexes(db); err != nil {
		log.Println("product index warning:", err)
	}
	if err := database.EnsureUserIndexes(db); err != nil {
		log.Println("user index warning:", err)
	}
	if err := database.EnsureCartIndexes(db); err != nil {
		log.Println("cart index warning:", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Println("order index warning:", err)
	}
	if err := database.EnsurePaymentIndexes(db); err != nil {
		log.Println("payment index warning:", err)
	}

	cartStore := cart.NewMongoStore(db)
	products := cart.NewMongoProductFinder(db)
	aggregator := cart.NewAggregator(cartStore, products)

	orderStore := orders.NewMongoStore(db)
	transactions := orders.NewMongoTransactionRecorder(db)

	stripe := payments.NewStripeClient(config.AppEnv.StripeAPIKey, config.AppEnv.StripeWebhookSecret)
	vipps := payments.NewVippsClient(payments.VippsConfig{
		APIURL:          config.AppEnv.VippsAPIURL,
		ClientID:        config.AppEnv.VippsClientID,
		ClientSecret:    config.AppEnv.VippsClientSecret,
		SubscriptionKey: config.AppEnv.VippsSubscriptionKey,
		MerchantSerial:  config.AppEnv.VippsMerchantSerial,
	})

	assembler := orders.NewAssembler(cartStore, orderStore, transactions, stripe)

	r := gin.Default()
	r.Use(middleware.CORS(config.AppEnv.CORSOrigins))

	api := r.Group("/api")
	{
		api.GET("/", handlers.Root())

		api.POST("/auth/register", handlers.Register(db, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))
		api.POST("/auth/login", handlers.Login(db, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))
		api.GET("/auth/me", middleware.UserAuth(config.AppEnv.JWTSecret), handlers.GetMe(db))

		api.GET("/products", handlers.GetProducts(db))
		api.GET("/products/:slug", handlers.GetProductBySlug(db))
		api.GET("/categories", handlers.GetCategories())

		api.GET("/cart", handlers.GetCart(aggregator))
		api.POST("/cart/items", handlers.AddCartItem(aggregator))
		api.DELETE("/cart/items/:index", handlers.RemoveCartItem(aggregator))
		api.DELETE("/cart", handlers.ClearCart(aggregator))

		api.GET("/pricing/info", handlers.PricingInfo())
		api.POST("/pricing/calculate", handlers.CalculatePricing())

		api.POST("/orders", middleware.OptionalUser(config.AppEnv.JWTSecret), handlers.CreateOrder(assembler))
		api.GET("/orders/:id", handlers.GetOrder(orderStore))
		api.GET("/orders/number/:orderNumber", handlers.GetOrderByNumber(orderStore))

		api.GET("/checkout/status/:session_id", handlers.CheckoutStatus(stripe, orderStore, transactions))
		api.POST("/webhook/stripe", handlers.StripeWebhook(stripe, orderStore, transactions))

		api.POST("/payments/vipps", handlers.InitiateVippsPayment(vipps, orderStore, transactions))
		api.GET("/payments/vipps/:reference", handlers.VippsPaymentStatus(vipps, transactions))
		api.POST("/payments/vipps/:reference/capture", handlers.CaptureVippsPayment(vipps, orderStore, transactions))

		api.POST("/quotes", handlers.CreateQuoteRequest(db))
		api.GET("/quotes", middleware.AdminOnly(config.AppEnv.JWTSecret), handlers.ListQuoteRequests(db))
		api.POST("/contact", handlers.CreateContactMessage(db))

		api.POST("/upload/logo", handlers.UploadLogo(db))
		api.GET("/logos/:id", handlers.GetLogo(db))

		api.POST("/seed", handlers.SeedDatabase(db))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
