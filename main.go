package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"personalfinance/db"
	_ "personalfinance/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var (
	store          db.Store
	enumValidator  *Validator
	jwtSecret      []byte
	tokenTTL       time.Duration
	refreshTTL     = 7 * 24 * time.Hour
	requestTimeout = 10 * time.Second
)

// @title Personal Finance API
// @version 1.0
// @description REST API for user accounts, expense trackers, investments and transaction ledgers.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET must be set")
	}
	jwtSecret = []byte(secret)

	var err error
	tokenTTL, err = time.ParseDuration(getEnvOrDefault("JWT_EXPIRES_IN", "6h"))
	if err != nil {
		log.Fatal("Invalid JWT_EXPIRES_IN: ", err)
	}
	requestTimeout, err = time.ParseDuration(getEnvOrDefault("REQUEST_TIMEOUT", "10s"))
	if err != nil {
		log.Fatal("Invalid REQUEST_TIMEOUT: ", err)
	}

	enumValidator = NewValidator(
		splitEnvList("INVESTMENT_TYPES", DefaultInvestmentTypes),
		splitEnvList("PAYMENT_MODES", DefaultPaymentModes),
	)

	switch backend := getEnvOrDefault("DATA_BACKEND", "mongo"); backend {
	case "memory":
		log.Println("Using in-memory data backend")
		store = db.NewMemory()
	case "mongo":
		store = connectMongoWithRetry(
			getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
			getEnvOrDefault("MONGO_DB", "personalfinance"),
		)
	default:
		log.Fatalf("Unknown DATA_BACKEND %q", backend)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(ctx); err != nil {
			log.Printf("Error closing store: %v", err)
		}
	}()

	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     splitEnvList("ALLOWED_ORIGINS", []string{"http://localhost:3001"}),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	r.Use(withRequestTimeout(requestTimeout))

	setupRoutes(r)

	port := getEnvOrDefault("PORT", "3000")
	log.Printf("Server starting on port %s", port)
	r.Run(":" + port)
}

// connectMongoWithRetry keeps trying the database until it is reachable, so
// the service can start before its backing store in a compose setup.
func connectMongoWithRetry(uri, database string) *db.Mongo {
	maxRetries := 30
	retryInterval := 2 * time.Second

	var mongoStore *db.Mongo
	var err error
	for i := 0; i < maxRetries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		mongoStore, err = db.ConnectMongo(ctx, uri, database)
		cancel()
		if err != nil {
			log.Printf("Attempt %d: Error connecting to database: %v", i+1, err)
			time.Sleep(retryInterval)
			continue
		}
		log.Println("Successfully connected to database")
		return mongoStore
	}
	log.Fatal("Failed to connect to database after retries: ", err)
	return nil
}

// setupRoutes registers the full route table on the given engine.
func setupRoutes(r *gin.Engine) {
	api := r.Group("/api")

	api.POST("/register", register)
	api.POST("/login", login)
	api.GET("/users", verifyToken, getProfile)
	api.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	user := api.Group("/:username", verifyToken, verifyAccountOwner)

	user.GET("/expenses", listTrackers)
	user.POST("/expenses", createTracker)
	user.GET("/expenses/:expenseId", getTracker)
	user.PUT("/expenses/:expenseId", updateTracker)
	user.DELETE("/expenses/:expenseId", deleteTracker)
	user.POST("/expenses/:expenseId/allocate", allocateToTracker)

	user.GET("/investments", listInvestments)
	user.POST("/investments", createInvestment)
	user.GET("/investments/:investmentId", getInvestment)
	user.PUT("/investments/:investmentId", updateInvestment)
	user.DELETE("/investments/:investmentId", deleteInvestment)
	user.POST("/investments/:investmentId/fund", fundInvestment)

	user.GET("/transactions", listTransactions)
	user.POST("/transactions", createTransaction)
	user.GET("/transactions/:ref", getTransaction)
	user.PUT("/transactions/:ref", updateTransaction)
	user.DELETE("/transactions/:ref", deleteTransaction)
}

// withRequestTimeout bounds every request with a deadline; store operations
// inherit it through the request context.
func withRequestTimeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// splitEnvList reads a comma-separated environment variable, falling back to
// the given defaults when unset.
func splitEnvList(key string, defaults []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaults
	}
	var out []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return defaults
	}
	return out
}
