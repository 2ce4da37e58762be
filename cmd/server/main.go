package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/ruralpay/loanledger/docs"
	"github.com/ruralpay/loanledger/internal/audit"
	"github.com/ruralpay/loanledger/internal/config"
	"github.com/ruralpay/loanledger/internal/database"
	"github.com/ruralpay/loanledger/internal/handlers"
	"github.com/ruralpay/loanledger/internal/ledger"
	mW "github.com/ruralpay/loanledger/internal/middleware"
	"github.com/ruralpay/loanledger/internal/services"
	"github.com/spf13/viper"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Loan Ledger API
// @version 1.0
// @description Hash-chained, tamper-evident loan ledger
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.name", "DATABASE_NAME")
	viper.BindEnv("database.ssl_mode", "DATABASE_SSL_MODE")

	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("redis.db", "REDIS_DB")

	viper.BindEnv("jwt.secret_key", "JWT_SECRET_KEY")
	viper.BindEnv("jwt.expiry_hours", "JWT_EXPIRY_HOURS")
	viper.BindEnv("server.port", "PORT")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Config file not found, using defaults: %v", err)
	}

	if viper.GetString("jwt.secret_key") == "" {
		log.Println("Warning: JWT_SECRET_KEY is not set, operator routes will reject every token")
	}

	ctx := context.Background()

	// The ledger still starts without storage; it is then empty and
	// reported as unverified until a reload succeeds.
	db, err := database.InitDB(ctx)
	if db == nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	if err != nil {
		log.Printf("[LEDGER] Warning: %v", err)
	} else if err := database.RunMigrations(ctx, db); err != nil {
		log.Printf("[LEDGER] Warning: %v", err)
	}

	redisClient := database.InitRedis()
	if redisClient != nil {
		defer redisClient.Close()
	}
	mW.InitAuthMiddleware(redisClient)

	ledgerConfig := config.LoadLedgerConfig()
	repo := services.NewLoanRepository(db)

	loaded := ledger.Load(ctx, repo)
	if loaded.OK() {
		log.Printf("[LEDGER] Loaded %d blocks from storage", loaded.Chain.Len())
	} else {
		log.Printf("[LEDGER] Warning: ledger is unverified: %v", loaded.Err)
	}

	var reportCache services.ReportCache
	if redisClient != nil {
		reportCache = services.NewRedisReportCache(redisClient, ledgerConfig.ReportCacheKey, ledgerConfig.ReportCacheTTL)
	}

	auditLogger := audit.NewAuditLogger()
	loanService := services.NewLoanService(repo, loaded, reportCache, auditLogger, ledgerConfig)
	receiptService := services.NewReceiptService(repo, ledgerConfig.ReceiptPrefix, ledgerConfig.ReceiptQRSize)

	if status, alert := loanService.IntegrityAlert(); alert {
		log.Printf("[LEDGER] Integrity alert at startup: valid=%v verified=%v", status.ChainValid, status.Verified)
	}

	loanHandler := handlers.NewLoanHandler(loanService, receiptService)
	ledgerHandler := handlers.NewLedgerHandler(loanService)

	port := viper.GetString("server.port")
	if port == "" {
		port = "8080"
	}

	docs.SwaggerInfo.Host = "localhost:" + port

	r := chi.NewRouter()

	r.Use(mW.SecurityHeaders)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		status := loanService.Status()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"status":     "healthy",
			"chainValid": status.ChainValid,
			"verified":   status.Verified,
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:"+port+"/swagger/doc.json"),
	))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/loans", loanHandler.RequestLoan)
		r.Get("/loans", loanHandler.ListLoans)
		r.Get("/loans/{id}", loanHandler.GetLoan)
		r.Get("/loans/{id}/receipt", loanHandler.GetReceipt)

		r.Get("/ledger/blocks", ledgerHandler.GetBlocks)
		r.Get("/ledger/status", ledgerHandler.GetStatus)
		r.Get("/ledger/fraud-check", ledgerHandler.FraudCheck)

		// Operator endpoints
		r.Group(func(r chi.Router) {
			r.Use(mW.AuthMiddleware)

			r.Put("/loans/{id}", loanHandler.UpdateLoanAmount)
			r.Post("/ledger/reload", ledgerHandler.Reload)
			r.Post("/auth/logout", handlers.Logout)
		})
	})

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server stopped")
}
