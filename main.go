package main

import (
	"encoding/json"
	stdlog "log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/username/divroutine/backend/src/config"
	"github.com/username/divroutine/backend/src/database"
	"github.com/username/divroutine/backend/src/handlers"
	"github.com/username/divroutine/backend/src/logger"
	"github.com/username/divroutine/backend/src/security"
	"github.com/username/divroutine/backend/src/services"
)

var limiter = rate.NewLimiter(rate.Every(100*time.Millisecond), 30)

func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			logger.L.Warn("Rate limit exceeded", "path", r.URL.Path)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		allowedOrigins := map[string]bool{
			"http://localhost:3000":     true,
			config.Cfg.FrontendBaseURL: true,
		}

		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE, PATCH")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization, X-Requested-With")
		} else if origin == "" {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)

	logger.L.Info("DivRoutine backend server starting...")

	if len(config.Cfg.JWTSecret) < 32 {
		logger.L.Error("JWT_SECRET configuration invalid.")
		os.Exit(1)
	}

	logger.L.Info("Initializing database...", "path", config.Cfg.DatabasePath)
	database.InitDB(config.Cfg.DatabasePath)
	database.RunMigrations(config.Cfg.DatabasePath)

	reportCache := cache.New(services.DefaultCacheExpiration, services.CacheCleanupInterval)

	authService := security.NewAuthService(config.Cfg.JWTSecret)
	reportService := services.NewReportService(database.DB, reportCache)
	importService := services.NewImportService(database.DB, reportService)

	userHandler := handlers.NewUserHandler(authService, reportService)
	ledgerHandler := handlers.NewLedgerHandler(reportService)
	reportHandler := handlers.NewReportHandler(reportService)
	importHandler := handlers.NewImportHandler(importService)

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(handlers.ContextualLoggerMiddleware)
	r.Use(enableCORS)
	r.Use(rateLimitMiddleware)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "DivRoutine Backend is running"})
	})

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Group(func(r chi.Router) {
			r.Post("/auth/register", userHandler.RegisterUserHandler)
			r.Post("/auth/login", userHandler.LoginUserHandler)
		})

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(userHandler.AuthMiddleware)

			r.Get("/user/settings", userHandler.HandleGetSettings)
			r.Put("/user/settings", userHandler.HandleUpdateSettings)

			r.Get("/kpis", reportHandler.HandleGetKpis)
			r.Get("/reports/weekly", reportHandler.HandleGetWeeklyReport)
			r.Get("/reports/weekly/recent", reportHandler.HandleGetRecentWeeklyReports)
			r.Get("/reports/monthly", reportHandler.HandleGetMonthlyReport)
			r.Get("/reports/monthly/recent", reportHandler.HandleGetRecentMonthlyReports)
			r.Get("/charts/dividends", reportHandler.HandleGetDividendChart)
			r.Get("/charts/cashflows", reportHandler.HandleGetCashFlowChart)

			r.Get("/transactions", ledgerHandler.HandleListTransactions)
			r.Post("/transactions", ledgerHandler.HandleAddTransaction)
			r.Delete("/transactions/{id}", ledgerHandler.HandleDeleteTransaction)

			r.Get("/dividends", ledgerHandler.HandleListDividends)
			r.Post("/dividends", ledgerHandler.HandleAddDividend)
			r.Delete("/dividends/{id}", ledgerHandler.HandleDeleteDividend)

			r.Get("/cashflows", ledgerHandler.HandleListCashFlows)
			r.Post("/cashflows", ledgerHandler.HandleAddCashFlow)
			r.Delete("/cashflows/{id}", ledgerHandler.HandleDeleteCashFlow)

			r.Get("/holdings", ledgerHandler.HandleListHoldings)
			r.Post("/holdings", ledgerHandler.HandleAddHolding)
			r.Put("/holdings/{id}", ledgerHandler.HandleUpdateHolding)
			r.Delete("/holdings/{id}", ledgerHandler.HandleDeleteHolding)

			r.Post("/import/csv", importHandler.HandleUploadCSV)
			r.Post("/import/sheet", importHandler.HandleSyncRows)
		})
	})

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		stdlog.Fatalf("Failed to start server: %v", err)
	}
}
