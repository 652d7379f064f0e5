package main

import (
	"crypto/tls"
	"encoding/json"
	stdlog "log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/username/wealthtrack/backend/src/config"
	"github.com/username/wealthtrack/backend/src/database"
	"github.com/username/wealthtrack/backend/src/handlers"
	"github.com/username/wealthtrack/backend/src/logger"
	"github.com/username/wealthtrack/backend/src/security"
	"github.com/username/wealthtrack/backend/src/services"
)

func proxyHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Forwarded-Proto") == "https" {
			r.URL.Scheme = "https"
			r.TLS = &tls.ConnectionState{}
		}
		next.ServeHTTP(w, r)
	})
}

func rateLimitMiddleware(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				logger.L.Warn("Rate limit exceeded", "path", r.URL.Path)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func enableCORS(frontendURL string) func(http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:3000": true,
		frontendURL:             true,
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if allowedOrigins[origin] {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE, PATCH")
				w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization, X-Requested-With, If-None-Match")
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
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)

	logger.L.Info("WealthTrack backend server starting...")

	logger.L.Info("Initializing database...", "path", config.Cfg.DatabasePath)
	database.InitDB(config.Cfg.DatabasePath)
	database.RunMigrations(config.Cfg.DatabasePath, config.Cfg.MigrationsPath)

	entryCache := cache.New(services.DefaultCacheExpiration, services.CacheCleanupInterval)

	authService := security.NewAuthService(config.Cfg.JWTSecret)

	var sheetSource services.SheetSource
	if config.Cfg.ServiceAccountKeyPath != "" {
		src, err := services.NewGoogleSheetsService(
			config.Cfg.ServiceAccountKeyPath,
			config.Cfg.ServiceAccountEmail,
			config.Cfg.SheetsTimeout)
		if err != nil {
			stdlog.Fatalf("Failed to initialize Google Sheets client: %v", err)
		}
		sheetSource = src
	} else {
		logger.L.Warn("GOOGLE_SERVICE_ACCOUNT_KEY_PATH not set; sheet sync endpoints disabled")
		sheetSource = services.NewDisabledSheetSource()
	}

	dashboardService := services.NewDashboardService(database.DB, entryCache)
	syncService := services.NewSheetSyncService(database.DB, sheetSource, dashboardService, config.Cfg.SheetMaxRows)

	authMiddleware := handlers.NewAuthMiddleware(authService)
	netWorthHandler := handlers.NewNetWorthHandler(database.DB, dashboardService)
	creditCardHandler := handlers.NewCreditCardHandler(database.DB)
	settingsHandler := handlers.NewSettingsHandler(database.DB)
	syncHandler := handlers.NewSyncHandler(database.DB, syncService, sheetSource)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	limiter := rate.NewLimiter(rate.Every(config.Cfg.RateLimitInterval), config.Cfg.RateLimitBurst)

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(handlers.ContextualLoggerMiddleware)
	r.Use(proxyHeadersMiddleware)
	r.Use(enableCORS(config.Cfg.FrontendURL))
	r.Use(rateLimitMiddleware(limiter))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "WealthTrack Backend is running"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Handler)

			r.Get("/net-worth", netWorthHandler.HandleList)
			r.Post("/net-worth", netWorthHandler.HandleCreate)
			r.Put("/net-worth/{id}", netWorthHandler.HandleUpdate)
			r.Delete("/net-worth/{id}", netWorthHandler.HandleDelete)

			r.Get("/credit-cards", creditCardHandler.HandleList)
			r.Post("/credit-cards", creditCardHandler.HandleCreate)
			r.Get("/credit-cards/{id}", creditCardHandler.HandleGet)
			r.Put("/credit-cards/{id}", creditCardHandler.HandleUpdate)
			r.Delete("/credit-cards/{id}", creditCardHandler.HandleDelete)
			r.Get("/credit-cards/summary", dashboardHandler.HandleGetCardSummary)
			r.Post("/credit-cards/sync", syncHandler.HandleSyncCreditCards)

			r.Get("/settings", settingsHandler.HandleGet)
			r.Post("/settings", settingsHandler.HandleSave)

			r.Post("/sync", syncHandler.HandleSyncNetWorth)
			r.Post("/create-sheet", syncHandler.HandleCreateNetWorthSheet)
			r.Post("/create-credit-cards-sheet", syncHandler.HandleCreateCreditCardsSheet)

			r.Get("/dashboard", dashboardHandler.HandleGetDashboard)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api/") {
			http.NotFound(w, r)
		}
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
