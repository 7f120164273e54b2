package main

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	"pet-care-marketplace/internal/adapters/auth/identity"
	pg "pet-care-marketplace/internal/adapters/storage/postgres"
	"pet-care-marketplace/internal/platform/config"
	"pet-care-marketplace/internal/platform/logger"
	"pet-care-marketplace/internal/ports/auth"
	"pet-care-marketplace/internal/router"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()
	log := logger.NewFromEnv()

	var db *sql.DB
	if cfg.DBDSN != "" {
		opened, err := pg.Open(cfg.DBDSN)
		if err != nil {
			log.Error("postgres open failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		db = opened
		defer db.Close()
	} else {
		log.Warn("DB_DSN not set, using in-memory repos", nil)
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer rdb.Close()
	}

	var verifier auth.AuthVerifier
	if cfg.AuthBaseURL != "" {
		v, err := identity.NewVerifier(identity.Config{
			BaseURL: cfg.AuthBaseURL,
			APIKey:  cfg.AuthAPIKey,
		})
		if err != nil {
			log.Error("identity verifier init failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		verifier = v
	} else {
		log.Warn("AUTH_BASE_URL not set, auth in dev mode (X-Debug-User-ID)", nil)
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		DB:           db,
		Redis:        rdb,
		CartCacheTTL: cfg.CartCacheTTL,
		SeedDemoData: cfg.SeedDemoData,
	})

	addr := ":" + cfg.Port

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
