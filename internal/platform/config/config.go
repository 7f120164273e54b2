package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config agrupa todo lo que el servicio lee de env.
// Cargar una sola vez en main y pasar hacia abajo.
type Config struct {
	Port string

	// Si DBDSN está vacío, el router usa repos in-memory (modo dev).
	DBDSN string

	// Si RedisAddr está vacío, no hay cache de carrito.
	RedisAddr     string
	RedisPassword string
	CartCacheTTL  time.Duration

	// Si AuthBaseURL está vacío, middleware queda en modo dev (X-Debug-User-ID).
	AuthBaseURL string
	AuthAPIKey  string

	SeedDemoData bool
}

// Load lee .env (si existe) y luego env vars.
// Un .env ausente no es error: en deploy real todo viene por env.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:          envOr("PORT", "8080"),
		DBDSN:         strings.TrimSpace(os.Getenv("DB_DSN")),
		RedisAddr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		CartCacheTTL:  durationOr("CART_CACHE_TTL", 24*time.Hour),
		AuthBaseURL:   strings.TrimSpace(os.Getenv("AUTH_BASE_URL")),
		AuthAPIKey:    strings.TrimSpace(os.Getenv("AUTH_API_KEY")),
		SeedDemoData:  boolOr("SEED_DEMO_DATA", true),
	}
}

func envOr(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func durationOr(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func boolOr(key string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return def
	}
}
