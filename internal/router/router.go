package router

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	mem "pet-care-marketplace/internal/adapters/storage/memory"
	pg "pet-care-marketplace/internal/adapters/storage/postgres"
	"pet-care-marketplace/internal/adapters/storage/rediscache"
	"pet-care-marketplace/internal/domain/appointments"
	"pet-care-marketplace/internal/domain/cart"
	"pet-care-marketplace/internal/domain/catalog"
	"pet-care-marketplace/internal/domain/pets"
	"pet-care-marketplace/internal/domain/providers"
	"pet-care-marketplace/internal/middleware"
	"pet-care-marketplace/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: cache Redis para la vista del carrito.
	Redis        *redis.Client
	CartCacheTTL time.Duration

	// Solo aplica al modo in-memory: carga el dataset de demo.
	SeedDemoData bool
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var (
		catalogRepo   catalog.Repository
		providersRepo providers.Repository
		petRepo       pets.Repository
		cartRepo      cart.Repository
		apptRepo      appointments.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	if db != nil {
		catalogRepo = pg.NewCatalogRepo(db)
		providersRepo = pg.NewProvidersRepo(db)
		petRepo = pg.NewPetsRepo(db)
		cartRepo = pg.NewCartRepo(db)
		apptRepo = pg.NewAppointmentsRepo(db)
	} else {
		memCatalog := mem.NewCatalogRepo()
		memProviders := mem.NewProvidersRepo(memCatalog)
		if opts.SeedDemoData {
			mem.Seed(memCatalog, memProviders)
		}
		catalogRepo = memCatalog
		providersRepo = memProviders
		petRepo = mem.NewPetRepo()
		cartRepo = mem.NewCartRepo()
		apptRepo = mem.NewAppointmentsRepo()
	}

	var cartCache cart.ViewCache
	if opts.Redis != nil {
		cartCache = rediscache.NewCartCache(opts.Redis, opts.CartCacheTTL)
	}

	// Services por módulo
	catalogSvc := catalog.NewService(catalogRepo)
	providersSvc := providers.NewService(providersRepo)
	petsSvc := pets.NewService(petRepo)
	cartSvc := cart.NewService(cartRepo, catalogSvc, cartCache)
	apptSvc := appointments.NewService(apptRepo, catalogSvc, petsSvc)

	// Rutas por módulo
	catalog.RegisterRoutes(r, catalogSvc)
	providers.RegisterRoutes(r, providersSvc)
	pets.RegisterRoutes(r, petsSvc)
	cart.RegisterRoutes(r, cartSvc)
	appointments.RegisterRoutes(r, apptSvc, petsSvc, catalogSvc, providersSvc)

	return r
}
