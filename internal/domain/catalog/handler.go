package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/products", func(pr chi.Router) {
		pr.Get("/", listProductsHandler(svc))
		pr.Get("/{productID}", getProductHandler(svc))
	})

	r.Get("/services", listServicesHandler(svc))
}

type categoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type productResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       float64          `json:"price"`
	Stock       int              `json:"stock"`
	Images      []string         `json:"images"`
	CategoryID  string           `json:"categoryId"`
	Category    categoryResponse `json:"category"`
	CreatedAt   time.Time        `json:"createdAt"`
}

type providerSummaryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type serviceResponse struct {
	ID              string                  `json:"id"`
	Name            string                  `json:"name"`
	Description     string                  `json:"description"`
	Price           float64                 `json:"price"`
	Duration        int                     `json:"duration"` // minutos
	Type            string                  `json:"type"`
	ServiceProvider providerSummaryResponse `json:"serviceProvider"`
	CreatedAt       time.Time               `json:"createdAt"`
}

func listProductsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		items, err := svc.ListProducts(r.Context(), ListProductsInput{
			CategoryID: q.Get("category"),
			Search:     q.Get("search"),
			Sort:       q.Get("sort"),
		})
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to fetch products")
			return
		}

		out := make([]productResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toProductResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getProductHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetProduct(r.Context(), chi.URLParam(r, "productID"))
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound), errors.Is(err, ErrInvalidInput):
				writeError(w, http.StatusNotFound, "product not found")
			default:
				writeError(w, http.StatusInternalServerError, "failed to fetch product")
			}
			return
		}
		writeJSON(w, http.StatusOK, toProductResponse(p))
	}
}

func listServicesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListServices(r.Context(), r.URL.Query().Get("type"))
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to fetch services")
			return
		}

		out := make([]serviceResponse, 0, len(items))
		for _, s := range items {
			out = append(out, serviceResponse{
				ID:          s.ID,
				Name:        s.Name,
				Description: s.Description,
				Price:       s.Price.InexactFloat64(),
				Duration:    s.DurationMin,
				Type:        s.Type,
				ServiceProvider: providerSummaryResponse{
					ID:   s.Provider.ID,
					Name: s.Provider.Name,
					Type: s.Provider.Type,
				},
				CreatedAt: s.CreatedAt,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toProductResponse(p Product) productResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.InexactFloat64(),
		Stock:       p.Stock,
		Images:      images,
		CategoryID:  p.CategoryID,
		Category: categoryResponse{
			ID:   p.Category.ID,
			Name: p.Category.Name,
		},
		CreatedAt: p.CreatedAt,
	}
}

// writeJSON/writeError están duplicados intencionalmente en handlers de
// distintos módulos para evitar crear paquetes/helpers compartidos demasiado
// pronto. Si el patrón crece, recién conviene extraerlos.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
