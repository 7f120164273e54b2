package providers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/service-providers", listProvidersHandler(svc))
}

type serviceSummaryResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Duration int     `json:"duration"`
}

type providerResponse struct {
	ID          string                   `json:"id"`
	Name        string                   `json:"name"`
	Type        string                   `json:"type"`
	Address     string                   `json:"address"`
	Phone       string                   `json:"phone"`
	Email       string                   `json:"email"`
	Description string                   `json:"description"`
	Services    []serviceSummaryResponse `json:"services"`
	Rating      *float64                 `json:"rating"` // null = sin reviews
	CreatedAt   time.Time                `json:"createdAt"`
}

func listProvidersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), r.URL.Query().Get("type"))
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to fetch service providers")
			return
		}

		out := make([]providerResponse, 0, len(items))
		for _, p := range items {
			services := make([]serviceSummaryResponse, 0, len(p.Services))
			for _, s := range p.Services {
				services = append(services, serviceSummaryResponse{
					ID:       s.ID,
					Name:     s.Name,
					Price:    s.Price.InexactFloat64(),
					Duration: s.DurationMin,
				})
			}

			out = append(out, providerResponse{
				ID:          p.ID,
				Name:        p.Name,
				Type:        p.Type,
				Address:     p.Address,
				Phone:       p.Phone,
				Email:       p.Email,
				Description: p.Description,
				Services:    services,
				Rating:      p.Rating,
				CreatedAt:   p.CreatedAt,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
