package pets

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-care-marketplace/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))
		pr.Delete("/{petID}", deletePetHandler(svc))
	})
}

type createPetRequest struct {
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Breed        string   `json:"breed"`
	DateOfBirth  string   `json:"dateOfBirth"` // YYYY-MM-DD opcional
	Weight       *float64 `json:"weight"`      // kg, opcional
	DietaryNotes string   `json:"dietaryNotes"`
}

type petResponse struct {
	ID           string     `json:"id"`
	UserID       string     `json:"userId"`
	Name         string     `json:"name"`
	Type         string     `json:"type"`
	Breed        string     `json:"breed,omitempty"`
	DateOfBirth  *time.Time `json:"dateOfBirth,omitempty"`
	Weight       *float64   `json:"weight,omitempty"`
	DietaryNotes string     `json:"dietaryNotes,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		var dob *time.Time
		if strings.TrimSpace(req.DateOfBirth) != "" {
			t, err := time.Parse("2006-01-02", req.DateOfBirth)
			if err != nil {
				writeError(w, http.StatusBadRequest, "dateOfBirth must be YYYY-MM-DD")
				return
			}
			dob = &t
		}

		var weight *decimal.Decimal
		if req.Weight != nil {
			d := decimal.NewFromFloat(*req.Weight)
			weight = &d
		}

		p, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:         req.Name,
			Type:         req.Type,
			Breed:        req.Breed,
			DateOfBirth:  dob,
			Weight:       weight,
			DietaryNotes: req.DietaryNotes,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				writeError(w, http.StatusBadRequest, "name and type are required")
				return
			}
			writeError(w, http.StatusInternalServerError, "failed to create pet")
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		items, err := svc.ListByUser(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to fetch pets")
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		err := svc.Delete(r.Context(), claims.UserID, chi.URLParam(r, "petID"))
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				writeError(w, http.StatusNotFound, "pet not found")
			case errors.Is(err, ErrInvalidInput):
				writeError(w, http.StatusBadRequest, "invalid pet id")
			default:
				writeError(w, http.StatusInternalServerError, "failed to delete pet")
			}
			return
		}

		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

func toPetResponse(p Pet) petResponse {
	var weight *float64
	if p.Weight != nil {
		wf := p.Weight.InexactFloat64()
		weight = &wf
	}
	return petResponse{
		ID:           p.ID,
		UserID:       p.UserID,
		Name:         p.Name,
		Type:         p.Type,
		Breed:        p.Breed,
		DateOfBirth:  p.DateOfBirth,
		Weight:       weight,
		DietaryNotes: p.DietaryNotes,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
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
