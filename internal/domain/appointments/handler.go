package appointments

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-care-marketplace/internal/domain/catalog"
	"pet-care-marketplace/internal/domain/pets"
	"pet-care-marketplace/internal/domain/providers"
	"pet-care-marketplace/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service, catalogSvc *catalog.Service, providersSvc *providers.Service) {
	r.Route("/appointments", func(ar chi.Router) {
		ar.Get("/", listAppointmentsHandler(svc, petsSvc, catalogSvc, providersSvc))
		ar.Post("/", createAppointmentHandler(svc, petsSvc, catalogSvc, providersSvc))
		ar.Patch("/{appointmentID}", updateStatusHandler(svc))
	})
}

type createAppointmentRequest struct {
	ServiceID         string `json:"serviceId"`
	PetID             string `json:"petId"`
	ServiceProviderID string `json:"serviceProviderId"`
	Date              string `json:"date"` // RFC3339
	Notes             string `json:"notes"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type petSummaryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type serviceSummaryResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Duration int     `json:"duration"`
}

type providerSummaryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type appointmentResponse struct {
	ID                string     `json:"id"`
	ServiceID         string     `json:"serviceId"`
	PetID             string     `json:"petId"`
	ServiceProviderID string     `json:"serviceProviderId"`
	Date              time.Time  `json:"date"`
	EndAt             time.Time  `json:"endAt"`
	Status            string     `json:"status"`
	Notes             string     `json:"notes,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`

	Pet             *petSummaryResponse      `json:"pet,omitempty"`
	Service         *serviceSummaryResponse  `json:"service,omitempty"`
	ServiceProvider *providerSummaryResponse `json:"serviceProvider,omitempty"`
}

func listAppointmentsHandler(svc *Service, petsSvc *pets.Service, catalogSvc *catalog.Service, providersSvc *providers.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		items, err := svc.ListByUser(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to fetch appointments")
			return
		}

		out := make([]appointmentResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAppointmentResponse(r, a, petsSvc, catalogSvc, providersSvc))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func createAppointmentHandler(svc *Service, petsSvc *pets.Service, catalogSvc *catalog.Service, providersSvc *providers.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req createAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		if req.ServiceID == "" || req.PetID == "" || req.ServiceProviderID == "" || req.Date == "" {
			writeError(w, http.StatusBadRequest, "missing required fields")
			return
		}

		startAt, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be RFC3339")
			return
		}

		a, err := svc.Book(r.Context(), claims.UserID, BookInput{
			ServiceID:  req.ServiceID,
			PetID:      req.PetID,
			ProviderID: req.ServiceProviderID,
			StartAt:    startAt,
			Notes:      req.Notes,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrSlotTaken):
				writeError(w, http.StatusConflict, "time slot is not available")
			case errors.Is(err, ErrNotFound):
				writeError(w, http.StatusNotFound, "service or pet not found")
			case errors.Is(err, ErrInvalidInput):
				writeError(w, http.StatusBadRequest, "invalid appointment payload")
			default:
				writeError(w, http.StatusInternalServerError, "failed to create appointment")
			}
			return
		}

		writeJSON(w, http.StatusCreated, toAppointmentResponse(r, a, petsSvc, catalogSvc, providersSvc))
	}
}

func updateStatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req updateStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		status, ok := ParseStatus(strings.TrimSpace(req.Status))
		if !ok {
			writeError(w, http.StatusBadRequest, "status must be scheduled, completed or cancelled")
			return
		}

		a, err := svc.UpdateStatus(r.Context(), claims.UserID, chi.URLParam(r, "appointmentID"), status)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidTransition):
				writeError(w, http.StatusConflict, "invalid status transition")
			case errors.Is(err, ErrNotFound):
				writeError(w, http.StatusNotFound, "appointment not found")
			case errors.Is(err, ErrInvalidInput):
				writeError(w, http.StatusBadRequest, "invalid appointment id")
			default:
				writeError(w, http.StatusInternalServerError, "failed to update appointment")
			}
			return
		}

		writeJSON(w, http.StatusOK, appointmentResponse{
			ID:                a.ID,
			ServiceID:         a.ServiceID,
			PetID:             a.PetID,
			ServiceProviderID: a.ProviderID,
			Date:              a.StartAt,
			EndAt:             a.EndAt,
			Status:            string(a.Status),
			Notes:             a.Notes,
			CreatedAt:         a.CreatedAt,
		})
	}
}

// toAppointmentResponse compone los summaries de pet/servicio/provider.
// Tolera referencias que ya no resuelven: el turno sale igual, sin summary.
func toAppointmentResponse(r *http.Request, a Appointment, petsSvc *pets.Service, catalogSvc *catalog.Service, providersSvc *providers.Service) appointmentResponse {
	resp := appointmentResponse{
		ID:                a.ID,
		ServiceID:         a.ServiceID,
		PetID:             a.PetID,
		ServiceProviderID: a.ProviderID,
		Date:              a.StartAt,
		EndAt:             a.EndAt,
		Status:            string(a.Status),
		Notes:             a.Notes,
		CreatedAt:         a.CreatedAt,
	}

	if p, err := petsSvc.GetByID(r.Context(), a.PetID); err == nil {
		resp.Pet = &petSummaryResponse{ID: p.ID, Name: p.Name, Type: p.Type}
	}
	if cs, err := catalogSvc.GetService(r.Context(), a.ServiceID); err == nil {
		resp.Service = &serviceSummaryResponse{
			ID:       cs.ID,
			Name:     cs.Name,
			Price:    cs.Price.InexactFloat64(),
			Duration: cs.DurationMin,
		}
	}
	if pr, err := providersSvc.GetByID(r.Context(), a.ProviderID); err == nil {
		resp.ServiceProvider = &providerSummaryResponse{ID: pr.ID, Name: pr.Name, Type: pr.Type}
	}

	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
