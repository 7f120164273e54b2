package cart

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-care-marketplace/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/cart", func(cr chi.Router) {
		cr.Get("/", getCartHandler(svc))
		cr.Post("/", addItemHandler(svc))
		cr.Patch("/{itemID}", updateItemHandler(svc))
		cr.Delete("/{itemID}", removeItemHandler(svc))
	})
}

type addItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

type itemResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type lineResponse struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image,omitempty"`
	Category  string  `json:"category,omitempty"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"lineTotal"`
}

type cartResponse struct {
	ID       string         `json:"id"`
	UserID   string         `json:"userId"`
	Items    []lineResponse `json:"items"`
	Subtotal float64        `json:"subtotal"`
}

func getCartHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		view, err := svc.Get(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to fetch cart")
			return
		}

		writeJSON(w, http.StatusOK, toCartResponse(view))
	}
}

func addItemHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req addItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		it, err := svc.AddItem(r.Context(), claims.UserID, req.ProductID, req.Quantity)
		if err != nil {
			switch {
			case errors.Is(err, ErrProductNotFound):
				writeError(w, http.StatusNotFound, "product not found")
			case errors.Is(err, ErrInvalidInput):
				writeError(w, http.StatusBadRequest, "productId and quantity >= 1 are required")
			default:
				writeError(w, http.StatusInternalServerError, "failed to add item to cart")
			}
			return
		}

		writeJSON(w, http.StatusCreated, toItemResponse(it))
	}
}

func updateItemHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req updateItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		it, err := svc.UpdateQuantity(r.Context(), claims.UserID, chi.URLParam(r, "itemID"), req.Quantity)
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				writeError(w, http.StatusNotFound, "cart item not found")
			case errors.Is(err, ErrInvalidInput):
				writeError(w, http.StatusBadRequest, "quantity must be >= 1")
			default:
				writeError(w, http.StatusInternalServerError, "failed to update cart item")
			}
			return
		}

		writeJSON(w, http.StatusOK, toItemResponse(it))
	}
}

func removeItemHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		err := svc.RemoveItem(r.Context(), claims.UserID, chi.URLParam(r, "itemID"))
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				writeError(w, http.StatusNotFound, "cart item not found")
			case errors.Is(err, ErrInvalidInput):
				writeError(w, http.StatusBadRequest, "invalid item id")
			default:
				writeError(w, http.StatusInternalServerError, "failed to remove cart item")
			}
			return
		}

		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

func toItemResponse(it Item) itemResponse {
	return itemResponse{
		ID:        it.ID,
		ProductID: it.ProductID,
		Quantity:  it.Quantity,
		CreatedAt: it.CreatedAt,
		UpdatedAt: it.UpdatedAt,
	}
}

func toCartResponse(v View) cartResponse {
	items := make([]lineResponse, 0, len(v.Lines))
	for _, l := range v.Lines {
		items = append(items, lineResponse{
			ID:        l.ID,
			ProductID: l.ProductID,
			Name:      l.ProductName,
			Price:     l.ProductPrice.InexactFloat64(),
			Image:     l.Image,
			Category:  l.CategoryName,
			Quantity:  l.Quantity,
			LineTotal: l.LineTotal.InexactFloat64(),
		})
	}
	return cartResponse{
		ID:       v.ID,
		UserID:   v.UserID,
		Items:    items,
		Subtotal: v.Subtotal.InexactFloat64(),
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
