package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pet-care-marketplace/internal/router"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(router.NewRouter(router.Options{
		AuthVerifier: nil, // modo dev: X-Debug-User-ID
		SeedDemoData: true,
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_CartFlow(t *testing.T) {
	ts := newTestServer(t)
	userID := "user-1"

	// 1) Carrito arranca vacío
	{
		st, body := doReq(t, ts.URL, "GET", "/cart", userID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get empty cart, got %d body=%s", st, string(body))
		}
		var resp cartBody
		mustUnmarshal(t, body, &resp)
		if len(resp.Items) != 0 || resp.Subtotal != 0 {
			t.Fatalf("expected empty cart, got %+v", resp)
		}
		if resp.ID == "" {
			t.Fatalf("expected cart id, body=%s", string(body))
		}
	}

	// 2) Agregar el mismo producto dos veces => una sola línea acumulada
	{
		st, body := doReq(t, ts.URL, "POST", "/cart", userID, map[string]any{
			"productId": "prod-dog-food",
			"quantity":  2,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 add item, got %d body=%s", st, string(body))
		}

		st, body = doReq(t, ts.URL, "POST", "/cart", userID, map[string]any{
			"productId": "prod-dog-food",
			"quantity":  3,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 add item again, got %d body=%s", st, string(body))
		}
	}

	var itemID string
	{
		st, body := doReq(t, ts.URL, "GET", "/cart", userID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get cart, got %d body=%s", st, string(body))
		}
		var resp cartBody
		mustUnmarshal(t, body, &resp)
		if len(resp.Items) != 1 {
			t.Fatalf("expected 1 line after merging adds, got %d", len(resp.Items))
		}
		if resp.Items[0].Quantity != 5 {
			t.Fatalf("expected quantity 5, got %d", resp.Items[0].Quantity)
		}
		// prod-dog-food cuesta 999.99 => 5 unidades = 4999.95
		if !almostEqual(resp.Subtotal, 4999.95) {
			t.Fatalf("expected subtotal 4999.95, got %v", resp.Subtotal)
		}
		itemID = resp.Items[0].ID
	}

	// 3) PATCH cantidad
	{
		st, body := doReq(t, ts.URL, "PATCH", "/cart/"+itemID, userID, map[string]any{
			"quantity": 1,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 update quantity, got %d body=%s", st, string(body))
		}

		st, body = doReq(t, ts.URL, "GET", "/cart", userID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get cart, got %d", st)
		}
		var resp cartBody
		mustUnmarshal(t, body, &resp)
		if resp.Items[0].Quantity != 1 || !almostEqual(resp.Subtotal, 999.99) {
			t.Fatalf("expected qty 1 subtotal 999.99, got %+v", resp)
		}
	}

	// 4) Otro usuario no puede tocar el ítem ajeno
	{
		st, _ := doReq(t, ts.URL, "PATCH", "/cart/"+itemID, "user-2", map[string]any{
			"quantity": 9,
		})
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 patching another user's item, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "DELETE", "/cart/"+itemID, "user-2", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 deleting another user's item, got %d", st)
		}
	}

	// 5) DELETE del dueño
	{
		st, body := doReq(t, ts.URL, "DELETE", "/cart/"+itemID, userID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 delete item, got %d body=%s", st, string(body))
		}

		st, body = doReq(t, ts.URL, "GET", "/cart", userID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get cart, got %d", st)
		}
		var resp cartBody
		mustUnmarshal(t, body, &resp)
		if len(resp.Items) != 0 {
			t.Fatalf("expected empty cart after delete, got %+v", resp)
		}
	}
}

func TestHTTP_Cart_Validation(t *testing.T) {
	ts := newTestServer(t)

	// producto inexistente => 404
	st, _ := doReq(t, ts.URL, "POST", "/cart", "user-1", map[string]any{
		"productId": "nope",
		"quantity":  1,
	})
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown product, got %d", st)
	}

	// cantidad inválida => 400
	st, _ = doReq(t, ts.URL, "POST", "/cart", "user-1", map[string]any{
		"productId": "prod-dog-food",
		"quantity":  0,
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for quantity 0, got %d", st)
	}
}

func TestHTTP_EndToEnd_AppointmentFlow(t *testing.T) {
	ts := newTestServer(t)
	userID := "user-1"

	petID := createPet(t, ts.URL, userID, map[string]any{
		"name": "Milo",
		"type": "dog",
	})

	slot := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	// 1) Reserva inicial: svc-checkup dura 30 min
	apptID := createAppointment(t, ts.URL, userID, petID, slot)
	{
		st, body := doReq(t, ts.URL, "GET", "/appointments", userID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list appointments, got %d body=%s", st, string(body))
		}
		var resp []appointmentBody
		mustUnmarshal(t, body, &resp)
		if len(resp) != 1 {
			t.Fatalf("expected 1 appointment, got %d", len(resp))
		}
		a := resp[0]
		if a.Status != "scheduled" {
			t.Fatalf("expected scheduled, got %q", a.Status)
		}
		if !a.EndAt.Equal(slot.Add(30 * time.Minute)) {
			t.Fatalf("expected endAt = start + 30m, got %v", a.EndAt)
		}
		if a.Service == nil || a.Service.Duration != 30 {
			t.Fatalf("expected service summary with duration 30, got %+v", a.Service)
		}
		if a.Pet == nil || a.Pet.Name != "Milo" {
			t.Fatalf("expected pet summary, got %+v", a.Pet)
		}
	}

	// 2) Mismo slot => 409, incluso para otro usuario
	{
		st, _ := bookAppointment(t, ts.URL, userID, petID, slot)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 for identical slot, got %d", st)
		}

		otherPet := createPet(t, ts.URL, "user-2", map[string]any{
			"name": "Luna",
			"type": "cat",
		})
		st, _ = bookAppointment(t, ts.URL, "user-2", otherPet, slot.Add(15*time.Minute))
		if st != http.StatusConflict {
			t.Fatalf("expected 409 for overlapping slot, got %d", st)
		}
	}

	// 3) Slot adyacente (arranca justo donde termina el anterior) => ok
	{
		st, body := bookAppointment(t, ts.URL, userID, petID, slot.Add(30*time.Minute))
		if st != http.StatusCreated {
			t.Fatalf("expected 201 for adjacent slot, got %d body=%s", st, string(body))
		}
	}

	// 4) Cancelar libera el slot
	{
		st, body := doReq(t, ts.URL, "PATCH", "/appointments/"+apptID, userID, map[string]any{
			"status": "cancelled",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 cancel, got %d body=%s", st, string(body))
		}

		st, body = bookAppointment(t, ts.URL, userID, petID, slot)
		if st != http.StatusCreated {
			t.Fatalf("expected 201 rebooking freed slot, got %d body=%s", st, string(body))
		}
	}

	// 5) FSM: cancelled no puede pasar a completed; repetir estado es idempotente
	{
		st, _ := doReq(t, ts.URL, "PATCH", "/appointments/"+apptID, userID, map[string]any{
			"status": "completed",
		})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 cancelled->completed, got %d", st)
		}

		st, body := doReq(t, ts.URL, "PATCH", "/appointments/"+apptID, userID, map[string]any{
			"status": "cancelled",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 idempotent cancel, got %d body=%s", st, string(body))
		}

		st, _ = doReq(t, ts.URL, "PATCH", "/appointments/"+apptID, userID, map[string]any{
			"status": "bogus",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for unknown status, got %d", st)
		}
	}
}

func TestHTTP_Appointment_Validation(t *testing.T) {
	ts := newTestServer(t)
	userID := "user-1"

	petID := createPet(t, ts.URL, userID, map[string]any{
		"name": "Milo",
		"type": "dog",
	})
	otherPet := createPet(t, ts.URL, "user-2", map[string]any{
		"name": "Luna",
		"type": "cat",
	})

	slot := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC).Format(time.RFC3339)

	// campos faltantes => 400
	st, _ := doReq(t, ts.URL, "POST", "/appointments", userID, map[string]any{
		"serviceId": "svc-checkup",
		"date":      slot,
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 missing fields, got %d", st)
	}

	// provider inconsistente con el servicio => 400
	st, _ = doReq(t, ts.URL, "POST", "/appointments", userID, map[string]any{
		"serviceId":         "svc-checkup",
		"petId":             petID,
		"serviceProviderId": "prov-walkies",
		"date":              slot,
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 provider mismatch, got %d", st)
	}

	// mascota de otro usuario => 404
	st, _ = doReq(t, ts.URL, "POST", "/appointments", userID, map[string]any{
		"serviceId":         "svc-checkup",
		"petId":             otherPet,
		"serviceProviderId": "prov-happy-paws",
		"date":              slot,
	})
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 for someone else's pet, got %d", st)
	}

	// servicio inexistente => 404
	st, _ = doReq(t, ts.URL, "POST", "/appointments", userID, map[string]any{
		"serviceId":         "svc-nope",
		"petId":             petID,
		"serviceProviderId": "prov-happy-paws",
		"date":              slot,
	})
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown service, got %d", st)
	}
}

func TestHTTP_Catalog(t *testing.T) {
	ts := newTestServer(t)

	// listado completo del seed
	{
		st, body := doReq(t, ts.URL, "GET", "/products", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list products, got %d", st)
		}
		var resp []productBody
		mustUnmarshal(t, body, &resp)
		if len(resp) != 5 {
			t.Fatalf("expected 5 seeded products, got %d", len(resp))
		}
		// default newest: el último cargado primero
		if resp[0].ID != "prod-vitamins" {
			t.Fatalf("expected newest first, got %q", resp[0].ID)
		}
	}

	// search es case-insensitive sobre nombre y descripción
	{
		st, body := doReq(t, ts.URL, "GET", "/products?search=DOG", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 search, got %d", st)
		}
		var resp []productBody
		mustUnmarshal(t, body, &resp)
		found := false
		for _, p := range resp {
			if p.ID == "prod-dog-food" {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected prod-dog-food in search results, got %+v", resp)
		}
	}

	// sort por precio ascendente
	{
		st, body := doReq(t, ts.URL, "GET", "/products?sort=price-low", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 sorted list, got %d", st)
		}
		var resp []productBody
		mustUnmarshal(t, body, &resp)
		for i := 1; i < len(resp); i++ {
			if resp[i].Price < resp[i-1].Price {
				t.Fatalf("expected ascending prices, got %+v", resp)
			}
		}
	}

	// filtro por categoría
	{
		st, body := doReq(t, ts.URL, "GET", "/products?category=cat-food", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 filtered list, got %d", st)
		}
		var resp []productBody
		mustUnmarshal(t, body, &resp)
		if len(resp) != 2 {
			t.Fatalf("expected 2 food products, got %d", len(resp))
		}
	}

	// detalle y 404
	{
		st, body := doReq(t, ts.URL, "GET", "/products/prod-dog-food", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 product detail, got %d", st)
		}
		var resp productBody
		mustUnmarshal(t, body, &resp)
		if resp.Category.Name != "Pet Food" {
			t.Fatalf("expected category embedded, got %+v", resp)
		}

		st, _ = doReq(t, ts.URL, "GET", "/products/nope", "", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 unknown product, got %d", st)
		}
	}

	// servicios con filtro por tipo; type=all es equivalente a sin filtro
	{
		st, body := doReq(t, ts.URL, "GET", "/services?type=veterinary", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list services, got %d", st)
		}
		var resp []serviceBody
		mustUnmarshal(t, body, &resp)
		if len(resp) != 2 {
			t.Fatalf("expected 2 veterinary services, got %d", len(resp))
		}

		st, body = doReq(t, ts.URL, "GET", "/services?type=all", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list all services, got %d", st)
		}
		mustUnmarshal(t, body, &resp)
		if len(resp) != 4 {
			t.Fatalf("expected 4 seeded services, got %d", len(resp))
		}
	}
}

func TestHTTP_Providers_Ratings(t *testing.T) {
	ts := newTestServer(t)

	st, body := doReq(t, ts.URL, "GET", "/service-providers", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 list providers, got %d body=%s", st, string(body))
	}

	var resp []providerBody
	mustUnmarshal(t, body, &resp)
	if len(resp) != 3 {
		t.Fatalf("expected 3 seeded providers, got %d", len(resp))
	}

	byID := map[string]providerBody{}
	for _, p := range resp {
		byID[p.ID] = p
	}

	happy := byID["prov-happy-paws"]
	if happy.Rating == nil || !almostEqual(*happy.Rating, 4.0) {
		t.Fatalf("expected rating 4.0 for happy paws, got %+v", happy.Rating)
	}
	if len(happy.Services) != 2 {
		t.Fatalf("expected 2 services for happy paws, got %d", len(happy.Services))
	}

	// sin reviews => rating null, no cero
	walkies := byID["prov-walkies"]
	if walkies.Rating != nil {
		t.Fatalf("expected null rating for walkies, got %v", *walkies.Rating)
	}

	// filtro por tipo
	st, body = doReq(t, ts.URL, "GET", "/service-providers?type=veterinary", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 filtered providers, got %d", st)
	}
	mustUnmarshal(t, body, &resp)
	if len(resp) != 1 || resp[0].ID != "prov-happy-paws" {
		t.Fatalf("expected only happy paws, got %+v", resp)
	}
}

func TestHTTP_Pets_OwnershipAndAuth(t *testing.T) {
	ts := newTestServer(t)

	// sin identidad => 401 en superficies privadas
	for _, route := range []string{"/cart", "/pets", "/appointments"} {
		st, _ := doReq(t, ts.URL, "GET", route, "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 for %s without identity, got %d", route, st)
		}
	}

	petID := createPet(t, ts.URL, "user-1", map[string]any{
		"name":        "Milo",
		"type":        "dog",
		"breed":       "mixed",
		"dateOfBirth": "2020-05-10",
		"weight":      12.5,
	})

	// el listado es por dueño
	{
		st, body := doReq(t, ts.URL, "GET", "/pets", "user-1", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list pets, got %d", st)
		}
		var resp []petBody
		mustUnmarshal(t, body, &resp)
		if len(resp) != 1 || resp[0].Name != "Milo" {
			t.Fatalf("expected Milo, got %+v", resp)
		}
		if resp[0].Weight == nil || !almostEqual(*resp[0].Weight, 12.5) {
			t.Fatalf("expected weight 12.5, got %+v", resp[0].Weight)
		}

		st, body = doReq(t, ts.URL, "GET", "/pets", "user-2", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list pets other user, got %d", st)
		}
		mustUnmarshal(t, body, &resp)
		if len(resp) != 0 {
			t.Fatalf("expected no pets for user-2, got %+v", resp)
		}
	}

	// borrar mascota ajena => 404; propia => ok
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/pets/"+petID, "user-2", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 deleting someone else's pet, got %d", st)
		}

		st, body := doReq(t, ts.URL, "DELETE", "/pets/"+petID, "user-1", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 delete own pet, got %d body=%s", st, string(body))
		}

		st, _ = doReq(t, ts.URL, "DELETE", "/pets/"+petID, "user-1", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 deleting twice, got %d", st)
		}
	}

	// validación mínima
	{
		st, _ := doReq(t, ts.URL, "POST", "/pets", "user-1", map[string]any{
			"name": "NoType",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 pet without type, got %d", st)
		}
	}
}

// ---- bodies ----

type cartItemBody struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

type cartBody struct {
	ID       string         `json:"id"`
	Items    []cartItemBody `json:"items"`
	Subtotal float64        `json:"subtotal"`
}

type productBody struct {
	ID       string  `json:"id"`
	Price    float64 `json:"price"`
	Category struct {
		Name string `json:"name"`
	} `json:"category"`
}

type serviceBody struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

type providerBody struct {
	ID       string   `json:"id"`
	Rating   *float64 `json:"rating"`
	Services []struct {
		ID string `json:"id"`
	} `json:"services"`
}

type petBody struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Weight *float64 `json:"weight"`
}

type appointmentBody struct {
	ID      string    `json:"id"`
	Status  string    `json:"status"`
	Date    time.Time `json:"date"`
	EndAt   time.Time `json:"endAt"`
	Pet     *struct {
		Name string `json:"name"`
	} `json:"pet"`
	Service *struct {
		Duration int `json:"duration"`
	} `json:"service"`
}

// ---- helpers ----

func createPet(t *testing.T, baseURL, userID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/pets", userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create pet, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create pet: missing id body=%s", string(body))
	}
	return resp.ID
}

func bookAppointment(t *testing.T, baseURL, userID, petID string, startAt time.Time) (int, []byte) {
	t.Helper()
	return doReq(t, baseURL, "POST", "/appointments", userID, map[string]any{
		"serviceId":         "svc-checkup",
		"petId":             petID,
		"serviceProviderId": "prov-happy-paws",
		"date":              startAt.Format(time.RFC3339),
	})
}

func createAppointment(t *testing.T, baseURL, userID, petID string, startAt time.Time) string {
	t.Helper()

	st, body := bookAppointment(t, baseURL, userID, petID, startAt)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create appointment, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create appointment: missing id body=%s", string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path, userID string, payload map[string]any) (int, []byte) {
	t.Helper()

	var reqBody io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, reqBody)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("X-Debug-User-ID", userID)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, body
}

func mustUnmarshal(t *testing.T, body []byte, out any) {
	t.Helper()
	if err := json.Unmarshal(body, out); err != nil {
		t.Fatalf("unmarshal %s: %v", string(body), err)
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}
