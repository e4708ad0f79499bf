package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"agrihub/internal/domain"
)

func TestHTTPRemoteRoundTrip(t *testing.T) {
	productID := "p1"
	rows := []domain.CartItem{}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/cart", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(map[string]any{"items": rows})
		case http.MethodDelete:
			rows = nil
			w.WriteHeader(http.StatusNoContent)
		}
	})
	mux.HandleFunc("/api/cart/items", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ProductID *string             `json:"productId"`
			Quantity  int                 `json:"quantity"`
			Snapshot  domain.LineSnapshot `json:"snapshot"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		rows = append(rows, domain.CartItem{ID: "row-1", ProductID: body.ProductID, Snapshot: body.Snapshot, Quantity: body.Quantity})
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"itemId": "row-1", "items": rows})
	})
	mux.HandleFunc("/api/cart/items/row-1", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			rows = nil
		}
		w.WriteHeader(http.StatusNoContent)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	remote := NewHTTPRemote(srv.URL, "tok")
	ctx := context.Background()

	id, err := remote.Insert(ctx, domain.CartItem{
		ProductID: &productID,
		Snapshot:  domain.LineSnapshot{Title: "Tomatoes", PriceCents: 350},
		Quantity:  1,
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if id != "row-1" {
		t.Fatalf("expected server row id, got %q", id)
	}

	items, err := remote.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].Snapshot.Title != "Tomatoes" {
		t.Fatalf("unexpected items: %+v", items)
	}

	if err := remote.Delete(ctx, "u1", "row-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := remote.DeleteAllByUser(ctx, "u1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
}

// A server without the itemId field forces the client to find its row in the
// returned cart. A row another session appended in the meantime must not be
// mistaken for it.
func TestHTTPRemoteInsertMatchesOwnRow(t *testing.T) {
	otherProduct := "p9"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"items": []domain.CartItem{
			{ID: "row-1", Snapshot: domain.LineSnapshot{Title: "Honey", PriceCents: 500}},
			{ID: "row-2", ProductID: &otherProduct, Snapshot: domain.LineSnapshot{Title: "Apples", PriceCents: 120}},
		}})
	}))
	defer srv.Close()

	remote := NewHTTPRemote(srv.URL, "tok")
	id, err := remote.Insert(context.Background(), domain.CartItem{
		Snapshot: domain.LineSnapshot{Title: "Honey", PriceCents: 500},
		Quantity: 1,
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if id != "row-1" {
		t.Fatalf("expected snapshot match to pick row-1, got %q", id)
	}

	// A cart with no matching row is an error, not a guess.
	if _, err := remote.Insert(context.Background(), domain.CartItem{
		Snapshot: domain.LineSnapshot{Title: "Plums", PriceCents: 80},
		Quantity: 1,
	}); err == nil {
		t.Fatalf("expected error when the inserted row cannot be found")
	}
}

func TestHTTPRemoteUnauthorizedSurfacesError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	remote := NewHTTPRemote(srv.URL, "expired")
	if _, err := remote.ListByUser(context.Background(), "u1"); err == nil {
		t.Fatalf("expected error for 401 response")
	}
}
