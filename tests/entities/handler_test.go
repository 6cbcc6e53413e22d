package entities_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/nlowen/catalog/internal/entities"
	"github.com/nlowen/catalog/pkg/pagination"
)

type mockSystem struct {
	listFn   func(ctx context.Context, req entities.ListRequest) (*pagination.PageResponse[entities.Entity], error)
	findFn   func(ctx context.Context, id int64) (*entities.Entity, error)
	createFn func(ctx context.Context, cmd entities.CreateCommand) (*entities.Entity, error)
	updateFn func(ctx context.Context, id int64, cmd entities.UpdateCommand) error
	deleteFn func(ctx context.Context, id int64) error
}

func (m *mockSystem) Handler(maxBodySize int64) *entities.Handler {
	return entities.NewHandler(m, slog.New(slog.NewTextHandler(io.Discard, nil)), pagination.Config{DefaultPageSize: 10}, maxBodySize)
}

func (m *mockSystem) List(ctx context.Context, req entities.ListRequest) (*pagination.PageResponse[entities.Entity], error) {
	return m.listFn(ctx, req)
}

func (m *mockSystem) Find(ctx context.Context, id int64) (*entities.Entity, error) {
	return m.findFn(ctx, id)
}

func (m *mockSystem) Create(ctx context.Context, cmd entities.CreateCommand) (*entities.Entity, error) {
	return m.createFn(ctx, cmd)
}

func (m *mockSystem) Update(ctx context.Context, id int64, cmd entities.UpdateCommand) error {
	return m.updateFn(ctx, id, cmd)
}

func (m *mockSystem) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

func newTestHandler(sys *mockSystem) *entities.Handler {
	return entities.NewHandler(
		sys,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		pagination.Config{DefaultPageSize: 10},
		64*1024,
	)
}

func setupMux(h *entities.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	group := h.Routes()
	for _, route := range group.Routes {
		pattern := route.Method + " " + group.Prefix + route.Pattern
		mux.HandleFunc(pattern, route.Handler)
	}
	return mux
}

func sampleEntity() entities.Entity {
	return entities.Entity{
		EntityID:    42,
		Name:        "gadget",
		Description: "a useful gadget",
		EntityType:  entities.EntityTypeProduct,
		CreatedAt:   time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2026, 2, 11, 0, 0, 0, 0, time.UTC),
	}
}

func TestHandlerList(t *testing.T) {
	entity := sampleEntity()
	sys := &mockSystem{
		listFn: func(_ context.Context, req entities.ListRequest) (*pagination.PageResponse[entities.Entity], error) {
			result := pagination.NewPageResponse([]entities.Entity{entity}, 1, req.PageNo, req.PageSize)
			return &result, nil
		},
	}

	mux := setupMux(newTestHandler(sys))

	t.Run("returns paginated envelope", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var result pagination.PageResponse[entities.Entity]
		if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
			t.Fatalf("decode: %v", err)
		}

		if result.PageNumber != 0 {
			t.Errorf("pageNumber = %d, want 0", result.PageNumber)
		}
		if result.PageSize != 10 {
			t.Errorf("pageSize = %d, want 10", result.PageSize)
		}
		if result.TotalPages != 1 {
			t.Errorf("totalPages = %d, want 1", result.TotalPages)
		}
		if len(result.Data) != 1 {
			t.Fatalf("data length = %d, want 1", len(result.Data))
		}
		if result.Data[0].EntityID != entity.EntityID {
			t.Errorf("entityId = %d, want %d", result.Data[0].EntityID, entity.EntityID)
		}
	})

	t.Run("passes query parameters", func(t *testing.T) {
		var captured entities.ListRequest
		sys.listFn = func(_ context.Context, req entities.ListRequest) (*pagination.PageResponse[entities.Entity], error) {
			captured = req
			result := pagination.NewPageResponse([]entities.Entity{}, 0, req.PageNo, req.PageSize)
			return &result, nil
		}

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/?pageNo=3&pageSize=5&name=gad&sortBy=updatedAt", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if captured.PageNo != 3 {
			t.Errorf("pageNo = %d, want 3", captured.PageNo)
		}
		if captured.PageSize != 5 {
			t.Errorf("pageSize = %d, want 5", captured.PageSize)
		}
		if captured.Name != "gad" {
			t.Errorf("name = %q, want gad", captured.Name)
		}
		if captured.SortBy != "updatedAt" {
			t.Errorf("sortBy = %q, want updatedAt", captured.SortBy)
		}
	})

	t.Run("invalid entity type filter returns 400", func(t *testing.T) {
		sys.listFn = func(_ context.Context, req entities.ListRequest) (*pagination.PageResponse[entities.Entity], error) {
			return nil, entities.ErrInvalidEntityType
		}

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/?entityType=GADGET", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestHandlerFind(t *testing.T) {
	entity := sampleEntity()

	t.Run("returns entity by id", func(t *testing.T) {
		sys := &mockSystem{
			findFn: func(_ context.Context, id int64) (*entities.Entity, error) {
				if id != entity.EntityID {
					return nil, entities.ErrNotFound
				}
				return &entity, nil
			},
		}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/42", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var got entities.Entity
		if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.EntityID != entity.EntityID {
			t.Errorf("entityId = %d, want %d", got.EntityID, entity.EntityID)
		}
	})

	t.Run("non-numeric id returns 400", func(t *testing.T) {
		sys := &mockSystem{}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/not-a-number", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("not found returns 404", func(t *testing.T) {
		sys := &mockSystem{
			findFn: func(_ context.Context, _ int64) (*entities.Entity, error) {
				return nil, entities.ErrNotFound
			},
		}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/999", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestHandlerCreate(t *testing.T) {
	entity := sampleEntity()

	t.Run("creates entity from json body", func(t *testing.T) {
		var capturedCmd entities.CreateCommand
		sys := &mockSystem{
			createFn: func(_ context.Context, cmd entities.CreateCommand) (*entities.Entity, error) {
				capturedCmd = cmd
				return &entity, nil
			},
		}
		mux := setupMux(newTestHandler(sys))

		body, _ := json.Marshal(entities.CreateCommand{
			Name:        "gadget",
			Description: "a useful gadget",
			EntityType:  "PRODUCT",
		})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201", rec.Code)
		}
		if capturedCmd.Name != "gadget" {
			t.Errorf("name = %q, want gadget", capturedCmd.Name)
		}
		if capturedCmd.EntityType != "PRODUCT" {
			t.Errorf("entityType = %q, want PRODUCT", capturedCmd.EntityType)
		}

		var got entities.Entity
		if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.EntityID != entity.EntityID {
			t.Errorf("entityId = %d, want %d", got.EntityID, entity.EntityID)
		}
	})

	t.Run("invalid json returns 400", func(t *testing.T) {
		sys := &mockSystem{}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/", bytes.NewReader([]byte("not json")))
		req.Header.Set("Content-Type", "application/json")
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("validation failure returns 400", func(t *testing.T) {
		sys := &mockSystem{
			createFn: func(_ context.Context, _ entities.CreateCommand) (*entities.Entity, error) {
				return nil, entities.ErrValidation
			},
		}
		mux := setupMux(newTestHandler(sys))

		body, _ := json.Marshal(entities.CreateCommand{Description: "missing name", EntityType: "ITEM"})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("duplicate returns 409", func(t *testing.T) {
		sys := &mockSystem{
			createFn: func(_ context.Context, _ entities.CreateCommand) (*entities.Entity, error) {
				return nil, entities.ErrDuplicate
			},
		}
		mux := setupMux(newTestHandler(sys))

		body, _ := json.Marshal(entities.CreateCommand{
			Name:        "gadget",
			Description: "a useful gadget",
			EntityType:  "PRODUCT",
		})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusConflict {
			t.Errorf("status = %d, want 409", rec.Code)
		}
	})
}

func TestHandlerUpdate(t *testing.T) {
	t.Run("updates entity and confirms in plain text", func(t *testing.T) {
		var capturedID int64
		var capturedCmd entities.UpdateCommand
		sys := &mockSystem{
			updateFn: func(_ context.Context, id int64, cmd entities.UpdateCommand) error {
				capturedID = id
				capturedCmd = cmd
				return nil
			},
		}
		mux := setupMux(newTestHandler(sys))

		body, _ := json.Marshal(entities.UpdateCommand{
			Name:        "widget",
			Description: "renamed",
			EntityType:  "ITEM",
		})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("PUT", "/42", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if capturedID != 42 {
			t.Errorf("id = %d, want 42", capturedID)
		}
		if capturedCmd.Name != "widget" {
			t.Errorf("name = %q, want widget", capturedCmd.Name)
		}

		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
			t.Errorf("content type = %q, want text/plain", ct)
		}
		if got := rec.Body.String(); got != "Entity updated successfully" {
			t.Errorf("body = %q, want update confirmation", got)
		}
	})

	t.Run("non-numeric id returns 400", func(t *testing.T) {
		sys := &mockSystem{}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("PUT", "/not-a-number", bytes.NewReader([]byte("{}")))
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("invalid json returns 400", func(t *testing.T) {
		sys := &mockSystem{}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("PUT", "/42", bytes.NewReader([]byte("not json")))
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("not found returns 404", func(t *testing.T) {
		sys := &mockSystem{
			updateFn: func(_ context.Context, _ int64, _ entities.UpdateCommand) error {
				return entities.ErrNotFound
			},
		}
		mux := setupMux(newTestHandler(sys))

		body, _ := json.Marshal(entities.UpdateCommand{
			Name:        "widget",
			Description: "renamed",
			EntityType:  "ITEM",
		})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("PUT", "/999", bytes.NewReader(body))
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestHandlerDelete(t *testing.T) {
	t.Run("deletes entity and confirms in plain text", func(t *testing.T) {
		var capturedID int64
		sys := &mockSystem{
			deleteFn: func(_ context.Context, id int64) error {
				capturedID = id
				return nil
			},
		}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("DELETE", "/42", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if capturedID != 42 {
			t.Errorf("id = %d, want 42", capturedID)
		}
		if got := rec.Body.String(); got != "Entity deleted successfully" {
			t.Errorf("body = %q, want delete confirmation", got)
		}
	})

	t.Run("non-numeric id returns 400", func(t *testing.T) {
		sys := &mockSystem{}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("DELETE", "/not-a-number", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("never created returns 404", func(t *testing.T) {
		sys := &mockSystem{
			deleteFn: func(_ context.Context, _ int64) error {
				return entities.ErrNotFound
			},
		}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("DELETE", "/999", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("already deleted returns 404", func(t *testing.T) {
		deleted := false
		sys := &mockSystem{
			deleteFn: func(_ context.Context, _ int64) error {
				if deleted {
					return entities.ErrNotFound
				}
				deleted = true
				return nil
			},
		}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("DELETE", "/42", nil)
		mux.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("first delete status = %d, want 200", rec.Code)
		}

		rec = httptest.NewRecorder()
		req = httptest.NewRequest("DELETE", "/42", nil)
		mux.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("second delete status = %d, want 404", rec.Code)
		}
	})
}

func TestHandlerRoutes(t *testing.T) {
	sys := &mockSystem{}
	h := newTestHandler(sys)
	group := h.Routes()

	if group.Prefix != "" {
		t.Errorf("prefix = %q, want empty", group.Prefix)
	}

	want := []struct {
		method  string
		pattern string
	}{
		{"GET", "/{$}"},
		{"POST", "/{$}"},
		{"GET", "/{id}"},
		{"PUT", "/{id}"},
		{"DELETE", "/{id}"},
	}

	if len(group.Routes) != len(want) {
		t.Fatalf("route count = %d, want %d", len(group.Routes), len(want))
	}

	for i, w := range want {
		r := group.Routes[i]
		if r.Method != w.method || r.Pattern != w.pattern {
			t.Errorf("route[%d] = %s %s, want %s %s", i, r.Method, r.Pattern, w.method, w.pattern)
		}
	}
}
