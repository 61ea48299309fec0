package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"

	adapthttp "github.com/lumeo-app/board-service/internal/adapters/http"
	"github.com/lumeo-app/board-service/internal/adapters/http/handlers"
	"github.com/lumeo-app/board-service/internal/domain/board"
	"github.com/lumeo-app/board-service/internal/ports"
	"github.com/lumeo-app/board-service/mocks"
)

func newTestRouter(t *testing.T) (http.Handler, *mocks.MockBoardService) {
	t.Helper()
	svc := mocks.NewMockBoardService(t)
	registry := mocks.NewMockHealthRegistry(t)

	bh := handlers.NewBoardHandler(svc)
	hh := handlers.NewHealthHandler(registry)

	router := adapthttp.NewRouter(bh, hh)
	return router, svc
}

func TestRouter_AllRoutesRegistered(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	expectedRoutes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/health/live"},
		{http.MethodGet, "/health/ready"},
		{http.MethodGet, "/api/v1/boards"},
		{http.MethodPost, "/api/v1/boards"},
		{http.MethodPost, "/api/v1/boards/kanban"},
		{http.MethodGet, "/api/v1/boards/{boardId}"},
		{http.MethodPatch, "/api/v1/boards/{boardId}"},
		{http.MethodDelete, "/api/v1/boards/{boardId}"},
		{http.MethodPost, "/api/v1/boards/{boardId}/columns"},
		{http.MethodPost, "/api/v1/boards/{boardId}/columns/{columnId}/cards"},
		{http.MethodPatch, "/api/v1/boards/{boardId}/cards/{cardId}"},
		{http.MethodPost, "/api/v1/boards/{boardId}/cards/{cardId}/move"},
	}

	chiRouter, ok := router.(*chi.Mux)
	if !ok {
		t.Fatal("router is not *chi.Mux")
	}

	registered := make(map[string]bool)
	err := chi.Walk(chiRouter, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		registered[method+" "+route] = true
		return nil
	})
	if err != nil {
		t.Fatalf("chi.Walk error: %v", err)
	}

	for _, expected := range expectedRoutes {
		key := expected.method + " " + expected.path
		if !registered[key] {
			t.Errorf("route %s not registered", key)
		}
	}
}

func TestRouter_MiddlewareApplied(t *testing.T) {
	t.Parallel()

	svc := mocks.NewMockBoardService(t)
	registry := mocks.NewMockHealthRegistry(t)

	bh := handlers.NewBoardHandler(svc)
	hh := handlers.NewHealthHandler(registry)

	called := false
	testMW := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			next.ServeHTTP(w, r)
		})
	}

	router := adapthttp.NewRouter(bh, hh, testMW)

	registry.On("CheckAll", mock.Anything).Return(map[string]error{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	router.ServeHTTP(rec, req)

	if !called {
		t.Error("middleware was not called")
	}
}

func TestRouter_IntegrationListBoards(t *testing.T) {
	t.Parallel()

	router, svc := newTestRouter(t)

	svc.On("GetUserBoards", mock.Anything, mock.Anything).
		Return(ports.NewPage([]*board.Board{}, ports.PageRequest{Page: 1, Limit: 20}, 0), nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/boards", nil)
	req.Header.Set(handlers.UserIDHeader, "user-123")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRouter_NotFoundReturns404(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/nonexistent", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/boards", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}
