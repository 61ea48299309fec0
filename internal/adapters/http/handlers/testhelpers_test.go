package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/lumeo-app/board-service/internal/adapters/http/handlers"
	"github.com/lumeo-app/board-service/internal/domain/board"
)

const testUserID = "user-123"

func withChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func withUser(r *http.Request) *http.Request {
	r.Header.Set(handlers.UserIDHeader, testUserID)
	return r
}

func validBoard(t *testing.T) *board.Board {
	t.Helper()
	title, err := board.NewTitle("Groceries")
	if err != nil {
		t.Fatalf("NewTitle() error = %v", err)
	}
	milk, _ := board.NewCardTitle("Milk")
	eggs, _ := board.NewCardTitle("Eggs")
	b := board.NewTodoBoard(testUserID, title, []board.CardTitle{milk, eggs})
	b.ClearEvents()
	return b
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		t.Fatalf("failed to encode JSON body: %v", err)
	}
	return buf
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var result T
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode JSON response: %v", err)
	}
	return result
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Errorf("status = %d, want %d; body = %s", rec.Code, want, rec.Body.String())
	}
}
