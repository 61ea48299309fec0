// Package http provides the inbound HTTP adapter including routing and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lumeo-app/board-service/internal/adapters/http/handlers"
)

// NewRouter creates an HTTP handler with all application routes registered.
// Middleware is applied globally in the order given.
func NewRouter(
	boardHandler *handlers.BoardHandler,
	healthHandler *handlers.HealthHandler,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	// Health endpoints (outside /api/v1 prefix).
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	// API v1 routes.
	r.Route("/api/v1", func(r chi.Router) {
		// Board lifecycle.
		r.Get("/boards", boardHandler.ListBoards)
		r.Post("/boards", boardHandler.CreateBoard)
		r.Post("/boards/kanban", boardHandler.CreateKanbanBoard)
		r.Get("/boards/{boardId}", boardHandler.GetBoard)
		r.Patch("/boards/{boardId}", boardHandler.UpdateBoard)
		r.Delete("/boards/{boardId}", boardHandler.DeleteBoard)

		// Columns and cards inside a board.
		r.Post("/boards/{boardId}/columns", boardHandler.AddColumn)
		r.Post("/boards/{boardId}/columns/{columnId}/cards", boardHandler.AddCard)
		r.Patch("/boards/{boardId}/cards/{cardId}", boardHandler.UpdateCard)
		r.Post("/boards/{boardId}/cards/{cardId}/move", boardHandler.MoveCard)
	})

	return r
}
