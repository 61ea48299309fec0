package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lumeo-app/board-service/internal/adapters/http/dto"
	"github.com/lumeo-app/board-service/internal/ports"
)

// BoardHandler handles HTTP requests for board aggregate operations.
type BoardHandler struct {
	service ports.BoardService
}

// NewBoardHandler creates a new BoardHandler with the given service port.
func NewBoardHandler(service ports.BoardService) *BoardHandler {
	return &BoardHandler{service: service}
}

// CreateBoard handles POST /api/v1/boards.
func (h *BoardHandler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.CreateBoardRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	b, err := h.service.CreateBoard(r.Context(), ports.CreateBoardInput{
		UserID: userID,
		Title:  req.Title,
		Type:   req.Type,
		Items:  req.Items,
	})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToBoardResponse(b))
}

// CreateKanbanBoard handles POST /api/v1/boards/kanban.
func (h *BoardHandler) CreateKanbanBoard(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.CreateKanbanBoardRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	b, err := h.service.CreateKanbanBoard(r.Context(), ports.CreateKanbanBoardInput{
		UserID:      userID,
		Title:       req.Title,
		Columns:     req.Columns,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		Tags:        req.Tags,
		Link:        req.Link,
	})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToBoardResponse(b))
}

// ListBoards handles GET /api/v1/boards.
func (h *BoardHandler) ListBoards(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	q := r.URL.Query()
	page, err := h.service.GetUserBoards(r.Context(),
		dto.ToListBoardsInput(userID, q.Get("page"), q.Get("limit"), q.Get("type")))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToBoardListResponse(page))
}

// GetBoard handles GET /api/v1/boards/{boardId}.
func (h *BoardHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	b, err := h.service.GetBoard(r.Context(), chi.URLParam(r, "boardId"), userID)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToBoardResponse(b))
}

// UpdateBoard handles PATCH /api/v1/boards/{boardId}.
func (h *BoardHandler) UpdateBoard(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.UpdateBoardRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	addCards := make([]ports.NewCardInput, len(req.AddCards))
	for i, add := range req.AddCards {
		addCards[i] = ports.NewCardInput{Title: add.Title}
	}

	b, err := h.service.UpdateBoard(r.Context(), ports.UpdateBoardInput{
		BoardID:       chi.URLParam(r, "boardId"),
		UserID:        userID,
		Title:         req.Title,
		ToggleCardIDs: req.ToggleCardIDs,
		RemoveCardIDs: req.RemoveCardIDs,
		AddCards:      addCards,
	})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToBoardResponse(b))
}

// DeleteBoard handles DELETE /api/v1/boards/{boardId}.
func (h *BoardHandler) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	id, err := h.service.DeleteBoard(r.Context(), chi.URLParam(r, "boardId"), userID)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.DeleteBoardResponse{ID: id})
}

// AddColumn handles POST /api/v1/boards/{boardId}/columns.
func (h *BoardHandler) AddColumn(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.AddColumnRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	b, err := h.service.AddColumn(r.Context(), ports.AddColumnInput{
		BoardID: chi.URLParam(r, "boardId"),
		UserID:  userID,
		Title:   req.Title,
	})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToBoardResponse(b))
}

// AddCard handles POST /api/v1/boards/{boardId}/columns/{columnId}/cards.
func (h *BoardHandler) AddCard(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.AddCardRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	b, err := h.service.AddCard(r.Context(), ports.AddCardInput{
		BoardID:     chi.URLParam(r, "boardId"),
		ColumnID:    chi.URLParam(r, "columnId"),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Progress:    req.Progress,
		DueDate:     req.DueDate,
	})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToBoardResponse(b))
}

// UpdateCard handles PATCH /api/v1/boards/{boardId}/cards/{cardId}.
func (h *BoardHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.UpdateCardRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	b, err := h.service.UpdateCard(r.Context(), ports.UpdateCardInput{
		BoardID:     chi.URLParam(r, "boardId"),
		CardID:      chi.URLParam(r, "cardId"),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		Progress:    req.Progress,
		Priority:    req.Priority,
		Tags:        req.Tags,
		Link:        req.Link,
		DueDate:     req.DueDate,
	})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToBoardResponse(b))
}

// MoveCard handles POST /api/v1/boards/{boardId}/cards/{cardId}/move.
func (h *BoardHandler) MoveCard(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.MoveCardRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	b, err := h.service.MoveCard(r.Context(), ports.MoveCardInput{
		BoardID:     chi.URLParam(r, "boardId"),
		CardID:      chi.URLParam(r, "cardId"),
		UserID:      userID,
		ToColumnID:  req.ToColumnID,
		NewPosition: req.NewPosition,
	})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToBoardResponse(b))
}
