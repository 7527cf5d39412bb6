package handler

import (
	"context"
	"net/http"

	"kanboard/internal/model"
	"kanboard/internal/service"

	"github.com/gin-gonic/gin"
)

// ListService is what the list routes need from the service layer.
type ListService interface {
	GetByBoardID(ctx context.Context, boardID string) ([]model.List, error)
	GetByID(ctx context.Context, id string) (*model.List, error)
	Create(ctx context.Context, in service.CreateListInput) (*model.List, error)
	Update(ctx context.Context, id string, in service.UpdateListInput) (*model.List, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, boardID string, listIDs []string) error
}

type ListHandler struct {
	lists ListService
}

func NewListHandler(lists ListService) *ListHandler {
	return &ListHandler{lists: lists}
}

type CreateListRequest struct {
	BoardID string `json:"board_id" binding:"required"`
	Title   string `json:"title" binding:"required"`
}

type UpdateListRequest struct {
	Title    *string `json:"title"`
	Position *int    `json:"position"`
}

type ReorderListsRequest struct {
	ListIDs []string `json:"list_ids" binding:"required"`
}

type ListResponse struct {
	ID        string `json:"id"`
	BoardID   string `json:"board_id"`
	Title     string `json:"title"`
	Position  int    `json:"position"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func newListResponse(list *model.List) ListResponse {
	return ListResponse{
		ID:        list.ID,
		BoardID:   list.BoardID,
		Title:     list.Title,
		Position:  list.Position,
		CreatedAt: formatTime(list.CreatedAt),
		UpdatedAt: formatTime(list.UpdatedAt),
	}
}

// GetByBoardID godoc
// @Summary  Lists of a board in position order
// @Tags     Lists
// @Produce  json
// @Param    id path string true "Board ID"
// @Success  200 {array} ListResponse
// @Router   /api/boards/{id}/lists [get]
func (h *ListHandler) GetByBoardID(c *gin.Context) {
	h.writeLists(c, c.Param("id"))
}

// GetAll godoc
// @Summary  Lists of a board in position order
// @Tags     Lists
// @Produce  json
// @Param    board_id query string true "Board ID"
// @Success  200 {array} ListResponse
// @Router   /api/lists [get]
func (h *ListHandler) GetAll(c *gin.Context) {
	boardID := c.Query("board_id")
	if boardID == "" {
		invalidRequest(c, "board_id is required")
		return
	}
	h.writeLists(c, boardID)
}

func (h *ListHandler) writeLists(c *gin.Context, boardID string) {
	lists, err := h.lists.GetByBoardID(c.Request.Context(), boardID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]ListResponse, len(lists))
	for i := range lists {
		response[i] = newListResponse(&lists[i])
	}

	c.JSON(http.StatusOK, response)
}

// GetByID godoc
// @Summary  Get a list
// @Tags     Lists
// @Produce  json
// @Param    id path string true "List ID"
// @Success  200 {object} ListResponse
// @Router   /api/lists/{id} [get]
func (h *ListHandler) GetByID(c *gin.Context) {
	list, err := h.lists.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newListResponse(list))
}

// Create godoc
// @Summary  Append a list to a board
// @Tags     Lists
// @Accept   json
// @Produce  json
// @Param    list body CreateListRequest true "List"
// @Success  201 {object} ListResponse
// @Router   /api/lists [post]
func (h *ListHandler) Create(c *gin.Context) {
	var req CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "Invalid request")
		return
	}

	list, err := h.lists.Create(c.Request.Context(), service.CreateListInput{
		BoardID: req.BoardID,
		Title:   req.Title,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newListResponse(list))
}

// Update godoc
// @Summary  Update a list
// @Tags     Lists
// @Accept   json
// @Produce  json
// @Param    id   path string            true "List ID"
// @Param    list body UpdateListRequest true "Fields to change"
// @Success  200 {object} ListResponse
// @Router   /api/lists/{id} [put]
func (h *ListHandler) Update(c *gin.Context) {
	var req UpdateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "Invalid request")
		return
	}

	list, err := h.lists.Update(c.Request.Context(), c.Param("id"), service.UpdateListInput{
		Title:    req.Title,
		Position: req.Position,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newListResponse(list))
}

// Delete godoc
// @Summary  Delete a list with its cards
// @Tags     Lists
// @Produce  json
// @Param    id path string true "List ID"
// @Success  200 {object} map[string]bool
// @Router   /api/lists/{id} [delete]
func (h *ListHandler) Delete(c *gin.Context) {
	if err := h.lists.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	success(c)
}

// Reorder godoc
// @Summary  Set the order of every list on a board
// @Tags     Lists
// @Accept   json
// @Produce  json
// @Param    id    path string              true "Board ID"
// @Param    order body ReorderListsRequest true "All list IDs of the board in the new order"
// @Success  200 {object} map[string]bool
// @Router   /api/boards/{id}/lists/reorder [post]
func (h *ListHandler) Reorder(c *gin.Context) {
	var req ReorderListsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "Invalid request")
		return
	}

	if err := h.lists.Reorder(c.Request.Context(), c.Param("id"), req.ListIDs); err != nil {
		respondError(c, err)
		return
	}

	success(c)
}
