package handler

import (
	"context"
	"net/http"

	"kanboard/internal/model"
	"kanboard/internal/service"

	"github.com/gin-gonic/gin"
)

// BoardService is what the board routes need from the service layer.
type BoardService interface {
	GetAll(ctx context.Context) ([]model.Board, error)
	GetByID(ctx context.Context, id string) (*model.Board, error)
	Create(ctx context.Context, in service.CreateBoardInput) (*model.Board, error)
	Update(ctx context.Context, id string, in service.UpdateBoardInput) (*model.Board, error)
	Delete(ctx context.Context, id string) error
}

type BoardHandler struct {
	boards BoardService
}

func NewBoardHandler(boards BoardService) *BoardHandler {
	return &BoardHandler{
		boards: boards,
	}
}

type CreateBoardRequest struct {
	Title string `json:"title" binding:"required"`
}

type UpdateBoardRequest struct {
	Title *string `json:"title"`
}

type BoardResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func newBoardResponse(board *model.Board) BoardResponse {
	return BoardResponse{
		ID:        board.ID,
		Title:     board.Title,
		CreatedAt: formatTime(board.CreatedAt),
		UpdatedAt: formatTime(board.UpdatedAt),
	}
}

// GetAll godoc
// @Summary  List boards, newest first
// @Tags     Boards
// @Produce  json
// @Success  200 {array} BoardResponse
// @Router   /api/boards [get]
func (h *BoardHandler) GetAll(c *gin.Context) {
	boards, err := h.boards.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]BoardResponse, len(boards))
	for i := range boards {
		response[i] = newBoardResponse(&boards[i])
	}

	c.JSON(http.StatusOK, response)
}

// GetByID godoc
// @Summary  Get a board
// @Tags     Boards
// @Produce  json
// @Param    id path string true "Board ID"
// @Success  200 {object} BoardResponse
// @Router   /api/boards/{id} [get]
func (h *BoardHandler) GetByID(c *gin.Context) {
	board, err := h.boards.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newBoardResponse(board))
}

// Create godoc
// @Summary  Create a board
// @Tags     Boards
// @Accept   json
// @Produce  json
// @Param    board body CreateBoardRequest true "Board"
// @Success  201 {object} BoardResponse
// @Router   /api/boards [post]
func (h *BoardHandler) Create(c *gin.Context) {
	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "Invalid request")
		return
	}

	board, err := h.boards.Create(c.Request.Context(), service.CreateBoardInput{Title: req.Title})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newBoardResponse(board))
}

// Update godoc
// @Summary  Update a board
// @Tags     Boards
// @Accept   json
// @Produce  json
// @Param    id    path string             true "Board ID"
// @Param    board body UpdateBoardRequest true "Fields to change"
// @Success  200 {object} BoardResponse
// @Router   /api/boards/{id} [put]
func (h *BoardHandler) Update(c *gin.Context) {
	var req UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "Invalid request")
		return
	}

	board, err := h.boards.Update(c.Request.Context(), c.Param("id"), service.UpdateBoardInput{Title: req.Title})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newBoardResponse(board))
}

// Delete godoc
// @Summary  Delete a board with its lists and cards
// @Tags     Boards
// @Produce  json
// @Param    id path string true "Board ID"
// @Success  200 {object} map[string]bool
// @Router   /api/boards/{id} [delete]
func (h *BoardHandler) Delete(c *gin.Context) {
	if err := h.boards.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	success(c)
}
