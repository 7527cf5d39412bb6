package handler

import (
	"context"
	"net/http"
	"time"

	"kanboard/internal/model"
	"kanboard/internal/service"

	"github.com/gin-gonic/gin"
)

// CardService is what the card routes need from the service layer.
type CardService interface {
	GetByListID(ctx context.Context, listID string) ([]model.Card, error)
	GetByID(ctx context.Context, id string) (*model.Card, error)
	Create(ctx context.Context, in service.CreateCardInput) (*model.Card, error)
	Update(ctx context.Context, id string, in service.UpdateCardInput) (*model.Card, error)
	Delete(ctx context.Context, id string) error
	Move(ctx context.Context, id string, in service.MoveCardInput) (*model.Card, error)
	Reorder(ctx context.Context, listID string, cardIDs []string) error
}

type CardHandler struct {
	cards CardService
}

func NewCardHandler(cards CardService) *CardHandler {
	return &CardHandler{cards: cards}
}

type CreateCardRequest struct {
	ListID      string  `json:"list_id" binding:"required"`
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"` // RFC3339
}

// UpdateCardRequest leaves absent fields unchanged. An empty due_date clears
// the due date; an empty description is stored as "".
type UpdateCardRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
	Position    *int    `json:"position"`
}

type MoveCardRequest struct {
	ListID   string `json:"list_id" binding:"required"`
	Position *int   `json:"position" binding:"required"`
}

type ReorderCardsRequest struct {
	CardIDs []string `json:"card_ids" binding:"required"`
}

type CardResponse struct {
	ID          string  `json:"id"`
	ListID      string  `json:"list_id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
	Position    int     `json:"position"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func newCardResponse(card *model.Card) CardResponse {
	resp := CardResponse{
		ID:          card.ID,
		ListID:      card.ListID,
		Title:       card.Title,
		Description: card.Description,
		Position:    card.Position,
		CreatedAt:   formatTime(card.CreatedAt),
		UpdatedAt:   formatTime(card.UpdatedAt),
	}
	if card.DueDate != nil {
		due := formatTime(*card.DueDate)
		resp.DueDate = &due
	}
	return resp
}

func parseDueDate(raw string) (*time.Time, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetByListID godoc
// @Summary  Cards of a list in position order
// @Tags     Cards
// @Produce  json
// @Param    id path string true "List ID"
// @Success  200 {array} CardResponse
// @Router   /api/lists/{id}/cards [get]
func (h *CardHandler) GetByListID(c *gin.Context) {
	cards, err := h.cards.GetByListID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]CardResponse, len(cards))
	for i := range cards {
		response[i] = newCardResponse(&cards[i])
	}

	c.JSON(http.StatusOK, response)
}

// GetByID godoc
// @Summary  Get a card
// @Tags     Cards
// @Produce  json
// @Param    id path string true "Card ID"
// @Success  200 {object} CardResponse
// @Router   /api/cards/{id} [get]
func (h *CardHandler) GetByID(c *gin.Context) {
	card, err := h.cards.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newCardResponse(card))
}

// Create godoc
// @Summary  Append a card to a list
// @Tags     Cards
// @Accept   json
// @Produce  json
// @Param    card body CreateCardRequest true "Card"
// @Success  201 {object} CardResponse
// @Router   /api/cards [post]
func (h *CardHandler) Create(c *gin.Context) {
	var req CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "Invalid request")
		return
	}

	in := service.CreateCardInput{
		ListID:      req.ListID,
		Title:       req.Title,
		Description: req.Description,
	}
	if req.DueDate != nil && *req.DueDate != "" {
		due, err := parseDueDate(*req.DueDate)
		if err != nil {
			invalidRequest(c, "Invalid due_date format, expected RFC3339")
			return
		}
		in.DueDate = due
	}

	card, err := h.cards.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newCardResponse(card))
}

// Update godoc
// @Summary  Update a card
// @Tags     Cards
// @Accept   json
// @Produce  json
// @Param    id   path string            true "Card ID"
// @Param    card body UpdateCardRequest true "Fields to change"
// @Success  200 {object} CardResponse
// @Router   /api/cards/{id} [put]
func (h *CardHandler) Update(c *gin.Context) {
	var req UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "Invalid request")
		return
	}

	in := service.UpdateCardInput{
		Title:       req.Title,
		Description: req.Description,
		Position:    req.Position,
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			in.ClearDueDate = true
		} else {
			due, err := parseDueDate(*req.DueDate)
			if err != nil {
				invalidRequest(c, "Invalid due_date format, expected RFC3339")
				return
			}
			in.DueDate = due
		}
	}

	card, err := h.cards.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newCardResponse(card))
}

// Delete godoc
// @Summary  Delete a card
// @Tags     Cards
// @Produce  json
// @Param    id path string true "Card ID"
// @Success  200 {object} map[string]bool
// @Router   /api/cards/{id} [delete]
func (h *CardHandler) Delete(c *gin.Context) {
	if err := h.cards.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	success(c)
}

// Move godoc
// @Summary      Move a card to a list and position
// @Description  Other cards keep their positions; reorder the lists to renumber them.
// @Tags         Cards
// @Accept       json
// @Produce      json
// @Param        id   path string          true "Card ID"
// @Param        move body MoveCardRequest true "Destination"
// @Success      200 {object} CardResponse
// @Router       /api/cards/{id}/move [post]
func (h *CardHandler) Move(c *gin.Context) {
	var req MoveCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "Invalid request")
		return
	}

	card, err := h.cards.Move(c.Request.Context(), c.Param("id"), service.MoveCardInput{
		ListID:   req.ListID,
		Position: *req.Position,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newCardResponse(card))
}

// Reorder godoc
// @Summary  Set the order of every card in a list
// @Tags     Cards
// @Accept   json
// @Produce  json
// @Param    id    path string              true "List ID"
// @Param    order body ReorderCardsRequest true "All card IDs of the list in the new order"
// @Success  200 {object} map[string]bool
// @Router   /api/lists/{id}/cards/reorder [post]
func (h *CardHandler) Reorder(c *gin.Context) {
	var req ReorderCardsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "Invalid request")
		return
	}

	if err := h.cards.Reorder(c.Request.Context(), c.Param("id"), req.CardIDs); err != nil {
		respondError(c, err)
		return
	}

	success(c)
}
