package service

import (
	"context"
	"time"

	"kanboard/internal/apperr"
	"kanboard/internal/cache"
	"kanboard/internal/model"
	"kanboard/internal/ordering"
	"kanboard/internal/repository"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// CardStore is the card persistence the service needs.
type CardStore interface {
	ordering.Store
	ordering.Mover
	Create(ctx context.Context, card *model.Card) error
	GetByID(ctx context.Context, id string) (*model.Card, error)
	GetByListID(ctx context.Context, listID string) ([]model.Card, error)
	Update(ctx context.Context, id string, fields map[string]any) (*model.Card, error)
	Delete(ctx context.Context, id string, at time.Time) error
}

type CreateCardInput struct {
	ListID      string `validate:"required"`
	Title       string `validate:"required"`
	Description *string
	DueDate     *time.Time
}

// UpdateCardInput is a partial patch; nil fields are left unchanged. A
// description is stored as given, including "". ClearDueDate removes the due
// date.
type UpdateCardInput struct {
	Title        *string `validate:"omitnil,min=1"`
	Description  *string
	DueDate      *time.Time
	ClearDueDate bool
	Position     *int `validate:"omitnil,gte=0"`
}

type MoveCardInput struct {
	ListID   string `validate:"required"`
	Position int    `validate:"gte=0"`
}

type CardService struct {
	cards CardStore
	lists ParentChecker
	order *ordering.Engine
	cache *cache.Cache
	log   *logrus.Logger
	now   Clock
}

func NewCardService(cards CardStore, lists ParentChecker, c *cache.Cache, log *logrus.Logger) *CardService {
	return &CardService{
		cards: cards,
		lists: lists,
		order: ordering.NewEngine(cards),
		cache: c,
		log:   loggerOrDefault(log),
		now:   systemClock,
	}
}

// WithClock replaces the time source.
func (s *CardService) WithClock(now Clock) *CardService {
	s.now = now
	return s
}

// GetByListID returns the cards of a list by ascending position. An unknown
// list yields an empty slice.
func (s *CardService) GetByListID(ctx context.Context, listID string) (cards []model.Card, err error) {
	ctx, span := startSpan(ctx, "CardService.GetByListID", attribute.String("list.id", listID))
	defer func() { endSpan(span, err) }()

	key := cache.CardsKey(listID)
	if s.cache.Load(ctx, key, &cards) {
		return cards, nil
	}
	version := s.cache.Version(ctx, key)

	cards, err = s.cards.GetByListID(ctx, listID)
	if err != nil {
		return nil, storeError(err, nil, "Card")
	}
	if cards == nil {
		cards = []model.Card{}
	}
	s.cache.Store(ctx, key, version, cards)
	return cards, nil
}

func (s *CardService) GetByID(ctx context.Context, id string) (card *model.Card, err error) {
	ctx, span := startSpan(ctx, "CardService.GetByID", attribute.String("card.id", id))
	defer func() { endSpan(span, err) }()

	card, err = s.cards.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, repository.ErrCardNotFound, "Card")
	}
	return card, nil
}

// Create appends a new card to the end of its list.
func (s *CardService) Create(ctx context.Context, in CreateCardInput) (card *model.Card, err error) {
	ctx, span := startSpan(ctx, "CardService.Create", attribute.String("list.id", in.ListID))
	defer func() { endSpan(span, err) }()

	in.Title = *trimmed(&in.Title)
	if err = validateInput(in); err != nil {
		return nil, err
	}
	if err = s.requireList(ctx, in.ListID); err != nil {
		return nil, err
	}

	position, err := s.order.Append(ctx, in.ListID)
	if err != nil {
		return nil, storeError(err, nil, "Card")
	}

	now := stamp(s.now)
	card = &model.Card{
		ID:          model.NewID(model.CardPrefix),
		ListID:      in.ListID,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     utc(in.DueDate),
		Position:    position,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err = s.cards.Create(ctx, card); err != nil {
		return nil, storeError(err, nil, "Card")
	}

	s.cache.Evict(ctx, cache.CardsKey(in.ListID))
	s.log.WithFields(logrus.Fields{"card_id": card.ID, "list_id": in.ListID, "position": position}).Debug("card created")
	return card, nil
}

func (s *CardService) Update(ctx context.Context, id string, in UpdateCardInput) (card *model.Card, err error) {
	ctx, span := startSpan(ctx, "CardService.Update", attribute.String("card.id", id))
	defer func() { endSpan(span, err) }()

	in.Title = trimmed(in.Title)
	if err = validateInput(in); err != nil {
		return nil, err
	}

	current, err := s.cards.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, repository.ErrCardNotFound, "Card")
	}

	fields := map[string]any{"updated_at": nextTimestamp(current.UpdatedAt, stamp(s.now))}
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	switch {
	case in.ClearDueDate:
		fields["due_date"] = nil
	case in.DueDate != nil:
		fields["due_date"] = utc(in.DueDate)
	}
	if in.Position != nil {
		fields["position"] = *in.Position
	}

	card, err = s.cards.Update(ctx, id, fields)
	if err != nil {
		return nil, storeError(err, repository.ErrCardNotFound, "Card")
	}

	s.cache.Evict(ctx, cache.CardsKey(current.ListID))
	s.log.WithField("card_id", id).Debug("card updated")
	return card, nil
}

// Delete removes a card and closes the gap in its list.
func (s *CardService) Delete(ctx context.Context, id string) (err error) {
	ctx, span := startSpan(ctx, "CardService.Delete", attribute.String("card.id", id))
	defer func() { endSpan(span, err) }()

	current, err := s.cards.GetByID(ctx, id)
	if err != nil {
		return storeError(err, repository.ErrCardNotFound, "Card")
	}
	if err = s.cards.Delete(ctx, id, stamp(s.now)); err != nil {
		return storeError(err, repository.ErrCardNotFound, "Card")
	}

	s.cache.Evict(ctx, cache.CardsKey(current.ListID))
	s.log.WithFields(logrus.Fields{"card_id": id, "list_id": current.ListID}).Debug("card deleted")
	return nil
}

// Move puts a card into a list at the given position. Cards already in the
// source and destination lists keep their positions, so either list may hold
// duplicate or missing positions until it is reordered.
func (s *CardService) Move(ctx context.Context, id string, in MoveCardInput) (card *model.Card, err error) {
	ctx, span := startSpan(ctx, "CardService.Move",
		attribute.String("card.id", id), attribute.String("list.id", in.ListID), attribute.Int("card.position", in.Position))
	defer func() { endSpan(span, err) }()

	if err = validateInput(in); err != nil {
		return nil, err
	}

	current, err := s.cards.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, repository.ErrCardNotFound, "Card")
	}
	if err = s.requireList(ctx, in.ListID); err != nil {
		return nil, err
	}

	at := nextTimestamp(current.UpdatedAt, stamp(s.now))
	if err = s.order.Move(ctx, id, in.ListID, in.Position, at); err != nil {
		return nil, storeError(err, repository.ErrCardNotFound, "Card")
	}

	s.cache.Evict(ctx, cache.CardsKey(current.ListID), cache.CardsKey(in.ListID))
	s.log.WithFields(logrus.Fields{
		"card_id":  id,
		"from":     current.ListID,
		"to":       in.ListID,
		"position": in.Position,
	}).Debug("card moved")

	card, err = s.cards.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, repository.ErrCardNotFound, "Card")
	}
	return card, nil
}

// Reorder assigns positions 0..n-1 to the cards of a list in the given order.
// cardIDs must name every card of the list exactly once.
func (s *CardService) Reorder(ctx context.Context, listID string, cardIDs []string) (err error) {
	ctx, span := startSpan(ctx, "CardService.Reorder",
		attribute.String("list.id", listID), attribute.Int("card.count", len(cardIDs)))
	defer func() { endSpan(span, err) }()

	if err = s.requireList(ctx, listID); err != nil {
		return err
	}
	if err = s.order.Reorder(ctx, listID, cardIDs, stamp(s.now)); err != nil {
		return storeError(err, nil, "Card")
	}

	s.cache.Evict(ctx, cache.CardsKey(listID))
	s.log.WithFields(logrus.Fields{"list_id": listID, "cards": len(cardIDs)}).Debug("cards reordered")
	return nil
}

func (s *CardService) requireList(ctx context.Context, listID string) error {
	ok, err := s.lists.Exists(ctx, listID)
	if err != nil {
		return storeError(err, nil, "List")
	}
	if !ok {
		return apperr.NotFound("List not found")
	}
	return nil
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
