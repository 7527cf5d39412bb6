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

// ListStore is the list persistence the service needs.
type ListStore interface {
	ordering.Store
	Create(ctx context.Context, list *model.List) error
	GetByID(ctx context.Context, id string) (*model.List, error)
	GetByBoardID(ctx context.Context, boardID string) ([]model.List, error)
	Update(ctx context.Context, id string, fields map[string]any) (*model.List, error)
	Delete(ctx context.Context, id string, at time.Time) error
}

// ParentChecker reports whether a parent row exists.
type ParentChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type CreateListInput struct {
	BoardID string `validate:"required"`
	Title   string `validate:"required"`
}

// UpdateListInput is a partial patch; nil fields are left unchanged. A
// position is written as given without renumbering siblings.
type UpdateListInput struct {
	Title    *string `validate:"omitnil,min=1"`
	Position *int    `validate:"omitnil,gte=0"`
}

type ListService struct {
	lists  ListStore
	boards ParentChecker
	order  *ordering.Engine
	cache  *cache.Cache
	log    *logrus.Logger
	now    Clock
}

func NewListService(lists ListStore, boards ParentChecker, c *cache.Cache, log *logrus.Logger) *ListService {
	return &ListService{
		lists:  lists,
		boards: boards,
		order:  ordering.NewEngine(lists),
		cache:  c,
		log:    loggerOrDefault(log),
		now:    systemClock,
	}
}

// WithClock replaces the time source.
func (s *ListService) WithClock(now Clock) *ListService {
	s.now = now
	return s
}

// GetByBoardID returns the lists of a board by ascending position. An unknown
// board yields an empty slice.
func (s *ListService) GetByBoardID(ctx context.Context, boardID string) (lists []model.List, err error) {
	ctx, span := startSpan(ctx, "ListService.GetByBoardID", attribute.String("board.id", boardID))
	defer func() { endSpan(span, err) }()

	key := cache.ListsKey(boardID)
	if s.cache.Load(ctx, key, &lists) {
		return lists, nil
	}
	version := s.cache.Version(ctx, key)

	lists, err = s.lists.GetByBoardID(ctx, boardID)
	if err != nil {
		return nil, storeError(err, nil, "List")
	}
	if lists == nil {
		lists = []model.List{}
	}
	s.cache.Store(ctx, key, version, lists)
	return lists, nil
}

func (s *ListService) GetByID(ctx context.Context, id string) (list *model.List, err error) {
	ctx, span := startSpan(ctx, "ListService.GetByID", attribute.String("list.id", id))
	defer func() { endSpan(span, err) }()

	list, err = s.lists.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, repository.ErrListNotFound, "List")
	}
	return list, nil
}

// Create appends a new list to the end of its board.
func (s *ListService) Create(ctx context.Context, in CreateListInput) (list *model.List, err error) {
	ctx, span := startSpan(ctx, "ListService.Create", attribute.String("board.id", in.BoardID))
	defer func() { endSpan(span, err) }()

	in.Title = *trimmed(&in.Title)
	if err = validateInput(in); err != nil {
		return nil, err
	}
	if err = s.requireBoard(ctx, in.BoardID); err != nil {
		return nil, err
	}

	position, err := s.order.Append(ctx, in.BoardID)
	if err != nil {
		return nil, storeError(err, nil, "List")
	}

	now := stamp(s.now)
	list = &model.List{
		ID:        model.NewID(model.ListPrefix),
		BoardID:   in.BoardID,
		Title:     in.Title,
		Position:  position,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err = s.lists.Create(ctx, list); err != nil {
		return nil, storeError(err, nil, "List")
	}

	s.cache.Evict(ctx, cache.ListsKey(in.BoardID))
	s.log.WithFields(logrus.Fields{"list_id": list.ID, "board_id": in.BoardID, "position": position}).Debug("list created")
	return list, nil
}

func (s *ListService) Update(ctx context.Context, id string, in UpdateListInput) (list *model.List, err error) {
	ctx, span := startSpan(ctx, "ListService.Update", attribute.String("list.id", id))
	defer func() { endSpan(span, err) }()

	in.Title = trimmed(in.Title)
	if err = validateInput(in); err != nil {
		return nil, err
	}

	current, err := s.lists.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, repository.ErrListNotFound, "List")
	}

	fields := map[string]any{"updated_at": nextTimestamp(current.UpdatedAt, stamp(s.now))}
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.Position != nil {
		fields["position"] = *in.Position
	}

	list, err = s.lists.Update(ctx, id, fields)
	if err != nil {
		return nil, storeError(err, repository.ErrListNotFound, "List")
	}

	s.cache.Evict(ctx, cache.ListsKey(current.BoardID))
	s.log.WithField("list_id", id).Debug("list updated")
	return list, nil
}

// Delete removes a list with its cards and closes the gap on its board.
func (s *ListService) Delete(ctx context.Context, id string) (err error) {
	ctx, span := startSpan(ctx, "ListService.Delete", attribute.String("list.id", id))
	defer func() { endSpan(span, err) }()

	current, err := s.lists.GetByID(ctx, id)
	if err != nil {
		return storeError(err, repository.ErrListNotFound, "List")
	}
	if err = s.lists.Delete(ctx, id, stamp(s.now)); err != nil {
		return storeError(err, repository.ErrListNotFound, "List")
	}

	s.cache.Evict(ctx, cache.ListsKey(current.BoardID), cache.CardsKey(id))
	s.log.WithFields(logrus.Fields{"list_id": id, "board_id": current.BoardID}).Debug("list deleted")
	return nil
}

// Reorder assigns positions 0..n-1 to the lists of a board in the given
// order. listIDs must name every list of the board exactly once.
func (s *ListService) Reorder(ctx context.Context, boardID string, listIDs []string) (err error) {
	ctx, span := startSpan(ctx, "ListService.Reorder",
		attribute.String("board.id", boardID), attribute.Int("list.count", len(listIDs)))
	defer func() { endSpan(span, err) }()

	if err = s.requireBoard(ctx, boardID); err != nil {
		return err
	}
	if err = s.order.Reorder(ctx, boardID, listIDs, stamp(s.now)); err != nil {
		return storeError(err, nil, "List")
	}

	s.cache.Evict(ctx, cache.ListsKey(boardID))
	s.log.WithFields(logrus.Fields{"board_id": boardID, "lists": len(listIDs)}).Debug("lists reordered")
	return nil
}

func (s *ListService) requireBoard(ctx context.Context, boardID string) error {
	ok, err := s.boards.Exists(ctx, boardID)
	if err != nil {
		return storeError(err, nil, "Board")
	}
	if !ok {
		return apperr.NotFound("Board not found")
	}
	return nil
}
