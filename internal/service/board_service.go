package service

import (
	"context"

	"kanboard/internal/cache"
	"kanboard/internal/model"
	"kanboard/internal/repository"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// BoardStore is the board persistence the service needs.
type BoardStore interface {
	Create(ctx context.Context, board *model.Board) error
	GetAll(ctx context.Context) ([]model.Board, error)
	GetByID(ctx context.Context, id string) (*model.Board, error)
	Update(ctx context.Context, id string, fields map[string]any) (*model.Board, error)
	Delete(ctx context.Context, id string) ([]string, error)
}

type CreateBoardInput struct {
	Title string `validate:"required"`
}

// UpdateBoardInput is a partial patch; nil fields are left unchanged.
type UpdateBoardInput struct {
	Title *string `validate:"omitnil,min=1"`
}

type BoardService struct {
	boards BoardStore
	cache  *cache.Cache
	log    *logrus.Logger
	now    Clock
}

func NewBoardService(boards BoardStore, c *cache.Cache, log *logrus.Logger) *BoardService {
	return &BoardService{boards: boards, cache: c, log: loggerOrDefault(log), now: systemClock}
}

// WithClock replaces the time source.
func (s *BoardService) WithClock(now Clock) *BoardService {
	s.now = now
	return s
}

// GetAll returns every board, newest first.
func (s *BoardService) GetAll(ctx context.Context) (boards []model.Board, err error) {
	ctx, span := startSpan(ctx, "BoardService.GetAll")
	defer func() { endSpan(span, err) }()

	if s.cache.Load(ctx, cache.BoardsKey(), &boards) {
		return boards, nil
	}
	version := s.cache.Version(ctx, cache.BoardsKey())

	boards, err = s.boards.GetAll(ctx)
	if err != nil {
		return nil, storeError(err, nil, "Board")
	}
	if boards == nil {
		boards = []model.Board{}
	}
	s.cache.Store(ctx, cache.BoardsKey(), version, boards)
	return boards, nil
}

func (s *BoardService) GetByID(ctx context.Context, id string) (board *model.Board, err error) {
	ctx, span := startSpan(ctx, "BoardService.GetByID", attribute.String("board.id", id))
	defer func() { endSpan(span, err) }()

	board, err = s.boards.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, repository.ErrBoardNotFound, "Board")
	}
	return board, nil
}

func (s *BoardService) Create(ctx context.Context, in CreateBoardInput) (board *model.Board, err error) {
	ctx, span := startSpan(ctx, "BoardService.Create")
	defer func() { endSpan(span, err) }()

	in.Title = *trimmed(&in.Title)
	if err = validateInput(in); err != nil {
		return nil, err
	}

	now := stamp(s.now)
	board = &model.Board{
		ID:        model.NewID(model.BoardPrefix),
		Title:     in.Title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err = s.boards.Create(ctx, board); err != nil {
		return nil, storeError(err, nil, "Board")
	}

	s.cache.Evict(ctx, cache.BoardsKey())
	s.log.WithField("board_id", board.ID).Debug("board created")
	return board, nil
}

func (s *BoardService) Update(ctx context.Context, id string, in UpdateBoardInput) (board *model.Board, err error) {
	ctx, span := startSpan(ctx, "BoardService.Update", attribute.String("board.id", id))
	defer func() { endSpan(span, err) }()

	in.Title = trimmed(in.Title)
	if err = validateInput(in); err != nil {
		return nil, err
	}

	current, err := s.boards.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, repository.ErrBoardNotFound, "Board")
	}

	fields := map[string]any{"updated_at": nextTimestamp(current.UpdatedAt, stamp(s.now))}
	if in.Title != nil {
		fields["title"] = *in.Title
	}

	board, err = s.boards.Update(ctx, id, fields)
	if err != nil {
		return nil, storeError(err, repository.ErrBoardNotFound, "Board")
	}

	s.cache.Evict(ctx, cache.BoardsKey())
	s.log.WithField("board_id", id).Debug("board updated")
	return board, nil
}

// Delete removes a board with all of its lists and cards.
func (s *BoardService) Delete(ctx context.Context, id string) (err error) {
	ctx, span := startSpan(ctx, "BoardService.Delete", attribute.String("board.id", id))
	defer func() { endSpan(span, err) }()

	listIDs, err := s.boards.Delete(ctx, id)
	if err != nil {
		return storeError(err, repository.ErrBoardNotFound, "Board")
	}

	keys := append([]string{cache.BoardsKey(), cache.ListsKey(id)}, cache.CardsKeys(listIDs)...)
	s.cache.Evict(ctx, keys...)
	s.log.WithFields(logrus.Fields{"board_id": id, "lists": len(listIDs)}).Debug("board deleted")
	return nil
}
