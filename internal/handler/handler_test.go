package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kanboard/internal/apperr"
	"kanboard/internal/handler"
	"kanboard/internal/model"
	"kanboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBoardService struct {
	mock.Mock
}

func (m *MockBoardService) GetAll(ctx context.Context) ([]model.Board, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Board), args.Error(1)
}

func (m *MockBoardService) GetByID(ctx context.Context, id string) (*model.Board, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Board), args.Error(1)
}

func (m *MockBoardService) Create(ctx context.Context, in service.CreateBoardInput) (*model.Board, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Board), args.Error(1)
}

func (m *MockBoardService) Update(ctx context.Context, id string, in service.UpdateBoardInput) (*model.Board, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Board), args.Error(1)
}

func (m *MockBoardService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockListService struct {
	mock.Mock
}

func (m *MockListService) GetByBoardID(ctx context.Context, boardID string) ([]model.List, error) {
	args := m.Called(ctx, boardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.List), args.Error(1)
}

func (m *MockListService) GetByID(ctx context.Context, id string) (*model.List, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.List), args.Error(1)
}

func (m *MockListService) Create(ctx context.Context, in service.CreateListInput) (*model.List, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.List), args.Error(1)
}

func (m *MockListService) Update(ctx context.Context, id string, in service.UpdateListInput) (*model.List, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.List), args.Error(1)
}

func (m *MockListService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockListService) Reorder(ctx context.Context, boardID string, listIDs []string) error {
	args := m.Called(ctx, boardID, listIDs)
	return args.Error(0)
}

type MockCardService struct {
	mock.Mock
}

func (m *MockCardService) GetByListID(ctx context.Context, listID string) ([]model.Card, error) {
	args := m.Called(ctx, listID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Card), args.Error(1)
}

func (m *MockCardService) GetByID(ctx context.Context, id string) (*model.Card, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Card), args.Error(1)
}

func (m *MockCardService) Create(ctx context.Context, in service.CreateCardInput) (*model.Card, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Card), args.Error(1)
}

func (m *MockCardService) Update(ctx context.Context, id string, in service.UpdateCardInput) (*model.Card, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Card), args.Error(1)
}

func (m *MockCardService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCardService) Move(ctx context.Context, id string, in service.MoveCardInput) (*model.Card, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Card), args.Error(1)
}

func (m *MockCardService) Reorder(ctx context.Context, listID string, cardIDs []string) error {
	args := m.Called(ctx, listID, cardIDs)
	return args.Error(0)
}

type MockHealthChecker struct {
	mock.Mock
}

func (m *MockHealthChecker) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockHealthChecker) Tables(ctx context.Context) []string {
	args := m.Called(ctx)
	return args.Get(0).([]string)
}

type mocks struct {
	boards *MockBoardService
	lists  *MockListService
	cards  *MockCardService
	health *MockHealthChecker
}

func setupTest() (*gin.Engine, *mocks) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	m := &mocks{
		boards: new(MockBoardService),
		lists:  new(MockListService),
		cards:  new(MockCardService),
		health: new(MockHealthChecker),
	}

	handler.RegisterRoutes(r.Group("/api"),
		handler.NewBoardHandler(m.boards),
		handler.NewListHandler(m.lists),
		handler.NewCardHandler(m.cards),
		handler.NewHealthHandler(m.health),
	)
	return r, m
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			_ = json.NewEncoder(&buf).Encode(body)
		}
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func decode(t *testing.T, resp *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	return body
}

var created = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

func TestCreateBoard_Success(t *testing.T) {
	// Arrange
	router, m := setupTest()
	board := &model.Board{ID: "board-1", Title: "Sprint 1", CreatedAt: created, UpdatedAt: created}
	m.boards.On("Create", mock.Anything, service.CreateBoardInput{Title: "Sprint 1"}).Return(board, nil)

	// Act
	resp := doJSON(router, http.MethodPost, "/api/boards", handler.CreateBoardRequest{Title: "Sprint 1"})

	// Assert
	assert.Equal(t, http.StatusCreated, resp.Code)
	var got handler.BoardResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Equal(t, "board-1", got.ID)
	assert.Equal(t, "2024-01-02T03:04:05Z", got.CreatedAt)
	m.boards.AssertExpectations(t)
}

func TestCreateBoard_InvalidBody(t *testing.T) {
	// Arrange
	router, m := setupTest()

	// Act
	resp := doJSON(router, http.MethodPost, "/api/boards", `{"title":`)

	// Assert
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, string(apperr.CodeValidationFailure), decode(t, resp)["code"])
	m.boards.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetBoard_NotFound(t *testing.T) {
	// Arrange
	router, m := setupTest()
	m.boards.On("GetByID", mock.Anything, "board-missing").Return(nil, apperr.NotFound("Board not found"))

	// Act
	resp := doJSON(router, http.MethodGet, "/api/boards/board-missing", nil)

	// Assert
	assert.Equal(t, http.StatusNotFound, resp.Code)
	body := decode(t, resp)
	assert.Equal(t, "Board not found", body["error"])
	assert.Equal(t, string(apperr.CodeNotFound), body["code"])
}

func TestGetBoards_StoreUnavailable(t *testing.T) {
	// Arrange
	router, m := setupTest()
	m.boards.On("GetAll", mock.Anything).Return(nil, apperr.Unavailable("Store unavailable", errors.New("dial tcp: refused")))

	// Act
	resp := doJSON(router, http.MethodGet, "/api/boards", nil)

	// Assert
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
	body := decode(t, resp)
	assert.Equal(t, "Store unavailable", body["error"])
	assert.Equal(t, string(apperr.CodeStoreUnavailable), body["code"])
}

func TestDeleteBoard_Success(t *testing.T) {
	// Arrange
	router, m := setupTest()
	m.boards.On("Delete", mock.Anything, "board-1").Return(nil)

	// Act
	resp := doJSON(router, http.MethodDelete, "/api/boards/board-1", nil)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, true, decode(t, resp)["success"])
}

func TestGetLists_ByQueryAndPath(t *testing.T) {
	// Arrange
	router, m := setupTest()
	lists := []model.List{
		{ID: "list-1", BoardID: "board-1", Title: "Todo", Position: 0, CreatedAt: created, UpdatedAt: created},
		{ID: "list-2", BoardID: "board-1", Title: "Done", Position: 1, CreatedAt: created, UpdatedAt: created},
	}
	m.lists.On("GetByBoardID", mock.Anything, "board-1").Return(lists, nil)

	for _, path := range []string{"/api/lists?board_id=board-1", "/api/boards/board-1/lists"} {
		// Act
		resp := doJSON(router, http.MethodGet, path, nil)

		// Assert
		assert.Equal(t, http.StatusOK, resp.Code)
		var got []handler.ListResponse
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, "Done", got[1].Title)
		assert.Equal(t, 1, got[1].Position)
	}
}

func TestGetLists_MissingBoardID(t *testing.T) {
	// Arrange
	router, _ := setupTest()

	// Act
	resp := doJSON(router, http.MethodGet, "/api/lists", nil)

	// Assert
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestReorderLists_InvalidScope(t *testing.T) {
	// Arrange
	router, m := setupTest()
	ids := []string{"list-2", "list-2"}
	m.lists.On("Reorder", mock.Anything, "board-1", ids).Return(apperr.InvalidScope(`Id "list-2" is listed more than once`))

	// Act
	resp := doJSON(router, http.MethodPost, "/api/boards/board-1/lists/reorder", handler.ReorderListsRequest{ListIDs: ids})

	// Assert
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	assert.Equal(t, string(apperr.CodeInvalidScope), decode(t, resp)["code"])
}

func TestUpdateList_PassesPatch(t *testing.T) {
	// Arrange
	router, m := setupTest()
	pos := 2
	list := &model.List{ID: "list-1", BoardID: "board-1", Title: "Todo", Position: 2, CreatedAt: created, UpdatedAt: created}
	m.lists.On("Update", mock.Anything, "list-1", service.UpdateListInput{Position: &pos}).Return(list, nil)

	// Act
	resp := doJSON(router, http.MethodPut, "/api/lists/list-1", `{"position": 2}`)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	m.lists.AssertExpectations(t)
}

func TestCreateCard_WithDueDate(t *testing.T) {
	// Arrange
	router, m := setupTest()
	due := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	card := &model.Card{ID: "card-1", ListID: "list-1", Title: "Write spec", DueDate: &due, CreatedAt: created, UpdatedAt: created}
	m.cards.On("Create", mock.Anything, mock.MatchedBy(func(in service.CreateCardInput) bool {
		return in.ListID == "list-1" && in.DueDate != nil && in.DueDate.Equal(due)
	})).Return(card, nil)

	// Act
	resp := doJSON(router, http.MethodPost, "/api/cards", `{"list_id":"list-1","title":"Write spec","due_date":"2024-06-01T00:00:00Z"}`)

	// Assert
	assert.Equal(t, http.StatusCreated, resp.Code)
	var got handler.CardResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	require.NotNil(t, got.DueDate)
	assert.Equal(t, "2024-06-01T00:00:00Z", *got.DueDate)
	assert.Nil(t, got.Description)
}

func TestCreateCard_BadDueDate(t *testing.T) {
	// Arrange
	router, m := setupTest()

	// Act
	resp := doJSON(router, http.MethodPost, "/api/cards", `{"list_id":"list-1","title":"x","due_date":"tomorrow"}`)

	// Assert
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	m.cards.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateCard_EmptyDueDateClears(t *testing.T) {
	// Arrange
	router, m := setupTest()
	card := &model.Card{ID: "card-1", ListID: "list-1", Title: "x", CreatedAt: created, UpdatedAt: created}
	m.cards.On("Update", mock.Anything, "card-1", mock.MatchedBy(func(in service.UpdateCardInput) bool {
		return in.ClearDueDate && in.DueDate == nil && in.Title == nil
	})).Return(card, nil)

	// Act
	resp := doJSON(router, http.MethodPut, "/api/cards/card-1", `{"due_date":""}`)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	m.cards.AssertExpectations(t)
}

func TestMoveCard_Success(t *testing.T) {
	// Arrange
	router, m := setupTest()
	card := &model.Card{ID: "card-1", ListID: "list-2", Title: "x", Position: 0, CreatedAt: created, UpdatedAt: created}
	m.cards.On("Move", mock.Anything, "card-1", service.MoveCardInput{ListID: "list-2", Position: 0}).Return(card, nil)

	// Act
	resp := doJSON(router, http.MethodPost, "/api/cards/card-1/move", `{"list_id":"list-2","position":0}`)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	var got handler.CardResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Equal(t, "list-2", got.ListID)
}

func TestMoveCard_MissingPosition(t *testing.T) {
	// Arrange
	router, m := setupTest()

	// Act
	resp := doJSON(router, http.MethodPost, "/api/cards/card-1/move", `{"list_id":"list-2"}`)

	// Assert
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	m.cards.AssertNotCalled(t, "Move", mock.Anything, mock.Anything, mock.Anything)
}

func TestReorderCards_Success(t *testing.T) {
	// Arrange
	router, m := setupTest()
	ids := []string{"card-2", "card-1"}
	m.cards.On("Reorder", mock.Anything, "list-1", ids).Return(nil)

	// Act
	resp := doJSON(router, http.MethodPost, "/api/lists/list-1/cards/reorder", handler.ReorderCardsRequest{CardIDs: ids})

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, true, decode(t, resp)["success"])
}

func TestHealth(t *testing.T) {
	t.Run("connected", func(t *testing.T) {
		router, m := setupTest()
		m.health.On("Ping", mock.Anything).Return(nil)
		m.health.On("Tables", mock.Anything).Return([]string{"boards", "lists", "cards"})

		resp := doJSON(router, http.MethodGet, "/api/health", nil)

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Len(t, decode(t, resp)["tables"], 3)
	})

	t.Run("disconnected", func(t *testing.T) {
		router, m := setupTest()
		m.health.On("Ping", mock.Anything).Return(errors.New("connection refused"))

		resp := doJSON(router, http.MethodGet, "/api/health", nil)

		assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
		assert.Equal(t, "Database connection failed", decode(t, resp)["message"])
	})
}
