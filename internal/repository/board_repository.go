package repository

import (
	"context"
	"errors"

	"kanboard/internal/model"

	"gorm.io/gorm"
)

type BoardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

// Create adds a new board to the database
func (r *BoardRepository) Create(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Create(board).Error
}

// GetAll returns every board, newest first
func (r *BoardRepository) GetAll(ctx context.Context) ([]model.Board, error) {
	var boards []model.Board
	err := r.db.WithContext(ctx).Order("created_at DESC").Order("id").Find(&boards).Error
	return boards, err
}

// GetByID retrieves a board by its ID
func (r *BoardRepository) GetByID(ctx context.Context, id string) (*model.Board, error) {
	var board model.Board
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&board).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, err
	}
	return &board, nil
}

// Exists reports whether a board with the given ID is stored
func (r *BoardRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Board{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Update writes the given columns and returns the stored board
func (r *BoardRepository) Update(ctx context.Context, id string, fields map[string]any) (*model.Board, error) {
	var board model.Board
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Board{}).Where("id = ?", id).Updates(fields)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrBoardNotFound
		}
		return tx.Where("id = ?", id).First(&board).Error
	})
	if err != nil {
		return nil, err
	}
	return &board, nil
}

// Delete removes a board together with its lists and their cards. It returns
// the IDs of the lists that were removed.
func (r *BoardRepository) Delete(ctx context.Context, id string) ([]string, error) {
	var listIDs []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.List{}).Where("board_id = ?", id).Pluck("id", &listIDs).Error; err != nil {
			return err
		}

		if len(listIDs) > 0 {
			if err := tx.Where("list_id IN ?", listIDs).Delete(&model.Card{}).Error; err != nil {
				return err
			}
			if err := tx.Where("board_id = ?", id).Delete(&model.List{}).Error; err != nil {
				return err
			}
		}

		result := tx.Where("id = ?", id).Delete(&model.Board{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrBoardNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return listIDs, nil
}
