package repository

import (
	"context"
	"errors"
	"time"

	"kanboard/internal/model"
	"kanboard/internal/ordering"

	"gorm.io/gorm"
)

type ListRepository struct {
	db *gorm.DB
}

var _ ordering.Store = (*ListRepository)(nil)

func NewListRepository(db *gorm.DB) *ListRepository {
	return &ListRepository{db: db}
}

// Create adds a new list to the database
func (r *ListRepository) Create(ctx context.Context, list *model.List) error {
	return r.db.WithContext(ctx).Create(list).Error
}

// GetByID retrieves a list by its ID
func (r *ListRepository) GetByID(ctx context.Context, id string) (*model.List, error) {
	var list model.List
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&list).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListNotFound
		}
		return nil, err
	}
	return &list, nil
}

// GetByBoardID retrieves all lists of a board in display order
func (r *ListRepository) GetByBoardID(ctx context.Context, boardID string) ([]model.List, error) {
	var lists []model.List
	err := r.db.WithContext(ctx).Where("board_id = ?", boardID).Order(scopeOrder).Find(&lists).Error
	return lists, err
}

// Exists reports whether a list with the given ID is stored
func (r *ListRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.List{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Update writes the given columns and returns the stored list
func (r *ListRepository) Update(ctx context.Context, id string, fields map[string]any) (*model.List, error) {
	var list model.List
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.List{}).Where("id = ?", id).Updates(fields)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrListNotFound
		}
		return tx.Where("id = ?", id).First(&list).Error
	})
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// Delete removes a list and its cards, then closes the position gap it leaves
// on the board. Shifted lists are stamped with at.
func (r *ListRepository) Delete(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var list model.List
		if err := tx.Where("id = ?", id).First(&list).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrListNotFound
			}
			return err
		}

		if err := tx.Where("list_id = ?", id).Delete(&model.Card{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id = ?", id).Delete(&model.List{}).Error; err != nil {
			return err
		}
		return closeGap(tx, &model.List{}, "board_id", list.BoardID, list.Position, at)
	})
}

// CountInScope returns the number of lists on a board
func (r *ListRepository) CountInScope(ctx context.Context, boardID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.List{}).Where("board_id = ?", boardID).Count(&count).Error
	return count, err
}

// ReplacePositions rewrites the positions of every list on a board
func (r *ListRepository) ReplacePositions(ctx context.Context, boardID string, plan ordering.PlanFunc, at time.Time) error {
	return replacePositions(ctx, r.db, &model.List{}, "board_id", boardID, plan, at)
}
