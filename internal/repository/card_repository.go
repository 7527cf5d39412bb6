package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"kanboard/internal/model"
	"kanboard/internal/ordering"
)

type CardRepository struct {
	db *gorm.DB
}

var (
	_ ordering.Store = (*CardRepository)(nil)
	_ ordering.Mover = (*CardRepository)(nil)
)

func NewCardRepository(db *gorm.DB) *CardRepository {
	return &CardRepository{db: db}
}

// Create adds a new card to the database
func (r *CardRepository) Create(ctx context.Context, card *model.Card) error {
	return r.db.WithContext(ctx).Create(card).Error
}

// GetByID retrieves a card by its ID
func (r *CardRepository) GetByID(ctx context.Context, id string) (*model.Card, error) {
	var card model.Card
	result := r.db.WithContext(ctx).First(&card, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, result.Error
	}
	return &card, nil
}

// GetByListID retrieves all cards in a specific list
func (r *CardRepository) GetByListID(ctx context.Context, listID string) ([]model.Card, error) {
	var cards []model.Card
	result := r.db.WithContext(ctx).Where("list_id = ?", listID).Order(scopeOrder).Find(&cards)
	if result.Error != nil {
		return nil, result.Error
	}
	return cards, nil
}

// Update writes the given columns and returns the stored card
func (r *CardRepository) Update(ctx context.Context, id string, fields map[string]any) (*model.Card, error) {
	var card model.Card
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Card{}).Where("id = ?", id).Updates(fields)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCardNotFound
		}
		return tx.First(&card, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// Delete removes a card and closes the position gap it leaves in its list.
// Shifted cards are stamped with at.
func (r *CardRepository) Delete(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var card model.Card
		if err := tx.First(&card, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCardNotFound
			}
			return err
		}

		if err := tx.Delete(&model.Card{}, "id = ?", id).Error; err != nil {
			return err
		}
		return closeGap(tx, &model.Card{}, "list_id", card.ListID, card.Position, at)
	})
}

// CountInScope returns the number of cards in a list
func (r *CardRepository) CountInScope(ctx context.Context, listID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Card{}).Where("list_id = ?", listID).Count(&count).Error
	return count, err
}

// ReplacePositions rewrites the positions of every card in a list
func (r *CardRepository) ReplacePositions(ctx context.Context, listID string, plan ordering.PlanFunc, at time.Time) error {
	return replacePositions(ctx, r.db, &model.Card{}, "list_id", listID, plan, at)
}

// MoveItem sets the list and position of a card. Other cards keep their
// positions in both the source and the destination list.
func (r *CardRepository) MoveItem(ctx context.Context, id, listID string, position int, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&model.Card{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"list_id":    listID,
			"position":   position,
			"updated_at": at,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCardNotFound
	}
	return nil
}
