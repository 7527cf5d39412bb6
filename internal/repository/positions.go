package repository

import (
	"context"
	"time"

	"kanboard/internal/ordering"

	"gorm.io/gorm"
)

// scopeOrder is the read order inside a parent scope. Position decides; the
// remaining keys only make ties after a card move stable.
const scopeOrder = "position, created_at, id"

// replacePositions runs plan against the current members of one parent scope
// and writes every resulting placement in a single transaction.
func replacePositions(ctx context.Context, db *gorm.DB, table any, scopeColumn, parentID string, plan ordering.PlanFunc, at time.Time) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current []string
		if err := tx.Model(table).Where(scopeColumn+" = ?", parentID).Order(scopeOrder).Pluck("id", &current).Error; err != nil {
			return err
		}

		placements, err := plan(current)
		if err != nil {
			return err
		}

		for _, p := range placements {
			if err := tx.Model(table).Where("id = ?", p.ID).
				Updates(map[string]any{"position": p.Position, "updated_at": at}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// closeGap shifts siblings after a removed position one step down and stamps
// them with at.
func closeGap(tx *gorm.DB, table any, scopeColumn, parentID string, removed int, at time.Time) error {
	return tx.Model(table).
		Where(scopeColumn+" = ? AND position > ?", parentID, removed).
		Updates(map[string]any{
			"position":   gorm.Expr("position - 1"),
			"updated_at": at,
		}).Error
}
