package model

import (
	"time"
)

// Card is the leaf work item. Description and DueDate are optional.
type Card struct {
	ID          string  `gorm:"type:varchar(64);primaryKey"`
	ListID      string  `gorm:"type:varchar(64);not null;index:idx_cards_list_position,priority:1"`
	Title       string  `gorm:"not null"`
	Description *string
	DueDate     *time.Time
	Position    int       `gorm:"not null;index:idx_cards_list_position,priority:2"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime:false"`
}
