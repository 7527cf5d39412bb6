package model

import (
	"time"
)

// List is an ordered column of cards. Position is zero-based within BoardID.
type List struct {
	ID        string    `gorm:"type:varchar(64);primaryKey"`
	BoardID   string    `gorm:"type:varchar(64);not null;index:idx_lists_board_position,priority:1"`
	Title     string    `gorm:"not null"`
	Position  int       `gorm:"not null;index:idx_lists_board_position,priority:2"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"`

	Cards []Card `gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE"`
}
