package model

import (
	"time"
)

type Board struct {
	ID        string    `gorm:"type:varchar(64);primaryKey"`
	Title     string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"`

	Lists []List `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE"`
}
