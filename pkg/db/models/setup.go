package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rafaelduarte/gamesetup-backend/pkg/types"
)

// Setup is a generated hardware build owned by exactly one user. The tier,
// component list and estimated price are always derived from the budget in one
// write; no path mutates them independently.
type Setup struct {
	ID             uuid.UUID           `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID           `gorm:"type:uuid;column:user_id;not null;index"`
	GameID         string              `gorm:"column:game_id;not null"`
	GameName       *string             `gorm:"column:game_name"`
	GameImage      *string             `gorm:"column:game_image"`
	GameText       string              `gorm:"column:game_text;not null;default:''"`
	Budget         float64             `gorm:"column:budget;not null"`
	Tier           string              `gorm:"column:tier;not null"`
	Components     types.ComponentList `gorm:"column:components;type:text;not null"`
	EstimatedPrice int                 `gorm:"column:estimated_price;not null"`
	CreatedAt      time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      *time.Time          `gorm:"column:updated_at;autoUpdateTime:false"`
}
