package setups

import (
	"time"

	"github.com/google/uuid"

	"github.com/rafaelduarte/gamesetup-backend/pkg/db/models"
	"github.com/rafaelduarte/gamesetup-backend/pkg/types"
)

// SetupDTO is the transport shape of a persisted setup. GameImage is always
// present in the JSON, explicit null when no image is known.
type SetupDTO struct {
	ID             uuid.UUID           `json:"id"`
	UserID         uuid.UUID           `json:"userId"`
	GameID         string              `json:"gameId"`
	GameName       *string             `json:"gameName"`
	GameImage      *string             `json:"gameImage"`
	Budget         float64             `json:"budget"`
	Tier           string              `json:"tier"`
	Components     types.ComponentList `json:"components"`
	EstimatedPrice int                 `json:"estimatedPrice"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      *time.Time          `json:"updatedAt,omitempty"`
}

func FromModel(s *models.Setup) *SetupDTO {
	if s == nil {
		return nil
	}

	return &SetupDTO{
		ID:             s.ID,
		UserID:         s.UserID,
		GameID:         s.GameID,
		GameName:       s.GameName,
		GameImage:      s.GameImage,
		Budget:         s.Budget,
		Tier:           s.Tier,
		Components:     append(types.ComponentList(nil), s.Components...),
		EstimatedPrice: s.EstimatedPrice,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func fromModels(list []models.Setup) []*SetupDTO {
	out := make([]*SetupDTO, 0, len(list))
	for i := range list {
		out = append(out, FromModel(&list[i]))
	}
	return out
}
