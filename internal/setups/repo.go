package setups

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rafaelduarte/gamesetup-backend/pkg/db/models"
	"github.com/rafaelduarte/gamesetup-backend/pkg/types"
)

// Repository exposes setup persistence operations. Every read and write is
// scoped to the owning user.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a setups repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new setup.
func (r *Repository) Create(ctx context.Context, setup *models.Setup) error {
	return r.db.WithContext(ctx).Create(setup).Error
}

// ListByOwner returns the user's setups in creation order.
func (r *Repository) ListByOwner(ctx context.Context, userID uuid.UUID) ([]models.Setup, error) {
	var list []models.Setup
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// FindByIDAndOwner loads one setup, gorm.ErrRecordNotFound when the id does
// not exist or belongs to someone else.
func (r *Repository) FindByIDAndOwner(ctx context.Context, id, userID uuid.UUID) (*models.Setup, error) {
	var setup models.Setup
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&setup).Error
	if err != nil {
		return nil, err
	}
	return &setup, nil
}

// RebuildUpdate holds the derived fields an edit writes in one statement.
type RebuildUpdate struct {
	Budget         float64
	Tier           string
	Components     types.ComponentList
	EstimatedPrice int
	UpdatedAt      time.Time
}

// UpdateDerived rewrites budget plus everything derived from it in a single
// owner-scoped row update. Returns false when no row matched.
func (r *Repository) UpdateDerived(ctx context.Context, id, userID uuid.UUID, upd RebuildUpdate) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Setup{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{
			"budget":          upd.Budget,
			"tier":            upd.Tier,
			"components":      upd.Components,
			"estimated_price": upd.EstimatedPrice,
			"updated_at":      upd.UpdatedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Delete removes one setup owned by the user. Returns false when no row
// matched.
func (r *Repository) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Setup{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
