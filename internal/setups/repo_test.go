package setups

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rafaelduarte/gamesetup-backend/pkg/db/models"
	"github.com/rafaelduarte/gamesetup-backend/pkg/types"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	schema := `
CREATE TABLE IF NOT EXISTS setups (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  game_id TEXT NOT NULL,
  game_name TEXT,
  game_image TEXT,
  game_text TEXT NOT NULL DEFAULT '',
  budget NUMERIC NOT NULL,
  tier TEXT NOT NULL,
  components TEXT NOT NULL,
  estimated_price INTEGER NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)

	return db
}

func testSetup(userID uuid.UUID, gameID string) *models.Setup {
	name := "Test Game"
	return &models.Setup{
		ID:       uuid.New(),
		UserID:   userID,
		GameID:   gameID,
		GameName: &name,
		GameText: "test game description",
		Budget:   8000,
		Tier:     "intermediate",
		Components: types.ComponentList{
			{Type: "GPU", Model: "NVIDIA RTX 3060"},
			{Type: "CPU", Model: "Intel i5-12400"},
			{Type: "RAM", Model: "16GB DDR4"},
			{Type: "Storage", Model: "512GB NVMe SSD"},
			{Type: "SO", Model: "Windows 10/11"},
		},
		EstimatedPrice: 8500,
	}
}

func TestRepositoryCreateAndList(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()
	owner := uuid.New()

	first := testSetup(owner, "100")
	second := testSetup(owner, "200")
	second.CreatedAt = time.Now().Add(time.Second)
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	list, err := repo.ListByOwner(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "100", list[0].GameID)
	assert.Equal(t, "200", list[1].GameID)
	assert.Len(t, list[0].Components, 5)
	assert.Nil(t, list[0].UpdatedAt)
}

func TestRepositoryListIsOwnerScoped(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()
	owner := uuid.New()
	stranger := uuid.New()

	require.NoError(t, repo.Create(ctx, testSetup(owner, "100")))
	require.NoError(t, repo.Create(ctx, testSetup(stranger, "200")))

	list, err := repo.ListByOwner(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "100", list[0].GameID)
}

func TestRepositoryFindByIDAndOwner(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()
	owner := uuid.New()

	setup := testSetup(owner, "100")
	require.NoError(t, repo.Create(ctx, setup))

	found, err := repo.FindByIDAndOwner(ctx, setup.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, setup.GameID, found.GameID)

	_, err = repo.FindByIDAndOwner(ctx, setup.ID, uuid.New())
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryUpdateDerived(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()
	owner := uuid.New()

	setup := testSetup(owner, "100")
	require.NoError(t, repo.Create(ctx, setup))

	now := time.Now().UTC().Truncate(time.Second)
	matched, err := repo.UpdateDerived(ctx, setup.ID, owner, RebuildUpdate{
		Budget: 12000,
		Tier:   "premium",
		Components: types.ComponentList{
			{Type: "GPU", Model: "NVIDIA RTX 4080"},
			{Type: "CPU", Model: "Intel i7-13700K"},
			{Type: "RAM", Model: "32GB DDR5"},
			{Type: "Storage", Model: "1TB NVMe SSD"},
			{Type: "SO", Model: "Windows 11"},
		},
		EstimatedPrice: 15000,
		UpdatedAt:      now,
	})
	require.NoError(t, err)
	require.True(t, matched)

	found, err := repo.FindByIDAndOwner(ctx, setup.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, float64(12000), found.Budget)
	assert.Equal(t, "premium", found.Tier)
	assert.Equal(t, 15000, found.EstimatedPrice)
	assert.Equal(t, "1TB NVMe SSD", found.Components[3].Model)
	require.NotNil(t, found.UpdatedAt)
}

func TestRepositoryUpdateDerivedIsOwnerScoped(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()
	owner := uuid.New()

	setup := testSetup(owner, "100")
	require.NoError(t, repo.Create(ctx, setup))

	matched, err := repo.UpdateDerived(ctx, setup.ID, uuid.New(), RebuildUpdate{
		Budget:         12000,
		Tier:           "premium",
		Components:     setup.Components,
		EstimatedPrice: 15000,
		UpdatedAt:      time.Now(),
	})
	require.NoError(t, err)
	assert.False(t, matched)

	found, err := repo.FindByIDAndOwner(ctx, setup.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, "intermediate", found.Tier)
}

func TestRepositoryDelete(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()
	owner := uuid.New()

	setup := testSetup(owner, "100")
	require.NoError(t, repo.Create(ctx, setup))

	matched, err := repo.Delete(ctx, setup.ID, uuid.New())
	require.NoError(t, err)
	assert.False(t, matched, "stranger must not delete")

	matched, err = repo.Delete(ctx, setup.ID, owner)
	require.NoError(t, err)
	assert.True(t, matched)

	list, err := repo.ListByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, list)
}
