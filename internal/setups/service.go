package setups

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rafaelduarte/gamesetup-backend/internal/hardware"
	"github.com/rafaelduarte/gamesetup-backend/pkg/db/models"
	pkgerrors "github.com/rafaelduarte/gamesetup-backend/pkg/errors"
	"github.com/rafaelduarte/gamesetup-backend/pkg/logger"
	"github.com/rafaelduarte/gamesetup-backend/pkg/rawg"
)

const setupNotFoundMessage = "setup not found"

// GameLookup is the metadata surface builds depend on.
type GameLookup interface {
	GetByID(ctx context.Context, gameID string) (*rawg.Game, error)
}

type setupRepository interface {
	Create(ctx context.Context, setup *models.Setup) error
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]models.Setup, error)
	FindByIDAndOwner(ctx context.Context, id, userID uuid.UUID) (*models.Setup, error)
	UpdateDerived(ctx context.Context, id, userID uuid.UUID, upd RebuildUpdate) (bool, error)
	Delete(ctx context.Context, id, userID uuid.UUID) (bool, error)
}

// Service generates, lists, edits and removes hardware setups.
type Service struct {
	repo        setupRepository
	games       GameLookup
	catalogPath string
	pick        hardware.Picker
	logg        *logger.Logger
	now         func() time.Time
}

// ServiceParams bundles the dependencies for the setups service.
type ServiceParams struct {
	Repo        setupRepository
	Games       GameLookup
	CatalogPath string
	Picker      hardware.Picker
	Logger      *logger.Logger
	Now         func() time.Time
}

// NewService constructs the setups service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("setup repository is required")
	}
	if params.Games == nil {
		return nil, fmt.Errorf("game lookup is required")
	}
	now := params.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Service{
		repo:        params.Repo,
		games:       params.Games,
		catalogPath: params.CatalogPath,
		pick:        params.Picker,
		logg:        params.Logger,
		now:         now,
	}, nil
}

// BuildForGame generates a setup without a declared budget. Difficulty is
// read from the game metadata and mapped to an assumed budget, so the stored
// tier still derives from a budget like every other setup.
func (s *Service) BuildForGame(ctx context.Context, userID uuid.UUID, gameID string) (*SetupDTO, error) {
	if strings.TrimSpace(gameID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "game id is required")
	}

	game := s.fetchGame(ctx, gameID)
	text := gameText(game)
	difficulty := hardware.ClassifyDifficulty(text)

	return s.buildAndPersist(ctx, userID, gameID, hardware.AssumedBudget(difficulty), game, text, difficulty)
}

// BuildWithBudget generates a setup priced against the declared budget.
func (s *Service) BuildWithBudget(ctx context.Context, userID uuid.UUID, gameID string, budget float64) (*SetupDTO, error) {
	if strings.TrimSpace(gameID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "game id is required")
	}
	if _, err := hardware.ClassifyBudget(budget); err != nil {
		return nil, err
	}

	game := s.fetchGame(ctx, gameID)
	text := gameText(game)
	difficulty := hardware.ClassifyDifficulty(text)

	return s.buildAndPersist(ctx, userID, gameID, budget, game, text, difficulty)
}

func (s *Service) buildAndPersist(
	ctx context.Context,
	userID uuid.UUID,
	gameID string,
	budget float64,
	game *rawg.Game,
	text string,
	difficulty hardware.Difficulty,
) (*SetupDTO, error) {
	tier, err := hardware.ClassifyBudget(budget)
	if err != nil {
		return nil, err
	}

	catalog := hardware.LoadCatalog(s.catalogPath)
	build := hardware.BuildSetup(tier, difficulty, catalog, s.pick)

	setup := &models.Setup{
		ID:             uuid.New(),
		UserID:         userID,
		GameID:         gameID,
		GameText:       text,
		Budget:         budget,
		Tier:           string(tier),
		Components:     build.Components,
		EstimatedPrice: build.EstimatedPrice,
	}
	if game != nil {
		if game.Name != "" {
			name := game.Name
			setup.GameName = &name
		}
		if game.BackgroundImage != "" {
			image := game.BackgroundImage
			setup.GameImage = &image
		}
	}

	if err := s.repo.Create(ctx, setup); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create setup")
	}
	return FromModel(setup), nil
}

// ListMine returns the user's setups in creation order.
func (s *Service) ListMine(ctx context.Context, userID uuid.UUID) ([]*SetupDTO, error) {
	list, err := s.repo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list setups")
	}
	return fromModels(list), nil
}

// UpdateBudget re-prices an existing setup. Tier, components, estimated price
// and updated_at are re-derived from the new budget and written in one
// owner-scoped row update.
func (s *Service) UpdateBudget(ctx context.Context, userID uuid.UUID, setupID string, budget float64) (*SetupDTO, error) {
	id, err := uuid.Parse(setupID)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, setupNotFoundMessage)
	}

	setup, err := s.repo.FindByIDAndOwner(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, setupNotFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find setup")
	}

	tier, err := hardware.ClassifyBudget(budget)
	if err != nil {
		return nil, err
	}

	difficulty := hardware.ClassifyDifficulty(storedText(setup))
	catalog := hardware.LoadCatalog(s.catalogPath)
	build := hardware.BuildSetup(tier, difficulty, catalog, s.pick)

	upd := RebuildUpdate{
		Budget:         budget,
		Tier:           string(tier),
		Components:     build.Components,
		EstimatedPrice: build.EstimatedPrice,
		UpdatedAt:      s.now(),
	}
	matched, err := s.repo.UpdateDerived(ctx, id, userID, upd)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update setup")
	}
	if !matched {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, setupNotFoundMessage)
	}

	setup.Budget = upd.Budget
	setup.Tier = upd.Tier
	setup.Components = upd.Components
	setup.EstimatedPrice = upd.EstimatedPrice
	updatedAt := upd.UpdatedAt
	setup.UpdatedAt = &updatedAt
	return FromModel(setup), nil
}

// Remove deletes one setup owned by the user.
func (s *Service) Remove(ctx context.Context, userID uuid.UUID, setupID string) error {
	id, err := uuid.Parse(setupID)
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, setupNotFoundMessage)
	}

	matched, err := s.repo.Delete(ctx, id, userID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete setup")
	}
	if !matched {
		return pkgerrors.New(pkgerrors.CodeNotFound, setupNotFoundMessage)
	}
	return nil
}

// fetchGame degrades to nil metadata when the catalog is unreachable so a
// build never fails on the upstream.
func (s *Service) fetchGame(ctx context.Context, gameID string) *rawg.Game {
	game, err := s.games.GetByID(ctx, gameID)
	if err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, "game metadata unavailable, building generic setup")
		}
		return nil
	}
	return game
}

func gameText(game *rawg.Game) string {
	if game == nil {
		return ""
	}
	return strings.ToLower(game.Name + " " + game.Description)
}

func storedText(setup *models.Setup) string {
	if setup.GameText != "" {
		return setup.GameText
	}
	// setups persisted before game_text existed fall back to the name
	if setup.GameName != nil {
		return strings.ToLower(*setup.GameName)
	}
	return ""
}
