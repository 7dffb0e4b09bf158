package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gitforge/bossquest/internal/database/postgres"
	"github.com/gitforge/bossquest/internal/repository"
)

// Repositories holds all repository implementations used by the application.
// This provides a centralized location for repository initialization and
// makes dependency injection clearer.
type Repositories struct {
	Battle  repository.Battle
	Perks   repository.Perks
	Profile repository.Profile
}

// InitializeRepositories creates all repository implementations.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Battle:  postgres.NewBattleRepository(dbPool),
		Perks:   postgres.NewPerksRepository(dbPool),
		Profile: postgres.NewProfileRepository(dbPool),
	}
}
