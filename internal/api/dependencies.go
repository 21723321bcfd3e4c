package api

import (
	"time"

	"journal-transporter/transporter/internal/common"
	"journal-transporter/transporter/internal/config"
	"journal-transporter/transporter/internal/db/repositories"
	"journal-transporter/transporter/internal/mappers"
	"journal-transporter/transporter/internal/metrics"
	"journal-transporter/transporter/internal/storage"
	"journal-transporter/transporter/internal/transport"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

type Repositories struct {
	Keys     *repositories.KeysRepo
	Settings *repositories.SettingsRepository
}

type Services struct {
	Cache     common.CacheInterface
	Resolver  *transport.Resolver
	Files     *storage.LocalStore
	Importers *mappers.Set
	Metrics   *metrics.MetricsRegistry
}

type Dependencies struct {
	Config   *config.Config
	Install  *config.Install
	ORM      *gorm.DB
	SQL      *sqlx.DB
	Repo     *Repositories
	Services *Services
}

// InitDependencies wires repositories and importers over already opened
// connections. metricsReg may be nil when nothing is scraped (the CLI).
func InitDependencies(cfg *config.Config, install *config.Install, orm *gorm.DB, sqlDB *sqlx.DB, cache common.CacheInterface, metricsReg *metrics.MetricsRegistry) *Dependencies {
	repos := &Repositories{
		Settings: repositories.NewSettingsRepository(orm),
	}
	if sqlDB != nil {
		repos.Keys = repositories.NewApiKeysRepo(sqlDB)
	}

	files := storage.NewLocalStore(cfg.FilesRoot)
	resolver := transport.NewResolver(orm, cache)

	deps := transport.Deps{
		DB:       orm,
		Resolver: resolver,
		Settings: repos.Settings,
		Now:      time.Now,
	}
	if metricsReg != nil {
		deps.Observer = metricsReg
	}

	env := &mappers.Env{
		Files:         files,
		Install:       install,
		DefaultDomain: cfg.DefaultDomain,
	}

	return &Dependencies{
		Config:  cfg,
		Install: install,
		ORM:     orm,
		SQL:     sqlDB,
		Repo:    repos,
		Services: &Services{
			Cache:     cache,
			Resolver:  resolver,
			Files:     files,
			Importers: mappers.NewSet(env, deps),
			Metrics:   metricsReg,
		},
	}
}
