package app

import (
	"impactready/internal/cache"
	"impactready/internal/repository"
)

// App bundles the persistence layer for wiring and for tooling such as the
// catalog seeder.
type App struct {
	CatalogRepo   repository.CatalogRepo
	RunRepo       repository.RunRepo
	AnswerRepo    repository.AnswerRepo
	ResultRepo    repository.ResultRepo
	UserRepo      repository.UserRepo
	RunCache      cache.RunCache
	CooldownCache cache.CooldownCache
	ProgressCache cache.ProgressCache
	ResultCache   cache.ResultCache
}
