//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"github.com/manav1309/manavinverse-create-verse/internal/app"
)

var AppSet = wire.NewSet(app.New)

func InitializeApp() (*app.App, error) {
	panic(wire.Build(
		ConfigSet,
		ObservabilitySet,
		DatabaseSet,
		RepositorySet,
		SecuritySet,
		ServiceSet,
		HTTPSet,
		AppSet,
	))
}

func InitializeMigrationRunner() (*MigrationRunner, error) {
	panic(wire.Build(
		ConfigSet,
		NewMigrationRunner,
	))
}
