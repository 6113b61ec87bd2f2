//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/tds/internal/config"
)

func InitializeApp(cfg *config.Config) (*App, error) {
	wire.Build(SimSet)
	return nil, nil
}
