package catalog

import (
	"github.com/pressratelabs/pressrate/internal/catalog/repository"
	"github.com/pressratelabs/pressrate/internal/catalog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.New),
)
