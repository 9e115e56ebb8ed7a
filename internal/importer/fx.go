package importer

import (
	"github.com/pressratelabs/pressrate/internal/importer/repository"
	"github.com/pressratelabs/pressrate/internal/importer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("importer.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.New),
)
