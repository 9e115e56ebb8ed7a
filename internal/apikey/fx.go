package apikey

import (
	"github.com/pressratelabs/pressrate/internal/apikey/repository"
	"github.com/pressratelabs/pressrate/internal/apikey/service"
	"go.uber.org/fx"
)

var Module = fx.Module("apikey.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.New),
)
