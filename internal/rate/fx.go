package rate

import (
	"github.com/pressratelabs/pressrate/internal/rate/repository"
	"github.com/pressratelabs/pressrate/internal/rate/service"
	"go.uber.org/fx"
)

var Module = fx.Module("rate.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.New),
)
