package tax

import (
	"github.com/pressratelabs/pressrate/internal/tax/repository"
	"github.com/pressratelabs/pressrate/internal/tax/service"
	"go.uber.org/fx"
)

var Module = fx.Module("tax.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewResolver),
)
