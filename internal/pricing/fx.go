package pricing

import (
	"github.com/pressratelabs/pressrate/internal/config"
	"github.com/pressratelabs/pressrate/internal/pricing/service"
	"github.com/pressratelabs/pressrate/pkg/currency"
	"go.uber.org/fx"
)

var Module = fx.Module("pricing.service",
	fx.Provide(func(cfg *config.Config) *currency.Formatter {
		return currency.NewFormatter(cfg.Currency.Code, cfg.Currency.Symbol)
	}),
	fx.Provide(service.New),
)
