package service

import (
	"context"
	"sort"
	"time"

	"github.com/bwmarrin/snowflake"
	taxdomain "github.com/pressratelabs/pressrate/internal/tax/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo taxdomain.Repository
}

type Resolver struct {
	db   *gorm.DB
	log  *zap.Logger
	repo taxdomain.Repository
}

func NewResolver(p Params) taxdomain.Service {
	return &Resolver{
		db:   p.DB,
		log:  p.Log.Named("tax.resolver"),
		repo: p.Repo,
	}
}

func (r *Resolver) ApplicableRules(ctx context.Context, publicationID snowflake.ID, asOf time.Time) ([]taxdomain.ResolvedTaxRule, error) {
	if publicationID == 0 {
		return nil, taxdomain.ErrInvalidPublication
	}

	configured, err := r.repo.ListConfiguredRules(ctx, r.db, publicationID, asOf)
	if err != nil {
		return nil, err
	}

	resolved := make([]taxdomain.ResolvedTaxRule, 0, len(configured))
	for _, c := range configured {
		resolved = append(resolved, Resolve(c.Rule, c.Override))
	}

	// Stable application order: priority ascending, ties by name. Order
	// matters because cumulative rules compound on earlier tax amounts.
	sort.SliceStable(resolved, func(i, j int) bool {
		if resolved[i].Priority != resolved[j].Priority {
			return resolved[i].Priority < resolved[j].Priority
		}
		return resolved[i].Name < resolved[j].Name
	})
	return resolved, nil
}

// Resolve collapses the two-tier rule/override structure into a fully
// populated value object. Defaults: vat-type rules run at priority 2 on the
// cumulative total, everything else at priority 1 on the discounted base;
// both discount flags default to true.
func Resolve(rule taxdomain.TaxRule, override *taxdomain.TaxRuleOverride) taxdomain.ResolvedTaxRule {
	out := taxdomain.ResolvedTaxRule{
		ID:                 rule.ID,
		Name:               rule.Name,
		Rate:               rule.Rate,
		TaxType:            rule.TaxType,
		Priority:           1,
		ApplyOn:            taxdomain.ApplyOnBase,
		DiscountApplicable: true,
		DiscountBeforeTax:  true,
	}
	if rule.TaxType == taxdomain.TaxTypeVAT {
		out.Priority = 2
		out.ApplyOn = taxdomain.ApplyOnCumulative
	}

	if rule.Priority != nil {
		out.Priority = *rule.Priority
	}
	if rule.ApplyOn != nil {
		out.ApplyOn = *rule.ApplyOn
	}
	if rule.DiscountApplicable != nil {
		out.DiscountApplicable = *rule.DiscountApplicable
	}
	if rule.DiscountBeforeTax != nil {
		out.DiscountBeforeTax = *rule.DiscountBeforeTax
	}

	if override != nil {
		if override.Priority != nil {
			out.Priority = *override.Priority
		}
		if override.ApplyOn != nil {
			out.ApplyOn = *override.ApplyOn
		}
		if override.DiscountApplicable != nil {
			out.DiscountApplicable = *override.DiscountApplicable
		}
		if override.DiscountBeforeTax != nil {
			out.DiscountBeforeTax = *override.DiscountBeforeTax
		}
	}
	return out
}
