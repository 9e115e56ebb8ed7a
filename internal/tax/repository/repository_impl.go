package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	taxdomain "github.com/pressratelabs/pressrate/internal/tax/domain"
	"gorm.io/gorm"
)

type repository struct{}

func NewRepository() taxdomain.Repository {
	return &repository{}
}

func (r *repository) ListConfiguredRules(ctx context.Context, db *gorm.DB, publicationID snowflake.ID, asOf time.Time) ([]taxdomain.ConfiguredRule, error) {
	var configs []taxdomain.TaxConfiguration
	err := db.WithContext(ctx).
		Where("publication_id = ? AND status = ?", publicationID, "active").
		Find(&configs).Error
	if err != nil {
		return nil, err
	}
	if len(configs) == 0 {
		return nil, nil
	}

	ruleIDs := make([]snowflake.ID, 0, len(configs))
	configIDs := make([]snowflake.ID, 0, len(configs))
	ruleByConfig := make(map[snowflake.ID]snowflake.ID, len(configs))
	for _, c := range configs {
		ruleIDs = append(ruleIDs, c.TaxRuleID)
		configIDs = append(configIDs, c.ID)
		ruleByConfig[c.ID] = c.TaxRuleID
	}

	var rules []taxdomain.TaxRule
	err = db.WithContext(ctx).
		Where("id IN ?", ruleIDs).
		Where("status = ?", "active").
		Where("effective_from <= ?", asOf).
		Where("effective_to IS NULL OR effective_to >= ?", asOf).
		Find(&rules).Error
	if err != nil {
		return nil, err
	}

	var overrides []taxdomain.TaxRuleOverride
	err = db.WithContext(ctx).
		Where("configuration_id IN ?", configIDs).
		Find(&overrides).Error
	if err != nil {
		return nil, err
	}

	overrideByConfig := make(map[snowflake.ID]*taxdomain.TaxRuleOverride, len(overrides))
	for i := range overrides {
		overrideByConfig[overrides[i].ConfigurationID] = &overrides[i]
	}
	ruleByID := make(map[snowflake.ID]taxdomain.TaxRule, len(rules))
	for _, rule := range rules {
		ruleByID[rule.ID] = rule
	}

	out := make([]taxdomain.ConfiguredRule, 0, len(configs))
	for _, c := range configs {
		rule, ok := ruleByID[ruleByConfig[c.ID]]
		if !ok {
			// Rule inactive or outside its effective window.
			continue
		}
		out = append(out, taxdomain.ConfiguredRule{
			Rule:     rule,
			Override: overrideByConfig[c.ID],
		})
	}
	return out, nil
}
