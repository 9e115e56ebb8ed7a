package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// ConfiguredRule is one joined row: the rule, its configuration, and the
// optional override for that configuration.
type ConfiguredRule struct {
	Rule     TaxRule
	Override *TaxRuleOverride
}

type Repository interface {
	// ListConfiguredRules returns the publication's active, non-deleted
	// configurations joined to active tax rules effective at asOf.
	ListConfiguredRules(ctx context.Context, db *gorm.DB, publicationID snowflake.ID, asOf time.Time) ([]ConfiguredRule, error)
}
