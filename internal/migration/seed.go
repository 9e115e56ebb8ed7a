package migration

import (
	"context"
	"database/sql"
	"fmt"
)

// seedStatutoryTaxRules inserts the standard Ghanaian levies on first run.
// NHIL, GETFund and the COVID levy apply on the discounted base; VAT is
// cumulative, taxing the base plus those levies. Idempotent: seeded rows are
// keyed by fixed ids and skipped when present.
func seedStatutoryTaxRules(ctx context.Context, db *sql.DB) error {
	rules := []struct {
		id      int64
		name    string
		rate    string
		taxType string
	}{
		{1, "NHIL", "2.5", "levy"},
		{2, "GETFund Levy", "2.5", "levy"},
		{3, "COVID-19 Levy", "1.0", "levy"},
		{4, "VAT", "15.0", "vat"},
	}

	for _, rule := range rules {
		_, err := db.ExecContext(ctx,
			`INSERT INTO tax_rules (id, name, rate, tax_type, effective_from, status)
			 VALUES ($1, $2, $3, $4, '2023-01-01', 'active')
			 ON CONFLICT (id) DO NOTHING`,
			rule.id, rule.name, rule.rate, rule.taxType,
		)
		if err != nil {
			return fmt.Errorf("seed tax rule %s: %w", rule.name, err)
		}
	}
	return nil
}
