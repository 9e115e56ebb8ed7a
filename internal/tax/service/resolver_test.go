package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	taxdomain "github.com/pressratelabs/pressrate/internal/tax/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func applyOnPtr(v taxdomain.ApplyOn) *taxdomain.ApplyOn { return &v }

func TestResolveDefaultsForVAT(t *testing.T) {
	resolved := Resolve(taxdomain.TaxRule{
		ID:      1,
		Name:    "VAT",
		Rate:    decimal.NewFromInt(15),
		TaxType: taxdomain.TaxTypeVAT,
	}, nil)

	require.Equal(t, 2, resolved.Priority)
	require.Equal(t, taxdomain.ApplyOnCumulative, resolved.ApplyOn)
	require.True(t, resolved.DiscountApplicable)
	require.True(t, resolved.DiscountBeforeTax)
}

func TestResolveDefaultsForNonVAT(t *testing.T) {
	resolved := Resolve(taxdomain.TaxRule{
		ID:      2,
		Name:    "NHIL",
		Rate:    decimal.RequireFromString("2.5"),
		TaxType: "levy",
	}, nil)

	require.Equal(t, 1, resolved.Priority)
	require.Equal(t, taxdomain.ApplyOnBase, resolved.ApplyOn)
}

func TestResolveRuleFieldsBeatDefaults(t *testing.T) {
	resolved := Resolve(taxdomain.TaxRule{
		ID:                 3,
		Name:               "VAT",
		Rate:               decimal.NewFromInt(15),
		TaxType:            taxdomain.TaxTypeVAT,
		Priority:           intPtr(7),
		ApplyOn:            applyOnPtr(taxdomain.ApplyOnBase),
		DiscountApplicable: boolPtr(false),
	}, nil)

	require.Equal(t, 7, resolved.Priority)
	require.Equal(t, taxdomain.ApplyOnBase, resolved.ApplyOn)
	require.False(t, resolved.DiscountApplicable)
	require.True(t, resolved.DiscountBeforeTax)
}

func TestResolveOverrideBeatsRule(t *testing.T) {
	resolved := Resolve(taxdomain.TaxRule{
		ID:       4,
		Name:     "NHIL",
		Rate:     decimal.RequireFromString("2.5"),
		TaxType:  "levy",
		Priority: intPtr(3),
	}, &taxdomain.TaxRuleOverride{
		Priority:          intPtr(9),
		ApplyOn:           applyOnPtr(taxdomain.ApplyOnCumulative),
		DiscountBeforeTax: boolPtr(false),
	})

	require.Equal(t, 9, resolved.Priority)
	require.Equal(t, taxdomain.ApplyOnCumulative, resolved.ApplyOn)
	require.False(t, resolved.DiscountBeforeTax)
	require.True(t, resolved.DiscountApplicable)
}

type stubTaxRepo struct {
	configured []taxdomain.ConfiguredRule
}

func (s *stubTaxRepo) ListConfiguredRules(ctx context.Context, db *gorm.DB, publicationID snowflake.ID, asOf time.Time) ([]taxdomain.ConfiguredRule, error) {
	return s.configured, nil
}

func TestApplicableRulesOrdering(t *testing.T) {
	repo := &stubTaxRepo{configured: []taxdomain.ConfiguredRule{
		{Rule: taxdomain.TaxRule{ID: 1, Name: "VAT", Rate: decimal.NewFromInt(15), TaxType: taxdomain.TaxTypeVAT}},
		{Rule: taxdomain.TaxRule{ID: 2, Name: "NHIL", Rate: decimal.RequireFromString("2.5"), TaxType: "levy"}},
		{Rule: taxdomain.TaxRule{ID: 3, Name: "GETFund Levy", Rate: decimal.RequireFromString("2.5"), TaxType: "levy"}},
	}}
	resolver := &Resolver{log: zap.NewNop(), repo: repo}

	rules, err := resolver.ApplicableRules(context.Background(), 42, time.Now())
	require.NoError(t, err)
	require.Len(t, rules, 3)

	// Priority 1 levies first (name ties broken alphabetically), VAT last.
	require.Equal(t, "GETFund Levy", rules[0].Name)
	require.Equal(t, "NHIL", rules[1].Name)
	require.Equal(t, "VAT", rules[2].Name)
}

func TestApplicableRulesRequiresPublication(t *testing.T) {
	resolver := &Resolver{log: zap.NewNop(), repo: &stubTaxRepo{}}

	_, err := resolver.ApplicableRules(context.Background(), 0, time.Now())
	require.ErrorIs(t, err, taxdomain.ErrInvalidPublication)
}
