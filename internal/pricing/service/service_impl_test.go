package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	catalogdomain "github.com/pressratelabs/pressrate/internal/catalog/domain"
	catalogrepo "github.com/pressratelabs/pressrate/internal/catalog/repository"
	catalogservice "github.com/pressratelabs/pressrate/internal/catalog/service"
	"github.com/pressratelabs/pressrate/internal/clock"
	"github.com/pressratelabs/pressrate/internal/config"
	pricingdomain "github.com/pressratelabs/pressrate/internal/pricing/domain"
	ratedomain "github.com/pressratelabs/pressrate/internal/rate/domain"
	raterepo "github.com/pressratelabs/pressrate/internal/rate/repository"
	rateservice "github.com/pressratelabs/pressrate/internal/rate/service"
	taxdomain "github.com/pressratelabs/pressrate/internal/tax/domain"
	taxrepo "github.com/pressratelabs/pressrate/internal/tax/repository"
	taxservice "github.com/pressratelabs/pressrate/internal/tax/service"
	"github.com/pressratelabs/pressrate/pkg/currency"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type quoteFixture struct {
	svc  pricingdomain.Service
	db   *gorm.DB
	node *snowflake.Node
	rate *ratedomain.RateRecord
}

func newQuoteFixture(t *testing.T) *quoteFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&catalogdomain.DimensionEntity{},
		&ratedomain.RateRecord{},
		&ratedomain.Booking{},
		&taxdomain.TaxRule{},
		&taxdomain.TaxConfiguration{},
		&taxdomain.TaxRuleOverride{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Similarity.Threshold = 85

	catalogSvc := catalogservice.New(catalogservice.Params{
		DB:     db,
		Log:    zap.NewNop(),
		GenID:  node,
		Config: cfg,
		Repo:   catalogrepo.NewRepository(),
	})
	rateSvc := rateservice.New(rateservice.Params{
		DB:      db,
		Log:     zap.NewNop(),
		GenID:   node,
		Repo:    raterepo.NewRepository(),
		Catalog: catalogSvc,
	})
	taxSvc := taxservice.NewResolver(taxservice.Params{
		DB:   db,
		Log:  zap.NewNop(),
		Repo: taxrepo.NewRepository(),
	})
	pricingSvc := New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		Clock:       clock.SystemClock{},
		RateSvc:     rateSvc,
		TaxSvc:      taxSvc,
		CatalogRepo: catalogrepo.NewRepository(),
		Formatter:   currency.NewFormatter("GHS", "GH₵"),
	})

	record, err := rateSvc.Create(context.Background(), ratedomain.CreateRequest{
		Dimensions: ratedomain.RawDimensions{
			PublicationCode: "DG",
			PublicationName: "Daily Graphic",
			ColorType:       "Full Colour",
			AdCategory:      "Corporate",
			AdSize:          "Full Page",
			PagePosition:    "Inside Page",
		},
		BaseRate:      decimal.RequireFromString("500.00"),
		EffectiveFrom: mustDate("2026-01-01"),
	})
	require.NoError(t, err)

	return &quoteFixture{svc: pricingSvc, db: db, node: node, rate: record}
}

func mustDate(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

// addTaxRule attaches a rule to the fixture's publication via a
// configuration row.
func (f *quoteFixture) addTaxRule(t *testing.T, rule taxdomain.TaxRule) {
	t.Helper()

	rule.ID = f.node.Generate()
	if rule.EffectiveFrom.IsZero() {
		rule.EffectiveFrom = mustDate("2025-01-01")
	}
	rule.Status = "active"
	require.NoError(t, f.db.Create(&rule).Error)
	require.NoError(t, f.db.Create(&taxdomain.TaxConfiguration{
		ID:            f.node.Generate(),
		PublicationID: f.rate.PublicationID,
		TaxRuleID:     rule.ID,
		Status:        "active",
	}).Error)
}

func (f *quoteFixture) baseRequest() pricingdomain.QuoteRequest {
	asOf := mustDate("2026-03-01")
	return pricingdomain.QuoteRequest{
		PublicationID:  f.rate.PublicationID.String(),
		ColorTypeID:    f.rate.ColorTypeID.String(),
		AdCategoryID:   f.rate.AdCategoryID.String(),
		AdSizeID:       f.rate.AdSizeID.String(),
		PagePositionID: f.rate.PagePositionID.String(),
		Insertions:     2,
		AsOf:           &asOf,
	}
}

func TestQuoteWithoutTaxRules(t *testing.T) {
	f := newQuoteFixture(t)

	resp, err := f.svc.Quote(context.Background(), f.baseRequest())
	require.NoError(t, err)

	require.True(t, decimal.RequireFromString("1000.00").Equal(resp.BaseSubtotal))
	require.True(t, decimal.Zero.Equal(resp.TotalTax))
	require.True(t, decimal.RequireFromString("1000.00").Equal(resp.FinalTotal))
	require.Equal(t, "GH₵1,000.00", resp.FinalTotalFormatted)
	require.Equal(t, "GHS", resp.Currency)
	require.Equal(t, "DAILY GRAPHIC", resp.Metadata.PublicationName)
	require.Empty(t, resp.TaxCalculations)
}

func TestQuoteWithVAT(t *testing.T) {
	f := newQuoteFixture(t)
	f.addTaxRule(t, taxdomain.TaxRule{
		Name:    "VAT",
		Rate:    decimal.NewFromInt(15),
		TaxType: taxdomain.TaxTypeVAT,
	})

	resp, err := f.svc.Quote(context.Background(), f.baseRequest())
	require.NoError(t, err)

	require.Len(t, resp.TaxCalculations, 1)
	require.True(t, decimal.RequireFromString("150.00").Equal(resp.TaxCalculations[0].Amount.Round(2)))
	require.True(t, decimal.RequireFromString("1150.00").Equal(resp.FinalTotal.Round(2)))
	require.Equal(t, "GH₵1,150.00", resp.FinalTotalFormatted)
}

func TestQuoteStatutoryCascade(t *testing.T) {
	f := newQuoteFixture(t)
	f.addTaxRule(t, taxdomain.TaxRule{Name: "NHIL", Rate: decimal.RequireFromString("2.5"), TaxType: "levy"})
	f.addTaxRule(t, taxdomain.TaxRule{Name: "GETFund Levy", Rate: decimal.RequireFromString("2.5"), TaxType: "levy"})
	f.addTaxRule(t, taxdomain.TaxRule{Name: "VAT", Rate: decimal.NewFromInt(15), TaxType: taxdomain.TaxTypeVAT})

	resp, err := f.svc.Quote(context.Background(), f.baseRequest())
	require.NoError(t, err)
	require.Len(t, resp.TaxCalculations, 3)

	// Levies on the base (25 each); VAT compounds on 1000 only through the
	// running total, which base-applied rules do not feed.
	require.Equal(t, "GETFund Levy", resp.TaxCalculations[0].Name)
	require.Equal(t, "NHIL", resp.TaxCalculations[1].Name)
	require.Equal(t, "VAT", resp.TaxCalculations[2].Name)
	require.True(t, decimal.RequireFromString("25.00").Equal(resp.TaxCalculations[0].Amount.Round(2)))
	require.True(t, decimal.RequireFromString("150.00").Equal(resp.TaxCalculations[2].Amount.Round(2)))
	require.True(t, decimal.RequireFromString("200.00").Equal(resp.TotalTax.Round(2)))
	require.True(t, decimal.RequireFromString("1200.00").Equal(resp.FinalTotal.Round(2)))
}

func TestQuoteValidation(t *testing.T) {
	f := newQuoteFixture(t)
	ctx := context.Background()

	req := f.baseRequest()
	req.Insertions = 0
	_, err := f.svc.Quote(ctx, req)
	require.ErrorIs(t, err, pricingdomain.ErrInvalidInsertions)

	req = f.baseRequest()
	req.DiscountAmount = decimal.RequireFromString("-5")
	_, err = f.svc.Quote(ctx, req)
	require.ErrorIs(t, err, pricingdomain.ErrInvalidDiscount)

	req = f.baseRequest()
	req.DiscountType = "coupon"
	req.DiscountAmount = decimal.NewFromInt(10)
	_, err = f.svc.Quote(ctx, req)
	require.ErrorIs(t, err, pricingdomain.ErrInvalidDiscount)

	req = f.baseRequest()
	req.AdSizeID = ""
	_, err = f.svc.Quote(ctx, req)
	require.ErrorIs(t, err, pricingdomain.ErrMissingDimension)
}

func TestQuoteNoRateForTuple(t *testing.T) {
	f := newQuoteFixture(t)

	req := f.baseRequest()
	req.AdSizeID = f.node.Generate().String()
	_, err := f.svc.Quote(context.Background(), req)
	require.ErrorIs(t, err, pricingdomain.ErrNoRateFound)

	// Quote date outside the rate's window.
	req = f.baseRequest()
	before := mustDate("2025-06-01")
	req.AsOf = &before
	_, err = f.svc.Quote(context.Background(), req)
	require.ErrorIs(t, err, pricingdomain.ErrNoRateFound)
}

func TestQuoteWithDiscount(t *testing.T) {
	f := newQuoteFixture(t)
	f.addTaxRule(t, taxdomain.TaxRule{Name: "NHIL", Rate: decimal.NewFromInt(5), TaxType: "levy"})

	req := f.baseRequest()
	req.DiscountAmount = decimal.NewFromInt(100)
	req.DiscountType = pricingdomain.DiscountFixed

	resp, err := f.svc.Quote(context.Background(), req)
	require.NoError(t, err)

	require.True(t, decimal.RequireFromString("900.00").Equal(resp.SubtotalAfterDiscount))
	require.True(t, decimal.RequireFromString("45.00").Equal(resp.TaxCalculations[0].Amount.Round(2)))
	require.True(t, decimal.RequireFromString("945.00").Equal(resp.FinalTotal.Round(2)))
	require.Equal(t, "GH₵945.00", resp.FinalTotalFormatted)
}
