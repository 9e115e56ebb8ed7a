package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/pressratelabs/pressrate/internal/catalog/domain"
	"github.com/pressratelabs/pressrate/internal/clock"
	pricingdomain "github.com/pressratelabs/pressrate/internal/pricing/domain"
	ratedomain "github.com/pressratelabs/pressrate/internal/rate/domain"
	taxdomain "github.com/pressratelabs/pressrate/internal/tax/domain"
	"github.com/pressratelabs/pressrate/pkg/currency"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	Clock       clock.Clock
	RateSvc     ratedomain.Service
	TaxSvc      taxdomain.Service
	CatalogRepo catalogdomain.Repository
	Formatter   *currency.Formatter
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	clock       clock.Clock
	rateSvc     ratedomain.Service
	taxSvc      taxdomain.Service
	catalogRepo catalogdomain.Repository
	formatter   *currency.Formatter
}

func New(p Params) pricingdomain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("pricing.service"),
		clock:       p.Clock,
		rateSvc:     p.RateSvc,
		taxSvc:      p.TaxSvc,
		catalogRepo: p.CatalogRepo,
		formatter:   p.Formatter,
	}
}

func (s *Service) Quote(ctx context.Context, req pricingdomain.QuoteRequest) (*pricingdomain.QuoteResponse, error) {
	start := time.Now()

	resp, err := s.quote(ctx, req)
	observeQuote(time.Since(start), err)
	return resp, err
}

func (s *Service) quote(ctx context.Context, req pricingdomain.QuoteRequest) (*pricingdomain.QuoteResponse, error) {
	dims, err := parseDimensionSet(req)
	if err != nil {
		return nil, err
	}
	if req.Insertions < 1 {
		return nil, pricingdomain.ErrInvalidInsertions
	}
	discountType := req.DiscountType
	switch discountType {
	case "":
		discountType = pricingdomain.DiscountFixed
	case pricingdomain.DiscountFixed, pricingdomain.DiscountPercentage:
	default:
		return nil, pricingdomain.ErrInvalidDiscount
	}
	if req.DiscountAmount.IsNegative() {
		return nil, pricingdomain.ErrInvalidDiscount
	}

	asOf := s.clock.Now(ctx)
	if req.AsOf != nil {
		asOf = req.AsOf.UTC()
	}

	record, err := s.rateSvc.FindExact(ctx, dims, asOf)
	if err != nil {
		return nil, err
	}

	rules, err := s.taxSvc.ApplicableRules(ctx, dims.PublicationID, asOf)
	if err != nil {
		return nil, err
	}

	result := Calculate(CalcInput{
		BaseRate:       record.BaseRate,
		Insertions:     req.Insertions,
		DiscountAmount: req.DiscountAmount,
		DiscountType:   discountType,
		Rules:          rules,
	})

	metadata, err := s.metadataFor(ctx, record)
	if err != nil {
		return nil, err
	}

	lines := make([]pricingdomain.TaxLine, 0, len(result.Lines))
	for _, line := range result.Lines {
		lines = append(lines, pricingdomain.TaxLine{
			Name:                     line.Rule.Name,
			Rate:                     line.Rule.Rate,
			Amount:                   line.Amount,
			AmountFormatted:          s.formatter.Format(line.Amount),
			Priority:                 line.Rule.Priority,
			ApplyOn:                  line.Rule.ApplyOn,
			DiscountApplicable:       line.Rule.DiscountApplicable,
			DiscountBeforeTax:        line.Rule.DiscountBeforeTax,
			CalculationBase:          line.CalculationBase,
			CalculationBaseFormatted: s.formatter.Format(line.CalculationBase),
		})
	}

	return &pricingdomain.QuoteResponse{
		RateID:     record.ID.String(),
		BaseRate:   record.BaseRate,
		Insertions: req.Insertions,

		BaseSubtotal:                   result.BaseSubtotal,
		BaseSubtotalFormatted:          s.formatter.Format(result.BaseSubtotal),
		DiscountAmount:                 result.DiscountAmount,
		DiscountAmountFormatted:        s.formatter.Format(result.DiscountAmount),
		SubtotalAfterDiscount:          result.SubtotalAfterDiscount,
		SubtotalAfterDiscountFormatted: s.formatter.Format(result.SubtotalAfterDiscount),

		TaxCalculations: lines,

		TotalTax:            result.TotalTax,
		TotalTaxFormatted:   s.formatter.Format(result.TotalTax),
		FinalTotal:          result.FinalTotal,
		FinalTotalFormatted: s.formatter.Format(result.FinalTotal),

		Currency: s.formatter.Code(),
		Metadata: metadata,
	}, nil
}

func (s *Service) metadataFor(ctx context.Context, record *ratedomain.RateRecord) (pricingdomain.QuoteMetadata, error) {
	metadata := pricingdomain.QuoteMetadata{
		EffectiveFrom: record.EffectiveFrom,
		EffectiveTo:   record.EffectiveTo,
	}

	targets := []struct {
		id  snowflake.ID
		dst *string
	}{
		{record.PublicationID, &metadata.PublicationName},
		{record.ColorTypeID, &metadata.ColorType},
		{record.AdCategoryID, &metadata.Category},
		{record.AdSizeID, &metadata.Size},
		{record.PagePositionID, &metadata.Position},
	}
	for _, target := range targets {
		entity, err := s.catalogRepo.FindByID(ctx, s.db, target.id)
		if err != nil {
			return pricingdomain.QuoteMetadata{}, err
		}
		if entity != nil {
			*target.dst = entity.Name
		}
	}
	return metadata, nil
}

func parseDimensionSet(req pricingdomain.QuoteRequest) (ratedomain.DimensionSet, error) {
	var dims ratedomain.DimensionSet

	targets := []struct {
		raw string
		dst *snowflake.ID
	}{
		{req.PublicationID, &dims.PublicationID},
		{req.ColorTypeID, &dims.ColorTypeID},
		{req.AdCategoryID, &dims.AdCategoryID},
		{req.AdSizeID, &dims.AdSizeID},
		{req.PagePositionID, &dims.PagePositionID},
	}
	for _, target := range targets {
		raw := strings.TrimSpace(target.raw)
		if raw == "" {
			return ratedomain.DimensionSet{}, pricingdomain.ErrMissingDimension
		}
		id, err := snowflake.ParseString(raw)
		if err != nil || id == 0 {
			return ratedomain.DimensionSet{}, pricingdomain.ErrMissingDimension
		}
		*target.dst = id
	}
	return dims, nil
}
