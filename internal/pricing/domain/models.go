// Package domain defines the price quote contract: inputs supplied by the
// interactive calculator surface and the full per-rule breakdown it returns.
package domain

import (
	"context"
	"errors"
	"time"

	ratedomain "github.com/pressratelabs/pressrate/internal/rate/domain"
	taxdomain "github.com/pressratelabs/pressrate/internal/tax/domain"
	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountFixed      DiscountType = "fixed"
	DiscountPercentage DiscountType = "percentage"
)

type Service interface {
	// Quote resolves the rate for the given dimension tuple, fetches the
	// publication's tax rules and computes the full breakdown. Results are
	// computed fresh on every call; rates and rules may change between calls.
	Quote(ctx context.Context, req QuoteRequest) (*QuoteResponse, error)
}

type QuoteRequest struct {
	PublicationID  string          `json:"publication_id"`
	ColorTypeID    string          `json:"color_type_id"`
	AdCategoryID   string          `json:"ad_category_id"`
	AdSizeID       string          `json:"ad_size_id"`
	PagePositionID string          `json:"page_position_id"`
	Insertions     int             `json:"insertions"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	DiscountType   DiscountType    `json:"discount_type,omitempty"`
	AsOf           *time.Time      `json:"as_of,omitempty"`
}

// TaxLine is one applied rule in application order.
type TaxLine struct {
	Name                     string            `json:"name"`
	Rate                     decimal.Decimal   `json:"rate"`
	Amount                   decimal.Decimal   `json:"amount"`
	AmountFormatted          string            `json:"amount_formatted"`
	Priority                 int               `json:"priority"`
	ApplyOn                  taxdomain.ApplyOn `json:"apply_on"`
	DiscountApplicable       bool              `json:"discount_applicable"`
	DiscountBeforeTax        bool              `json:"discount_before_tax"`
	CalculationBase          decimal.Decimal   `json:"calculation_base"`
	CalculationBaseFormatted string            `json:"calculation_base_formatted"`
}

// QuoteMetadata echoes the resolved dimension names and the rate's window.
type QuoteMetadata struct {
	PublicationName string     `json:"publication_name"`
	ColorType       string     `json:"color_type"`
	Category        string     `json:"category"`
	Size            string     `json:"size"`
	Position        string     `json:"position"`
	EffectiveFrom   time.Time  `json:"effective_from"`
	EffectiveTo     *time.Time `json:"effective_to,omitempty"`
}

type QuoteResponse struct {
	RateID     string          `json:"rate_id"`
	BaseRate   decimal.Decimal `json:"base_rate"`
	Insertions int             `json:"insertions"`

	BaseSubtotal                   decimal.Decimal `json:"base_subtotal"`
	BaseSubtotalFormatted          string          `json:"base_subtotal_formatted"`
	DiscountAmount                 decimal.Decimal `json:"discount_amount"`
	DiscountAmountFormatted        string          `json:"discount_amount_formatted"`
	SubtotalAfterDiscount          decimal.Decimal `json:"subtotal_after_discount"`
	SubtotalAfterDiscountFormatted string          `json:"subtotal_after_discount_formatted"`

	TaxCalculations []TaxLine `json:"tax_calculations"`

	TotalTax            decimal.Decimal `json:"total_tax"`
	TotalTaxFormatted   string          `json:"total_tax_formatted"`
	FinalTotal          decimal.Decimal `json:"final_total"`
	FinalTotalFormatted string          `json:"final_total_formatted"`

	Currency string        `json:"currency"`
	Metadata QuoteMetadata `json:"metadata"`
}

var (
	ErrInvalidInsertions = errors.New("invalid_insertions")
	ErrInvalidDiscount   = errors.New("invalid_discount")
	ErrMissingDimension  = ratedomain.ErrMissingDimension
	ErrNoRateFound       = ratedomain.ErrNoRateFound
)
