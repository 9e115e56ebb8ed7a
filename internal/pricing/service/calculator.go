package service

import (
	pricingdomain "github.com/pressratelabs/pressrate/internal/pricing/domain"
	taxdomain "github.com/pressratelabs/pressrate/internal/tax/domain"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// CalcInput is everything the cascade needs; rules must already be resolved
// and in application order.
type CalcInput struct {
	BaseRate       decimal.Decimal
	Insertions     int
	DiscountAmount decimal.Decimal
	DiscountType   pricingdomain.DiscountType
	Rules          []taxdomain.ResolvedTaxRule
}

type CalcLine struct {
	Rule            taxdomain.ResolvedTaxRule
	Amount          decimal.Decimal
	CalculationBase decimal.Decimal
}

type CalcResult struct {
	BaseSubtotal          decimal.Decimal
	DiscountAmount        decimal.Decimal
	SubtotalAfterDiscount decimal.Decimal
	Lines                 []CalcLine
	TotalTax              decimal.Decimal
	FinalTotal            decimal.Decimal
}

// Calculate runs the cascading tax algorithm. It is pure: no I/O, no shared
// state, deterministic for fixed inputs.
//
// Each rule taxes either the discounted subtotal (base) or the running total
// accumulated so far (cumulative); cumulative rules then add their own tax
// amount to that running total, so later cumulative rules compound on it.
// A rule with discount_before_tax=false is taxed as if the discount had not
// been applied: the discount amount is re-added to whichever base the rule
// selected. An over-discount is not clamped; a negative subtotal flows
// through the cascade unchanged.
func Calculate(in CalcInput) CalcResult {
	insertions := decimal.NewFromInt(int64(in.Insertions))
	baseSubtotal := in.BaseRate.Mul(insertions)

	discount := decimal.Zero
	if in.DiscountAmount.IsPositive() {
		if in.DiscountType == pricingdomain.DiscountPercentage {
			discount = baseSubtotal.Mul(in.DiscountAmount).Div(oneHundred)
		} else {
			discount = in.DiscountAmount
		}
	}
	discountGiven := discount.IsPositive()

	subtotalAfterDiscount := baseSubtotal.Sub(discount)
	runningTotal := subtotalAfterDiscount
	totalTax := decimal.Zero

	lines := make([]CalcLine, 0, len(in.Rules))
	for _, rule := range in.Rules {
		base := subtotalAfterDiscount
		if rule.ApplyOn == taxdomain.ApplyOnCumulative {
			base = runningTotal
		}

		taxable := base
		if discountGiven && rule.DiscountApplicable && !rule.DiscountBeforeTax {
			taxable = base.Add(discount)
		}
		amount := taxable.Mul(rule.Rate).Div(oneHundred)

		lines = append(lines, CalcLine{
			Rule:            rule,
			Amount:          amount,
			CalculationBase: base,
		})
		totalTax = totalTax.Add(amount)

		if rule.ApplyOn == taxdomain.ApplyOnCumulative {
			runningTotal = runningTotal.Add(amount)
		}
	}

	return CalcResult{
		BaseSubtotal:          baseSubtotal,
		DiscountAmount:        discount,
		SubtotalAfterDiscount: subtotalAfterDiscount,
		Lines:                 lines,
		TotalTax:              totalTax,
		FinalTotal:            subtotalAfterDiscount.Add(totalTax),
	}
}
