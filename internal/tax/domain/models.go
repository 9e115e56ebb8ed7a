// Package domain contains tax rule models. Rules attach to publications
// through configurations; a configuration may carry an override row refining
// the rule's priority and application flags. This engine only reads them;
// tax setup is administered elsewhere.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ApplyOn string

const (
	ApplyOnBase       ApplyOn = "base"
	ApplyOnCumulative ApplyOn = "cumulative"
)

const TaxTypeVAT = "vat"

type TaxRule struct {
	ID                 snowflake.ID    `gorm:"primaryKey" json:"id"`
	Name               string          `gorm:"type:text;not null" json:"name"`
	Rate               decimal.Decimal `gorm:"type:decimal(7,4);not null" json:"rate"`
	TaxType            string          `gorm:"type:text;not null" json:"tax_type"`
	Priority           *int            `gorm:"" json:"priority,omitempty"`
	ApplyOn            *ApplyOn        `gorm:"type:text" json:"apply_on,omitempty"`
	DiscountApplicable *bool           `json:"discount_applicable,omitempty"`
	DiscountBeforeTax  *bool           `json:"discount_before_tax,omitempty"`
	EffectiveFrom      time.Time       `gorm:"type:date;not null" json:"effective_from"`
	EffectiveTo        *time.Time      `gorm:"type:date" json:"effective_to,omitempty"`
	Status             string          `gorm:"type:text;not null;default:active" json:"status"`
	CreatedAt          time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt          gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (TaxRule) TableName() string { return "tax_rules" }

// TaxConfiguration joins a publication to a tax rule.
type TaxConfiguration struct {
	ID            snowflake.ID   `gorm:"primaryKey" json:"id"`
	PublicationID snowflake.ID   `gorm:"not null;index" json:"publication_id"`
	TaxRuleID     snowflake.ID   `gorm:"not null;index" json:"tax_rule_id"`
	Status        string         `gorm:"type:text;not null;default:active" json:"status"`
	CreatedAt     time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (TaxConfiguration) TableName() string { return "tax_configurations" }

// TaxRuleOverride refines a rule per configuration; nil fields fall through
// to the rule, then to the tax-type defaults.
type TaxRuleOverride struct {
	ID                 snowflake.ID   `gorm:"primaryKey" json:"id"`
	ConfigurationID    snowflake.ID   `gorm:"not null;uniqueIndex" json:"configuration_id"`
	Priority           *int           `json:"priority,omitempty"`
	ApplyOn            *ApplyOn       `gorm:"type:text" json:"apply_on,omitempty"`
	DiscountApplicable *bool          `json:"discount_applicable,omitempty"`
	DiscountBeforeTax  *bool          `json:"discount_before_tax,omitempty"`
	CreatedAt          time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (TaxRuleOverride) TableName() string { return "tax_rule_overrides" }

// ResolvedTaxRule is the fully-populated value object handed to the
// calculator; defaulting happens here exactly once, never inline during
// calculation.
type ResolvedTaxRule struct {
	ID                 snowflake.ID    `json:"id"`
	Name               string          `json:"name"`
	Rate               decimal.Decimal `json:"rate"`
	TaxType            string          `json:"tax_type"`
	Priority           int             `json:"priority"`
	ApplyOn            ApplyOn         `json:"apply_on"`
	DiscountApplicable bool            `json:"discount_applicable"`
	DiscountBeforeTax  bool            `json:"discount_before_tax"`
}
