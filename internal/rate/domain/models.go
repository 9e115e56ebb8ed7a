// Package domain contains the rate catalog models. A rate is keyed by the
// five resolved dimension ids plus its effective-from date; records with the
// same dimensions but different effective-from dates form the rate's history.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RateStatus string

const (
	StatusActive   RateStatus = "active"
	StatusInactive RateStatus = "inactive"
)

// DimensionSet is the resolved 5-tuple a rate is keyed by.
type DimensionSet struct {
	PublicationID  snowflake.ID `gorm:"column:publication_id;not null;index" json:"publication_id"`
	ColorTypeID    snowflake.ID `gorm:"column:color_type_id;not null" json:"color_type_id"`
	AdCategoryID   snowflake.ID `gorm:"column:ad_category_id;not null" json:"ad_category_id"`
	AdSizeID       snowflake.ID `gorm:"column:ad_size_id;not null" json:"ad_size_id"`
	PagePositionID snowflake.ID `gorm:"column:page_position_id;not null" json:"page_position_id"`
}

func (d DimensionSet) Complete() bool {
	return d.PublicationID != 0 && d.ColorTypeID != 0 && d.AdCategoryID != 0 &&
		d.AdSizeID != 0 && d.PagePositionID != 0
}

type RateRecord struct {
	ID            snowflake.ID    `gorm:"primaryKey" json:"id"`
	DimensionSet  `json:"dimensions"`
	BaseRate      decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"base_rate"`
	EffectiveFrom time.Time       `gorm:"type:date;not null" json:"effective_from"`
	EffectiveTo   *time.Time      `gorm:"type:date" json:"effective_to,omitempty"`
	Status        RateStatus      `gorm:"type:text;not null;default:active" json:"status"`
	Notes         string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy     snowflake.ID    `gorm:"not null" json:"created_by"`
	CreatedAt     time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (RateRecord) TableName() string { return "rate_records" }

// Booking rows are owned by the booking module; only the reference check
// lives here, to block edits and deletes of rates already sold against.
type Booking struct {
	ID        snowflake.ID   `gorm:"primaryKey"`
	RateID    snowflake.ID   `gorm:"not null;index"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Booking) TableName() string { return "bookings" }
