// Package domain contains the canonical dimension catalog models. A dimension
// is one of the five rate-determining attributes of an advertisement.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type DimensionType string

const (
	TypePublication  DimensionType = "publication"
	TypeColorType    DimensionType = "color_type"
	TypeAdCategory   DimensionType = "ad_category"
	TypeAdSize       DimensionType = "ad_size"
	TypePagePosition DimensionType = "page_position"
)

// Types lists all dimension types in rate-tuple order.
func Types() []DimensionType {
	return []DimensionType{TypePublication, TypeColorType, TypeAdCategory, TypeAdSize, TypePagePosition}
}

func (t DimensionType) Valid() bool {
	switch t {
	case TypePublication, TypeColorType, TypeAdCategory, TypeAdSize, TypePagePosition:
		return true
	}
	return false
}

type EntityStatus string

const (
	StatusActive   EntityStatus = "active"
	StatusInactive EntityStatus = "inactive"
)

// DimensionEntity is a canonical catalog entry. Name is stored trimmed and
// upper-cased; uniqueness of (type, name) among non-deleted rows is enforced
// by a partial unique index, as is code uniqueness for publications.
type DimensionEntity struct {
	ID        snowflake.ID   `gorm:"primaryKey" json:"id"`
	Type      DimensionType  `gorm:"type:text;not null;index:idx_dimension_type_name" json:"type"`
	Name      string         `gorm:"type:text;not null;index:idx_dimension_type_name" json:"name"`
	Code      string         `gorm:"type:varchar(20);not null" json:"code"`
	Status    EntityStatus   `gorm:"type:text;not null;default:active" json:"status"`
	CreatedBy snowflake.ID   `gorm:"not null" json:"created_by"`
	CreatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (DimensionEntity) TableName() string { return "dimension_entities" }

// Match is one similarity-ranked candidate returned by the resolver.
// Score is 0..100; 100 means exact after trim+upper normalization.
type Match struct {
	ID    snowflake.ID `json:"id"`
	Name  string       `json:"name"`
	Code  string       `json:"code"`
	Score int          `json:"score"`
}
