// Package domain contains the bulk import staging models. Rows are parsed
// from an uploaded tabular file, validated against the catalog, and committed
// one rate per row through the same resolution path as direct entry.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type BatchStatus string

const (
	BatchStaged     BatchStatus = "staged"
	BatchCommitting BatchStatus = "committing"
	BatchCommitted  BatchStatus = "committed"
)

type RowStatus string

const (
	RowValid     RowStatus = "valid"
	RowError     RowStatus = "error"
	RowCommitted RowStatus = "committed"
)

type ImportBatch struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Filename   string         `gorm:"type:text;not null" json:"filename"`
	Status     BatchStatus    `gorm:"type:text;not null" json:"status"`
	TotalRows  int            `gorm:"not null" json:"total_rows"`
	ValidRows  int            `gorm:"not null" json:"valid_rows"`
	ErrorRows  int            `gorm:"not null" json:"error_rows"`
	CreatedBy  snowflake.ID   `gorm:"not null" json:"created_by"`
	CreatedAt  time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ImportBatch) TableName() string { return "import_batches" }

// ImportRow keeps the raw parsed columns as a JSON payload so the commit
// step replays exactly what was validated, not a re-parse of the file.
type ImportRow struct {
	ID        string         `gorm:"type:varchar(26);primaryKey" json:"id"` // ulid
	BatchID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"batch_id"`
	RowNumber int            `gorm:"not null" json:"row_number"`
	Payload   datatypes.JSON `gorm:"not null" json:"payload"`
	Status    RowStatus      `gorm:"type:text;not null" json:"status"`
	Message   string         `gorm:"type:text" json:"message,omitempty"`
	RateID    *snowflake.ID  `json:"rate_id,omitempty"`
	CreatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (ImportRow) TableName() string { return "import_rows" }

// RawRow mirrors the upload template columns.
type RawRow struct {
	PublicationCode string `json:"publication_code"`
	PublicationName string `json:"publication_name"`
	AdCategory      string `json:"ad_category"`
	AdSize          string `json:"ad_size"`
	PagePosition    string `json:"page_position"`
	ColorType       string `json:"color_type"`
	BaseRate        string `json:"base_rate"`
	EffectiveFrom   string `json:"effective_from"`
	EffectiveTo     string `json:"effective_to,omitempty"`
	Status          string `json:"status,omitempty"`
	Notes           string `json:"notes,omitempty"`
}
