package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/pressratelabs/pressrate/pkg/db/pagination"
	"github.com/shopspring/decimal"
)

type Service interface {
	// Create resolves the raw dimension names to canonical entities and
	// inserts the rate inside one transaction with the duplicate check.
	Create(ctx context.Context, req CreateRequest) (*RateRecord, error)
	Update(ctx context.Context, req UpdateRequest) (*RateRecord, error)
	// Deactivate is the only state change allowed for rates referenced by
	// bookings.
	Deactivate(ctx context.Context, id string) (*RateRecord, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*RateRecord, error)
	List(ctx context.Context, req ListRequest) (ListResponse, error)

	// FindExact is the calculation-path lookup; a nil result is surfaced
	// to callers as ErrNoRateFound.
	FindExact(ctx context.Context, dims DimensionSet, asOf time.Time) (*RateRecord, error)

	// ResolveDimensions maps raw names/codes onto canonical catalog ids,
	// creating entities on first use; shared with the bulk import commit.
	ResolveDimensions(ctx context.Context, raw RawDimensions, actorID snowflake.ID) (DimensionSet, error)
}

// RawDimensions carries the human-entered dimension identifiers before
// resolution. PublicationCode is optional and, when present, the stronger key.
type RawDimensions struct {
	PublicationCode string `json:"publication_code"`
	PublicationName string `json:"publication_name"`
	ColorType       string `json:"color_type"`
	AdCategory      string `json:"ad_category"`
	AdSize          string `json:"ad_size"`
	PagePosition    string `json:"page_position"`
}

type CreateRequest struct {
	Dimensions    RawDimensions   `json:"dimensions"`
	BaseRate      decimal.Decimal `json:"base_rate"`
	EffectiveFrom time.Time       `json:"effective_from"`
	EffectiveTo   *time.Time      `json:"effective_to,omitempty"`
	Status        RateStatus      `json:"status,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	ActorID       snowflake.ID    `json:"-"`
}

type UpdateRequest struct {
	ID            string           `json:"id"`
	BaseRate      *decimal.Decimal `json:"base_rate,omitempty"`
	EffectiveFrom *time.Time       `json:"effective_from,omitempty"`
	EffectiveTo   *time.Time       `json:"effective_to,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
	ActorID       snowflake.ID     `json:"-"`
}

type ListRequest struct {
	PublicationID string `form:"publication_id"`
	Active        *bool  `form:"active"`
	PageToken     string `form:"page_token"`
	PageSize      int32  `form:"page_size"`
}

type ListResponse struct {
	PageInfo pagination.PageInfo `json:"page_info"`
	Rates    []*RateRecord       `json:"rates"`
}

var (
	ErrMissingDimension     = errors.New("missing_dimension")
	ErrInvalidBaseRate      = errors.New("invalid_base_rate")
	ErrInvalidEffectiveFrom = errors.New("invalid_effective_from")
	ErrInvalidID            = errors.New("invalid_id")
	ErrNotFound             = errors.New("not_found")
	ErrNoRateFound          = errors.New("no_rate_found")
	ErrDuplicateRate        = errors.New("duplicate_rate")
	ErrRateInUse            = errors.New("rate_in_use")
)
