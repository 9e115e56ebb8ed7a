package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/pressratelabs/pressrate/pkg/db/pagination"
)

type Service interface {
	// ResolveOrCreate returns the id of the canonical entity for the given
	// raw name (and code, for publications), creating it on first use.
	// Exact-match-or-create only; fuzzy checks belong to ValidateName.
	ResolveOrCreate(ctx context.Context, req ResolveRequest) (snowflake.ID, error)

	// FindSimilar ranks active catalog entries by similarity to candidate,
	// best first, ties broken by id ascending.
	FindSimilar(ctx context.Context, t DimensionType, candidate string) ([]Match, error)

	// ValidateName applies the binary pre-insert policy: an exact match is
	// returned as the resolved entity, a near-match fails with
	// ErrAmbiguousName, anything below the threshold passes as a new name.
	ValidateName(ctx context.Context, t DimensionType, candidate string) (*Match, error)

	List(ctx context.Context, req ListRequest) (ListResponse, error)
	SetStatus(ctx context.Context, id string, status EntityStatus) error
}

type ResolveRequest struct {
	Type    DimensionType
	RawName string
	RawCode string
	ActorID snowflake.ID
}

type ListRequest struct {
	Type      DimensionType `form:"type"`
	Name      string        `form:"name"`
	Active    *bool         `form:"active"`
	PageToken string        `form:"page_token"`
	PageSize  int32         `form:"page_size"`
}

type ListResponse struct {
	PageInfo pagination.PageInfo `json:"page_info"`
	Entities []*DimensionEntity  `json:"entities"`
}

var (
	ErrInvalidType   = errors.New("invalid_dimension_type")
	ErrInvalidName   = errors.New("invalid_name")
	ErrInvalidID     = errors.New("invalid_id")
	ErrNotFound      = errors.New("not_found")
	ErrAlreadyExists = errors.New("already_exists")
	ErrAmbiguousName = errors.New("ambiguous_name")
)

// AmbiguousNameError rejects a near-duplicate name and carries the
// closest existing entry for a "did you mean?" message.
type AmbiguousNameError struct {
	Type      DimensionType
	Candidate string
	Best      Match
}

func (e *AmbiguousNameError) Error() string {
	return fmt.Sprintf("ambiguous %s name %q: did you mean %q?", e.Type, e.Candidate, e.Best.Name)
}

func (e *AmbiguousNameError) Unwrap() error { return ErrAmbiguousName }

func (e *AmbiguousNameError) Suggestion() string { return e.Best.Name }
