package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
)

type Service interface {
	// Stage validates every row (field checks plus the binary similarity
	// policy per dimension name) and persists the batch for later commit.
	Stage(ctx context.Context, req StageRequest) (*StageResponse, error)

	// Commit resolves dimensions and inserts one rate per valid row. Rows
	// that hit a duplicate are marked as errors; the rest commit. Each row
	// is its own transaction so one bad row cannot sink the batch.
	Commit(ctx context.Context, batchID string, actorID snowflake.ID) (*CommitResponse, error)

	GetBatch(ctx context.Context, batchID string) (*BatchDetail, error)
}

type StageRequest struct {
	Filename string
	Rows     []RawRow
	ActorID  snowflake.ID
}

type StageResponse struct {
	BatchID   uuid.UUID   `json:"batch_id"`
	TotalRows int         `json:"total_rows"`
	ValidRows int         `json:"valid_rows"`
	ErrorRows int         `json:"error_rows"`
	Rows      []ImportRow `json:"rows"`
}

type CommitResponse struct {
	BatchID       uuid.UUID `json:"batch_id"`
	CommittedRows int       `json:"committed_rows"`
	FailedRows    int       `json:"failed_rows"`
	SkippedRows   int       `json:"skipped_rows"`
}

type BatchDetail struct {
	Batch ImportBatch `json:"batch"`
	Rows  []ImportRow `json:"rows"`
}

var (
	ErrEmptyBatch     = errors.New("empty_batch")
	ErrInvalidBatchID = errors.New("invalid_batch_id")
	ErrBatchNotFound  = errors.New("batch_not_found")
	ErrBatchNotStaged = errors.New("batch_not_staged")
	ErrTooManyRows    = errors.New("too_many_rows")
)
