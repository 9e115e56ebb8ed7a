package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	// Create mints a new key and returns the plaintext exactly once.
	Create(ctx context.Context, req CreateRequest) (*CreatedKey, error)
	List(ctx context.Context) ([]APIKey, error)
	Revoke(ctx context.Context, id string) error
}

type CreateRequest struct {
	Name      string     `json:"name"`
	Role      string     `json:"role"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

type CreatedKey struct {
	Key       APIKey `json:"key"`
	Plaintext string `json:"plaintext"`
}

var (
	ErrInvalidName = errors.New("invalid_name")
	ErrInvalidRole = errors.New("invalid_role")
	ErrInvalidID   = errors.New("invalid_id")
	ErrNotFound    = errors.New("not_found")
)
