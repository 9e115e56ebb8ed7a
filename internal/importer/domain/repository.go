package domain

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	InsertBatch(ctx context.Context, db *gorm.DB, batch *ImportBatch) error
	InsertRows(ctx context.Context, db *gorm.DB, rows []ImportRow) error
	FindBatch(ctx context.Context, db *gorm.DB, id uuid.UUID) (*ImportBatch, error)
	ListRows(ctx context.Context, db *gorm.DB, batchID uuid.UUID) ([]ImportRow, error)
	UpdateRow(ctx context.Context, db *gorm.DB, row *ImportRow) error
	UpdateBatch(ctx context.Context, db *gorm.DB, batch *ImportBatch) error
}
