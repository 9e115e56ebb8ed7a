package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	importerdomain "github.com/pressratelabs/pressrate/internal/importer/domain"
	"gorm.io/gorm"
)

type repository struct{}

func NewRepository() importerdomain.Repository {
	return &repository{}
}

func (r *repository) InsertBatch(ctx context.Context, db *gorm.DB, batch *importerdomain.ImportBatch) error {
	return db.WithContext(ctx).Create(batch).Error
}

func (r *repository) InsertRows(ctx context.Context, db *gorm.DB, rows []importerdomain.ImportRow) error {
	if len(rows) == 0 {
		return nil
	}
	return db.WithContext(ctx).CreateInBatches(rows, 500).Error
}

func (r *repository) FindBatch(ctx context.Context, db *gorm.DB, id uuid.UUID) (*importerdomain.ImportBatch, error) {
	var batch importerdomain.ImportBatch
	err := db.WithContext(ctx).Where("id = ?", id).First(&batch).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &batch, nil
}

func (r *repository) ListRows(ctx context.Context, db *gorm.DB, batchID uuid.UUID) ([]importerdomain.ImportRow, error) {
	var rows []importerdomain.ImportRow
	err := db.WithContext(ctx).
		Where("batch_id = ?", batchID).
		Order("row_number ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) UpdateRow(ctx context.Context, db *gorm.DB, row *importerdomain.ImportRow) error {
	row.UpdatedAt = time.Now().UTC()
	return db.WithContext(ctx).Save(row).Error
}

func (r *repository) UpdateBatch(ctx context.Context, db *gorm.DB, batch *importerdomain.ImportBatch) error {
	batch.UpdatedAt = time.Now().UTC()
	return db.WithContext(ctx).Save(batch).Error
}
