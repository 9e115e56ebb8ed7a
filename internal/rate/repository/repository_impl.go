package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	ratedomain "github.com/pressratelabs/pressrate/internal/rate/domain"
	pkgdb "github.com/pressratelabs/pressrate/pkg/db"
	"github.com/pressratelabs/pressrate/pkg/db/pagination"
	"gorm.io/gorm"
)

type repository struct{}

func NewRepository() ratedomain.Repository {
	return &repository{}
}

func (r *repository) Insert(ctx context.Context, db *gorm.DB, record *ratedomain.RateRecord) error {
	err := db.WithContext(ctx).Create(record).Error
	if pkgdb.IsUniqueViolation(err) {
		return ratedomain.ErrDuplicateRate
	}
	return err
}

func (r *repository) Update(ctx context.Context, db *gorm.DB, record *ratedomain.RateRecord) error {
	err := db.WithContext(ctx).Save(record).Error
	if pkgdb.IsUniqueViolation(err) {
		return ratedomain.ErrDuplicateRate
	}
	return err
}

func (r *repository) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*ratedomain.RateRecord, error) {
	var record ratedomain.RateRecord
	err := db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *repository) FindExact(ctx context.Context, db *gorm.DB, dims ratedomain.DimensionSet, asOf time.Time) (*ratedomain.RateRecord, error) {
	var record ratedomain.RateRecord
	err := db.WithContext(ctx).
		Where("publication_id = ? AND color_type_id = ? AND ad_category_id = ? AND ad_size_id = ? AND page_position_id = ?",
			dims.PublicationID, dims.ColorTypeID, dims.AdCategoryID, dims.AdSizeID, dims.PagePositionID).
		Where("status = ?", ratedomain.StatusActive).
		Where("effective_from <= ?", asOf).
		Where("effective_to IS NULL OR effective_to >= ?", asOf).
		Order("effective_from DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *repository) FindDuplicate(ctx context.Context, db *gorm.DB, dims ratedomain.DimensionSet, effectiveFrom time.Time, excludeID snowflake.ID) (*ratedomain.RateRecord, error) {
	query := db.WithContext(ctx).
		Where("publication_id = ? AND color_type_id = ? AND ad_category_id = ? AND ad_size_id = ? AND page_position_id = ?",
			dims.PublicationID, dims.ColorTypeID, dims.AdCategoryID, dims.AdSizeID, dims.PagePositionID).
		Where("effective_from = ?", effectiveFrom)
	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}

	var record ratedomain.RateRecord
	err := query.First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *repository) CountBookings(ctx context.Context, db *gorm.DB, rateID snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&ratedomain.Booking{}).
		Where("rate_id = ?", rateID).
		Count(&count).Error
	return count, err
}

func (r *repository) List(ctx context.Context, db *gorm.DB, filter ratedomain.ListRequest, page pagination.Pagination) ([]*ratedomain.RateRecord, error) {
	query := db.WithContext(ctx).Model(&ratedomain.RateRecord{})

	if filter.PublicationID != "" {
		pubID, err := snowflake.ParseString(filter.PublicationID)
		if err != nil {
			return nil, ratedomain.ErrInvalidID
		}
		query = query.Where("publication_id = ?", pubID)
	}
	if filter.Active != nil {
		status := ratedomain.StatusInactive
		if *filter.Active {
			status = ratedomain.StatusActive
		}
		query = query.Where("status = ?", status)
	}

	if page.PageToken != "" {
		cursor, err := pagination.DecodeCursor(page.PageToken)
		if err != nil {
			return nil, err
		}
		id, err := snowflake.ParseString(cursor.ID)
		if err != nil {
			return nil, err
		}
		query = query.Where("id > ?", id)
	}
	if page.PageSize > 0 {
		query = query.Limit(page.PageSize + 1)
	}

	var records []*ratedomain.RateRecord
	err := query.Order("id ASC").Find(&records).Error
	return records, err
}

func (r *repository) UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status ratedomain.RateStatus) error {
	result := db.WithContext(ctx).Model(&ratedomain.RateRecord{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ratedomain.ErrNotFound
	}
	return nil
}

func (r *repository) SoftDelete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&ratedomain.RateRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ratedomain.ErrNotFound
	}
	return nil
}
