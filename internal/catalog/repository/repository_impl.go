package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/pressratelabs/pressrate/internal/catalog/domain"
	pkgdb "github.com/pressratelabs/pressrate/pkg/db"
	"github.com/pressratelabs/pressrate/pkg/db/pagination"
	"gorm.io/gorm"
)

type repository struct{}

func NewRepository() catalogdomain.Repository {
	return &repository{}
}

func (r *repository) Insert(ctx context.Context, db *gorm.DB, entity *catalogdomain.DimensionEntity) error {
	err := db.WithContext(ctx).Create(entity).Error
	if pkgdb.IsUniqueViolation(err) {
		return catalogdomain.ErrAlreadyExists
	}
	return err
}

func (r *repository) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*catalogdomain.DimensionEntity, error) {
	var entity catalogdomain.DimensionEntity
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (r *repository) FindByTypeAndName(ctx context.Context, db *gorm.DB, t catalogdomain.DimensionType, name string) (*catalogdomain.DimensionEntity, error) {
	var entity catalogdomain.DimensionEntity
	err := db.WithContext(ctx).
		Where("type = ? AND name = ? AND status = ?", t, name, catalogdomain.StatusActive).
		First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (r *repository) FindPublicationByCode(ctx context.Context, db *gorm.DB, code string) (*catalogdomain.DimensionEntity, error) {
	var entity catalogdomain.DimensionEntity
	err := db.WithContext(ctx).
		Where("type = ? AND code = ? AND status = ?", catalogdomain.TypePublication, code, catalogdomain.StatusActive).
		First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (r *repository) ListActiveByType(ctx context.Context, db *gorm.DB, t catalogdomain.DimensionType) ([]catalogdomain.DimensionEntity, error) {
	var entities []catalogdomain.DimensionEntity
	err := db.WithContext(ctx).
		Where("type = ? AND status = ?", t, catalogdomain.StatusActive).
		Order("id ASC").
		Find(&entities).Error
	return entities, err
}

func (r *repository) List(ctx context.Context, db *gorm.DB, filter catalogdomain.ListRequest, page pagination.Pagination) ([]*catalogdomain.DimensionEntity, error) {
	query := db.WithContext(ctx).Model(&catalogdomain.DimensionEntity{})

	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Name != "" {
		query = query.Where("name LIKE ?", "%"+filter.Name+"%")
	}
	if filter.Active != nil {
		status := catalogdomain.StatusInactive
		if *filter.Active {
			status = catalogdomain.StatusActive
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

	var entities []*catalogdomain.DimensionEntity
	err := query.Order("id ASC").Find(&entities).Error
	return entities, err
}

func (r *repository) UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status catalogdomain.EntityStatus) error {
	result := db.WithContext(ctx).Model(&catalogdomain.DimensionEntity{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return catalogdomain.ErrNotFound
	}
	return nil
}
