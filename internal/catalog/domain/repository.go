package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/pressratelabs/pressrate/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, entity *DimensionEntity) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*DimensionEntity, error)
	FindByTypeAndName(ctx context.Context, db *gorm.DB, t DimensionType, name string) (*DimensionEntity, error)
	FindPublicationByCode(ctx context.Context, db *gorm.DB, code string) (*DimensionEntity, error)
	ListActiveByType(ctx context.Context, db *gorm.DB, t DimensionType) ([]DimensionEntity, error)
	List(ctx context.Context, db *gorm.DB, filter ListRequest, page pagination.Pagination) ([]*DimensionEntity, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status EntityStatus) error
}
