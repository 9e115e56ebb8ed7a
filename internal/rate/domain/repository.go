package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/pressratelabs/pressrate/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, record *RateRecord) error
	Update(ctx context.Context, db *gorm.DB, record *RateRecord) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*RateRecord, error)

	// FindExact returns the active rate effective at asOf for the exact
	// dimension tuple, or nil when none exists.
	FindExact(ctx context.Context, db *gorm.DB, dims DimensionSet, asOf time.Time) (*RateRecord, error)

	// FindDuplicate matches the tuple plus the exact effective-from date;
	// excludeID skips the record being updated.
	FindDuplicate(ctx context.Context, db *gorm.DB, dims DimensionSet, effectiveFrom time.Time, excludeID snowflake.ID) (*RateRecord, error)

	CountBookings(ctx context.Context, db *gorm.DB, rateID snowflake.ID) (int64, error)
	List(ctx context.Context, db *gorm.DB, filter ListRequest, page pagination.Pagination) ([]*RateRecord, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status RateStatus) error
	SoftDelete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
