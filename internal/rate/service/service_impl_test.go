package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	catalogdomain "github.com/pressratelabs/pressrate/internal/catalog/domain"
	catalogrepo "github.com/pressratelabs/pressrate/internal/catalog/repository"
	catalogservice "github.com/pressratelabs/pressrate/internal/catalog/service"
	"github.com/pressratelabs/pressrate/internal/config"
	ratedomain "github.com/pressratelabs/pressrate/internal/rate/domain"
	raterepo "github.com/pressratelabs/pressrate/internal/rate/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestRateService(t *testing.T) (ratedomain.Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&catalogdomain.DimensionEntity{},
		&ratedomain.RateRecord{},
		&ratedomain.Booking{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Similarity.Threshold = 85

	catalogSvc := catalogservice.New(catalogservice.Params{
		DB:     db,
		Log:    zap.NewNop(),
		GenID:  node,
		Config: cfg,
		Repo:   catalogrepo.NewRepository(),
	})
	return New(Params{
		DB:      db,
		Log:     zap.NewNop(),
		GenID:   node,
		Repo:    raterepo.NewRepository(),
		Catalog: catalogSvc,
	}), db
}

func testDims() ratedomain.RawDimensions {
	return ratedomain.RawDimensions{
		PublicationCode: "DG",
		PublicationName: "Daily Graphic",
		ColorType:       "Full Colour",
		AdCategory:      "Corporate",
		AdSize:          "Full Page",
		PagePosition:    "Inside Page",
	}
}

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCreateResolvesDimensionsAndInserts(t *testing.T) {
	svc, db := newTestRateService(t)
	ctx := context.Background()

	record, err := svc.Create(ctx, ratedomain.CreateRequest{
		Dimensions:    testDims(),
		BaseRate:      decimal.RequireFromString("5000.00"),
		EffectiveFrom: date("2026-01-01"),
	})
	require.NoError(t, err)
	require.True(t, record.DimensionSet.Complete())
	require.Equal(t, ratedomain.StatusActive, record.Status)

	// Five fresh catalog entities, one per dimension.
	var count int64
	require.NoError(t, db.Model(&catalogdomain.DimensionEntity{}).Count(&count).Error)
	require.EqualValues(t, 5, count)
}

func TestCreateRejectsDuplicateTuple(t *testing.T) {
	svc, _ := newTestRateService(t)
	ctx := context.Background()

	req := ratedomain.CreateRequest{
		Dimensions:    testDims(),
		BaseRate:      decimal.RequireFromString("5000.00"),
		EffectiveFrom: date("2026-01-01"),
	}
	_, err := svc.Create(ctx, req)
	require.NoError(t, err)

	_, err = svc.Create(ctx, req)
	require.ErrorIs(t, err, ratedomain.ErrDuplicateRate)

	// A different effective_from is rate history, not a duplicate.
	req.EffectiveFrom = date("2026-07-01")
	_, err = svc.Create(ctx, req)
	require.NoError(t, err)
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestRateService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, ratedomain.CreateRequest{
		Dimensions:    testDims(),
		BaseRate:      decimal.Zero,
		EffectiveFrom: date("2026-01-01"),
	})
	require.ErrorIs(t, err, ratedomain.ErrInvalidBaseRate)

	_, err = svc.Create(ctx, ratedomain.CreateRequest{
		Dimensions: testDims(),
		BaseRate:   decimal.RequireFromString("100"),
	})
	require.ErrorIs(t, err, ratedomain.ErrInvalidEffectiveFrom)

	dims := testDims()
	dims.AdSize = ""
	_, err = svc.Create(ctx, ratedomain.CreateRequest{
		Dimensions:    dims,
		BaseRate:      decimal.RequireFromString("100"),
		EffectiveFrom: date("2026-01-01"),
	})
	require.ErrorIs(t, err, ratedomain.ErrMissingDimension)
}

func TestFindExactrespectsEffectiveWindow(t *testing.T) {
	svc, _ := newTestRateService(t)
	ctx := context.Background()

	to := date("2026-06-30")
	record, err := svc.Create(ctx, ratedomain.CreateRequest{
		Dimensions:    testDims(),
		BaseRate:      decimal.RequireFromString("5000.00"),
		EffectiveFrom: date("2026-01-01"),
		EffectiveTo:   &to,
	})
	require.NoError(t, err)

	found, err := svc.FindExact(ctx, record.DimensionSet, date("2026-03-15"))
	require.NoError(t, err)
	require.Equal(t, record.ID, found.ID)

	_, err = svc.FindExact(ctx, record.DimensionSet, date("2025-12-31"))
	require.ErrorIs(t, err, ratedomain.ErrNoRateFound)

	_, err = svc.FindExact(ctx, record.DimensionSet, date("2026-07-01"))
	require.ErrorIs(t, err, ratedomain.ErrNoRateFound)
}

func TestFindExactPicksLatestEffectiveFrom(t *testing.T) {
	svc, _ := newTestRateService(t)
	ctx := context.Background()

	older, err := svc.Create(ctx, ratedomain.CreateRequest{
		Dimensions:    testDims(),
		BaseRate:      decimal.RequireFromString("4000.00"),
		EffectiveFrom: date("2025-01-01"),
	})
	require.NoError(t, err)

	newer, err := svc.Create(ctx, ratedomain.CreateRequest{
		Dimensions:    testDims(),
		BaseRate:      decimal.RequireFromString("5000.00"),
		EffectiveFrom: date("2026-01-01"),
	})
	require.NoError(t, err)

	found, err := svc.FindExact(ctx, newer.DimensionSet, date("2026-02-01"))
	require.NoError(t, err)
	require.Equal(t, newer.ID, found.ID)

	found, err = svc.FindExact(ctx, older.DimensionSet, date("2025-06-01"))
	require.NoError(t, err)
	require.Equal(t, older.ID, found.ID)
}

func TestUpdateBlockedByBooking(t *testing.T) {
	svc, db := newTestRateService(t)
	ctx := context.Background()

	record, err := svc.Create(ctx, ratedomain.CreateRequest{
		Dimensions:    testDims(),
		BaseRate:      decimal.RequireFromString("5000.00"),
		EffectiveFrom: date("2026-01-01"),
	})
	require.NoError(t, err)

	require.NoError(t, db.Create(&ratedomain.Booking{ID: 1, RateID: record.ID}).Error)

	newRate := decimal.RequireFromString("6000.00")
	_, err = svc.Update(ctx, ratedomain.UpdateRequest{ID: record.ID.String(), BaseRate: &newRate})
	require.ErrorIs(t, err, ratedomain.ErrRateInUse)

	require.ErrorIs(t, svc.Delete(ctx, record.ID.String()), ratedomain.ErrRateInUse)

	// Deactivation stays available for rates in use.
	updated, err := svc.Deactivate(ctx, record.ID.String())
	require.NoError(t, err)
	require.Equal(t, ratedomain.StatusInactive, updated.Status)
}

func TestUpdateAmendsRate(t *testing.T) {
	svc, _ := newTestRateService(t)
	ctx := context.Background()

	record, err := svc.Create(ctx, ratedomain.CreateRequest{
		Dimensions:    testDims(),
		BaseRate:      decimal.RequireFromString("5000.00"),
		EffectiveFrom: date("2026-01-01"),
	})
	require.NoError(t, err)

	newRate := decimal.RequireFromString("5500.00")
	notes := "mid-year adjustment"
	updated, err := svc.Update(ctx, ratedomain.UpdateRequest{
		ID:       record.ID.String(),
		BaseRate: &newRate,
		Notes:    &notes,
	})
	require.NoError(t, err)
	require.True(t, newRate.Equal(updated.BaseRate))
	require.Equal(t, notes, updated.Notes)
}

func TestDeleteHidesRateFromResolution(t *testing.T) {
	svc, _ := newTestRateService(t)
	ctx := context.Background()

	record, err := svc.Create(ctx, ratedomain.CreateRequest{
		Dimensions:    testDims(),
		BaseRate:      decimal.RequireFromString("5000.00"),
		EffectiveFrom: date("2026-01-01"),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, record.ID.String()))

	_, err = svc.Get(ctx, record.ID.String())
	require.ErrorIs(t, err, ratedomain.ErrNotFound)

	_, err = svc.FindExact(ctx, record.DimensionSet, date("2026-02-01"))
	require.ErrorIs(t, err, ratedomain.ErrNoRateFound)
}
