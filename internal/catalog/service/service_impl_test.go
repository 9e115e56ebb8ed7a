package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	catalogdomain "github.com/pressratelabs/pressrate/internal/catalog/domain"
	"github.com/pressratelabs/pressrate/internal/catalog/repository"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&catalogdomain.DimensionEntity{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := &Service{
		db:        db,
		log:       zap.NewNop(),
		genID:     node,
		repo:      repository.NewRepository(),
		threshold: 85,
	}
	return svc, db
}

func TestResolveOrCreateIsIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.ResolveOrCreate(ctx, catalogdomain.ResolveRequest{
		Type:    catalogdomain.TypeAdSize,
		RawName: "Full Page",
	})
	require.NoError(t, err)
	require.NotZero(t, first)

	// Same name modulo case and spacing resolves to the same entity.
	second, err := svc.ResolveOrCreate(ctx, catalogdomain.ResolveRequest{
		Type:    catalogdomain.TypeAdSize,
		RawName: "  full   page ",
	})
	require.NoError(t, err)
	require.Equal(t, first, second)

	var count int64
	require.NoError(t, svc.db.Model(&catalogdomain.DimensionEntity{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestResolveOrCreateDistinctTypesAreIndependent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	sizeID, err := svc.ResolveOrCreate(ctx, catalogdomain.ResolveRequest{
		Type:    catalogdomain.TypeAdSize,
		RawName: "STRIP",
	})
	require.NoError(t, err)

	positionID, err := svc.ResolveOrCreate(ctx, catalogdomain.ResolveRequest{
		Type:    catalogdomain.TypePagePosition,
		RawName: "STRIP",
	})
	require.NoError(t, err)
	require.NotEqual(t, sizeID, positionID)
}

func TestResolveOrCreatePublicationPrefersCode(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.ResolveOrCreate(ctx, catalogdomain.ResolveRequest{
		Type:    catalogdomain.TypePublication,
		RawName: "Daily Graphic",
		RawCode: "DG",
	})
	require.NoError(t, err)

	// A different display name with the same code is the same publication.
	resolved, err := svc.ResolveOrCreate(ctx, catalogdomain.ResolveRequest{
		Type:    catalogdomain.TypePublication,
		RawName: "Daily Graphic (Main)",
		RawCode: "DG",
	})
	require.NoError(t, err)
	require.Equal(t, created, resolved)
}

func TestResolveOrCreateRejectsInvalidInput(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.ResolveOrCreate(ctx, catalogdomain.ResolveRequest{
		Type:    catalogdomain.DimensionType("edition"),
		RawName: "X",
	})
	require.ErrorIs(t, err, catalogdomain.ErrInvalidType)

	_, err = svc.ResolveOrCreate(ctx, catalogdomain.ResolveRequest{
		Type:    catalogdomain.TypeAdCategory,
		RawName: "   ",
	})
	require.ErrorIs(t, err, catalogdomain.ErrInvalidName)
}

func TestValidateNameExactMatchAccepted(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	id, err := svc.ResolveOrCreate(ctx, catalogdomain.ResolveRequest{
		Type:    catalogdomain.TypePublication,
		RawName: "Daily Graphic",
		RawCode: "DG",
	})
	require.NoError(t, err)

	match, err := svc.ValidateName(ctx, catalogdomain.TypePublication, "daily graphic")
	require.NoError(t, err)
	require.NotNil(t, match)
	require.Equal(t, id, match.ID)
	require.Equal(t, 100, match.Score)
}

func TestValidateNameAmbiguousRejectedWithSuggestion(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.ResolveOrCreate(ctx, catalogdomain.ResolveRequest{
		Type:    catalogdomain.TypePublication,
		RawName: "Daily Graphic",
		RawCode: "DG",
	})
	require.NoError(t, err)

	_, err = svc.ValidateName(ctx, catalogdomain.TypePublication, "Daily Graphik")
	require.ErrorIs(t, err, catalogdomain.ErrAmbiguousName)

	var ambiguous *catalogdomain.AmbiguousNameError
	require.True(t, errors.As(err, &ambiguous))
	require.Equal(t, "DAILY GRAPHIC", ambiguous.Suggestion())

	// Rejection must not create a row.
	var count int64
	require.NoError(t, svc.db.Model(&catalogdomain.DimensionEntity{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestValidateNameDistantNamePassesAsNew(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.ResolveOrCreate(ctx, catalogdomain.ResolveRequest{
		Type:    catalogdomain.TypePublication,
		RawName: "Daily Graphic",
		RawCode: "DG",
	})
	require.NoError(t, err)

	match, err := svc.ValidateName(ctx, catalogdomain.TypePublication, "Business & Financial Times")
	require.NoError(t, err)
	require.Nil(t, match)
}
