package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/pressratelabs/pressrate/internal/catalog/domain"
	ratedomain "github.com/pressratelabs/pressrate/internal/rate/domain"
	"github.com/pressratelabs/pressrate/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    ratedomain.Repository
	Catalog catalogdomain.Service
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	repo    ratedomain.Repository
	catalog catalogdomain.Service
}

func New(p Params) ratedomain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("rate.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		catalog: p.Catalog,
	}
}

func (s *Service) Create(ctx context.Context, req ratedomain.CreateRequest) (*ratedomain.RateRecord, error) {
	if req.BaseRate.IsNegative() || req.BaseRate.IsZero() {
		return nil, ratedomain.ErrInvalidBaseRate
	}
	if req.EffectiveFrom.IsZero() {
		return nil, ratedomain.ErrInvalidEffectiveFrom
	}
	if req.EffectiveTo != nil && req.EffectiveTo.Before(req.EffectiveFrom) {
		return nil, ratedomain.ErrInvalidEffectiveFrom
	}

	dims, err := s.ResolveDimensions(ctx, req.Dimensions, req.ActorID)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = ratedomain.StatusActive
	}

	record := &ratedomain.RateRecord{
		ID:            s.genID.Generate(),
		DimensionSet:  dims,
		BaseRate:      req.BaseRate,
		EffectiveFrom: dateOnly(req.EffectiveFrom),
		EffectiveTo:   dateOnlyPtr(req.EffectiveTo),
		Status:        status,
		Notes:         strings.TrimSpace(req.Notes),
		CreatedBy:     req.ActorID,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}

	// Check-then-insert in one transaction; the partial unique index is
	// the authoritative guard, the check gives the better error message.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dup, err := s.repo.FindDuplicate(ctx, tx, dims, record.EffectiveFrom, 0)
		if err != nil {
			return err
		}
		if dup != nil {
			return ratedomain.ErrDuplicateRate
		}
		return s.repo.Insert(ctx, tx, record)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("rate created",
		zap.String("id", record.ID.String()),
		zap.String("publication_id", record.PublicationID.String()),
		zap.String("base_rate", record.BaseRate.StringFixed(2)),
	)
	return record, nil
}

func (s *Service) Update(ctx context.Context, req ratedomain.UpdateRequest) (*ratedomain.RateRecord, error) {
	record, err := s.mustFind(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	used, err := s.isReferencedByBooking(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	if used {
		return nil, ratedomain.ErrRateInUse
	}

	if req.BaseRate != nil {
		if req.BaseRate.IsNegative() || req.BaseRate.IsZero() {
			return nil, ratedomain.ErrInvalidBaseRate
		}
		record.BaseRate = *req.BaseRate
	}
	if req.EffectiveFrom != nil {
		record.EffectiveFrom = dateOnly(*req.EffectiveFrom)
	}
	if req.EffectiveTo != nil {
		record.EffectiveTo = dateOnlyPtr(req.EffectiveTo)
	}
	if req.EffectiveTo != nil && record.EffectiveTo != nil && record.EffectiveTo.Before(record.EffectiveFrom) {
		return nil, ratedomain.ErrInvalidEffectiveFrom
	}
	if req.Notes != nil {
		record.Notes = strings.TrimSpace(*req.Notes)
	}
	record.UpdatedAt = time.Now().UTC()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dup, err := s.repo.FindDuplicate(ctx, tx, record.DimensionSet, record.EffectiveFrom, record.ID)
		if err != nil {
			return err
		}
		if dup != nil {
			return ratedomain.ErrDuplicateRate
		}
		return s.repo.Update(ctx, tx, record)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Service) Deactivate(ctx context.Context, id string) (*ratedomain.RateRecord, error) {
	record, err := s.mustFind(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, s.db, record.ID, ratedomain.StatusInactive); err != nil {
		return nil, err
	}
	record.Status = ratedomain.StatusInactive
	return record, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	record, err := s.mustFind(ctx, id)
	if err != nil {
		return err
	}

	used, err := s.isReferencedByBooking(ctx, record.ID)
	if err != nil {
		return err
	}
	if used {
		return ratedomain.ErrRateInUse
	}
	return s.repo.SoftDelete(ctx, s.db, record.ID)
}

func (s *Service) Get(ctx context.Context, id string) (*ratedomain.RateRecord, error) {
	return s.mustFind(ctx, id)
}

func (s *Service) List(ctx context.Context, req ratedomain.ListRequest) (ratedomain.ListResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, req, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  int(pageSize),
	})
	if err != nil {
		return ratedomain.ListResponse{}, err
	}

	items, pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(item *ratedomain.RateRecord) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        item.ID.String(),
			CreatedAt: item.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})

	return ratedomain.ListResponse{PageInfo: *pageInfo, Rates: items}, nil
}

func (s *Service) FindExact(ctx context.Context, dims ratedomain.DimensionSet, asOf time.Time) (*ratedomain.RateRecord, error) {
	if !dims.Complete() {
		return nil, ratedomain.ErrMissingDimension
	}
	record, err := s.repo.FindExact(ctx, s.db, dims, dateOnly(asOf))
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ratedomain.ErrNoRateFound
	}
	return record, nil
}

// ResolveDimensions maps the raw 5-tuple onto canonical catalog ids,
// creating entities on first use. Shared with the bulk import commit path.
func (s *Service) ResolveDimensions(ctx context.Context, raw ratedomain.RawDimensions, actorID snowflake.ID) (ratedomain.DimensionSet, error) {
	var dims ratedomain.DimensionSet

	targets := []struct {
		t    catalogdomain.DimensionType
		name string
		code string
		dst  *snowflake.ID
	}{
		{catalogdomain.TypePublication, raw.PublicationName, raw.PublicationCode, &dims.PublicationID},
		{catalogdomain.TypeColorType, raw.ColorType, "", &dims.ColorTypeID},
		{catalogdomain.TypeAdCategory, raw.AdCategory, "", &dims.AdCategoryID},
		{catalogdomain.TypeAdSize, raw.AdSize, "", &dims.AdSizeID},
		{catalogdomain.TypePagePosition, raw.PagePosition, "", &dims.PagePositionID},
	}

	for _, target := range targets {
		if strings.TrimSpace(target.name) == "" && strings.TrimSpace(target.code) == "" {
			return ratedomain.DimensionSet{}, ratedomain.ErrMissingDimension
		}
		id, err := s.catalog.ResolveOrCreate(ctx, catalogdomain.ResolveRequest{
			Type:    target.t,
			RawName: target.name,
			RawCode: target.code,
			ActorID: actorID,
		})
		if err != nil {
			return ratedomain.DimensionSet{}, err
		}
		*target.dst = id
	}
	return dims, nil
}

func (s *Service) mustFind(ctx context.Context, id string) (*ratedomain.RateRecord, error) {
	rateID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, ratedomain.ErrInvalidID
	}
	record, err := s.repo.FindByID(ctx, s.db, rateID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ratedomain.ErrNotFound
	}
	return record, nil
}

func (s *Service) isReferencedByBooking(ctx context.Context, rateID snowflake.ID) (bool, error) {
	count, err := s.repo.CountBookings(ctx, s.db, rateID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func dateOnlyPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := dateOnly(*t)
	return &d
}
