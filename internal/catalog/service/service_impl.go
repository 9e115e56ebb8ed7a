package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	catalogdomain "github.com/pressratelabs/pressrate/internal/catalog/domain"
	"github.com/pressratelabs/pressrate/internal/config"
	"github.com/pressratelabs/pressrate/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxCodeLength = 20

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Config *config.Config
	Repo   catalogdomain.Repository
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	repo      catalogdomain.Repository
	threshold int
}

func New(p Params) catalogdomain.Service {
	threshold := p.Config.Similarity.Threshold
	if threshold <= 0 || threshold > 100 {
		threshold = 85
	}
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("catalog.service"),
		genID:     p.GenID,
		repo:      p.Repo,
		threshold: threshold,
	}
}

func (s *Service) ResolveOrCreate(ctx context.Context, req catalogdomain.ResolveRequest) (snowflake.ID, error) {
	if !req.Type.Valid() {
		return 0, catalogdomain.ErrInvalidType
	}
	name := normalizeName(req.RawName)
	if name == "" {
		return 0, catalogdomain.ErrInvalidName
	}
	code := normalizeName(req.RawCode)

	id, err := s.resolve(ctx, req.Type, name, code)
	if err != nil || id != 0 {
		return id, err
	}

	entity := &catalogdomain.DimensionEntity{
		ID:        s.genID.Generate(),
		Type:      req.Type,
		Name:      name,
		Code:      deriveCode(req.Type, name, code),
		Status:    catalogdomain.StatusActive,
		CreatedBy: req.ActorID,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	err = s.repo.Insert(ctx, s.db, entity)
	if err == nil {
		s.log.Info("dimension created",
			zap.String("type", string(req.Type)),
			zap.String("name", name),
			zap.String("id", entity.ID.String()),
		)
		return entity.ID, nil
	}
	if !errors.Is(err, catalogdomain.ErrAlreadyExists) {
		return 0, err
	}

	// Lost the unique-index race to a concurrent first use; the winning
	// row is the canonical entity, so re-resolve once.
	id, err = s.resolve(ctx, req.Type, name, code)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, catalogdomain.ErrAlreadyExists
	}
	return id, nil
}

// resolve performs the exact-match lookup: code first for publications
// (code is the stronger key), then name.
func (s *Service) resolve(ctx context.Context, t catalogdomain.DimensionType, name, code string) (snowflake.ID, error) {
	if t == catalogdomain.TypePublication && code != "" {
		entity, err := s.repo.FindPublicationByCode(ctx, s.db, code)
		if err != nil {
			return 0, err
		}
		if entity != nil {
			return entity.ID, nil
		}
	}
	entity, err := s.repo.FindByTypeAndName(ctx, s.db, t, name)
	if err != nil {
		return 0, err
	}
	if entity != nil {
		return entity.ID, nil
	}
	return 0, nil
}

func (s *Service) FindSimilar(ctx context.Context, t catalogdomain.DimensionType, candidate string) ([]catalogdomain.Match, error) {
	if !t.Valid() {
		return nil, catalogdomain.ErrInvalidType
	}
	name := normalizeName(candidate)
	if name == "" {
		return nil, catalogdomain.ErrInvalidName
	}

	entries, err := s.repo.ListActiveByType(ctx, s.db, t)
	if err != nil {
		return nil, err
	}
	return rankMatches(name, entries), nil
}

func (s *Service) ValidateName(ctx context.Context, t catalogdomain.DimensionType, candidate string) (*catalogdomain.Match, error) {
	matches, err := s.FindSimilar(ctx, t, candidate)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, nil
	}

	best := matches[0]
	if best.Score == 100 {
		return &best, nil
	}
	if best.Score >= s.threshold {
		return nil, &catalogdomain.AmbiguousNameError{
			Type:      t,
			Candidate: strings.TrimSpace(candidate),
			Best:      best,
		}
	}
	return nil, nil
}

func (s *Service) List(ctx context.Context, req catalogdomain.ListRequest) (catalogdomain.ListResponse, error) {
	if req.Type != "" && !req.Type.Valid() {
		return catalogdomain.ListResponse{}, catalogdomain.ErrInvalidType
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	filter := req
	filter.Name = normalizeName(req.Name)

	items, err := s.repo.List(ctx, s.db, filter, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  int(pageSize),
	})
	if err != nil {
		return catalogdomain.ListResponse{}, err
	}

	items, pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(item *catalogdomain.DimensionEntity) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        item.ID.String(),
			CreatedAt: item.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})

	return catalogdomain.ListResponse{PageInfo: *pageInfo, Entities: items}, nil
}

func (s *Service) SetStatus(ctx context.Context, id string, status catalogdomain.EntityStatus) error {
	entityID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return catalogdomain.ErrInvalidID
	}
	if status != catalogdomain.StatusActive && status != catalogdomain.StatusInactive {
		return catalogdomain.ErrInvalidID
	}
	return s.repo.UpdateStatus(ctx, s.db, entityID, status)
}

// deriveCode falls back to a slug of the name when no code was supplied.
func deriveCode(t catalogdomain.DimensionType, name, code string) string {
	if t == catalogdomain.TypePublication && code != "" {
		return truncate(code, maxCodeLength)
	}
	derived := strings.ToUpper(slug.Make(name))
	return truncate(derived, maxCodeLength)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
