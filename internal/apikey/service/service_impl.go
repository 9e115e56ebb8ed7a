package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	apikeydomain "github.com/pressratelabs/pressrate/internal/apikey/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  apikeydomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  apikeydomain.Repository
}

func New(p Params) apikeydomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("apikey.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req apikeydomain.CreateRequest) (*apikeydomain.CreatedKey, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apikeydomain.ErrInvalidName
	}
	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = apikeydomain.RoleViewer
	}
	if !apikeydomain.ValidRole(role) {
		return nil, apikeydomain.ErrInvalidRole
	}

	plaintext, err := apikeydomain.GenerateAPIKey()
	if err != nil {
		return nil, err
	}

	key := apikeydomain.APIKey{
		ID:        s.genID.Generate(),
		Name:      name,
		KeyHash:   apikeydomain.HashAPIKey(plaintext),
		Role:      role,
		IsActive:  true,
		ExpiresAt: req.ExpiresAt,
	}
	if err := s.repo.Insert(ctx, s.db, &key); err != nil {
		return nil, err
	}

	s.log.Info("api key created",
		zap.String("key_id", key.ID.String()),
		zap.String("role", key.Role),
	)

	return &apikeydomain.CreatedKey{Key: key, Plaintext: plaintext}, nil
}

func (s *Service) List(ctx context.Context) ([]apikeydomain.APIKey, error) {
	return s.repo.List(ctx, s.db)
}

func (s *Service) Revoke(ctx context.Context, id string) error {
	keyID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return apikeydomain.ErrInvalidID
	}

	key, err := s.repo.FindByID(ctx, s.db, keyID)
	if err != nil {
		return err
	}
	if key == nil {
		return apikeydomain.ErrNotFound
	}

	return s.repo.Deactivate(ctx, s.db, keyID)
}
