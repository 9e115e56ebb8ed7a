package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	catalogdomain "github.com/pressratelabs/pressrate/internal/catalog/domain"
	"github.com/pressratelabs/pressrate/internal/config"
	importerdomain "github.com/pressratelabs/pressrate/internal/importer/domain"
	ratedomain "github.com/pressratelabs/pressrate/internal/rate/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Config  *config.Config
	Repo    importerdomain.Repository
	Catalog catalogdomain.Service
	RateSvc ratedomain.Service
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	maxRows int
	repo    importerdomain.Repository
	catalog catalogdomain.Service
	rateSvc ratedomain.Service
}

func New(p Params) importerdomain.Service {
	maxRows := p.Config.RateLimit.ImportRowsPerDay
	if maxRows <= 0 {
		maxRows = 50000
	}
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("importer.service"),
		maxRows: maxRows,
		repo:    p.Repo,
		catalog: p.Catalog,
		rateSvc: p.RateSvc,
	}
}

func (s *Service) Stage(ctx context.Context, req importerdomain.StageRequest) (*importerdomain.StageResponse, error) {
	if len(req.Rows) == 0 {
		return nil, importerdomain.ErrEmptyBatch
	}
	if len(req.Rows) > s.maxRows {
		return nil, importerdomain.ErrTooManyRows
	}

	batch := &importerdomain.ImportBatch{
		ID:        uuid.New(),
		Filename:  strings.TrimSpace(req.Filename),
		Status:    importerdomain.BatchStaged,
		TotalRows: len(req.Rows),
		CreatedBy: req.ActorID,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	rows := make([]importerdomain.ImportRow, 0, len(req.Rows))
	for i, raw := range req.Rows {
		payload, err := json.Marshal(raw)
		if err != nil {
			return nil, err
		}
		row := importerdomain.ImportRow{
			ID:        ulid.Make().String(),
			BatchID:   batch.ID,
			RowNumber: i + 1,
			Payload:   payload,
			Status:    importerdomain.RowValid,
			CreatedAt: time.Now().UTC(),
			UpdatedAt: time.Now().UTC(),
		}
		if msg := s.validateRow(ctx, raw); msg != "" {
			row.Status = importerdomain.RowError
			row.Message = msg
			batch.ErrorRows++
		} else {
			batch.ValidRows++
		}
		rows = append(rows, row)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.InsertBatch(ctx, tx, batch); err != nil {
			return err
		}
		return s.repo.InsertRows(ctx, tx, rows)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("import batch staged",
		zap.String("batch_id", batch.ID.String()),
		zap.Int("total", batch.TotalRows),
		zap.Int("errors", batch.ErrorRows),
	)

	return &importerdomain.StageResponse{
		BatchID:   batch.ID,
		TotalRows: batch.TotalRows,
		ValidRows: batch.ValidRows,
		ErrorRows: batch.ErrorRows,
		Rows:      rows,
	}, nil
}

// validateRow runs field checks plus the binary similarity policy: an exact
// catalog match or a clearly new name passes, a near-duplicate is an error
// the user must correct before the batch can commit.
func (s *Service) validateRow(ctx context.Context, raw importerdomain.RawRow) string {
	if strings.TrimSpace(raw.PublicationName) == "" && strings.TrimSpace(raw.PublicationCode) == "" {
		return "publication is required"
	}
	for _, field := range []struct{ name, value string }{
		{"ad category", raw.AdCategory},
		{"ad size", raw.AdSize},
		{"page position", raw.PagePosition},
		{"color type", raw.ColorType},
	} {
		if strings.TrimSpace(field.value) == "" {
			return field.name + " is required"
		}
	}

	baseRate, err := decimal.NewFromString(strings.TrimSpace(raw.BaseRate))
	if err != nil || !baseRate.IsPositive() {
		return "base rate must be a positive amount"
	}

	from, err := time.Parse(dateLayout, strings.TrimSpace(raw.EffectiveFrom))
	if err != nil {
		return "effective from must be a YYYY-MM-DD date"
	}
	if strings.TrimSpace(raw.EffectiveTo) != "" {
		to, err := time.Parse(dateLayout, strings.TrimSpace(raw.EffectiveTo))
		if err != nil {
			return "effective to must be a YYYY-MM-DD date"
		}
		if to.Before(from) {
			return "effective to precedes effective from"
		}
	}
	switch strings.ToLower(strings.TrimSpace(raw.Status)) {
	case "", "active", "inactive":
	default:
		return "status must be active or inactive"
	}

	for _, dim := range []struct {
		t    catalogdomain.DimensionType
		name string
	}{
		{catalogdomain.TypePublication, raw.PublicationName},
		{catalogdomain.TypeAdCategory, raw.AdCategory},
		{catalogdomain.TypeAdSize, raw.AdSize},
		{catalogdomain.TypePagePosition, raw.PagePosition},
		{catalogdomain.TypeColorType, raw.ColorType},
	} {
		if strings.TrimSpace(dim.name) == "" {
			continue
		}
		if _, err := s.catalog.ValidateName(ctx, dim.t, dim.name); err != nil {
			var ambiguous *catalogdomain.AmbiguousNameError
			if errors.As(err, &ambiguous) {
				return fmt.Sprintf("%s %q is too close to an existing entry, did you mean %q?",
					dim.t, strings.TrimSpace(dim.name), ambiguous.Suggestion())
			}
			return "validation failed: " + err.Error()
		}
	}
	return ""
}

func (s *Service) Commit(ctx context.Context, batchID string, actorID snowflake.ID) (*importerdomain.CommitResponse, error) {
	batch, rows, err := s.loadBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if batch.Status != importerdomain.BatchStaged {
		return nil, importerdomain.ErrBatchNotStaged
	}

	batch.Status = importerdomain.BatchCommitting
	if err := s.repo.UpdateBatch(ctx, s.db, batch); err != nil {
		return nil, err
	}

	resp := &importerdomain.CommitResponse{BatchID: batch.ID}
	for i := range rows {
		row := &rows[i]
		if row.Status != importerdomain.RowValid {
			resp.SkippedRows++
			continue
		}

		var raw importerdomain.RawRow
		if err := json.Unmarshal(row.Payload, &raw); err != nil {
			row.Status = importerdomain.RowError
			row.Message = "corrupt staged payload"
			resp.FailedRows++
			_ = s.repo.UpdateRow(ctx, s.db, row)
			continue
		}

		record, err := s.commitRow(ctx, raw, actorID)
		if err != nil {
			row.Status = importerdomain.RowError
			row.Message = commitErrorMessage(err)
			resp.FailedRows++
		} else {
			row.Status = importerdomain.RowCommitted
			row.Message = ""
			row.RateID = &record.ID
			resp.CommittedRows++
		}
		if err := s.repo.UpdateRow(ctx, s.db, row); err != nil {
			return nil, err
		}
	}

	batch.Status = importerdomain.BatchCommitted
	batch.ValidRows = resp.CommittedRows
	batch.ErrorRows = batch.TotalRows - resp.CommittedRows
	if err := s.repo.UpdateBatch(ctx, s.db, batch); err != nil {
		return nil, err
	}

	s.log.Info("import batch committed",
		zap.String("batch_id", batch.ID.String()),
		zap.Int("committed", resp.CommittedRows),
		zap.Int("failed", resp.FailedRows),
	)
	return resp, nil
}

func (s *Service) commitRow(ctx context.Context, raw importerdomain.RawRow, actorID snowflake.ID) (*ratedomain.RateRecord, error) {
	baseRate, err := decimal.NewFromString(strings.TrimSpace(raw.BaseRate))
	if err != nil {
		return nil, ratedomain.ErrInvalidBaseRate
	}
	from, err := time.Parse(dateLayout, strings.TrimSpace(raw.EffectiveFrom))
	if err != nil {
		return nil, ratedomain.ErrInvalidEffectiveFrom
	}
	var to *time.Time
	if strings.TrimSpace(raw.EffectiveTo) != "" {
		parsed, err := time.Parse(dateLayout, strings.TrimSpace(raw.EffectiveTo))
		if err != nil {
			return nil, ratedomain.ErrInvalidEffectiveFrom
		}
		to = &parsed
	}

	status := ratedomain.StatusActive
	if strings.EqualFold(strings.TrimSpace(raw.Status), string(ratedomain.StatusInactive)) {
		status = ratedomain.StatusInactive
	}

	return s.rateSvc.Create(ctx, ratedomain.CreateRequest{
		Dimensions: ratedomain.RawDimensions{
			PublicationCode: raw.PublicationCode,
			PublicationName: raw.PublicationName,
			ColorType:       raw.ColorType,
			AdCategory:      raw.AdCategory,
			AdSize:          raw.AdSize,
			PagePosition:    raw.PagePosition,
		},
		BaseRate:      baseRate,
		EffectiveFrom: from,
		EffectiveTo:   to,
		Status:        status,
		Notes:         raw.Notes,
		ActorID:       actorID,
	})
}

func commitErrorMessage(err error) string {
	switch {
	case errors.Is(err, ratedomain.ErrDuplicateRate):
		return "a rate with these dimensions and effective date already exists"
	case errors.Is(err, ratedomain.ErrMissingDimension):
		return "one or more dimensions are missing"
	default:
		return err.Error()
	}
}

func (s *Service) GetBatch(ctx context.Context, batchID string) (*importerdomain.BatchDetail, error) {
	batch, rows, err := s.loadBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	return &importerdomain.BatchDetail{Batch: *batch, Rows: rows}, nil
}

func (s *Service) loadBatch(ctx context.Context, batchID string) (*importerdomain.ImportBatch, []importerdomain.ImportRow, error) {
	id, err := uuid.Parse(strings.TrimSpace(batchID))
	if err != nil {
		return nil, nil, importerdomain.ErrInvalidBatchID
	}
	batch, err := s.repo.FindBatch(ctx, s.db, id)
	if err != nil {
		return nil, nil, err
	}
	if batch == nil {
		return nil, nil, importerdomain.ErrBatchNotFound
	}
	rows, err := s.repo.ListRows(ctx, s.db, id)
	if err != nil {
		return nil, nil, err
	}
	return batch, rows, nil
}
