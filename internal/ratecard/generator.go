// Package ratecard renders a publication's active rates as a PDF, the
// downloadable rate card handed to advertisers.
package ratecard

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	marotoconfig "github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	catalogdomain "github.com/pressratelabs/pressrate/internal/catalog/domain"
	"github.com/pressratelabs/pressrate/internal/clock"
	ratedomain "github.com/pressratelabs/pressrate/internal/rate/domain"
	"github.com/pressratelabs/pressrate/pkg/currency"
	"github.com/pressratelabs/pressrate/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("ratecard",
	fx.Provide(NewGenerator),
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	Clock       clock.Clock
	RateRepo    ratedomain.Repository
	CatalogRepo catalogdomain.Repository
	Formatter   *currency.Formatter
}

type Generator struct {
	db          *gorm.DB
	log         *zap.Logger
	clock       clock.Clock
	rateRepo    ratedomain.Repository
	catalogRepo catalogdomain.Repository
	formatter   *currency.Formatter
}

func NewGenerator(p Params) *Generator {
	return &Generator{
		db:          p.DB,
		log:         p.Log.Named("ratecard"),
		clock:       p.Clock,
		rateRepo:    p.RateRepo,
		catalogRepo: p.CatalogRepo,
		formatter:   p.Formatter,
	}
}

// Generate renders the active rate card for one publication.
func (g *Generator) Generate(ctx context.Context, publicationID string) ([]byte, error) {
	pubID, err := snowflake.ParseString(strings.TrimSpace(publicationID))
	if err != nil {
		return nil, ratedomain.ErrInvalidID
	}
	publication, err := g.catalogRepo.FindByID(ctx, g.db, pubID)
	if err != nil {
		return nil, err
	}
	if publication == nil {
		return nil, ratedomain.ErrNotFound
	}

	active := true
	rates, err := g.rateRepo.List(ctx, g.db, ratedomain.ListRequest{
		PublicationID: pubID.String(),
		Active:        &active,
	}, pagination.Pagination{})
	if err != nil {
		return nil, err
	}

	now := g.clock.Now(ctx)

	m := maroto.New(marotoconfig.NewBuilder().
		WithLeftMargin(10).
		WithRightMargin(10).
		Build())

	m.AddRow(12, text.NewCol(12, fmt.Sprintf("%s Rate Card", publication.Name), props.Text{
		Style: fontstyle.Bold,
		Size:  14,
		Align: align.Center,
	}))
	m.AddRow(6, text.NewCol(12, "Generated "+now.Format("2 January 2006"), props.Text{
		Size:  8,
		Align: align.Center,
	}))

	header := row.New(8).Add(
		text.NewCol(3, "Category", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Size", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Position", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Color", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(3, "Base Rate", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)
	m.AddRows(header)

	for _, rate := range rates {
		names, err := g.dimensionNames(ctx, rate)
		if err != nil {
			return nil, err
		}
		m.AddRows(row.New(7).Add(
			text.NewCol(3, names.category, props.Text{Size: 9}),
			text.NewCol(2, names.size, props.Text{Size: 9}),
			text.NewCol(2, names.position, props.Text{Size: 9}),
			text.NewCol(2, names.color, props.Text{Size: 9}),
			text.NewCol(3, g.formatter.Format(rate.BaseRate), props.Text{Size: 9, Align: align.Right}),
		))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

type dimensionNames struct {
	category, size, position, color string
}

func (g *Generator) dimensionNames(ctx context.Context, rate *ratedomain.RateRecord) (dimensionNames, error) {
	var names dimensionNames
	targets := []struct {
		id  snowflake.ID
		dst *string
	}{
		{rate.AdCategoryID, &names.category},
		{rate.AdSizeID, &names.size},
		{rate.PagePositionID, &names.position},
		{rate.ColorTypeID, &names.color},
	}
	for _, target := range targets {
		entity, err := g.catalogRepo.FindByID(ctx, g.db, target.id)
		if err != nil {
			return dimensionNames{}, err
		}
		if entity != nil {
			*target.dst = entity.Name
		}
	}
	return names, nil
}
