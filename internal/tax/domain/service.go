package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	// ApplicableRules returns the publication's resolved tax rules in
	// application order: priority ascending, ties by name ascending. The
	// order is part of the contract: cumulative rules feed the running
	// total consumed by later cumulative rules.
	ApplicableRules(ctx context.Context, publicationID snowflake.ID, asOf time.Time) ([]ResolvedTaxRule, error)
}

var ErrInvalidPublication = errors.New("invalid_publication")
