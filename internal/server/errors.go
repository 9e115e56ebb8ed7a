package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apikeydomain "github.com/pressratelabs/pressrate/internal/apikey/domain"
	"github.com/pressratelabs/pressrate/internal/authz"
	catalogdomain "github.com/pressratelabs/pressrate/internal/catalog/domain"
	importerdomain "github.com/pressratelabs/pressrate/internal/importer/domain"
	pricingdomain "github.com/pressratelabs/pressrate/internal/pricing/domain"
	ratedomain "github.com/pressratelabs/pressrate/internal/rate/domain"
	"github.com/pressratelabs/pressrate/internal/ratelimit"
	"go.uber.org/zap"
)

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidRequest = errors.New("invalid_request")
)

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func invalidRequestError() error { return ErrInvalidRequest }

// AbortWithError translates domain sentinels into HTTP statuses. Unknown
// errors are logged and masked as 500s.
func AbortWithError(c *gin.Context, err error) {
	status, code := statusFor(err)

	body := ErrorResponse{Error: code}
	if status != http.StatusInternalServerError {
		body.Detail = err.Error()
	} else {
		zap.L().Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}

	c.AbortWithStatusJSON(status, body)
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, authz.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, ratelimit.ErrRateLimited):
		return http.StatusTooManyRequests, "rate_limited"

	case errors.Is(err, catalogdomain.ErrAmbiguousName):
		return http.StatusConflict, "ambiguous_name"
	case errors.Is(err, catalogdomain.ErrAlreadyExists):
		return http.StatusConflict, "already_exists"
	case errors.Is(err, ratedomain.ErrDuplicateRate):
		return http.StatusConflict, "duplicate_rate"
	case errors.Is(err, ratedomain.ErrRateInUse):
		return http.StatusConflict, "rate_in_use"

	case errors.Is(err, catalogdomain.ErrNotFound),
		errors.Is(err, ratedomain.ErrNotFound),
		errors.Is(err, ratedomain.ErrNoRateFound),
		errors.Is(err, apikeydomain.ErrNotFound),
		errors.Is(err, importerdomain.ErrBatchNotFound):
		return http.StatusNotFound, "not_found"

	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, catalogdomain.ErrInvalidType),
		errors.Is(err, catalogdomain.ErrInvalidName),
		errors.Is(err, catalogdomain.ErrInvalidID),
		errors.Is(err, ratedomain.ErrMissingDimension),
		errors.Is(err, ratedomain.ErrInvalidBaseRate),
		errors.Is(err, ratedomain.ErrInvalidEffectiveFrom),
		errors.Is(err, ratedomain.ErrInvalidID),
		errors.Is(err, pricingdomain.ErrInvalidInsertions),
		errors.Is(err, pricingdomain.ErrInvalidDiscount),
		errors.Is(err, apikeydomain.ErrInvalidName),
		errors.Is(err, apikeydomain.ErrInvalidRole),
		errors.Is(err, apikeydomain.ErrInvalidID),
		errors.Is(err, importerdomain.ErrEmptyBatch),
		errors.Is(err, importerdomain.ErrInvalidBatchID),
		errors.Is(err, importerdomain.ErrTooManyRows):
		return http.StatusBadRequest, "invalid_request"

	case errors.Is(err, importerdomain.ErrBatchNotStaged):
		return http.StatusConflict, "batch_not_staged"
	}

	return http.StatusInternalServerError, "internal_error"
}
