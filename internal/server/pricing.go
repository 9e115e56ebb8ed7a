package server

import (
	"github.com/gin-gonic/gin"
	pricingdomain "github.com/pressratelabs/pressrate/internal/pricing/domain"
)

// @Summary      Price Quote
// @Description  Resolve the applicable rate for a dimension tuple and compute the full tax breakdown
// @Tags         pricing
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        request body pricingdomain.QuoteRequest true "Quote Request"
// @Success      200  {object}  DataResponse
// @Router       /quotes [post]
func (s *Server) Quote(c *gin.Context) {
	var req pricingdomain.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	quote, err := s.pricingSvc.Quote(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, quote)
}
