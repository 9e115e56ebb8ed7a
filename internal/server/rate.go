package server

import (
	"github.com/gin-gonic/gin"
	ratedomain "github.com/pressratelabs/pressrate/internal/rate/domain"
)

// @Summary      Create Rate
// @Description  Create a rate record, resolving dimension names to catalog entities
// @Tags         rates
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        request body ratedomain.CreateRequest true "Create Rate Request"
// @Success      200  {object}  DataResponse
// @Router       /rates [post]
func (s *Server) CreateRate(c *gin.Context) {
	var req ratedomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ActorID = actorIDFromContext(c.Request.Context())

	rate, err := s.rateSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, rate)
}

// @Summary      List Rates
// @Description  List rate records, filterable by publication
// @Tags         rates
// @Produce      json
// @Security     ApiKeyAuth
// @Param        publication_id query  string  false  "Publication ID"
// @Param        active         query  bool    false  "Active"
// @Param        page_token     query  string  false  "Page Token"
// @Param        page_size      query  int     false  "Page Size"
// @Success      200  {object}  ListResponse
// @Router       /rates [get]
func (s *Server) ListRates(c *gin.Context) {
	var req ratedomain.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.rateSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondList(c, resp.Rates, &resp.PageInfo)
}

// @Summary      Get Rate
// @Tags         rates
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id  path  string  true  "Rate ID"
// @Success      200  {object}  DataResponse
// @Router       /rates/{id} [get]
func (s *Server) GetRate(c *gin.Context) {
	rate, err := s.rateSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, rate)
}

// @Summary      Update Rate
// @Description  Amend a rate's amount, window or notes. Rates referenced by bookings reject amendments.
// @Tags         rates
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id      path  string                   true  "Rate ID"
// @Param        request body  ratedomain.UpdateRequest true  "Update Rate Request"
// @Success      200  {object}  DataResponse
// @Router       /rates/{id} [patch]
func (s *Server) UpdateRate(c *gin.Context) {
	var req ratedomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = c.Param("id")
	req.ActorID = actorIDFromContext(c.Request.Context())

	rate, err := s.rateSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, rate)
}

// @Summary      Deactivate Rate
// @Description  Take a rate out of resolution without deleting it
// @Tags         rates
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id  path  string  true  "Rate ID"
// @Success      200  {object}  DataResponse
// @Router       /rates/{id}/deactivate [post]
func (s *Server) DeactivateRate(c *gin.Context) {
	rate, err := s.rateSvc.Deactivate(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, rate)
}

// @Summary      Delete Rate
// @Description  Soft-delete a rate. Rates referenced by bookings cannot be deleted.
// @Tags         rates
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id  path  string  true  "Rate ID"
// @Success      200  {object}  DataResponse
// @Router       /rates/{id} [delete]
func (s *Server) DeleteRate(c *gin.Context) {
	if err := s.rateSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, gin.H{"id": c.Param("id"), "deleted": true})
}
