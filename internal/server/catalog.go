package server

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/pressratelabs/pressrate/internal/catalog/domain"
)

type validateNameRequest struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

type validateNameResponse struct {
	Accepted   bool                 `json:"accepted"`
	Exact      *catalogdomain.Match `json:"exact,omitempty"`
	Suggestion string               `json:"suggestion,omitempty"`
}

// @Summary      List Catalog Entries
// @Description  List dimension entities, filterable by type and name
// @Tags         catalog
// @Produce      json
// @Security     ApiKeyAuth
// @Param        type       query  string  false  "Dimension Type"
// @Param        name       query  string  false  "Name"
// @Param        active     query  bool    false  "Active"
// @Param        page_token query  string  false  "Page Token"
// @Param        page_size  query  int     false  "Page Size"
// @Success      200  {object}  ListResponse
// @Router       /catalog [get]
func (s *Server) ListCatalog(c *gin.Context) {
	var req catalogdomain.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.catalogSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondList(c, resp.Entities, &resp.PageInfo)
}

// @Summary      Validate Catalog Name
// @Description  Apply the duplicate-prevention policy to a candidate name
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        request body validateNameRequest true "Validate Name Request"
// @Success      200  {object}  DataResponse
// @Router       /catalog/validate [post]
func (s *Server) ValidateCatalogName(c *gin.Context) {
	var req validateNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	match, err := s.catalogSvc.ValidateName(c.Request.Context(), catalogdomain.DimensionType(strings.TrimSpace(req.Type)), req.Name)
	if err != nil {
		var ambiguous *catalogdomain.AmbiguousNameError
		if errors.As(err, &ambiguous) {
			respondData(c, validateNameResponse{Accepted: false, Suggestion: ambiguous.Suggestion()})
			return
		}
		AbortWithError(c, err)
		return
	}

	respondData(c, validateNameResponse{Accepted: true, Exact: match})
}

// @Summary      Similar Catalog Entries
// @Description  Rank existing entries by similarity to a candidate name
// @Tags         catalog
// @Produce      json
// @Security     ApiKeyAuth
// @Param        type  query  string  true  "Dimension Type"
// @Param        name  query  string  true  "Candidate Name"
// @Success      200  {object}  DataResponse
// @Router       /catalog/similar [get]
func (s *Server) SimilarCatalogEntries(c *gin.Context) {
	t := catalogdomain.DimensionType(strings.TrimSpace(c.Query("type")))
	name := c.Query("name")

	matches, err := s.catalogSvc.FindSimilar(c.Request.Context(), t, name)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, matches)
}

type setStatusRequest struct {
	Status string `json:"status"`
}

// @Summary      Set Catalog Entry Status
// @Description  Activate or retire a dimension entity
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id      path  string            true  "Entity ID"
// @Param        request body  setStatusRequest  true  "Set Status Request"
// @Success      200  {object}  DataResponse
// @Router       /catalog/{id}/status [patch]
func (s *Server) SetCatalogStatus(c *gin.Context) {
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	status := catalogdomain.EntityStatus(strings.TrimSpace(req.Status))
	if err := s.catalogSvc.SetStatus(c.Request.Context(), c.Param("id"), status); err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, gin.H{"id": c.Param("id"), "status": status})
}
