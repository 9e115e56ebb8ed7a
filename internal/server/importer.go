package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	importerdomain "github.com/pressratelabs/pressrate/internal/importer/domain"
)

type stageImportRequest struct {
	Filename string                  `json:"filename"`
	Rows     []importerdomain.RawRow `json:"rows"`
}

// @Summary      Stage Import Batch
// @Description  Validate uploaded rate rows and stage them for commit
// @Tags         imports
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        request body stageImportRequest true "Stage Import Request"
// @Success      200  {object}  DataResponse
// @Router       /imports [post]
func (s *Server) StageImport(c *gin.Context) {
	var req stageImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	actor := actorIDFromContext(c.Request.Context())
	if err := s.limiter.AllowImportRows(c.Request.Context(), actor.String(), len(req.Rows)); err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.importSvc.Stage(c.Request.Context(), importerdomain.StageRequest{
		Filename: strings.TrimSpace(req.Filename),
		Rows:     req.Rows,
		ActorID:  actor,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, resp)
}

// @Summary      Commit Import Batch
// @Description  Insert one rate per valid staged row
// @Tags         imports
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id  path  string  true  "Batch ID"
// @Success      200  {object}  DataResponse
// @Router       /imports/{id}/commit [post]
func (s *Server) CommitImport(c *gin.Context) {
	resp, err := s.importSvc.Commit(c.Request.Context(), c.Param("id"), actorIDFromContext(c.Request.Context()))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, resp)
}

// @Summary      Get Import Batch
// @Description  Fetch a batch with its per-row statuses
// @Tags         imports
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id  path  string  true  "Batch ID"
// @Success      200  {object}  DataResponse
// @Router       /imports/{id} [get]
func (s *Server) GetImport(c *gin.Context) {
	detail, err := s.importSvc.GetBatch(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, detail)
}
