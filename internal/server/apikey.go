package server

import (
	"github.com/gin-gonic/gin"
	apikeydomain "github.com/pressratelabs/pressrate/internal/apikey/domain"
)

// @Summary      Create API Key
// @Description  Mint a new API key; the plaintext is returned once
// @Tags         api-keys
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        request body apikeydomain.CreateRequest true "Create API Key Request"
// @Success      200  {object}  DataResponse
// @Router       /api-keys [post]
func (s *Server) CreateAPIKey(c *gin.Context) {
	var req apikeydomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	created, err := s.apiKeySvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, created)
}

// @Summary      List API Keys
// @Tags         api-keys
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  DataResponse
// @Router       /api-keys [get]
func (s *Server) ListAPIKeys(c *gin.Context) {
	keys, err := s.apiKeySvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, keys)
}

// @Summary      Revoke API Key
// @Tags         api-keys
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id  path  string  true  "Key ID"
// @Success      200  {object}  DataResponse
// @Router       /api-keys/{id} [delete]
func (s *Server) RevokeAPIKey(c *gin.Context) {
	if err := s.apiKeySvc.Revoke(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, gin.H{"id": c.Param("id"), "revoked": true})
}
