package server

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	apikeydomain "github.com/pressratelabs/pressrate/internal/apikey/domain"
)

type contextKey string

const (
	contextAPIKeyIDKey contextKey = "api_key_id"
	contextRoleKey     contextKey = "api_key_role"
)

// APIKeyRequired authenticates requests with a bearer API key. The key's
// role and id travel on the request context for the authz checks and the
// created_by columns.
func (s *Server) APIKeyRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		if err := s.limiter.AllowRequest(c.Request.Context(), parts[1]); err != nil {
			AbortWithError(c, err)
			return
		}

		hash := apikeydomain.HashAPIKey(parts[1])
		now := time.Now().UTC()

		var record struct {
			ID      snowflake.ID `gorm:"column:id"`
			KeyHash string       `gorm:"column:key_hash"`
			Role    string       `gorm:"column:role"`
		}

		if err := s.db.WithContext(c.Request.Context()).Raw(
			`SELECT id, key_hash, role
			 FROM api_keys
			 WHERE key_hash = ?
			   AND is_active = true
			   AND (expires_at IS NULL OR expires_at > ?)
			 LIMIT 1`,
			hash,
			now,
		).Scan(&record).Error; err != nil {
			AbortWithError(c, err)
			return
		}

		if record.ID == 0 || subtle.ConstantTimeCompare([]byte(record.KeyHash), []byte(hash)) != 1 {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		ctx := c.Request.Context()
		ctx = context.WithValue(ctx, contextAPIKeyIDKey, record.ID)
		ctx = context.WithValue(ctx, contextRoleKey, record.Role)

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireAction gates a route on the caller's role having the given
// permission in the casbin policy set.
func (s *Server) RequireAction(object, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.gate.MustBeAllowed(c.Request.Context(), roleFromContext(c.Request.Context()), object, action); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

// RequireAdmin gates key management, which is not part of the policy set.
func (s *Server) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if roleFromContext(c.Request.Context()) != apikeydomain.RoleAdmin {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		c.Next()
	}
}

func roleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(contextRoleKey).(string)
	return role
}

func actorIDFromContext(ctx context.Context) snowflake.ID {
	id, _ := ctx.Value(contextAPIKeyIDKey).(snowflake.ID)
	return id
}
