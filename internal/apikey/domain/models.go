package domain

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"golang.org/x/crypto/sha3"
)

const keyPrefix = "prk_"

// Role names match the casbin policy subjects.
const (
	RoleAdmin  = "role:admin"
	RoleViewer = "role:viewer"
)

type APIKey struct {
	ID        snowflake.ID `gorm:"column:id;primaryKey" json:"id"`
	Name      string       `gorm:"column:name" json:"name"`
	KeyHash   string       `gorm:"column:key_hash" json:"-"`
	Role      string       `gorm:"column:role" json:"role"`
	IsActive  bool         `gorm:"column:is_active" json:"is_active"`
	ExpiresAt *time.Time   `gorm:"column:expires_at" json:"expires_at,omitempty"`
	CreatedAt time.Time    `gorm:"column:created_at" json:"created_at"`
}

func (APIKey) TableName() string { return "api_keys" }

// GenerateAPIKey returns a new plaintext key. Only the hash is stored; the
// plaintext is shown to the caller once at creation time.
func GenerateAPIKey() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate api key: %w", err)
	}
	return keyPrefix + hex.EncodeToString(buf), nil
}

// HashAPIKey produces the deterministic digest stored in key_hash.
func HashAPIKey(raw string) string {
	digest := sha3.Sum256([]byte(raw))
	return hex.EncodeToString(digest[:])
}

func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleViewer
}
