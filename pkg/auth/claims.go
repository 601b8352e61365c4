package auth

import (
	"github.com/classcooks/classcooks-backend/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the identity payload supplied by the external identity provider.
// The backend consumes it read-only to stamp ownership and gate access.
type Claims struct {
	UserID      uuid.UUID      `json:"user_id"`
	Email       string         `json:"email"`
	DisplayName string         `json:"display_name,omitempty"`
	Role        enums.UserRole `json:"role"`
	SchoolID    uuid.UUID      `json:"school_id"`
	ClassID     *uuid.UUID     `json:"class_id,omitempty"`
	Admin       bool           `json:"admin"`
	jwt.RegisteredClaims
}
