package entity

import (
	"time"

	"github.com/google/uuid"
)

// Contact stores a person discovered for a business. At most one row exists
// per (business_id, email) pair; creation is dedup-checked before insert.
type Contact struct {
	ID            uuid.UUID `json:"id"`
	BusinessID    uuid.UUID `json:"business_id"`
	Email         string    `json:"email"`
	Name          *string   `json:"name,omitempty"`
	Title         *string   `json:"title,omitempty"`
	Phone         *string   `json:"phone,omitempty"`
	EmailVerified bool      `json:"email_verified"`
	IsPrimary     bool      `json:"is_primary"`
	CreatedAt     time.Time `json:"created_at"`
}
