package models

import (
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UserProfile holds the registration details linked to an auth identity.
type UserProfile struct {
	bun.BaseModel `bun:"table:user_profiles,alias:up"`

	ID               int       `bun:"id,pk,autoincrement" json:"id"`
	UserID           uuid.UUID `bun:"user_id,notnull,unique,type:uuid" json:"userID"`
	FullName         string    `bun:"full_name,notnull" json:"fullName"`
	Email            string    `bun:"email,notnull" json:"email"`
	Country          string    `bun:"country,notnull" json:"country"`
	TelegramUsername *string   `bun:"telegram_username" json:"telegramUsername,omitempty"`
	PhoneNumber      *string   `bun:"phone_number" json:"phoneNumber,omitempty"`
}
