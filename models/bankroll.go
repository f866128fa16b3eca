package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Bankroll is a user's tracked pool of betting funds.
type Bankroll struct {
	bun.BaseModel `bun:"table:bankrolls,alias:b"`

	ID            uuid.UUID       `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	UserID        uuid.UUID       `bun:"user_id,notnull,type:uuid" json:"userID"`
	Name          string          `bun:"name,notnull" json:"name"`
	Description   string          `bun:"description" json:"description,omitempty"`
	InitialAmount decimal.Decimal `bun:"initial_amount,notnull,type:numeric" json:"initialAmount"`
	CurrentAmount decimal.Decimal `bun:"current_amount,notnull,type:numeric" json:"currentAmount"`
	Currency      string          `bun:"currency,notnull" json:"currency"`
	IsActive      bool            `bun:"is_active,notnull,default:true" json:"isActive"`
	CreatedAt     time.Time       `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
}
