package models

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// UserSettings stores per-user defaults and a free-form preference bag.
type UserSettings struct {
	bun.BaseModel `bun:"table:user_settings,alias:us"`

	ID                  int             `bun:"id,pk,autoincrement" json:"id"`
	UserID              uuid.UUID       `bun:"user_id,notnull,unique,type:uuid" json:"userID"`
	DefaultStake        decimal.Decimal `bun:"default_stake,notnull,type:numeric" json:"defaultStake"`
	DefaultBankrollID   *uuid.UUID      `bun:"default_bankroll_id,type:uuid" json:"defaultBankrollID,omitempty"`
	StakeCurrency       string          `bun:"stake_currency,notnull" json:"stakeCurrency"`
	PreferredOddsFormat string          `bun:"preferred_odds_format,notnull" json:"preferredOddsFormat"`
	Preferences         json.RawMessage `bun:"preferences,type:jsonb" json:"preferences,omitempty"`
}
