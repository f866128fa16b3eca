package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Bet is a single wagered prediction on a race. Returns and ProfitLoss stay
// null until the bet settles.
type Bet struct {
	bun.BaseModel `bun:"table:racing_bets,alias:rb"`

	ID                uuid.UUID        `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	UserID            uuid.UUID        `bun:"user_id,notnull,type:uuid" json:"userID"`
	TrackName         string           `bun:"track_name,notnull" json:"trackName"`
	HorseName         *string          `bun:"horse_name" json:"horseName,omitempty"`
	Jockey            *string          `bun:"jockey" json:"jockey,omitempty"`
	Trainer           *string          `bun:"trainer" json:"trainer,omitempty"`
	RaceNumber        *string          `bun:"race_number" json:"raceNumber,omitempty"`
	RaceDistance      *string          `bun:"race_distance" json:"raceDistance,omitempty"`
	RaceType          *string          `bun:"race_type" json:"raceType,omitempty"`
	RaceDate          *string          `bun:"race_date" json:"raceDate,omitempty"`
	ScheduledRaceTime *string          `bun:"scheduled_race_time" json:"scheduledRaceTime,omitempty"`
	BetType           string           `bun:"bet_type,notnull" json:"betType"`
	Stake             decimal.Decimal  `bun:"stake,notnull,type:numeric" json:"stake"`
	Odds              decimal.Decimal  `bun:"odds,notnull,type:numeric" json:"odds"`
	EachWay           *bool            `bun:"each_way" json:"eachWay,omitempty"`
	Status            string           `bun:"status,notnull,default:'pending'" json:"status"`
	Bookmaker         *string          `bun:"bookmaker" json:"bookmaker,omitempty"`
	Model             *string          `bun:"model" json:"model,omitempty"`
	Notes             *string          `bun:"notes" json:"notes,omitempty"`
	Returns           *decimal.Decimal `bun:"returns,type:numeric" json:"returns,omitempty"`
	ProfitLoss        *decimal.Decimal `bun:"profit_loss,type:numeric" json:"profitLoss,omitempty"`
	Horses            json.RawMessage  `bun:"horses,type:jsonb" json:"horses,omitempty"`
	CreatedAt         time.Time        `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt         time.Time        `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
}

// BetHorse is one selection inside the denormalized horses list.
type BetHorse struct {
	Name       string          `json:"name"`
	RaceNumber *string         `json:"race_number,omitempty"`
	Venue      *string         `json:"venue,omitempty"`
	Odds       decimal.Decimal `json:"odds"`
}
