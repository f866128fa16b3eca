package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	mw "github.com/padraicbc/betlog/middleware"
	"github.com/padraicbc/betlog/models"
)

// GetSettings returns the caller's settings row.
func (h *Handler) GetSettings(c echo.Context) error {
	userID, ok := mw.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "no user found")
	}

	settings := &models.UserSettings{}
	err := h.db.NewSelect().Model(settings).
		Where("us.user_id = ?", userID).
		Scan(c.Request().Context())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "settings not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, settings)
}

type settingsUpdateRequest struct {
	DefaultStake        *decimal.Decimal `json:"defaultStake"`
	DefaultBankrollID   *uuid.UUID       `json:"defaultBankrollID"`
	StakeCurrency       *string          `json:"stakeCurrency"`
	PreferredOddsFormat *string          `json:"preferredOddsFormat"`
	Preferences         json.RawMessage  `json:"preferences"`
}

// UpdateSettings changes the caller's settings row.
func (h *Handler) UpdateSettings(c echo.Context) error {
	userID, ok := mw.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "no user found")
	}

	var req settingsUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	q := h.db.NewUpdate().
		Model((*models.UserSettings)(nil)).
		Where("us.user_id = ?", userID)

	set := false
	if req.DefaultStake != nil {
		if req.DefaultStake.IsNegative() {
			return echo.NewHTTPError(http.StatusBadRequest, "defaultStake must be non-negative")
		}
		q = q.Set("default_stake = ?", *req.DefaultStake)
		set = true
	}
	if req.DefaultBankrollID != nil {
		q = q.Set("default_bankroll_id = ?", *req.DefaultBankrollID)
		set = true
	}
	if req.StakeCurrency != nil {
		q = q.Set("stake_currency = ?", strings.ToUpper(strings.TrimSpace(*req.StakeCurrency)))
		set = true
	}
	if req.PreferredOddsFormat != nil {
		format := strings.ToLower(strings.TrimSpace(*req.PreferredOddsFormat))
		if format != "decimal" && format != "fractional" && format != "american" {
			return echo.NewHTTPError(http.StatusBadRequest, "preferredOddsFormat must be decimal, fractional or american")
		}
		q = q.Set("preferred_odds_format = ?", format)
		set = true
	}
	if len(req.Preferences) > 0 {
		q = q.Set("preferences = ?", req.Preferences)
		set = true
	}
	if !set {
		return echo.NewHTTPError(http.StatusBadRequest, "no fields to update")
	}

	res, err := q.Exec(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "settings not found")
	}

	return c.NoContent(http.StatusOK)
}
