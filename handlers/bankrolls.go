package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	mw "github.com/padraicbc/betlog/middleware"
	"github.com/padraicbc/betlog/models"
)

// ListBankrolls returns the caller's bankrolls, newest first.
func (h *Handler) ListBankrolls(c echo.Context) error {
	userID, ok := mw.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "no user found")
	}

	var bankrolls []models.Bankroll
	err := h.db.NewSelect().Model(&bankrolls).
		Where("b.user_id = ?", userID).
		OrderExpr("b.created_at DESC").
		Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, bankrolls)
}

type bankrollUpdateRequest struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	CurrentAmount *decimal.Decimal `json:"currentAmount"`
	Currency      *string          `json:"currency"`
	IsActive      *bool            `json:"isActive"`
}

// UpdateBankroll changes one of the caller's bankrolls.
func (h *Handler) UpdateBankroll(c echo.Context) error {
	userID, ok := mw.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "no user found")
	}

	bankrollID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid bankroll id")
	}

	var req bankrollUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	q := h.db.NewUpdate().
		Model((*models.Bankroll)(nil)).
		Where("b.id = ?", bankrollID).
		Where("b.user_id = ?", userID)

	set := false
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "name cannot be empty")
		}
		q = q.Set("name = ?", strings.TrimSpace(*req.Name))
		set = true
	}
	if req.Description != nil {
		q = q.Set("description = ?", *req.Description)
		set = true
	}
	if req.CurrentAmount != nil {
		if req.CurrentAmount.IsNegative() {
			return echo.NewHTTPError(http.StatusBadRequest, "currentAmount must be non-negative")
		}
		q = q.Set("current_amount = ?", *req.CurrentAmount)
		set = true
	}
	if req.Currency != nil {
		q = q.Set("currency = ?", strings.ToUpper(strings.TrimSpace(*req.Currency)))
		set = true
	}
	if req.IsActive != nil {
		q = q.Set("is_active = ?", *req.IsActive)
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
		return echo.NewHTTPError(http.StatusNotFound, "bankroll not found")
	}

	return c.NoContent(http.StatusOK)
}
