package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	mw "github.com/padraicbc/betlog/middleware"
)

const statsTTL = 60 * time.Second

type statsSummary struct {
	TotalBets    int             `json:"totalBets"`
	PendingBets  int             `json:"pendingBets"`
	WonBets      int             `json:"wonBets"`
	LostBets     int             `json:"lostBets"`
	VoidBets     int             `json:"voidBets"`
	TotalStaked  decimal.Decimal `json:"totalStaked"`
	TotalReturns decimal.Decimal `json:"totalReturns"`
	NetProfit    decimal.Decimal `json:"netProfit"`
}

// Stats returns the caller's aggregated profit/loss summary. Results are
// served from the Redis cache for a short TTL when one is configured; any bet
// mutation invalidates the entry.
func (h *Handler) Stats(c echo.Context) error {
	userID, ok := mw.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "no user found")
	}

	ctx := c.Request().Context()
	key := statsKey(userID)

	if cached := h.cache.Get(ctx, key); cached != "" {
		return c.JSONBlob(http.StatusOK, []byte(cached))
	}

	var summary statsSummary
	err := h.db.NewRaw(`
		SELECT
			COUNT(*) AS total_bets,
			COUNT(*) FILTER (WHERE status ILIKE '%pending%') AS pending_bets,
			COUNT(*) FILTER (WHERE lower(trim(status)) IN ('won', 'win')) AS won_bets,
			COUNT(*) FILTER (WHERE lower(trim(status)) IN ('lost', 'lose')) AS lost_bets,
			COUNT(*) FILTER (WHERE lower(trim(status)) IN ('void', 'voided')) AS void_bets,
			COALESCE(SUM(stake), 0) AS total_staked,
			COALESCE(SUM(returns), 0) AS total_returns,
			COALESCE(SUM(profit_loss), 0) AS net_profit
		FROM racing_bets
		WHERE user_id = ?`,
		userID,
	).Scan(ctx, &summary.TotalBets, &summary.PendingBets, &summary.WonBets,
		&summary.LostBets, &summary.VoidBets, &summary.TotalStaked,
		&summary.TotalReturns, &summary.NetProfit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if body, err := json.Marshal(summary); err == nil {
		h.cache.Set(ctx, key, string(body), statsTTL)
	}

	return c.JSON(http.StatusOK, summary)
}
