package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/padraicbc/betlog/betstatus"
	mw "github.com/padraicbc/betlog/middleware"
	"github.com/padraicbc/betlog/models"
)

// betView is the presenter shape for one bet: the stored row plus display
// annotations the cards render directly.
type betView struct {
	models.Bet

	StatusLabel       string            `json:"statusLabel"`
	ColorToken        string            `json:"colorToken"`
	HorseDisplay      string            `json:"horseDisplay"`
	TrackDisplay      string            `json:"trackDisplay"`
	StakeDisplay      string            `json:"stakeDisplay"`
	OddsDisplay       string            `json:"oddsDisplay"`
	ReturnsDisplay    string            `json:"returnsDisplay,omitempty"`
	ProfitLossDisplay string            `json:"profitLossDisplay,omitempty"`
	Horses            []models.BetHorse `json:"horses"`
}

type betListResponse struct {
	Seq   int       `json:"seq,omitempty"`
	Count int       `json:"count"`
	Bets  []betView `json:"bets"`
}

// applyView narrows a bets query to the given view. "settled" is defined as
// the complement of "pending" so the two views always partition the set.
func applyView(q *bun.SelectQuery, view string) *bun.SelectQuery {
	switch view {
	case "pending":
		return q.Where("rb.status ILIKE ?", "%pending%")
	case "settled":
		return q.Where("rb.status NOT ILIKE ?", "%pending%")
	}
	return q
}

// deleteBetQuery builds the delete for one bet. Both the id and the owner are
// always constrained; a foreign bet id deletes nothing.
func deleteBetQuery(db *bun.DB, betID, userID uuid.UUID) *bun.DeleteQuery {
	return db.NewDelete().
		Model((*models.Bet)(nil)).
		Where("rb.id = ?", betID).
		Where("rb.user_id = ?", userID)
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func validTimestamp(s string) bool {
	for _, layout := range timestampLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// sanitizeDates nulls out date fields that fail to parse so formatting never
// chokes downstream. Invalid dates are treated as absent, not as errors.
func sanitizeDates(bets []models.Bet, log *zap.Logger) {
	for i := range bets {
		if v := bets[i].ScheduledRaceTime; v != nil && !validTimestamp(*v) {
			log.Warn("invalid scheduled_race_time", zap.String("bet_id", bets[i].ID.String()), zap.String("value", *v))
			bets[i].ScheduledRaceTime = nil
		}
		if v := bets[i].RaceDate; v != nil && !validTimestamp(*v) {
			log.Warn("invalid race_date", zap.String("bet_id", bets[i].ID.String()), zap.String("value", *v))
			bets[i].RaceDate = nil
		}
	}
}

// filterByHorse applies the case-insensitive substring search on horse name.
// An empty query returns the input untouched.
func filterByHorse(bets []models.Bet, search string) []models.Bet {
	if search == "" {
		return bets
	}

	needle := strings.ToLower(search)
	out := make([]models.Bet, 0, len(bets))
	for _, b := range bets {
		if b.HorseName != nil && strings.Contains(strings.ToLower(*b.HorseName), needle) {
			out = append(out, b)
		}
	}
	return out
}

// presentBet annotates a stored bet with its display fields. Outcome values
// are only rendered once the status no longer classifies as pending.
func presentBet(b models.Bet) betView {
	info := betstatus.Classify(b.Status)

	horseName := ""
	if b.HorseName != nil {
		horseName = *b.HorseName
	}

	view := betView{
		Bet:          b,
		StatusLabel:  info.Label,
		ColorToken:   info.Color,
		HorseDisplay: truncateName(formatName(horseName, "Unknown Horse")),
		TrackDisplay: formatName(b.TrackName, "Unknown Track"),
		StakeDisplay: formatAmount(b.Stake),
		OddsDisplay:  formatAmount(b.Odds),
	}

	if !betstatus.IsPending(b.Status) {
		returns := decimal.Zero
		if b.Returns != nil {
			returns = *b.Returns
		}
		pl := decimal.Zero
		if b.ProfitLoss != nil {
			pl = *b.ProfitLoss
		}
		view.ReturnsDisplay = formatAmount(returns)
		view.ProfitLossDisplay = formatSigned(pl)
	}

	if len(b.Horses) > 0 {
		_ = json.Unmarshal(b.Horses, &view.Horses)
	}
	if len(view.Horses) == 0 {
		view.Horses = []models.BetHorse{{Name: horseName, Odds: b.Odds}}
	}

	return view
}

// ListBets returns the caller's bets for a view (all, pending, settled),
// ordered by creation time, with the horse-name search applied after the
// query. The seq param is echoed back so clients can discard stale responses.
func (h *Handler) ListBets(c echo.Context) error {
	userID, ok := mw.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "no user found")
	}

	view := c.QueryParam("view")
	if view == "" {
		view = "all"
	}
	if view != "all" && view != "pending" && view != "settled" {
		return echo.NewHTTPError(http.StatusBadRequest, "view must be all, pending or settled")
	}

	order := "rb.created_at DESC"
	if c.QueryParam("sort") == "asc" {
		order = "rb.created_at ASC"
	}

	var bets []models.Bet
	q := h.db.NewSelect().Model(&bets).
		Where("rb.user_id = ?", userID)
	q = applyView(q, view).OrderExpr(order)

	if err := q.Scan(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	sanitizeDates(bets, h.log)
	bets = filterByHorse(bets, c.QueryParam("search"))

	views := make([]betView, len(bets))
	for i, b := range bets {
		views[i] = presentBet(b)
	}

	// Echoed back so clients can discard responses from superseded fetches.
	seq, _ := strconv.Atoi(c.QueryParam("seq"))

	return c.JSON(http.StatusOK, betListResponse{Seq: seq, Count: len(views), Bets: views})
}

type betWriteRequest struct {
	TrackName         *string          `json:"trackName"`
	HorseName         *string          `json:"horseName"`
	Jockey            *string          `json:"jockey"`
	Trainer           *string          `json:"trainer"`
	RaceNumber        *string          `json:"raceNumber"`
	RaceDistance      *string          `json:"raceDistance"`
	RaceType          *string          `json:"raceType"`
	RaceDate          *string          `json:"raceDate"`
	ScheduledRaceTime *string          `json:"scheduledRaceTime"`
	BetType           *string          `json:"betType"`
	Stake             *decimal.Decimal `json:"stake"`
	Odds              *decimal.Decimal `json:"odds"`
	EachWay           *bool            `json:"eachWay"`
	Bookmaker         *string          `json:"bookmaker"`
	Model             *string          `json:"model"`
	Notes             *string          `json:"notes"`
	Horses            json.RawMessage  `json:"horses"`
}

// CreateBet records a new bet for the caller. New bets always start pending
// with no outcome values.
func (h *Handler) CreateBet(c echo.Context) error {
	userID, ok := mw.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "no user found")
	}

	var req betWriteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if req.TrackName == nil || strings.TrimSpace(*req.TrackName) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "trackName is required")
	}
	if req.BetType == nil || strings.TrimSpace(*req.BetType) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "betType is required")
	}
	if req.Stake == nil || req.Stake.IsNegative() {
		return echo.NewHTTPError(http.StatusBadRequest, "stake must be a non-negative number")
	}
	if req.Odds == nil || !req.Odds.IsPositive() {
		return echo.NewHTTPError(http.StatusBadRequest, "odds must be a positive number")
	}

	now := time.Now()
	bet := &models.Bet{
		ID:                uuid.New(),
		UserID:            userID,
		TrackName:         strings.TrimSpace(*req.TrackName),
		HorseName:         req.HorseName,
		Jockey:            req.Jockey,
		Trainer:           req.Trainer,
		RaceNumber:        req.RaceNumber,
		RaceDistance:      req.RaceDistance,
		RaceType:          req.RaceType,
		RaceDate:          req.RaceDate,
		ScheduledRaceTime: req.ScheduledRaceTime,
		BetType:           strings.TrimSpace(*req.BetType),
		Stake:             *req.Stake,
		Odds:              *req.Odds,
		EachWay:           req.EachWay,
		Status:            "pending",
		Bookmaker:         req.Bookmaker,
		Model:             req.Model,
		Notes:             req.Notes,
		Horses:            req.Horses,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if _, err := h.db.NewInsert().Model(bet).Exec(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.invalidateStats(c.Request().Context(), userID)
	return c.JSON(http.StatusCreated, presentBet(*bet))
}

// UpdateBet saves an edit to one of the caller's bets. Only provided fields
// change; outcome fields are owned by the settle endpoint.
func (h *Handler) UpdateBet(c echo.Context) error {
	userID, ok := mw.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "no user found")
	}

	betID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid bet id")
	}

	var req betWriteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	q := h.db.NewUpdate().
		Model((*models.Bet)(nil)).
		Set("updated_at = ?", time.Now()).
		Where("rb.id = ?", betID).
		Where("rb.user_id = ?", userID)

	set := false
	if req.TrackName != nil {
		if strings.TrimSpace(*req.TrackName) == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "trackName cannot be empty")
		}
		q = q.Set("track_name = ?", strings.TrimSpace(*req.TrackName))
		set = true
	}
	if req.BetType != nil {
		if strings.TrimSpace(*req.BetType) == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "betType cannot be empty")
		}
		q = q.Set("bet_type = ?", strings.TrimSpace(*req.BetType))
		set = true
	}
	if req.Stake != nil {
		if req.Stake.IsNegative() {
			return echo.NewHTTPError(http.StatusBadRequest, "stake must be a non-negative number")
		}
		q = q.Set("stake = ?", *req.Stake)
		set = true
	}
	if req.Odds != nil {
		if !req.Odds.IsPositive() {
			return echo.NewHTTPError(http.StatusBadRequest, "odds must be a positive number")
		}
		q = q.Set("odds = ?", *req.Odds)
		set = true
	}
	if req.HorseName != nil {
		q = q.Set("horse_name = ?", *req.HorseName)
		set = true
	}
	if req.Jockey != nil {
		q = q.Set("jockey = ?", *req.Jockey)
		set = true
	}
	if req.Trainer != nil {
		q = q.Set("trainer = ?", *req.Trainer)
		set = true
	}
	if req.RaceNumber != nil {
		q = q.Set("race_number = ?", *req.RaceNumber)
		set = true
	}
	if req.RaceDistance != nil {
		q = q.Set("race_distance = ?", *req.RaceDistance)
		set = true
	}
	if req.RaceType != nil {
		q = q.Set("race_type = ?", *req.RaceType)
		set = true
	}
	if req.RaceDate != nil {
		q = q.Set("race_date = ?", *req.RaceDate)
		set = true
	}
	if req.ScheduledRaceTime != nil {
		q = q.Set("scheduled_race_time = ?", *req.ScheduledRaceTime)
		set = true
	}
	if req.EachWay != nil {
		q = q.Set("each_way = ?", *req.EachWay)
		set = true
	}
	if req.Bookmaker != nil {
		q = q.Set("bookmaker = ?", *req.Bookmaker)
		set = true
	}
	if req.Model != nil {
		q = q.Set("model = ?", *req.Model)
		set = true
	}
	if req.Notes != nil {
		q = q.Set("notes = ?", *req.Notes)
		set = true
	}
	if len(req.Horses) > 0 {
		q = q.Set("horses = ?", req.Horses)
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
		return echo.NewHTTPError(http.StatusNotFound, "bet not found")
	}

	h.invalidateStats(c.Request().Context(), userID)
	return c.NoContent(http.StatusOK)
}

type settleRequest struct {
	Outcome string `json:"outcome"`
}

// settleOutcome computes returns and profit/loss for a settled bet from its
// stake and odds.
func settleOutcome(stake, odds decimal.Decimal, outcome string) (returns, profitLoss decimal.Decimal, err error) {
	switch strings.ToLower(strings.TrimSpace(outcome)) {
	case "won", "win":
		returns = stake.Mul(odds)
		return returns, returns.Sub(stake), nil
	case "lost", "lose":
		return decimal.Zero, stake.Neg(), nil
	case "void", "voided":
		return stake, decimal.Zero, nil
	}
	return decimal.Zero, decimal.Zero, errors.New("outcome must be won, lost or void")
}

// SettleBet marks a pending bet won, lost or void and fills in returns and
// profit/loss. Already-settled bets are rejected.
func (h *Handler) SettleBet(c echo.Context) error {
	userID, ok := mw.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "no user found")
	}

	betID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid bet id")
	}

	var req settleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	bet := &models.Bet{}
	err = h.db.NewSelect().Model(bet).
		Where("rb.id = ?", betID).
		Where("rb.user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "bet not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if !betstatus.IsPending(bet.Status) {
		return echo.NewHTTPError(http.StatusConflict, "bet is already settled")
	}

	returns, pl, err := settleOutcome(bet.Stake, bet.Odds, req.Outcome)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	status := betstatus.Classify(req.Outcome).Label
	res, err := h.db.NewUpdate().
		Model((*models.Bet)(nil)).
		Set("status = ?", strings.ToLower(status)).
		Set("returns = ?", returns).
		Set("profit_loss = ?", pl).
		Set("updated_at = ?", time.Now()).
		Where("rb.id = ?", betID).
		Where("rb.user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "bet not found")
	}

	h.invalidateStats(ctx, userID)

	bet.Status = strings.ToLower(status)
	bet.Returns = &returns
	bet.ProfitLoss = &pl
	return c.JSON(http.StatusOK, presentBet(*bet))
}

// DeleteBet removes one of the caller's bets. The row stays put on failure;
// there is no confirmation step and no undo.
func (h *Handler) DeleteBet(c echo.Context) error {
	userID, ok := mw.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "no user found")
	}

	betID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid bet id")
	}

	res, err := deleteBetQuery(h.db, betID, userID).Exec(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "bet not found")
	}

	h.invalidateStats(c.Request().Context(), userID)
	return c.NoContent(http.StatusOK)
}
