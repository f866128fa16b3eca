package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	mw "github.com/padraicbc/betlog/middleware"
	"github.com/padraicbc/betlog/models"
	"github.com/padraicbc/betlog/password"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

type signupRequest struct {
	FullName         string `json:"fullName"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	ConfirmPassword  string `json:"confirmPassword"`
	Country          string `json:"country"`
	TelegramUsername string `json:"telegramUsername"`
	PhoneNumber      string `json:"phoneNumber"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// validateSignup returns field-scoped validation messages, empty when the
// request is acceptable.
func validateSignup(req signupRequest) map[string]string {
	errs := map[string]string{}

	if strings.TrimSpace(req.FullName) == "" {
		errs["fullName"] = "Full name is required"
	}
	if strings.TrimSpace(req.Email) == "" {
		errs["email"] = "Email is required"
	} else if !emailPattern.MatchString(req.Email) {
		errs["email"] = "Please enter a valid email address"
	}
	if req.Password == "" {
		errs["password"] = "Password is required"
	} else if len(req.Password) < 8 {
		errs["password"] = "Password must be at least 8 characters"
	} else if password.Classify(req.Password) == password.Weak {
		errs["password"] = "Password is too weak"
	}
	if req.Password != req.ConfirmPassword {
		errs["confirmPassword"] = "Passwords do not match"
	}
	if strings.TrimSpace(req.Country) == "" {
		errs["country"] = "Please select your country"
	}

	return errs
}

// inserter abstracts the single-row insert used during account provisioning.
type inserter interface {
	insert(ctx context.Context, model interface{}) error
}

type bunInserter struct {
	h *Handler
}

func (bi bunInserter) insert(ctx context.Context, model interface{}) error {
	_, err := bi.h.db.NewInsert().Model(model).Exec(ctx)
	return err
}

// provisionDefaults creates the first bankroll and, only when that works, the
// settings row pointing at it. Failures are logged and swallowed: the account
// is already usable without either row.
func (h *Handler) provisionDefaults(ctx context.Context, ins inserter, userID uuid.UUID) {
	initial, err := decimal.NewFromString(h.cfg.DefaultBankrollAmount)
	if err != nil {
		initial = decimal.NewFromInt(1000)
	}
	stake, err := decimal.NewFromString(h.cfg.DefaultStake)
	if err != nil {
		stake = decimal.NewFromInt(10)
	}

	bankroll := &models.Bankroll{
		ID:            uuid.New(),
		UserID:        userID,
		Name:          "Default Bankroll",
		Description:   "Your default bankroll for tracking bets",
		InitialAmount: initial,
		CurrentAmount: initial,
		Currency:      h.cfg.DefaultCurrency,
		IsActive:      true,
	}
	if err := ins.insert(ctx, bankroll); err != nil {
		h.log.Error("default bankroll insert failed", zap.String("user_id", userID.String()), zap.Error(err))
		return
	}

	settings := &models.UserSettings{
		UserID:              userID,
		DefaultStake:        stake,
		DefaultBankrollID:   &bankroll.ID,
		StakeCurrency:       h.cfg.DefaultCurrency,
		PreferredOddsFormat: "decimal",
		Preferences:         json.RawMessage(`{"model":"default"}`),
	}
	if err := ins.insert(ctx, settings); err != nil {
		h.log.Error("default settings insert failed", zap.String("user_id", userID.String()), zap.Error(err))
	}
}

// Signup registers a new account: auth identity and profile are required,
// the default bankroll and settings rows are best-effort.
func (h *Handler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if errs := validateSignup(req); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"errors": errs})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	ctx := c.Request().Context()
	user := &models.User{
		ID:       uuid.New(),
		Email:    strings.TrimSpace(req.Email),
		Password: string(hash),
	}
	if _, err := h.db.NewInsert().Model(user).Exec(ctx); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
			return echo.NewHTTPError(http.StatusConflict, "an account with this email already exists")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	profile := &models.UserProfile{
		UserID:   user.ID,
		FullName: strings.TrimSpace(req.FullName),
		Email:    user.Email,
		Country:  strings.TrimSpace(req.Country),
	}
	if tg := strings.TrimSpace(req.TelegramUsername); tg != "" {
		profile.TelegramUsername = &tg
	}
	if ph := strings.TrimSpace(req.PhoneNumber); ph != "" {
		profile.PhoneNumber = &ph
	}
	// Profile failure is a hard failure. The identity row remains behind,
	// orphaned, matching how registration has always behaved here.
	if _, err := h.db.NewInsert().Model(profile).Exec(ctx); err != nil {
		h.log.Error("profile insert failed", zap.String("user_id", user.ID.String()), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create user profile")
	}

	h.provisionDefaults(ctx, bunInserter{h}, user.ID)

	return c.JSON(http.StatusCreated, map[string]string{"userID": user.ID.String()})
}

// Signin validates credentials and returns a JWT token valid for 30 days.
func (h *Handler) Signin(c echo.Context) error {
	var creds credentials
	if err := c.Bind(&creds); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	creds.Email = strings.TrimSpace(creds.Email)

	user := &models.User{}
	err := h.db.NewSelect().Model(user).
		Where("email = ?", creds.Email).
		Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "incorrect email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	expiresAt := time.Now().AddDate(0, 0, 30)
	claims := &mw.Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(h.JWTKey)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"token":  tokenString,
		"userID": user.ID.String(),
	})
}

// Me resolves the authenticated session to its profile row.
func (h *Handler) Me(c echo.Context) error {
	userID, ok := mw.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "no user found")
	}

	profile := &models.UserProfile{}
	err := h.db.NewSelect().Model(profile).
		Where("user_id = ?", userID).
		Scan(c.Request().Context())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, profile)
}
