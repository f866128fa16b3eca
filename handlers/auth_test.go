package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/padraicbc/betlog/config"
	"github.com/padraicbc/betlog/models"
)

func testHandler() *Handler {
	return &Handler{
		log: zap.NewNop(),
		cfg: &config.Config{
			DefaultCurrency:       "GBP",
			DefaultBankrollAmount: "1000",
			DefaultStake:          "10",
		},
	}
}

func validReq() signupRequest {
	return signupRequest{
		FullName:        "Pat Punter",
		Email:           "pat@example.com",
		Password:        "Abc12345!",
		ConfirmPassword: "Abc12345!",
		Country:         "GB",
	}
}

func TestValidateSignup(t *testing.T) {
	assert.Empty(t, validateSignup(validReq()))

	tests := []struct {
		name   string
		mutate func(*signupRequest)
		field  string
	}{
		{"missing full name", func(r *signupRequest) { r.FullName = "  " }, "fullName"},
		{"missing email", func(r *signupRequest) { r.Email = "" }, "email"},
		{"malformed email", func(r *signupRequest) { r.Email = "not-an-email" }, "email"},
		{"missing password", func(r *signupRequest) { r.Password = ""; r.ConfirmPassword = "" }, "password"},
		{"short password", func(r *signupRequest) { r.Password = "Ab1!"; r.ConfirmPassword = "Ab1!" }, "password"},
		{"weak password", func(r *signupRequest) { r.Password = "abcdefgh1"; r.ConfirmPassword = "abcdefgh1" }, "password"},
		{"mismatched confirm", func(r *signupRequest) { r.ConfirmPassword = "Different1!" }, "confirmPassword"},
		{"missing country", func(r *signupRequest) { r.Country = "" }, "country"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validReq()
			tt.mutate(&req)
			errs := validateSignup(req)
			require.NotEmpty(t, errs)
			assert.Contains(t, errs, tt.field)
		})
	}
}

func validReqJSON(t *testing.T, mutate func(*signupRequest)) string {
	t.Helper()
	req := validReq()
	if mutate != nil {
		mutate(&req)
	}
	b, err := json.Marshal(req)
	require.NoError(t, err)
	return string(b)
}

func TestSignupRejectsInvalidInputBeforeAnyWrite(t *testing.T) {
	// The handler has no database: reaching the store would panic, so a clean
	// 400 proves validation short-circuits first.
	h := testHandler()
	e := echo.New()

	body := validReqJSON(t, func(r *signupRequest) { r.Password = "abcdefgh1"; r.ConfirmPassword = "abcdefgh1" })
	httpReq := httptest.NewRequest(http.MethodPost, "/api/signup", strings.NewReader(body))
	httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(httpReq, rec)

	require.NoError(t, h.Signup(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Errors, "password")
}

// stubInserter records provisioning inserts and can be told to fail on a
// given model type.
type stubInserter struct {
	calls      []interface{}
	failOnType string
}

func (s *stubInserter) insert(_ context.Context, model interface{}) error {
	s.calls = append(s.calls, model)
	switch model.(type) {
	case *models.Bankroll:
		if s.failOnType == "bankroll" {
			return assert.AnError
		}
	case *models.UserSettings:
		if s.failOnType == "settings" {
			return assert.AnError
		}
	}
	return nil
}

func TestProvisionDefaultsCreatesBankrollThenSettings(t *testing.T) {
	h := testHandler()
	ins := &stubInserter{}
	userID := uuid.New()

	h.provisionDefaults(context.Background(), ins, userID)

	require.Len(t, ins.calls, 2)

	bankroll, ok := ins.calls[0].(*models.Bankroll)
	require.True(t, ok)
	assert.Equal(t, userID, bankroll.UserID)
	assert.Equal(t, "Default Bankroll", bankroll.Name)
	assert.Equal(t, "GBP", bankroll.Currency)
	assert.True(t, bankroll.IsActive)
	assert.Equal(t, "1000", bankroll.InitialAmount.String())
	assert.True(t, bankroll.InitialAmount.Equal(bankroll.CurrentAmount))

	settings, ok := ins.calls[1].(*models.UserSettings)
	require.True(t, ok)
	assert.Equal(t, userID, settings.UserID)
	require.NotNil(t, settings.DefaultBankrollID)
	assert.Equal(t, bankroll.ID, *settings.DefaultBankrollID)
	assert.Equal(t, "decimal", settings.PreferredOddsFormat)
	assert.Equal(t, "10", settings.DefaultStake.String())
}

func TestProvisionDefaultsBankrollFailureSkipsSettings(t *testing.T) {
	h := testHandler()
	ins := &stubInserter{failOnType: "bankroll"}

	// No error escapes: registration already succeeded by this point.
	h.provisionDefaults(context.Background(), ins, uuid.New())

	require.Len(t, ins.calls, 1)
	_, ok := ins.calls[0].(*models.Bankroll)
	assert.True(t, ok)
}

func TestProvisionDefaultsSettingsFailureIsSwallowed(t *testing.T) {
	h := testHandler()
	ins := &stubInserter{failOnType: "settings"}

	h.provisionDefaults(context.Background(), ins, uuid.New())

	assert.Len(t, ins.calls, 2)
}
