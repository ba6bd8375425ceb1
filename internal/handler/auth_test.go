package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/Deepthi1510/department-association/internal/config"
	"github.com/Deepthi1510/department-association/internal/repository"
	"github.com/Deepthi1510/department-association/internal/utils"
)

func newAuthHandler(t *testing.T) (*AuthHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	cfg := config.Config{JWTSecret: "unit-test-secret", AccessTTLMin: 15, BcryptCost: 4}
	return NewAuthHandler(cfg, repository.NewUserRepo(db)), mock
}

func postJSON(t *testing.T, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestLoginUnknownUser(t *testing.T) {
	t.Parallel()
	h, mock := newAuthHandler(t)
	mock.ExpectQuery(`FROM users WHERE username = \?`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	c, rec := postJSON(t, "/v1/auth/login", `{"username":"ghost","password":"pw"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	t.Parallel()
	h, mock := newAuthHandler(t)
	hash, err := utils.HashPassword("right", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	mock.ExpectQuery(`FROM users WHERE username = \?`).
		WithArgs("deepu").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "role", "principal_id", "created_at"}).
			AddRow(1, "deepu", hash, "STUDENT", 3, time.Now()))

	c, rec := postJSON(t, "/v1/auth/login", `{"username":"deepu","password":"wrong"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestLoginIssuesToken(t *testing.T) {
	t.Parallel()
	h, mock := newAuthHandler(t)
	hash, err := utils.HashPassword("right", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	mock.ExpectQuery(`FROM users WHERE username = \?`).
		WithArgs("deepu").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "role", "principal_id", "created_at"}).
			AddRow(1, "deepu", hash, "STUDENT", 3, time.Now()))

	c, rec := postJSON(t, "/v1/auth/login", `{"username":"deepu","password":"right"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		User struct {
			Role        string `json:"role"`
			PrincipalID uint64 `json:"principal_id"`
		} `json:"user"`
		Access struct {
			Token string `json:"token"`
		} `json:"access"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Access.Token == "" {
		t.Fatal("empty access token")
	}
	if resp.User.Role != "STUDENT" || resp.User.PrincipalID != 3 {
		t.Fatalf("user part = %+v", resp.User)
	}
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	t.Parallel()
	h, _ := newAuthHandler(t)
	c, rec := postJSON(t, "/v1/auth/register", `{"username":"x","password":"pw","role":"OWNER"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	t.Parallel()
	h, mock := newAuthHandler(t)
	mock.ExpectExec(`INSERT INTO users`).
		WillReturnError(errors.New("Error 1062: Duplicate entry 'deepu' for key 'uq_users_username'"))

	c, rec := postJSON(t, "/v1/auth/register", `{"username":"deepu","password":"pw","role":"STUDENT","principal_id":3}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestLoginLockoutAfterRepeatedFailures(t *testing.T) {
	t.Parallel()
	h, mock := newAuthHandler(t)
	for i := 0; i < maxLoginFailures; i++ {
		mock.ExpectQuery(`FROM users WHERE username = \?`).
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)
	}

	for i := 0; i < maxLoginFailures; i++ {
		c, rec := postJSON(t, "/v1/auth/login", `{"username":"ghost","password":"pw"}`)
		if err := h.Login(c); err != nil {
			t.Fatalf("Login %d: %v", i+1, err)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d status = %d, want 401", i+1, rec.Code)
		}
	}

	c, rec := postJSON(t, "/v1/auth/login", `{"username":"ghost","password":"pw"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLoginThrottleExpiryAndReset(t *testing.T) {
	t.Parallel()
	now := time.Now()
	th := newLoginThrottle()
	th.now = func() time.Time { return now }

	for i := 0; i < maxLoginFailures; i++ {
		th.failure("deepu")
	}
	if !th.locked("deepu") {
		t.Fatal("expected lock after repeated failures")
	}
	if th.locked("other") {
		t.Fatal("unrelated username must not be locked")
	}

	now = now.Add(loginLockout)
	if th.locked("deepu") {
		t.Fatal("lock must expire after the lockout window")
	}

	th.failure("deepu")
	th.success("deepu")
	for i := 0; i < maxLoginFailures-1; i++ {
		th.failure("deepu")
	}
	if th.locked("deepu") {
		t.Fatal("success must reset the failure count")
	}
}
