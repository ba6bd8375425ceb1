package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Deepthi1510/department-association/internal/model"
	"github.com/Deepthi1510/department-association/internal/utils"
)

const testSecret = "unit-test-secret"

func runJWT(t *testing.T, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var captured echo.Context
	h := JWTAuth(testSecret)(func(c echo.Context) error {
		captured = c
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec, captured
}

func TestJWTAuthMissingHeader(t *testing.T) {
	t.Parallel()
	rec, _ := runJWT(t, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuthGarbageToken(t *testing.T) {
	t.Parallel()
	rec, _ := runJWT(t, "Bearer not-a-jwt")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuthWrongSecret(t *testing.T) {
	t.Parallel()
	at, err := utils.NewAccessToken("other-secret", 1, model.RoleStudent, 3, 5)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	rec, _ := runJWT(t, "Bearer "+at.Token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuthValidTokenSetsContext(t *testing.T) {
	t.Parallel()
	at, err := utils.NewAccessToken(testSecret, 12, model.RoleStudent, 3, 5)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	rec, c := runJWT(t, "Bearer "+at.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if role, ok := c.Get("role").(model.Role); !ok || role != model.RoleStudent {
		t.Fatalf("role in context = %v, want RoleStudent", c.Get("role"))
	}
	if sub, ok := c.Get("user_id").(float64); !ok || sub != 12 {
		t.Fatalf("user_id in context = %v, want 12", c.Get("user_id"))
	}
	if pid, ok := c.Get("principal_id").(float64); !ok || pid != 3 {
		t.Fatalf("principal_id in context = %v, want 3", c.Get("principal_id"))
	}
}

func runRequireRole(t *testing.T, set model.Role, allowed ...model.Role) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if set != "" {
		c.Set("role", set)
	}
	h := RequireRole(allowed...)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec
}

func TestRequireRoleAllows(t *testing.T) {
	t.Parallel()
	rec := runRequireRole(t, model.RoleFaculty, model.RoleFaculty, model.RoleAdmin)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestRequireRoleRejects(t *testing.T) {
	t.Parallel()
	rec := runRequireRole(t, model.RoleStudent, model.RoleAdmin)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestRequireRoleMissingRole(t *testing.T) {
	t.Parallel()
	rec := runRequireRole(t, "", model.RoleAdmin)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}
