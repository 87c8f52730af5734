package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wizonweb/wizon-server/internal/model"
	"github.com/wizonweb/wizon-server/internal/utils"
)

func newCodec(now time.Time) *utils.TokenCodec {
	return utils.NewTokenCodec("mw-secret", "wizon-admin", "wizon-dashboard", time.Hour).
		WithClock(func() time.Time { return now })
}

func serveGated(t *testing.T, codec *utils.TokenCodec, cookie *http.Cookie) (*httptest.ResponseRecorder, model.AdminIdentity) {
	t.Helper()
	e := echo.New()
	var seen model.AdminIdentity
	h := AdminAuth(codec)(RequireRole(model.RoleAdmin)(func(c echo.Context) error {
		seen, _ = AdminFrom(c)
		return c.NoContent(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler: %v", err)
	}
	return rec, seen
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) (bool, string) {
	t.Helper()
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return body.Success, body.Message
}

func TestAdminAuthAllowsAdmin(t *testing.T) {
	now := time.Now()
	codec := newCodec(now)
	tok, err := codec.Issue("admin@wizon.test")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	rec, id := serveGated(t, codec, &http.Cookie{Name: AdminCookieName, Value: tok.Token})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if id.Email != "admin@wizon.test" || id.Role != model.RoleAdmin {
		t.Errorf("identity = %+v", id)
	}
}

func TestAdminAuthRejections(t *testing.T) {
	now := time.Now()
	codec := newCodec(now)

	stale, err := newCodec(now.Add(-2 * time.Hour)).Issue("admin@wizon.test")
	if err != nil {
		t.Fatalf("issue stale: %v", err)
	}
	foreign, err := utils.NewTokenCodec("other", "wizon-admin", "wizon-dashboard", time.Hour).Issue("admin@wizon.test")
	if err != nil {
		t.Fatalf("issue foreign: %v", err)
	}

	cases := []struct {
		name    string
		cookie  *http.Cookie
		status  int
		message string
	}{
		{"no cookie", nil, http.StatusUnauthorized, "Unauthorized: No token provided"},
		{"empty cookie", &http.Cookie{Name: AdminCookieName, Value: ""}, http.StatusUnauthorized, "Unauthorized: No token provided"},
		{"expired", &http.Cookie{Name: AdminCookieName, Value: stale.Token}, http.StatusUnauthorized, "Session expired, please login again"},
		{"wrong secret", &http.Cookie{Name: AdminCookieName, Value: foreign.Token}, http.StatusUnauthorized, "Invalid or expired session"},
		{"garbage", &http.Cookie{Name: AdminCookieName, Value: "abc"}, http.StatusUnauthorized, "Invalid or expired session"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, _ := serveGated(t, codec, tc.cookie)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			ok, msg := decodeEnvelope(t, rec)
			if ok || msg != tc.message {
				t.Errorf("envelope = (%v, %q), want (false, %q)", ok, msg, tc.message)
			}
		})
	}
}

type roleVerifier struct{ role string }

func (v roleVerifier) Verify(string) (model.AdminIdentity, error) {
	return model.AdminIdentity{Email: "ed@wizon.test", Role: v.role}, nil
}

func TestRequireRoleForbidsOtherRoles(t *testing.T) {
	e := echo.New()
	called := false
	h := AdminAuth(roleVerifier{role: "editor"})(RequireRole(model.RoleAdmin)(func(c echo.Context) error {
		called = true
		return nil
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/contacts", nil)
	req.AddCookie(&http.Cookie{Name: AdminCookieName, Value: "anything"})
	rec := httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if called {
		t.Error("handler ran for non-admin role")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if _, msg := decodeEnvelope(t, rec); msg != "Forbidden: Admin access required" {
		t.Errorf("message = %q", msg)
	}
}

func TestAdminFromWithoutGate(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if _, ok := AdminFrom(c); ok {
		t.Error("expected no identity on an ungated context")
	}
}
