package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dropDatabas3/gatekeep/internal/domain/repository"
	jwtx "github.com/dropDatabas3/gatekeep/internal/jwt"
)

const testCookie = "gk_session"

func testIssuer() *jwtx.Issuer {
	return jwtx.NewIssuer("gatekeep-test", []byte("test-secret-0123456789"), time.Hour)
}

func sessionFor(t *testing.T, issuer *jwtx.Issuer, role string) string {
	t.Helper()
	token, _, err := issuer.IssueSession(jwtx.SessionClaims{
		UserID:   "u1",
		Username: "alice",
		Role:     role,
	})
	if err != nil {
		t.Fatalf("IssueSession err: %v", err)
	}
	return token
}

func okHandler(hit *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hit = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireSession_NoToken(t *testing.T) {
	var hit bool
	h := Chain(okHandler(&hit), RequireSession(testIssuer(), testCookie))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, esperado 401", rec.Code)
	}
	if hit {
		t.Fatal("el handler no debería haberse ejecutado")
	}
}

func TestRequireSession_Cookie(t *testing.T) {
	issuer := testIssuer()
	var hit bool
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
		if got := GetUserID(r.Context()); got != "u1" {
			t.Fatalf("GetUserID = %q", got)
		}
		if sc := GetSession(r.Context()); sc == nil || sc.Username != "alice" {
			t.Fatalf("GetSession = %+v", sc)
		}
	}), RequireSession(issuer, testCookie))

	req := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: sessionFor(t, issuer, "VIEWER")})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if !hit {
		t.Fatalf("status = %d, el handler debería haberse ejecutado", rec.Code)
	}
}

func TestRequireSession_BearerFallback(t *testing.T) {
	issuer := testIssuer()
	var hit bool
	h := Chain(okHandler(&hit), RequireSession(issuer, testCookie))

	req := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+sessionFor(t, issuer, "VIEWER"))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if !hit {
		t.Fatalf("status = %d, Bearer debería aceptarse sin cookie", rec.Code)
	}
}

func TestRequireSession_InvalidToken(t *testing.T) {
	var hit bool
	h := Chain(okHandler(&hit), RequireSession(testIssuer(), testCookie))

	req := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "basura"})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized || hit {
		t.Fatalf("status = %d, hit = %v", rec.Code, hit)
	}
}

func TestOptionalSession_ContinuesWithoutToken(t *testing.T) {
	var hit bool
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
		if GetUserID(r.Context()) != "" {
			t.Fatal("sin token no debería haber user ID")
		}
	}), OptionalSession(testIssuer(), testCookie))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/auth/social/google/start", nil))

	if !hit {
		t.Fatal("el handler debería ejecutarse sin sesión")
	}
}

func TestRequireRole_Matrix(t *testing.T) {
	issuer := testIssuer()

	cases := []struct {
		role string
		min  repository.Role
		want int
	}{
		{"ADMIN", repository.RoleAdmin, http.StatusOK},
		{"MODERATOR", repository.RoleAdmin, http.StatusForbidden},
		{"VIEWER", repository.RoleAdmin, http.StatusForbidden},
		{"MODERATOR", repository.RoleModerator, http.StatusOK},
		{"ADMIN", repository.RoleViewer, http.StatusOK},
		{"desconocido", repository.RoleViewer, http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.role+"_min_"+string(tc.min), func(t *testing.T) {
			var hit bool
			h := Chain(okHandler(&hit),
				RequireSession(issuer, testCookie),
				RequireRole(tc.min),
			)

			req := httptest.NewRequest(http.MethodGet, "/v1/admin/users", nil)
			req.AddCookie(&http.Cookie{Name: testCookie, Value: sessionFor(t, issuer, tc.role)})

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tc.want {
				t.Fatalf("status = %d, esperado %d", rec.Code, tc.want)
			}
		})
	}
}
