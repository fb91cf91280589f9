package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const testSecret = "test-secret"

// Тест: валидный Bearer access-токен — claims попадают в контекст
func TestWithAuth_ValidBearerSetsClaims(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetClaimsFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if claims.UserID != 77 || claims.Role != "ADMIN" {
			t.Fatalf("unexpected claims: %+v", claims)
		}
		w.WriteHeader(http.StatusOK)
	})

	h := WithAuth(testSecret)(next)

	token, err := IssueAccessToken(testSecret, 77, "aibek", "ADMIN", time.Minute)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 with valid bearer, got %d", rr.Code)
	}
}

// Тест: отсутствие заголовка — запрос остаётся анонимным
func TestWithAuth_NoHeaderLeavesAnonymous(t *testing.T) {
	h := WithAuth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetClaimsFromContext(r.Context()); ok {
			t.Fatalf("claims must not be set without Authorization header")
		}
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

// Тест: просроченный токен — анонимно; RequireAuth отвечает 401
func TestRequireAuth_ExpiredToken(t *testing.T) {
	token, err := IssueAccessToken(testSecret, 1, "aibek", "VIEWER", -time.Minute)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	h := WithAuth(testSecret)(RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", rr.Code)
	}
}

// Тест: refresh-токен не принимается как access
func TestWithAuth_RefreshTokenRejected(t *testing.T) {
	token, err := IssueRefreshToken(testSecret, 1, "aibek", "ADMIN", time.Hour)
	if err != nil {
		t.Fatalf("issue refresh token: %v", err)
	}

	h := WithAuth(testSecret)(RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for refresh token in access position, got %d", rr.Code)
	}
}

// Тест: RequireRole — VIEWER получает 403 на админском маршруте
func TestRequireRole_ViewerForbidden(t *testing.T) {
	token, err := IssueAccessToken(testSecret, 2, "saltanat", "VIEWER", time.Minute)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	h := WithAuth(testSecret)(RequireRole("ADMIN")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for VIEWER on admin route, got %d", rr.Code)
	}
}

func TestParseRefreshToken_TypeChecks(t *testing.T) {
	access, _ := IssueAccessToken(testSecret, 3, "u", "ADMIN", time.Minute)
	refresh, _ := IssueRefreshToken(testSecret, 3, "u", "ADMIN", time.Minute)

	if _, err := ParseRefreshToken(testSecret, access); err == nil {
		t.Fatalf("access token must not parse as refresh")
	}
	claims, err := ParseRefreshToken(testSecret, refresh)
	if err != nil {
		t.Fatalf("refresh token must parse: %v", err)
	}
	if claims.UserID != 3 {
		t.Fatalf("unexpected uid: %d", claims.UserID)
	}
	// подпись другим секретом
	if _, err := ParseRefreshToken("other-secret", refresh); err == nil {
		t.Fatalf("wrong secret must fail verification")
	}
}
