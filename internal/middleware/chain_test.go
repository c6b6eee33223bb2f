package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newTestChain はRecovery → SecurityHeaders → CORS → Logging → BearerAuth の順でチェーンを構築する。
func newTestChain(final http.Handler, logBuf *bytes.Buffer) http.Handler {
	logger := slog.New(slog.NewJSONHandler(logBuf, nil))

	h := NewBearerAuthMiddleware(tokenAuthenticator("user-chain-test"))(final)
	h = NewLoggingMiddleware(logger)(h)
	h = NewCORSMiddleware("http://localhost:3000")(h)
	h = NewSecurityHeadersMiddleware()(h)
	h = NewRecoveryMiddleware()(h)
	return h
}

// TestMiddlewareChain_ValidToken は
// 有効なトークンでチェーン全体を通過することを検証する。
func TestMiddlewareChain_ValidToken(t *testing.T) {
	var buf bytes.Buffer
	var capturedUserID string
	handler := newTestChain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedUserID, _ = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}), &buf)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}
	if capturedUserID != "user-chain-test" {
		t.Errorf("userID = %q, want %q", capturedUserID, "user-chain-test")
	}
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("security headers should be set")
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:3000" {
		t.Error("CORS headers should be set")
	}
}

// TestMiddlewareChain_NoToken_Returns401 は
// トークンがない場合でもセキュリティヘッダー付きで401が返されることを検証する。
func TestMiddlewareChain_NoToken_Returns401(t *testing.T) {
	var buf bytes.Buffer
	handler := newTestChain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	}), &buf)

	req := httptest.NewRequest(http.MethodPost, "/compliments", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusUnauthorized)
	}
	if w.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("security headers should be set on error responses")
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"status":401`)) {
		t.Errorf("expected 401 to be logged, got %s", buf.String())
	}
}

// TestMiddlewareChain_Preflight_SkipsAuth は
// OPTIONSプリフライトが認証なしで204を返すことを検証する。
func TestMiddlewareChain_Preflight_SkipsAuth(t *testing.T) {
	var buf bytes.Buffer
	handler := newTestChain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	}), &buf)

	req := httptest.NewRequest(http.MethodOptions, "/compliments", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusNoContent)
	}
}

// TestMiddlewareChain_PanicRecovered は
// ハンドラーのpanicが統一フォーマットの500に変換されることを検証する。
func TestMiddlewareChain_PanicRecovered(t *testing.T) {
	var buf bytes.Buffer
	handler := newTestChain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}), &buf)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusInternalServerError)
	}
	if code := decodeErrorCode(t, w); code != "INTERNAL_ERROR" {
		t.Errorf("code = %q, want %q", code, "INTERNAL_ERROR")
	}
}
