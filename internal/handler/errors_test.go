package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hitoshi/valoriza/internal/middleware"
	"github.com/hitoshi/valoriza/internal/model"
)

// withUserID はテスト用にコンテキストへユーザーIDを注入するヘルパー。
func withUserID(r *http.Request, userID string) *http.Request {
	ctx := middleware.ContextWithUserID(r.Context(), userID)
	return r.WithContext(ctx)
}

// parseAPIErrorResponse はレスポンスボディからAPIErrorレスポンスをパースするヘルパー。
func parseAPIErrorResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var result map[string]string
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return result
}

func TestMapAPIErrorToHTTPStatus(t *testing.T) {
	tests := []struct {
		err  *model.APIError
		want int
	}{
		{model.NewInvalidRequestError("x"), http.StatusBadRequest},
		{model.NewInvalidCredentialsError(), http.StatusBadRequest},
		{model.NewUnauthorizedError(), http.StatusUnauthorized},
		{model.NewInvalidTokenError(), http.StatusUnauthorized},
		{model.NewExpiredTokenError(), http.StatusUnauthorized},
		{model.NewUserNotFoundError(), http.StatusUnauthorized},
		{model.NewForbiddenError(), http.StatusForbidden},
		{model.NewUserAlreadyExistsError(), http.StatusConflict},
		{model.NewInvalidTagNameError(), http.StatusBadRequest},
		{model.NewTagAlreadyExistsError("teamwork"), http.StatusConflict},
		{model.NewTagNotFoundError("t1"), http.StatusNotFound},
		{model.NewInvalidReceiverError(), http.StatusBadRequest},
		{model.NewReceiverNotFoundError("u1"), http.StatusNotFound},
		{model.NewInvalidMessageError(500), http.StatusBadRequest},
		{model.NewInternalError(), http.StatusInternalServerError},
		{&model.APIError{Code: "UNKNOWN"}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Code, func(t *testing.T) {
			if got := mapAPIErrorToHTTPStatus(tt.err); got != tt.want {
				t.Errorf("mapAPIErrorToHTTPStatus(%s) = %d, want %d", tt.err.Code, got, tt.want)
			}
		})
	}
}

func TestHandleServiceError_WrappedAPIError(t *testing.T) {
	w := httptest.NewRecorder()

	handleServiceError(w, errors.Join(errors.New("context"), model.NewTagNotFoundError("t1")))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
	body := parseAPIErrorResponse(t, w)
	if body["code"] != model.ErrCodeTagNotFound {
		t.Errorf("code = %q, want %q", body["code"], model.ErrCodeTagNotFound)
	}
}

func TestHandleServiceError_PlainErrorHidesDetails(t *testing.T) {
	w := httptest.NewRecorder()

	handleServiceError(w, errors.New("pq: password authentication failed for user valoriza"))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	if strings.Contains(w.Body.String(), "pq:") {
		t.Errorf("internal error details leaked: %s", w.Body.String())
	}
	body := parseAPIErrorResponse(t, w)
	if body["code"] != model.ErrCodeInternal {
		t.Errorf("code = %q, want %q", body["code"], model.ErrCodeInternal)
	}
}

func TestDecodeJSONBody_Invalid(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("{not json"))

	var dst loginRequest
	if decodeJSONBody(w, r, &dst) {
		t.Fatal("expected decodeJSONBody to fail")
	}
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	body := parseAPIErrorResponse(t, w)
	if body["code"] != model.ErrCodeInvalidRequest {
		t.Errorf("code = %q, want %q", body["code"], model.ErrCodeInvalidRequest)
	}
}

func TestDecodeJSONBody_TooLarge(t *testing.T) {
	w := httptest.NewRecorder()
	payload := `{"name":"` + strings.Repeat("a", maxRequestBodyBytes) + `"}`
	r := httptest.NewRequest(http.MethodPost, "/tags", strings.NewReader(payload))

	var dst createTagRequest
	if decodeJSONBody(w, r, &dst) {
		t.Fatal("expected oversized body to be rejected")
	}
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}
