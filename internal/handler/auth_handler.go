// Package handler はHTTPハンドラーを提供する。
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/hitoshi/valoriza/internal/auth"
	"github.com/hitoshi/valoriza/internal/model"
)

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
// auth.Serviceが実装する。
type AuthServiceInterface interface {
	// Login はメールアドレスとパスワードを照合し、トークンを返す。
	Login(ctx context.Context, email, password string) (string, error)
}

// AuthHandler はログインのHTTPハンドラー。
type AuthHandler struct {
	service AuthServiceInterface
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(service AuthServiceInterface) *AuthHandler {
	return &AuthHandler{
		service: service,
	}
}

// loginRequest はログインリクエストのボディ。
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse はログイン成功時のレスポンス。
type loginResponse struct {
	Token string `json:"token"`
}

// Login はメールアドレスとパスワードでログインし、ベアラートークンを返す。
// POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		// 未登録とパスワード不一致は同一のレスポンスにする
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidCredentialsError())
			return
		}
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token})
}
