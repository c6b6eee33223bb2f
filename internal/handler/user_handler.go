package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/hitoshi/valoriza/internal/auth"
	"github.com/hitoshi/valoriza/internal/middleware"
	"github.com/hitoshi/valoriza/internal/model"
	"github.com/hitoshi/valoriza/internal/user"
)

// UserServiceInterface はユーザーハンドラーが必要とするサービスインターフェース。
type UserServiceInterface interface {
	// Register はユーザーを登録する。
	// 管理者ユーザーの作成はrequestedByAdminがtrueの場合のみ許可される。
	Register(ctx context.Context, input user.RegisterInput, requestedByAdmin bool) (*userResponse, error)
	// List は全ユーザーを返す。
	List(ctx context.Context) ([]userResponse, error)
	// Get は指定ユーザーを返す。
	Get(ctx context.Context, userID string) (*userResponse, error)
}

// UserHandler はユーザー管理のHTTPハンドラー。
type UserHandler struct {
	service UserServiceInterface
	authz   middleware.AdminAuthorizer
}

// NewUserHandler はUserHandlerを生成する。
// authzは管理者ユーザー作成リクエストの権限確認に使用する。
func NewUserHandler(service UserServiceInterface, authz middleware.AdminAuthorizer) *UserHandler {
	return &UserHandler{
		service: service,
		authz:   authz,
	}
}

// userResponse はユーザー情報のAPIレスポンス。
// パスワードハッシュは含めない。
type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Admin     bool      `json:"admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// registerUserRequest はユーザー登録リクエストのボディ。
type registerUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Admin    bool   `json:"admin"`
}

// Register はユーザーを登録する。
// POST /users
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerUserRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	// 1. 管理者作成の場合のみ、リクエスト元が現在も管理者であるかを確認
	requestedByAdmin := false
	if req.Admin {
		if userID, err := middleware.UserIDFromContext(r.Context()); err == nil {
			err := h.authz.RequireAdmin(r.Context(), auth.Identity{UserID: userID})
			switch {
			case err == nil:
				requestedByAdmin = true
			case errors.Is(err, auth.ErrForbidden):
				// 一般ユーザーによる管理者作成はサービス層でFORBIDDENになる
			case errors.Is(err, auth.ErrUserNotFound):
				writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUserNotFoundError())
				return
			default:
				slog.Error("failed to authorize admin registration", slog.String("error", err.Error()))
				writeAPIErrorResponse(w, http.StatusInternalServerError, model.NewInternalError())
				return
			}
		}
	}

	// 2. 登録
	created, err := h.service.Register(r.Context(), user.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Admin:    req.Admin,
	}, requestedByAdmin)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// List は全ユーザーを返す。
// GET /users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	users, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// Me は認証済みユーザー自身の情報を返す。
// GET /users/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	u, err := h.service.Get(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, u)
}
