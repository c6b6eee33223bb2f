// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/hitoshi/valoriza/internal/auth"
	"github.com/hitoshi/valoriza/internal/model"
)

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// userIDContextKey はリクエストコンテキストにユーザーIDを格納するためのキー。
var userIDContextKey = contextKey("user_id")

// Authenticator はAuthorizationヘッダーの検証に必要なインターフェース。
// auth.Serviceが実装する。
type Authenticator interface {
	AuthenticateRequest(ctx context.Context, authorizationHeader string) (auth.Identity, error)
}

// AdminAuthorizer は管理者権限の判定に必要なインターフェース。
// auth.Serviceが実装する。
type AdminAuthorizer interface {
	RequireAdmin(ctx context.Context, identity auth.Identity) error
}

// NewBearerAuthMiddleware はAuthorizationヘッダーのベアラートークンを検証するミドルウェアを返す。
// 認証済みユーザーIDをリクエストコンテキストに注入する。
// ヘッダーがない場合、トークンが不正・期限切れの場合は401 Unauthorizedを返す。
func NewBearerAuthMiddleware(authn Authenticator) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Authorizationヘッダーを取得
			header := r.Header.Get("Authorization")
			if header == "" {
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
				return
			}

			// 2. トークンを検証
			identity, err := authn.AuthenticateRequest(r.Context(), header)
			if err != nil {
				writeAuthError(w, err)
				return
			}

			// 3. 認証済みユーザーIDをコンテキストに注入
			ctx := ContextWithUserID(r.Context(), identity.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// NewOptionalAuthMiddleware はAuthorizationヘッダーがある場合のみ検証するミドルウェアを返す。
// ヘッダーがなければ未認証のまま次のハンドラーに渡す。
// ヘッダーがあり検証に失敗した場合は401を返す（未認証として扱い直さない）。
func NewOptionalAuthMiddleware(authn Authenticator) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			identity, err := authn.AuthenticateRequest(r.Context(), header)
			if err != nil {
				writeAuthError(w, err)
				return
			}

			ctx := ContextWithUserID(r.Context(), identity.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// NewRequireAdminMiddleware は認証済みユーザーが管理者であることを要求するミドルウェアを返す。
// NewBearerAuthMiddlewareの後に適用すること。
// 権限がない場合は403、ユーザーが削除済みの場合は401を返す。
func NewRequireAdminMiddleware(authz AdminAuthorizer) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := UserIDFromContext(r.Context())
			if err != nil {
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
				return
			}

			if err := authz.RequireAdmin(r.Context(), auth.Identity{UserID: userID}); err != nil {
				writeAuthError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// writeAuthError は認証・認可エラーを統一フォーマットで書き込む。
func writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		WriteErrorResponse(w, http.StatusUnauthorized, model.NewExpiredTokenError())
	case errors.Is(err, auth.ErrInvalidToken):
		WriteErrorResponse(w, http.StatusUnauthorized, model.NewInvalidTokenError())
	case errors.Is(err, auth.ErrUserNotFound):
		WriteErrorResponse(w, http.StatusUnauthorized, model.NewUserNotFoundError())
	case errors.Is(err, auth.ErrForbidden):
		WriteErrorResponse(w, http.StatusForbidden, model.NewForbiddenError())
	default:
		slog.Error("authentication failed",
			slog.String("error", err.Error()),
		)
		WriteInternalServerError(w)
	}
}

// UserIDFromContext はリクエストコンテキストからユーザーIDを取得する。
// 認証ミドルウェアを通過したリクエストでのみ有効。
func UserIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(userIDContextKey).(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user ID not found in context")
	}
	return userID, nil
}

// ContextWithUserID はコンテキストにユーザーIDを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}
