package auth

import "errors"

// 認証・認可コアが返すエラー。
// 呼び出し側はerrors.Isで判定し、ルーティング層でHTTPステータスに変換する。
var (
	// ErrInvalidCredentials はメールアドレス未登録またはパスワード不一致を表す。
	// アカウント列挙を防ぐため、両者を区別しない。
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken はトークンの形式不正・署名不一致を表す。
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken は署名は正しいが有効期限を過ぎたトークンを表す。
	ErrExpiredToken = errors.New("token expired")

	// ErrForbidden は認証済みだが必要な権限を持たないことを表す。
	ErrForbidden = errors.New("forbidden")

	// ErrUserNotFound はトークンの主体が既存ユーザーに解決できないことを表す。
	ErrUserNotFound = errors.New("user not found")

	// ErrMissingSecret は署名シークレット未設定の構成エラー。
	// リクエスト単位で回復せず、起動を中止しなければならない。
	ErrMissingSecret = errors.New("token signing secret is not configured")

	// ErrInvalidTTL は有効期限のないトークンを発行しようとしたことを表す。
	ErrInvalidTTL = errors.New("token ttl must be positive")
)
