// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, tag, compliment, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeInvalidRequest     = "INVALID_REQUEST"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidToken       = "INVALID_TOKEN"
	ErrCodeExpiredToken       = "EXPIRED_TOKEN"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
	ErrCodeUserAlreadyExists  = "USER_ALREADY_EXISTS"
	ErrCodeInvalidTagName     = "INVALID_TAG_NAME"
	ErrCodeTagAlreadyExists   = "TAG_ALREADY_EXISTS"
	ErrCodeTagNotFound        = "TAG_NOT_FOUND"
	ErrCodeInvalidReceiver    = "INVALID_RECEIVER"
	ErrCodeReceiverNotFound   = "RECEIVER_NOT_FOUND"
	ErrCodeInvalidMessage     = "INVALID_MESSAGE"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

// NewInvalidRequestError は入力値が不正な場合のエラーを生成する。
func NewInvalidRequestError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRequest,
		Message:  fmt.Sprintf("入力値が不正です: %s", reason),
		Category: "validation",
		Action:   "入力内容を確認してください。",
	}
}

// NewInvalidCredentialsError はログイン失敗エラーを生成する。
// メールアドレス未登録とパスワード不一致を区別しない（アカウント列挙対策）。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCredentials,
		Message:  "メールアドレスまたはパスワードが正しくありません。",
		Category: "auth",
		Action:   "入力内容を確認して再度ログインしてください。",
	}
}

// NewUnauthorizedError はAuthorizationヘッダーがない場合のエラーを生成する。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  "認証が必要です。",
		Category: "auth",
		Action:   "ログインしてください。",
	}
}

// NewInvalidTokenError はトークンが不正または改ざんされている場合のエラーを生成する。
func NewInvalidTokenError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidToken,
		Message:  "トークンが無効です。",
		Category: "auth",
		Action:   "ログインし直してください。",
	}
}

// NewExpiredTokenError はトークンの有効期限切れエラーを生成する。
func NewExpiredTokenError() *APIError {
	return &APIError{
		Code:     ErrCodeExpiredToken,
		Message:  "トークンの有効期限が切れています。",
		Category: "auth",
		Action:   "再度ログインしてください。",
	}
}

// NewForbiddenError は権限不足エラーを生成する。
func NewForbiddenError() *APIError {
	return &APIError{
		Code:     ErrCodeForbidden,
		Message:  "この操作を行う権限がありません。",
		Category: "auth",
		Action:   "管理者に問い合わせてください。",
	}
}

// NewUserNotFoundError はユーザーが見つからない場合のエラーを生成する。
func NewUserNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  "ユーザーが見つかりません。",
		Category: "auth",
		Action:   "ログインし直してください。",
	}
}

// NewUserAlreadyExistsError はメールアドレスが登録済みの場合のエラーを生成する。
func NewUserAlreadyExistsError() *APIError {
	return &APIError{
		Code:     ErrCodeUserAlreadyExists,
		Message:  "このメールアドレスは既に登録されています。",
		Category: "validation",
		Action:   "別のメールアドレスを指定するか、ログインしてください。",
	}
}

// NewInvalidTagNameError はタグ名が不正な場合のエラーを生成する。
func NewInvalidTagNameError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidTagName,
		Message:  "タグ名が不正です。",
		Category: "validation",
		Action:   "1文字以上のタグ名を指定してください。",
	}
}

// NewTagAlreadyExistsError は同名のタグが存在する場合のエラーを生成する。
func NewTagAlreadyExistsError(name string) *APIError {
	return &APIError{
		Code:     ErrCodeTagAlreadyExists,
		Message:  fmt.Sprintf("タグは既に存在します: %s", name),
		Category: "tag",
		Action:   "既存のタグを使用してください。",
	}
}

// NewTagNotFoundError はタグが見つからない場合のエラーを生成する。
func NewTagNotFoundError(tagID string) *APIError {
	return &APIError{
		Code:     ErrCodeTagNotFound,
		Message:  fmt.Sprintf("指定されたタグが見つかりません: %s", tagID),
		Category: "tag",
		Action:   "タグIDを確認してください。",
	}
}

// NewInvalidReceiverError は自分自身に称賛を送ろうとした場合のエラーを生成する。
func NewInvalidReceiverError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidReceiver,
		Message:  "自分自身に称賛を送ることはできません。",
		Category: "compliment",
		Action:   "別のユーザーを受信者に指定してください。",
	}
}

// NewReceiverNotFoundError は受信者が存在しない場合のエラーを生成する。
func NewReceiverNotFoundError(userID string) *APIError {
	return &APIError{
		Code:     ErrCodeReceiverNotFound,
		Message:  fmt.Sprintf("受信者が見つかりません: %s", userID),
		Category: "compliment",
		Action:   "受信者のユーザーIDを確認してください。",
	}
}

// NewInvalidMessageError はメッセージが不正な場合のエラーを生成する。
func NewInvalidMessageError(maxLen int) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidMessage,
		Message:  "メッセージが不正です。",
		Category: "validation",
		Action:   fmt.Sprintf("メッセージは1文字以上%d文字以内で入力してください。", maxLen),
	}
}

// NewInternalError は内部エラーを生成する。
// 詳細はログのみに記録し、ユーザーには一般的なメッセージを返す。
func NewInternalError() *APIError {
	return &APIError{
		Code:     ErrCodeInternal,
		Message:  "内部エラーが発生しました。",
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	}
}
