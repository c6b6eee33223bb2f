// Package user はユーザー管理のドメインロジックを提供する。
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/hitoshi/valoriza/internal/auth"
	"github.com/hitoshi/valoriza/internal/model"
	"github.com/hitoshi/valoriza/internal/repository"
)

const (
	// MinPasswordLength はパスワードの最小文字数。
	MinPasswordLength = 8
	// maxPasswordBytes はbcryptが扱えるパスワードの最大バイト数。
	maxPasswordBytes = 72
	// MaxNameLength は表示名の最大文字数。
	MaxNameLength = 100
)

// PasswordHasher はパスワードのハッシュ化インターフェース。
// auth.PasswordHasherが実装する。
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// TextSanitizer は自由記述のプレーンテキスト化インターフェース。
type TextSanitizer interface {
	Sanitize(raw string) string
}

// RegisterInput はユーザー登録の入力値。
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Admin    bool
}

// Service はユーザー管理のサービス層。
// ユーザー登録、一覧取得、プロフィール取得のビジネスロジックを提供する。
type Service struct {
	userRepo  repository.UserRepository
	hasher    PasswordHasher
	sanitizer TextSanitizer
	now       func() time.Time
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(
	userRepo repository.UserRepository,
	hasher PasswordHasher,
	sanitizer TextSanitizer,
) *Service {
	return &Service{
		userRepo:  userRepo,
		hasher:    hasher,
		sanitizer: sanitizer,
		now:       time.Now,
	}
}

// Register はユーザーを登録する。
// 管理者ユーザーの作成は、管理者による認証済みリクエスト（requestedByAdmin）の場合のみ許可する。
func (s *Service) Register(ctx context.Context, input RegisterInput, requestedByAdmin bool) (*model.User, error) {
	// 1. 入力値の正規化と検証
	name := s.sanitizer.Sanitize(input.Name)
	email := auth.NormalizeEmail(input.Email)

	if err := validateRegisterInput(name, email, input.Password); err != nil {
		return nil, err
	}

	// 2. 権限昇格の防止
	if input.Admin && !requestedByAdmin {
		slog.Warn("管理者ユーザーの作成が拒否されました",
			slog.String("email", email),
		)
		return nil, model.NewForbiddenError()
	}

	// 3. パスワードのハッシュ化
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("パスワードのハッシュ化に失敗しました: %w", err)
	}

	// 4. ユーザーを作成
	now := s.now().UTC()
	user := &model.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      input.Admin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, model.NewUserAlreadyExistsError()
		}
		return nil, fmt.Errorf("ユーザーの作成に失敗しました: %w", err)
	}

	slog.Info("ユーザーを登録しました",
		slog.String("user_id", user.ID),
		slog.Bool("is_admin", user.IsAdmin),
	)

	return user, nil
}

// List は全ユーザーを返す。
func (s *Service) List(ctx context.Context) ([]*model.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("ユーザー一覧の取得に失敗しました: %w", err)
	}
	return users, nil
}

// FindByID は指定IDのユーザーを返す。
// トークン発行後にユーザーが削除された場合はUSER_NOT_FOUNDを返す。
func (s *Service) FindByID(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError()
	}
	return user, nil
}

// validateRegisterInput は正規化済みの登録入力を検証する。
func validateRegisterInput(name, email, password string) error {
	if name == "" {
		return model.NewInvalidRequestError("名前は必須です")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return model.NewInvalidRequestError(fmt.Sprintf("名前は%d文字以内で入力してください", MaxNameLength))
	}
	if email == "" {
		return model.NewInvalidRequestError("メールアドレスは必須です")
	}
	if !isEmailAddress(email) {
		return model.NewInvalidRequestError("メールアドレスの形式が正しくありません")
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return model.NewInvalidRequestError(fmt.Sprintf("パスワードは%d文字以上で入力してください", MinPasswordLength))
	}
	if len(password) > maxPasswordBytes {
		return model.NewInvalidRequestError(fmt.Sprintf("パスワードは%dバイト以内で入力してください", maxPasswordBytes))
	}
	return nil
}

// isEmailAddress は表示名なしの単一アドレスであることを確認する。
func isEmailAddress(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	return addr.Address == email && strings.Contains(addr.Address, "@")
}
