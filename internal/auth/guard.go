package auth

import (
	"context"
	"fmt"

	"github.com/hitoshi/valoriza/internal/model"
)

// Capability は権限で保護された操作に必要な能力を表す。
type Capability string

const (
	// CapabilityAdmin は管理者のみに許可された操作（タグ作成など）を表す。
	CapabilityAdmin Capability = "admin"
)

// UserFinder はIDによるユーザー検索のインターフェース。
// repository.UserRepositoryの部分集合として定義する。見つからない場合はnilを返す。
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// Guard は認証済みIdentityに対する認可判定を行う（Access Guard）。
// トークンに含まれる情報ではなく、判定時点のユーザーレコードの権限フラグを参照する。
type Guard struct {
	users UserFinder
}

// NewGuard はGuardを生成する。
func NewGuard(users UserFinder) *Guard {
	return &Guard{users: users}
}

// Authorize はidentityが必要な能力を持つかを判定する。
// ユーザーが存在しない場合はErrUserNotFound、権限がない場合はErrForbiddenを返す。
// 未知の能力が要求された場合も拒否する。
func (g *Guard) Authorize(ctx context.Context, identity Identity, required Capability) error {
	if identity.UserID == "" {
		return ErrUserNotFound
	}

	user, err := g.users.FindByID(ctx, identity.UserID)
	if err != nil {
		return fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	switch required {
	case CapabilityAdmin:
		if !user.IsAdmin {
			return ErrForbidden
		}
		return nil
	default:
		return ErrForbidden
	}
}
