// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"errors"

	"github.com/hitoshi/valoriza/internal/model"
)

// ErrDuplicate は一意制約違反（メールアドレス・タグ名の重複）を表す。
var ErrDuplicate = errors.New("duplicate record")

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail はメールアドレス（大文字小文字を区別しない）でユーザーを検索する。
	// 見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// Create はユーザーを作成する。メールアドレスが重複する場合はErrDuplicateを返す。
	Create(ctx context.Context, user *model.User) error

	// List は全ユーザーを作成日時順に返す。
	List(ctx context.Context) ([]*model.User, error)
}

// TagRepository はタグデータの永続化インターフェース。
type TagRepository interface {
	// FindByID は指定IDのタグを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Tag, error)

	// Create はタグを作成する。同名（大文字小文字を区別しない）のタグがある場合はErrDuplicateを返す。
	Create(ctx context.Context, tag *model.Tag) error

	// List は全タグを名前順に返す。
	List(ctx context.Context) ([]*model.Tag, error)
}

// ComplimentRepository は称賛データの永続化インターフェース。
type ComplimentRepository interface {
	// Create は称賛を作成する。
	Create(ctx context.Context, compliment *model.Compliment) error

	// ListBySender は指定ユーザーが送った称賛をタグ・送受信者付きで新しい順に返す。
	ListBySender(ctx context.Context, userID string) ([]model.ComplimentWithRelations, error)

	// ListByReceiver は指定ユーザーが受け取った称賛をタグ・送受信者付きで新しい順に返す。
	ListByReceiver(ctx context.Context, userID string) ([]model.ComplimentWithRelations, error)
}
