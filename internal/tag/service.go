// Package tag は称賛タグ管理のドメインロジックを提供する。
package tag

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/hitoshi/valoriza/internal/model"
	"github.com/hitoshi/valoriza/internal/repository"
)

// MaxNameLength はタグ名の最大文字数。
const MaxNameLength = 50

// TextSanitizer は自由記述のプレーンテキスト化インターフェース。
type TextSanitizer interface {
	Sanitize(raw string) string
}

// Service はタグ管理のサービス層。
// 管理者によるタグ作成と一覧取得を提供する。権限判定はルーティング層で行う。
type Service struct {
	tagRepo   repository.TagRepository
	sanitizer TextSanitizer
	now       func() time.Time
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(tagRepo repository.TagRepository, sanitizer TextSanitizer) *Service {
	return &Service{
		tagRepo:   tagRepo,
		sanitizer: sanitizer,
		now:       time.Now,
	}
}

// Create はタグを作成する。
// 名前は大文字小文字を区別せず一意。
func (s *Service) Create(ctx context.Context, name string) (*model.Tag, error) {
	// 1. 名前をプレーンテキスト化して検証
	name = s.sanitizer.Sanitize(name)
	if name == "" || utf8.RuneCountInString(name) > MaxNameLength {
		return nil, model.NewInvalidTagNameError()
	}

	// 2. タグを作成
	now := s.now().UTC()
	t := &model.Tag{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.tagRepo.Create(ctx, t); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, model.NewTagAlreadyExistsError(name)
		}
		return nil, fmt.Errorf("タグの作成に失敗しました: %w", err)
	}

	slog.Info("タグを作成しました",
		slog.String("tag_id", t.ID),
		slog.String("name", t.Name),
	)

	return t, nil
}

// List は全タグを返す。
func (s *Service) List(ctx context.Context) ([]*model.Tag, error) {
	tags, err := s.tagRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("タグ一覧の取得に失敗しました: %w", err)
	}
	return tags, nil
}
