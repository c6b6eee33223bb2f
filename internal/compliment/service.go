// Package compliment は称賛の送信と一覧取得のドメインロジックを提供する。
package compliment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/hitoshi/valoriza/internal/model"
	"github.com/hitoshi/valoriza/internal/repository"
)

// MaxMessageLength はメッセージの最大文字数（サニタイズ後）。
const MaxMessageLength = 500

// TextSanitizer は自由記述のプレーンテキスト化インターフェース。
type TextSanitizer interface {
	Sanitize(raw string) string
}

// Recorder は称賛作成のメトリクス記録インターフェース。
// metrics.Collectorが実装する。
type Recorder interface {
	RecordComplimentCreated()
}

// CreateInput は称賛作成の入力値。
type CreateInput struct {
	TagID        string
	UserReceiver string
	Message      string
}

// Service は称賛のサービス層。
type Service struct {
	complimentRepo repository.ComplimentRepository
	userRepo       repository.UserRepository
	tagRepo        repository.TagRepository
	sanitizer      TextSanitizer
	recorder       Recorder
	now            func() time.Time
}

// NewService はServiceの新しいインスタンスを生成する。
// recorderはnilでもよい。
func NewService(
	complimentRepo repository.ComplimentRepository,
	userRepo repository.UserRepository,
	tagRepo repository.TagRepository,
	sanitizer TextSanitizer,
	recorder Recorder,
) *Service {
	return &Service{
		complimentRepo: complimentRepo,
		userRepo:       userRepo,
		tagRepo:        tagRepo,
		sanitizer:      sanitizer,
		recorder:       recorder,
		now:            time.Now,
	}
}

// Create は送信者から受信者へ称賛を送る。
// 検証順序: 必須項目 → 自分宛て → 送信者の存在 → 受信者の存在 → タグの存在 → メッセージ長。
// 送信者はトークン発行後に削除されている可能性があるため、ここで再確認する。
func (s *Service) Create(ctx context.Context, senderID string, input CreateInput) (*model.Compliment, error) {
	receiverID := strings.TrimSpace(input.UserReceiver)
	tagID := strings.TrimSpace(input.TagID)

	// 1. 必須項目
	if receiverID == "" {
		return nil, model.NewInvalidRequestError("user_receiverは必須です")
	}
	if tagID == "" {
		return nil, model.NewInvalidRequestError("tag_idは必須です")
	}

	// 2. 自分自身への称賛は不可
	if receiverID == senderID {
		return nil, model.NewInvalidReceiverError()
	}

	// 3. 送信者の存在確認
	sender, err := s.userRepo.FindByID(ctx, senderID)
	if err != nil {
		return nil, fmt.Errorf("送信者の取得に失敗しました: %w", err)
	}
	if sender == nil {
		return nil, model.NewUserNotFoundError()
	}

	// 4. 受信者の存在確認
	receiver, err := s.userRepo.FindByID(ctx, receiverID)
	if err != nil {
		return nil, fmt.Errorf("受信者の取得に失敗しました: %w", err)
	}
	if receiver == nil {
		return nil, model.NewReceiverNotFoundError(receiverID)
	}

	// 5. タグの存在確認
	t, err := s.tagRepo.FindByID(ctx, tagID)
	if err != nil {
		return nil, fmt.Errorf("タグの取得に失敗しました: %w", err)
	}
	if t == nil {
		return nil, model.NewTagNotFoundError(tagID)
	}

	// 6. メッセージをプレーンテキスト化して検証
	message := s.sanitizer.Sanitize(input.Message)
	if message == "" || utf8.RuneCountInString(message) > MaxMessageLength {
		return nil, model.NewInvalidMessageError(MaxMessageLength)
	}

	// 7. 称賛を作成
	c := &model.Compliment{
		ID:           uuid.NewString(),
		UserSender:   sender.ID,
		UserReceiver: receiver.ID,
		TagID:        t.ID,
		Message:      message,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.complimentRepo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("称賛の作成に失敗しました: %w", err)
	}

	if s.recorder != nil {
		s.recorder.RecordComplimentCreated()
	}

	slog.Info("称賛を送信しました",
		slog.String("compliment_id", c.ID),
		slog.String("user_id", senderID),
		slog.String("receiver_id", receiver.ID),
		slog.String("tag_id", t.ID),
	)

	return c, nil
}

// ListSent は指定ユーザーが送った称賛を新しい順に返す。
func (s *Service) ListSent(ctx context.Context, userID string) ([]model.ComplimentWithRelations, error) {
	list, err := s.complimentRepo.ListBySender(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("送信済み称賛の取得に失敗しました: %w", err)
	}
	return list, nil
}

// ListReceived は指定ユーザーが受け取った称賛を新しい順に返す。
func (s *Service) ListReceived(ctx context.Context, userID string) ([]model.ComplimentWithRelations, error) {
	list, err := s.complimentRepo.ListByReceiver(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("受信済み称賛の取得に失敗しました: %w", err)
	}
	return list, nil
}
