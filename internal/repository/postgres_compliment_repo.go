package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/valoriza/internal/model"
)

// PostgresComplimentRepo はPostgreSQLを使用した称賛リポジトリ。
type PostgresComplimentRepo struct {
	db *sql.DB
}

// NewPostgresComplimentRepo はPostgresComplimentRepoを生成する。
func NewPostgresComplimentRepo(db *sql.DB) *PostgresComplimentRepo {
	return &PostgresComplimentRepo{db: db}
}

// Create は称賛を作成する。
func (r *PostgresComplimentRepo) Create(ctx context.Context, c *model.Compliment) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO compliments (id, user_sender, user_receiver, tag_id, message, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.UserSender, c.UserReceiver, c.TagID, c.Message, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("称賛の作成に失敗しました: %w", err)
	}
	return nil
}

// listComplimentsQuery は称賛にタグと送受信者をJOINするクエリ。%sに絞り込み列が入る。
const listComplimentsQuery = `
	SELECT c.id, c.user_sender, c.user_receiver, c.tag_id, c.message, c.created_at,
	       t.id, t.name, t.created_at, t.updated_at,
	       s.id, s.name, s.email,
	       r.id, r.name, r.email
	FROM compliments c
	JOIN tags t ON t.id = c.tag_id
	JOIN users s ON s.id = c.user_sender
	JOIN users r ON r.id = c.user_receiver
	WHERE c.%s = $1
	ORDER BY c.created_at DESC, c.id`

// ListBySender は指定ユーザーが送った称賛を新しい順に返す。
func (r *PostgresComplimentRepo) ListBySender(ctx context.Context, userID string) ([]model.ComplimentWithRelations, error) {
	return r.list(ctx, "user_sender", userID)
}

// ListByReceiver は指定ユーザーが受け取った称賛を新しい順に返す。
func (r *PostgresComplimentRepo) ListByReceiver(ctx context.Context, userID string) ([]model.ComplimentWithRelations, error) {
	return r.list(ctx, "user_receiver", userID)
}

func (r *PostgresComplimentRepo) list(ctx context.Context, column, userID string) ([]model.ComplimentWithRelations, error) {
	result := make([]model.ComplimentWithRelations, 0)
	if !isUUID(userID) {
		return result, nil
	}

	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(listComplimentsQuery, column), userID)
	if err != nil {
		return nil, fmt.Errorf("称賛一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c model.ComplimentWithRelations
		if err := rows.Scan(
			&c.ID, &c.UserSender, &c.UserReceiver, &c.TagID, &c.Message, &c.CreatedAt,
			&c.Tag.ID, &c.Tag.Name, &c.Tag.CreatedAt, &c.Tag.UpdatedAt,
			&c.Sender.ID, &c.Sender.Name, &c.Sender.Email,
			&c.Receiver.ID, &c.Receiver.Name, &c.Receiver.Email,
		); err != nil {
			return nil, fmt.Errorf("称賛のスキャンに失敗しました: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("称賛一覧の走査に失敗しました: %w", err)
	}

	return result, nil
}

// compile-time interface check
var _ ComplimentRepository = (*PostgresComplimentRepo)(nil)
