package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/valoriza/internal/model"
)

// PostgresTagRepo はPostgreSQLを使用したタグリポジトリ。
type PostgresTagRepo struct {
	db *sql.DB
}

// NewPostgresTagRepo はPostgresTagRepoを生成する。
func NewPostgresTagRepo(db *sql.DB) *PostgresTagRepo {
	return &PostgresTagRepo{db: db}
}

// FindByID は指定IDのタグを取得する。見つからない場合はnilを返す。
func (r *PostgresTagRepo) FindByID(ctx context.Context, id string) (*model.Tag, error) {
	if !isUUID(id) {
		return nil, nil
	}

	tag := &model.Tag{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, created_at, updated_at FROM tags WHERE id = $1`,
		id,
	).Scan(&tag.ID, &tag.Name, &tag.CreatedAt, &tag.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("タグの取得に失敗しました: %w", err)
	}

	return tag, nil
}

// Create はタグを作成する。同名のタグがある場合はErrDuplicateを返す。
func (r *PostgresTagRepo) Create(ctx context.Context, tag *model.Tag) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tags (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		tag.ID, tag.Name, tag.CreatedAt, tag.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("tag %s: %w", tag.Name, ErrDuplicate)
		}
		return fmt.Errorf("タグの作成に失敗しました: %w", err)
	}
	return nil
}

// List は全タグを名前順に返す。
func (r *PostgresTagRepo) List(ctx context.Context) ([]*model.Tag, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, created_at, updated_at FROM tags ORDER BY lower(name)`,
	)
	if err != nil {
		return nil, fmt.Errorf("タグ一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	tags := make([]*model.Tag, 0)
	for rows.Next() {
		tag := &model.Tag{}
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.CreatedAt, &tag.UpdatedAt); err != nil {
			return nil, fmt.Errorf("タグのスキャンに失敗しました: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("タグ一覧の走査に失敗しました: %w", err)
	}

	return tags, nil
}

// compile-time interface check
var _ TagRepository = (*PostgresTagRepo)(nil)
