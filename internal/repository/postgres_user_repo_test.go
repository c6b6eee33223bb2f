package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

// PostgresUserRepoはUserRepositoryインターフェースを満たすことを検証
func TestPostgresUserRepo_ImplementsInterface(t *testing.T) {
	var _ UserRepository = (*PostgresUserRepo)(nil)
}

// PostgresTagRepoはTagRepositoryインターフェースを満たすことを検証
func TestPostgresTagRepo_ImplementsInterface(t *testing.T) {
	var _ TagRepository = (*PostgresTagRepo)(nil)
}

// PostgresComplimentRepoはComplimentRepositoryインターフェースを満たすことを検証
func TestPostgresComplimentRepo_ImplementsInterface(t *testing.T) {
	var _ ComplimentRepository = (*PostgresComplimentRepo)(nil)
}

// NewPostgresUserRepoが正しく初期化されることを検証
func TestNewPostgresUserRepo_Initializes(t *testing.T) {
	repo := NewPostgresUserRepo(nil)
	if repo == nil {
		t.Fatal("expected non-nil repo")
	}
}

// UUID形式でないIDはDBに問い合わせずnilを返す（DB接続なしで検証）
func TestPostgresUserRepo_FindByID_NonUUID_ReturnsNil(t *testing.T) {
	repo := NewPostgresUserRepo(nil)

	user, err := repo.FindByID(context.Background(), "not-a-uuid")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user != nil {
		t.Errorf("expected nil user, got %+v", user)
	}
}

func TestPostgresTagRepo_FindByID_NonUUID_ReturnsNil(t *testing.T) {
	repo := NewPostgresTagRepo(nil)

	tag, err := repo.FindByID(context.Background(), "'; DROP TABLE tags; --")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if tag != nil {
		t.Errorf("expected nil tag, got %+v", tag)
	}
}

func TestPostgresComplimentRepo_List_NonUUID_ReturnsEmpty(t *testing.T) {
	repo := NewPostgresComplimentRepo(nil)

	list, err := repo.ListBySender(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", list)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "unique violation", err: &pq.Error{Code: "23505"}, want: true},
		{name: "wrapped unique violation", err: fmt.Errorf("insert: %w", &pq.Error{Code: "23505"}), want: true},
		{name: "foreign key violation", err: &pq.Error{Code: "23503"}, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isUniqueViolation(tt.err); got != tt.want {
				t.Errorf("isUniqueViolation() = %v, want %v", got, tt.want)
			}
		})
	}
}
