package tag

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hitoshi/valoriza/internal/model"
	"github.com/hitoshi/valoriza/internal/repository"
	"github.com/hitoshi/valoriza/internal/security"
)

// --- モック ---

type mockTagRepo struct {
	findByIDFn func(ctx context.Context, id string) (*model.Tag, error)
	createFn   func(ctx context.Context, tag *model.Tag) error
	listFn     func(ctx context.Context) ([]*model.Tag, error)
}

func (m *mockTagRepo) FindByID(ctx context.Context, id string) (*model.Tag, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}
func (m *mockTagRepo) Create(ctx context.Context, tag *model.Tag) error {
	if m.createFn != nil {
		return m.createFn(ctx, tag)
	}
	return nil
}
func (m *mockTagRepo) List(ctx context.Context) ([]*model.Tag, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func assertAPIErrorCode(t *testing.T, err error, want string) {
	t.Helper()
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *model.APIError, got %T (%v)", err, err)
	}
	if apiErr.Code != want {
		t.Errorf("error code = %q, want %q", apiErr.Code, want)
	}
}

// --- テスト ---

// TestService_Create はタグ名をサニタイズして作成することを検証する。
func TestService_Create(t *testing.T) {
	var created *model.Tag
	repo := &mockTagRepo{
		createFn: func(ctx context.Context, tag *model.Tag) error {
			created = tag
			return nil
		},
	}
	svc := NewService(repo, security.NewTextSanitizer())

	tag, err := svc.Create(context.Background(), "  <em>Teamwork</em> ")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created != tag {
		t.Error("expected the returned tag to be persisted")
	}
	if tag.Name != "Teamwork" {
		t.Errorf("Name = %q, want %q", tag.Name, "Teamwork")
	}
	if tag.NameCustom() != "#Teamwork" {
		t.Errorf("NameCustom() = %q, want %q", tag.NameCustom(), "#Teamwork")
	}
	if tag.ID == "" || tag.CreatedAt.IsZero() {
		t.Errorf("expected id and timestamps to be set: %+v", tag)
	}
}

// TestService_Create_InvalidName は空・長すぎる名前がINVALID_TAG_NAMEになることを検証する。
func TestService_Create_InvalidName(t *testing.T) {
	svc := NewService(&mockTagRepo{}, security.NewTextSanitizer())

	for _, name := range []string{"", "   ", "<script>x</script>", strings.Repeat("a", MaxNameLength+1)} {
		_, err := svc.Create(context.Background(), name)
		assertAPIErrorCode(t, err, model.ErrCodeInvalidTagName)
	}
}

// TestService_Create_Duplicate は重複がTAG_ALREADY_EXISTSになることを検証する。
func TestService_Create_Duplicate(t *testing.T) {
	repo := &mockTagRepo{
		createFn: func(ctx context.Context, tag *model.Tag) error {
			return repository.ErrDuplicate
		},
	}
	svc := NewService(repo, security.NewTextSanitizer())

	_, err := svc.Create(context.Background(), "teamwork")
	assertAPIErrorCode(t, err, model.ErrCodeTagAlreadyExists)
}

// TestService_Create_RepositoryError はDBエラーがラップされて返ることを検証する。
func TestService_Create_RepositoryError(t *testing.T) {
	dbErr := errors.New("connection refused")
	repo := &mockTagRepo{
		createFn: func(ctx context.Context, tag *model.Tag) error {
			return dbErr
		},
	}
	svc := NewService(repo, security.NewTextSanitizer())

	if _, err := svc.Create(context.Background(), "teamwork"); !errors.Is(err, dbErr) {
		t.Errorf("expected wrapped db error, got %v", err)
	}
}

// TestService_List はタグ一覧を返すことを検証する。
func TestService_List(t *testing.T) {
	repo := &mockTagRepo{
		listFn: func(ctx context.Context) ([]*model.Tag, error) {
			return []*model.Tag{{ID: "t1", Name: "kindness"}}, nil
		},
	}
	svc := NewService(repo, security.NewTextSanitizer())

	tags, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(tags) != 1 || tags[0].Name != "kindness" {
		t.Errorf("unexpected tags: %+v", tags)
	}
}
