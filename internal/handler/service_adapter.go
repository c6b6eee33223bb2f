package handler

import (
	"context"

	"github.com/hitoshi/valoriza/internal/compliment"
	"github.com/hitoshi/valoriza/internal/model"
	"github.com/hitoshi/valoriza/internal/tag"
	"github.com/hitoshi/valoriza/internal/user"
)

// UserServiceAdapter は user.Service を UserServiceInterface に適合させるアダプタ。
// パスワードハッシュを含まないレスポンス型に変換する。
type UserServiceAdapter struct {
	svc *user.Service
}

// NewUserServiceAdapter はUserServiceAdapterを生成する。
func NewUserServiceAdapter(svc *user.Service) *UserServiceAdapter {
	return &UserServiceAdapter{svc: svc}
}

// Register はユーザーを登録しhandlerレスポンス型で返す。
func (a *UserServiceAdapter) Register(ctx context.Context, input user.RegisterInput, requestedByAdmin bool) (*userResponse, error) {
	u, err := a.svc.Register(ctx, input, requestedByAdmin)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(u)
	return &resp, nil
}

// List は全ユーザーをhandlerレスポンス型で返す。
func (a *UserServiceAdapter) List(ctx context.Context) ([]userResponse, error) {
	users, err := a.svc.List(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]userResponse, len(users))
	for i, u := range users {
		results[i] = toUserResponse(u)
	}
	return results, nil
}

// Get は指定ユーザーをhandlerレスポンス型で返す。
func (a *UserServiceAdapter) Get(ctx context.Context, userID string) (*userResponse, error) {
	u, err := a.svc.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(u)
	return &resp, nil
}

// TagServiceAdapter は tag.Service を TagServiceInterface に適合させるアダプタ。
type TagServiceAdapter struct {
	svc *tag.Service
}

// NewTagServiceAdapter はTagServiceAdapterを生成する。
func NewTagServiceAdapter(svc *tag.Service) *TagServiceAdapter {
	return &TagServiceAdapter{svc: svc}
}

// Create はタグを作成しhandlerレスポンス型で返す。
func (a *TagServiceAdapter) Create(ctx context.Context, name string) (*tagResponse, error) {
	t, err := a.svc.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	resp := toTagResponse(t)
	return &resp, nil
}

// List は全タグをhandlerレスポンス型で返す。
func (a *TagServiceAdapter) List(ctx context.Context) ([]tagResponse, error) {
	tags, err := a.svc.List(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]tagResponse, len(tags))
	for i, t := range tags {
		results[i] = toTagResponse(t)
	}
	return results, nil
}

// ComplimentServiceAdapter は compliment.Service を ComplimentServiceInterface に適合させるアダプタ。
type ComplimentServiceAdapter struct {
	svc *compliment.Service
}

// NewComplimentServiceAdapter はComplimentServiceAdapterを生成する。
func NewComplimentServiceAdapter(svc *compliment.Service) *ComplimentServiceAdapter {
	return &ComplimentServiceAdapter{svc: svc}
}

// Create は称賛を作成しhandlerレスポンス型で返す。
func (a *ComplimentServiceAdapter) Create(ctx context.Context, senderID string, input compliment.CreateInput) (*complimentResponse, error) {
	c, err := a.svc.Create(ctx, senderID, input)
	if err != nil {
		return nil, err
	}
	resp := toComplimentResponse(*c)
	return &resp, nil
}

// ListSent は送信済み称賛をhandlerレスポンス型で返す。
func (a *ComplimentServiceAdapter) ListSent(ctx context.Context, userID string) ([]complimentDetailResponse, error) {
	list, err := a.svc.ListSent(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toComplimentDetailResponses(list), nil
}

// ListReceived は受信済み称賛をhandlerレスポンス型で返す。
func (a *ComplimentServiceAdapter) ListReceived(ctx context.Context, userID string) ([]complimentDetailResponse, error) {
	list, err := a.svc.ListReceived(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toComplimentDetailResponses(list), nil
}

// toUserResponse はmodel.UserからAPIレスポンスに変換する。
// PasswordHashはコピーしない。
func toUserResponse(u *model.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Admin:     u.IsAdmin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// toTagResponse はmodel.TagからAPIレスポンスに変換する。
func toTagResponse(t *model.Tag) tagResponse {
	return tagResponse{
		ID:         t.ID,
		Name:       t.Name,
		NameCustom: t.NameCustom(),
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

// toComplimentResponse はmodel.ComplimentからAPIレスポンスに変換する。
func toComplimentResponse(c model.Compliment) complimentResponse {
	return complimentResponse{
		ID:           c.ID,
		UserSender:   c.UserSender,
		UserReceiver: c.UserReceiver,
		TagID:        c.TagID,
		Message:      c.Message,
		CreatedAt:    c.CreatedAt,
	}
}

// toComplimentDetailResponses は結合済みの称賛一覧をAPIレスポンスに変換する。
// 空の一覧は null ではなく [] として返す。
func toComplimentDetailResponses(list []model.ComplimentWithRelations) []complimentDetailResponse {
	results := make([]complimentDetailResponse, len(list))
	for i, c := range list {
		results[i] = complimentDetailResponse{
			complimentResponse: toComplimentResponse(c.Compliment),
			Tag:                toTagResponse(&c.Tag),
			Sender:             userSummaryResponse{ID: c.Sender.ID, Name: c.Sender.Name, Email: c.Sender.Email},
			Receiver:           userSummaryResponse{ID: c.Receiver.ID, Name: c.Receiver.Name, Email: c.Receiver.Email},
		}
	}
	return results
}

// --- compile-time interface checks ---

var _ UserServiceInterface = (*UserServiceAdapter)(nil)
var _ TagServiceInterface = (*TagServiceAdapter)(nil)
var _ ComplimentServiceInterface = (*ComplimentServiceAdapter)(nil)
