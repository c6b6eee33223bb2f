package handler

import (
	"context"
	"net/http"
	"time"
)

// TagServiceInterface はタグハンドラーが必要とするサービスインターフェース。
type TagServiceInterface interface {
	// Create はタグを作成する。管理者権限の確認はミドルウェアで行う。
	Create(ctx context.Context, name string) (*tagResponse, error)
	// List は全タグを返す。
	List(ctx context.Context) ([]tagResponse, error)
}

// TagHandler はタグ管理のHTTPハンドラー。
type TagHandler struct {
	service TagServiceInterface
}

// NewTagHandler はTagHandlerを生成する。
func NewTagHandler(service TagServiceInterface) *TagHandler {
	return &TagHandler{
		service: service,
	}
}

// tagResponse はタグ情報のAPIレスポンス。
type tagResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	NameCustom string    `json:"name_custom"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// createTagRequest はタグ作成リクエストのボディ。
type createTagRequest struct {
	Name string `json:"name"`
}

// Create はタグを作成する。
// POST /tags（管理者のみ）
func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTagRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	t, err := h.service.Create(r.Context(), req.Name)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, t)
}

// List は全タグを返す。
// GET /tags
func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	tags, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tags)
}
