package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/hitoshi/valoriza/internal/compliment"
)

// ComplimentServiceInterface は称賛ハンドラーが必要とするサービスインターフェース。
type ComplimentServiceInterface interface {
	// Create は送信者から受信者へ称賛を送る。
	Create(ctx context.Context, senderID string, input compliment.CreateInput) (*complimentResponse, error)
	// ListSent は指定ユーザーが送った称賛を新しい順に返す。
	ListSent(ctx context.Context, userID string) ([]complimentDetailResponse, error)
	// ListReceived は指定ユーザーが受け取った称賛を新しい順に返す。
	ListReceived(ctx context.Context, userID string) ([]complimentDetailResponse, error)
}

// ComplimentHandler は称賛のHTTPハンドラー。
type ComplimentHandler struct {
	service ComplimentServiceInterface
}

// NewComplimentHandler はComplimentHandlerを生成する。
func NewComplimentHandler(service ComplimentServiceInterface) *ComplimentHandler {
	return &ComplimentHandler{
		service: service,
	}
}

// complimentResponse は称賛のAPIレスポンス。
type complimentResponse struct {
	ID           string    `json:"id"`
	UserSender   string    `json:"user_sender"`
	UserReceiver string    `json:"user_receiver"`
	TagID        string    `json:"tag_id"`
	Message      string    `json:"message"`
	CreatedAt    time.Time `json:"created_at"`
}

// userSummaryResponse は称賛一覧に埋め込むユーザー概要。
type userSummaryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// complimentDetailResponse はタグと送受信者を含む称賛のAPIレスポンス。
type complimentDetailResponse struct {
	complimentResponse
	Tag      tagResponse         `json:"tag"`
	Sender   userSummaryResponse `json:"sender"`
	Receiver userSummaryResponse `json:"receiver"`
}

// createComplimentRequest は称賛作成リクエストのボディ。
type createComplimentRequest struct {
	TagID        string `json:"tag_id"`
	UserReceiver string `json:"user_receiver"`
	Message      string `json:"message"`
}

// Create は称賛を送る。送信者は認証済みユーザー。
// POST /compliments
func (h *ComplimentHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req createComplimentRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	c, err := h.service.Create(r.Context(), userID, compliment.CreateInput{
		TagID:        req.TagID,
		UserReceiver: req.UserReceiver,
		Message:      req.Message,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, c)
}

// ListSent は認証済みユーザーが送った称賛の一覧を返す。
// GET /users/compliments/send
func (h *ComplimentHandler) ListSent(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	list, err := h.service.ListSent(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

// ListReceived は認証済みユーザーが受け取った称賛の一覧を返す。
// GET /users/compliments/receive
func (h *ComplimentHandler) ListReceived(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	list, err := h.service.ListReceived(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}
