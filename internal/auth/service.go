// Package auth は認証・認可のコアを提供する。
//
// パスワード照合（Credential Verifier）、トークン発行（Token Issuer）、
// トークン検証（Token Verifier）、権限判定（Access Guard）の4つから成り、
// ログインフローと保護リクエストフローをServiceとして公開する。
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/hitoshi/valoriza/internal/model"
)

const tracerName = "github.com/hitoshi/valoriza/internal/auth"

// 照合結果のメトリクスラベル
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultInvalid = "invalid"
	ResultExpired = "expired"
	ResultDenied  = "forbidden"
	ResultMissing = "not_found"
	ResultError   = "error"
)

// UserLookup はユーザーストアに対する検索インターフェース。
// 見つからない場合は(nil, nil)を返す。
type UserLookup interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// Recorder は認証結果を記録するメトリクスのインターフェース。
// metrics.Collectorが実装する。
type Recorder interface {
	RecordLogin(result string)
	RecordTokenVerification(result string)
	RecordAuthorization(result string)
}

type nopRecorder struct{}

func (nopRecorder) RecordLogin(string)             {}
func (nopRecorder) RecordTokenVerification(string) {}
func (nopRecorder) RecordAuthorization(string)     {}

// ServiceOption はServiceのオプション。
type ServiceOption func(*Service)

// WithRecorder はメトリクスの記録先を設定する。
func WithRecorder(r Recorder) ServiceOption {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithTracer はOpenTelemetryのトレーサーを差し替える。
func WithTracer(t trace.Tracer) ServiceOption {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

// Service はルーティング層に公開する認証・認可の境界。
//   - Login: Credential Verifier → Token Issuer
//   - AuthenticateRequest: Token Verifier
//   - RequireAdmin: Access Guard
type Service struct {
	users     UserLookup
	hasher    *PasswordHasher
	tokens    *TokenService
	guard     *Guard
	dummyHash string
	recorder  Recorder
	tracer    trace.Tracer
}

// NewService はServiceを生成する。
func NewService(users UserLookup, hasher *PasswordHasher, tokens *TokenService, opts ...ServiceOption) *Service {
	s := &Service{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		guard:    NewGuard(users),
		recorder: nopRecorder{},
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}

	// 未登録メールアドレスでも登録済みと同じコストの照合を行うためのダミーハッシュ
	if h, err := hasher.Hash("valoriza-dummy-credential"); err == nil {
		s.dummyHash = h
	}

	return s
}

// Login はメールアドレスとパスワードを照合し、成功した場合にトークンを発行する。
// メールアドレス未登録とパスワード不一致はどちらもErrInvalidCredentialsを返す。
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "auth.Login")
	defer span.End()

	email = NormalizeEmail(email)
	if email == "" || password == "" {
		s.recorder.RecordLogin(ResultFailure)
		return "", s.fail(span, ErrInvalidCredentials)
	}

	// 1. メールアドレスでユーザーを検索
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		s.recorder.RecordLogin(ResultError)
		return "", s.fail(span, fmt.Errorf("failed to find user by email: %w", err))
	}

	// 2. パスワード照合（未登録の場合もダミーハッシュで照合して応答時間を揃える）
	if user == nil {
		s.hasher.Verify(password, s.dummyHash)
		s.recorder.RecordLogin(ResultFailure)
		return "", s.fail(span, ErrInvalidCredentials)
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		s.recorder.RecordLogin(ResultFailure)
		slog.Warn("login failed", slog.String("user_id", user.ID))
		return "", s.fail(span, ErrInvalidCredentials)
	}

	// 3. トークン発行
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.recorder.RecordLogin(ResultError)
		return "", s.fail(span, fmt.Errorf("failed to issue token: %w", err))
	}

	s.recorder.RecordLogin(ResultSuccess)
	span.SetAttributes(attribute.String("user_id", user.ID))
	slog.Info("user logged in", slog.String("user_id", user.ID))

	return token, nil
}

// AuthenticateRequest はAuthorizationヘッダーの値（"Bearer <token>"）を検証し、
// 認証済みのIdentityを返す。外部I/Oは行わない。
func (s *Service) AuthenticateRequest(ctx context.Context, authorizationHeader string) (Identity, error) {
	_, span := s.tracer.Start(ctx, "auth.AuthenticateRequest")
	defer span.End()

	token, ok := ParseBearer(authorizationHeader)
	if !ok {
		s.recorder.RecordTokenVerification(ResultInvalid)
		return Identity{}, s.fail(span, ErrInvalidToken)
	}

	identity, err := s.tokens.Verify(token)
	if err != nil {
		if errors.Is(err, ErrExpiredToken) {
			s.recorder.RecordTokenVerification(ResultExpired)
		} else {
			s.recorder.RecordTokenVerification(ResultInvalid)
		}
		return Identity{}, s.fail(span, err)
	}

	s.recorder.RecordTokenVerification(ResultSuccess)
	span.SetAttributes(attribute.String("user_id", identity.UserID))
	return identity, nil
}

// RequireAdmin はidentityが現在も管理者であることを確認する。
// 認証（AuthenticateRequest）の後に、管理者限定の操作でのみ呼び出す。
func (s *Service) RequireAdmin(ctx context.Context, identity Identity) error {
	ctx, span := s.tracer.Start(ctx, "auth.RequireAdmin",
		trace.WithAttributes(attribute.String("user_id", identity.UserID)),
	)
	defer span.End()

	err := s.guard.Authorize(ctx, identity, CapabilityAdmin)
	switch {
	case err == nil:
		s.recorder.RecordAuthorization(ResultSuccess)
		return nil
	case errors.Is(err, ErrForbidden):
		s.recorder.RecordAuthorization(ResultDenied)
		slog.Warn("admin access denied", slog.String("user_id", identity.UserID))
	case errors.Is(err, ErrUserNotFound):
		s.recorder.RecordAuthorization(ResultMissing)
	default:
		s.recorder.RecordAuthorization(ResultError)
	}
	return s.fail(span, err)
}

// fail はスパンにエラーを記録してそのまま返す。
func (s *Service) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// ParseBearer はAuthorizationヘッダーからベアラートークンを取り出す。
// スキーム名は大文字小文字を区別しない。
func ParseBearer(header string) (string, bool) {
	const scheme = "bearer "
	if len(header) <= len(scheme) || !strings.EqualFold(header[:len(scheme)], scheme) {
		return "", false
	}
	token := strings.TrimSpace(header[len(scheme):])
	if token == "" {
		return "", false
	}
	return token, true
}

// NormalizeEmail はログインキーとして比較するためにメールアドレスを正規化する。
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
