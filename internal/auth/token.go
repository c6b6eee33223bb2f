package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTokenTTL はトークンの既定有効期間（1日）。
const DefaultTokenTTL = 24 * time.Hour

// Identity はトークン検証によって確定した認証済みの主体を表す。
// 権限情報は含まない。権限は常にAccess Guardが最新のユーザー情報から判定する。
type Identity struct {
	UserID string
}

// TokenConfig はトークン発行・検証の設定。
// Secretはプロセス全体で不変として扱う。変更すると発行済みトークンはすべて無効になる。
type TokenConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// TokenOption はTokenServiceのオプション。
type TokenOption func(*TokenService)

// WithClock は現在時刻の取得関数を差し替える。主にテストで使用する。
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) {
		s.now = now
	}
}

// TokenService は署名付きベアラートークンの発行と検証を行う。
// HS256で署名したJWTを使用するが、呼び出し側はトークンを不透明な文字列として扱うこと。
type TokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// NewTokenService はTokenServiceを生成する。
// 署名シークレットが空の場合はErrMissingSecretを返す。起動時の致命的エラーとして扱うこと。
func NewTokenService(cfg TokenConfig, opts ...TokenOption) (*TokenService, error) {
	if cfg.Secret == "" {
		return nil, ErrMissingSecret
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	s := &TokenService{
		secret: []byte(cfg.Secret),
		ttl:    ttl,
		issuer: cfg.Issuer,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// TTL は既定の有効期間を返す。
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue は既定の有効期間でユーザーIDに対するトークンを発行する。
func (s *TokenService) Issue(userID string) (string, error) {
	return s.IssueWithTTL(userID, s.ttl)
}

// IssueWithTTL は指定した有効期間でトークンを発行する。
// ttlが0以下の場合はErrInvalidTTLを返す（無期限トークンは発行しない）。
func (s *TokenService) IssueWithTTL(userID string, ttl time.Duration) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("user ID is required")
	}
	if ttl <= 0 {
		return "", ErrInvalidTTL
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        uuid.NewString(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify はトークンの署名と有効期限を検証し、主体のIdentityを返す。
//
// 判定順序:
//  1. 形式不正 → ErrInvalidToken
//  2. 署名不一致（HMACの定数時間比較） → ErrInvalidToken
//  3. 有効期限切れ → ErrExpiredToken
//  4. 有効 → Identity
//
// I/Oは行わず、リトライもしない。
func (s *TokenService) Verify(tokenString string) (Identity, error) {
	if tokenString == "" {
		return Identity{}, ErrInvalidToken
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		// 署名検証はクレーム検証より先に行われるため、期限切れは署名が正しい場合のみ報告される
		if errors.Is(err, jwt.ErrTokenExpired) && !errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return Identity{}, ErrExpiredToken
		}
		return Identity{}, ErrInvalidToken
	}

	if !parsed.Valid || claims.Subject == "" {
		return Identity{}, ErrInvalidToken
	}

	return Identity{UserID: claims.Subject}, nil
}
