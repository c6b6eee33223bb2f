package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/valoriza/internal/metrics"
	"github.com/hitoshi/valoriza/internal/middleware"
)

// AuthCore は認証・認可のコアに必要なインターフェース。
// auth.Serviceが実装する。
type AuthCore interface {
	AuthServiceInterface
	middleware.Authenticator
	middleware.AdminAuthorizer
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	CORSAllowedOrigin string
	Logger            *slog.Logger

	// 監視
	HealthChecker   HealthChecker
	Metrics         metrics.MetricsCollector
	MetricsGatherer prometheus.Gatherer

	// 認証
	Auth AuthCore

	// ドメインサービス
	UserService       UserServiceInterface
	TagService        TagServiceInterface
	ComplimentService ComplimentServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → CORS → Logging → Metrics
//
// 認証はルートグループごとに適用する:
//
//	BearerAuth（認証必須）→ RequireAdmin（管理者限定）
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewLoggingMiddleware(logger))
	if deps.Metrics != nil {
		r.Use(metrics.Middleware(deps.Metrics))
	}

	authHandler := NewAuthHandler(deps.Auth)
	userHandler := NewUserHandler(deps.UserService, deps.Auth)
	tagHandler := NewTagHandler(deps.TagService)
	complimentHandler := NewComplimentHandler(deps.ComplimentService)

	bearerAuth := middleware.NewBearerAuthMiddleware(deps.Auth)
	optionalAuth := middleware.NewOptionalAuthMiddleware(deps.Auth)
	requireAdmin := middleware.NewRequireAdminMiddleware(deps.Auth)

	// --- 認証不要のルート ---
	r.Get("/health", NewHealthHandler(deps.HealthChecker))
	if deps.MetricsGatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.MetricsGatherer))
	}

	r.Post("/login", authHandler.Login)
	r.Get("/tags", tagHandler.List)

	// ユーザー登録は未認証でも可能。管理者作成時のみ認証情報を参照する
	r.With(optionalAuth).Post("/users", userHandler.Register)

	// --- 認証が必要なルート ---
	r.Group(func(r chi.Router) {
		r.Use(bearerAuth)

		// POST /usersと同じパスを共有するためRouteでマウントしない
		r.Get("/users", userHandler.List)
		r.Get("/users/me", userHandler.Me)
		r.Get("/users/compliments/send", complimentHandler.ListSent)
		r.Get("/users/compliments/receive", complimentHandler.ListReceived)

		r.Post("/compliments", complimentHandler.Create)

		// 管理者限定
		r.With(requireAdmin).Post("/tags", tagHandler.Create)
	})

	return r
}
