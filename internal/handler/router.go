package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/coachly/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	SessionFinder     middleware.LoginSessionFinder
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	CSRFConfig        middleware.CSRFConfig
	Logger            *slog.Logger

	// 認証
	AuthService AuthServiceInterface
	AuthConfig  AuthHandlerConfig

	// コーチングセッション
	CoachService CoachServiceInterface

	// チェックイン
	CheckInService CheckInServiceInterface

	// コミットメント
	CommitmentService CommitmentServiceInterface

	// ヘルスチェック（nil可）
	HealthChecker HealthChecker

	// Prometheusスクレイプ用ハンドラー（nil可）
	MetricsHandler http.Handler

	// レスポンスステータスのメトリクス記録（nil可）
	StatusMetrics middleware.StatusRecorder
}

// HealthChecker はヘルスチェックで依存先の疎通を確認するインターフェース。
type HealthChecker interface {
	Ping() error
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	CORS → SecurityHeaders → Logging → Recovery → Session → CSRF → RateLimit(General)
//
// 認証ルート（/auth/*）とヘルスチェックはセッションミドルウェアの外に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	// 全ルートに効くミドルウェア
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	if deps.Logger != nil {
		r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	}
	r.Use(middleware.NewRecoveryMiddleware())
	if deps.StatusMetrics != nil {
		r.Use(middleware.NewStatusMetricsMiddleware(deps.StatusMetrics))
	}

	authHandler := NewAuthHandler(deps.AuthService, deps.AuthConfig)
	coachHandler := NewCoachHandler(deps.CoachService)
	checkInHandler := NewCheckInHandler(deps.CheckInService)
	commitmentHandler := NewCommitmentHandler(deps.CommitmentService)

	// --- 認証不要のルート ---

	// ヘルスチェック
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if deps.HealthChecker != nil {
			if err := deps.HealthChecker.Ping(); err != nil {
				writeJSONResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
				return
			}
		}
		writeJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Prometheusメトリクス
	if deps.MetricsHandler != nil {
		r.Handle("/metrics", deps.MetricsHandler)
	}

	// CSRFトークン取得
	r.Get("/api/csrf-token", middleware.NewCSRFTokenHandler(deps.CSRFConfig).ServeHTTP)

	// 認証ルート（OAuthフロー）
	r.Route("/auth", func(r chi.Router) {
		r.Get("/google/login", authHandler.Login)
		r.Get("/google/callback", authHandler.Callback)
		r.Post("/logout", authHandler.Logout)
		r.Get("/me", authHandler.Me)
	})

	// --- 認証が必要なルート ---
	// ミドルウェアスタック: Session → CSRF → RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewSessionMiddleware(deps.SessionFinder))
		r.Use(middleware.NewCSRFMiddleware(deps.CSRFConfig))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		// コーチングセッション
		r.Route("/api/coach", func(r chi.Router) {
			// POST /api/coach/start-session - セッション開始（開始専用レート制限を追加）
			r.With(deps.RateLimiter.SessionStartMiddleware()).Post("/start-session", coachHandler.StartSession)

			r.Post("/end-session", coachHandler.EndSession)
			r.Post("/check-in", checkInHandler.Create)
		})

		// コミットメント管理
		r.Route("/api/commitments", func(r chi.Router) {
			r.Get("/", commitmentHandler.List)
			r.Patch("/{id}", commitmentHandler.UpdateStatus)
		})
	})

	return r
}
