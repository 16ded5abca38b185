package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/hitoshi/coachly/internal/admin"
	"github.com/hitoshi/coachly/internal/auth"
	"github.com/hitoshi/coachly/internal/checkin"
	"github.com/hitoshi/coachly/internal/coach"
	"github.com/hitoshi/coachly/internal/commitment"
	"github.com/hitoshi/coachly/internal/config"
	"github.com/hitoshi/coachly/internal/database"
	"github.com/hitoshi/coachly/internal/handler"
	"github.com/hitoshi/coachly/internal/logger"
	"github.com/hitoshi/coachly/internal/metrics"
	"github.com/hitoshi/coachly/internal/middleware"
	"github.com/hitoshi/coachly/internal/repository"
	"github.com/hitoshi/coachly/internal/security"
	"github.com/hitoshi/coachly/internal/worker/cleanup"
)

// Init はアプリケーションの初期化を行う。
// 環境変数からConfigを読み込み、JSON構造化ログをセットアップする。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) (*config.Config, error) {
	// 1. ログの初期化（設定読み込み前にログを使えるようにする）
	logger.SetupDefault(w)

	// 2. 環境変数から設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで起動する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
		slog.String("base_url", cfg.BaseURL),
	)

	switch cmd {
	case CommandServe:
		return runServe(cfg)
	case CommandWorker:
		return runWorker(cfg)
	case CommandMigrate:
		return runMigrate(cfg)
	case CommandAdminGrant, CommandAdminDeleteUser, CommandAdminVerifyTables:
		return runAdmin(cfg, cmd, args)
	default:
		return runServe(cfg)
	}
}

// runServe はAPIサーバーモードで起動する。
// DB接続を開き、全依存関係をワイヤリングし、HTTPサーバーを起動する。
// SIGINTまたはSIGTERMシグナルを受信するとグレースフルシャットダウンを行う。
func runServe(cfg *config.Config) error {
	// 1. DB接続
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("database connection established")

	// 2. リポジトリの初期化
	profileRepo := repository.NewPostgresProfileRepo(db)
	identRepo := repository.NewPostgresIdentityRepo(db)
	loginSessionRepo := repository.NewPostgresLoginSessionRepo(db)
	coachingSessionRepo := repository.NewPostgresCoachingSessionRepo(db)
	commitmentRepo := repository.NewPostgresCommitmentRepo(db)
	checkInRepo := repository.NewPostgresCheckInRepo(db)

	// 3. サニタイザとメトリクスの初期化
	sanitizer := security.NewTextSanitizer()
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// 4. ドメインサービスの初期化
	oauthProvider := auth.NewGoogleOAuthProvider(auth.GoogleOAuthConfig{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
	})
	authService := auth.NewService(
		oauthProvider, profileRepo, identRepo, loginSessionRepo,
		auth.ServiceConfig{SessionMaxAge: cfg.SessionMaxAge},
	)

	coachService := coach.NewService(coachingSessionRepo, commitmentRepo, sanitizer, collector)
	checkInService := checkin.NewService(checkInRepo, coachingSessionRepo, sanitizer)
	commitmentService := commitment.NewService(commitmentRepo)

	// 5. レート制限の設定（configはreq/min単位、rate.Limitはreq/sec単位）
	rateLimiterCfg := middleware.DefaultRateLimiterConfig()
	rateLimiterCfg.GeneralRate = rate.Limit(float64(cfg.RateLimitGeneral) / 60.0)
	rateLimiterCfg.GeneralBurst = cfg.RateLimitGeneral
	rateLimiterCfg.SessionStartRate = rate.Limit(float64(cfg.RateLimitSessionStart) / 60.0)
	rateLimiterCfg.SessionStartBurst = cfg.RateLimitSessionStart

	// 6. ルーターの構築
	deps := &handler.RouterDeps{
		HealthChecker:     db,
		SessionFinder:     loginSessionRepo,
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		RateLimiter:       middleware.NewRateLimiter(rateLimiterCfg),
		CSRFConfig: middleware.CSRFConfig{
			CookieSecure: cfg.CookieSecure,
			CookieDomain: cfg.CookieDomain,
		},
		Logger: slog.Default(),

		AuthService: authService,
		AuthConfig: handler.AuthHandlerConfig{
			BaseURL:       cfg.BaseURL,
			CookieDomain:  cfg.CookieDomain,
			CookieSecure:  cfg.CookieSecure,
			SessionMaxAge: cfg.SessionMaxAge,
		},

		CoachService:      coachService,
		CheckInService:    checkInService,
		CommitmentService: commitmentService,

		MetricsHandler: metrics.Handler(registry),
		StatusMetrics:  collector,
	}

	router := handler.NewRouter(deps)

	// 7. HTTPサーバーの起動
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// グレースフルシャットダウンのためのシグナルハンドリング
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("API server starting",
			slog.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", slog.String("error", err.Error()))
		}
	}()

	<-stop
	slog.Info("shutting down API server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// runWorker はワーカーモードで起動する。
// 期限切れログインセッションのクリーンアップジョブを定期実行する。
// SIGINTまたはSIGTERMシグナルを受信するとシャットダウンする。
func runWorker(cfg *config.Config) error {
	// 1. DB接続
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("database connection established (worker)")

	// 2. クリーンアップジョブの初期化
	loginSessionRepo := repository.NewPostgresLoginSessionRepo(db)
	cleanupJob := cleanup.NewCleanupJob(loginSessionRepo, slog.Default())

	// グレースフルシャットダウンのためのシグナルハンドリング
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-stop
		slog.Info("shutting down worker...")
		cancel()
	}()

	slog.Info("worker starting",
		slog.Duration("cleanup_interval", cfg.CleanupInterval),
	)

	// 起動直後に1回実行
	if err := cleanupJob.Run(ctx); err != nil {
		slog.Error("cleanup job failed", slog.String("error", err.Error()))
	}

	ticker := time.NewTicker(cfg.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			slog.Info("worker stopped gracefully")
			return nil
		case <-ticker.C:
			if err := cleanupJob.Run(ctx); err != nil {
				slog.Error("cleanup job failed", slog.String("error", err.Error()))
			}
		}
	}
}

// runMigrate はデータベースマイグレーションを実行する。
// すべての未適用マイグレーションを順番に適用する。
func runMigrate(cfg *config.Config) error {
	slog.Info("running database migrations",
		slog.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
	)

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("database migrations completed successfully")
	return nil
}

// runAdmin は管理サブコマンドを実行する。
// grant/delete-user はメールアドレスを第3引数に取る。
func runAdmin(cfg *config.Config, cmd Command, args []string) error {
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	profileRepo := repository.NewPostgresProfileRepo(db)
	loginSessionRepo := repository.NewPostgresLoginSessionRepo(db)
	adminService := admin.NewService(profileRepo, loginSessionRepo)

	switch cmd {
	case CommandAdminGrant:
		if len(args) < 3 {
			return fmt.Errorf("usage: admin grant <email>")
		}
		profile, err := adminService.Grant(ctx, args[2])
		if err != nil {
			return fmt.Errorf("admin grant failed: %w", err)
		}
		slog.Info("admin role granted",
			slog.String("email", profile.Email),
			slog.String("user_id", profile.ID),
		)
		return nil

	case CommandAdminDeleteUser:
		if len(args) < 3 {
			return fmt.Errorf("usage: admin delete-user <email>")
		}
		if err := adminService.DeleteUser(ctx, args[2]); err != nil {
			return fmt.Errorf("admin delete-user failed: %w", err)
		}
		slog.Info("user deleted", slog.String("email", args[2]))
		return nil

	case CommandAdminVerifyTables:
		missing, err := admin.VerifyTables(ctx, db)
		if err != nil {
			return fmt.Errorf("table verification failed: %w", err)
		}
		if len(missing) > 0 {
			return fmt.Errorf("missing tables: %v", missing)
		}
		slog.Info("all required tables exist")
		return nil

	default:
		return fmt.Errorf("unknown admin command: %s", cmd)
	}
}

// runHealthcheck はヘルスチェックを実行する。
// distroless環境でのDockerヘルスチェック用サブコマンド。
// /health エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

// maskDatabaseURL はデータベースURLの認証情報をマスクする。
func maskDatabaseURL(url string) string {
	if len(url) > 20 {
		return url[:12] + "***@..."
	}
	return "***"
}
