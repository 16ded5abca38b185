// Package coach はコーチングセッションのライフサイクルを提供する。
//
// StartSessionはセッション行の作成と対話エージェント向けコンテキストの組み立て、
// EndSessionはセッションの終了・コミットメントの記録・統計の再集計を行う。
// セッション更新・コミットメント作成・統計読み取りはトランザクションで
// 束ねない（単一行書き込みの原子性はストアに委譲する）。
package coach

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/coachly/internal/model"
	"github.com/hitoshi/coachly/internal/repository"
)

// recentSessionLimit はコンテキストに含める直近セッションの件数。
const recentSessionLimit = 3

// TextSanitizer は自由記述テキストのサニタイズインターフェース。
// security.TextSanitizerServiceの部分集合として定義する。
type TextSanitizer interface {
	Sanitize(raw string) string
}

// MetricsCollector はコーチングセッションのメトリクス収集インターフェース。
type MetricsCollector interface {
	RecordSessionStarted(mode string)
	RecordSessionEnded()
	RecordCommitmentCreated()
	RecordDegradedOp(operation string)
	RecordEndSessionLatency(duration time.Duration)
}

// CountOutcome は集計クエリの結果を表す。
// 失敗時はゼロ値に縮退し、Degradedフラグと理由で
// 「空だからゼロ」と「失敗したからゼロ」を区別できるようにする。
type CountOutcome struct {
	Value    int
	Degraded bool
	Reason   string
}

// SessionStats はEndSessionが返す集計値のペア。
// キャッシュや増分カウンタは持たず、呼び出しごとに全件再集計する。
type SessionStats struct {
	TotalSessions     CountOutcome // ended_atが設定済みのセッション数
	ActiveCommitments CountOutcome // status = active のコミットメント数
}

// EndSessionInput はEndSessionへの入力。
type EndSessionInput struct {
	SessionID            string
	FocusArea            string
	Summary              string
	CommitmentText       string
	CommitmentConfidence *float64
	CommitmentDueDate    *time.Time
}

// EndSessionResult はEndSessionの結果。
// Commitmentはコミットメントが作成されなかった場合nil。
type EndSessionResult struct {
	Session    *model.CoachingSession
	Commitment *model.Commitment
	Stats      SessionStats
}

// Service はコーチングセッションのライフサイクルを提供するサービス層。
type Service struct {
	sessionRepo    repository.CoachingSessionRepository
	commitmentRepo repository.CommitmentRepository
	sanitizer      TextSanitizer
	metrics        MetricsCollector
}

// NewService はServiceを生成する。metricsはnilでもよい（収集なし）。
func NewService(
	sessionRepo repository.CoachingSessionRepository,
	commitmentRepo repository.CommitmentRepository,
	sanitizer TextSanitizer,
	metrics MetricsCollector,
) *Service {
	return &Service{
		sessionRepo:    sessionRepo,
		commitmentRepo: commitmentRepo,
		sanitizer:      sanitizer,
		metrics:        metrics,
	}
}

// StartSession は新規コーチングセッションを開始する。
// 進行中のコミットメント一覧の取得に失敗した場合はセッションを作成せずエラーを返す。
// 直近セッションの取得失敗はベストエフォート: 空リストに縮退してフローを継続する。
func (s *Service) StartSession(ctx context.Context, userID string, mode model.SessionMode) (*model.CoachingSession, *SessionContext, error) {
	if mode == "" {
		mode = model.SessionModeAI
	}
	if mode != model.SessionModeAI && mode != model.SessionModeHuman {
		return nil, nil, model.NewInvalidModeError(string(mode))
	}

	// 1. 進行中のコミットメント（作成日時降順）— クリティカルパス
	commitments, err := s.commitmentRepo.ListByUserID(ctx, userID, model.CommitmentStatusActive)
	if err != nil {
		return nil, nil, fmt.Errorf("進行中のコミットメントの取得に失敗しました: %w", err)
	}

	// 2. 直近のセッション — ベストエフォート
	recent, err := s.sessionRepo.ListRecentByUserID(ctx, userID, recentSessionLimit)
	if err != nil {
		slog.Warn("直近セッションの取得に失敗したため空リストで継続します",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		s.recordDegraded("recent_sessions")
		recent = nil
	}

	// 3. セッション行の作成（ended_at = NULL）
	session := &model.CoachingSession{
		ID:        uuid.New().String(),
		UserID:    userID,
		Mode:      mode,
		CreatedAt: time.Now(),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("セッションの作成に失敗しました: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordSessionStarted(string(mode))
	}

	slog.Info("coaching session started",
		slog.String("user_id", userID),
		slog.String("session_id", session.ID),
		slog.String("mode", string(mode)),
	)

	return session, newSessionContext(session.ID, mode, commitments, recent), nil
}

// EndSession はコーチングセッションを終了する。
// session_id未指定は検証エラー、所有者不一致は未検出エラーになる。
// コミットメント作成と統計集計はベストエフォートで、失敗しても
// セッション更新の結果は維持されリクエストは成功する。
func (s *Service) EndSession(ctx context.Context, userID string, in EndSessionInput) (*EndSessionResult, error) {
	start := time.Now()

	if in.SessionID == "" {
		return nil, model.NewSessionIDRequiredError()
	}

	focusArea := s.sanitize(in.FocusArea)
	summary := s.sanitize(in.Summary)
	commitmentText := strings.TrimSpace(s.sanitize(in.CommitmentText))

	// 1. セッション更新（所有権はid + user_idの複合一致で強制）
	session, err := s.sessionRepo.Complete(ctx, in.SessionID, userID, focusArea, summary, commitmentText)
	if err != nil {
		return nil, fmt.Errorf("セッションの更新に失敗しました: %w", err)
	}
	if session == nil {
		return nil, model.NewSessionNotFoundError(in.SessionID)
	}

	// 2. コミットメント作成 — ベストエフォート
	commitment := s.createCommitment(ctx, userID, in.SessionID, commitmentText, in.CommitmentConfidence, in.CommitmentDueDate)

	// 3. 統計の再集計 — ベストエフォート
	stats := s.collectStats(ctx, userID)

	if s.metrics != nil {
		s.metrics.RecordSessionEnded()
		s.metrics.RecordEndSessionLatency(time.Since(start))
	}

	slog.Info("coaching session ended",
		slog.String("user_id", userID),
		slog.String("session_id", in.SessionID),
		slog.Bool("commitment_created", commitment != nil),
	)

	return &EndSessionResult{
		Session:    session,
		Commitment: commitment,
		Stats:      stats,
	}, nil
}

// createCommitment はトリム後に空でないコミットメントテキストが与えられた場合に
// 1件のactiveなコミットメント行を作成する。
// 作成失敗はセッション更新をロールバックせず、nilを返してログに記録する。
func (s *Service) createCommitment(ctx context.Context, userID, sessionID, text string, confidence *float64, dueDate *time.Time) *model.Commitment {
	if text == "" {
		return nil
	}

	commitment := &model.Commitment{
		ID:         uuid.New().String(),
		UserID:     userID,
		SessionID:  sessionID,
		Text:       text,
		Confidence: confidence,
		DueDate:    dueDate,
		Status:     model.CommitmentStatusActive,
		CreatedAt:  time.Now(),
	}

	if err := s.commitmentRepo.Create(ctx, commitment); err != nil {
		slog.Error("コミットメントの作成に失敗しました（セッション更新は維持されます）",
			slog.String("user_id", userID),
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
		s.recordDegraded("commitment_insert")
		return nil
	}

	if s.metrics != nil {
		s.metrics.RecordCommitmentCreated()
	}

	return commitment
}

// collectStats はユーザーの統計を全件再集計する。
// 各カウントの失敗は縮退（ゼロ値 + Degradedフラグ）として扱い、エラーにしない。
func (s *Service) collectStats(ctx context.Context, userID string) SessionStats {
	stats := SessionStats{}

	total, err := s.sessionRepo.CountEndedByUserID(ctx, userID)
	if err != nil {
		slog.Warn("終了済みセッション数の集計に失敗したためゼロに縮退します",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		s.recordDegraded("total_sessions")
		stats.TotalSessions = CountOutcome{Degraded: true, Reason: err.Error()}
	} else {
		stats.TotalSessions = CountOutcome{Value: total}
	}

	active, err := s.commitmentRepo.CountActiveByUserID(ctx, userID)
	if err != nil {
		slog.Warn("進行中コミットメント数の集計に失敗したためゼロに縮退します",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		s.recordDegraded("active_commitments")
		stats.ActiveCommitments = CountOutcome{Degraded: true, Reason: err.Error()}
	} else {
		stats.ActiveCommitments = CountOutcome{Value: active}
	}

	return stats
}

// sanitize はサニタイザ未設定の場合に入力をそのまま返すヘルパー。
func (s *Service) sanitize(raw string) string {
	if s.sanitizer == nil {
		return raw
	}
	return s.sanitizer.Sanitize(raw)
}

// recordDegraded はメトリクス収集が有効な場合に縮退を記録する。
func (s *Service) recordDegraded(operation string) {
	if s.metrics != nil {
		s.metrics.RecordDegradedOp(operation)
	}
}
