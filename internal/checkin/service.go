// Package checkin はセッション終了後の振り返り（チェックイン）を提供する。
package checkin

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/coachly/internal/model"
	"github.com/hitoshi/coachly/internal/repository"
)

// TextSanitizer は自由記述フィールドのサニタイズインターフェース。
type TextSanitizer interface {
	Sanitize(raw string) string
}

// Service はチェックインのサービス層。
type Service struct {
	checkInRepo repository.CheckInRepository
	sessionRepo repository.CoachingSessionRepository
	sanitizer   TextSanitizer
}

// NewService はServiceを生成する。
func NewService(
	checkInRepo repository.CheckInRepository,
	sessionRepo repository.CoachingSessionRepository,
	sanitizer TextSanitizer,
) *Service {
	return &Service{
		checkInRepo: checkInRepo,
		sessionRepo: sessionRepo,
		sanitizer:   sanitizer,
	}
}

// Create はセッションに対するチェックインを作成する。
// 評価は1〜5の範囲に限定され、セッションは呼び出しユーザーの所有で
// なければならない（他ユーザーのセッションは存在しないのと同じ扱い）。
func (s *Service) Create(ctx context.Context, userID, sessionID string, rating int, insight string) (*model.CheckIn, error) {
	if sessionID == "" {
		return nil, model.NewSessionIDRequiredError()
	}
	if rating < 1 || rating > 5 {
		return nil, model.NewInvalidRatingError(rating)
	}

	session, err := s.sessionRepo.FindByIDAndUserID(ctx, sessionID, userID)
	if err != nil {
		return nil, fmt.Errorf("セッションの取得に失敗しました: %w", err)
	}
	if session == nil {
		return nil, model.NewSessionNotFoundError(sessionID)
	}

	checkIn := &model.CheckIn{
		ID:        uuid.New().String(),
		UserID:    userID,
		SessionID: sessionID,
		Rating:    rating,
		Insight:   s.sanitizer.Sanitize(insight),
		CreatedAt: time.Now(),
	}
	if err := s.checkInRepo.Create(ctx, checkIn); err != nil {
		return nil, fmt.Errorf("チェックインの作成に失敗しました: %w", err)
	}

	slog.Info("check-in created",
		slog.String("user_id", userID),
		slog.String("session_id", sessionID),
		slog.Int("rating", rating),
	)

	return checkIn, nil
}

// List はユーザーのチェックインを作成日時降順で返す。
func (s *Service) List(ctx context.Context, userID string, limit int) ([]*model.CheckIn, error) {
	checkIns, err := s.checkInRepo.ListByUserID(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("チェックインの取得に失敗しました: %w", err)
	}
	if checkIns == nil {
		checkIns = []*model.CheckIn{}
	}
	return checkIns, nil
}
