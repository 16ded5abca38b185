// Package commitment はコミットメントの一覧と状態遷移を提供する。
package commitment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/coachly/internal/model"
	"github.com/hitoshi/coachly/internal/repository"
)

// Service はコミットメント管理のサービス層。
type Service struct {
	commitmentRepo repository.CommitmentRepository
}

// NewService はServiceを生成する。
func NewService(commitmentRepo repository.CommitmentRepository) *Service {
	return &Service{commitmentRepo: commitmentRepo}
}

// List はユーザーのコミットメントを作成日時降順で返す。
// statusが空でない場合はその状態のみに絞り込む。
func (s *Service) List(ctx context.Context, userID string, status model.CommitmentStatus) ([]*model.Commitment, error) {
	if status != "" && !model.ValidCommitmentStatus(status) {
		return nil, model.NewInvalidStatusError(string(status))
	}

	commitments, err := s.commitmentRepo.ListByUserID(ctx, userID, status)
	if err != nil {
		return nil, fmt.Errorf("コミットメントの取得に失敗しました: %w", err)
	}
	if commitments == nil {
		commitments = []*model.Commitment{}
	}
	return commitments, nil
}

// UpdateStatus はコミットメントを終端状態に遷移させる。
// 遷移はactiveからcompletedまたはabandonedへの一方向のみで、
// 終端状態のコミットメントは存在しないのと同じ扱いになる。
// 所有者が一致しない場合も同様に未検出エラーを返す。
func (s *Service) UpdateStatus(ctx context.Context, userID, commitmentID string, status model.CommitmentStatus) (*model.Commitment, error) {
	if status != model.CommitmentStatusCompleted && status != model.CommitmentStatusAbandoned {
		return nil, model.NewInvalidStatusError(string(status))
	}

	commitment, err := s.commitmentRepo.UpdateStatus(ctx, commitmentID, userID, status)
	if err != nil {
		return nil, fmt.Errorf("コミットメントの更新に失敗しました: %w", err)
	}
	if commitment == nil {
		return nil, model.NewCommitmentNotFoundError(commitmentID)
	}

	slog.Info("commitment status updated",
		slog.String("user_id", userID),
		slog.String("commitment_id", commitmentID),
		slog.String("status", string(status)),
	)

	return commitment, nil
}
