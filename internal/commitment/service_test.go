package commitment

import (
	"context"
	"errors"
	"testing"

	"github.com/hitoshi/coachly/internal/model"
)

type mockCommitmentRepo struct {
	listFn   func(ctx context.Context, userID string, status model.CommitmentStatus) ([]*model.Commitment, error)
	updateFn func(ctx context.Context, id, userID string, status model.CommitmentStatus) (*model.Commitment, error)
}

func (m *mockCommitmentRepo) Create(ctx context.Context, commitment *model.Commitment) error {
	return nil
}
func (m *mockCommitmentRepo) ListByUserID(ctx context.Context, userID string, status model.CommitmentStatus) ([]*model.Commitment, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID, status)
	}
	return nil, nil
}
func (m *mockCommitmentRepo) CountActiveByUserID(ctx context.Context, userID string) (int, error) {
	return 0, nil
}
func (m *mockCommitmentRepo) UpdateStatus(ctx context.Context, id, userID string, status model.CommitmentStatus) (*model.Commitment, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, userID, status)
	}
	return nil, nil
}

func TestService_List_PassesStatusFilter(t *testing.T) {
	var gotStatus model.CommitmentStatus
	repo := &mockCommitmentRepo{
		listFn: func(ctx context.Context, userID string, status model.CommitmentStatus) ([]*model.Commitment, error) {
			gotStatus = status
			return []*model.Commitment{{ID: "c-1", Status: status}}, nil
		},
	}

	svc := NewService(repo)

	commitments, err := svc.List(context.Background(), "user-1", model.CommitmentStatusActive)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if gotStatus != model.CommitmentStatusActive {
		t.Errorf("status = %q, want active", gotStatus)
	}
	if len(commitments) != 1 {
		t.Errorf("commitments = %d, want 1", len(commitments))
	}
}

func TestService_List_InvalidStatus(t *testing.T) {
	svc := NewService(&mockCommitmentRepo{})

	_, err := svc.List(context.Background(), "user-1", "archived")
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != model.ErrCodeInvalidStatus {
		t.Errorf("Code = %q, want %q", apiErr.Code, model.ErrCodeInvalidStatus)
	}
}

func TestService_List_NilBecomesEmpty(t *testing.T) {
	svc := NewService(&mockCommitmentRepo{})

	commitments, err := svc.List(context.Background(), "user-1", "")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if commitments == nil {
		t.Error("List should return empty slice, not nil")
	}
}

func TestService_UpdateStatus_TerminalTransition(t *testing.T) {
	repo := &mockCommitmentRepo{
		updateFn: func(ctx context.Context, id, userID string, status model.CommitmentStatus) (*model.Commitment, error) {
			return &model.Commitment{ID: id, UserID: userID, Status: status}, nil
		},
	}

	svc := NewService(repo)

	commitment, err := svc.UpdateStatus(context.Background(), "user-1", "c-1", model.CommitmentStatusCompleted)
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if commitment.Status != model.CommitmentStatusCompleted {
		t.Errorf("Status = %q, want completed", commitment.Status)
	}
}

// activeへの巻き戻しが拒否されることを検証
func TestService_UpdateStatus_RejectsActive(t *testing.T) {
	updateCalled := false
	repo := &mockCommitmentRepo{
		updateFn: func(ctx context.Context, id, userID string, status model.CommitmentStatus) (*model.Commitment, error) {
			updateCalled = true
			return nil, nil
		},
	}

	svc := NewService(repo)

	_, err := svc.UpdateStatus(context.Background(), "user-1", "c-1", model.CommitmentStatusActive)
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != model.ErrCodeInvalidStatus {
		t.Errorf("Code = %q, want %q", apiErr.Code, model.ErrCodeInvalidStatus)
	}
	if updateCalled {
		t.Error("repo should not be called for invalid transition")
	}
}

// 所有者不一致（0行更新）が未検出エラーになることを検証
func TestService_UpdateStatus_OtherUsersCommitment(t *testing.T) {
	svc := NewService(&mockCommitmentRepo{
		updateFn: func(ctx context.Context, id, userID string, status model.CommitmentStatus) (*model.Commitment, error) {
			return nil, nil
		},
	})

	_, err := svc.UpdateStatus(context.Background(), "attacker", "victim-commitment", model.CommitmentStatusAbandoned)
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != model.ErrCodeCommitmentNotFound {
		t.Errorf("Code = %q, want %q", apiErr.Code, model.ErrCodeCommitmentNotFound)
	}
}

// 終端状態のコミットメントへの再遷移（0行更新）が未検出エラーになることを検証
func TestService_UpdateStatus_AlreadyTerminal(t *testing.T) {
	// 遷移元をactiveに限定しているため、completed済みの行に対する
	// abandonedへの上書きはリポジトリがnilを返す
	svc := NewService(&mockCommitmentRepo{
		updateFn: func(ctx context.Context, id, userID string, status model.CommitmentStatus) (*model.Commitment, error) {
			return nil, nil
		},
	})

	_, err := svc.UpdateStatus(context.Background(), "user-1", "completed-commitment", model.CommitmentStatusAbandoned)
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != model.ErrCodeCommitmentNotFound {
		t.Errorf("Code = %q, want %q", apiErr.Code, model.ErrCodeCommitmentNotFound)
	}
}
