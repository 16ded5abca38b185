package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hitoshi/coachly/internal/model"
)

// mockCommitmentService はCommitmentServiceInterfaceのモック実装。
type mockCommitmentService struct {
	listFn         func(ctx context.Context, userID string, status model.CommitmentStatus) ([]*model.Commitment, error)
	updateStatusFn func(ctx context.Context, userID, commitmentID string, status model.CommitmentStatus) (*model.Commitment, error)
}

func (m *mockCommitmentService) List(ctx context.Context, userID string, status model.CommitmentStatus) ([]*model.Commitment, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID, status)
	}
	return nil, nil
}

func (m *mockCommitmentService) UpdateStatus(ctx context.Context, userID, commitmentID string, status model.CommitmentStatus) (*model.Commitment, error) {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, userID, commitmentID, status)
	}
	return nil, nil
}

// --- GET /api/commitments テスト ---

func TestCommitmentHandler_List_Success(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	svc := &mockCommitmentService{
		listFn: func(ctx context.Context, userID string, status model.CommitmentStatus) ([]*model.Commitment, error) {
			if status != model.CommitmentStatusActive {
				t.Errorf("status = %q, want active", status)
			}
			return []*model.Commitment{
				{ID: "c-2", SessionID: "s-2", Text: "日記を書く", Status: model.CommitmentStatusActive, CreatedAt: now},
				{ID: "c-1", SessionID: "s-1", Text: "毎朝走る", Status: model.CommitmentStatusActive, CreatedAt: now.Add(-time.Hour)},
			}, nil
		},
	}

	h := NewCommitmentHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/commitments?status=active", nil)
	req = withUserID(req, "user-123")
	w := httptest.NewRecorder()

	h.List(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var got commitmentListResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(got.Commitments) != 2 {
		t.Fatalf("commitments = %d, want 2", len(got.Commitments))
	}
	if got.Commitments[0].ID != "c-2" {
		t.Errorf("newest first: got %q", got.Commitments[0].ID)
	}
}

func TestCommitmentHandler_List_EmptyIsArray(t *testing.T) {
	svc := &mockCommitmentService{
		listFn: func(ctx context.Context, userID string, status model.CommitmentStatus) ([]*model.Commitment, error) {
			return []*model.Commitment{}, nil
		},
	}

	h := NewCommitmentHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/commitments", nil)
	req = withUserID(req, "user-123")
	w := httptest.NewRecorder()

	h.List(w, req)

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(w.Body).Decode(&raw); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if string(raw["commitments"]) != "[]" {
		t.Errorf("commitments = %s, want []", raw["commitments"])
	}
}

func TestCommitmentHandler_List_InvalidStatusFilter(t *testing.T) {
	listCalled := false
	svc := &mockCommitmentService{
		listFn: func(ctx context.Context, userID string, status model.CommitmentStatus) ([]*model.Commitment, error) {
			listCalled = true
			return nil, nil
		},
	}

	h := NewCommitmentHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/commitments?status=archived", nil)
	req = withUserID(req, "user-123")
	w := httptest.NewRecorder()

	h.List(w, req)

	if w.Result().StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusBadRequest)
	}
	if listCalled {
		t.Error("service should not be called with invalid status filter")
	}
}

// --- PATCH /api/commitments/{id} テスト ---

func TestCommitmentHandler_UpdateStatus_Success(t *testing.T) {
	svc := &mockCommitmentService{
		updateStatusFn: func(ctx context.Context, userID, commitmentID string, status model.CommitmentStatus) (*model.Commitment, error) {
			if commitmentID != "c-1" {
				t.Errorf("commitmentID = %q, want c-1", commitmentID)
			}
			if status != model.CommitmentStatusCompleted {
				t.Errorf("status = %q, want completed", status)
			}
			return &model.Commitment{ID: commitmentID, UserID: userID, Status: status}, nil
		},
	}

	h := NewCommitmentHandler(svc)

	req := httptest.NewRequest(http.MethodPatch, "/api/commitments/c-1", bytes.NewBufferString(`{"status":"completed"}`))
	req = withUserID(req, "user-123")
	req = withChiURLParam(req, "id", "c-1")
	w := httptest.NewRecorder()

	h.UpdateStatus(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var got commitmentResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.Status != "completed" {
		t.Errorf("status = %q, want completed", got.Status)
	}
}

func TestCommitmentHandler_UpdateStatus_NotFound(t *testing.T) {
	svc := &mockCommitmentService{
		updateStatusFn: func(ctx context.Context, userID, commitmentID string, status model.CommitmentStatus) (*model.Commitment, error) {
			return nil, model.NewCommitmentNotFoundError(commitmentID)
		},
	}

	h := NewCommitmentHandler(svc)

	req := httptest.NewRequest(http.MethodPatch, "/api/commitments/nonexistent", bytes.NewBufferString(`{"status":"completed"}`))
	req = withUserID(req, "user-123")
	req = withChiURLParam(req, "id", "nonexistent")
	w := httptest.NewRecorder()

	h.UpdateStatus(w, req)

	if w.Result().StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusNotFound)
	}
}

func TestCommitmentHandler_UpdateStatus_InvalidStatus(t *testing.T) {
	svc := &mockCommitmentService{
		updateStatusFn: func(ctx context.Context, userID, commitmentID string, status model.CommitmentStatus) (*model.Commitment, error) {
			return nil, model.NewInvalidStatusError(string(status))
		},
	}

	h := NewCommitmentHandler(svc)

	req := httptest.NewRequest(http.MethodPatch, "/api/commitments/c-1", bytes.NewBufferString(`{"status":"active"}`))
	req = withUserID(req, "user-123")
	req = withChiURLParam(req, "id", "c-1")
	w := httptest.NewRecorder()

	h.UpdateStatus(w, req)

	if w.Result().StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusBadRequest)
	}
}
