package checkin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hitoshi/coachly/internal/model"
)

type mockCheckInRepo struct {
	createFn func(ctx context.Context, checkIn *model.CheckIn) error
	listFn   func(ctx context.Context, userID string, limit int) ([]*model.CheckIn, error)
}

func (m *mockCheckInRepo) Create(ctx context.Context, checkIn *model.CheckIn) error {
	if m.createFn != nil {
		return m.createFn(ctx, checkIn)
	}
	return nil
}
func (m *mockCheckInRepo) ListByUserID(ctx context.Context, userID string, limit int) ([]*model.CheckIn, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID, limit)
	}
	return nil, nil
}

type mockSessionRepo struct {
	findFn func(ctx context.Context, id, userID string) (*model.CoachingSession, error)
}

func (m *mockSessionRepo) Create(ctx context.Context, session *model.CoachingSession) error {
	return nil
}
func (m *mockSessionRepo) FindByIDAndUserID(ctx context.Context, id, userID string) (*model.CoachingSession, error) {
	if m.findFn != nil {
		return m.findFn(ctx, id, userID)
	}
	return nil, nil
}
func (m *mockSessionRepo) ListRecentByUserID(ctx context.Context, userID string, limit int) ([]*model.CoachingSession, error) {
	return nil, nil
}
func (m *mockSessionRepo) Complete(ctx context.Context, id, userID, focusArea, summary, commitment string) (*model.CoachingSession, error) {
	return nil, nil
}
func (m *mockSessionRepo) CountEndedByUserID(ctx context.Context, userID string) (int, error) {
	return 0, nil
}

type passthroughSanitizer struct{}

func (passthroughSanitizer) Sanitize(raw string) string { return raw }

func ownedSession(id, userID string) *model.CoachingSession {
	now := time.Now()
	return &model.CoachingSession{ID: id, UserID: userID, Mode: model.SessionModeAI, EndedAt: &now}
}

func TestService_Create(t *testing.T) {
	var created *model.CheckIn
	checkInRepo := &mockCheckInRepo{
		createFn: func(ctx context.Context, checkIn *model.CheckIn) error {
			created = checkIn
			return nil
		},
	}
	sessionRepo := &mockSessionRepo{
		findFn: func(ctx context.Context, id, userID string) (*model.CoachingSession, error) {
			return ownedSession(id, userID), nil
		},
	}

	svc := NewService(checkInRepo, sessionRepo, passthroughSanitizer{})

	checkIn, err := svc.Create(context.Background(), "user-1", "session-1", 4, "小さな約束の方が続く")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created == nil {
		t.Fatal("expected check-in to be created")
	}
	if checkIn.Rating != 4 {
		t.Errorf("Rating = %d, want 4", checkIn.Rating)
	}
	if checkIn.Insight != "小さな約束の方が続く" {
		t.Errorf("Insight = %q", checkIn.Insight)
	}
	if checkIn.SessionID != "session-1" {
		t.Errorf("SessionID = %q, want session-1", checkIn.SessionID)
	}
}

// 評価が範囲外の場合に検証エラーとなりストアに触れないことを検証
func TestService_Create_InvalidRating(t *testing.T) {
	for _, rating := range []int{0, 6, -1} {
		findCalled := false
		sessionRepo := &mockSessionRepo{
			findFn: func(ctx context.Context, id, userID string) (*model.CoachingSession, error) {
				findCalled = true
				return ownedSession(id, userID), nil
			},
		}
		svc := NewService(&mockCheckInRepo{}, sessionRepo, passthroughSanitizer{})

		_, err := svc.Create(context.Background(), "user-1", "session-1", rating, "")
		var apiErr *model.APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("rating %d: expected APIError, got %v", rating, err)
		}
		if apiErr.Code != model.ErrCodeInvalidRating {
			t.Errorf("rating %d: Code = %q, want %q", rating, apiErr.Code, model.ErrCodeInvalidRating)
		}
		if findCalled {
			t.Errorf("rating %d: session lookup should not happen", rating)
		}
	}
}

// 他ユーザーのセッションへのチェックインが未検出エラーになることを検証
func TestService_Create_OtherUsersSession(t *testing.T) {
	sessionRepo := &mockSessionRepo{
		findFn: func(ctx context.Context, id, userID string) (*model.CoachingSession, error) {
			return nil, nil
		},
	}
	svc := NewService(&mockCheckInRepo{}, sessionRepo, passthroughSanitizer{})

	_, err := svc.Create(context.Background(), "attacker", "victim-session", 3, "")
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != model.ErrCodeSessionNotFound {
		t.Errorf("Code = %q, want %q", apiErr.Code, model.ErrCodeSessionNotFound)
	}
}

func TestService_Create_MissingSessionID(t *testing.T) {
	svc := NewService(&mockCheckInRepo{}, &mockSessionRepo{}, passthroughSanitizer{})

	_, err := svc.Create(context.Background(), "user-1", "", 3, "")
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != model.ErrCodeSessionIDRequired {
		t.Errorf("Code = %q, want %q", apiErr.Code, model.ErrCodeSessionIDRequired)
	}
}

func TestService_List_NilBecomesEmpty(t *testing.T) {
	svc := NewService(&mockCheckInRepo{}, &mockSessionRepo{}, passthroughSanitizer{})

	checkIns, err := svc.List(context.Background(), "user-1", 10)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if checkIns == nil {
		t.Error("List should return empty slice, not nil")
	}
}
