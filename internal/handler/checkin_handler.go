package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/hitoshi/coachly/internal/middleware"
	"github.com/hitoshi/coachly/internal/model"
)

// CheckInServiceInterface はチェックインハンドラーが必要とするサービスインターフェース。
type CheckInServiceInterface interface {
	Create(ctx context.Context, userID, sessionID string, rating int, insight string) (*model.CheckIn, error)
}

// CheckInHandler はチェックインのHTTPハンドラー。
type CheckInHandler struct {
	service CheckInServiceInterface
}

// NewCheckInHandler はCheckInHandlerを生成する。
func NewCheckInHandler(service CheckInServiceInterface) *CheckInHandler {
	return &CheckInHandler{service: service}
}

// checkInRequest はチェックイン作成リクエストのボディ。
type checkInRequest struct {
	SessionID string `json:"session_id"`
	Rating    int    `json:"rating"`
	Insight   string `json:"insight"`
}

// checkInResponse はチェックインのAPIレスポンス。
type checkInResponse struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Rating    int       `json:"rating"`
	Insight   string    `json:"insight"`
	CreatedAt time.Time `json:"created_at"`
}

// Create はチェックイン作成を処理する。
// POST /api/coach/check-in
func (h *CheckInHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	var req checkInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	checkIn, err := h.service.Create(r.Context(), userID, req.SessionID, req.Rating, req.Insight)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, checkInResponse{
		ID:        checkIn.ID,
		SessionID: checkIn.SessionID,
		Rating:    checkIn.Rating,
		Insight:   checkIn.Insight,
		CreatedAt: checkIn.CreatedAt,
	})
}
