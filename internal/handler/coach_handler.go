package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/hitoshi/coachly/internal/coach"
	"github.com/hitoshi/coachly/internal/middleware"
	"github.com/hitoshi/coachly/internal/model"
)

// CoachServiceInterface はコーチングハンドラーが必要とするサービスインターフェース。
type CoachServiceInterface interface {
	// StartSession は新規セッションを開始し、対話エージェント用のコンテキストを返す。
	StartSession(ctx context.Context, userID string, mode model.SessionMode) (*model.CoachingSession, *coach.SessionContext, error)
	// EndSession はセッションを終了し、コミットメントと統計を返す。
	EndSession(ctx context.Context, userID string, in coach.EndSessionInput) (*coach.EndSessionResult, error)
}

// CoachHandler はコーチングセッションのHTTPハンドラー。
type CoachHandler struct {
	service CoachServiceInterface
}

// NewCoachHandler はCoachHandlerを生成する。
func NewCoachHandler(service CoachServiceInterface) *CoachHandler {
	return &CoachHandler{service: service}
}

// startSessionRequest はセッション開始リクエストのボディ。
type startSessionRequest struct {
	Mode string `json:"mode"`
}

// endSessionRequest はセッション終了リクエストのボディ。
type endSessionRequest struct {
	SessionID            string   `json:"session_id"`
	FocusArea            string   `json:"focus_area"`
	Summary              string   `json:"summary"`
	Commitment           string   `json:"commitment"`
	CommitmentConfidence *float64 `json:"commitment_confidence"`
	CommitmentDueDate    string   `json:"commitment_due_date"`
}

// sessionResponse はコーチングセッションのAPIレスポンス。
type sessionResponse struct {
	ID        string     `json:"id"`
	Mode      string     `json:"mode"`
	FocusArea string     `json:"focus_area,omitempty"`
	Summary   string     `json:"summary,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	EndedAt   *time.Time `json:"ended_at"`
}

// commitmentResponse はコミットメントのAPIレスポンス。
type commitmentResponse struct {
	ID         string     `json:"id"`
	SessionID  string     `json:"session_id"`
	Text       string     `json:"text"`
	Confidence *float64   `json:"confidence"`
	DueDate    *string    `json:"due_date"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
}

// sessionContextResponse は対話エージェント用コンテキストのAPIレスポンス。
type sessionContextResponse struct {
	SessionID       string               `json:"session_id"`
	Role            string               `json:"role"`
	Mode            string               `json:"mode"`
	OpenCommitments []commitmentResponse `json:"open_commitments"`
	RecentSessions  []sessionResponse    `json:"recent_sessions"`
	OpeningPrompt   string               `json:"opening_prompt"`
	Principles      []string             `json:"principles"`
}

// startSessionResponse はセッション開始のAPIレスポンス。
type startSessionResponse struct {
	Success bool                   `json:"success"`
	Session sessionResponse        `json:"session"`
	Context sessionContextResponse `json:"context"`
}

// statsResponse はセッション終了時の統計のAPIレスポンス。
// 集計に失敗した値はゼロで返す。
type statsResponse struct {
	TotalSessions     int `json:"total_sessions"`
	ActiveCommitments int `json:"active_commitments"`
}

// endSessionResponse はセッション終了のAPIレスポンス。
type endSessionResponse struct {
	Success    bool                `json:"success"`
	Session    sessionResponse     `json:"session"`
	Commitment *commitmentResponse `json:"commitment"`
	Stats      statsResponse       `json:"stats"`
}

// StartSession はセッション開始を処理する。
// POST /api/coach/start-session
func (h *CoachHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	// ボディは省略可能（modeのみ）
	var req startSessionRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeInvalidRequestBody(w)
			return
		}
	}

	session, sessionCtx, err := h.service.StartSession(r.Context(), userID, model.SessionMode(req.Mode))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, startSessionResponse{
		Success: true,
		Session: toSessionResponse(session),
		Context: toSessionContextResponse(sessionCtx),
	})
}

// EndSession はセッション終了を処理する。
// POST /api/coach/end-session
func (h *CoachHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	var req endSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	in := coach.EndSessionInput{
		SessionID:            req.SessionID,
		FocusArea:            req.FocusArea,
		Summary:              req.Summary,
		CommitmentText:       req.Commitment,
		CommitmentConfidence: req.CommitmentConfidence,
	}

	// 期日はYYYY-MM-DD形式のみ受け付ける
	if req.CommitmentDueDate != "" {
		dueDate, err := time.Parse("2006-01-02", req.CommitmentDueDate)
		if err != nil {
			handleServiceError(w, model.NewInvalidDueDateError(req.CommitmentDueDate))
			return
		}
		in.CommitmentDueDate = &dueDate
	}

	result, err := h.service.EndSession(r.Context(), userID, in)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := endSessionResponse{
		Success: true,
		Session: toSessionResponse(result.Session),
		Stats: statsResponse{
			TotalSessions:     result.Stats.TotalSessions.Value,
			ActiveCommitments: result.Stats.ActiveCommitments.Value,
		},
	}
	if result.Commitment != nil {
		c := toCommitmentResponse(result.Commitment)
		resp.Commitment = &c
	}

	writeJSONResponse(w, http.StatusOK, resp)
}

// toSessionResponse はドメインのCoachingSessionをAPIレスポンス型に変換する。
func toSessionResponse(s *model.CoachingSession) sessionResponse {
	return sessionResponse{
		ID:        s.ID,
		Mode:      string(s.Mode),
		FocusArea: s.FocusArea,
		Summary:   s.Summary,
		CreatedAt: s.CreatedAt,
		EndedAt:   s.EndedAt,
	}
}

// toCommitmentResponse はドメインのCommitmentをAPIレスポンス型に変換する。
func toCommitmentResponse(c *model.Commitment) commitmentResponse {
	resp := commitmentResponse{
		ID:         c.ID,
		SessionID:  c.SessionID,
		Text:       c.Text,
		Confidence: c.Confidence,
		Status:     string(c.Status),
		CreatedAt:  c.CreatedAt,
	}
	if c.DueDate != nil {
		d := c.DueDate.Format("2006-01-02")
		resp.DueDate = &d
	}
	return resp
}

// toSessionContextResponse はSessionContextをAPIレスポンス型に変換する。
func toSessionContextResponse(sc *coach.SessionContext) sessionContextResponse {
	commitments := make([]commitmentResponse, len(sc.OpenCommitments))
	for i, c := range sc.OpenCommitments {
		commitments[i] = toCommitmentResponse(c)
	}
	sessions := make([]sessionResponse, len(sc.RecentSessions))
	for i, s := range sc.RecentSessions {
		sessions[i] = toSessionResponse(s)
	}
	return sessionContextResponse{
		SessionID:       sc.SessionID,
		Role:            sc.Role,
		Mode:            string(sc.Mode),
		OpenCommitments: commitments,
		RecentSessions:  sessions,
		OpeningPrompt:   sc.OpeningPrompt,
		Principles:      sc.Principles,
	}
}
