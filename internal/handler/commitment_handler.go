package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/coachly/internal/middleware"
	"github.com/hitoshi/coachly/internal/model"
)

// CommitmentServiceInterface はコミットメントハンドラーが必要とするサービスインターフェース。
type CommitmentServiceInterface interface {
	// List はユーザーのコミットメントを作成日時降順で返す。statusが空の場合は全件。
	List(ctx context.Context, userID string, status model.CommitmentStatus) ([]*model.Commitment, error)
	// UpdateStatus はコミットメントを終端状態（completed/abandoned）に遷移させる。
	UpdateStatus(ctx context.Context, userID, commitmentID string, status model.CommitmentStatus) (*model.Commitment, error)
}

// CommitmentHandler はコミットメント管理のHTTPハンドラー。
type CommitmentHandler struct {
	service CommitmentServiceInterface
}

// NewCommitmentHandler はCommitmentHandlerを生成する。
func NewCommitmentHandler(service CommitmentServiceInterface) *CommitmentHandler {
	return &CommitmentHandler{service: service}
}

// updateCommitmentRequest はコミットメント状態更新リクエストのボディ。
type updateCommitmentRequest struct {
	Status string `json:"status"`
}

// commitmentListResponse はコミットメント一覧のAPIレスポンス。
type commitmentListResponse struct {
	Commitments []commitmentResponse `json:"commitments"`
}

// List はコミットメント一覧取得を処理する。
// GET /api/commitments?status=active
func (h *CommitmentHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	status := model.CommitmentStatus(r.URL.Query().Get("status"))
	if status != "" && !model.ValidCommitmentStatus(status) {
		handleServiceError(w, model.NewInvalidStatusError(string(status)))
		return
	}

	commitments, err := h.service.List(r.Context(), userID, status)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := commitmentListResponse{Commitments: make([]commitmentResponse, len(commitments))}
	for i, c := range commitments {
		resp.Commitments[i] = toCommitmentResponse(c)
	}

	writeJSONResponse(w, http.StatusOK, resp)
}

// UpdateStatus はコミットメントの状態更新を処理する。
// PATCH /api/commitments/{id}
func (h *CommitmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	commitmentID := chi.URLParam(r, "id")

	var req updateCommitmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	commitment, err := h.service.UpdateStatus(r.Context(), userID, commitmentID, model.CommitmentStatus(req.Status))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, toCommitmentResponse(commitment))
}
