package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/hitoshi/coachly/internal/model"
)

// ErrorResponseBody はAPIエラーレスポンスの統一フォーマット。
// エラーコードはHTTPステータスで表現し、ボディにはメッセージのみを載せる。
type ErrorResponseBody struct {
	Error string `json:"error"`
}

// WriteErrorResponse は統一エラーフォーマットでHTTPエラーレスポンスを書き込む。
// すべてのAPIエンドポイントで一貫したエラーレスポンスを提供する。
func WriteErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponseBody{Error: message})
}

// WriteAPIError はAPIErrorのコードをHTTPステータスにマッピングして書き込む。
func WriteAPIError(w http.ResponseWriter, apiErr *model.APIError) {
	WriteErrorResponse(w, StatusForErrorCode(apiErr.Code), apiErr.Message)
}

// WriteInternalServerError は内部サーバーエラーの統一レスポンスを書き込む。
// 詳細はログのみに記録し、ユーザーには一般的なメッセージを返す。
func WriteInternalServerError(w http.ResponseWriter) {
	WriteErrorResponse(w, http.StatusInternalServerError, "内部エラーが発生しました。しばらく待ってから再度お試しください。")
}

// StatusForErrorCode はエラーコードをHTTPステータスコードにマッピングする。
func StatusForErrorCode(code string) int {
	switch code {
	case model.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case model.ErrCodeInvalidRequest,
		model.ErrCodeSessionIDRequired,
		model.ErrCodeInvalidRating,
		model.ErrCodeInvalidStatus,
		model.ErrCodeInvalidMode,
		model.ErrCodeInvalidDueDate:
		return http.StatusBadRequest
	case model.ErrCodeSessionNotFound,
		model.ErrCodeCommitmentNotFound,
		model.ErrCodeUserNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
