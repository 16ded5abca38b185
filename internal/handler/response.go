package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hitoshi/coachly/internal/middleware"
	"github.com/hitoshi/coachly/internal/model"
)

// apiErrorResponse はエラーレスポンスの統一フォーマット。
// エラーの分類はHTTPステータスで表現し、ボディにはメッセージのみを載せる。
type apiErrorResponse struct {
	Error string `json:"error"`
}

// writeJSONResponse はJSONレスポンスを書き込む。
func writeJSONResponse(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

// writeAPIErrorResponse は統一エラーフォーマットでレスポンスを書き込む。
func writeAPIErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	writeJSONResponse(w, statusCode, apiErrorResponse{Error: message})
}

// handleServiceError はサービス層から返されたエラーを適切なHTTPステータスコードに変換する。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		// コード→ステータスのマッピングはミドルウェア側の定義に一元化する
		writeAPIErrorResponse(w, middleware.StatusForErrorCode(apiErr.Code), apiErr.Message)
		return
	}

	// APIError以外のエラーは内部サーバーエラーとして扱う
	slog.Error("internal server error", slog.String("error", err.Error()))
	writeAPIErrorResponse(w, http.StatusInternalServerError, "内部エラーが発生しました。しばらく待ってから再度お試しください。")
}

// writeUnauthorized は未認証エラーレスポンスを書き込む。
func writeUnauthorized(w http.ResponseWriter) {
	writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError().Message)
}

// writeInvalidRequestBody はリクエストボディ解析失敗のレスポンスを書き込む。
func writeInvalidRequestBody(w http.ResponseWriter) {
	writeAPIErrorResponse(w, http.StatusBadRequest, "リクエストボディの解析に失敗しました。正しいJSON形式でリクエストしてください。")
}
