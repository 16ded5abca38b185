// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError はサービス層が返す分類済みエラーを表す。
// CodeはHTTPステータスへのマッピングにのみ使い、レスポンスボディには
// Messageだけを {"error": "..."} 形式で載せる。
type APIError struct {
	Code    string // エラーコード（内部用）
	Message string // ユーザー向けメッセージ
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidRequest     = "INVALID_REQUEST"
	ErrCodeSessionIDRequired  = "SESSION_ID_REQUIRED"
	ErrCodeSessionNotFound    = "SESSION_NOT_FOUND"
	ErrCodeCommitmentNotFound = "COMMITMENT_NOT_FOUND"
	ErrCodeInvalidRating      = "INVALID_RATING"
	ErrCodeInvalidStatus      = "INVALID_STATUS"
	ErrCodeInvalidMode        = "INVALID_MODE"
	ErrCodeInvalidDueDate     = "INVALID_DUE_DATE"
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
)

// NewUnauthorizedError は未認証エラーを生成する。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:    ErrCodeUnauthorized,
		Message: "認証が必要です。ログインしてください。",
	}
}

// NewSessionIDRequiredError はsession_id未指定の検証エラーを生成する。
// 未認証エラーとは区別される（400を返す）。
func NewSessionIDRequiredError() *APIError {
	return &APIError{
		Code:    ErrCodeSessionIDRequired,
		Message: "session_idは必須です。",
	}
}

// NewSessionNotFoundError はセッション未検出エラーを生成する。
// 他ユーザーのセッションを指定した場合も同じエラーになる
// （所有権の不一致は存在しないのと同じ扱い）。
func NewSessionNotFoundError(sessionID string) *APIError {
	return &APIError{
		Code:    ErrCodeSessionNotFound,
		Message: fmt.Sprintf("指定されたセッションが見つかりません: %s", sessionID),
	}
}

// NewCommitmentNotFoundError はコミットメント未検出エラーを生成する。
func NewCommitmentNotFoundError(commitmentID string) *APIError {
	return &APIError{
		Code:    ErrCodeCommitmentNotFound,
		Message: fmt.Sprintf("指定されたコミットメントが見つかりません: %s", commitmentID),
	}
}

// NewInvalidRatingError は評価値が範囲外の場合のエラーを生成する。
func NewInvalidRatingError(rating int) *APIError {
	return &APIError{
		Code:    ErrCodeInvalidRating,
		Message: fmt.Sprintf("評価は1〜5で指定してください: %d", rating),
	}
}

// NewInvalidStatusError はコミットメントの状態遷移先が無効な場合のエラーを生成する。
func NewInvalidStatusError(status string) *APIError {
	return &APIError{
		Code:    ErrCodeInvalidStatus,
		Message: fmt.Sprintf("無効なステータスです: %s。completed または abandoned を指定してください。", status),
	}
}

// NewInvalidModeError はセッション種別が無効な場合のエラーを生成する。
func NewInvalidModeError(mode string) *APIError {
	return &APIError{
		Code:    ErrCodeInvalidMode,
		Message: fmt.Sprintf("無効なセッション種別です: %s。ai または human を指定してください。", mode),
	}
}

// NewInvalidDueDateError は期日の形式が無効な場合のエラーを生成する。
func NewInvalidDueDateError(raw string) *APIError {
	return &APIError{
		Code:    ErrCodeInvalidDueDate,
		Message: fmt.Sprintf("期日はYYYY-MM-DD形式で指定してください: %s", raw),
	}
}

// NewUserNotFoundError はユーザーが見つからない場合のエラーを生成する。
func NewUserNotFoundError() *APIError {
	return &APIError{
		Code:    ErrCodeUserNotFound,
		Message: "ユーザーが見つかりません。ログインし直してください。",
	}
}
