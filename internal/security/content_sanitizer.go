// Package security はアプリケーションのセキュリティ機能を提供する。
//
// TextSanitizerService はユーザーが入力する自由記述テキスト
// （フォーカスエリア、サマリー、コミットメント、チェックインの気づき）を
// 保存前にサニタイズする。コーチングの自由記述はプレーンテキストとして
// 扱うため、bluemondayのStrictPolicyで全HTMLタグを除去する。
package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// TextSanitizerService は自由記述テキストのサニタイズ機能のインターフェースを定義する。
type TextSanitizerService interface {
	// Sanitize は入力テキストから全HTMLタグを除去し、前後の空白を取り除いて返す。
	// 空文字列の入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(raw string) string
}

// textSanitizer はTextSanitizerServiceの実装。
// bluemondayのStrictPolicyを保持し、スレッドセーフにサニタイズ処理を行う。
type textSanitizer struct {
	policy *bluemonday.Policy
}

// NewTextSanitizer はTextSanitizerServiceの新しいインスタンスを生成する。
// StrictPolicyは許可タグを一切持たず、全てのHTML要素を除去する。
func NewTextSanitizer() *textSanitizer {
	return &textSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize は入力テキストから全HTMLタグを除去し、前後の空白を取り除いて返す。
// bluemondayはタグ除去後にテキストをHTMLエスケープするため、
// プレーンテキストとして保存できるようアンエスケープして戻す。
func (s *textSanitizer) Sanitize(raw string) string {
	if raw == "" {
		return ""
	}
	cleaned := s.policy.Sanitize(raw)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}
