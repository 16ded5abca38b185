package coach

import "github.com/hitoshi/coachly/internal/model"

// CoachRole は対話エージェントに渡す固定のコーチ役割ラベル。
const CoachRole = "ai_performance_coach"

// OpeningPrompt はセッション開始時に対話エージェントへ渡す固定の導入プロンプト。
const OpeningPrompt = "あなたはユーザー専属のパフォーマンスコーチです。" +
	"過去のセッションと進行中のコミットメントを踏まえ、" +
	"今日のセッションで扱うテーマをユーザーと一緒に決めてください。" +
	"まずは前回からの変化を短く尋ねるところから始めてください。"

// coachingPrinciples は対話エージェントに渡す固定のコーチング原則。
var coachingPrinciples = []string{
	"アドバイスより先に質問で気づきを引き出す",
	"コミットメントはユーザー自身の言葉で決めてもらう",
	"過去のセッションとの継続性を意識する",
	"1セッションで扱うテーマは1つに絞る",
	"セッションの最後に次の一歩を確認する",
}

// SessionContext はセッション開始時に対話エージェントへ渡すコンテキストペイロード。
// 進行中のコミットメント、直近のセッション、固定プロンプトをまとめたもの。
type SessionContext struct {
	SessionID       string
	Role            string
	Mode            model.SessionMode
	OpenCommitments []*model.Commitment
	RecentSessions  []*model.CoachingSession
	OpeningPrompt   string
	Principles      []string
}

// newSessionContext はコンテキストペイロードを組み立てる。
// commitments/recentがnilの場合は空スライスに正規化する
// （JSONでnullではなく[]として返すため）。
func newSessionContext(sessionID string, mode model.SessionMode, commitments []*model.Commitment, recent []*model.CoachingSession) *SessionContext {
	if commitments == nil {
		commitments = []*model.Commitment{}
	}
	if recent == nil {
		recent = []*model.CoachingSession{}
	}
	return &SessionContext{
		SessionID:       sessionID,
		Role:            CoachRole,
		Mode:            mode,
		OpenCommitments: commitments,
		RecentSessions:  recent,
		OpeningPrompt:   OpeningPrompt,
		Principles:      coachingPrinciples,
	}
}
