// Package model はドメインモデルを定義する。
package model

import "time"

// SessionMode はコーチングセッションの種別を表す。
type SessionMode string

const (
	// SessionModeAI はAIコーチとの対話セッション。
	SessionModeAI SessionMode = "ai"
	// SessionModeHuman は人間のコーチとのセッション。
	SessionModeHuman SessionMode = "human"
)

// CoachingSession は1回のコーチングセッションを表す。
// EndedAtは作成時nilで、EndSessionによって一度だけ設定される。
// 所有者以外がセッションを終了することはできない。
type CoachingSession struct {
	ID        string
	UserID    string
	Mode      SessionMode
	FocusArea string
	Summary   string
	// Commitment は表示用の非正規化コピー。正本はcoaching_commitmentsテーブルであり、
	// このフィールドへの書き込みはEndSessionのみが行う。
	Commitment string
	CreatedAt  time.Time
	EndedAt    *time.Time
}

// CommitmentStatus はコミットメントの状態を表す。
type CommitmentStatus string

const (
	// CommitmentStatusActive は進行中のコミットメント。
	CommitmentStatusActive CommitmentStatus = "active"
	// CommitmentStatusCompleted は達成されたコミットメント。
	CommitmentStatusCompleted CommitmentStatus = "completed"
	// CommitmentStatusAbandoned は取り下げられたコミットメント。
	CommitmentStatusAbandoned CommitmentStatus = "abandoned"
)

// ValidCommitmentStatus はstatusが定義済みの値かどうかを返す。
func ValidCommitmentStatus(s CommitmentStatus) bool {
	switch s {
	case CommitmentStatusActive, CommitmentStatusCompleted, CommitmentStatusAbandoned:
		return true
	}
	return false
}

// Commitment はセッションから生まれたユーザーの行動宣言を表す。
// 必ず1つの発生元セッションを参照する。
type Commitment struct {
	ID         string
	UserID     string
	SessionID  string
	Text       string
	Confidence *float64
	DueDate    *time.Time
	Status     CommitmentStatus
	CreatedAt  time.Time
}

// CheckIn はセッションに対する振り返り（1〜5の評価と自由記述）を表す。
type CheckIn struct {
	ID        string
	UserID    string
	SessionID string
	Rating    int
	Insight   string
	CreatedAt time.Time
}
