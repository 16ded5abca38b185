// Package model はドメインモデルを定義する。
package model

import "time"

// Role はユーザーの権限区分を表す。
type Role string

const (
	// RoleClient は一般のコーチング利用者。
	RoleClient Role = "client"
	// RoleAdmin は管理者。管理サブコマンドでのみ付与される。
	RoleAdmin Role = "admin"
)

// Profile はサービス利用ユーザーのプロフィールを表す。
// 初回認証時に自動作成され、ロール変更は管理サブコマンド経由でのみ行われる。
type Profile struct {
	ID         string
	Email      string
	Name       string
	Role       Role
	FullAccess bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Identity は外部IdPとの紐付け情報を表す。
// 将来的に複数のIdP（Google, Apple等）に対応可能な構造。
type Identity struct {
	ID             string
	UserID         string
	Provider       string
	ProviderUserID string
	CreatedAt      time.Time
}

// LoginSession はユーザーのログインセッション（認証Cookie）を表す。
// コーチングセッション（CoachingSession）とは別物。
type LoginSession struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}
