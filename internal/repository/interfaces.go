// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/coachly/internal/model"
)

// ProfileRepository はプロフィールデータの永続化インターフェース。
type ProfileRepository interface {
	// FindByID は指定IDのプロフィールを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Profile, error)

	// FindByEmail はメールアドレスでプロフィールを検索する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.Profile, error)

	// CreateWithIdentity はプロフィールとidentityを同一トランザクションで作成する。
	// 初回認証時のユーザー自動作成で使用する。
	CreateWithIdentity(ctx context.Context, profile *model.Profile, identity *model.Identity) error

	// UpdateRole は指定IDのロールとフルアクセスフラグを更新する。
	// 管理サブコマンド専用。対象が存在しない場合はエラーを返す。
	UpdateRole(ctx context.Context, id string, role model.Role, fullAccess bool) error

	// DeleteByID は指定IDのプロフィールを削除する。
	// 関連する全データ（identities, login_sessions, coaching_sessions,
	// coaching_commitments, check_ins）はCASCADE削除される。
	DeleteByID(ctx context.Context, id string) error
}

// IdentityRepository は外部IdP紐付け情報の永続化インターフェース。
type IdentityRepository interface {
	// FindByProviderAndProviderUserID はproviderとprovider_user_idでidentityを検索する。
	// 見つからない場合はnilを返す。
	FindByProviderAndProviderUserID(ctx context.Context, provider, providerUserID string) (*model.Identity, error)
}

// LoginSessionRepository はログインセッションの永続化インターフェース。
type LoginSessionRepository interface {
	// Create はログインセッションを作成する。
	Create(ctx context.Context, session *model.LoginSession) error
	// FindByID は指定IDのログインセッションを取得する。期限切れの場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.LoginSession, error)
	// DeleteByID は指定IDのログインセッションを削除する。
	DeleteByID(ctx context.Context, id string) error
	// DeleteByUserID は指定ユーザーの全ログインセッションを削除する。
	DeleteByUserID(ctx context.Context, userID string) error
	// DeleteExpired は期限切れのログインセッションを削除し、削除件数を返す。
	DeleteExpired(ctx context.Context) (int64, error)
}

// CoachingSessionRepository はコーチングセッションの永続化インターフェース。
type CoachingSessionRepository interface {
	// Create は新規コーチングセッションを作成する。ended_atはNULLで作成される。
	Create(ctx context.Context, session *model.CoachingSession) error

	// FindByIDAndUserID はIDと所有者の複合条件でセッションを取得する。
	// 所有者が一致しない場合は存在しないのと同じ扱いでnilを返す。
	FindByIDAndUserID(ctx context.Context, id, userID string) (*model.CoachingSession, error)

	// ListRecentByUserID はユーザーの直近のセッションを作成日時降順で返す。
	ListRecentByUserID(ctx context.Context, userID string, limit int) ([]*model.CoachingSession, error)

	// Complete はIDと所有者の複合条件でセッションを終了状態に更新し、
	// 更新後の行を返す。対象が存在しない（他ユーザーのセッションを含む）場合は
	// nilを返す。自由記述フィールドは上書き（last-write-wins）だが、
	// ended_atは最初の呼び出しの値が保持される。
	Complete(ctx context.Context, id, userID, focusArea, summary, commitment string) (*model.CoachingSession, error)

	// CountEndedByUserID はended_atが設定済みのセッション数を返す。
	CountEndedByUserID(ctx context.Context, userID string) (int, error)
}

// CommitmentRepository はコミットメントの永続化インターフェース。
type CommitmentRepository interface {
	// Create は新規コミットメントを作成する。
	Create(ctx context.Context, commitment *model.Commitment) error

	// ListByUserID はユーザーのコミットメントを作成日時降順で返す。
	// statusが空でない場合はその状態のみに絞り込む。
	ListByUserID(ctx context.Context, userID string, status model.CommitmentStatus) ([]*model.Commitment, error)

	// CountActiveByUserID はstatus = 'active' のコミットメント数を返す。
	CountActiveByUserID(ctx context.Context, userID string) (int, error)

	// UpdateStatus はIDと所有者の複合条件でコミットメントの状態を更新し、
	// 更新後の行を返す。対象が存在しない場合はnilを返す。
	UpdateStatus(ctx context.Context, id, userID string, status model.CommitmentStatus) (*model.Commitment, error)
}

// CheckInRepository はチェックインの永続化インターフェース。
type CheckInRepository interface {
	// Create は新規チェックインを作成する。
	Create(ctx context.Context, checkIn *model.CheckIn) error

	// ListByUserID はユーザーのチェックインを作成日時降順で返す。
	ListByUserID(ctx context.Context, userID string, limit int) ([]*model.CheckIn, error)
}
