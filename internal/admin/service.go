// Package admin は運用者向けの管理操作を提供する。
// HTTPは持たず、バイナリのサブコマンドとしてのみ実行される。
package admin

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/hitoshi/coachly/internal/model"
	"github.com/hitoshi/coachly/internal/repository"
)

// Service は管理操作のサービス層。
type Service struct {
	profileRepo      repository.ProfileRepository
	loginSessionRepo repository.LoginSessionRepository
}

// NewService はServiceを生成する。
func NewService(
	profileRepo repository.ProfileRepository,
	loginSessionRepo repository.LoginSessionRepository,
) *Service {
	return &Service{
		profileRepo:      profileRepo,
		loginSessionRepo: loginSessionRepo,
	}
}

// Grant は指定メールアドレスのユーザーに管理者ロールとフルアクセスを付与する。
func (s *Service) Grant(ctx context.Context, email string) (*model.Profile, error) {
	profile, err := s.profileRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("プロフィールの検索に失敗しました: %w", err)
	}
	if profile == nil {
		return nil, model.NewUserNotFoundError()
	}

	if err := s.profileRepo.UpdateRole(ctx, profile.ID, model.RoleAdmin, true); err != nil {
		return nil, fmt.Errorf("ロールの更新に失敗しました: %w", err)
	}

	profile.Role = model.RoleAdmin
	profile.FullAccess = true

	slog.Info("admin role granted",
		slog.String("user_id", profile.ID),
		slog.String("email", email),
	)

	return profile, nil
}

// DeleteUser は指定メールアドレスのユーザーと関連データを全て削除する。
// ログインセッションを先に明示削除して再ログインを防ぎ、その後プロフィールを
// 削除する。コーチングデータは外部キーのCASCADEで削除される。
func (s *Service) DeleteUser(ctx context.Context, email string) error {
	profile, err := s.profileRepo.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("プロフィールの検索に失敗しました: %w", err)
	}
	if profile == nil {
		return model.NewUserNotFoundError()
	}

	if err := s.loginSessionRepo.DeleteByUserID(ctx, profile.ID); err != nil {
		return fmt.Errorf("ログインセッションの削除に失敗しました: %w", err)
	}

	if err := s.profileRepo.DeleteByID(ctx, profile.ID); err != nil {
		return fmt.Errorf("プロフィールの削除に失敗しました: %w", err)
	}

	slog.Info("user deleted",
		slog.String("user_id", profile.ID),
		slog.String("email", email),
	)

	return nil
}

// requiredTables はスキーマ検証の対象テーブル。
var requiredTables = []string{
	"profiles",
	"identities",
	"login_sessions",
	"coaching_sessions",
	"coaching_commitments",
	"check_ins",
}

// VerifyTables は必須テーブルが全て存在することを確認し、
// 欠けているテーブル名の一覧を返す。
func VerifyTables(ctx context.Context, db *sql.DB) ([]string, error) {
	var missing []string
	for _, table := range requiredTables {
		var regclass sql.NullString
		err := db.QueryRowContext(ctx, `SELECT to_regclass($1)`, table).Scan(&regclass)
		if err != nil {
			return nil, fmt.Errorf("テーブル %s の確認に失敗しました: %w", table, err)
		}
		if !regclass.Valid {
			missing = append(missing, table)
		}
	}
	return missing, nil
}
