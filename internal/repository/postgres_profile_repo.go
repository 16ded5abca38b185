package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/coachly/internal/model"
)

// PostgresProfileRepo はPostgreSQLを使用したプロフィールリポジトリ。
type PostgresProfileRepo struct {
	db *sql.DB
}

// NewPostgresProfileRepo はPostgresProfileRepoを生成する。
func NewPostgresProfileRepo(db *sql.DB) *PostgresProfileRepo {
	return &PostgresProfileRepo{db: db}
}

// FindByID は指定IDのプロフィールを取得する。見つからない場合はnilを返す。
func (r *PostgresProfileRepo) FindByID(ctx context.Context, id string) (*model.Profile, error) {
	profile := &model.Profile{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, name, role, full_access, created_at, updated_at
		 FROM profiles WHERE id = $1`,
		id,
	).Scan(&profile.ID, &profile.Email, &profile.Name, &profile.Role, &profile.FullAccess, &profile.CreatedAt, &profile.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find profile by ID: %w", err)
	}

	return profile, nil
}

// FindByEmail はメールアドレスでプロフィールを検索する。見つからない場合はnilを返す。
func (r *PostgresProfileRepo) FindByEmail(ctx context.Context, email string) (*model.Profile, error) {
	profile := &model.Profile{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, name, role, full_access, created_at, updated_at
		 FROM profiles WHERE email = $1`,
		email,
	).Scan(&profile.ID, &profile.Email, &profile.Name, &profile.Role, &profile.FullAccess, &profile.CreatedAt, &profile.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find profile by email: %w", err)
	}

	return profile, nil
}

// CreateWithIdentity はプロフィールとidentityを同一トランザクションで作成する。
func (r *PostgresProfileRepo) CreateWithIdentity(ctx context.Context, profile *model.Profile, identity *model.Identity) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO profiles (id, email, name, role, full_access, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		profile.ID, profile.Email, profile.Name, profile.Role, profile.FullAccess, profile.CreatedAt, profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert profile: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO identities (id, user_id, provider, provider_user_id, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		identity.ID, identity.UserID, identity.Provider, identity.ProviderUserID, identity.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert identity: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// UpdateRole は指定IDのロールとフルアクセスフラグを更新する。
func (r *PostgresProfileRepo) UpdateRole(ctx context.Context, id string, role model.Role, fullAccess bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET role = $1, full_access = $2, updated_at = now() WHERE id = $3`,
		role, fullAccess, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("profile not found: %s", id)
	}
	return nil
}

// DeleteByID は指定IDのプロフィールを削除する。
// 関連データはCASCADE削除される。
func (r *PostgresProfileRepo) DeleteByID(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM profiles WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("profile not found: %s", id)
	}
	return nil
}

// compile-time interface check
var _ ProfileRepository = (*PostgresProfileRepo)(nil)
