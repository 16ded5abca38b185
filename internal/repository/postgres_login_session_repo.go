package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/coachly/internal/model"
)

// PostgresLoginSessionRepo はPostgreSQLを使用したログインセッションリポジトリ。
type PostgresLoginSessionRepo struct {
	db *sql.DB
}

// NewPostgresLoginSessionRepo はPostgresLoginSessionRepoを生成する。
func NewPostgresLoginSessionRepo(db *sql.DB) *PostgresLoginSessionRepo {
	return &PostgresLoginSessionRepo{db: db}
}

// Create はログインセッションを作成する。
func (r *PostgresLoginSessionRepo) Create(ctx context.Context, session *model.LoginSession) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO login_sessions (id, user_id, expires_at, created_at)
		 VALUES ($1, $2, $3, $4)`,
		session.ID, session.UserID, session.ExpiresAt, session.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create login session: %w", err)
	}
	return nil
}

// FindByID は指定IDのログインセッションを取得する。期限切れの場合はnilを返す。
func (r *PostgresLoginSessionRepo) FindByID(ctx context.Context, id string) (*model.LoginSession, error) {
	session := &model.LoginSession{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, expires_at, created_at
		 FROM login_sessions
		 WHERE id = $1 AND expires_at > now()`,
		id,
	).Scan(&session.ID, &session.UserID, &session.ExpiresAt, &session.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find login session: %w", err)
	}

	return session, nil
}

// DeleteByID は指定IDのログインセッションを削除する。
func (r *PostgresLoginSessionRepo) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM login_sessions WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete login session: %w", err)
	}
	return nil
}

// DeleteByUserID は指定ユーザーの全ログインセッションを削除する。
func (r *PostgresLoginSessionRepo) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM login_sessions WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete user login sessions: %w", err)
	}
	return nil
}

// DeleteExpired は期限切れのログインセッションを削除し、削除件数を返す。
// クリーンアップワーカーから日次で呼ばれる。冪等。
func (r *PostgresLoginSessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM login_sessions WHERE expires_at <= now()`,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired login sessions: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return deleted, nil
}

// compile-time interface check
var _ LoginSessionRepository = (*PostgresLoginSessionRepo)(nil)
