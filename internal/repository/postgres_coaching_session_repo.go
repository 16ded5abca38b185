package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/coachly/internal/model"
)

// PostgresCoachingSessionRepo はPostgreSQLを使用したコーチングセッションリポジトリ。
type PostgresCoachingSessionRepo struct {
	db *sql.DB
}

// NewPostgresCoachingSessionRepo はPostgresCoachingSessionRepoを生成する。
func NewPostgresCoachingSessionRepo(db *sql.DB) *PostgresCoachingSessionRepo {
	return &PostgresCoachingSessionRepo{db: db}
}

// Create は新規コーチングセッションを作成する。ended_atはNULLで作成される。
func (r *PostgresCoachingSessionRepo) Create(ctx context.Context, session *model.CoachingSession) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO coaching_sessions (id, user_id, mode, focus_area, summary, commitment, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		session.ID, session.UserID, session.Mode, session.FocusArea, session.Summary, session.Commitment, session.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create coaching session: %w", err)
	}
	return nil
}

// FindByIDAndUserID はIDと所有者の複合条件でセッションを取得する。
// 所有者が一致しない場合は存在しないのと同じ扱いでnilを返す。
func (r *PostgresCoachingSessionRepo) FindByIDAndUserID(ctx context.Context, id, userID string) (*model.CoachingSession, error) {
	session := &model.CoachingSession{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, mode, focus_area, summary, commitment, created_at, ended_at
		 FROM coaching_sessions
		 WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&session.ID, &session.UserID, &session.Mode, &session.FocusArea, &session.Summary, &session.Commitment, &session.CreatedAt, &session.EndedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find coaching session: %w", err)
	}

	return session, nil
}

// ListRecentByUserID はユーザーの直近のセッションを作成日時降順で返す。
func (r *PostgresCoachingSessionRepo) ListRecentByUserID(ctx context.Context, userID string, limit int) ([]*model.CoachingSession, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, mode, focus_area, summary, commitment, created_at, ended_at
		 FROM coaching_sessions
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent coaching sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*model.CoachingSession
	for rows.Next() {
		session := &model.CoachingSession{}
		if err := rows.Scan(&session.ID, &session.UserID, &session.Mode, &session.FocusArea, &session.Summary, &session.Commitment, &session.CreatedAt, &session.EndedAt); err != nil {
			return nil, fmt.Errorf("failed to scan coaching session: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate coaching sessions: %w", err)
	}

	return sessions, nil
}

// Complete はIDと所有者の複合条件でセッションを終了状態に更新し、更新後の行を返す。
// 対象が存在しない（他ユーザーのセッションを含む）場合はnilを返す。
// ended_atはCOALESCEにより最初の呼び出しでのみ設定され、以降の呼び出しでは
// 自由記述フィールドのみが上書きされる（last-write-wins）。
func (r *PostgresCoachingSessionRepo) Complete(ctx context.Context, id, userID, focusArea, summary, commitment string) (*model.CoachingSession, error) {
	session := &model.CoachingSession{}
	err := r.db.QueryRowContext(ctx,
		`UPDATE coaching_sessions
		 SET focus_area = $1, summary = $2, commitment = $3, ended_at = COALESCE(ended_at, now())
		 WHERE id = $4 AND user_id = $5
		 RETURNING id, user_id, mode, focus_area, summary, commitment, created_at, ended_at`,
		focusArea, summary, commitment, id, userID,
	).Scan(&session.ID, &session.UserID, &session.Mode, &session.FocusArea, &session.Summary, &session.Commitment, &session.CreatedAt, &session.EndedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to complete coaching session: %w", err)
	}

	return session, nil
}

// CountEndedByUserID はended_atが設定済みのセッション数を返す。
func (r *PostgresCoachingSessionRepo) CountEndedByUserID(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM coaching_sessions WHERE user_id = $1 AND ended_at IS NOT NULL`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count ended coaching sessions: %w", err)
	}
	return count, nil
}

// compile-time interface check
var _ CoachingSessionRepository = (*PostgresCoachingSessionRepo)(nil)
