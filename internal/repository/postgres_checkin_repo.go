package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/coachly/internal/model"
)

// PostgresCheckInRepo はPostgreSQLを使用したチェックインリポジトリ。
type PostgresCheckInRepo struct {
	db *sql.DB
}

// NewPostgresCheckInRepo はPostgresCheckInRepoを生成する。
func NewPostgresCheckInRepo(db *sql.DB) *PostgresCheckInRepo {
	return &PostgresCheckInRepo{db: db}
}

// Create は新規チェックインを作成する。
func (r *PostgresCheckInRepo) Create(ctx context.Context, checkIn *model.CheckIn) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO check_ins (id, user_id, session_id, rating, insight, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		checkIn.ID, checkIn.UserID, checkIn.SessionID, checkIn.Rating, checkIn.Insight, checkIn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create check-in: %w", err)
	}
	return nil
}

// ListByUserID はユーザーのチェックインを作成日時降順で返す。
func (r *PostgresCheckInRepo) ListByUserID(ctx context.Context, userID string, limit int) ([]*model.CheckIn, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, session_id, rating, insight, created_at
		 FROM check_ins
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list check-ins: %w", err)
	}
	defer rows.Close()

	var checkIns []*model.CheckIn
	for rows.Next() {
		c := &model.CheckIn{}
		if err := rows.Scan(&c.ID, &c.UserID, &c.SessionID, &c.Rating, &c.Insight, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan check-in: %w", err)
		}
		checkIns = append(checkIns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate check-ins: %w", err)
	}

	return checkIns, nil
}

// compile-time interface check
var _ CheckInRepository = (*PostgresCheckInRepo)(nil)
