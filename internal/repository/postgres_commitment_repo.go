package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/coachly/internal/model"
)

// PostgresCommitmentRepo はPostgreSQLを使用したコミットメントリポジトリ。
type PostgresCommitmentRepo struct {
	db *sql.DB
}

// NewPostgresCommitmentRepo はPostgresCommitmentRepoを生成する。
func NewPostgresCommitmentRepo(db *sql.DB) *PostgresCommitmentRepo {
	return &PostgresCommitmentRepo{db: db}
}

// Create は新規コミットメントを作成する。
func (r *PostgresCommitmentRepo) Create(ctx context.Context, commitment *model.Commitment) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO coaching_commitments (id, user_id, session_id, text, confidence, due_date, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		commitment.ID, commitment.UserID, commitment.SessionID, commitment.Text, commitment.Confidence, commitment.DueDate, commitment.Status, commitment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create commitment: %w", err)
	}
	return nil
}

// ListByUserID はユーザーのコミットメントを作成日時降順で返す。
// statusが空でない場合はその状態のみに絞り込む。
func (r *PostgresCommitmentRepo) ListByUserID(ctx context.Context, userID string, status model.CommitmentStatus) ([]*model.Commitment, error) {
	query := `SELECT id, user_id, session_id, text, confidence, due_date, status, created_at
	          FROM coaching_commitments
	          WHERE user_id = $1`
	args := []interface{}{userID}

	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list commitments: %w", err)
	}
	defer rows.Close()

	var commitments []*model.Commitment
	for rows.Next() {
		c := &model.Commitment{}
		if err := rows.Scan(&c.ID, &c.UserID, &c.SessionID, &c.Text, &c.Confidence, &c.DueDate, &c.Status, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan commitment: %w", err)
		}
		commitments = append(commitments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate commitments: %w", err)
	}

	return commitments, nil
}

// CountActiveByUserID はstatus = 'active' のコミットメント数を返す。
func (r *PostgresCommitmentRepo) CountActiveByUserID(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM coaching_commitments WHERE user_id = $1 AND status = 'active'`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active commitments: %w", err)
	}
	return count, nil
}

// UpdateStatus はIDと所有者の複合条件でコミットメントの状態を更新し、更新後の行を返す。
// 遷移元はactiveに限定され、終端状態から別の終端状態への上書きは
// 対象なしとしてnilを返す。対象が存在しない場合もnilを返す。
func (r *PostgresCommitmentRepo) UpdateStatus(ctx context.Context, id, userID string, status model.CommitmentStatus) (*model.Commitment, error) {
	c := &model.Commitment{}
	err := r.db.QueryRowContext(ctx,
		`UPDATE coaching_commitments
		 SET status = $1
		 WHERE id = $2 AND user_id = $3 AND status = 'active'
		 RETURNING id, user_id, session_id, text, confidence, due_date, status, created_at`,
		status, id, userID,
	).Scan(&c.ID, &c.UserID, &c.SessionID, &c.Text, &c.Confidence, &c.DueDate, &c.Status, &c.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update commitment status: %w", err)
	}

	return c, nil
}

// compile-time interface check
var _ CommitmentRepository = (*PostgresCommitmentRepo)(nil)
