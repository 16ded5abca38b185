package repository

import (
	"testing"
)

// 各Postgresリポジトリが対応するインターフェースを満たすことを検証
func TestPostgresRepos_ImplementInterfaces(t *testing.T) {
	var _ ProfileRepository = (*PostgresProfileRepo)(nil)
	var _ IdentityRepository = (*PostgresIdentityRepo)(nil)
	var _ LoginSessionRepository = (*PostgresLoginSessionRepo)(nil)
	var _ CoachingSessionRepository = (*PostgresCoachingSessionRepo)(nil)
	var _ CommitmentRepository = (*PostgresCommitmentRepo)(nil)
	var _ CheckInRepository = (*PostgresCheckInRepo)(nil)
}

// コンストラクタがnil DBでもインスタンスを返すことを検証
func TestNewPostgresRepos_Initialize(t *testing.T) {
	if NewPostgresProfileRepo(nil) == nil {
		t.Error("expected non-nil profile repo")
	}
	if NewPostgresIdentityRepo(nil) == nil {
		t.Error("expected non-nil identity repo")
	}
	if NewPostgresLoginSessionRepo(nil) == nil {
		t.Error("expected non-nil login session repo")
	}
	if NewPostgresCoachingSessionRepo(nil) == nil {
		t.Error("expected non-nil coaching session repo")
	}
	if NewPostgresCommitmentRepo(nil) == nil {
		t.Error("expected non-nil commitment repo")
	}
	if NewPostgresCheckInRepo(nil) == nil {
		t.Error("expected non-nil check-in repo")
	}
}
