// Package database はデータベース接続とマイグレーション管理を提供する。
//
// マイグレーションはバイナリに埋め込まれ、profiles / identities /
// login_sessions / coaching_sessions / coaching_commitments / check_ins
// のスキーマを管理する。
package database

import (
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// migrationsDir は埋め込みFS内のマイグレーションファイルの置き場所。
const migrationsDir = "migrations"

// NewMigrator は埋め込みマイグレーションを適用するmigrateインスタンスを
// 生成する。databaseURLはPostgreSQLの接続URL。
func NewMigrator(databaseURL string) (*migrate.Migrate, error) {
	source, err := iofs.New(migrationsFS, migrationsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}

	return m, nil
}

// RunMigrations は未適用のマイグレーションをすべて適用する。
// migrateコマンドとテストセットアップから呼ばれ、
// すでに最新の場合はエラーなしで返る。
func RunMigrations(databaseURL string) error {
	m, err := NewMigrator(databaseURL)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
