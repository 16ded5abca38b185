package app

// Command はアプリケーションの起動モードを表す。
type Command string

const (
	// CommandServe はAPIサーバーモードで起動することを示す。
	CommandServe Command = "serve"
	// CommandWorker はワーカーモードで起動することを示す。
	CommandWorker Command = "worker"
	// CommandMigrate はデータベースマイグレーションを実行することを示す。
	CommandMigrate Command = "migrate"
	// CommandHealthcheck はヘルスチェックを実行することを示す。
	// distroless環境でのDockerヘルスチェック用。
	CommandHealthcheck Command = "healthcheck"
	// CommandAdminGrant は指定ユーザーに管理者ロールを付与することを示す。
	CommandAdminGrant Command = "admin grant"
	// CommandAdminDeleteUser は指定ユーザーと関連データを削除することを示す。
	CommandAdminDeleteUser Command = "admin delete-user"
	// CommandAdminVerifyTables は必須テーブルの存在を検証することを示す。
	CommandAdminVerifyTables Command = "admin verify-tables"
)

// ParseCommand はコマンドライン引数からサブコマンドを解析する。
// 引数が空またはサポート外のコマンドの場合はCommandServeを返す。
func ParseCommand(args []string) Command {
	if len(args) == 0 {
		return CommandServe
	}

	switch args[0] {
	case "worker":
		return CommandWorker
	case "serve":
		return CommandServe
	case "migrate":
		return CommandMigrate
	case "healthcheck":
		return CommandHealthcheck
	case "admin":
		return parseAdminCommand(args[1:])
	default:
		return CommandServe
	}
}

// parseAdminCommand は admin サブコマンドの第2引数を解析する。
func parseAdminCommand(args []string) Command {
	if len(args) == 0 {
		return CommandAdminVerifyTables
	}

	switch args[0] {
	case "grant":
		return CommandAdminGrant
	case "delete-user":
		return CommandAdminDeleteUser
	case "verify-tables":
		return CommandAdminVerifyTables
	default:
		return CommandAdminVerifyTables
	}
}
