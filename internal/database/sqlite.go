package database

import (
	"database/sql"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// sqliteDriverName is a go-sqlite3 driver whose LOWER and UPPER fold every
// Unicode letter. The built-in versions only fold ASCII.
const sqliteDriverName = "sqlite3_unicode"

func init() {
	sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			if err := conn.RegisterFunc("lower", foldText(strings.ToLower), true); err != nil {
				return err
			}
			return conn.RegisterFunc("upper", foldText(strings.ToUpper), true)
		},
	})
}

// foldText applies fold to TEXT and BLOB values; NULL and numbers pass through.
func foldText(fold func(string) string) func(any) any {
	return func(v any) any {
		switch s := v.(type) {
		case string:
			return fold(s)
		case []byte:
			return fold(string(s))
		default:
			return v
		}
	}
}
