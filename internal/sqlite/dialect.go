package sqlite

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lib/pq"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mesh-intelligence/qatrack/pkg/types"
)

// dbFileName is the SQLite database file created in the data directory.
const dbFileName = "qatrack.db"

// dialect captures what differs between the SQLite and Postgres drivers.
// Queries are written with ? placeholders and rebound per dialect.
type dialect struct {
	name       string
	driver     string
	singleConn bool
	dollar     bool
}

var (
	sqliteDialect   = dialect{name: types.BackendSQLite, driver: "sqlite", singleConn: true}
	postgresDialect = dialect{name: types.BackendPostgres, driver: "postgres", dollar: true}
)

func dialectFor(backend string) (dialect, error) {
	switch backend {
	case types.BackendSQLite:
		return sqliteDialect, nil
	case types.BackendPostgres:
		return postgresDialect, nil
	default:
		return dialect{}, types.ErrBackendUnknown
	}
}

// dsn returns the connection string for config.
func (d dialect) dsn(config types.Config) string {
	if d.name == types.BackendPostgres {
		return config.DSN
	}
	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	return "file:" + filepath.Join(dataDir, dbFileName) + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// rebind rewrites ? placeholders into the dialect's native form.
func (d dialect) rebind(query string) string {
	if !d.dollar {
		return query
	}
	var sb strings.Builder
	sb.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// isUniqueViolation reports whether err came from a UNIQUE or PRIMARY KEY
// constraint in either driver.
func isUniqueViolation(err error) bool {
	var se *msqlite.Error
	if errors.As(err, &se) {
		code := se.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	var pe *pq.Error
	if errors.As(err, &pe) {
		return pe.Code == "23505"
	}
	return false
}
