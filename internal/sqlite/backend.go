// Package sqlite implements the relational storage backend for the tracker.
// SQLite (modernc.org/sqlite) is the default engine; the same schema and
// queries run against Postgres through lib/pq when the config selects it.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/qatrack/pkg/types"
)

// Backend implements types.Tracker over database/sql.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	dialect  dialect
	db       *sql.DB
	tables   map[string]types.Table
}

var _ types.Tracker = (*Backend)(nil)

// NewBackend creates a new backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{
		tables: make(map[string]types.Table),
	}
}

// GetTable returns the Table for the given name.
// Returns ErrTableNotFound if the table name is not recognized.
// Returns ErrTrackerDetached if the backend is not attached.
func (b *Backend) GetTable(name string) (types.Table, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrTrackerDetached
	}

	t, ok := b.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrTableNotFound, name)
	}
	return t, nil
}

// Attach opens the database described by config and creates the schema
// when it is missing. Existing data is kept.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}
	d, err := dialectFor(config.Backend)
	if err != nil {
		return err
	}

	if d.name == types.BackendSQLite && config.DataDir != "" {
		if err := os.MkdirAll(config.DataDir, 0o755); err != nil {
			return fmt.Errorf("creating data dir: %w", err)
		}
	}

	db, err := sql.Open(d.driver, d.dsn(config))
	if err != nil {
		return fmt.Errorf("opening %s: %w", d.name, err)
	}
	if d.singleConn {
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("connecting to %s: %w: %w", d.name, types.ErrStorage, err)
	}

	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return fmt.Errorf("creating schema: %w: %w", types.ErrStorage, err)
		}
	}

	b.db = db
	b.config = config
	b.dialect = d
	b.attached = true

	b.tables[types.ProjectsTable] = &table[types.Project]{backend: b, desc: projects}
	b.tables[types.TestPlansTable] = &table[types.TestPlan]{backend: b, desc: testPlans}
	b.tables[types.TestCasesTable] = &table[types.TestCase]{backend: b, desc: testCases}
	b.tables[types.TestExecutionsTable] = &table[types.TestExecution]{backend: b, desc: testExecutions}
	b.tables[types.DefectsTable] = &table[types.Defect]{backend: b, desc: defects}

	return nil
}

// Detach closes the database. Idempotent: multiple calls succeed.
// In-flight operations finish before the handle is released.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	b.attached = false
	b.tables = make(map[string]types.Table)
	db := b.db
	b.db = nil
	return db.Close()
}
