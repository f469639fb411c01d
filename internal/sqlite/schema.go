package sqlite

// Schema DDL. The statements are portable between SQLite and Postgres:
// TEXT columns, CHECK constraints for enumerations, and foreign keys without
// cascade so deleting a parent with children fails in storage.
const (
	createProjects = `CREATE TABLE IF NOT EXISTS projects (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    start_date TEXT NOT NULL DEFAULT '',
    end_date TEXT NOT NULL DEFAULT ''
)`

	createTestPlans = `CREATE TABLE IF NOT EXISTS test_plans (
    id TEXT PRIMARY KEY,
    project_id TEXT NOT NULL REFERENCES projects(id),
    name TEXT NOT NULL,
    description TEXT NOT NULL,
    start_date TEXT NOT NULL,
    end_date TEXT NOT NULL,
    status TEXT NOT NULL CHECK (status IN ('active', 'inactive')),
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
)`

	createTestCases = `CREATE TABLE IF NOT EXISTS test_cases (
    id TEXT PRIMARY KEY,
    test_plan_id TEXT NOT NULL REFERENCES test_plans(id),
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL CHECK (status IN ('pending', 'passed', 'failed'))
)`

	createTestExecutions = `CREATE TABLE IF NOT EXISTS test_executions (
    id TEXT PRIMARY KEY,
    test_case_id TEXT NOT NULL REFERENCES test_cases(id),
    result TEXT NOT NULL CHECK (result IN ('passed', 'failed')),
    evidence TEXT NOT NULL DEFAULT '',
    comments TEXT NOT NULL DEFAULT '',
    execution_date TEXT NOT NULL
)`

	createDefects = `CREATE TABLE IF NOT EXISTS defects (
    id TEXT PRIMARY KEY,
    test_case_id TEXT NOT NULL REFERENCES test_cases(id),
    description TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'open' CHECK (status IN ('open', 'in progress', 'resolved', 'closed')),
    assigned_to TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    resolved_at TEXT
)`

	createUsers = `CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    password TEXT NOT NULL,
    created_at TEXT NOT NULL
)`
)

// Indexes on foreign key columns; the metrics join walks all of them.
const (
	createTestPlansProjectIndex   = `CREATE INDEX IF NOT EXISTS idx_test_plans_project_id ON test_plans(project_id)`
	createTestCasesPlanIndex      = `CREATE INDEX IF NOT EXISTS idx_test_cases_test_plan_id ON test_cases(test_plan_id)`
	createTestExecutionsCaseIndex = `CREATE INDEX IF NOT EXISTS idx_test_executions_test_case_id ON test_executions(test_case_id)`
	createDefectsCaseIndex        = `CREATE INDEX IF NOT EXISTS idx_defects_test_case_id ON defects(test_case_id)`
)

// schemaStatements lists the DDL in execution order, parents first.
var schemaStatements = []string{
	createProjects,
	createTestPlans,
	createTestCases,
	createTestExecutions,
	createDefects,
	createUsers,
	createTestPlansProjectIndex,
	createTestCasesPlanIndex,
	createTestExecutionsCaseIndex,
	createDefectsCaseIndex,
}
