package types

import "fmt"

// Standard table names for Tracker.GetTable.
const (
	ProjectsTable       = "projects"
	TestPlansTable      = "test_plans"
	TestCasesTable      = "test_cases"
	TestExecutionsTable = "test_executions"
	DefectsTable        = "defects"
)

// StandardTableNames lists all standard table names in dependency order,
// parents before children.
var StandardTableNames = []string{
	ProjectsTable,
	TestPlansTable,
	TestCasesTable,
	TestExecutionsTable,
	DefectsTable,
}

// NewEntity returns a pointer to a zero value of the entity stored in the
// named table, ready for JSON decoding.
func NewEntity(table string) (any, error) {
	switch table {
	case ProjectsTable:
		return &Project{}, nil
	case TestPlansTable:
		return &TestPlan{}, nil
	case TestCasesTable:
		return &TestCase{}, nil
	case TestExecutionsTable:
		return &TestExecution{}, nil
	case DefectsTable:
		return &Defect{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}
}
