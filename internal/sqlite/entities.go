package sqlite

import (
	"time"

	"github.com/mesh-intelligence/qatrack/pkg/types"
)

var projects = &entity[types.Project]{
	name:    types.ProjectsTable,
	columns: []string{"name", "description", "start_date", "end_date"},
	id:      func(p *types.Project) *string { return &p.ID },
	values: func(p *types.Project) []any {
		return []any{p.Name, p.Description, p.StartDate, p.EndDate}
	},
	targets: func(p *types.Project) []any {
		return []any{&p.Name, &p.Description, &p.StartDate, &p.EndDate}
	},
	validate: (*types.Project).Validate,
}

// Test plans keep created_at from the stored row and never move updated_at
// backwards.
var testPlans = &entity[types.TestPlan]{
	name:    types.TestPlansTable,
	columns: []string{"project_id", "name", "description", "start_date", "end_date", "status", "created_at", "updated_at"},
	id:      func(p *types.TestPlan) *string { return &p.ID },
	values: func(p *types.TestPlan) []any {
		return []any{p.ProjectID, p.Name, p.Description, p.StartDate, p.EndDate, p.Status,
			textTime{&p.CreatedAt}, textTime{&p.UpdatedAt}}
	},
	targets: func(p *types.TestPlan) []any {
		return []any{&p.ProjectID, &p.Name, &p.Description, &p.StartDate, &p.EndDate, &p.Status,
			textTime{&p.CreatedAt}, textTime{&p.UpdatedAt}}
	},
	validate: (*types.TestPlan).Validate,
	stamp: func(p *types.TestPlan, at time.Time, creating bool) {
		if creating {
			p.CreatedAt = at
		}
		p.UpdatedAt = at
	},
	merge: func(prev, next *types.TestPlan) {
		next.CreatedAt = prev.CreatedAt
		if next.UpdatedAt.Before(prev.UpdatedAt) {
			next.UpdatedAt = prev.UpdatedAt
		}
	},
}

var testCases = &entity[types.TestCase]{
	name:    types.TestCasesTable,
	columns: []string{"test_plan_id", "name", "description", "status"},
	id:      func(c *types.TestCase) *string { return &c.ID },
	values: func(c *types.TestCase) []any {
		return []any{c.TestPlanID, c.Name, c.Description, c.Status}
	},
	targets: func(c *types.TestCase) []any {
		return []any{&c.TestPlanID, &c.Name, &c.Description, &c.Status}
	},
	validate: (*types.TestCase).Validate,
}

// Executions are re-dated on every write.
var testExecutions = &entity[types.TestExecution]{
	name:    types.TestExecutionsTable,
	columns: []string{"test_case_id", "result", "evidence", "comments", "execution_date"},
	id:      func(e *types.TestExecution) *string { return &e.ID },
	values: func(e *types.TestExecution) []any {
		return []any{e.TestCaseID, e.Result, e.Evidence, e.Comments, textTime{&e.ExecutionDate}}
	},
	targets: func(e *types.TestExecution) []any {
		return []any{&e.TestCaseID, &e.Result, &e.Evidence, &e.Comments, textTime{&e.ExecutionDate}}
	},
	validate: (*types.TestExecution).Validate,
	stamp: func(e *types.TestExecution, at time.Time, _ bool) {
		e.ExecutionDate = at
	},
}

// Defects record when they were raised and when they were settled. A defect
// that stays resolved across updates keeps its original resolved_at.
var defects = &entity[types.Defect]{
	name:    types.DefectsTable,
	columns: []string{"test_case_id", "description", "status", "assigned_to", "created_at", "resolved_at"},
	id:      func(d *types.Defect) *string { return &d.ID },
	values: func(d *types.Defect) []any {
		return []any{d.TestCaseID, d.Description, d.Status, d.AssignedTo,
			textTime{&d.CreatedAt}, nullTime{&d.ResolvedAt}}
	},
	targets: func(d *types.Defect) []any {
		return []any{&d.TestCaseID, &d.Description, &d.Status, &d.AssignedTo,
			textTime{&d.CreatedAt}, nullTime{&d.ResolvedAt}}
	},
	defaults: (*types.Defect).ApplyDefaults,
	validate: (*types.Defect).Validate,
	stamp: func(d *types.Defect, at time.Time, creating bool) {
		if creating {
			d.CreatedAt = at
		}
		d.ResolvedAt = nil
		if d.Settled() {
			d.ResolvedAt = &at
		}
	},
	merge: func(prev, next *types.Defect) {
		next.CreatedAt = prev.CreatedAt
		if next.Settled() && prev.Settled() && prev.ResolvedAt != nil {
			next.ResolvedAt = prev.ResolvedAt
		}
	},
}
