package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/qatrack/pkg/types"
)

func TestTable_ProjectLifecycle(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)
	tbl, err := b.GetTable(types.ProjectsTable)
	require.NoError(t, err)

	created, err := tbl.Create(ctx, &types.Project{Name: "Apollo", StartDate: "2024-01-01"})
	require.NoError(t, err)
	p := created.(*types.Project)
	assert.NotEmpty(t, p.ID)

	got, err := tbl.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	updated, err := tbl.Update(ctx, p.ID, &types.Project{Name: "Apollo 11", Description: "moon landing"})
	require.NoError(t, err)
	assert.Equal(t, p.ID, updated.(*types.Project).ID)

	got, err = tbl.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Apollo 11", got.(*types.Project).Name)
	assert.Empty(t, got.(*types.Project).StartDate, "update is a full replace")

	require.NoError(t, tbl.Delete(ctx, p.ID))
	_, err = tbl.Get(ctx, p.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)

	assert.NoError(t, tbl.Delete(ctx, p.ID), "deleting an absent row succeeds")
}

func TestTable_List(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)
	tbl, err := b.GetTable(types.ProjectsTable)
	require.NoError(t, err)

	all, err := tbl.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)

	names := map[string]bool{"A": true, "B": true, "C": true}
	for n := range names {
		mustCreate(t, b, types.ProjectsTable, &types.Project{Name: n})
	}
	all, err = tbl.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for _, e := range all {
		assert.True(t, names[e.(*types.Project).Name])
	}
}

func TestTable_CreateValidation(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)
	h := seedHierarchy(t, b, "Gemini")

	tests := []struct {
		name  string
		table string
		data  any
	}{
		{"project without name", types.ProjectsTable, &types.Project{}},
		{"plan without dates", types.TestPlansTable, &types.TestPlan{ProjectID: h.project.ID, Name: "x", Description: "y", Status: types.TestPlanActive}},
		{"case with unknown status", types.TestCasesTable, &types.TestCase{TestPlanID: h.plan.ID, Name: "x", Status: "skipped"}},
		{"execution with unknown result", types.TestExecutionsTable, &types.TestExecution{TestCaseID: h.tcase.ID, Result: "flaky"}},
		{"defect without description", types.DefectsTable, &types.Defect{TestCaseID: h.tcase.ID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := b.GetTable(tt.table)
			require.NoError(t, err)
			before, err := tbl.List(ctx)
			require.NoError(t, err)

			_, err = tbl.Create(ctx, tt.data)
			assert.ErrorIs(t, err, types.ErrValidation)

			after, err := tbl.List(ctx)
			require.NoError(t, err)
			assert.Len(t, after, len(before), "nothing persisted")
		})
	}
}

func TestTable_CreateWrongType(t *testing.T) {
	b := newTestBackend(t)
	tbl, err := b.GetTable(types.ProjectsTable)
	require.NoError(t, err)

	_, err = tbl.Create(context.Background(), &types.TestCase{Name: "x"})
	assert.ErrorIs(t, err, types.ErrInvalidData)

	_, err = tbl.Create(context.Background(), types.Project{Name: "by value"})
	assert.ErrorIs(t, err, types.ErrInvalidData)
}

func TestTable_ForeignKeys(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)

	plans, err := b.GetTable(types.TestPlansTable)
	require.NoError(t, err)
	_, err = plans.Create(ctx, &types.TestPlan{
		ProjectID: "no-such-project", Name: "orphan", Description: "d",
		StartDate: "2024-01-01", EndDate: "2024-01-02", Status: types.TestPlanActive,
	})
	assert.ErrorIs(t, err, types.ErrStorage)

	h := seedHierarchy(t, b, "Mercury")
	projects, err := b.GetTable(types.ProjectsTable)
	require.NoError(t, err)
	err = projects.Delete(ctx, h.project.ID)
	assert.ErrorIs(t, err, types.ErrStorage, "parent with children cannot be deleted")

	_, err = projects.Get(ctx, h.project.ID)
	assert.NoError(t, err, "parent still present")
}

func TestTable_UpdateMissingIsNoop(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)
	tbl, err := b.GetTable(types.ProjectsTable)
	require.NoError(t, err)

	got, err := tbl.Update(ctx, "missing-id", &types.Project{Name: "ghost"})
	require.NoError(t, err)
	assert.Equal(t, "ghost", got.(*types.Project).Name)

	all, err := tbl.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestTable_UpdateMissingEchoIsStamped(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)
	tbl, err := b.GetTable(types.TestPlansTable)
	require.NoError(t, err)

	got, err := tbl.Update(ctx, "nope", &types.TestPlan{
		ProjectID: "p", Name: "ghost", Description: "d",
		StartDate: "2024-01-01", EndDate: "2024-01-02", Status: types.TestPlanActive,
	})
	require.NoError(t, err)
	plan := got.(*types.TestPlan)
	assert.Equal(t, "nope", plan.ID)
	assert.False(t, plan.CreatedAt.IsZero())
	assert.Equal(t, plan.CreatedAt, plan.UpdatedAt)

	all, err := tbl.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestTable_UpdateValidates(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)
	h := seedHierarchy(t, b, "Skylab")
	tbl, err := b.GetTable(types.TestCasesTable)
	require.NoError(t, err)

	_, err = tbl.Update(ctx, h.tcase.ID, &types.TestCase{TestPlanID: h.plan.ID, Name: "x", Status: "done"})
	assert.ErrorIs(t, err, types.ErrValidation)

	got, err := tbl.Get(ctx, h.tcase.ID)
	require.NoError(t, err)
	assert.Equal(t, types.TestCasePending, got.(*types.TestCase).Status)
}

func TestTable_TestPlanTimestamps(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)
	h := seedHierarchy(t, b, "Voyager")
	tbl, err := b.GetTable(types.TestPlansTable)
	require.NoError(t, err)

	assert.False(t, h.plan.CreatedAt.IsZero())
	assert.Equal(t, h.plan.CreatedAt, h.plan.UpdatedAt)

	forged := time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)
	next := *h.plan
	next.Status = types.TestPlanInactive
	next.CreatedAt = forged
	next.UpdatedAt = forged
	_, err = tbl.Update(ctx, h.plan.ID, &next)
	require.NoError(t, err)

	got, err := tbl.Get(ctx, h.plan.ID)
	require.NoError(t, err)
	plan := got.(*types.TestPlan)
	assert.Equal(t, types.TestPlanInactive, plan.Status)
	assert.True(t, plan.CreatedAt.Equal(h.plan.CreatedAt), "created_at is kept")
	assert.False(t, plan.UpdatedAt.Before(h.plan.UpdatedAt), "updated_at never moves backwards")
}

func TestTable_ExecutionDate(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)
	h := seedHierarchy(t, b, "Pioneer")

	forged := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	e := mustCreate(t, b, types.TestExecutionsTable, &types.TestExecution{
		TestCaseID: h.tcase.ID, Result: types.ResultFailed, Evidence: "screenshot.png", ExecutionDate: forged,
	})
	assert.True(t, e.ExecutionDate.After(forged), "client execution_date is ignored")

	tbl, err := b.GetTable(types.TestExecutionsTable)
	require.NoError(t, err)
	updated, err := tbl.Update(ctx, e.ID, &types.TestExecution{TestCaseID: h.tcase.ID, Result: types.ResultPassed})
	require.NoError(t, err)
	assert.False(t, updated.(*types.TestExecution).ExecutionDate.Before(e.ExecutionDate))

	got, err := tbl.Get(ctx, e.ID)
	require.NoError(t, err)
	exec := got.(*types.TestExecution)
	assert.Equal(t, types.ResultPassed, exec.Result)
	assert.Empty(t, exec.Evidence)
}

func TestTable_DefectResolution(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)
	h := seedHierarchy(t, b, "Viking")
	tbl, err := b.GetTable(types.DefectsTable)
	require.NoError(t, err)

	d := mustCreate(t, b, types.DefectsTable, &types.Defect{TestCaseID: h.tcase.ID, Description: "login button dead"})
	assert.Equal(t, types.DefectOpen, d.Status)
	assert.Nil(t, d.ResolvedAt)
	assert.False(t, d.CreatedAt.IsZero())

	resolved := *d
	resolved.Status = types.DefectResolved
	_, err = tbl.Update(ctx, d.ID, &resolved)
	require.NoError(t, err)

	got, err := tbl.Get(ctx, d.ID)
	require.NoError(t, err)
	first := got.(*types.Defect)
	require.NotNil(t, first.ResolvedAt)
	assert.True(t, first.CreatedAt.Equal(d.CreatedAt))

	closed := *first
	closed.Status = types.DefectClosed
	_, err = tbl.Update(ctx, d.ID, &closed)
	require.NoError(t, err)
	got, err = tbl.Get(ctx, d.ID)
	require.NoError(t, err)
	require.NotNil(t, got.(*types.Defect).ResolvedAt)
	assert.True(t, got.(*types.Defect).ResolvedAt.Equal(*first.ResolvedAt), "resolved_at is kept while settled")

	reopened := *first
	reopened.Status = types.DefectInProgress
	_, err = tbl.Update(ctx, d.ID, &reopened)
	require.NoError(t, err)
	got, err = tbl.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Nil(t, got.(*types.Defect).ResolvedAt, "reopening clears resolved_at")
}

func TestTable_DefectUpdateDefaultsStatus(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)
	h := seedHierarchy(t, b, "Ranger")
	tbl, err := b.GetTable(types.DefectsTable)
	require.NoError(t, err)

	d := mustCreate(t, b, types.DefectsTable, &types.Defect{TestCaseID: h.tcase.ID, Description: "typo", Status: types.DefectInProgress})
	_, err = tbl.Update(ctx, d.ID, &types.Defect{TestCaseID: h.tcase.ID, Description: "typo in footer"})
	require.NoError(t, err)

	got, err := tbl.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, types.DefectOpen, got.(*types.Defect).Status)
}
