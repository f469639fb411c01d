package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/qatrack/pkg/types"
)

func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	t.Cleanup(func() { b.Detach() })
	return b
}

func mustCreate[T any](t *testing.T, b *Backend, tableName string, e *T) *T {
	t.Helper()
	tbl, err := b.GetTable(tableName)
	require.NoError(t, err)
	got, err := tbl.Create(context.Background(), e)
	require.NoError(t, err)
	return got.(*T)
}

// hierarchy is one project with a plan and a case beneath it.
type hierarchy struct {
	project *types.Project
	plan    *types.TestPlan
	tcase   *types.TestCase
}

func seedHierarchy(t *testing.T, b *Backend, projectName string) hierarchy {
	t.Helper()
	p := mustCreate(t, b, types.ProjectsTable, &types.Project{Name: projectName})
	tp := mustCreate(t, b, types.TestPlansTable, &types.TestPlan{
		ProjectID:   p.ID,
		Name:        projectName + " regression",
		Description: "full regression pass",
		StartDate:   "2024-03-01",
		EndDate:     "2024-03-31",
		Status:      types.TestPlanActive,
	})
	tc := mustCreate(t, b, types.TestCasesTable, &types.TestCase{
		TestPlanID: tp.ID,
		Name:       "login succeeds",
		Status:     types.TestCasePending,
	})
	return hierarchy{project: p, plan: tp, tcase: tc}
}
