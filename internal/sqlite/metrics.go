package sqlite

import (
	"context"
	"time"

	"github.com/mesh-intelligence/qatrack/pkg/types"
)

// Test outcome counts per project. LEFT JOINs keep projects that have no
// plans, cases or executions; DISTINCT stops executions from inflating the
// case count.
const selectProjectOutcomes = `SELECT p.id, p.name,
    COUNT(DISTINCT tc.id),
    COALESCE(SUM(CASE WHEN te.result = 'passed' THEN 1 ELSE 0 END), 0),
    COALESCE(SUM(CASE WHEN te.result = 'failed' THEN 1 ELSE 0 END), 0)
FROM projects p
LEFT JOIN test_plans tp ON tp.project_id = p.id
LEFT JOIN test_cases tc ON tc.test_plan_id = tp.id
LEFT JOIN test_executions te ON te.test_case_id = tc.id
GROUP BY p.id, p.name
ORDER BY p.name, p.id`

// Settled defects with the project they belong to.
const selectResolvedDefects = `SELECT tp.project_id, d.created_at, d.resolved_at
FROM defects d
JOIN test_cases tc ON tc.id = d.test_case_id
JOIN test_plans tp ON tp.id = tc.test_plan_id
WHERE d.resolved_at IS NOT NULL`

// Metrics returns one row per project. Both queries run in one transaction,
// so the report reflects a single snapshot or fails as a whole.
func (b *Backend) Metrics(ctx context.Context) ([]types.ProjectMetrics, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrTrackerDetached
	}

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, storageError("computing metrics", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, selectProjectOutcomes)
	if err != nil {
		return nil, storageError("computing metrics", err)
	}
	report := []types.ProjectMetrics{}
	index := make(map[string]int)
	for rows.Next() {
		var m types.ProjectMetrics
		if err := rows.Scan(&m.ProjectID, &m.ProjectName, &m.TotalTests, &m.PassedTests, &m.FailedTests); err != nil {
			rows.Close()
			return nil, storageError("scanning metrics", err)
		}
		m.DefectRate = types.DefectRate(m.FailedTests, m.TotalTests)
		index[m.ProjectID] = len(report)
		report = append(report, m)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, storageError("computing metrics", err)
	}
	rows.Close()

	days, err := resolutionDays(ctx, tx)
	if err != nil {
		return nil, err
	}
	for projectID, samples := range days {
		i, ok := index[projectID]
		if !ok {
			continue
		}
		var sum float64
		for _, d := range samples {
			sum += d
		}
		report[i].AverageResolutionTime = types.Round2(sum / float64(len(samples)))
	}

	if err := tx.Commit(); err != nil {
		return nil, storageError("computing metrics", err)
	}
	return report, nil
}

// resolutionDays collects, per project, the days each settled defect took
// from creation to resolution.
func resolutionDays(ctx context.Context, q querier) (map[string][]float64, error) {
	rows, err := q.QueryContext(ctx, selectResolvedDefects)
	if err != nil {
		return nil, storageError("reading defect resolution", err)
	}
	defer rows.Close()

	days := make(map[string][]float64)
	for rows.Next() {
		var (
			projectID string
			created   time.Time
			resolved  *time.Time
		)
		if err := rows.Scan(&projectID, textTime{&created}, nullTime{&resolved}); err != nil {
			return nil, storageError("scanning defect resolution", err)
		}
		if resolved == nil {
			continue
		}
		days[projectID] = append(days[projectID], resolved.Sub(created).Hours()/24)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("reading defect resolution", err)
	}
	return days, nil
}
