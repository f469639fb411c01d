package types

import "math"

// ProjectMetrics is one row of the quality report.
type ProjectMetrics struct {
	ProjectID             string  `json:"project_id"`
	ProjectName           string  `json:"project_name"`
	TotalTests            int64   `json:"total_tests"`
	PassedTests           int64   `json:"passed_tests"`
	FailedTests           int64   `json:"failed_tests"`
	DefectRate            float64 `json:"defect_rate"`
	AverageResolutionTime float64 `json:"average_resolution_time"`
}

// DefectRate returns failed executions per hundred test cases, rounded to
// two decimals. A project without test cases has a rate of 0.
func DefectRate(failed, total int64) float64 {
	if total == 0 {
		return 0
	}
	return Round2(float64(failed) / float64(total) * 100)
}

// Round2 rounds x to two decimal places.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
