package types

import "time"

// Execution results.
const (
	ResultPassed = "passed"
	ResultFailed = "failed"
)

var validResults = map[string]bool{
	ResultPassed: true,
	ResultFailed: true,
}

// TestExecution records one run of a test case. ExecutionDate is set by the
// server when the record is created and again whenever it is updated.
type TestExecution struct {
	ID            string    `json:"id"`
	TestCaseID    string    `json:"test_case_id"`
	Result        string    `json:"result"`
	Evidence      string    `json:"evidence"`
	Comments      string    `json:"comments"`
	ExecutionDate time.Time `json:"execution_date"`
}

func (e *TestExecution) Validate() error {
	v := newValidator("test_execution")
	v.require("test_case_id", e.TestCaseID)
	v.require("result", e.Result)
	v.oneOf("result", e.Result, validResults)
	return v.err()
}
