package types

// Test case statuses.
const (
	TestCasePending = "pending"
	TestCasePassed  = "passed"
	TestCaseFailed  = "failed"
)

var validTestCaseStatuses = map[string]bool{
	TestCasePending: true,
	TestCasePassed:  true,
	TestCaseFailed:  true,
}

// TestCase is a single check within a test plan.
type TestCase struct {
	ID          string `json:"id"`
	TestPlanID  string `json:"test_plan_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func (c *TestCase) Validate() error {
	v := newValidator("test_case")
	v.require("test_plan_id", c.TestPlanID)
	v.require("name", c.Name)
	v.require("status", c.Status)
	v.oneOf("status", c.Status, validTestCaseStatuses)
	return v.err()
}
