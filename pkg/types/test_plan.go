package types

import "time"

// Test plan statuses.
const (
	TestPlanActive   = "active"
	TestPlanInactive = "inactive"
)

var validTestPlanStatuses = map[string]bool{
	TestPlanActive:   true,
	TestPlanInactive: true,
}

// TestPlan groups test cases under a project. CreatedAt and UpdatedAt are
// owned by the server; values sent by clients are overwritten.
type TestPlan struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Validate checks the required set and the status enumeration.
func (p *TestPlan) Validate() error {
	v := newValidator("test_plan")
	v.require("project_id", p.ProjectID)
	v.require("name", p.Name)
	v.require("description", p.Description)
	v.require("start_date", p.StartDate)
	v.require("end_date", p.EndDate)
	v.require("status", p.Status)
	v.date("start_date", p.StartDate)
	v.date("end_date", p.EndDate)
	v.oneOf("status", p.Status, validTestPlanStatuses)
	return v.err()
}
