package types

import "time"

// Defect statuses. A defect starts open; resolved and closed count as
// settled for resolution-time reporting.
const (
	DefectOpen       = "open"
	DefectInProgress = "in progress"
	DefectResolved   = "resolved"
	DefectClosed     = "closed"
)

var validDefectStatuses = map[string]bool{
	DefectOpen:       true,
	DefectInProgress: true,
	DefectResolved:   true,
	DefectClosed:     true,
}

// Defect is a problem logged against a test case.
type Defect struct {
	ID          string     `json:"id"`
	TestCaseID  string     `json:"test_case_id"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	AssignedTo  string     `json:"assigned_to"`
	CreatedAt   time.Time  `json:"created_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}

// ApplyDefaults fills in the status of a defect submitted without one.
func (d *Defect) ApplyDefaults() {
	if d.Status == "" {
		d.Status = DefectOpen
	}
}

func (d *Defect) Validate() error {
	v := newValidator("defect")
	v.require("test_case_id", d.TestCaseID)
	v.require("description", d.Description)
	v.oneOf("status", d.Status, validDefectStatuses)
	return v.err()
}

// Settled reports whether the status counts as resolved.
func (d *Defect) Settled() bool {
	return d.Status == DefectResolved || d.Status == DefectClosed
}
