package types

// Project is the root entity. Test plans hang off a project.
type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

// Validate checks the required name and the optional date fields.
func (p *Project) Validate() error {
	v := newValidator("project")
	v.require("name", p.Name)
	v.date("start_date", p.StartDate)
	v.date("end_date", p.EndDate)
	return v.err()
}
