package models

// Job represents a structured job posting as returned by the parse collaborator
type Job struct {
	Title            string   `json:"title"`
	JobURL           string   `json:"job_url"`
	CompanyName      string   `json:"company_name"`
	Location         string   `json:"location"`
	Salary           Salary   `json:"salary"`
	Requirements     []string `json:"requirements"`
	Description      string   `json:"description"`
	Responsibilities []string `json:"responsibilities"`
	Benefits         []string `json:"benefits"`
	Confidence       float64  `json:"confidence"`
}

// Salary represents the salary information for a job posting
type Salary struct {
	Currency string `json:"currency"`
	Max      int    `json:"max"`
	Min      int    `json:"min"`
}
