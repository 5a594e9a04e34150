package model

import "time"

// Policy is a catalog entry: a shoe product on the storefront side, an
// insurance policy on the dashboard side. The backend owns the record; the
// gateway only reads, caches and forwards it.
type Policy struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Price       float64   `json:"price"`
	Sizes       []string  `json:"sizes,omitempty"`
	Colors      []string  `json:"colors,omitempty"`
	CoverageMax float64   `json:"coverageMax,omitempty"`
	TermYears   int       `json:"termYears,omitempty"`
	Popularity  int       `json:"popularity"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Application is a customer's enrollment request against a policy,
// progressing Pending -> Approved/Rejected, optionally assigned to an agent.
type Application struct {
	ID          string    `json:"_id"`
	PolicyID    string    `json:"policyId"`
	PolicyTitle string    `json:"policyTitle"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	Status      string    `json:"status"`
	AgentEmail  string    `json:"agentEmail,omitempty"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// Application status values as the backend stores them.
const (
	ApplicationPending  = "Pending"
	ApplicationApproved = "Approved"
	ApplicationRejected = "Rejected"
)

// Claim is a payout/service request against an approved policy, reviewed by
// the assigned agent. DocumentURL is required at submission time.
type Claim struct {
	ID          string    `json:"_id"`
	PolicyID    string    `json:"policyId"`
	PolicyTitle string    `json:"policyTitle"`
	Email       string    `json:"email"`
	AgentEmail  string    `json:"agentEmail,omitempty"`
	Reason      string    `json:"reason"`
	DocumentURL string    `json:"documentUrl"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submittedAt"`
}
