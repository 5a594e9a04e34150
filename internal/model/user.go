package model

import "time"

// Identity is the authenticated-user record sourced from the auth provider,
// not from the backend. It is what the session cookie carries and what
// guards consult for the "is anyone signed in" question.
type Identity struct {
	Email          string    `json:"email"`
	DisplayName    string    `json:"displayName"`
	PhotoURL       string    `json:"photoURL"`
	LastSignInTime time.Time `json:"lastSignInTime"`
}

// User mirrors the backend's user record as served by GET /users. The Role
// field here is display data for the admin dashboard; authorization always
// goes through the role resolver, never through this copy.
type User struct {
	ID        string    `json:"_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	PhotoURL  string    `json:"photoURL"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// AgentRecord is an agent-assignment row (dataForAgents): which agent is
// responsible for which customer application.
type AgentRecord struct {
	ID            string    `json:"_id"`
	AgentEmail    string    `json:"agentEmail"`
	CustomerEmail string    `json:"customerEmail"`
	ApplicationID string    `json:"applicationId"`
	Status        string    `json:"status"`
	AssignedAt    time.Time `json:"assignedAt"`
}
