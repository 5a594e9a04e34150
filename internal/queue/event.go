// Package queue defines message payloads exchanged over the message broker.
package queue

// OrderPlacedEvent is published when checkout completes. It carries enough
// for downstream consumers to notify or run analytics without calling the
// upstream API.
type OrderPlacedEvent struct {
	EventID   string   `json:"event_id"`
	OrderID   string   `json:"order_id"`
	Email     string   `json:"email"`
	Items     []string `json:"items"`
	Total     float64  `json:"total"`
	PlacedAt  string   `json:"placed_at"`
	PaymentID string   `json:"payment_id,omitempty"`
}

// ClaimSubmittedEvent is published when a customer files a claim, so agent
// notification can happen off the request path.
type ClaimSubmittedEvent struct {
	EventID     string `json:"event_id"`
	ClaimID     string `json:"claim_id,omitempty"`
	Email       string `json:"email"`
	PolicyTitle string `json:"policy_title"`
	AgentEmail  string `json:"agent_email,omitempty"`
	SubmittedAt string `json:"submitted_at"`
}

// RoleChangedEvent is published when an admin promotes or demotes a user.
type RoleChangedEvent struct {
	EventID   string `json:"event_id"`
	Email     string `json:"email"`
	NewRole   string `json:"new_role"`
	ChangedBy string `json:"changed_by"`
	ChangedAt string `json:"changed_at"`
}
