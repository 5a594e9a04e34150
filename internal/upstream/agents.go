package upstream

import (
	"context"
	"net/url"

	"github.com/styleshoehub/storefront-gateway/internal/model"
)

// AgentsAPI covers the agent directory and agent-customer assignments.
type AgentsAPI struct {
	c   *Client
	q   *QueryCache
	inv *Invalidator
}

// List returns the public agent directory, cached.
func (a *AgentsAPI) List(ctx context.Context) ([]model.User, error) {
	return GetJSON[[]model.User](ctx, a.q, K(ResAgents, "list"), func(ctx context.Context) ([]byte, error) {
		return a.c.GetRaw(ctx, "/agents")
	})
}

// Assign records an agent-customer-application assignment
// (POST /dataForAgents).
func (a *AgentsAPI) Assign(ctx context.Context, rec model.AgentRecord) error {
	if err := a.c.Post(ctx, "/dataForAgents", rec, nil); err != nil {
		return err
	}
	a.inv.MutationDone(ctx, MutAgentAssign)
	return nil
}

// AssignedData returns everything routed to one agent
// (GET /get-all-data-for-agents/{email}), cached per agent email.
func (a *AgentsAPI) AssignedData(ctx context.Context, agentEmail string) ([]model.AgentRecord, error) {
	return GetJSON[[]model.AgentRecord](ctx, a.q, K(ResAgents, "assigned", agentEmail), func(ctx context.Context) ([]byte, error) {
		return a.c.GetRaw(ctx, "/get-all-data-for-agents/"+url.PathEscape(agentEmail))
	})
}

// UpdateAssignment patches an assignment row (PATCH /dataForAgents/{id}).
func (a *AgentsAPI) UpdateAssignment(ctx context.Context, id, status string) error {
	body := map[string]string{"status": status}
	if err := a.c.Patch(ctx, "/dataForAgents/"+url.PathEscape(id), body, nil); err != nil {
		return err
	}
	a.inv.MutationDone(ctx, MutAgentAssign)
	return nil
}
