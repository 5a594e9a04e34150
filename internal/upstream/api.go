package upstream

// API aggregates every resource client behind the one shared transport,
// cache and invalidator. Handlers receive this, never a bare Client.
type API struct {
	Users        *UsersAPI
	Policies     *PoliciesAPI
	Applications *ApplicationsAPI
	Agents       *AgentsAPI
	Claims       *ClaimsAPI
	Orders       *OrdersAPI
	Blogs        *BlogsAPI
	Reviews      *ReviewsAPI
	Payments     *PaymentsAPI
	Cart         *CartAPI
}

// NewAPI wires the resource clients. The invalidator must already hold the
// role resolver so role updates drop both caches.
func NewAPI(c *Client, q *QueryCache, inv *Invalidator) *API {
	return &API{
		Users:        &UsersAPI{c: c, q: q, inv: inv},
		Policies:     &PoliciesAPI{c: c, q: q, inv: inv},
		Applications: &ApplicationsAPI{c: c, q: q, inv: inv},
		Agents:       &AgentsAPI{c: c, q: q, inv: inv},
		Claims:       &ClaimsAPI{c: c, q: q, inv: inv},
		Orders:       &OrdersAPI{c: c, q: q, inv: inv},
		Blogs:        &BlogsAPI{c: c, q: q, inv: inv},
		Reviews:      &ReviewsAPI{c: c, q: q, inv: inv},
		Payments:     &PaymentsAPI{c: c, q: q, inv: inv},
		Cart:         &CartAPI{c: c, q: q, inv: inv},
	}
}
