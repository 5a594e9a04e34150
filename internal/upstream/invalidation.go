package upstream

import "context"

// Resource names used as cache-key roots and invalidation-map entries.
const (
	ResUsers        = "users"
	ResPolicies     = "policies"
	ResApplications = "applications"
	ResAgents       = "agents"
	ResClaims       = "claims"
	ResOrders       = "orders"
	ResFoodOrders   = "foodorders"
	ResBlogs        = "blogs"
	ResReviews      = "reviews"
	ResPayments     = "payments"
	ResCart         = "cart"
)

// Mutation names consulted against the dependency map.
const (
	MutUserCreate       = "user.create"
	MutUserRoleUpdate   = "user.role_update"
	MutUserDelete       = "user.delete"
	MutPolicyWrite      = "policy.write"
	MutApplicationWrite = "application.write"
	MutAgentAssign      = "agent.assign"
	MutClaimWrite       = "claim.write"
	MutOrderWrite       = "order.write"
	MutFoodOrderDelete  = "foodorder.delete"
	MutBlogWrite        = "blog.write"
	MutReviewCreate     = "review.create"
	MutPaymentRecord    = "payment.record"
	MutCartWrite        = "cart.write"
)

// deps is the declarative dependency map: which cached resources a mutation
// makes stale. Every mutation site goes through Invalidator.MutationDone
// instead of enumerating keys itself, so a new call site cannot forget one.
var deps = map[string][]string{
	MutUserCreate:       {ResUsers},
	MutUserRoleUpdate:   {ResUsers},
	MutUserDelete:       {ResUsers},
	MutPolicyWrite:      {ResPolicies},
	MutApplicationWrite: {ResApplications, ResAgents},
	MutAgentAssign:      {ResAgents, ResApplications},
	MutClaimWrite:       {ResClaims},
	MutOrderWrite:       {ResOrders, ResCart},
	MutFoodOrderDelete:  {ResFoodOrders},
	MutBlogWrite:        {ResBlogs},
	MutReviewCreate:     {ResReviews},
	MutPaymentRecord:    {ResPayments, ResOrders},
	MutCartWrite:        {ResCart},
}

// Deps exposes the dependency list for a mutation (read-only; used by
// tests to pin the map down).
func Deps(mutation string) []string { return deps[mutation] }

// RoleInvalidator is what the role resolver contributes: dropping one
// email's cached role. Declared here as an interface to keep the packages
// decoupled.
type RoleInvalidator interface {
	Invalidate(ctx context.Context, email string)
}

// Invalidator applies the dependency map after successful mutations.
type Invalidator struct {
	Cache *QueryCache
	Roles RoleInvalidator
}

func NewInvalidator(cache *QueryCache, roles RoleInvalidator) *Invalidator {
	return &Invalidator{Cache: cache, Roles: roles}
}

// MutationDone invalidates everything the map says depends on the
// mutation. A role update additionally drops the affected email's role
// entry: the users list and the user's own role can never drift apart.
func (iv *Invalidator) MutationDone(ctx context.Context, mutation string, emails ...string) {
	for _, res := range deps[mutation] {
		iv.Cache.InvalidateResource(ctx, res)
	}
	if mutation == MutUserRoleUpdate && iv.Roles != nil {
		for _, e := range emails {
			iv.Roles.Invalidate(ctx, e)
		}
	}
}
