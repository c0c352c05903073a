// Package authz decides whether a role may perform an action on a resource.
// The policy set is static: roles map to permissions at construction and do
// not change at runtime.
package authz

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"github.com/Harshakar-official/storefront/internal/domain"
)

// Resource and action names consulted by the gate.
const (
	ResourceCart     = "cart"
	ResourceOrders   = "orders"
	ResourceProducts = "products"

	ActionManage = "manage"
	ActionCreate = "create"
	ActionRead   = "read"
)

// Authorizer answers role permission checks.
type Authorizer interface {
	Authorize(role domain.Role, resource, action string) (bool, error)
}

type roleAuthorizer struct {
	enforcer casbin.IEnforcer
}

// rbacModel is the casbin model for the role permission checks: a request is
// allowed when a policy row grants the subject's role the (resource, action)
// pair, directly or through role grouping.
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// policies maps each role to the permissions it holds. Cart and customer
// order operations belong to customers only; admins do not inherit them, so
// cross-user cart access stays impossible even for admins.
var policies = [][]string{
	{string(domain.RoleCustomer), ResourceCart, ActionManage},
	{string(domain.RoleCustomer), ResourceOrders, ActionCreate},
	{string(domain.RoleCustomer), ResourceOrders, ActionRead},
	{string(domain.RoleAdmin), ResourceOrders, ActionManage},
	{string(domain.RoleAdmin), ResourceProducts, ActionManage},
}

// Authorize evaluates (role, resource, action) against the policy set.
func (a *roleAuthorizer) Authorize(role domain.Role, resource, action string) (bool, error) {
	return a.enforcer.Enforce(string(role), resource, action)
}

// NewRoleAuthorizer builds the enforcer from the embedded model and the
// static role policies.
func NewRoleAuthorizer() (Authorizer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("parse rbac model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("new enforcer: %w", err)
	}

	if _, err := enforcer.AddPolicies(policies); err != nil {
		return nil, fmt.Errorf("add policies: %w", err)
	}

	return &roleAuthorizer{enforcer: enforcer}, nil
}
