// Package authz decides which roles may call which API routes.
package authz

import (
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && regexMatch(r.act, p.act)
`

// Role names carried in admin tokens
const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)

// DefaultPolicies grant viewers read access to configs and fields and admins
// everything viewers have plus writes under /api/v1.
var DefaultPolicies = [][]string{
	{SubjectFromRole(RoleViewer), "/api/v1/configs", "GET"},
	{SubjectFromRole(RoleViewer), "/api/v1/admin/providers/:code/fields", "GET"},
	{SubjectFromRole(RoleAdmin), "/api/v1/admin/*", "^(GET|PUT|POST|DELETE)$"},
}

// DefaultGroupings make admin inherit viewer
var DefaultGroupings = [][]string{
	{SubjectFromRole(RoleAdmin), SubjectFromRole(RoleViewer)},
}

// Authorizer wraps a casbin enforcer
type Authorizer struct {
	enforcer *casbin.Enforcer
}

// NewAuthorizer builds an in-memory enforcer loaded with policies and groupings
func NewAuthorizer(policies, groupings [][]string) (*Authorizer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("authz: load model: %w", err)
	}
	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("authz: create enforcer: %w", err)
	}
	for _, p := range policies {
		if _, err := enforcer.AddPolicy(toArgs(p)...); err != nil {
			return nil, fmt.Errorf("authz: add policy %v: %w", p, err)
		}
	}
	for _, g := range groupings {
		if _, err := enforcer.AddGroupingPolicy(toArgs(g)...); err != nil {
			return nil, fmt.Errorf("authz: add grouping %v: %w", g, err)
		}
	}
	return &Authorizer{enforcer: enforcer}, nil
}

// NewDefaultAuthorizer uses DefaultPolicies and DefaultGroupings
func NewDefaultAuthorizer() (*Authorizer, error) {
	return NewAuthorizer(DefaultPolicies, DefaultGroupings)
}

// SubjectFromRole normalizes a role into a casbin subject
func SubjectFromRole(role string) string {
	role = strings.TrimSpace(strings.ToLower(role))
	if role == "" {
		role = "anonymous"
	}
	return "role:" + role
}

// Authorize reports whether subject may perform action on object
func (a *Authorizer) Authorize(subject, object, action string) (bool, error) {
	return a.enforcer.Enforce(subject, object, action)
}

func toArgs(rule []string) []interface{} {
	args := make([]interface{}, len(rule))
	for i, v := range rule {
		args[i] = v
	}
	return args
}
