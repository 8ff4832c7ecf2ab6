package infra

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

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

// policy is the fixed role matrix: the engine consumes role decisions,
// it does not administer them.
var policy = [][]string{
	{"ADMIN", "clock", "create"},
	{"ADMIN", "clock", "read"},
	{"ADMIN", "clock", "correct"},
	{"ADMIN", "settings", "read"},
	{"ADMIN", "settings", "update"},
	{"ADMIN", "cashadvance", "create"},
	{"ADMIN", "cashadvance", "read"},
	{"ADMIN", "cashadvance", "pay"},
	{"ADMIN", "deduction", "read"},
	{"ADMIN", "deduction", "update"},
	{"ADMIN", "settlement", "read"},
	{"ADMIN", "settlement", "notify"},
	{"EMPLOYEE", "clock", "create"},
	{"EMPLOYEE", "clock", "read"},
	{"EMPLOYEE", "cashadvance", "read"},
	{"EMPLOYEE", "deduction", "read"},
	{"EMPLOYEE", "settlement", "read"},
}

var grouping = [][]string{
	{"HR", "ADMIN"},
}

// NewEnforcer builds a casbin enforcer with the static payroll role matrix.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range policy {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	for _, g := range grouping {
		if _, err := e.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}

	return e, nil
}
