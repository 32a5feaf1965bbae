package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const modelText = `[request_definition]
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

// NewEnforcer builds an in-memory enforcer holding the given role grants.
func NewEnforcer(grants Grants, inheritance Inheritance) (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for role, caps := range grants {
		for _, c := range caps {
			if _, err := e.AddPolicy(role, c.Resource, c.Action); err != nil {
				return nil, err
			}
		}
	}
	for role, parents := range inheritance {
		for _, parent := range parents {
			if _, err := e.AddGroupingPolicy(role, parent); err != nil {
				return nil, err
			}
		}
	}

	return e, nil
}
