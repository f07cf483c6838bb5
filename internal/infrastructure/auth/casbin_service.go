package auth

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

// abilityModel is the policy shape behind the permission engine. Rows are
// (role, action, subject, scope) where scope is "any" or "own".
const abilityModel = `
[request_definition]
r = sub, act, obj

[policy_definition]
p = sub, act, obj, scope

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.act == p.act && r.obj == p.obj
`

type CasbinService struct{ E *casbin.Enforcer }

// NewCasbinService builds an enforcer over the ability model with policies
// persisted through the GORM adapter.
func NewCasbinService(db *gorm.DB) (*CasbinService, error) {
	adp, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}
	m, err := model.NewModelFromString(abilityModel)
	if err != nil {
		return nil, err
	}
	e, err := casbin.NewEnforcer(m, adp)
	if err != nil {
		return nil, err
	}
	if err := e.LoadPolicy(); err != nil {
		return nil, err
	}
	return &CasbinService{e}, nil
}

// NewMemoryEnforcer builds an enforcer over the ability model with no
// persistence, used in tests and for seeding.
func NewMemoryEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(abilityModel)
	if err != nil {
		return nil, err
	}
	return casbin.NewEnforcer(m)
}
