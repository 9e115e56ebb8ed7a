// Package authz is the permission-check collaborator consumed by the rate
// engine's mutating surfaces. Policies live in the database via the casbin
// gorm adapter so they survive restarts and can be administered externally.
package authz

import (
	"context"
	"errors"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrForbidden = errors.New("forbidden")

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

// Objects and actions checked by the handlers.
const (
	ObjectRate    = "rate"
	ObjectCatalog = "catalog"
	ObjectImport  = "import"

	ActionRead   = "read"
	ActionWrite  = "write"
	ActionDelete = "delete"
)

var Module = fx.Module("authz",
	fx.Provide(NewEnforcer),
	fx.Provide(NewGate),
)

type Gate interface {
	MustBeAllowed(ctx context.Context, actor, object, action string) error
}

func NewEnforcer(db *gorm.DB) (*casbin.Enforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewEnforcer(m, adapter)
	if err != nil {
		return nil, err
	}
	if err := seedDefaultPolicies(enforcer); err != nil {
		return nil, err
	}
	return enforcer, nil
}

func seedDefaultPolicies(e *casbin.Enforcer) error {
	defaults := [][]string{
		{"role:admin", ObjectRate, ActionRead},
		{"role:admin", ObjectRate, ActionWrite},
		{"role:admin", ObjectRate, ActionDelete},
		{"role:admin", ObjectCatalog, ActionRead},
		{"role:admin", ObjectCatalog, ActionWrite},
		{"role:admin", ObjectImport, ActionRead},
		{"role:admin", ObjectImport, ActionWrite},
		{"role:viewer", ObjectRate, ActionRead},
		{"role:viewer", ObjectCatalog, ActionRead},
	}
	for _, p := range defaults {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return err
		}
	}
	return e.SavePolicy()
}

type gate struct {
	enforcer *casbin.Enforcer
	log      *zap.Logger
}

func NewGate(enforcer *casbin.Enforcer, log *zap.Logger) Gate {
	return &gate{enforcer: enforcer, log: log.Named("authz.gate")}
}

func (g *gate) MustBeAllowed(ctx context.Context, actor, object, action string) error {
	allowed, err := g.enforcer.Enforce(actor, object, action)
	if err != nil {
		return err
	}
	if !allowed {
		g.log.Warn("permission denied",
			zap.String("actor", actor),
			zap.String("object", object),
			zap.String("action", action),
		)
		return ErrForbidden
	}
	return nil
}
