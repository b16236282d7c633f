package rbac

import (
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// EnforceRequest asks whether a role may perform an action on a resource.
type EnforceRequest struct {
	Role     string
	Resource string
	Action   string
}

//go:generate mockgen -source=rbac.go -destination=mock/rbac_mock.go -package=mock
type Service interface {
	Enforce(req EnforceRequest) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
}

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
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// policies maps the closed staff role set onto resource/action grants. Roles
// are static so the policy set lives in code rather than a database table.
var policies = [][3]string{
	// Everyone authenticated can apply for and see their own leave.
	{"staff", "leave", "create"},
	{"staff", "leave", "read"},
	{"staff", "leave", "cancel"},
	{"staff", "balance", "read"},
	{"staff", "department", "read"},
	{"staff", "staff", "read"},

	// Department heads decide the first approval stage.
	{"hod", "leave", "approve_hod"},

	// The principal decides the final stage.
	{"principal", "leave", "approve_principal"},

	// Superintendent oversees non-teaching staff records.
	{"superintendent", "staff", "read"},
	{"superintendent", "leave", "read"},

	// Administrators manage reference data and balances.
	{"admin", "department", "create"},
	{"admin", "department", "update"},
	{"admin", "department", "delete"},
	{"admin", "staff", "create"},
	{"admin", "staff", "update"},
	{"admin", "staff", "delete"},
	{"admin", "balance", "initialize"},
	{"admin", "balance", "adjust"},
}

// groupings fold concrete roles into the policy subjects above.
var groupings = [][2]string{
	{"teacher", "staff"},
	{"hod", "staff"},
	{"principal", "staff"},
	{"superintendent", "staff"},
	{"teaching_admin", "staff"},
	{"non_teaching_admin", "staff"},
	{"teaching_admin", "admin"},
	{"non_teaching_admin", "admin"},
	{"principal", "superintendent"},
}

// NewService builds an enforcer with the static role policy baked in.
func NewService() (Service, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	for _, g := range groupings {
		if _, err := enforcer.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}

	return &service{enforcer: enforcer}, nil
}

func (s *service) Enforce(req EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.enforcer.Enforce(req.Role, req.Resource, req.Action)
}
