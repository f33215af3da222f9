package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const (
	RoleAdmin    = "admin"
	RoleHR       = "hr"
	RoleEmployee = "employee"
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

// policies memetakan role ke resource/action. Sistem ini hanya punya tiga
// role tetap, jadi policy statis dan tidak butuh penyimpanan di DB.
var policies = [][]string{
	// employee: hanya data miliknya sendiri
	{RoleEmployee, "payroll", "read_own"},
	{RoleEmployee, "worklog", "create"},
	{RoleEmployee, "worklog", "read_own"},
	{RoleEmployee, "employee", "read_own"},

	// hr: kelola karyawan dan mengajukan payroll
	{RoleHR, "employee", "read"},
	{RoleHR, "employee", "create"},
	{RoleHR, "employee", "update"},
	{RoleHR, "employee", "verify"},
	{RoleHR, "payroll", "create"},
	{RoleHR, "payroll", "read"},
	{RoleHR, "worklog", "read"},

	// admin: transisi terminal dan payment capture
	{RoleAdmin, "payroll", "approve"},
	{RoleAdmin, "payroll", "reject"},
	{RoleAdmin, "payment", "intent"},
	{RoleAdmin, "employee", "terminate"},
	{RoleAdmin, "employee", "update_role"},
	{RoleAdmin, "auth", "register"},
}

// roleInherits: admin mewarisi hr, hr mewarisi employee.
var roleInherits = [][]string{
	{RoleAdmin, RoleHR},
	{RoleHR, RoleEmployee},
}

// NewEnforcer membangun casbin enforcer dengan policy statis in-memory.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range policies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	for _, g := range roleInherits {
		if _, err := e.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}

	return e, nil
}
