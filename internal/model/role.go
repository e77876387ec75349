package model

// Role is the dashboard a user lands on after login. It routes the client to
// a screen; it is not a server-side permission scope.
type Role string

const (
	RoleAdmin           Role = "admin"
	RoleCEO             Role = "ceo"
	RoleManager         Role = "manager"
	RoleABM             Role = "abm"
	RoleZBM             Role = "zbm"
	RoleDistrictManager Role = "district_manager"
	RoleMR              Role = "mr"
	RoleDeveloper       Role = "developer"
	RoleCustomer        Role = "customer"
)

// Dashboards maps each role to its dashboard screen name. Login responses
// include the resolved entry so the client dispatches from this table instead
// of branching per role.
var Dashboards = map[Role]string{
	RoleAdmin:           "admin-dashboard",
	RoleCEO:             "ceo-dashboard",
	RoleManager:         "manager-dashboard",
	RoleABM:             "abm-dashboard",
	RoleZBM:             "zbm-dashboard",
	RoleDistrictManager: "district-manager-dashboard",
	RoleMR:              "mr-dashboard",
	RoleDeveloper:       "developer-dashboard",
	RoleCustomer:        "customer-dashboard",
}

// Valid reports whether the role is one of the known roles
func (r Role) Valid() bool {
	_, ok := Dashboards[r]
	return ok
}

// Dashboard returns the dashboard screen name for the role
func (r Role) Dashboard() string {
	return Dashboards[r]
}
