package rbac

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

const (
	ResourceEmployee   = "employee"
	ResourceAttendance = "attendance"
	ResourceBreak      = "break"
	ResourceDashboard  = "dashboard"
	ResourceOnboarding = "onboarding"
	ResourceProfile    = "profile"
)

const (
	ActionRead     = "read"
	ActionCreate   = "create"
	ActionUpdate   = "update"
	ActionClockOut = "clock_out"
	ActionWrite    = "write"
	ActionReadOwn  = "read_own"
	ActionAdmin    = "admin"
)

// roleInherits maps a role to the roles whose permissions it also holds.
var roleInherits = map[string][]string{
	RoleAdmin: {RoleEmployee},
}

var rolePolicies = map[string][]Permission{
	RoleEmployee: {
		{Resource: ResourceAttendance, Action: ActionClockOut},
		{Resource: ResourceBreak, Action: ActionWrite},
		{Resource: ResourceBreak, Action: ActionRead},
		{Resource: ResourceDashboard, Action: ActionReadOwn},
		{Resource: ResourceOnboarding, Action: ActionWrite},
		{Resource: ResourceOnboarding, Action: ActionRead},
		{Resource: ResourceProfile, Action: ActionReadOwn},
		{Resource: ResourceProfile, Action: ActionWrite},
	},
	RoleAdmin: {
		{Resource: ResourceEmployee, Action: ActionCreate},
		{Resource: ResourceEmployee, Action: ActionRead},
		{Resource: ResourceEmployee, Action: ActionUpdate},
		{Resource: ResourceAttendance, Action: ActionRead},
		{Resource: ResourceDashboard, Action: ActionAdmin},
	},
}

// IsKnownRole reports whether role has a policy set.
func IsKnownRole(role string) bool {
	_, ok := rolePolicies[role]
	return ok
}
