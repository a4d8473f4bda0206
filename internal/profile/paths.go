package profile

// Navigation targets shared by the auth flows and the role router.
const (
	LoginPath        = "/login"
	GenericHomePath  = "/"
	HRHomePath       = "/hr/home"
	EmployeeHomePath = "/employee/home"
)

// HomeFor returns the landing path for a role, or the generic home for
// anything unrecognized.
func HomeFor(role Role) string {
	switch role {
	case RoleHR:
		return HRHomePath
	case RoleEmployee:
		return EmployeeHomePath
	default:
		return GenericHomePath
	}
}
