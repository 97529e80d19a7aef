package authorization

// UserRole is the closed role set of the platform. Students are the default;
// admins get the back-office.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleStudent UserRole = "student"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleStudent
}

// ParseUserRole maps a stored string onto a role, falling back to student
// for anything unrecognized.
func ParseUserRole(s string) UserRole {
	role := UserRole(s)
	if role.IsValid() {
		return role
	}
	return RoleStudent
}
