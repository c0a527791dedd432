package domain

// Role type to distinguish between caller roles
type Role string

// Define constants for roles
const (
	RoleManager Role = "manager"
	RoleTrainer Role = "trainer"
	RoleMember  Role = "member"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleManager, RoleTrainer, RoleMember:
		return true
	}
	return false
}
