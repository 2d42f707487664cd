package auth

// Role define los roles de staff soportados.
// @Enum super_admin, admin, auxiliary
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleAuxiliary  Role = "auxiliary"
)

// Claims representa la información extraída del token de staff.
type Claims struct {
	UserID string
	Email  string
	Role   Role
}
