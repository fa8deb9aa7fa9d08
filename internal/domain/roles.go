package domain

type Role string

const (
	// RoleUser is the default role for registered shoppers.
	RoleUser Role = "user"
	// RoleAdmin can manage other users.
	RoleAdmin Role = "admin"
)

func IsValidRole(r string) bool {
	return r == string(RoleUser) || r == string(RoleAdmin)
}
