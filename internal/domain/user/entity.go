package user

type User struct {
	ID           int
	Username     string
	PasswordHash string
	Role         Role
	EmployeeID   *int
	IsActive     bool
}

type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleEmployee Role = "Employee"
)
