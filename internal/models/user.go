package models

// Role represents the available roles for the access-control predicates.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// Staff reports whether the role belongs to the staff set.
func (r Role) Staff() bool {
	return r == RoleAdmin || r == RoleTeacher
}

// User represents a login account. RelatedID links teacher/student
// accounts to their roster row; it carries no meaning for admins.
type User struct {
	ID           int64  `db:"id" json:"user_id"`
	Username     string `db:"username" json:"username"`
	PasswordHash string `db:"password_hash" json:"-"`
	Role         Role   `db:"role" json:"role"`
	RelatedID    *int64 `db:"related_id" json:"related_id,omitempty"`
	Active       bool   `db:"active" json:"active"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
