package models

// Staff roles.
const (
	RoleAdmin     = "admin"
	RoleEditor    = "editor"
	RoleDeveloper = "developer"
)

// User is the logged-in staff principal as returned by the backend.
type User struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	Name        string      `json:"name"`
	Role        string      `json:"role"`
	ManageScope ManageScope `json:"manageScope"`
	DisabledAt  *string     `json:"disabledAt"`
}

// ManageScope limits which organizations an editor may manage.
type ManageScope struct {
	Organizations []string `json:"organizations,omitempty"`
}

// LoginResult is the backend's answer to POST /auth/login.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
