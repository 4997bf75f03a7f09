package models

// User is the authenticated dealership operator as returned by the backend.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role,omitempty"`
}

// Session pairs the active user with the bearer token for this device.
type Session struct {
	User  User
	Token string
}
