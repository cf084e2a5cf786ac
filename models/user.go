package models

// User is the identity record issued by a successful login. It is immutable
// for the lifetime of the session that owns it.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
