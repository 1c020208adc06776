package models

// User is one account. PasswordHash is a bcrypt hash and never leaves
// the server.
type User struct {
	Username      string   `json:"username"`
	PasswordHash  string   `json:"password"`
	Role          string   `json:"role"`
	JobCategories []string `json:"job_categories"`
}

// UserDocument is the stored shape of the user master, keyed by
// username.
type UserDocument map[string]User
