package domain

// Identity is the public projection of an authenticated user kept in session
// state. It must never carry credential material.
type Identity struct {
	UserID uint   `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}
