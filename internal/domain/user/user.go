// Package user holds the account read back by a successful login.
package user

// User is a stored account. The password never leaves the repository.
type User struct {
	Username string
	Role     string
}
