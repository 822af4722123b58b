package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// Admin holds the single admin account allowed to request tokens. The
// password is kept only as a bcrypt hash.
type Admin struct {
	User         string
	PasswordHash string
}

// Check reports whether user/password match. An unset hash rejects everyone.
func (a Admin) Check(user, password string) bool {
	if a.User == "" || a.PasswordHash == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(a.User)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password))
	return userOK && passErr == nil
}
