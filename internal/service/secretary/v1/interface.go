// Package secretary provides methods for password hashing and token handling.
package secretary

// Secretary defines a set of methods for types implementing Secretary.
type Secretary interface {
	HashPassword(password string) (string, error)
	CheckPassword(password, passwordHash string) bool
	NewToken(userID string) (string, error)
	ValidateToken(accessToken string) (string, error)
}
