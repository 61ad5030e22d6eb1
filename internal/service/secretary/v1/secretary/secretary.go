// Package secretary provides methods for password hashing and token handling.
package secretary

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/rychardsson/go-bank-api/internal/config"
	"github.com/rychardsson/go-bank-api/internal/models/modelclaims"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 30 * time.Minute

// Secretary defines object structure and its attributes.
type Secretary struct {
	key []byte
}

// NewSecretaryService initializes a secretary service with hashing and token functionality.
func NewSecretaryService(c *config.SecretConfig) (*Secretary, error) {
	if c.SecretKey == "" {
		return nil, errors.New("empty secret key was found")
	}
	return &Secretary{
		key: []byte(c.SecretKey),
	}, nil
}

// HashPassword derives a bcrypt hash for storing a password.
func (s *Secretary) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches a previously stored hash.
func (s *Secretary) CheckPassword(password, passwordHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)) == nil
}

// NewToken issues a signed access token for a userID.
func (s *Secretary) NewToken(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &modelclaims.MyCustomClaims{
		UserID: userID,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(tokenTTL).Unix(),
		},
	})
	return token.SignedString(s.key)
}

// ValidateToken checks token signature and expiry and returns the userID claim.
func (s *Secretary) ValidateToken(accessToken string) (string, error) {
	token, err := jwt.ParseWithClaims(accessToken, &modelclaims.MyCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.key, nil
	})
	if err != nil {
		return "", err
	}
	if claims, ok := token.Claims.(*modelclaims.MyCustomClaims); ok && token.Valid {
		return claims.UserID, nil
	}
	return "", errors.New("invalid access token")
}
