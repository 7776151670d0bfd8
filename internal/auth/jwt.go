package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/smartcowork/cowork-gin/internal/roster"
)

// Identity is the logged-in employee carried through request contexts and
// token claims. It mirrors the roster row minus the credential.
type Identity struct {
	EmployeeID string `json:"employeeId"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Team       string `json:"team"`
	Position   string `json:"position"`
}

// Claims are the JWT claims issued at login.
type Claims struct {
	Name       string `json:"name"`
	Department string `json:"department"`
	Team       string `json:"team"`
	Position   string `json:"position"`
	jwt.RegisteredClaims
}

// TokenManager issues and validates session tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a token manager. ttlHours <= 0 falls back to 12h.
func NewTokenManager(secret string, ttlHours int) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if ttlHours <= 0 {
		ttlHours = 12
	}
	return &TokenManager{
		secret: []byte(secret),
		ttl:    time.Duration(ttlHours) * time.Hour,
	}, nil
}

// Issue signs a token for the authenticated employee.
func (m *TokenManager) Issue(emp *roster.Employee) (string, error) {
	now := time.Now()
	claims := Claims{
		Name:       emp.Name,
		Department: emp.Department,
		Team:       emp.Team,
		Position:   emp.Position,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   emp.EmployeeID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Validate parses a token and returns the identity it carries.
func (m *TokenManager) Validate(tokenString string) (*Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return &Identity{
		EmployeeID: claims.Subject,
		Name:       claims.Name,
		Department: claims.Department,
		Team:       claims.Team,
		Position:   claims.Position,
	}, nil
}
