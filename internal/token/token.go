package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const RoleAdmin = "admin"

type Principal struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Service signs and verifies the admin session token. Validity is fully
// determined by signature and expiry; there is no server-side session state
// and no revocation list.
type Service struct {
	secret []byte
	expiry time.Duration
}

func (s *Service) Issue(username string) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify returns the principal carried by a valid token, or nil for anything
// else: malformed input, bad signature, expiry, missing claims. Callers never
// need to distinguish those cases.
func (s *Service) Verify(tokenStr string) *Principal {
	if tokenStr == "" {
		return nil
	}
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil
	}
	if claims.Subject == "" || claims.Role != RoleAdmin {
		return nil
	}
	return &Principal{Username: claims.Subject, Role: claims.Role}
}

func NewService(secret string, expiry time.Duration) (*Service, error) {
	if secret == "" {
		return nil, errors.New("token signing secret is required")
	}
	if expiry <= 0 {
		return nil, errors.New("token expiry must be positive")
	}
	return &Service{secret: []byte(secret), expiry: expiry}, nil
}
