package utils

import (
	"errors"
	"fmt"
	"time"

	"safetour/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidSignature = errors.New("token signature is invalid")
	ErrTokenExpired     = errors.New("token has expired")
	ErrTokenMalformed   = errors.New("token is malformed")
)

type JWTClaims struct {
	Username string          `json:"sub_name"`
	Role     models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// TokenService issues and verifies signed identity assertions. It holds
// only immutable configuration and is safe for concurrent use.
type TokenService struct {
	secret     []byte
	method     *jwt.SigningMethodHMAC
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenService builds a token service from the configured secret and
// algorithm identifier. Only the HMAC family is accepted.
func NewTokenService(secret, algorithm string, accessTTL, refreshTTL time.Duration) (*TokenService, error) {
	var method *jwt.SigningMethodHMAC
	switch algorithm {
	case "HS256", "":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("unsupported signing algorithm: %s", algorithm)
	}

	if secret == "" {
		return nil, errors.New("signing secret must not be empty")
	}

	return &TokenService{
		secret:     []byte(secret),
		method:     method,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

// Issue creates a signed access token for the given subject and role,
// valid from now until now+accessTTL.
func (s *TokenService) Issue(username string, role models.UserRole, now time.Time) (string, error) {
	return s.sign(username, role, now, s.accessTTL)
}

// IssuePair creates an access/refresh token pair in one call.
func (s *TokenService) IssuePair(username string, role models.UserRole, now time.Time) (*TokenPair, error) {
	accessToken, err := s.sign(username, role, now, s.accessTTL)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.sign(username, role, now, s.refreshTTL)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.accessTTL.Seconds()),
		TokenType:    "Bearer",
	}, nil
}

func (s *TokenService) sign(username string, role models.UserRole, now time.Time, ttl time.Duration) (string, error) {
	claims := &JWTClaims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    AppName,
			Subject:   username,
		},
	}

	token := jwt.NewWithClaims(s.method, claims)
	return token.SignedString(s.secret)
}

// Verify parses and validates a token string against the process secret at
// the given instant. Failures are reported as ErrInvalidSignature,
// ErrTokenExpired or ErrTokenMalformed.
func (s *TokenService) Verify(tokenString string, now time.Time) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSignature
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return now }))

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrSignatureInvalid), errors.Is(err, ErrInvalidSignature):
			return nil, ErrInvalidSignature
		default:
			return nil, ErrTokenMalformed
		}
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}

	if claims.Username == "" || !models.ValidRole(claims.Role) {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}

// Refresh validates a refresh token and issues a fresh pair with the same
// subject and role.
func (s *TokenService) Refresh(refreshToken string, now time.Time) (*TokenPair, error) {
	claims, err := s.Verify(refreshToken, now)
	if err != nil {
		return nil, err
	}
	return s.IssuePair(claims.Username, claims.Role, now)
}
