package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/guttosm/laundry-service/config"
	"github.com/guttosm/laundry-service/internal/domain/dto"
)

var (
	// ErrInvalidCredentials is returned when the username or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrInvalidToken is returned when a token is malformed, forged or expired.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Token settings.
const (
	TokenIssuer = "laundry-service"
	TokenType   = "Bearer"
	RoleAdmin   = "admin"
)

// tokenClaims are the JWT claims of an admin access token. The subject is the admin username.
type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService issues and validates the access tokens that protect catalog administration.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*dto.TokenResponse, error)
	ValidateToken(ctx context.Context, tokenString string) (*dto.Claims, error)
}

// AuthServiceImpl implements AuthService for the single configured admin account.
type AuthServiceImpl struct {
	username     string
	passwordHash []byte
	secretKey    []byte
	ttl          time.Duration
}

// NewAuthService creates an auth service from configuration. Login always fails
// when no admin password hash is configured.
func NewAuthService(cfg config.AuthConfig) *AuthServiceImpl {
	ttl := cfg.AccessTokenTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &AuthServiceImpl{
		username:     cfg.AdminUsername,
		passwordHash: []byte(cfg.AdminPasswordHash),
		secretKey:    []byte(cfg.JWTSecretKey),
		ttl:          ttl,
	}
}

// Login checks the admin credentials and returns a signed access token.
func (s *AuthServiceImpl) Login(_ context.Context, username, password string) (*dto.TokenResponse, error) {
	if len(s.passwordHash) == 0 {
		return nil, ErrInvalidCredentials
	}

	// Both checks always run so that a wrong username costs as much as a wrong password.
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password))
	if !userOK || passErr != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateAccessToken(username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   TokenType,
		ExpiresIn:   int64(s.ttl.Seconds()),
	}, nil
}

// ValidateToken verifies an access token and returns its claims.
func (s *AuthServiceImpl) ValidateToken(_ context.Context, tokenString string) (*dto.Claims, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(TokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return &dto.Claims{
		Subject: claims.Subject,
		Role:    claims.Role,
	}, nil
}

func (s *AuthServiceImpl) generateAccessToken(username string) (string, error) {
	issuedAt := time.Now()
	claims := &tokenClaims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// HashPassword returns the bcrypt hash to put in ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
