package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"task_manager/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultTokenTTL = time.Hour
	// bcrypt only looks at the first 72 bytes and refuses longer input.
	maxPasswordBytes = 72
)

// AuthService handles registration, login and token verification.
type AuthService struct {
	authRepo   repository.Authorization
	signingKey []byte
	tokenTTL   time.Duration
	now        func() time.Time
}

func NewAuthService(repo repository.Authorization, signingKey string, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &AuthService{
		authRepo:   repo,
		signingKey: []byte(signingKey),
		tokenTTL:   ttl,
		now:        time.Now,
	}
}

// LoginResult is what a successful login hands back to the client.
type LoginResult struct {
	Token    string `json:"token"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// Claims defines JWT claims
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register stores a new user with a bcrypt hash of password and returns the user id.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (string, error) {
	username = strings.TrimSpace(username)
	email = normalizeEmail(email)
	switch {
	case username == "":
		return "", newValidationError("username", "Username is required")
	case email == "":
		return "", newValidationError("email", "Email is required")
	case password == "":
		return "", newValidationError("password", "Password is required")
	case len(password) > maxPasswordBytes:
		return "", newValidationError("password", "Password must be at most %d bytes", maxPasswordBytes)
	}

	existing, err := s.authRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", ErrUserExists
	}

	hash, err := hashPassword(password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", newValidationError("password", "Password must be at most %d bytes", maxPasswordBytes)
		}
		return "", err
	}

	id, err := s.authRepo.Create(ctx, username, email, hash)
	if err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, repository.ErrDuplicate) {
			return "", ErrUserExists
		}
		return "", err
	}
	return id, nil
}

// Login verifies credentials and returns a signed token. Unknown email and wrong
// password both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	u, err := s.authRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return LoginResult{}, err
	}
	if u == nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := s.issueToken(u.ID)
	if err != nil {
		return LoginResult{}, fmt.Errorf("sign token: %w", err)
	}
	return LoginResult{Token: token, UserID: u.ID, Username: u.Username}, nil
}

// ParseToken verifies the signature and expiry and returns the embedded user id.
func (s *AuthService) ParseToken(accessToken string) (string, error) {
	if accessToken == "" {
		return "", ErrMissingToken
	}
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}

	return claims.UserID, nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// issueToken signs a token for userID that expires after tokenTTL.
func (s *AuthService) issueToken(userID string) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	})
	return token.SignedString(s.signingKey)
}
