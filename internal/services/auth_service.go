package services

import (
	"fmt"
	"log"
	"sync"
	"time"

	"wantlist/internal/models"
	"wantlist/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles business logic for authentication and authorization.
// Email is the authoritative unique key for accounts.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid

	mu      sync.Mutex
	revoked map[string]struct{} // jti values invalidated by logout
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour, // Token valid for 24 hours
		revoked:    make(map[string]struct{}),
	}
}

// RegisterUser is a get-or-create keyed on email: if the email is already
// registered the existing account is returned unchanged and the boolean is
// false, so the caller can show the duplicate notice. Otherwise the password
// is hashed and a new account is persisted.
func (s *AuthService) RegisterUser(req models.RegisterRequest) (*models.User, bool, error) {
	if existingUser, err := s.userRepo.GetByEmail(req.Email); err == nil && existingUser != nil {
		return existingUser, false, nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, false, fmt.Errorf("failed to register user: %w", err)
	}
	return user, true, nil
}

// LoginUser authenticates a user by email and returns a JWT token if
// successful. Unknown email and wrong password produce the same error.
func (s *AuthService) LoginUser(email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"jti":      uuid.New().String(),
		"exp":      time.Now().Add(s.tokenDurat).Unix(), // Token expiration time
		"iat":      time.Now().Unix(),                   // Issued at time
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if
// valid. Tokens revoked by Logout are rejected.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if jti, ok := claims["jti"].(string); ok {
		s.mu.Lock()
		_, isRevoked := s.revoked[jti]
		s.mu.Unlock()
		if isRevoked {
			return nil, fmt.Errorf("invalid token: session has been logged out")
		}
	}

	return claims, nil
}

// Logout invalidates the session behind the given token. Subsequent
// ValidateToken calls with the same token fail. The denylist is process-local,
// which matches the single-process deployment model.
func (s *AuthService) Logout(tokenString string) error {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return err
	}

	jti, ok := claims["jti"].(string)
	if !ok || jti == "" {
		return fmt.Errorf("token carries no session id")
	}

	s.mu.Lock()
	s.revoked[jti] = struct{}{}
	s.mu.Unlock()
	return nil
}
