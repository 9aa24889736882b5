package services_test

import (
	"fmt"
	"testing"
	"time"

	"wantlist/internal/models"
	"wantlist/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_RegisterUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	req := models.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	}

	// Test successful registration
	mockRepo.On("GetByEmail", req.Email).Return(nil, fmt.Errorf("user with email %s not found", req.Email)).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	user, created, err := authService.RegisterUser(req)
	assert.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "alice@example.com", user.Email)
	// The stored credential must be a hash, never the plaintext.
	assert.NotEqual(t, "password123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	mockRepo.AssertExpectations(t)

	// Test email already registered: existing account returned unchanged
	existing := &models.User{ID: "user-1", Username: "alice", Email: req.Email}
	mockRepo.On("GetByEmail", req.Email).Return(existing, nil).Once()

	user, created, err = authService.RegisterUser(req)
	assert.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, existing, user)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Username: "alice",
		Email:    "alice@example.com",
		Password: string(hashedPassword),
	}

	// Test successful login
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()

	token, err := authService.LoginUser("alice@example.com", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	// Validate the token structure
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, user.ID, claims["user_id"])
	assert.Equal(t, user.Username, claims["username"])
	assert.NotEmpty(t, claims["jti"])
	mockRepo.AssertExpectations(t)

	// Test wrong password: same generic error as unknown email
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	_, err = authService.LoginUser("alice@example.com", "wrongpassword")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)

	// Test unknown email
	mockRepo.On("GetByEmail", "nobody@example.com").Return(nil, fmt.Errorf("user with email nobody@example.com not found")).Once()
	_, err = authService.LoginUser("nobody@example.com", "password123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	// Generate a valid token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  "user-123",
		"username": "alice",
		"jti":      "session-1",
		"exp":      jwt.TimeFunc().Add(time.Hour).Unix(),
	})
	validTokenString, _ := token.SignedString([]byte(testJWTSecret))

	// Test valid token
	claims, err := authService.ValidateToken(validTokenString)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, "user-123", claims["user_id"])

	// Test invalid token
	_, err = authService.ValidateToken("invalid.token.string")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")

	// Test expired token
	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"jti":     "session-2",
		"exp":     jwt.TimeFunc().Add(-time.Hour).Unix(),
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredTokenString)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")
}

func TestAuthService_LogoutRevokesToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{ID: "user-123", Username: "alice", Email: "alice@example.com", Password: string(hashedPassword)}
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()

	token, err := authService.LoginUser(user.Email, "password123")
	assert.NoError(t, err)

	// Token is valid before logout, invalid after.
	_, err = authService.ValidateToken(token)
	assert.NoError(t, err)

	assert.NoError(t, authService.Logout(token))

	_, err = authService.ValidateToken(token)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "logged out")

	// Logging out an already revoked token fails validation too.
	assert.Error(t, authService.Logout(token))
}
