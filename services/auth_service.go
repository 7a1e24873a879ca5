package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"frontdesk-backend/models"
)

const tokenTTL = 24 * time.Hour

// AuthService issues and verifies the JWTs the front desk logs in with.
type AuthService struct {
	DB     *gorm.DB
	secret []byte
}

func NewAuthService(db *gorm.DB, secret string) *AuthService {
	return &AuthService{DB: db, secret: []byte(secret)}
}

// Login checks the credentials and returns the user with a signed token.
func (s *AuthService) Login(username, password string) (models.User, string, error) {
	var user models.User
	if err := s.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, "", fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
		}
		return models.User{}, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return models.User{}, "", fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
	}

	claims := jwt.MapClaims{
		"id":       user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

// VerifyToken parses a token and loads the user it names.
func (s *AuthService) VerifyToken(tokenString string) (models.User, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return models.User{}, fmt.Errorf("invalid token: %w", ErrUnauthorized)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.User{}, fmt.Errorf("invalid token claims: %w", ErrUnauthorized)
	}
	id, ok := claims["id"].(float64)
	if !ok {
		return models.User{}, fmt.Errorf("invalid token claims: %w", ErrUnauthorized)
	}

	var user models.User
	if err := s.DB.First(&user, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, fmt.Errorf("user no longer exists: %w", ErrUnauthorized)
		}
		return models.User{}, err
	}
	return user, nil
}
