package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/validators"
)

const tokenLifetime = 24 * time.Hour

// denylistPrefix namespaces revoked tokens in Redis.
const denylistPrefix = "auth:denylist:"

// TokenClaims carries the authenticated user extracted from a JWT.
type TokenClaims struct {
	UserID uint
}

// AuthService issues and validates JWT tokens and manages accounts.
// Revoked tokens are kept in a Redis denylist until they expire; a nil
// redis client disables revocation (unit tests).
type AuthService struct {
	db        *gorm.DB
	redis     *redis.Client
	jwtSecret string
}

func NewAuthService(db *gorm.DB, redisClient *redis.Client, jwtSecret string) *AuthService {
	return &AuthService{
		db:        db,
		redis:     redisClient,
		jwtSecret: jwtSecret,
	}
}

// Register creates an account and returns a signed token.
func (s *AuthService) Register(ctx context.Context, email, username, firstName, lastName, password string) (string, error) {
	if _, err := validators.Username(username); err != nil {
		return "", validationErr("username", err.Error())
	}
	if _, err := validators.NotMeUsername(username); err != nil {
		return "", validationErr("username", err.Error())
	}
	if password == "" {
		return "", validationErr("password", "password must not be empty")
	}

	var existing models.User
	if err := s.db.WithContext(ctx).Where("email = ? OR username = ?", email, username).First(&existing).Error; err == nil {
		return "", validationErr("email", "user with this email or username already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	user := models.User{
		Email:        email,
		Username:     username,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: string(hashed),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			return "", validationErr("email", "user with this email or username already exists")
		}
		return "", err
	}

	return s.generateToken(user.ID)
}

// Login checks credentials against the stored bcrypt hash.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return "", validationErr("", "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", validationErr("", "invalid credentials")
	}

	return s.generateToken(user.ID)
}

// Logout revokes the token for its remaining lifetime.
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	_, expiresAt, err := s.parseToken(tokenString)
	if err != nil {
		return ErrInvalidToken
	}

	if s.redis == nil {
		return nil
	}

	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.redis.Set(ctx, denylistPrefix+tokenString, "revoked", ttl).Err()
}

// ValidateToken checks signature, expiry and the revocation denylist.
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*TokenClaims, error) {
	claims, _, err := s.parseToken(tokenString)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		exists, err := s.redis.Exists(ctx, denylistPrefix+tokenString).Result()
		if err == nil && exists > 0 {
			return nil, ErrInvalidToken
		}
	}

	return claims, nil
}

func (s *AuthService) generateToken(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(tokenLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) parseToken(tokenString string) (*TokenClaims, time.Time, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, time.Time{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, time.Time{}, ErrInvalidToken
	}

	rawID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, time.Time{}, ErrInvalidToken
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, time.Time{}, ErrInvalidToken
	}

	return &TokenClaims{UserID: uint(rawID)}, exp.Time, nil
}
