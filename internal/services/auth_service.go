package services

import (
	"errors"
	"fmt"
	"time"

	"parfum/internal/models"
	"parfum/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Keys of the session state in the key-value store.
const (
	SessionFlagKey     = "admin_logged_in"
	RememberedEmailKey = "admin_remembered_email"
)

// ErrInvalidCredentials is returned when a login is rejected.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService manages the admin session flag and issues API tokens.
type AuthService struct {
	kv           repositories.KeyValueRepository
	jwtSecret    []byte
	passwordHash []byte
	tokenDurat   time.Duration
}

// NewAuthService creates a new AuthService. An empty passwordHash accepts any
// well-formed credentials.
func NewAuthService(kv repositories.KeyValueRepository, jwtSecret, passwordHash string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		kv:           kv,
		jwtSecret:    []byte(jwtSecret),
		passwordHash: []byte(passwordHash),
		tokenDurat:   tokenTTL,
	}
}

// Login opens the admin session and returns a signed token.
// Credentials are expected to be format-validated by the caller.
func (s *AuthService) Login(creds models.Credentials) (string, error) {
	if len(s.passwordHash) > 0 {
		if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(creds.Password)); err != nil {
			return "", ErrInvalidCredentials
		}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": creds.Email,
		"exp":   time.Now().Add(s.tokenDurat).Unix(),
		"iat":   time.Now().Unix(),
	})
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	if err := s.kv.Set(SessionFlagKey, "true"); err != nil {
		return "", fmt.Errorf("failed to open session: %w", err)
	}
	if creds.RememberMe {
		err = s.kv.Set(RememberedEmailKey, creds.Email)
	} else {
		err = s.kv.Delete(RememberedEmailKey)
	}
	if err != nil {
		logrus.WithError(err).Warn("Failed to update remembered email")
	}

	logrus.WithField("email", creds.Email).Info("Admin logged in")
	return tokenString, nil
}

// Logout clears the session flag. The remembered email is kept.
func (s *AuthService) Logout() error {
	if err := s.kv.Delete(SessionFlagKey); err != nil {
		return fmt.Errorf("failed to close session: %w", err)
	}
	return nil
}

// IsLoggedIn reports whether the session flag is set.
func (s *AuthService) IsLoggedIn() (bool, error) {
	value, ok, err := s.kv.Get(SessionFlagKey)
	if err != nil {
		return false, fmt.Errorf("failed to read session flag: %w", err)
	}
	return ok && value == "true", nil
}

// Session returns the session state shown on the login screen.
func (s *AuthService) Session() (models.Session, error) {
	loggedIn, err := s.IsLoggedIn()
	if err != nil {
		return models.Session{}, err
	}
	email, _, err := s.kv.Get(RememberedEmailKey)
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to read remembered email: %w", err)
	}
	return models.Session{LoggedIn: loggedIn, RememberedEmail: email}, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}
