package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/parchados/parchados-services/api/internal/places/domain"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for unknown accounts and wrong passwords
// alike, so login responses never reveal which one failed.
var ErrInvalidCredentials = errors.New("Credenciales incorrectas")

// UserRepository abstracts the user store. Lookups return (nil, nil) when no
// account matches.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user domain.User) (string, error)
}

// PasswordReset is a pending recovery code for an account.
type PasswordReset struct {
	Email     string
	Code      string
	CreatedAt time.Time
}

// ResetRepository persists password reset codes.
type ResetRepository interface {
	Create(ctx context.Context, reset PasswordReset) error
}

// Config carries the token parameters.
type Config struct {
	Secret   []byte
	Issuer   string
	Audience string
	TokenTTL time.Duration
}

// Service implements the authentication collaborator: credential login,
// password reset codes, registration and token verification. It also keeps
// the process-wide current session the review workflow reads.
type Service struct {
	users  UserRepository
	resets ResetRepository
	cfg    Config
	logger *zap.Logger

	mu      sync.RWMutex
	current *domain.User
}

// NewService wires the auth service.
func NewService(users UserRepository, resets ResetRepository, cfg Config, logger *zap.Logger) *Service {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	return &Service{users: users, resets: resets, cfg: cfg, logger: logger}
}

// Login resolves the identifier (email or username), checks the credential
// and returns the user plus a signed access token.
func (s *Service) Login(ctx context.Context, identifier, password string) (*domain.User, string, error) {
	user, err := s.resolve(ctx, identifier)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.CredentialHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(*user)
	if err != nil {
		return nil, "", err
	}

	s.mu.Lock()
	s.current = user
	s.mu.Unlock()
	return user, token, nil
}

// Logout drops the current session.
func (s *Service) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

// CurrentUser returns the logged-in user, nil when logged out.
func (s *Service) CurrentUser() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	user := *s.current
	return &user
}

// Register creates a new account with a hashed credential.
func (s *Service) Register(ctx context.Context, user domain.User, password string) (*domain.User, error) {
	if strings.TrimSpace(user.Email) == "" || strings.TrimSpace(password) == "" {
		return nil, fmt.Errorf("correo y contraseña son obligatorios")
	}
	existing, err := s.users.FindByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("ya existe una cuenta con el correo %s", user.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.CredentialHash = string(hash)
	if user.Role == "" {
		user.Role = domain.RoleUser
	}

	id, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id
	user.CredentialHash = ""
	return &user, nil
}

// RequestPasswordReset generates a recovery code for the account behind the
// identifier, persists it and returns (email, code).
func (s *Service) RequestPasswordReset(ctx context.Context, identifier string) (string, string, error) {
	user, err := s.resolve(ctx, identifier)
	if err != nil {
		return "", "", err
	}
	if user == nil {
		return "", "", fmt.Errorf("No encontramos una cuenta llamada %s", strings.TrimSpace(identifier))
	}

	code := strings.ToUpper(uuid.NewString()[:6])
	reset := PasswordReset{Email: user.Email, Code: code, CreatedAt: time.Now().UTC()}
	if err := s.resets.Create(ctx, reset); err != nil {
		return "", "", err
	}
	s.logger.Info("código de recuperación generado", zap.String("email", user.Email))
	return user.Email, code, nil
}

func (s *Service) resolve(ctx context.Context, identifier string) (*domain.User, error) {
	trimmed := strings.TrimSpace(identifier)
	if trimmed == "" {
		return nil, fmt.Errorf("Ingresa tus credenciales")
	}
	if strings.Contains(trimmed, "@") {
		return s.users.FindByEmail(ctx, trimmed)
	}
	return s.users.FindByUsername(ctx, trimmed)
}

type accessClaims struct {
	jwt.RegisteredClaims
	Name     string `json:"name,omitempty"`
	Username string `json:"preferred_username,omitempty"`
	Role     string `json:"role,omitempty"`
}

func (s *Service) issueToken(user domain.User) (string, error) {
	now := time.Now()
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    s.cfg.Issuer,
			Audience:  jwt.ClaimStrings{s.cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
		},
		Name:     user.Name,
		Username: user.Username,
		Role:     string(user.Role),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.Secret)
}

// VerifyToken validates a bearer token and loads the user it names.
func (s *Service) VerifyToken(ctx context.Context, tokenString string) (*domain.User, error) {
	claims := &accessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
		}
		return s.cfg.Secret, nil
	}, jwt.WithLeeway(30*time.Second))
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("El token de acceso es inválido")
	}
	if s.cfg.Issuer != "" && claims.Issuer != s.cfg.Issuer {
		return nil, fmt.Errorf("El token de acceso es inválido")
	}
	if s.cfg.Audience != "" && !containsAudience(claims.Audience, s.cfg.Audience) {
		return nil, fmt.Errorf("El token de acceso es inválido")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("El token de acceso es inválido")
	}

	user, err := s.users.FindByID(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("La cuenta ya no existe")
	}
	return user, nil
}

func containsAudience(audience jwt.ClaimStrings, expected string) bool {
	for _, a := range audience {
		if a == expected {
			return true
		}
	}
	return false
}
