package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Service аутентификация администратора
type Service struct {
	cfg          Config
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса аутентификации
func NewService(cfg Config, logger Logger) *Service {
	return &Service{
		cfg:          cfg,
		timeProvider: RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Login проверяет пароль и выдаёт токен администратора
func (s *Service) Login(_ context.Context, password string) (*LoginResponse, error) {
	if password == "" || s.cfg.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}

	err := bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			s.logger.Warn("Login: wrong admin password")
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: failed to verify password: %v", err)
		return nil, fmt.Errorf("%w: Login - verify password: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	expiresAt := now.Add(s.cfg.TokenTTL)
	token, err := s.sign(TokenAdmin, now, expiresAt)
	if err != nil {
		s.logger.Error("Login: failed to sign token: %v", err)
		return nil, err
	}

	s.logger.Info("Login: admin token issued, expires at %s", expiresAt.Format("2006-01-02 15:04"))
	return &LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: expiresAt,
	}, nil
}

// ParseToken проверяет токен администратора
func (s *Service) ParseToken(token string) (*Claims, error) {
	return s.parse(token, TokenAdmin)
}

// IssueState выдаёт подписанный state для OAuth-привязки календаря
func (s *Service) IssueState() (string, error) {
	now := s.timeProvider.Now()
	return s.sign(TokenState, now, now.Add(stateTTL))
}

// VerifyState проверяет state, вернувшийся с OAuth-callback
func (s *Service) VerifyState(state string) error {
	_, err := s.parse(state, TokenState)
	return err
}

// HashPassword bcrypt-хэш для admin.password_hash
func HashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// ExtractBearer извлекает токен из заголовка Authorization
func ExtractBearer(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(prefix):]), true
}

func (s *Service) sign(tokenType TokenType, issuedAt, expiresAt time.Time) (string, error) {
	claims := Claims{
		Type: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			Issuer:    s.cfg.Issuer,
			Subject:   adminSubject,
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("%w: sign token: %v", ErrInternal, err)
	}
	return signed, nil
}

func (s *Service) parse(token string, tokenType TokenType) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	}, jwt.WithTimeFunc(s.timeProvider.Now), jwt.WithIssuer(s.cfg.Issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Type != tokenType {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
