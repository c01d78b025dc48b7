// Package service signs in the single back-office administrator.
package service

import (
	"errors"
	"strings"
	"time"

	"inmobiliaria_backend/internal/auth/password"
	"inmobiliaria_backend/internal/auth/transport"
	"inmobiliaria_backend/platform/config"
	"inmobiliaria_backend/platform/logger"

	"github.com/golang-jwt/jwt/v5"
)

// adminSubject is the fixed user ID of the administrator.
const adminSubject = "1"

// devPassword is accepted in development when no hash is configured.
const devPassword = "password123"

var ErrInvalidCredentials = errors.New("invalid credentials")

type Service struct {
	cfg          config.AdminConfig
	passwordHash string
	log          *logger.Logger
	now          func() time.Time
}

// New prepares the credential check. Outside development a configured hash
// is required, which config.Load already enforces.
func New(cfg config.AdminConfig, development bool, log *logger.Logger) (*Service, error) {
	hash := cfg.GetAdminPasswordHash()
	if hash == "" && development {
		generated, err := password.Hash(devPassword)
		if err != nil {
			return nil, err
		}
		hash = generated
		log.Warn("ADMIN_PASSWORD_HASH not set, using development password")
	}
	if hash == "" {
		return nil, errors.New("admin password hash not configured")
	}

	return &Service{cfg: cfg, passwordHash: hash, log: log, now: time.Now}, nil
}

// SignIn checks the credentials and issues an access token.
func (s *Service) SignIn(email, plainPassword string) (string, transport.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if email != strings.ToLower(s.cfg.GetAdminEmail()) {
		s.log.AuthEvent("sign_in", email, false, "unknown email")
		return "", transport.User{}, ErrInvalidCredentials
	}
	if err := password.Compare(s.passwordHash, plainPassword); err != nil {
		s.log.AuthEvent("sign_in", email, false, "wrong password")
		return "", transport.User{}, ErrInvalidCredentials
	}

	token, err := s.issueAccessToken(email)
	if err != nil {
		return "", transport.User{}, err
	}

	s.log.AuthEvent("sign_in", email, true, "")
	return token, s.User(), nil
}

// User is the administrator profile.
func (s *Service) User() transport.User {
	return transport.User{ID: adminSubject, Email: s.cfg.GetAdminEmail(), Name: s.cfg.GetAdminName()}
}

// TokenTTL is how long issued tokens and the auth cookie live.
func (s *Service) TokenTTL() time.Duration {
	return s.cfg.GetAccessTokenTTL()
}

func (s *Service) issueAccessToken(email string) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   adminSubject,
		"email": email,
		"type":  "access",
		"roles": []string{"admin"},
		"iat":   now.Unix(),
		"exp":   now.Add(s.cfg.GetAccessTokenTTL()).Unix(),
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenObj.SignedString([]byte(s.cfg.GetJWTAccessSecret()))
}
