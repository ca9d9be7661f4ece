package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/domain"
	"storefront/internal/repos"
)

const (
	tokenIssuer   = "storefront"
	roleAdmin     = "admin"
	customerKind  = "c"
	defaultBcrypt = 12
)

type AuthConfig struct {
	AdminEmail        string
	AdminPassword     string
	AdminPasswordHash string
	AdminSecret       string
	AdminTokenTTL     time.Duration
	CustomerSecret    string
	BcryptCost        int
}

type adminClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

type AuthService struct {
	Users *repos.UserRepo

	adminEmail     string
	adminHash      []byte
	adminSecret    []byte
	adminTTL       time.Duration
	customerSecret []byte
	cost           int
	dummyHash      []byte
	compare        func(hash, password []byte) error
	now            func() time.Time
}

// NewAuthService prepares admin and customer credential checks. With neither
// an admin password nor a hash configured, admin login always fails.
func NewAuthService(users *repos.UserRepo, cfg AuthConfig) (*AuthService, error) {
	if cfg.AdminSecret == "" {
		return nil, errors.New("admin secret must not be empty")
	}
	s := &AuthService{
		Users:          users,
		adminEmail:     strings.ToLower(strings.TrimSpace(cfg.AdminEmail)),
		adminSecret:    []byte(cfg.AdminSecret),
		adminTTL:       cfg.AdminTokenTTL,
		customerSecret: []byte(cfg.CustomerSecret),
		cost:           cfg.BcryptCost,
		compare:        bcrypt.CompareHashAndPassword,
		now:            time.Now,
	}
	if s.adminTTL <= 0 {
		s.adminTTL = 12 * time.Hour
	}
	if len(s.customerSecret) == 0 {
		s.customerSecret = s.adminSecret
	}
	if s.cost == 0 {
		s.cost = defaultBcrypt
	}
	// Login compares unknown emails against dummyHash.
	dummy, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash placeholder: %w", err)
	}
	s.dummyHash = dummy
	switch {
	case cfg.AdminPasswordHash != "":
		s.adminHash = []byte(cfg.AdminPasswordHash)
	case cfg.AdminPassword != "":
		h, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), s.cost)
		if err != nil {
			return nil, fmt.Errorf("hash admin password: %w", err)
		}
		s.adminHash = h
	}
	return s, nil
}

// IssueAdminToken checks the configured admin credential pair and returns a
// signed bearer token.
func (s *AuthService) IssueAdminToken(email, password string) (string, error) {
	email = normalizeEmail(email)
	if s.adminHash == nil || s.adminEmail == "" {
		return "", ErrBadCreds
	}
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.adminEmail)) == 1
	passOK := bcrypt.CompareHashAndPassword(s.adminHash, []byte(password)) == nil
	if !emailOK || !passOK {
		return "", ErrBadCreds
	}

	now := s.now()
	claims := adminClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    tokenIssuer,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.adminTTL)),
		},
		Role: roleAdmin,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.adminSecret)
}

// VerifyAdminToken returns the admin identity carried by token.
func (s *AuthService) VerifyAdminToken(token string) (string, error) {
	claims := &adminClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.adminSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return "", ErrUnauthorized
	}
	if claims.Role != roleAdmin || claims.Subject == "" {
		return "", ErrUnauthorized
	}
	return claims.Subject, nil
}

func (s *AuthService) customerSig(email string) string {
	m := hmac.New(sha256.New, s.customerSecret)
	m.Write([]byte(email))
	return hex.EncodeToString(m.Sum(nil))
}

// SignCustomer returns "<email>.c.<hex hmac-sha256(secret, email)>".
func (s *AuthService) SignCustomer(email string) string {
	return email + "." + customerKind + "." + s.customerSig(email)
}

// VerifyCustomer returns the email bound to token. The signature and kind are
// taken from the right so emails containing dots verify.
func (s *AuthService) VerifyCustomer(token string) (string, bool) {
	i := strings.LastIndexByte(token, '.')
	if i <= 0 {
		return "", false
	}
	rest, sig := token[:i], token[i+1:]
	j := strings.LastIndexByte(rest, '.')
	if j <= 0 || rest[j+1:] != customerKind {
		return "", false
	}
	email := rest[:j]
	if !hmac.Equal([]byte(sig), []byte(s.customerSig(email))) {
		return "", false
	}
	return email, true
}

func normalizeEmail(e string) string { return strings.ToLower(strings.TrimSpace(e)) }

// Signup registers a customer and returns a customer token.
func (s *AuthService) Signup(in domain.CustomerSignup) (string, error) {
	email := normalizeEmail(in.Email)
	h, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	c := domain.Customer{
		Email:     email,
		Name:      strings.TrimSpace(in.Name),
		Hash:      string(h),
		CreatedAt: s.now().UTC(),
	}
	if err := s.Users.Create(c); err != nil {
		if errors.Is(err, repos.ErrDuplicate) {
			return "", kindErr(ErrAlreadyExists, "Account already exists")
		}
		return "", err
	}
	return s.SignCustomer(email), nil
}

func (s *AuthService) Login(email, password string) (string, error) {
	email = normalizeEmail(email)
	u, err := s.Users.ByEmail(email)
	if err != nil {
		_ = s.compare(s.dummyHash, []byte(password))
		return "", ErrBadCreds
	}
	if s.compare([]byte(u.Hash), []byte(password)) != nil {
		return "", ErrBadCreds
	}
	return s.SignCustomer(email), nil
}

// Profile returns the customer's profile. Identities minted without a stored
// account (e.g. OAuth dev login) get a profile with only the email.
func (s *AuthService) Profile(email string) domain.Profile {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return domain.Profile{Email: email}
	}
	return u.Profile()
}

func (s *AuthService) UpdateProfile(email string, in domain.ProfileUpdate) (domain.Profile, error) {
	u, err := s.Users.UpdateName(email, strings.TrimSpace(in.Name))
	if err != nil {
		return domain.Profile{}, kindErr(ErrNotFound, "Account not found")
	}
	return u.Profile(), nil
}
