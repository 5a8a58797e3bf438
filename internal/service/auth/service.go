package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"tablebook/internal/domain"
	"tablebook/internal/repository"
	postgresrepo "tablebook/internal/repository/postgres"
)

var (
	// ErrEmailTaken is returned when registering with an email that already
	// has an account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned on a failed login. Unknown email and
	// wrong password deliberately look the same to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned when a token fails parsing or validation.
	ErrInvalidToken = errors.New("invalid token")
)

type Config struct {
	Secret    string
	AccessTTL time.Duration
}

type Service struct {
	store *postgresrepo.Store
	cfg   Config
}

func New(store *postgresrepo.Store, cfg Config) *Service {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 24 * time.Hour
	}

	return &Service{store: store, cfg: cfg}
}

// Claims carry the user identity inside the signed token.
type Claims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

type RegisterParams struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// Register creates an account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, p RegisterParams) (*domain.User, error) {
	const op = "auth.Service.Register"

	if p.Role == "" {
		p.Role = domain.RoleCustomer
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	u := &domain.User{
		Name:         p.Name,
		Email:        p.Email,
		PasswordHash: string(hash),
		Role:         p.Role,
	}

	if _, err := s.store.Users().Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, fmt.Errorf("%s:%w", op, ErrEmailTaken)
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return u, nil
}

// Login verifies the credentials and issues a signed access token.
func (s *Service) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	const op = "auth.Service.Login"

	u, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, fmt.Errorf("%s:%w", op, ErrInvalidCredentials)
		}
		return "", nil, fmt.Errorf("%s:%w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("%s:%w", op, ErrInvalidCredentials)
	}

	token, err := s.issueToken(u)
	if err != nil {
		return "", nil, fmt.Errorf("%s:%w", op, err)
	}

	return token, u, nil
}

func (s *Service) issueToken(u *domain.User) (string, error) {
	now := time.Now()

	claims := Claims{
		Role: u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(u.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTTL)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
}

// ParseToken validates a token and returns the user ID and role it carries.
func (s *Service) ParseToken(tokenStr string) (int64, domain.Role, error) {
	const op = "auth.Service.ParseToken"

	var claims Claims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil || !token.Valid {
		return 0, "", fmt.Errorf("%s:%w", op, ErrInvalidToken)
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("%s:%w", op, ErrInvalidToken)
	}

	return id, claims.Role, nil
}
