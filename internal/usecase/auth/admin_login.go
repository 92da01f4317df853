package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveAdmin      = errors.New("admin inactive")
)

type AdminFinder interface {
	FindByEmail(ctx context.Context, email string) (*Admin, error)
}

// Revoker remembers logged-out tokens until they would have expired anyway.
type Revoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
}

type Admin struct {
	ID           string
	Email        string
	PasswordHash string
	IsActive     bool
}

type LoginResult struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int    `json:"expiresIn"` // seconds
}

type AdminLoginUsecase struct {
	finder    AdminFinder
	revoker   Revoker
	jwtSecret []byte
	expMin    int
	log       *zap.Logger
	now       func() time.Time
}

func NewAdminLoginUsecase(finder AdminFinder, revoker Revoker, jwtSecret string, expiresMinutes int, log *zap.Logger) *AdminLoginUsecase {
	if expiresMinutes <= 0 {
		expiresMinutes = 60
	}
	return &AdminLoginUsecase{
		finder:    finder,
		revoker:   revoker,
		jwtSecret: []byte(jwtSecret),
		expMin:    expiresMinutes,
		log:       log,
		now:       time.Now,
	}
}

func (u *AdminLoginUsecase) Execute(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	admin, err := u.finder.FindByEmail(ctx, email)
	if err != nil {
		// Hide whether email exists
		return nil, ErrInvalidCredentials
	}
	if !admin.IsActive {
		return nil, ErrInactiveAdmin
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		u.log.Warn("admin login failed", zap.String("admin_id", admin.ID))
		return nil, ErrInvalidCredentials
	}

	now := u.now()
	exp := now.Add(time.Duration(u.expMin) * time.Minute)

	claims := jwt.MapClaims{
		"sub":   admin.ID,
		"typ":   "admin",
		"email": admin.Email,
		"jti":   uuid.NewString(),
		"iat":   now.Unix(),
		"exp":   exp.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(u.jwtSecret)
	if err != nil {
		return nil, err
	}

	u.log.Info("admin logged in", zap.String("admin_id", admin.ID))
	return &LoginResult{
		AccessToken: signed,
		ExpiresIn:   u.expMin * 60,
	}, nil
}

// Logout revokes a token by its jti for the rest of its lifetime. Tokens that
// have already expired need no entry.
func (u *AdminLoginUsecase) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if jti == "" {
		return ErrInvalidCredentials
	}
	ttl := expiresAt.Sub(u.now())
	if ttl <= 0 {
		return nil
	}
	if err := u.revoker.Revoke(ctx, jti, ttl); err != nil {
		return err
	}
	u.log.Info("admin logged out", zap.String("jti", jti))
	return nil
}
