package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Locals keys set on authenticated admin requests.
const (
	LocalAdminID    = "admin_id"
	LocalAdminEmail = "admin_email"
	LocalTokenID    = "token_jti"
	LocalTokenExp   = "token_exp"
)

type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type JWTConfig struct {
	Secret string
	// Revocations is optional; without it logged-out tokens stay valid until
	// they expire.
	Revocations RevocationChecker
}

// RequireAdminJWT accepts only HS256 tokens issued by admin login.
func RequireAdminJWT(cfg JWTConfig) fiber.Handler {
	secret := []byte(cfg.Secret)

	return func(c *fiber.Ctx) error {
		auth := c.Get("Authorization")
		if auth == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(auth, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
		}

		token, err := jwt.Parse(strings.TrimSpace(parts[1]), func(t *jwt.Token) (any, error) {
			return secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
		if err != nil || token == nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token claims")
		}
		if typ, _ := claims["typ"].(string); typ != "admin" {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token type")
		}

		jti, _ := claims["jti"].(string)
		if cfg.Revocations != nil && jti != "" {
			revoked, err := cfg.Revocations.IsRevoked(c.UserContext(), jti)
			if err != nil {
				return fiber.NewError(fiber.StatusServiceUnavailable, "token check unavailable")
			}
			if revoked {
				return fiber.NewError(fiber.StatusUnauthorized, "token revoked")
			}
		}

		if sub, _ := claims["sub"].(string); sub != "" {
			c.Locals(LocalAdminID, sub)
		}
		if email, _ := claims["email"].(string); email != "" {
			c.Locals(LocalAdminEmail, email)
		}
		c.Locals(LocalTokenID, jti)
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			c.Locals(LocalTokenExp, exp.Time)
		} else {
			c.Locals(LocalTokenExp, time.Time{})
		}

		return c.Next()
	}
}
