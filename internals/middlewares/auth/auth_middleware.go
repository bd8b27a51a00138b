// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"hadirku_backend/internals/configs"
)

// AuthMiddleware memverifikasi access token dan menaruh identitas terverifikasi
// di Locals: user_id (worker), company_id, role. Engine di bawahnya hanya
// bergantung pada tiga nilai ini, bukan pada detail kriptografi token.
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		secretKey := configs.JWTSecret
		if secretKey == "" {
			log.Println("[ERROR] JWT_SECRET kosong")
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("metode signing tidak didukung: %v", token.Header["alg"])
			}
			return []byte(secretKey), nil
		}); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token parse error")
		}

		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token expired")
		}

		userID, ok := claims["user_id"].(string)
		if !ok || strings.TrimSpace(userID) == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid or missing user ID")
		}
		c.Locals("user_id", strings.TrimSpace(userID))

		if companyID, ok := claims["company_id"].(string); ok {
			c.Locals("company_id", strings.TrimSpace(companyID))
		}
		if role, ok := claims["role"].(string); ok {
			c.Locals("role", strings.TrimSpace(role))
		}

		return c.Next()
	}
}

// extractBearerToken mengambil token dari Authorization header atau cookie.
func extractBearerToken(c *fiber.Ctx) (string, error) {
	const prefix = "Bearer "
	auth := c.Get("Authorization")
	if strings.HasPrefix(auth, prefix) {
		if tok := strings.TrimSpace(auth[len(prefix):]); tok != "" {
			return tok, nil
		}
	}
	if tok := strings.TrimSpace(c.Cookies("access_token")); tok != "" {
		return tok, nil
	}
	return "", errors.New("Unauthorized - Missing token")
}

// validateTokenExpiry mengecek exp dengan sedikit leeway untuk clock skew.
func validateTokenExpiry(claims jwt.MapClaims, leeway time.Duration) error {
	expVal, ok := claims["exp"].(float64)
	if !ok {
		return errors.New("exp tidak ada di claims")
	}
	expTime := time.Unix(int64(expVal), 0)
	if time.Now().After(expTime.Add(leeway)) {
		return errors.New("token kadaluarsa")
	}
	return nil
}
