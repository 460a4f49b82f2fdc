package authutils

import (
	"time"

	"campus-jobs-backend/config"
	"campus-jobs-backend/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// GetToken signs a token with the claims the API expects. Tokens are issued by
// the identity provider, this is used by tooling and tests.
func GetToken(userID, name string, role models.UserRole) (tokenString string, err error) {
	claims := jwt.MapClaims{
		"name": name,
		"sub":  userID,
		"role": string(role),
		"exp":  time.Now().Add(time.Second * time.Duration(config.Conf.Auth.JWTExpireInSec)).Unix(),
		"iat":  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.Conf.Auth.JWTSecret))
}

func GetClaims(ctx *fiber.Ctx) jwt.MapClaims {
	token, ok := ctx.Locals("user").(*jwt.Token)
	if !ok {
		return jwt.MapClaims{}
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return jwt.MapClaims{}
	}
	return claims
}

func claimString(claims jwt.MapClaims, key string) string {
	value, _ := claims[key].(string)
	return value
}

func GetUserID(ctx *fiber.Ctx) string {
	return claimString(GetClaims(ctx), "sub")
}

func GetUserRole(ctx *fiber.Ctx) models.UserRole {
	return models.UserRole(claimString(GetClaims(ctx), "role"))
}

func GetUserName(ctx *fiber.Ctx) string {
	return claimString(GetClaims(ctx), "name")
}
