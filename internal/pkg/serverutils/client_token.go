package serverutils

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// There are no user accounts: the frontend fetches an anonymous client
// token on first load and sends it with every request. The token scopes
// workspaces, history and quotas to one browser.

const clientTokenTTL = 30 * 24 * time.Hour

// IssueClientToken mints a token for a fresh anonymous client id.
func IssueClientToken(secret string) (string, string, error) {
	clientID := uuid.NewString()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"client_id": clientID,
		"exp":       time.Now().Add(clientTokenTTL).Unix(),
		"iat":       time.Now().Unix(),
	})

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", "", err
	}
	return signed, clientID, nil
}

// ParseClientToken verifies a token and returns the client id it carries.
func ParseClientToken(secret, tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", jwt.ErrTokenMalformed
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", jwt.ErrTokenInvalidClaims
	}
	clientID, _ := claims["client_id"].(string)
	if clientID == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return clientID, nil
}

// ClientTokenMiddleware authenticates the anonymous client token and puts
// the client id into ctx.Locals("client_id").
func ClientTokenMiddleware(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Missing token"))
		}

		clientID, err := ParseClientToken(secret, authHeader[7:])
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid token"))
		}

		ctx.Locals("client_id", clientID)
		return ctx.Next()
	}
}
