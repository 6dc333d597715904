package serverutils

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// UserIdKey is the fiber Locals key holding the caller's subject claim.
const UserIdKey = "user_id"

// NewJwtMiddleware verifies HS256 bearer tokens signed with secret and stores
// the "sub" claim under UserIdKey. Tokens are issued elsewhere.
func NewJwtMiddleware(secret string) fiber.Handler {
	key := []byte(secret)
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get(fiber.HeaderAuthorization)
		if len(authHeader) < 7 || !strings.EqualFold(authHeader[:7], "Bearer ") {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Missing token"))
		}
		tokenStr := strings.TrimSpace(authHeader[7:])

		token, err := parser.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			return key, nil
		})
		if err != nil || !token.Valid {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Could not validate credentials"))
		}

		sub, err := token.Claims.GetSubject()
		if err != nil || sub == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid claims"))
		}

		ctx.Locals(UserIdKey, sub)
		return ctx.Next()
	}
}

// UserId returns the authenticated subject set by the JWT middleware.
func UserId(ctx *fiber.Ctx) string {
	id, _ := ctx.Locals(UserIdKey).(string)
	return id
}
