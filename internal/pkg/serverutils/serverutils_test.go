package serverutils

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"ai-code-debugger/pkg/usage"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRequest(t *testing.T) {
	type req struct {
		Code string `validate:"required"`
		Mode string `validate:"omitempty,oneof=basic detailed performance"`
	}

	assert.NoError(t, ValidateRequest(req{Code: "x = 1"}))
	assert.NoError(t, ValidateRequest(req{Code: "x = 1", Mode: "detailed"}))

	err := ValidateRequest(req{})
	require.Error(t, err)
	fiberErr, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusBadRequest, fiberErr.Code)
	assert.Contains(t, fiberErr.Message, "Code")

	err = ValidateRequest(req{Code: "x", Mode: "bogus"})
	require.Error(t, err)
}

func TestErrorHandlerMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/limit", func(ctx *fiber.Ctx) error {
		return &usage.LimitExceededError{Limit: 50, Used: 51, ResetAfter: time.Now().Add(time.Hour)}
	})
	app.Get("/fiber", func(ctx *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Analysis not found")
	})
	app.Get("/boom", func(ctx *fiber.Ctx) error {
		return assert.AnError
	})

	res, err := app.Test(httptest.NewRequest("GET", "/limit", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, res.StatusCode)
	var env Envelope
	require.NoError(t, json.NewDecoder(res.Body).Decode(&env))
	assert.False(t, env.Success)
	assert.NotNil(t, env.Data)

	res, err = app.Test(httptest.NewRequest("GET", "/fiber", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)

	res, err = app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, res.StatusCode)
}

func TestClientTokenRoundTrip(t *testing.T) {
	token, clientId, err := IssueClientToken("test-secret")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, clientId)

	parsed, err := ParseClientToken("test-secret", token)
	require.NoError(t, err)
	assert.Equal(t, clientId, parsed)

	_, err = ParseClientToken("other-secret", token)
	assert.Error(t, err)

	_, err = ParseClientToken("test-secret", "not-a-token")
	assert.Error(t, err)
}

func TestParseClientTokenRejectsForeignAlgorithm(t *testing.T) {
	// Same secret, different HMAC variant: only HS256 may pass
	token := jwt.NewWithClaims(jwt.SigningMethodHS384, jwt.MapClaims{
		"client_id": uuid.NewString(),
		"exp":       time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = ParseClientToken("test-secret", signed)
	assert.Error(t, err)
}

func TestClientTokenMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(ClientTokenMiddleware("test-secret"))
	app.Get("/me", func(ctx *fiber.Ctx) error {
		return ctx.SendString(ctx.Locals("client_id").(string))
	})

	// no token
	res, err := app.Test(httptest.NewRequest("GET", "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)

	// valid token
	token, clientId, err := IssueClientToken("test-secret")
	require.NoError(t, err)
	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Equal(t, clientId, string(body))
}
