package controller

import (
	"ai-code-debugger/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
)

type IClientController interface {
	RegisterRoutes(r fiber.Router)
	IssueToken(ctx *fiber.Ctx) error
}

type clientController struct {
	jwtSecret string
}

func NewClientController(jwtSecret string) IClientController {
	return &clientController{
		jwtSecret: jwtSecret,
	}
}

func (c *clientController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/client/v1")
	h.Get("token", c.IssueToken)
}

// IssueToken hands a fresh anonymous token to the frontend. Unauthenticated
// on purpose: this is how a new browser gets its identity.
func (c *clientController) IssueToken(ctx *fiber.Ctx) error {
	token, clientId, err := serverutils.IssueClientToken(c.jwtSecret)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success issue client token", fiber.Map{
		"token":     token,
		"client_id": clientId,
	}))
}
