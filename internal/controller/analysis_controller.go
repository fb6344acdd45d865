package controller

import (
	"io"

	"ai-code-debugger/internal/dto"
	"ai-code-debugger/internal/pkg/serverutils"
	"ai-code-debugger/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAnalysisController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Analyze(ctx *fiber.Ctx) error
	Upload(ctx *fiber.Ctx) error
	GetAllAnalyses(ctx *fiber.Ctx) error
	GetAnalysis(ctx *fiber.Ctx) error
}

type analysisController struct {
	analysisService service.IAnalysisService
}

func NewAnalysisController(analysisService service.IAnalysisService) IAnalysisController {
	return &analysisController{
		analysisService: analysisService,
	}
}

func (c *analysisController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/debugger/v1")
	h.Use(auth)
	h.Post("analyze", c.Analyze)
	h.Post("upload", c.Upload)
	h.Get("analyses", c.GetAllAnalyses)
	h.Get("analyses/:id", c.GetAnalysis)
}

func (c *analysisController) Analyze(ctx *fiber.Ctx) error {
	clientId := ctx.Locals("client_id").(string)

	var req dto.AnalyzeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.analysisService.Analyze(ctx.Context(), clientId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success analyze code", res))
}

func (c *analysisController) Upload(ctx *fiber.Ctx) error {
	clientId := ctx.Locals("client_id").(string)

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Missing file upload")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	res, err := c.analysisService.AnalyzeUpload(ctx.Context(), clientId, fileHeader.Filename, content)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success analyze uploaded file", res))
}

func (c *analysisController) GetAllAnalyses(ctx *fiber.Ctx) error {
	clientId := ctx.Locals("client_id").(string)

	res, err := c.analysisService.GetAllAnalyses(ctx.Context(), clientId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get analyses", res))
}

func (c *analysisController) GetAnalysis(ctx *fiber.Ctx) error {
	clientId := ctx.Locals("client_id").(string)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid analysis id")
	}

	res, err := c.analysisService.GetAnalysis(ctx.Context(), clientId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get analysis", res))
}
