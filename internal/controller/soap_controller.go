package controller

import (
	"clinivoice-be/internal/dto"
	"clinivoice-be/internal/pkg/serverutils"
	"clinivoice-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISOAPController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
}

type soapController struct {
	soapService service.ISOAPService
}

func NewSOAPController(soapService service.ISOAPService) ISOAPController {
	return &soapController{
		soapService: soapService,
	}
}

func (c *soapController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/soap/v1")
	h.Post("generate", c.Generate)
}

func (c *soapController) Generate(ctx *fiber.Ctx) error {
	var req dto.GenerateSOAPRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.soapService.Generate(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("SOAP note generated successfully", res))
}
