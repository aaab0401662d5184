package storage

import (
	"errors"

	"backend-snapfeed/internal/shared/envelope"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/upload", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			FileName string `json:"file_name"`
			Kind     string `json:"kind"`
		}
		_ = c.BodyParser(&body)
		if body.Kind == "" {
			body.Kind = KindPostImage
		}

		userID, _ := c.Locals("user_id").(string)
		obj, err := svc.SaveImage(c.Context(), userID, body.FileName, body.Kind)
		if errors.Is(err, ErrInvalidKind) {
			return c.Status(fiber.StatusBadRequest).JSON(envelope.Fail(err.Error()))
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(envelope.Fail(err.Error()))
		}
		return c.Status(fiber.StatusCreated).JSON(envelope.Data(obj))
	})

	r.Get("/user/:userID", func(c *fiber.Ctx) error {
		objects, err := svc.ListByUser(c.Context(), c.Params("userID"))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(envelope.Fail(err.Error()))
		}
		return c.JSON(envelope.Data(objects))
	})
}
