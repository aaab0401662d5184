package comment

import (
	"errors"
	"strconv"

	"backend-snapfeed/internal/shared/envelope"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/post/:postID", func(c *fiber.Ctx) error {
		postID, err := strconv.ParseInt(c.Params("postID"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(envelope.Fail("invalid post id"))
		}
		comments, err := svc.ListByPost(c.Context(), postID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(envelope.Fail(err.Error()))
		}
		return c.JSON(envelope.Data(comments))
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(envelope.Fail("invalid comment id"))
		}
		detail, err := svc.GetByID(c.Context(), id)
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(envelope.Fail("comment not found"))
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(envelope.Fail(err.Error()))
		}
		return c.JSON(envelope.Data(detail))
	})

	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var input CreateComment
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(envelope.Fail("invalid payload"))
		}
		if input.PostID == 0 || input.UserID == "" || input.Comment == "" {
			return c.Status(fiber.StatusBadRequest).JSON(envelope.Fail("post_id, user_id and comment required"))
		}
		created, err := svc.Create(c.Context(), input)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(envelope.Fail(err.Error()))
		}
		return c.Status(fiber.StatusCreated).JSON(envelope.Data(created))
	})

	r.Delete("/:id", authMiddleware, func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(envelope.FailResult("invalid comment id"))
		}
		err = svc.Delete(c.Context(), id)
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(envelope.FailResult("comment not found"))
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(envelope.FailResult(err.Error()))
		}
		return c.JSON(envelope.OK())
	})
}
