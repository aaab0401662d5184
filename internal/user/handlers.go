package user

import (
	"errors"
	"strconv"

	"backend-snapfeed/internal/shared/envelope"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/", func(c *fiber.Ctx) error {
		f := Filters{
			Name:     c.Query("name"),
			Email:    c.Query("email"),
			NickName: c.Query("nick_name"),
			Gender:   c.Query("gender"),
			AgeMin:   c.QueryInt("age_min"),
			AgeMax:   c.QueryInt("age_max"),
		}
		users, err := svc.List(c.Context(), f)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(envelope.Fail(err.Error()))
		}
		return c.JSON(envelope.Data(users))
	})

	r.Get("/check-nickname", func(c *fiber.Ctx) error {
		nick := c.Query("value")
		if nick == "" {
			return c.Status(fiber.StatusBadRequest).JSON(envelope.Fail("value required"))
		}
		exists, err := svc.NicknameExists(c.Context(), nick)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(envelope.Fail(err.Error()))
		}
		return c.JSON(envelope.Data(fiber.Map{"exists": exists}))
	})

	r.Get("/check-email", func(c *fiber.Ctx) error {
		email := c.Query("value")
		if email == "" {
			return c.Status(fiber.StatusBadRequest).JSON(envelope.Fail("value required"))
		}
		exists, err := svc.EmailExists(c.Context(), email)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(envelope.Fail(err.Error()))
		}
		return c.JSON(envelope.Data(fiber.Map{"exists": exists}))
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(envelope.Fail("invalid user id"))
		}
		u, err := svc.GetByID(c.Context(), id)
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(envelope.Fail("user not found"))
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(envelope.Fail(err.Error()))
		}
		return c.JSON(envelope.Data(u))
	})

	r.Put("/:id", authMiddleware, func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(envelope.Fail("invalid user id"))
		}
		var patch UpdateUser
		if err := c.BodyParser(&patch); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(envelope.Fail("invalid payload"))
		}
		u, err := svc.Update(c.Context(), id, patch)
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(envelope.Fail("user not found"))
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(envelope.Fail(err.Error()))
		}
		return c.JSON(envelope.Data(u))
	})
}
