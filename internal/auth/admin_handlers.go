package auth

import (
	"errors"
	"strconv"

	"backend-snapfeed/internal/shared/envelope"
	"backend-snapfeed/internal/user"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

// RegisterAdminRoutes exposes the admin panel's user management. The caller
// is expected to gate the group with an admin guard.
func RegisterAdminRoutes(r fiber.Router, svc *Service, users *user.Service) {
	r.Get("/users", func(c *fiber.Ctx) error {
		f := user.Filters{
			Name:     c.Query("name"),
			Email:    c.Query("email"),
			NickName: c.Query("nick_name"),
			Gender:   c.Query("gender"),
		}
		f.AgeMin, _ = strconv.Atoi(c.Query("age_min"))
		f.AgeMax, _ = strconv.Atoi(c.Query("age_max"))

		list, err := users.List(c.Context(), f)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(envelope.Fail(err.Error()))
		}
		return c.JSON(envelope.Data(list))
	})

	r.Post("/users", func(c *fiber.Ctx) error {
		var req RegisterRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(envelope.Fail("invalid payload"))
		}
		if errs := ValidateRegister(req); len(errs) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(envelope.Fail(joinFieldErrors(errs)))
		}
		profile, err := svc.AdminCreateUser(c.Context(), req)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(envelope.Fail(Translate(err)))
		}
		return c.Status(fiber.StatusCreated).JSON(envelope.Data(profile))
	})

	r.Delete("/users/:id", func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(envelope.FailResult("invalid user id"))
		}
		if err := svc.AdminDeleteUser(c.Context(), id); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.Status(fiber.StatusNotFound).JSON(envelope.FailResult("user not found"))
			}
			return c.Status(fiber.StatusInternalServerError).JSON(envelope.FailResult(err.Error()))
		}
		return c.JSON(envelope.OK())
	})
}
