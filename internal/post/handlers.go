package post

import (
	"errors"
	"strconv"
	"time"

	"backend-snapfeed/internal/shared/envelope"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/", func(c *fiber.Ctx) error {
		f := filtersFromQuery(c)
		if c.QueryBool("with_user") {
			posts, err := svc.ListWithAuthor(c.Context(), f)
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(envelope.Fail(err.Error()))
			}
			return c.JSON(envelope.Data(posts))
		}
		posts, err := svc.List(c.Context(), f)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(envelope.Fail(err.Error()))
		}
		return c.JSON(envelope.Data(posts))
	})

	r.Get("/user/:userID", func(c *fiber.Ctx) error {
		posts, err := svc.ListByUser(c.Context(), c.Params("userID"))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(envelope.Fail(err.Error()))
		}
		return c.JSON(envelope.Data(posts))
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(envelope.Fail("invalid post id"))
		}
		if c.QueryBool("with_user") {
			p, err := svc.GetByIDWithAuthor(c.Context(), id)
			if errors.Is(err, pgx.ErrNoRows) {
				return c.Status(fiber.StatusNotFound).JSON(envelope.Fail("post not found"))
			}
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(envelope.Fail(err.Error()))
			}
			return c.JSON(envelope.Data(p))
		}
		p, err := svc.GetByID(c.Context(), id)
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(envelope.Fail("post not found"))
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(envelope.Fail(err.Error()))
		}
		return c.JSON(envelope.Data(p))
	})

	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var input CreatePost
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(envelope.Fail("invalid payload"))
		}
		if input.UserID == "" || input.Description == "" {
			return c.Status(fiber.StatusBadRequest).JSON(envelope.Fail("user_id and description required"))
		}
		p, err := svc.Create(c.Context(), input)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(envelope.Fail(err.Error()))
		}
		return c.Status(fiber.StatusCreated).JSON(envelope.Data(p))
	})

	r.Put("/:id", authMiddleware, func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(envelope.Fail("invalid post id"))
		}
		var patch UpdatePost
		if err := c.BodyParser(&patch); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(envelope.Fail("invalid payload"))
		}
		p, err := svc.Update(c.Context(), id, patch)
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(envelope.Fail("post not found"))
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(envelope.Fail(err.Error()))
		}
		return c.JSON(envelope.Data(p))
	})

	r.Delete("/:id", authMiddleware, func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(envelope.FailResult("invalid post id"))
		}
		err = svc.Delete(c.Context(), id)
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(envelope.FailResult("post not found"))
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(envelope.FailResult(err.Error()))
		}
		return c.JSON(envelope.OK())
	})
}

func filtersFromQuery(c *fiber.Ctx) Filters {
	f := Filters{
		Description: c.Query("description"),
		LikesMin:    c.QueryInt("likes_min"),
		LikesMax:    c.QueryInt("likes_max"),
	}
	if v := c.Query("created_after"); v != "" {
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			f.CreatedAfter = ts
		}
	}
	if v := c.Query("created_before"); v != "" {
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			f.CreatedBefore = ts
		}
	}
	return f
}
