package auth

import (
	"sort"
	"strings"

	"backend-snapfeed/internal/shared/envelope"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware, guestOnly fiber.Handler) {
	r.Post("/register", guestOnly, func(c *fiber.Ctx) error {
		var req RegisterRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(envelope.Fail("invalid payload"))
		}
		if errs := ValidateRegister(req); len(errs) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(envelope.Fail(joinFieldErrors(errs)))
		}
		profile, tokens, err := svc.Register(c.Context(), req)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(envelope.Fail(Translate(err)))
		}
		return c.Status(fiber.StatusCreated).JSON(envelope.Data(fiber.Map{
			"user":   profile,
			"tokens": tokens,
		}))
	})

	r.Post("/login", guestOnly, func(c *fiber.Ctx) error {
		var req LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(envelope.Fail("invalid payload"))
		}
		if errs := ValidateLogin(req); len(errs) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(envelope.Fail(joinFieldErrors(errs)))
		}
		profile, tokens, err := svc.Login(c.Context(), req)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(envelope.Fail(Translate(err)))
		}
		return c.JSON(envelope.Data(fiber.Map{
			"user":   profile,
			"tokens": tokens,
		}))
	})

	r.Post("/logout", authMiddleware, func(c *fiber.Ctx) error {
		token, _ := c.Locals("access_token").(string)
		if err := svc.Logout(c.Context(), token); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(envelope.FailResult(err.Error()))
		}
		return c.JSON(envelope.OK())
	})

	r.Get("/session", func(c *fiber.Ctx) error {
		token := bearerFromHeader(c.Get("Authorization"))
		rec, err := svc.CurrentSession(c.Context(), token)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(envelope.Fail(err.Error()))
		}
		return c.JSON(envelope.Data(rec))
	})

	r.Post("/refresh", func(c *fiber.Ctx) error {
		var req RefreshRequest
		if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
			return c.Status(fiber.StatusBadRequest).JSON(envelope.Fail("refresh_token required"))
		}
		tokens, err := svc.Refresh(c.Context(), req.RefreshToken)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(envelope.Fail(Translate(err)))
		}
		return c.JSON(envelope.Data(tokens))
	})
}

func joinFieldErrors(errs map[string]string) string {
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+errs[f])
	}
	return strings.Join(parts, "; ")
}
