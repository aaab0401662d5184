package like

import (
	"errors"
	"strconv"
	"strings"

	"backend-snapfeed/internal/shared/envelope"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, posts *PostLikes, comments *CommentLikes, authMiddleware fiber.Handler) {
	r.Post("/posts/:postID/toggle", authMiddleware, func(c *fiber.Ctx) error {
		postID, userID, err := targetAndUser(c, "postID")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(envelope.Fail(err.Error()))
		}
		liked, err := posts.Toggle(c.Context(), userID, postID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(envelope.Fail(err.Error()))
		}
		return c.JSON(envelope.Data(fiber.Map{"liked": liked}))
	})

	r.Post("/posts/:postID", authMiddleware, func(c *fiber.Ctx) error {
		postID, userID, err := targetAndUser(c, "postID")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(envelope.Fail(err.Error()))
		}
		l, err := posts.Like(c.Context(), userID, postID)
		if errors.Is(err, ErrAlreadyLiked) {
			return c.Status(fiber.StatusConflict).JSON(envelope.Fail(err.Error()))
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(envelope.Fail(err.Error()))
		}
		return c.Status(fiber.StatusCreated).JSON(envelope.Data(l))
	})

	r.Delete("/posts/:postID", authMiddleware, func(c *fiber.Ctx) error {
		postID, userID, err := targetAndUser(c, "postID")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(envelope.FailResult(err.Error()))
		}
		removed, err := posts.Unlike(c.Context(), userID, postID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(envelope.FailResult(err.Error()))
		}
		if !removed {
			return c.Status(fiber.StatusNotFound).JSON(envelope.FailResult("like not found"))
		}
		return c.JSON(envelope.OK())
	})

	r.Get("/posts/:postID/liked", func(c *fiber.Ctx) error {
		postID, userID, err := targetAndUser(c, "postID")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(envelope.Fail(err.Error()))
		}
		liked, err := posts.Liked(c.Context(), userID, postID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(envelope.Fail(err.Error()))
		}
		return c.JSON(envelope.Data(fiber.Map{"liked": liked}))
	})

	r.Get("/posts/:postID/count", func(c *fiber.Ctx) error {
		postID, err := strconv.ParseInt(c.Params("postID"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(envelope.Fail("invalid post id"))
		}
		count, err := posts.Count(c.Context(), postID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(envelope.Fail(err.Error()))
		}
		return c.JSON(envelope.Data(fiber.Map{"count": count}))
	})

	r.Get("/posts/:postID/users", func(c *fiber.Ctx) error {
		postID, err := strconv.ParseInt(c.Params("postID"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(envelope.Fail("invalid post id"))
		}
		likes, err := posts.ListByPostWithUser(c.Context(), postID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(envelope.Fail(err.Error()))
		}
		return c.JSON(envelope.Data(likes))
	})

	// batched counts for feed rendering, ids comma separated
	r.Get("/posts/counts", func(c *fiber.Ctx) error {
		ids, err := parseIDList(c.Query("ids"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(envelope.Fail("invalid ids"))
		}
		counts, err := posts.CountByPosts(c.Context(), ids)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(envelope.Fail(err.Error()))
		}
		return c.JSON(envelope.Data(counts))
	})

	r.Get("/comments/:commentID/liked", func(c *fiber.Ctx) error {
		commentID, userID, err := targetAndUser(c, "commentID")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(envelope.Fail(err.Error()))
		}
		liked, err := comments.Liked(c.Context(), userID, commentID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(envelope.Fail(err.Error()))
		}
		return c.JSON(envelope.Data(fiber.Map{"liked": liked}))
	})

	r.Get("/comments/:commentID/count", func(c *fiber.Ctx) error {
		commentID, err := strconv.ParseInt(c.Params("commentID"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(envelope.Fail("invalid comment id"))
		}
		count, err := comments.Count(c.Context(), commentID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(envelope.Fail(err.Error()))
		}
		return c.JSON(envelope.Data(fiber.Map{"count": count}))
	})

	r.Post("/comments/:commentID/toggle", authMiddleware, func(c *fiber.Ctx) error {
		commentID, userID, err := targetAndUser(c, "commentID")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(envelope.Fail(err.Error()))
		}
		liked, err := comments.Toggle(c.Context(), userID, commentID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(envelope.Fail(err.Error()))
		}
		return c.JSON(envelope.Data(fiber.Map{"liked": liked}))
	})

	r.Post("/comments/:commentID", authMiddleware, func(c *fiber.Ctx) error {
		commentID, userID, err := targetAndUser(c, "commentID")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(envelope.Fail(err.Error()))
		}
		l, err := comments.Like(c.Context(), userID, commentID)
		if errors.Is(err, ErrAlreadyLiked) {
			return c.Status(fiber.StatusConflict).JSON(envelope.Fail(err.Error()))
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(envelope.Fail(err.Error()))
		}
		return c.Status(fiber.StatusCreated).JSON(envelope.Data(l))
	})

	r.Delete("/comments/:commentID", authMiddleware, func(c *fiber.Ctx) error {
		commentID, userID, err := targetAndUser(c, "commentID")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(envelope.FailResult(err.Error()))
		}
		removed, err := comments.Unlike(c.Context(), userID, commentID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(envelope.FailResult(err.Error()))
		}
		if !removed {
			return c.Status(fiber.StatusNotFound).JSON(envelope.FailResult("like not found"))
		}
		return c.JSON(envelope.OK())
	})
}

func targetAndUser(c *fiber.Ctx, param string) (int64, string, error) {
	id, err := strconv.ParseInt(c.Params(param), 10, 64)
	if err != nil {
		return 0, "", errors.New("invalid target id")
	}
	userID, _ := c.Locals("user_id").(string)
	if userID == "" {
		userID = c.Query("user_id")
	}
	if userID == "" {
		return 0, "", errors.New("user_id required")
	}
	return id, userID, nil
}

func parseIDList(raw string) ([]int64, error) {
	if raw == "" {
		return nil, errors.New("empty id list")
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
