package server

import (
	"backend-snapfeed/internal/auth"
	"backend-snapfeed/internal/comment"
	"backend-snapfeed/internal/config"
	"backend-snapfeed/internal/guard"
	"backend-snapfeed/internal/like"
	"backend-snapfeed/internal/post"
	"backend-snapfeed/internal/session"
	"backend-snapfeed/internal/shared/envelope"
	"backend-snapfeed/internal/storage"
	"backend-snapfeed/internal/stream"
	"backend-snapfeed/internal/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App      *fiber.App
	Cfg      config.Config
	DB       *pgxpool.Pool
	Redis    *redis.Client
	Stream   *stream.Hub
	Sessions *session.Store
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	users := user.NewService(db)
	authSvc := auth.NewService(cfg.JWTSecret, db, users)
	sessions := session.NewStore(redisClient, cfg.SessionTTL, authSvc.LoadSession)
	authSvc.SetSessions(sessions)

	hub := stream.NewHub(redisClient)
	authSvc.Notify = hub.BroadcastEvent

	s := &Server{
		App:      app,
		Cfg:      cfg,
		DB:       db,
		Redis:    redisClient,
		Stream:   hub,
		Sessions: sessions,
	}

	registerRoutes(s, users, authSvc)
	return s
}

func registerRoutes(s *Server, users *user.Service, authSvc *auth.Service) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)
	g := guard.New(s.Sessions)

	auth.RegisterRoutes(s.App.Group("/auth"), authSvc, jwtMiddleware, g.GuestOnly)
	user.RegisterRoutes(s.App.Group("/users"), users, jwtMiddleware)
	comments := comment.NewService(s.DB)
	post.RegisterRoutes(s.App.Group("/posts"), post.NewService(s.DB), jwtMiddleware)
	comment.RegisterRoutes(s.App.Group("/comments"), comments, jwtMiddleware)

	// feed detail view fetches a post's comments off the post URL
	s.App.Get("/posts/:id/comments", func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(envelope.Fail("invalid post id"))
		}
		list, err := comments.ListByPost(c.Context(), int64(id))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(envelope.Fail(err.Error()))
		}
		return c.JSON(envelope.Data(list))
	})
	like.RegisterRoutes(s.App.Group("/likes"), like.NewPostLikes(s.DB), like.NewCommentLikes(s.DB), jwtMiddleware)
	storage.RegisterRoutes(s.App.Group("/storage"), storage.NewService(s.DB, s.Cfg.ImageBaseURL), jwtMiddleware)
	auth.RegisterAdminRoutes(s.App.Group("/admin", g.RequireAdmin), authSvc, users)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)

	s.App.Get("/me", g.RequireAuth, func(c *fiber.Ctx) error {
		return c.JSON(envelope.Data(c.Locals("session")))
	})
}
