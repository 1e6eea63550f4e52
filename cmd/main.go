// Auth is the authentication backend of the NoteStack note taking app
package main

import (
	"fmt"
	"time"

	"github.com/VinukaThejana/go-utils/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberLogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/notestack/auth/config"
	"github.com/notestack/auth/connect"
	"github.com/notestack/auth/controllers"
	"github.com/notestack/auth/middleware"
	"github.com/notestack/auth/otp"
	"github.com/notestack/auth/services"
	"github.com/notestack/auth/utils"
)

var (
	env  config.Env
	conn connect.Connector
)

func init() {
	env.Load()

	conn.InitDatabase(&env)
	utils.CheckForMigrations(&conn, &env)

	conn.InitRatelimiter(&env)
	conn.InitRedis(&env)
	conn.InitMinioClient(&env)
}

func main() {
	registry := otp.NewRegistry(
		&utils.Email{Env: &env},
		&services.User{Conn: &conn},
		env.EmailDomain,
	)

	stop := make(chan struct{})
	defer close(stop)
	registry.StartSweeper(stop)

	app := fiber.New()
	if config.GetDevEnv(&env) == config.Dev {
		app.Use(fiberLogger.New())
	}

	app.Use(cors.New(cors.Config{
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowOrigins:     env.FrontendHostname,
		AllowCredentials: true,
		AllowMethods:     "*",
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusTooManyRequests)
		},
		SkipFailedRequests:     false,
		SkipSuccessfulRequests: false,
		LimiterMiddleware:      limiter.SlidingWindow{},
		Storage:                conn.Ratelimter,
	}))

	authC := controllers.Auth{
		Conn:     &conn,
		Env:      &env,
		Registry: registry,
	}
	storageC := controllers.Storage{
		Conn: &conn,
		Env:  &env,
	}
	systemC := controllers.System{
		Conn: &conn,
	}
	authM := middleware.Auth{
		Env: &env,
	}

	app.Route("/auth", func(router fiber.Router) {
		router.Post("/send-otp", authC.SendOTP)
		router.Post("/verify-otp", authC.VerifyOTP)
		router.Post("/signup", authC.Signup)
		router.Post("/login", authC.Login)
		router.Post("/user", authC.User)
	})

	app.Route("/storage", func(router fiber.Router) {
		router.Post("/pdf", authM.Check, storageC.UploadPDF)
	})

	app.Route("/system", func(router fiber.Router) {
		router.Get("/health", systemC.Health)
	})

	app.Route("/monitor", func(router fiber.Router) {
		router.Get("/metrics", monitor.New(monitor.Config{
			Title: "Monitor Auth",
		}))
	})

	logger.Errorf(app.Listen(fmt.Sprintf(":%s", env.Port)))
}
