package main

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"

	"github.com/onlypoly/backend/app/controllers"
	"github.com/onlypoly/backend/pkg/routes"
	"github.com/onlypoly/backend/platform/logging"
	socket "github.com/onlypoly/backend/platform/sockets"
)

func main() {
	logging.Init()

	app := fiber.New()

	app.Use(cors.New())
	routes.AuthRoutes(app)
	routes.GameRoutes(app)

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "secret"
	}
	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(secret),
	}))

	app.Get("/user/cur", controllers.Cur)
	go socket.CreateSocketIOServer()
	app.Listen(":4101")
}
