// file: internals/middlewares/setup.go
package middlewares

import (
	"github.com/gofiber/fiber/v2"

	loggermw "hadirku_backend/internals/middlewares/logger"
)

// SetupMiddlewares memasang middleware global dengan urutan yang benar:
// recovery paling luar, lalu cors, logger, dan rate limiter.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(loggermw.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}
