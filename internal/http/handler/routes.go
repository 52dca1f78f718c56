package handler

import (
	"database/sql"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"ledger/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// metrics may be nil, in which case /metrics is not served.
func RegisterRoutes(app *fiber.App, db *sql.DB, userSvc service.UserService, metrics http.Handler) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())
	if metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(metrics))
	}

	users := app.Group("/users")
	users.Get("/", ListUsers(userSvc))
	users.Post("/", CreateUser(userSvc))
	// Static segments before /:id
	users.Get("/unique", CheckUnique(userSvc))
	users.Get("/lookup", LookupUser(userSvc))
	users.Get("/:id", GetUser(userSvc))
	users.Patch("/:id", UpdateUser(userSvc))
	users.Delete("/:id", DeleteUser(userSvc))
	users.Put("/:id/avatar", UploadAvatar(userSvc))
	users.Get("/:id/avatar", AvatarRedirect(userSvc))
}
