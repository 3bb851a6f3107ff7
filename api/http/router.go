package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Akshita-sr/pepper-AI-Ollama/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app.
func Register(
	app *fiber.App,
	auth *handlers.AuthHandler,
	health *handlers.HealthHandler,
	chat *handlers.ChatHandler,
	models *handlers.ModelsHandler,
	documents *handlers.DocumentsHandler,
	speak *handlers.SpeakHandler,
	authMW fiber.Handler,
) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", health.Health)
	v1.Get("/ready", health.Ready)

	a := v1.Group("/auth")
	a.Post("/register", auth.Register)
	a.Post("/login", auth.Login)

	// Chat sessions
	conv := v1.Group("/conversations", authMW)
	conv.Post("/", chat.CreateConversation)
	conv.Get("/", chat.ListConversations)
	conv.Get("/:id/messages", chat.History)
	conv.Post("/:id/messages", chat.SendMessage)

	v1.Post("/feedback", authMW, chat.LeaveFeedback)

	// Ollama model library
	m := v1.Group("/models", authMW)
	m.Get("/", models.List)
	m.Post("/pull", models.Pull)
	m.Get("/pull/:name", models.PullProgress)
	m.Delete("/:name", models.Delete)

	// Knowledge documents and Q&A
	d := v1.Group("/documents", authMW)
	d.Post("/", documents.Upload)
	d.Get("/", documents.List)
	d.Post("/ask", documents.Ask)
	d.Get("/:id", documents.Get)
	d.Get("/:id/file", documents.Download)
	d.Delete("/:id", documents.Delete)

	// Robot relay
	p := v1.Group("/pepper", authMW)
	p.Post("/speak", speak.Speak)
	p.Get("/status", speak.Status)
}
