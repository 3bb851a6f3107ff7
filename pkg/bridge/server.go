// Package bridge implements the Pepper bridge: the HTTP relay every other
// process uses to make the robot speak, plus the client for calling it.
package bridge

import (
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/Akshita-sr/pepper-AI-Ollama/pkg/robot"
	"github.com/Akshita-sr/pepper-AI-Ollama/pkg/speech"
)

// Server exposes the bridge HTTP API on top of a robot.Speaker.
type Server struct {
	speaker    robot.Speaker
	pepperIP   string
	pepperPort int
	log        *slog.Logger
}

func NewServer(speaker robot.Speaker, pepperIP string, pepperPort int, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{speaker: speaker, pepperIP: pepperIP, pepperPort: pepperPort, log: log}
}

// App builds the Fiber application with all bridge routes registered.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	// The web UI calls the bridge cross-origin from the browser.
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET, POST, OPTIONS",
		AllowHeaders: "Content-Type",
	}))

	app.Get("/", s.info)
	app.Get("/status", s.status)
	app.Post("/speak", s.speak)
	app.Post("/reconnect", s.reconnect)
	return app
}

func (s *Server) info(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"name":    "Pepper Bridge",
		"version": "1.0",
		"endpoints": fiber.Map{
			"GET /status":     "Check connection status",
			"POST /speak":     "Make Pepper speak (body: {text: string})",
			"POST /reconnect": "Reconnect to Pepper",
		},
	})
}

func (s *Server) status(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":      "ok",
		"connected":   s.speaker.Connected(),
		"pepper_ip":   s.pepperIP,
		"pepper_port": s.pepperPort,
	})
}

type speakRequest struct {
	Text string `json:"text"`
}

func (s *Server) speak(c *fiber.Ctx) error {
	var req speakRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Text == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "No text provided"})
	}

	clean := speech.Clean(req.Text)
	s.log.Info("speaking", "text", truncate(clean, 50))
	if err := s.speaker.Say(c.Context(), clean); err != nil {
		s.log.Error("speak failed", "error", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to speak"})
	}
	return c.JSON(fiber.Map{"status": "ok", "spoken": true})
}

func (s *Server) reconnect(c *fiber.Ctx) error {
	if err := s.speaker.Connect(c.Context()); err != nil {
		s.log.Error("reconnect failed", "error", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to connect"})
	}
	return c.JSON(fiber.Map{"status": "ok", "connected": true})
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
