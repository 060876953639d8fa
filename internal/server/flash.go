package server

import (
	"log/slog"

	"blogly/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

const flashKey = "flash"

// flash queues a one-time message for display on the next rendered page.
func (s *Server) flash(c *fiber.Ctx, message string) {
	sess, err := s.sessions.Get(c)
	if err != nil {
		middleware.Logger.Warn("failed to open session for flash", slog.String("error", err.Error()))
		return
	}
	sess.Set(flashKey, message)
	if err := sess.Save(); err != nil {
		middleware.Logger.Warn("failed to save flash", slog.String("error", err.Error()))
	}
}

// popFlash returns the pending flash message, clearing it so it renders
// exactly once.
func (s *Server) popFlash(c *fiber.Ctx) string {
	sess, err := s.sessions.Get(c)
	if err != nil {
		return ""
	}
	message, _ := sess.Get(flashKey).(string)
	if message != "" {
		sess.Delete(flashKey)
		if err := sess.Save(); err != nil {
			middleware.Logger.Warn("failed to clear flash", slog.String("error", err.Error()))
		}
	}
	return message
}
