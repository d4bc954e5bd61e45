package server

import (
	"strings"

	"ripple/internal/models"
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AddReaction handles POST /api/thoughts/:thoughtId/reactions
func (s *Server) AddReaction(c *fiber.Ctx) error {
	thoughtID, err := s.parseID(c, "thoughtId")
	if err != nil {
		return nil
	}

	var req service.CreateReactionInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	thought, err := s.thoughtService.AddReaction(c.Context(), thoughtID, req)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(thought)
}

// RemoveReaction handles DELETE /api/thoughts/:thoughtId/reactions/:reactionId
func (s *Server) RemoveReaction(c *fiber.Ctx) error {
	thoughtID, err := s.parseID(c, "thoughtId")
	if err != nil {
		return nil
	}

	reactionID := strings.TrimSpace(c.Params("reactionId"))
	if reactionID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid reaction ID"))
	}

	thought, err := s.thoughtService.RemoveReaction(c.Context(), thoughtID, reactionID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(thought)
}
