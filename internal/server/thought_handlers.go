package server

import (
	"context"
	"errors"
	"time"

	"ripple/internal/models"
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetThoughts handles GET /api/thoughts
func (s *Server) GetThoughts(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	thoughts, err := s.thoughtService.ListThoughts(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return c.Status(fiber.StatusGatewayTimeout).JSON(fiber.Map{
				"error": "Request timeout",
			})
		}
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(thoughts)
}

// GetThought handles GET /api/thoughts/:thoughtId
func (s *Server) GetThought(c *fiber.Ctx) error {
	id, err := s.parseID(c, "thoughtId")
	if err != nil {
		return nil
	}

	thought, err := s.thoughtService.GetThought(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(thought)
}

// CreateThought handles POST /api/thoughts
func (s *Server) CreateThought(c *fiber.Ctx) error {
	var req service.CreateThoughtInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	thought, err := s.thoughtService.CreateThought(c.Context(), req)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(thought)
}

// UpdateThought handles PUT /api/thoughts/:thoughtId
func (s *Server) UpdateThought(c *fiber.Ctx) error {
	id, err := s.parseID(c, "thoughtId")
	if err != nil {
		return nil
	}

	var req service.UpdateThoughtInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	thought, err := s.thoughtService.UpdateThought(c.Context(), id, req)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(thought)
}

// DeleteThought handles DELETE /api/thoughts/:thoughtId
func (s *Server) DeleteThought(c *fiber.Ctx) error {
	id, err := s.parseID(c, "thoughtId")
	if err != nil {
		return nil
	}

	if _, err := s.thoughtService.DeleteThought(c.Context(), id); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(fiber.Map{"message": "Thought deleted"})
}
