package server

import (
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetUserCreations handles GET /api/user/creations
func (s *Server) GetUserCreations(c *fiber.Ctx) error {
	userID := currentUserID(c)

	creations, err := s.creations.ListMine(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreations(c, creations)
}

// GetPublishedCreations handles GET /api/user/published-creations
func (s *Server) GetPublishedCreations(c *fiber.Ctx) error {
	creations, err := s.creations.ListPublished(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return respondCreations(c, creations)
}

// ToggleLikeCreation handles POST /api/user/toggle-like
func (s *Server) ToggleLikeCreation(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req struct {
		ID string `json:"id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	message, creations, err := s.creations.ToggleLike(c.UserContext(), userID, req.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"message":   message,
		"creations": creations,
	})
}

// DeleteCreation handles DELETE /api/user/creations/:id
func (s *Server) DeleteCreation(c *fiber.Ctx) error {
	userID := currentUserID(c)
	id := c.Params("id")

	if err := s.creations.Delete(c.UserContext(), userID, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Creation deleted",
	})
}
