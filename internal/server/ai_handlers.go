package server

import (
	"bytes"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GenerateArticle handles POST /api/ai/generate-article
func (s *Server) GenerateArticle(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req struct {
		Prompt string `json:"prompt"`
		Length int    `json:"length"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	res, err := s.generation.GenerateArticle(c.UserContext(), userID, req.Prompt, req.Length)
	if err != nil {
		return respondError(c, err)
	}
	return respondGeneration(c, res)
}

// GenerateBlogTitle handles POST /api/ai/generate-blog-title
func (s *Server) GenerateBlogTitle(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	res, err := s.generation.GenerateBlogTitle(c.UserContext(), userID, req.Prompt)
	if err != nil {
		return respondError(c, err)
	}
	return respondGeneration(c, res)
}

// GenerateImage handles POST /api/ai/generate-image
func (s *Server) GenerateImage(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req struct {
		Prompt  string `json:"prompt"`
		Publish bool   `json:"publish"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	res, err := s.generation.GenerateImage(c.UserContext(), userID, req.Prompt, req.Publish)
	if err != nil {
		return respondError(c, err)
	}
	return respondGeneration(c, res)
}

// RemoveImageBackground handles POST /api/ai/remove-image-background
func (s *Server) RemoveImageBackground(c *fiber.Ctx) error {
	userID := currentUserID(c)

	header, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Image file is required"))
	}
	if err := checkImageUpload(header); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}
	image, err := readFormFile(header)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Could not read uploaded image"))
	}

	res, err := s.generation.RemoveBackground(c.UserContext(), userID, image, header.Filename)
	if err != nil {
		return respondError(c, err)
	}
	return respondGeneration(c, res)
}

// RemoveImageObject handles POST /api/ai/remove-image-object
func (s *Server) RemoveImageObject(c *fiber.Ctx) error {
	userID := currentUserID(c)

	object := c.FormValue("object")
	header, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Image file is required"))
	}
	if err := checkImageUpload(header); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}
	image, err := readFormFile(header)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Could not read uploaded image"))
	}

	res, err := s.generation.RemoveObject(c.UserContext(), userID, image, header.Filename, object)
	if err != nil {
		return respondError(c, err)
	}
	return respondGeneration(c, res)
}

// ReviewResume handles POST /api/ai/review-resume
func (s *Server) ReviewResume(c *fiber.Ctx) error {
	userID := currentUserID(c)

	header, err := c.FormFile("resume")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Resume file is required"))
	}
	if header.Size > validation.MaxResumeSizeBytes {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Resume file exceeds the 5 MB limit"))
	}
	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Resume must be a PDF file"))
	}
	data, err := readFormFile(header)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Could not read uploaded resume"))
	}

	res, err := s.generation.ReviewResume(c.UserContext(), userID, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return respondError(c, err)
	}
	return respondGeneration(c, res)
}
