// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"errors"
	"io"
	"mime/multipart"

	"inkwell/internal/models"
	"inkwell/internal/service"
	"inkwell/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// statusForCode maps application error codes to HTTP status codes.
func statusForCode(code string) int {
	switch code {
	case models.CodeUnauthorized:
		return fiber.StatusUnauthorized
	case models.CodeInvalidInput:
		return fiber.StatusBadRequest
	case models.CodePlanRestriction:
		return fiber.StatusForbidden
	case models.CodeUsageLimit:
		return fiber.StatusTooManyRequests
	case models.CodeNotFound:
		return fiber.StatusNotFound
	case models.CodeGenerationFailed:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes the failure envelope with the status derived from the
// error's code. Non-AppError values map to 500.
func respondError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return models.RespondWithError(c, statusForCode(appErr.Code), appErr)
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
}

// currentUserID returns the authenticated user ID set by AuthRequired.
func currentUserID(c *fiber.Ctx) string {
	if id, ok := c.Locals("userID").(string); ok {
		return id
	}
	return ""
}

// respondGeneration writes the success envelope for a completed generation.
// Free users also get their updated usage count.
func respondGeneration(c *fiber.Ctx, res *service.GenerationResult) error {
	body := fiber.Map{
		"success": true,
		"content": res.Creation.Content,
	}
	if !res.Plan.IsPremium() {
		body["usage"] = res.Usage
	}
	return c.Status(fiber.StatusCreated).JSON(body)
}

// respondCreations writes the success envelope around a list of creations.
func respondCreations(c *fiber.Ctx, creations []*models.Creation) error {
	return c.JSON(fiber.Map{
		"success":   true,
		"creations": creations,
	})
}

// checkImageUpload rejects oversized and non-image uploads before the file
// is read into memory.
func checkImageUpload(header *multipart.FileHeader) error {
	if header.Size > validation.MaxImageSizeBytes {
		return models.NewValidationError("Image file exceeds the 10 MB limit")
	}
	if !validation.AllowedImageFile(header.Filename, header.Header.Get("Content-Type")) {
		return models.NewValidationError("Image must be a JPEG, PNG or WebP file")
	}
	return nil
}

// readFormFile reads an uploaded multipart file fully into memory.
func readFormFile(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	return io.ReadAll(file)
}
