package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ma593y/seeklyzer/internal/pipeline"
)

// errorResponse converts pipeline errors into user-visible status messages
// at the boundary of each action; nothing from the taxonomy crashes the
// process or leaks as a bare 500.
func errorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, pipeline.ErrUnsupportedFormat):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Only PDF files are supported.",
		})
	case errors.Is(err, pipeline.ErrNoTextFound):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "This PDF doesn't contain extractable text. It may be a scanned document or image-based PDF; run OCR first.",
		})
	case errors.Is(err, pipeline.ErrExtractionFailed):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Failed to read the PDF file.",
			"cause": err.Error(),
		})
	case errors.Is(err, pipeline.ErrCredentialMissing):
		// Configuration error requiring operator action, not a transient
		// failure; retrying won't help.
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Completion API key not configured. Set the GEMINI_API_KEY environment variable.",
		})
	case errors.Is(err, pipeline.ErrCompletionFailed):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "The completion service request failed.",
			"cause": err.Error(),
		})
	case errors.Is(err, pipeline.ErrMalformedResponse):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "The completion service returned an unusable response.",
			"cause": err.Error(),
		})
	case errors.Is(err, pipeline.ErrPersistenceFailed):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to write the export file.",
			"cause": err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}
