package controller

import (
	"errors"
	"strings"

	"insightgpt-be/internal/service"
	"insightgpt-be/pkg/document"

	"github.com/gofiber/fiber/v2"
)

// toHTTPError maps service sentinels onto status codes. Unknown errors pass
// through so the error handler middleware turns them into a 500.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Session not found")
	case errors.Is(err, service.ErrForbidden):
		return fiber.NewError(fiber.StatusForbidden, "Not authorized to access this session")
	case errors.Is(err, service.ErrGuestSession):
		return fiber.NewError(fiber.StatusForbidden, "Guest users cannot save sessions")
	case errors.Is(err, service.ErrEmptyUpload):
		return fiber.NewError(fiber.StatusBadRequest, "Uploaded file is empty")
	case errors.Is(err, service.ErrUploadTooLarge):
		return fiber.NewError(fiber.StatusRequestEntityTooLarge, "Uploaded file is too large")
	case errors.Is(err, document.ErrUnsupportedFormat):
		return fiber.NewError(fiber.StatusBadRequest, "Unsupported file type. Upload a PDF, DOCX, Markdown, HTML or text file")
	default:
		return err
	}
}

const maxErrorDetail = 200

// errorDetail flattens err onto one bounded line for a response message.
func errorDetail(err error) string {
	msg := strings.Join(strings.Fields(err.Error()), " ")
	if r := []rune(msg); len(r) > maxErrorDetail {
		msg = string(r[:maxErrorDetail]) + "..."
	}
	return msg
}
