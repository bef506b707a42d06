package handlers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-analyzer/internal/models"
)

// RequestIDKey is the Locals key the requestid middleware stores ids under.
const RequestIDKey = "requestid"

const receivedAtKey = "receivedAt"

func requestIDFrom(c *fiber.Ctx) string {
	if id, ok := c.Locals(RequestIDKey).(string); ok && id != "" {
		return id
	}
	id := uuid.NewString()
	c.Locals(RequestIDKey, id)
	return id
}

func timestamp() string {
	return time.Now().Format(time.RFC3339Nano)
}

// markReceived pins the envelope timestamp to the moment the request was
// picked up.
func markReceived(c *fiber.Ctx) string {
	ts := timestamp()
	c.Locals(receivedAtKey, ts)
	return ts
}

func receivedAt(c *fiber.Ctx) string {
	if ts, ok := c.Locals(receivedAtKey).(string); ok && ts != "" {
		return ts
	}
	return timestamp()
}

func errorResponse(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(models.ErrorResponse{
		Success:   false,
		Error:     message,
		RequestID: requestIDFrom(c),
		Timestamp: receivedAt(c),
	})
}

// ErrorHandler renders errors that escape a handler with the common
// error envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error: " + err.Error()

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	// an oversized upload is a client input error like any other
	if code == fiber.StatusRequestEntityTooLarge {
		code = fiber.StatusBadRequest
		message = "Request body too large. Max size is " + formatSize(c.App().Config().BodyLimit)
	}

	if code >= fiber.StatusInternalServerError {
		log.Printf("❌ [%s] %s %s failed: %v\n", requestIDFrom(c), c.Method(), c.Path(), err)
	}

	return errorResponse(c, code, message)
}

func formatSize(n int) string {
	if n >= 1024*1024 {
		return fmt.Sprintf("%dMB", n/(1024*1024))
	}
	return fmt.Sprintf("%dKB", n/1024)
}
