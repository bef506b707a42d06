package handlers

import (
	"errors"
	"log"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-analyzer/internal/services"
)

type DownloadHandler struct {
	storageService services.StorageService
}

func NewDownloadHandler(storageService services.StorageService) *DownloadHandler {
	return &DownloadHandler{
		storageService: storageService,
	}
}

func (h *DownloadHandler) HandleDownload(c *fiber.Ctx) error {
	filename, err := url.PathUnescape(c.Params("filename"))
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid filename")
	}

	filePath, err := h.storageService.ResolveDownload(filename)
	switch {
	case errors.Is(err, services.ErrInvalidFilename):
		log.Printf("⚠️  [%s] Rejected download name %q\n", requestIDFrom(c), filename)
		return errorResponse(c, fiber.StatusBadRequest, "Invalid filename")
	case errors.Is(err, services.ErrFileNotFound):
		return errorResponse(c, fiber.StatusNotFound, "File not found")
	case err != nil:
		return err
	}

	if err := c.Download(filePath, filename); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	return nil
}
