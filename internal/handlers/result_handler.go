package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/repositories"
)

type ResultHandler struct {
	historyRepo repositories.AnalysisRepository
}

func NewResultHandler(historyRepo repositories.AnalysisRepository) *ResultHandler {
	return &ResultHandler{
		historyRepo: historyRepo,
	}
}

func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	requestID := c.Params("request_id")
	if _, err := uuid.Parse(requestID); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request ID format")
	}

	record, err := h.historyRepo.FindByRequestID(requestID)
	if err != nil {
		if errors.Is(err, repositories.ErrAnalysisNotFound) {
			return errorResponse(c, fiber.StatusNotFound, "Analysis not found")
		}
		return err
	}

	return c.JSON(models.NewAnalysisRecordResponse(record))
}
