package handlers

import (
	"fmt"
	"log"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/repositories"
	"alfredoptarigan/resume-analyzer/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AnalyzeHandler struct {
	analyzer    services.AnalyzerService
	historyRepo repositories.AnalysisRepository
	defaultMode models.ResponseMode
}

func NewAnalyzeHandler(
	analyzer services.AnalyzerService,
	historyRepo repositories.AnalysisRepository,
	defaultMode models.ResponseMode,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer:    analyzer,
		historyRepo: historyRepo,
		defaultMode: defaultMode,
	}
}

func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	requestID := requestIDFrom(c)
	startedAt := markReceived(c)
	log.Printf("📥 [%s] Processing analyze request\n", requestID)

	mode := h.defaultMode
	if q := c.Query("mode"); q != "" {
		parsed, err := models.ParseResponseMode(q)
		if err != nil {
			return h.fail(c, requestID, mode, nil, fiber.StatusBadRequest, "Invalid mode. Use 'narrative' or 'structured'.")
		}
		mode = parsed
	}

	format := strings.ToLower(c.Query("format", "json"))
	if format != "json" && format != "xlsx" {
		return h.fail(c, requestID, mode, nil, fiber.StatusBadRequest, "Invalid format. Use 'json' or 'xlsx'.")
	}
	if format == "xlsx" && mode != models.ModeStructured {
		return h.fail(c, requestID, mode, nil, fiber.StatusBadRequest, "xlsx export requires structured mode")
	}

	files, description, status, message := parseIntake(c)
	if status != 0 {
		return h.fail(c, requestID, mode, files, status, message)
	}

	result, err := h.analyzer.Analyze(c.UserContext(), services.AnalysisRequest{
		RequestID:   requestID,
		Description: description,
		Files:       files,
		Mode:        mode,
	})
	if err != nil {
		if ae, ok := services.AsAnalysisError(err); ok {
			return h.fail(c, requestID, mode, files, ae.StatusCode(), ae.Error())
		}
		return h.fail(c, requestID, mode, files, fiber.StatusInternalServerError, "Internal server error: "+err.Error())
	}

	if format == "xlsx" {
		return h.sendWorkbook(c, requestID, description, result)
	}

	h.record(requestID, mode, models.StatusCompleted, result.ProcessedFiles, result.Filenames, nil)

	resp := models.AnalysisResponse{
		Success:        true,
		RequestID:      requestID,
		Timestamp:      startedAt,
		ProcessedFiles: result.ProcessedFiles,
	}
	if mode == models.ModeNarrative {
		analysis := result.Analysis
		resp.Analysis = &analysis
	} else {
		resp.Candidates = result.Candidates
	}

	return c.JSON(resp)
}

func (h *AnalyzeHandler) sendWorkbook(c *fiber.Ctx, requestID, description string, result *services.AnalysisResult) error {
	candidates, err := services.DecodeCandidates(result.Candidates)
	if err != nil {
		return h.fail(c, requestID, result.Mode, nil, fiber.StatusInternalServerError, err.Error())
	}

	buf, err := services.ExportCandidatesWorkbook(candidates, description)
	if err != nil {
		return h.fail(c, requestID, result.Mode, nil, fiber.StatusInternalServerError, "Internal server error: "+err.Error())
	}

	h.record(requestID, result.Mode, models.StatusCompleted, result.ProcessedFiles, result.Filenames, nil)

	c.Attachment(fmt.Sprintf("resume-analysis-%s.xlsx", requestID))
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set("X-Request-ID", requestID)
	return c.Send(buf.Bytes())
}

// parseIntake returns a non-zero status when the form is unusable.
func parseIntake(c *fiber.Ctx) ([]*multipart.FileHeader, string, int, string) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, "", fiber.StatusBadRequest, "No files uploaded"
	}

	files := form.File["files"]
	if len(files) == 0 {
		return nil, "", fiber.StatusBadRequest, "No files uploaded"
	}

	var description string
	if values := form.Value["description"]; len(values) > 0 {
		description = values[0]
	}
	if strings.TrimSpace(description) == "" {
		return files, "", fiber.StatusBadRequest, "Job description cannot be empty"
	}

	return files, description, 0, ""
}

func (h *AnalyzeHandler) fail(c *fiber.Ctx, requestID string, mode models.ResponseMode, files []*multipart.FileHeader, code int, message string) error {
	log.Printf("❌ [%s] Request failed: %s\n", requestID, message)
	h.record(requestID, mode, models.StatusFailed, 0, uploadNames(files), &message)
	return errorResponse(c, code, message)
}

func (h *AnalyzeHandler) record(requestID string, mode models.ResponseMode, status models.AnalysisStatus, processed int, filenames []string, errMsg *string) {
	err := h.historyRepo.Create(&models.AnalysisRecord{
		ID:             uuid.New(),
		RequestID:      requestID,
		Mode:           mode,
		Status:         status,
		ProcessedFiles: processed,
		Filenames:      strings.Join(filenames, "\n"),
		ErrorMessage:   errMsg,
	})
	if err != nil {
		log.Printf("⚠️  [%s] Failed to store analysis history: %v\n", requestID, err)
	}
}

func uploadNames(files []*multipart.FileHeader) []string {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Filename
	}
	return names
}
