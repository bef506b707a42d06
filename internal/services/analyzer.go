package services

import (
	"context"
	"encoding/json"
	"log"
	"mime/multipart"

	"golang.org/x/sync/errgroup"

	"alfredoptarigan/resume-analyzer/internal/models"
)

type AnalyzerService interface {
	Analyze(ctx context.Context, req AnalysisRequest) (*AnalysisResult, error)
}

type AnalysisRequest struct {
	RequestID   string
	Description string
	Files       []*multipart.FileHeader
	Mode        models.ResponseMode
}

type AnalysisResult struct {
	Mode           models.ResponseMode
	Analysis       string
	Candidates     json.RawMessage
	ProcessedFiles int
	Filenames      []string
}

type analyzerService struct {
	validator          FileValidator
	storageService     StorageService
	pdfParser          PDFParserService
	aiClient           AIClient
	promptBuilder      *PromptBuilder
	extractConcurrency int
}

func NewAnalyzerService(
	validator FileValidator,
	storageService StorageService,
	pdfParser PDFParserService,
	aiClient AIClient,
	extractConcurrency int,
) AnalyzerService {
	return &analyzerService{
		validator:          validator,
		storageService:     storageService,
		pdfParser:          pdfParser,
		aiClient:           aiClient,
		promptBuilder:      NewPromptBuilder(),
		extractConcurrency: extractConcurrency,
	}
}

// Analyze validates every file before touching disk, then extracts text,
// prompts the model and shapes the reply for req.Mode.
func (a *analyzerService) Analyze(ctx context.Context, req AnalysisRequest) (*AnalysisResult, error) {
	for _, file := range req.Files {
		if err := a.validator.Validate(file); err != nil {
			return nil, err
		}
	}

	log.Printf("📄 [%s] Extracting text from %d resume(s)\n", req.RequestID, len(req.Files))
	resumes, err := a.extractAll(ctx, req.Files)
	if err != nil {
		return nil, err
	}

	prompt := a.promptBuilder.Build(req.Mode, req.Description, resumes)

	log.Printf("🤖 [%s] Requesting %s analysis\n", req.RequestID, req.Mode)
	reply, err := a.aiClient.Complete(ctx, prompt)
	if err != nil {
		return nil, upstreamError("AI service unavailable", err)
	}

	filenames := make([]string, len(resumes))
	for i, resume := range resumes {
		filenames[i] = resume.Filename
	}

	result := &AnalysisResult{
		Mode:           req.Mode,
		ProcessedFiles: len(resumes),
		Filenames:      filenames,
	}

	if req.Mode == models.ModeNarrative {
		result.Analysis = reply
	} else {
		candidates, err := ParseCandidates(reply)
		if err != nil {
			return nil, err
		}
		result.Candidates = candidates
	}

	log.Printf("✅ [%s] Successfully analyzed %d resume(s)\n", req.RequestID, len(resumes))
	return result, nil
}

// extractAll keeps upload order. Files run one at a time unless
// extractConcurrency is above one.
func (a *analyzerService) extractAll(ctx context.Context, files []*multipart.FileHeader) ([]models.ResumeRecord, error) {
	resumes := make([]models.ResumeRecord, len(files))

	if a.extractConcurrency <= 1 {
		for i, file := range files {
			resume, err := a.processFile(file)
			if err != nil {
				return nil, err
			}
			resumes[i] = resume
		}
		return resumes, nil
	}

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(a.extractConcurrency)

	for i, file := range files {
		g.Go(func() error {
			resume, err := a.processFile(file)
			if err != nil {
				return err
			}
			resumes[i] = resume
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return resumes, nil
}

// processFile stores one upload, extracts its text and always removes the
// stored copy before returning.
func (a *analyzerService) processFile(file *multipart.FileHeader) (resume models.ResumeRecord, err error) {
	storedName, filePath, err := a.storageService.SaveFile(file)
	if err != nil {
		return models.ResumeRecord{}, internalError("Failed to store uploaded file", err)
	}

	defer func() {
		if delErr := a.storageService.DeleteFile(storedName); delErr != nil {
			log.Printf("❌ Failed to clean up %s: %v\n", storedName, delErr)
			if err == nil {
				err = internalError("Failed to clean up uploaded file", delErr)
			}
		}
	}()

	content, err := a.pdfParser.ExtractTextWithMetaData(filePath)
	if err != nil {
		return models.ResumeRecord{}, badRequest("Failed to extract text from PDF", err)
	}
	log.Printf("📄 Extracted %d page(s) from %s\n", content.PageCount, file.Filename)

	return models.ResumeRecord{
		Filename: file.Filename,
		Content:  content.Text,
	}, nil
}
