package services

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/testutil"
)

type fakeAIClient struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string
}

func (f *fakeAIClient) Complete(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func newTestAnalyzer(t *testing.T, ai AIClient, concurrency int) (AnalyzerService, string) {
	t.Helper()
	dir := t.TempDir()
	storage := NewStorageService(dir)
	require.NoError(t, storage.EnsureUploadDir())
	return NewAnalyzerService(NewFileValidator(10*1024*1024), storage, NewPDFParserService(), ai, concurrency), dir
}

func pdfUpload(name, text string) testutil.Upload {
	return testutil.Upload{Filename: name, ContentType: "application/pdf", Data: testutil.MinimalPDF(text)}
}

func requireEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no upload may outlive the request")
}

func TestAnalyzeStructured(t *testing.T) {
	ai := &fakeAIClient{reply: "```json\n[{\"filename\":\"alice.pdf\",\"ranking\":1}]\n```"}
	analyzer, dir := newTestAnalyzer(t, ai, 1)

	files, err := testutil.FileHeaders([]testutil.Upload{
		pdfUpload("alice.pdf", "Alice Go engineer"),
		pdfUpload("bob.pdf", "Bob Rust engineer"),
	})
	require.NoError(t, err)

	result, err := analyzer.Analyze(context.Background(), AnalysisRequest{
		RequestID:   "req-1",
		Description: "Senior backend engineer",
		Files:       files,
		Mode:        models.ModeStructured,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.ProcessedFiles)
	assert.Equal(t, []string{"alice.pdf", "bob.pdf"}, result.Filenames)
	assert.JSONEq(t, `[{"filename":"alice.pdf","ranking":1}]`, string(result.Candidates))
	assert.Empty(t, result.Analysis)

	require.Len(t, ai.prompts, 1)
	assert.Contains(t, ai.prompts[0], "Alice Go engineer")
	assert.Contains(t, ai.prompts[0], "Bob Rust engineer")
	assert.Contains(t, ai.prompts[0], "Senior backend engineer")
	requireEmptyDir(t, dir)
}

func TestAnalyzeNarrativeIsVerbatim(t *testing.T) {
	reply := "  1. Alice\n2. Bob  \n"
	analyzer, dir := newTestAnalyzer(t, &fakeAIClient{reply: reply}, 1)

	files, err := testutil.FileHeaders([]testutil.Upload{pdfUpload("alice.pdf", "Alice")})
	require.NoError(t, err)

	result, err := analyzer.Analyze(context.Background(), AnalysisRequest{
		Description: "role",
		Files:       files,
		Mode:        models.ModeNarrative,
	})
	require.NoError(t, err)
	assert.Equal(t, reply, result.Analysis)
	assert.Nil(t, result.Candidates)
	requireEmptyDir(t, dir)
}

func TestAnalyzeValidationIsAllOrNothing(t *testing.T) {
	ai := &fakeAIClient{reply: "[]"}
	analyzer, dir := newTestAnalyzer(t, ai, 1)

	files, err := testutil.FileHeaders([]testutil.Upload{
		pdfUpload("alice.pdf", "Alice"),
		{Filename: "photo.png", ContentType: "image/png", Data: []byte("png")},
	})
	require.NoError(t, err)

	_, err = analyzer.Analyze(context.Background(), AnalysisRequest{Description: "role", Files: files, Mode: models.ModeStructured})
	ae, ok := AsAnalysisError(err)
	require.True(t, ok)
	assert.Equal(t, 400, ae.StatusCode())
	assert.Contains(t, ae.Error(), "image/png")
	assert.Empty(t, ai.prompts)
	requireEmptyDir(t, dir)
}

func TestAnalyzeExtractionFailure(t *testing.T) {
	for _, concurrency := range []int{1, 3} {
		ai := &fakeAIClient{reply: "[]"}
		analyzer, dir := newTestAnalyzer(t, ai, concurrency)

		files, err := testutil.FileHeaders([]testutil.Upload{
			pdfUpload("alice.pdf", "Alice"),
			{Filename: "broken.pdf", ContentType: "application/pdf", Data: []byte("definitely not a pdf document, just text")},
			pdfUpload("carol.pdf", "Carol"),
		})
		require.NoError(t, err)

		_, err = analyzer.Analyze(context.Background(), AnalysisRequest{Description: "role", Files: files, Mode: models.ModeStructured})
		ae, ok := AsAnalysisError(err)
		require.True(t, ok)
		assert.Equal(t, 400, ae.StatusCode())
		assert.True(t, strings.HasPrefix(ae.Error(), "Failed to extract text from PDF: "), ae.Error())
		assert.Empty(t, ai.prompts)
		requireEmptyDir(t, dir)
	}
}

func TestAnalyzeUpstreamFailure(t *testing.T) {
	analyzer, dir := newTestAnalyzer(t, &fakeAIClient{err: errors.New("dial tcp: connection refused")}, 1)

	files, err := testutil.FileHeaders([]testutil.Upload{pdfUpload("alice.pdf", "Alice")})
	require.NoError(t, err)

	_, err = analyzer.Analyze(context.Background(), AnalysisRequest{Description: "role", Files: files, Mode: models.ModeNarrative})
	ae, ok := AsAnalysisError(err)
	require.True(t, ok)
	assert.Equal(t, 502, ae.StatusCode())
	assert.Equal(t, "AI service unavailable: dial tcp: connection refused", ae.Error())
	requireEmptyDir(t, dir)
}

func TestAnalyzeStructuredParseFailure(t *testing.T) {
	analyzer, _ := newTestAnalyzer(t, &fakeAIClient{reply: "not json"}, 1)

	files, err := testutil.FileHeaders([]testutil.Upload{pdfUpload("alice.pdf", "Alice")})
	require.NoError(t, err)

	result, err := analyzer.Analyze(context.Background(), AnalysisRequest{Description: "role", Files: files, Mode: models.ModeStructured})
	assert.Nil(t, result)
	ae, ok := AsAnalysisError(err)
	require.True(t, ok)
	assert.Equal(t, 500, ae.StatusCode())
}

func TestAnalyzeConcurrentExtractionKeepsOrder(t *testing.T) {
	ai := &fakeAIClient{reply: "[]"}
	analyzer, dir := newTestAnalyzer(t, ai, 4)

	var uploads []testutil.Upload
	names := []string{"a.pdf", "b.pdf", "c.pdf", "d.pdf", "e.pdf", "f.pdf"}
	for _, name := range names {
		uploads = append(uploads, pdfUpload(name, "resume of "+name))
	}
	files, err := testutil.FileHeaders(uploads)
	require.NoError(t, err)

	result, err := analyzer.Analyze(context.Background(), AnalysisRequest{Description: "role", Files: files, Mode: models.ModeStructured})
	require.NoError(t, err)
	assert.Equal(t, names, result.Filenames)
	assert.Equal(t, len(names), result.ProcessedFiles)

	prompt := ai.prompts[0]
	for i := 1; i < len(names); i++ {
		assert.Less(t, strings.Index(prompt, "resume of "+names[i-1]), strings.Index(prompt, "resume of "+names[i]))
	}
	requireEmptyDir(t, dir)
}
