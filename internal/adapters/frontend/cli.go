package frontend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mikey/llm-fraud-checker/internal/core"
	"go.uber.org/zap"
)

// CLIRequest names the checks a single CLI invocation runs. Empty fields are skipped.
type CLIRequest struct {
	ImagePath string
	Text      string
	URL       string
	Keyword   string
	Key       string
}

// ErrNothingToCheck is returned when a CLIRequest names no check
var ErrNothingToCheck = errors.New("nothing to check: pass -image, -text, -url, -keyword or -key")

// CLIFrontend implements a command-line interface for fraud checks
type CLIFrontend struct {
	service *core.FraudCheckService
	logger  *zap.Logger
	verbose bool
	out     io.Writer
}

// NewCLIFrontend creates a new CLI frontend writing to stdout
func NewCLIFrontend(service *core.FraudCheckService, logger *zap.Logger, verbose bool) (*CLIFrontend, error) {
	return &CLIFrontend{
		service: service,
		logger:  logger,
		verbose: verbose,
		out:     os.Stdout,
	}, nil
}

// SetOutput redirects the report
func (f *CLIFrontend) SetOutput(w io.Writer) {
	f.out = w
}

// Run executes every check named in req and prints the results
func (f *CLIFrontend) Run(ctx context.Context, req CLIRequest) error {
	if req == (CLIRequest{}) {
		return ErrNothingToCheck
	}

	if req.ImagePath != "" {
		if err := f.checkImage(ctx, req.ImagePath); err != nil {
			return err
		}
	}
	if req.Text != "" {
		f.checkText(ctx, req.Text)
	}
	if req.URL != "" {
		f.checkURL(ctx, req.URL)
	}
	if req.Keyword != "" {
		f.checkKeyword(ctx, req.Keyword)
	}
	if req.Key != "" {
		f.checkKey(ctx, req.Key)
	}
	return nil
}

func (f *CLIFrontend) checkImage(ctx context.Context, path string) error {
	f.logger.Debug("Processing image", zap.String("path", path))

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}

	fmt.Fprintf(f.out, "\n=== Image Summary ===\n")
	fmt.Fprintf(f.out, "File: %s\n", path)
	fmt.Fprintf(f.out, "Size: %d bytes\n", len(content))

	fmt.Fprintf(f.out, "\n=== Analysis ===\n")
	startTime := time.Now()
	analysis, err := f.service.AnalyzeImage(ctx, &core.UploadedImage{
		Filename: filepath.Base(path),
		Content:  content,
	}, false)
	if err != nil {
		f.logger.Error("Failed to analyze image", zap.Error(err))
		fmt.Fprintf(f.out, "Error: %v\n", err)
		return err
	}
	duration := time.Since(startTime)

	fmt.Fprintf(f.out, "OCR engine: %s\n", analysis.OCR.Engine)
	if analysis.OCR.Error != "" {
		fmt.Fprintf(f.out, "OCR error: %s\n", analysis.OCR.Error)
		return nil
	}
	if f.verbose {
		fmt.Fprintf(f.out, "\nExtracted text:\n%s\n", analysis.OCR.ExtractedText)
	}
	f.printAssessment(analysis.Assessment)
	fmt.Fprintf(f.out, "Processing time: %v\n", duration)
	return nil
}

func (f *CLIFrontend) checkText(ctx context.Context, text string) {
	fmt.Fprintf(f.out, "\n=== Text Analysis ===\n")
	fmt.Fprintf(f.out, "Text length: %d bytes\n", len(text))
	f.printAssessment(f.service.AssessText(ctx, text))
}

func (f *CLIFrontend) printAssessment(result *core.AssessmentResult) {
	fmt.Fprintf(f.out, "\n=== Results ===\n")
	fmt.Fprintf(f.out, "Model used: %s\n", result.Model)
	if result.Error != "" {
		fmt.Fprintf(f.out, "Gemini AI 오류: %s\n", result.Error)
		return
	}
	fmt.Fprintf(f.out, "%s\n", result.ResultText)
}

func (f *CLIFrontend) checkURL(ctx context.Context, url string) {
	result := f.service.CheckURL(ctx, url)

	fmt.Fprintf(f.out, "\n=== URL Check ===\n")
	fmt.Fprintf(f.out, "URL: %s\n", url)
	if result.Error != "" {
		fmt.Fprintf(f.out, "Error: %s%s\n", result.Error, statusSuffix(result.StatusCode))
		return
	}
	fmt.Fprintf(f.out, "Category: %s\n", result.CategoryDescription)
	fmt.Fprintf(f.out, "Is safe: %t\n", result.IsSafe != nil && *result.IsSafe)
	fmt.Fprintf(f.out, "Is malicious: %t\n", result.IsMalicious != nil && *result.IsMalicious)
	fmt.Fprintf(f.out, "Source: %s\n", result.Source)
}

func (f *CLIFrontend) checkKeyword(ctx context.Context, keyword string) {
	result := f.service.CheckSpamKeyword(ctx, keyword)

	fmt.Fprintf(f.out, "\n=== 114 Registry ===\n")
	fmt.Fprintf(f.out, "Keyword: %s\n", keyword)
	if result.Error != "" {
		fmt.Fprintf(f.out, "Error: %s%s\n", result.Error, statusSuffix(result.StatusCode))
		return
	}
	fmt.Fprintf(f.out, "Is spam: %t\n", result.IsSpam)
	fmt.Fprintf(f.out, "Whowho reports: %d (types %d)\n", result.Whowho.SpamCount, result.Whowho.SpamTypeCount)
	fmt.Fprintf(f.out, "KISA reports: voice %d, sms %d\n", result.Kisa.SpamCountVoice, result.Kisa.SpamCountSMS)
	fmt.Fprintf(f.out, "TheCheat listed: %t\n", result.HasTheCheat)
}

func (f *CLIFrontend) checkKey(ctx context.Context, key string) {
	result := f.service.CheckFraudReport(ctx, key)

	fmt.Fprintf(f.out, "\n=== Police Registry ===\n")
	fmt.Fprintf(f.out, "Key: %s\n", key)
	if result.Error != "" {
		fmt.Fprintf(f.out, "Error: %s%s\n", result.Error, statusSuffix(result.StatusCode))
		return
	}
	fmt.Fprintf(f.out, "Is fraud: %t\n", result.IsFraud)
	fmt.Fprintf(f.out, "Report count: %s\n", result.Count)
}

func statusSuffix(code int) string {
	if code == 0 {
		return ""
	}
	return fmt.Sprintf(" (status %d)", code)
}

// Start is a no-op for the CLI frontend
func (f *CLIFrontend) Start() error {
	return nil
}

// Stop is a no-op for the CLI frontend
func (f *CLIFrontend) Stop() error {
	return nil
}
