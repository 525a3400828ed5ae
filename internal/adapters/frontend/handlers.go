package frontend

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mikey/llm-fraud-checker/internal/apperrors"
	"github.com/mikey/llm-fraud-checker/internal/core"
	"github.com/mikey/llm-fraud-checker/internal/utils"
	"go.uber.org/zap"
)

// Form fields of the check page
const (
	fieldImage        = "image"
	fieldURL          = "url"
	fieldSpamKeyword  = "114_keyword"
	fieldFraudKey     = "fraud_key"
	indexTemplateName = "index.html"
)

type pageData struct {
	Error            string
	ExtractedText    string
	GeminiResultText string
	UploadedImage    string
	URLCheckResult   *core.URLSafetyResult
	SpamCheckResult  *core.SpamCheckResult
	FraudCheckResult *core.FraudCheckResult
}

// OCRResponse is returned by /api/ocr
type OCRResponse struct {
	ExtractedText    string `json:"extracted_text"`
	GeminiResultText string `json:"gemini_result_text"`
}

// CheckURLRequest is the body of /api/check-url
type CheckURLRequest struct {
	URL utils.FlexString `json:"url" swaggertype:"string"`
}

// Check114Request is the body of /api/check-114
type Check114Request struct {
	Keyword utils.FlexString `json:"keyword" swaggertype:"string"`
}

// CheckFraudRequest is the body of /api/check-fraud
type CheckFraudRequest struct {
	Key utils.FlexString `json:"key" swaggertype:"string"`
}

func (s *HTTPServer) index(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		c.HTML(http.StatusOK, indexTemplateName, pageData{})
		return
	}

	ctx := c.Request.Context()

	if url, ok := c.GetPostForm(fieldURL); ok {
		if strings.TrimSpace(url) == "" {
			s.renderError(c, http.StatusBadRequest, core.MsgURLRequired)
			return
		}
		c.HTML(http.StatusOK, indexTemplateName, pageData{URLCheckResult: s.service.CheckURL(ctx, strings.TrimSpace(url))})
		return
	}

	if keyword, ok := c.GetPostForm(fieldSpamKeyword); ok {
		if strings.TrimSpace(keyword) == "" {
			s.renderError(c, http.StatusBadRequest, core.MsgKeywordRequired)
			return
		}
		c.HTML(http.StatusOK, indexTemplateName, pageData{SpamCheckResult: s.service.CheckSpamKeyword(ctx, strings.TrimSpace(keyword))})
		return
	}

	if key, ok := c.GetPostForm(fieldFraudKey); ok {
		if strings.TrimSpace(key) == "" {
			s.renderError(c, http.StatusBadRequest, core.MsgKeyRequired)
			return
		}
		c.HTML(http.StatusOK, indexTemplateName, pageData{FraudCheckResult: s.service.CheckFraudReport(ctx, strings.TrimSpace(key))})
		return
	}

	upload, err := readUpload(c, core.MsgImageRequired)
	if err != nil {
		s.renderError(c, statusCode(err), apperrors.UserMessage(err))
		return
	}

	analysis, err := s.service.AnalyzeImage(ctx, upload, true)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeValidation) {
			s.renderError(c, http.StatusBadRequest, apperrors.UserMessage(err))
			return
		}
		s.renderError(c, http.StatusInternalServerError, fmt.Sprintf("오류 발생: %s", err))
		return
	}

	if analysis.OCR.Error != "" {
		s.renderError(c, http.StatusOK, fmt.Sprintf("오류 발생: %s", analysis.OCR.Error))
		return
	}
	if analysis.Assessment.Error != "" {
		s.renderError(c, http.StatusOK, fmt.Sprintf("Gemini AI 오류: %s", analysis.Assessment.Error))
		return
	}

	c.HTML(http.StatusOK, indexTemplateName, pageData{
		ExtractedText:    analysis.OCR.ExtractedText,
		GeminiResultText: analysis.Assessment.ResultText,
		UploadedImage:    analysis.ImagePath,
	})
}

func (s *HTTPServer) renderError(c *gin.Context, code int, message string) {
	s.logger.Debug("Rendering page error", zap.Int("status_code", code), zap.String("error", message))
	c.HTML(code, indexTemplateName, pageData{Error: message})
}

// apiOCR godoc
// @Summary Extract text from an image and assess it
// @Description Runs OCR on the uploaded image and asks the language model how likely the text is to be a scam.
// @Tags OCR
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Screenshot (png, jpg, jpeg, gif)"
// @Success 200 {object} OCRResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/ocr [post]
func (s *HTTPServer) apiOCR(c *gin.Context) {
	upload, err := readUpload(c, core.MsgImageMissing)
	if err != nil {
		_ = c.Error(err)
		return
	}

	analysis, err := s.service.AnalyzeImage(c.Request.Context(), upload, false)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if analysis.OCR.Error != "" {
		_ = c.Error(apperrors.NewInternalError(fmt.Sprintf("Vision API 오류: %s", analysis.OCR.Error), nil))
		return
	}
	if analysis.Assessment.Error != "" {
		_ = c.Error(apperrors.NewInternalError(fmt.Sprintf("Gemini AI 오류: %s", analysis.Assessment.Error), nil))
		return
	}

	c.JSON(http.StatusOK, OCRResponse{
		ExtractedText:    analysis.OCR.ExtractedText,
		GeminiResultText: analysis.Assessment.ResultText,
	})
}

// apiCheckURL godoc
// @Summary Check the reputation of a URL
// @Tags Lookups
// @Accept json
// @Produce json
// @Param request body CheckURLRequest true "URL to check"
// @Success 200 {object} core.URLSafetyResult
// @Failure 400 {object} ErrorResponse
// @Router /api/check-url [post]
func (s *HTTPServer) apiCheckURL(c *gin.Context) {
	var req CheckURLRequest
	url, ok := bindField(c, &req, &req.URL, core.MsgURLRequired)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.service.CheckURL(c.Request.Context(), url))
}

// apiCheck114 godoc
// @Summary Look up a phone number or keyword in the 114 scam registry
// @Tags Lookups
// @Accept json
// @Produce json
// @Param request body Check114Request true "Keyword to look up"
// @Success 200 {object} core.SpamCheckResult
// @Failure 400 {object} ErrorResponse
// @Router /api/check-114 [post]
func (s *HTTPServer) apiCheck114(c *gin.Context) {
	var req Check114Request
	keyword, ok := bindField(c, &req, &req.Keyword, core.MsgKeywordRequired)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.service.CheckSpamKeyword(c.Request.Context(), keyword))
}

// apiCheckFraud godoc
// @Summary Look up a key in the police fraud registry
// @Tags Lookups
// @Accept json
// @Produce json
// @Param request body CheckFraudRequest true "Phone number or account to look up"
// @Success 200 {object} core.FraudCheckResult
// @Failure 400 {object} ErrorResponse
// @Router /api/check-fraud [post]
func (s *HTTPServer) apiCheckFraud(c *gin.Context) {
	var req CheckFraudRequest
	key, ok := bindField(c, &req, &req.Key, core.MsgKeyRequired)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.service.CheckFraudReport(c.Request.Context(), key))
}

// bindField decodes the JSON body into req and returns the trimmed value of
// field. A malformed body, a missing field and a blank value are all
// reported as missingMsg.
func bindField(c *gin.Context, req any, field *utils.FlexString, missingMsg string) (string, bool) {
	if err := c.ShouldBindJSON(req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			_ = c.Error(err)
			return "", false
		}
		_ = c.Error(apperrors.NewValidationError(missingMsg, err))
		return "", false
	}

	value := strings.TrimSpace(field.Value)
	if !field.Set || value == "" {
		_ = c.Error(apperrors.NewValidationError(missingMsg, nil))
		return "", false
	}
	return value, true
}

// readUpload pulls the image part out of a multipart request
func readUpload(c *gin.Context, missingMsg string) (*core.UploadedImage, error) {
	fh, err := c.FormFile(fieldImage)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, err
		}
		// an image part sent with an empty filename is parsed as a plain value
		if form := c.Request.MultipartForm; form != nil {
			if _, ok := form.Value[fieldImage]; ok {
				return nil, apperrors.NewValidationError(core.MsgNoFileSelected, err)
			}
		}
		return nil, apperrors.NewValidationError(missingMsg, err)
	}

	if !core.AllowedFile(fh.Filename) {
		return nil, apperrors.NewValidationError(core.MsgFileTypeNotAllowed, nil)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to open upload", err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to read upload", err)
	}

	return &core.UploadedImage{Filename: fh.Filename, Content: content}, nil
}
