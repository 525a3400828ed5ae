package core

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/mikey/llm-fraud-checker/internal/apperrors"
	"golang.org/x/text/unicode/norm"
)

// User-facing validation messages
const (
	MsgImageRequired      = "이미지를 업로드해주세요."
	MsgImageMissing       = "이미지가 포함되지 않았습니다."
	MsgNoFileSelected     = "파일이 선택되지 않았습니다."
	MsgFileTypeNotAllowed = "허용되지 않는 파일 형식입니다."
	MsgURLRequired        = "URL이 제공되지 않았습니다."
	MsgKeywordRequired    = "키워드가 제공되지 않았습니다."
	MsgKeyRequired        = "조회할 키가 제공되지 않았습니다."
)

// NoTextDetected is returned as extracted text when OCR finds nothing
const NoTextDetected = "텍스트를 인식하지 못했습니다."

// UploadsPrefix is the display path prefix of stored uploads
const UploadsPrefix = "uploads"

var allowedExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"gif":  {},
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// AllowedFile reports whether filename has an accepted image extension
func AllowedFile(filename string) bool {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return false
	}
	_, ok := allowedExtensions[strings.ToLower(filename[idx+1:])]
	return ok
}

// ValidateUpload checks an upload before anything is written or sent
func ValidateUpload(upload *UploadedImage) error {
	if upload == nil {
		return apperrors.NewValidationError(MsgImageMissing, nil)
	}
	if upload.Filename == "" {
		return apperrors.NewValidationError(MsgNoFileSelected, nil)
	}
	if !AllowedFile(upload.Filename) {
		return apperrors.NewValidationError(MsgFileTypeNotAllowed, nil)
	}
	return nil
}

// SecureFilename reduces a client supplied filename to a safe ASCII name.
// Non-ASCII characters are dropped, so the result may be empty.
func SecureFilename(filename string) string {
	decomposed := norm.NFKD.String(filename)

	var b strings.Builder
	for _, r := range decomposed {
		if r < 0x80 {
			b.WriteRune(r)
		}
	}
	ascii := b.String()

	ascii = strings.NewReplacer("/", " ", "\\", " ").Replace(ascii)
	joined := strings.Join(strings.Fields(ascii), "_")
	cleaned := unsafeFilenameChars.ReplaceAllString(joined, "")

	return strings.Trim(cleaned, "._")
}

// UniqueFilename prefixes the sanitized filename with a random identifier
func UniqueFilename(filename string) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return id + "_" + SecureFilename(filename)
}
