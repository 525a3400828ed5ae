package core

import (
	"encoding/json"
	"time"
)

// UploadedImage represents an image received from a client
type UploadedImage struct {
	Filename string
	Content  []byte
}

// OcrResult represents the outcome of a text detection call
type OcrResult struct {
	ExtractedText string `json:"extracted_text,omitempty"`
	Error         string `json:"error,omitempty"`
	Engine        string `json:"engine,omitempty"`
}

// AssessmentResult holds the model's verdict text, passed through unmodified
type AssessmentResult struct {
	ResultText string `json:"result_text,omitempty"`
	Model      string `json:"model,omitempty"`
	Error      string `json:"error,omitempty"`
}

// ImageAnalysis is the combined OCR and assessment outcome for one upload
type ImageAnalysis struct {
	ImagePath  string            `json:"image_path,omitempty"`
	OCR        *OcrResult        `json:"ocr"`
	Assessment *AssessmentResult `json:"assessment,omitempty"`
}

// URLSafetyResult is the normalized URL reputation verdict. The booleans are
// nil when the lookup failed.
type URLSafetyResult struct {
	IsSafe              *bool           `json:"is_safe,omitempty"`
	IsMalicious         *bool           `json:"is_malicious,omitempty"`
	Category            *int            `json:"category,omitempty"`
	CategoryDescription string          `json:"category_description,omitempty"`
	CheckedURL          string          `json:"checked_url,omitempty"`
	RawResponse         json.RawMessage `json:"raw_response,omitempty"`
	Error               string          `json:"error,omitempty"`
	StatusCode          int             `json:"status_code,omitempty"`
	Source              string          `json:"source,omitempty"`
}

// WhowhoCounts holds the whowho section of a 114 registry response
type WhowhoCounts struct {
	SpamCount     int    `json:"spam_count"`
	SpamTypeCount int    `json:"spam_type_cnt"`
	SpamType      string `json:"spam_type,omitempty"`
}

// KisaCounts holds the kisa section of a 114 registry response
type KisaCounts struct {
	SpamCountVoice int `json:"spam_count_voice"`
	SpamCountSMS   int `json:"spam_count_sms"`
}

// SpamCheckResult is the normalized 114 registry verdict
type SpamCheckResult struct {
	Keyword     string          `json:"keyword"`
	IsSpam      bool            `json:"is_spam"`
	Whowho      WhowhoCounts    `json:"whowho"`
	Kisa        KisaCounts      `json:"kisa"`
	HasTheCheat bool            `json:"has_thecheat"`
	RawResponse json.RawMessage `json:"raw_response,omitempty"`
	Error       string          `json:"error,omitempty"`
	StatusCode  int             `json:"status_code,omitempty"`
	Source      string          `json:"source,omitempty"`
}

// FraudCheckResult is the normalized police registry verdict
type FraudCheckResult struct {
	Key         string          `json:"key"`
	IsFraud     bool            `json:"is_fraud"`
	Count       string          `json:"count,omitempty"`
	RawResponse json.RawMessage `json:"raw_response,omitempty"`
	Error       string          `json:"error,omitempty"`
	StatusCode  int             `json:"status_code,omitempty"`
	Source      string          `json:"source,omitempty"`
}

// URLReputation is what a URL checker reports before normalization
type URLReputation struct {
	Category *int
	URL      string
	Raw      json.RawMessage
}

// SpamReport is what the 114 registry reports before normalization.
// Counters are already coerced to integers.
type SpamReport struct {
	Whowho   WhowhoCounts
	Kisa     KisaCounts
	TheCheat json.RawMessage
	Raw      json.RawMessage
}

// FraudReport is what the police registry reports before normalization
type FraudReport struct {
	Count    string
	CountSet bool
	Raw      json.RawMessage
}

// CacheEntry is a cached lookup result
type CacheEntry struct {
	Key       string
	Payload   json.RawMessage
	LastSeen  time.Time
	ExpiresAt time.Time
}
