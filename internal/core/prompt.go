package core

import (
	"fmt"
	"strings"
)

// Prompt template names
const (
	PromptFraudProbability  = "fraud_probability"
	PromptContactExtraction = "contact_extraction"
)

const fraudProbabilityPrompt = `다음 텍스트가 가짜일 확률을 0에서 100 사이의 퍼센트로 표시하고, 그 이유를 간결하게 설명해 주세요. 다음 형식을 따라주세요:

가짜일 확률: XX%%
이유: ...

텍스트:
%s
`

const contactExtractionPrompt = `다음 텍스트에 포함된 웹사이트 도메인과 전화번호를 모두 찾아 주세요. 없으면 "없음"이라고 적어 주세요. 다음 형식을 따라주세요:

도메인: ...
전화번호: ...

텍스트:
%s
`

var promptFormats = map[string]string{
	PromptFraudProbability:  fraudProbabilityPrompt,
	PromptContactExtraction: contactExtractionPrompt,
}

// PromptBuilder renders one of the fixed prompt templates
type PromptBuilder struct {
	name   string
	format string
}

// NewPromptBuilder selects a template by name. An empty name selects
// fraud_probability.
func NewPromptBuilder(name string) (*PromptBuilder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = PromptFraudProbability
	}
	format, ok := promptFormats[name]
	if !ok {
		return nil, fmt.Errorf("unknown prompt template: %s", name)
	}
	return &PromptBuilder{name: name, format: format}, nil
}

// Name returns the selected template name
func (p *PromptBuilder) Name() string {
	return p.name
}

// Build renders the prompt for text
func (p *PromptBuilder) Build(text string) string {
	return fmt.Sprintf(p.format, text)
}
