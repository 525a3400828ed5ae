package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mikey/llm-fraud-checker/internal/adapters/apiclient"
	"github.com/mikey/llm-fraud-checker/internal/core"
	"github.com/mikey/llm-fraud-checker/internal/utils"
	"go.uber.org/zap"
)

// spam114Response is the 114 registry answer. Field presence varies by
// keyword type, so every counter tolerates absence and strings.
type spam114Response struct {
	Whowho *struct {
		SpamCount     utils.FlexInt    `json:"spam_count"`
		SpamTypeCount utils.FlexInt    `json:"spam_type_cnt"`
		SpamType      utils.FlexString `json:"spam_type"`
	} `json:"whowho"`
	Kisa *struct {
		SpamCountVoice utils.FlexInt `json:"spam_count_voice"`
		SpamCountSMS   utils.FlexInt `json:"spam_count_sms"`
	} `json:"kisa"`
	TheCheat json.RawMessage `json:"thecheat"`
}

// Spam114Client looks up keywords in the 114 scam registry
type Spam114Client struct {
	client   *apiclient.Client
	endpoint string
	typeCode string
	logger   *zap.Logger
}

// NewSpam114Client creates a new 114 registry client. typeCode is the
// classification sent with every lookup, TEL for phone numbers.
func NewSpam114Client(client *apiclient.Client, endpoint, typeCode string, logger *zap.Logger) *Spam114Client {
	return &Spam114Client{
		client:   client,
		endpoint: endpoint,
		typeCode: typeCode,
		logger:   logger,
	}
}

// LookupKeyword implements core.SpamRegistry
func (c *Spam114Client) LookupKeyword(ctx context.Context, keyword string) (*core.SpamReport, error) {
	header := http.Header{}
	header.Set("Accept", "application/json")

	var resp spam114Response
	raw, err := c.client.DoJSON(ctx, apiclient.Request{
		Method: http.MethodPost,
		URL:    c.endpoint,
		Header: header,
		Form: url.Values{
			"keyword": {keyword},
			"type":    {c.typeCode},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("114 lookup: %w", err)
	}

	report := &core.SpamReport{TheCheat: resp.TheCheat, Raw: raw}
	if resp.Whowho != nil {
		report.Whowho = core.WhowhoCounts{
			SpamCount:     resp.Whowho.SpamCount.Int(),
			SpamTypeCount: resp.Whowho.SpamTypeCount.Int(),
			SpamType:      resp.Whowho.SpamType.Value,
		}
	}
	if resp.Kisa != nil {
		report.Kisa = core.KisaCounts{
			SpamCountVoice: resp.Kisa.SpamCountVoice.Int(),
			SpamCountSMS:   resp.Kisa.SpamCountSMS.Int(),
		}
	}

	c.logger.Debug("114 registry lookup completed",
		zap.String("keyword", keyword),
		zap.Int("whowho_spam_count", report.Whowho.SpamCount),
		zap.Int("kisa_voice", report.Kisa.SpamCountVoice),
		zap.Int("kisa_sms", report.Kisa.SpamCountSMS))

	return report, nil
}
