package registry

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mikey/llm-fraud-checker/internal/adapters/apiclient"
	"github.com/mikey/llm-fraud-checker/internal/core"
	"github.com/mikey/llm-fraud-checker/internal/utils"
	"go.uber.org/zap"
)

type policeResponse struct {
	Result *struct {
		Count utils.FlexString `json:"count"`
	} `json:"result"`
}

// PoliceClient looks up accounts and phone numbers in the police fraud registry
type PoliceClient struct {
	client    *apiclient.Client
	endpoint  string
	fieldType string
	logger    *zap.Logger
}

// NewPoliceClient creates a new police registry client
func NewPoliceClient(client *apiclient.Client, endpoint, fieldType string, logger *zap.Logger) *PoliceClient {
	return &PoliceClient{
		client:    client,
		endpoint:  endpoint,
		fieldType: fieldType,
		logger:    logger,
	}
}

// LookupKey implements core.FraudRegistry
func (c *PoliceClient) LookupKey(ctx context.Context, key string) (*core.FraudReport, error) {
	header := http.Header{}
	header.Set("Accept", "application/json")

	var resp policeResponse
	raw, err := c.client.DoJSON(ctx, apiclient.Request{
		Method: http.MethodPost,
		URL:    c.endpoint,
		Header: header,
		Form: url.Values{
			"key":       {key},
			"fieldType": {c.fieldType},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("police lookup: %w", err)
	}

	report := &core.FraudReport{Raw: raw}
	if resp.Result != nil && resp.Result.Count.Set {
		report.Count = resp.Result.Count.Value
		report.CountSet = true
	}

	c.logger.Debug("Police registry lookup completed",
		zap.String("key", key),
		zap.String("count", report.Count),
		zap.Bool("count_set", report.CountSet))

	return report, nil
}
