package sheetsclient

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/casesmedia/subscription-insights-api/internal/config"
)

// Client fetches the published CSV export of one tariff sheet.
type Client interface {
	FetchCSV(ctx context.Context, sheetID string) ([][]string, error)
}

type SheetsClient struct {
	httpClient *http.Client
	config     *config.Config
}

// NewClient creates the HTTP client for the sheet export endpoint.
func NewClient(cfg *config.Config) Client {
	return &SheetsClient{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Sheets.TimeoutSeconds) * time.Second,
		},
		config: cfg,
	}
}

func (c *SheetsClient) FetchCSV(ctx context.Context, sheetID string) ([][]string, error) {
	url := fmt.Sprintf("%s/%s/export?format=csv", c.config.Sheets.BaseURL, sheetID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "building sheet export request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching sheet %s", sheetID)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("unexpected status %s fetching sheet %s", resp.Status, sheetID)
	}

	reader := csv.NewReader(resp.Body)
	// Source sheets occasionally have ragged rows; the loader pads them.
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "parsing CSV for sheet %s", sheetID)
	}

	return rows, nil
}
