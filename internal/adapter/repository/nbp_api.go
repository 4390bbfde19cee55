package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"nbp-rate-service/internal/domain/model"
	"nbp-rate-service/internal/metrics"
	"nbp-rate-service/pkg/logger"
	"nbp-rate-service/pkg/utils"
)

// ErrNoData is returned when the upstream answers with an empty table list.
var ErrNoData = errors.New("no table data")

type NBPClient struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
	metrics    *metrics.Metrics
}

type nbpTable struct {
	Table         string    `json:"table"`
	No            string    `json:"no"`
	EffectiveDate string    `json:"effectiveDate"`
	Rates         []nbpRate `json:"rates"`
}

type nbpRate struct {
	Currency string  `json:"currency"`
	Code     string  `json:"code"`
	Mid      float64 `json:"mid"`
}

func NewNBPClient(baseURL string, timeout time.Duration, log *logger.Logger, metrics *metrics.Metrics) *NBPClient {
	return &NBPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log:     log.With("component", "nbp_client"),
		metrics: metrics,
	}
}

// FetchTable downloads the current table and returns its first published instance.
func (c *NBPClient) FetchTable(ctx context.Context, table model.TableID) (*model.Table, error) {
	start := time.Now()

	result, err := c.fetchTable(ctx, table)

	c.metrics.UpstreamDuration.WithLabelValues(table.String()).Observe(time.Since(start).Seconds())
	status := "success"
	if err != nil {
		status = "error"
	}
	c.metrics.UpstreamFetchesTotal.WithLabelValues(table.String(), status).Inc()

	if err != nil {
		c.log.Error("Failed to fetch NBP table", "table", table, "error", err)
		return nil, err
	}

	c.log.Debug("Fetched NBP table",
		"table", table,
		"no", result.No,
		"effective_date", utils.FormatDate(result.EffectiveDate),
		"rates", len(result.Rates),
	)
	return result, nil
}

func (c *NBPClient) fetchTable(ctx context.Context, table model.TableID) (*model.Table, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, table.Path())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned non-OK status: %d", resp.StatusCode)
	}

	var tables []nbpTable
	if err := json.NewDecoder(resp.Body).Decode(&tables); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(tables) == 0 {
		return nil, fmt.Errorf("%w: table %s", ErrNoData, table)
	}

	return toModel(table, tables[0]), nil
}

func toModel(id model.TableID, src nbpTable) *model.Table {
	table := &model.Table{
		Table: id,
		No:    src.No,
		Rates: make([]model.Rate, 0, len(src.Rates)),
	}

	if src.Table != "" {
		table.Table = model.TableID(strings.ToUpper(src.Table))
	}

	// Metadata only; a malformed date does not invalidate the rates.
	if date, err := utils.ParseDate(src.EffectiveDate); err == nil {
		table.EffectiveDate = date
	}

	for _, rate := range src.Rates {
		table.Rates = append(table.Rates, model.Rate{
			Currency: rate.Currency,
			Code:     rate.Code,
			Mid:      rate.Mid,
		})
	}

	return table
}
