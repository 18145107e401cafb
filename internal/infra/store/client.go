package store

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"property-revenue-sync/internal/infra"
	"property-revenue-sync/internal/pkg/config"
	"property-revenue-sync/internal/pkg/errs"
)

const (
	defaultPageSize = 100
	defaultMaxPages = 100
	maxBodyBytes    = 8 << 20
	maxErrorBody    = 512
)

var errEmptyID = errs.New("response carried no record id")

// Client is a paginated CRUD client for the tabular record store.
type Client struct {
	baseURL    string
	tokens     []string
	pageSize   int
	maxPages   int
	pageDelay  time.Duration
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger

	mu    sync.Mutex
	token string // committed after the first successful check
}

func NewClient(cfg config.StoreConfig, logger *slog.Logger) *Client {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	tokens := make([]string, 0, len(cfg.APITokens))
	for _, t := range cfg.APITokens {
		if t = strings.TrimSpace(t); t != "" {
			tokens = append(tokens, t)
		}
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		tokens:     tokens,
		pageSize:   pageSize,
		maxPages:   maxPages,
		pageDelay:  cfg.PageDelay,
		timeout:    timeout,
		httpClient: &http.Client{},
		logger:     logger.With(slog.String("component", "store_client")),
	}
}

// ListAll pages through a table with skip/take until a short page, the MaxRecords cap or the
// page ceiling. The result is ordered newest first.
func (c *Client) ListAll(ctx context.Context, table TableRef, opts ListOptions) ([]Record, error) {
	token, err := c.authorizedToken(ctx, table)
	if err != nil {
		return nil, err
	}

	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = c.pageSize
	}

	var all []Record
	for page := 0; ; page++ {
		if page >= c.maxPages {
			c.logger.Warn("store page ceiling reached, returning what was fetched",
				"table", table.label(), "pages", page, "records", len(all))
			break
		}

		take := pageSize
		if opts.MaxRecords > 0 {
			left := opts.MaxRecords - len(all)
			if left <= 0 {
				break
			}
			take = min(take, left)
		}

		query := url.Values{
			"take":         {strconv.Itoa(take)},
			"skip":         {strconv.Itoa(len(all))},
			"fieldKeyType": {"name"},
		}
		body, err := c.do(ctx, http.MethodGet, recordPath(table.ID), query, nil, token)
		if err != nil {
			return nil, errs.Wrapf(err, "list %s page %d", table.label(), page+1)
		}
		records, err := decodeRecordList(body)
		if err != nil {
			return nil, errs.Wrapf(err, "list %s page %d", table.label(), page+1)
		}
		all = append(all, records...)

		if len(records) < take {
			break
		}
		if err := c.pause(ctx); err != nil {
			return nil, err
		}
	}

	sortNewestFirst(all)
	return all, nil
}

// Create tries the table's create strategies in order and returns on the first 2xx.
func (c *Client) Create(ctx context.Context, table TableRef, fields map[string]string) (Record, error) {
	token, err := c.authorizedToken(ctx, table)
	if err != nil {
		return Record{}, err
	}

	strategies := table.CreateStrategies
	if len(strategies) == 0 {
		strategies = DefaultCreateStrategies
	}

	var lastErr error
	for _, s := range strategies {
		path, payload := s.Build(table.ID, "", fields)
		body, err := c.do(ctx, http.MethodPost, path, writeQuery(), payload, token)
		if err != nil {
			c.logger.Debug("create strategy rejected", "table", table.label(), "strategy", s.Name, "error", err)
			lastErr = err
			continue
		}

		rec, decodeErr := decodeWrittenRecord(body)
		if decodeErr != nil {
			// accepted but the response shape is unknown; the id arrives on the next listing
			c.logger.Warn("create accepted with unrecognised response", "table", table.label(), "strategy", s.Name)
			rec = Record{Fields: copyFields(fields)}
		}
		return rec, nil
	}

	return Record{}, errs.Wrapf(lastErr, "create in %s: all %d write strategies failed", table.label(), len(strategies))
}

// Update tries the table's patch strategies in order and returns on the first 2xx.
func (c *Client) Update(ctx context.Context, table TableRef, id string, fields map[string]string) error {
	token, err := c.authorizedToken(ctx, table)
	if err != nil {
		return err
	}

	strategies := table.UpdateStrategies
	if len(strategies) == 0 {
		strategies = DefaultUpdateStrategies
	}

	var lastErr error
	for _, s := range strategies {
		path, payload := s.Build(table.ID, id, fields)
		if _, err := c.do(ctx, http.MethodPatch, path, writeQuery(), payload, token); err != nil {
			c.logger.Debug("update strategy rejected", "table", table.label(), "record_id", id, "strategy", s.Name, "error", err)
			lastErr = err
			continue
		}
		return nil
	}

	return errs.Wrapf(lastErr, "update %s in %s: all %d write strategies failed", id, table.label(), len(strategies))
}

// Delete removes a record; a record that is already gone counts as deleted.
func (c *Client) Delete(ctx context.Context, table TableRef, id string) error {
	token, err := c.authorizedToken(ctx, table)
	if err != nil {
		return err
	}

	_, err = c.do(ctx, http.MethodDelete, recordItemPath(table.ID, id), nil, nil, token)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.logger.Debug("record already absent", "table", table.label(), "record_id", id)
			return nil
		}
		return errs.Wrapf(err, "delete %s in %s", id, table.label())
	}
	return nil
}

// authorizedToken probes the configured tokens with a one-record read and keeps the first
// accepted one for the rest of the process lifetime.
func (c *Client) authorizedToken(ctx context.Context, table TableRef) (string, error) {
	if strings.TrimSpace(table.ID) == "" {
		return "", infra.NewConfigurationError("store table id is empty", errs.ErrMissingTableURL)
	}
	if c.baseURL == "" {
		return "", infra.NewConfigurationError("store base url is empty", errs.ErrMissingTableURL)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" {
		return c.token, nil
	}
	if len(c.tokens) == 0 {
		return "", infra.NewConfigurationError("no store token configured", errs.ErrMissingToken)
	}

	var lastErr error
	for i, candidate := range c.tokens {
		query := url.Values{"take": {"1"}}
		if _, err := c.do(ctx, http.MethodGet, recordPath(table.ID), query, nil, candidate); err != nil {
			c.logger.Warn("store token rejected by check", "candidate", i, "error", err)
			lastErr = err
			continue
		}
		c.logger.Info("store token accepted", "candidate", i)
		c.token = candidate
		return candidate, nil
	}

	return "", infra.NewConfigurationError("no store token accepted", errs.Mark(lastErr, errs.ErrNoUsableToken))
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any, token string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, errs.Wrap(err, "encode store payload")
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, errs.Wrap(err, "build store request")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, infra.NewTransportError(method+" "+path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, infra.NewTransportError(method+" "+path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, infra.NewHTTPError(resp.StatusCode, method+" "+path, truncate(body))
	}
	return body, nil
}

func (c *Client) pause(ctx context.Context) error {
	if c.pageDelay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(c.pageDelay):
		return nil
	}
}

func writeQuery() url.Values {
	return url.Values{"fieldKeyType": {"name"}, "typecast": {"true"}}
}

func truncate(body []byte) string {
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return string(body)
}

func copyFields(fields map[string]string) map[string]string {
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}
