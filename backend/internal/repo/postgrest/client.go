package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/brodiemcgee/eros-admin/backend/internal/gateway"
	"github.com/brodiemcgee/eros-admin/backend/internal/infra/httpclient"
)

const restPrefix = "/rest/v1/"

// Client speaks the PostgREST dialect exposed by the managed backend.
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

func NewClient(baseURL string, serviceKey string, timeout time.Duration) (*Client, error) {
	trimmedBaseURL := strings.TrimSpace(baseURL)
	trimmedKey := strings.TrimSpace(serviceKey)
	if trimmedBaseURL == "" || trimmedKey == "" {
		return nil, &gateway.BackendError{
			Op:  "create postgrest client",
			Err: errors.New("backend rest url or service key is empty"),
		}
	}

	parsed, err := url.Parse(trimmedBaseURL)
	if err != nil {
		return nil, &gateway.BackendError{Op: "parse backend rest url", Err: err}
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, &gateway.BackendError{
			Op:  "validate backend rest url",
			Err: fmt.Errorf("invalid backend rest url: %s", trimmedBaseURL),
		}
	}

	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL:    strings.TrimRight(trimmedBaseURL, "/"),
		serviceKey: trimmedKey,
		httpClient: httpclient.New(timeout),
	}, nil
}

func (c *Client) Select(ctx context.Context, q gateway.Query) (json.RawMessage, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, http.MethodGet, restPrefix+q.Table, queryParams(q, true), nil, nil)
	if err != nil {
		return nil, withOp(err, "select "+q.Table)
	}
	if len(resp.body) == 0 {
		return json.RawMessage("[]"), nil
	}
	return json.RawMessage(resp.body), nil
}

func (c *Client) Count(ctx context.Context, q gateway.Query) (int64, error) {
	if err := q.Validate(); err != nil {
		return 0, err
	}

	params := queryParams(q, false)
	params.Set("select", "id")
	resp, err := c.do(ctx, http.MethodHead, restPrefix+q.Table, params, nil, map[string]string{
		"Prefer": "count=exact",
	})
	if err != nil {
		return 0, withOp(err, "count "+q.Table)
	}

	total, err := parseContentRangeTotal(resp.header.Get("Content-Range"))
	if err != nil {
		return 0, &gateway.BackendError{
			Op:         "count " + q.Table,
			StatusCode: resp.status,
			Err:        err,
		}
	}
	return total, nil
}

func (c *Client) Update(ctx context.Context, table string, id string, patch map[string]any) error {
	if !gateway.ValidIdentifier(table) || strings.TrimSpace(id) == "" || len(patch) == 0 {
		return fmt.Errorf("%w: update %s", gateway.ErrInvalidQuery, table)
	}

	body, err := json.Marshal(patch)
	if err != nil {
		return &gateway.BackendError{Op: "marshal update patch", Err: err}
	}

	params := url.Values{}
	params.Set("id", "eq."+id)
	if _, err := c.do(ctx, http.MethodPatch, restPrefix+table, params, body, map[string]string{
		"Prefer": "return=minimal",
	}); err != nil {
		return withOp(err, "update "+table)
	}
	return nil
}

func (c *Client) Insert(ctx context.Context, table string, row map[string]any) error {
	if !gateway.ValidIdentifier(table) || len(row) == 0 {
		return fmt.Errorf("%w: insert %s", gateway.ErrInvalidQuery, table)
	}

	body, err := json.Marshal(row)
	if err != nil {
		return &gateway.BackendError{Op: "marshal insert row", Err: err}
	}

	if _, err := c.do(ctx, http.MethodPost, restPrefix+table, nil, body, map[string]string{
		"Prefer": "return=minimal",
	}); err != nil {
		return withOp(err, "insert "+table)
	}
	return nil
}

func (c *Client) RPC(ctx context.Context, name string, params map[string]any) (json.RawMessage, error) {
	if !gateway.ValidIdentifier(name) {
		return nil, fmt.Errorf("%w: rpc %q", gateway.ErrInvalidQuery, name)
	}
	if params == nil {
		params = map[string]any{}
	}

	body, err := json.Marshal(params)
	if err != nil {
		return nil, &gateway.BackendError{Op: "marshal rpc params", Err: err}
	}

	resp, err := c.do(ctx, http.MethodPost, restPrefix+"rpc/"+name, nil, body, nil)
	if err != nil {
		return nil, withOp(err, "rpc "+name)
	}
	return json.RawMessage(resp.body), nil
}

type response struct {
	status int
	header http.Header
	body   []byte
}

func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	params url.Values,
	body []byte,
	headers map[string]string,
) (response, error) {
	if c == nil || c.httpClient == nil {
		return response{}, &gateway.BackendError{
			Op:  "do request",
			Err: errors.New("postgrest client is not initialized"),
		}
	}

	fullURL := c.baseURL + path
	if encoded := params.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	var bodyReader io.Reader
	if len(body) > 0 {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return response{}, &gateway.BackendError{Op: "create http request", Err: err}
	}
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Accept", "application/json")
	if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return response{}, &gateway.BackendError{
			Op:           "execute http request",
			Fallbackable: isFallbackableNetworkError(err),
			Err:          err,
		}
	}
	defer resp.Body.Close()

	responseBytes, readErr := io.ReadAll(io.LimitReader(resp.Body, 16*1024*1024))
	if readErr != nil {
		return response{}, &gateway.BackendError{
			Op:         "read http response",
			StatusCode: resp.StatusCode,
			Err:        readErr,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		code, message := decodeErrorBody(responseBytes)
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return response{}, &gateway.BackendError{
			Op:           "unexpected http status",
			StatusCode:   resp.StatusCode,
			Code:         code,
			Message:      message,
			Fallbackable: resp.StatusCode >= 500,
		}
	}

	return response{status: resp.StatusCode, header: resp.Header, body: responseBytes}, nil
}

func queryParams(q gateway.Query, withSelect bool) url.Values {
	params := url.Values{}
	if withSelect {
		params.Set("select", selectClause(q))
	}
	for _, f := range q.Filters {
		params.Add(f.Column, string(f.Op)+"."+gateway.FormatValue(f.Value))
	}
	if q.Order != nil {
		direction := "desc"
		if q.Order.Ascending {
			direction = "asc"
		}
		params.Set("order", q.Order.Column+"."+direction)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	return params
}

func selectClause(q gateway.Query) string {
	parts := make([]string, 0, len(q.Columns)+len(q.Embeds))
	if len(q.Columns) == 0 {
		parts = append(parts, "*")
	} else {
		parts = append(parts, q.Columns...)
	}

	for _, e := range q.Embeds {
		var b strings.Builder
		if e.Alias != "" && e.Alias != e.Table {
			b.WriteString(e.Alias)
			b.WriteString(":")
		}
		b.WriteString(e.Table)
		if e.Hint != "" {
			b.WriteString("!")
			b.WriteString(e.Hint)
		}
		b.WriteString("(")
		if len(e.Columns) == 0 {
			b.WriteString("*")
		} else {
			b.WriteString(strings.Join(e.Columns, ","))
		}
		b.WriteString(")")
		parts = append(parts, b.String())
	}
	return strings.Join(parts, ",")
}

// parseContentRangeTotal reads the total from "0-24/3573" or "*/0".
func parseContentRangeTotal(value string) (int64, error) {
	idx := strings.LastIndex(value, "/")
	if idx < 0 {
		return 0, fmt.Errorf("missing content-range total: %q", value)
	}
	total := strings.TrimSpace(value[idx+1:])
	if total == "*" {
		return 0, fmt.Errorf("backend did not report an exact count")
	}
	n, err := strconv.ParseInt(total, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse content-range total %q: %w", total, err)
	}
	return n, nil
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func decodeErrorBody(raw []byte) (string, string) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "", ""
	}
	var payload errorBody
	if err := json.Unmarshal(trimmed, &payload); err == nil {
		if payload.Message != "" {
			return payload.Code, payload.Message
		}
		if payload.Error != "" {
			return payload.Code, payload.Error
		}
	}
	return "", string(trimmed)
}

func withOp(err error, op string) error {
	var backendErr *gateway.BackendError
	if errors.As(err, &backendErr) {
		backendErr.Op = op
		return backendErr
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isFallbackableNetworkError(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
