package gviz

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const baseURL = "https://docs.google.com/spreadsheets/d"

// Client fetches sheet tabs through the Google Visualization query endpoint.
type Client struct {
	sheetID    string
	httpClient *http.Client
}

// NewClient creates a gviz client for one spreadsheet.
func NewClient(sheetID string) *Client {
	return &Client{
		sheetID: sheetID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Column describes one column of a fetched table.
type Column struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Cell is one cell of a row. Value is nil, float64, bool, or string as
// decoded from JSON; Formatted carries the sheet's display string when the
// endpoint provides one (dates, custom number formats).
type Cell struct {
	Value     any    `json:"v"`
	Formatted string `json:"f"`
}

type Row struct {
	Cells []Cell `json:"c"`
}

// Table is one raw tab payload. It is read-only input to the pipeline.
type Table struct {
	Cols []Column `json:"cols"`
	Rows []Row    `json:"rows"`
}

// HeaderLabels returns the trimmed display label per column, falling back to
// the column ID when the label is blank.
func (t *Table) HeaderLabels() []string {
	headers := make([]string, len(t.Cols))
	for i, c := range t.Cols {
		label := c.Label
		if label == "" {
			label = c.ID
		}
		headers[i] = strings.TrimSpace(label)
	}
	return headers
}

// CellString coerces the cell at index idx to a string. Out-of-range and
// null cells become "". Date cells come back as "Date(y,m,d)" constructors;
// for those the formatted display value is used instead.
func (r Row) CellString(idx int) string {
	if idx < 0 || idx >= len(r.Cells) {
		return ""
	}
	cell := r.Cells[idx]
	switch v := cell.Value.(type) {
	case nil:
		return ""
	case string:
		if strings.HasPrefix(v, "Date(") && cell.Formatted != "" {
			return cell.Formatted
		}
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// URL builds the query URL for one tab. The cache-busting t parameter matches
// what the sheet's own frontend sends.
func (c *Client) URL(tab string) string {
	return fmt.Sprintf("%s/%s/gviz/tq?sheet=%s&headers=1&tqx=out:json&t=%d",
		baseURL, c.sheetID, url.QueryEscape(tab), time.Now().UnixMilli())
}

// FetchTable fetches and decodes one tab.
func (c *Client) FetchTable(ctx context.Context, tab string) (*Table, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(tab), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sheet %q: %w", tab, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sheet endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return DecodeResponse(body)
}

// queryResponse wraps the gviz payload.
type queryResponse struct {
	Status string `json:"status"`
	Errors []struct {
		Reason  string `json:"reason"`
		Message string `json:"message"`
	} `json:"errors"`
	Table *Table `json:"table"`
}

// DecodeResponse strips the setResponse(...) wrapper the endpoint emits even
// for tqx=out:json and decodes the inner payload.
func DecodeResponse(body []byte) (*Table, error) {
	raw := unwrap(body)

	var qr queryResponse
	if err := json.Unmarshal(raw, &qr); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if qr.Status == "error" {
		msg := "unknown error"
		if len(qr.Errors) > 0 {
			msg = qr.Errors[0].Message
			if msg == "" {
				msg = qr.Errors[0].Reason
			}
		}
		return nil, fmt.Errorf("query failed: %s", msg)
	}
	if qr.Table == nil {
		return nil, fmt.Errorf("response has no table")
	}

	return qr.Table, nil
}

// unwrap extracts the JSON object from a
// "/*O_o*/\ngoogle.visualization.Query.setResponse({...});" envelope.
// Bare JSON passes through untouched.
func unwrap(body []byte) []byte {
	b := bytes.TrimSpace(body)
	i := bytes.IndexByte(b, '(')
	if i < 0 || !bytes.Contains(b[:i], []byte("setResponse")) {
		return b
	}
	b = b[i+1:]
	if j := bytes.LastIndexByte(b, ')'); j >= 0 {
		b = b[:j]
	}
	return bytes.TrimSpace(b)
}
