package gviz

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const samplePayload = `{
	"version": "0.6",
	"status": "ok",
	"table": {
		"cols": [
			{"id": "A", "label": "Date", "type": "date"},
			{"id": "B", "label": "Game", "type": "string"},
			{"id": "C", "label": "", "type": "number"}
		],
		"rows": [
			{"c": [{"v": "Date(2024,0,15)", "f": "1/15/2024"}, {"v": "Catan"}, {"v": 4}]},
			{"c": [null, {"v": null}, {"v": 2.5}]}
		]
	}
}`

func TestDecodeResponse_Wrapped(t *testing.T) {
	wrapped := "/*O_o*/\ngoogle.visualization.Query.setResponse(" + samplePayload + ");"

	table, err := DecodeResponse([]byte(wrapped))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Cols) != 3 {
		t.Fatalf("expected 3 cols, got %d", len(table.Cols))
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
}

func TestDecodeResponse_Bare(t *testing.T) {
	table, err := DecodeResponse([]byte(samplePayload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Cols) != 3 {
		t.Errorf("expected 3 cols, got %d", len(table.Cols))
	}
}

func TestDecodeResponse_ErrorStatus(t *testing.T) {
	payload := `{"status":"error","errors":[{"reason":"invalid_query","message":"No such sheet"}]}`
	_, err := DecodeResponse([]byte(payload))
	if err == nil {
		t.Fatal("expected error for status=error payload")
	}
	if !strings.Contains(err.Error(), "No such sheet") {
		t.Errorf("error should carry the payload message, got: %v", err)
	}
}

func TestHeaderLabels_FallbackToID(t *testing.T) {
	table, err := DecodeResponse([]byte(samplePayload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	headers := table.HeaderLabels()
	want := []string{"Date", "Game", "C"}
	for i, h := range headers {
		if h != want[i] {
			t.Errorf("header %d: want %q, got %q", i, want[i], h)
		}
	}
}

func TestCellString(t *testing.T) {
	table, err := DecodeResponse([]byte(samplePayload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		row, col int
		want     string
	}{
		{0, 0, "1/15/2024"}, // date cell uses formatted value
		{0, 1, "Catan"},
		{0, 2, "4"},
		{1, 0, ""},  // missing cell
		{1, 1, ""},  // null value
		{1, 2, "2.5"},
		{0, 99, ""}, // out of range
		{0, -1, ""}, // unresolved field index
	}
	for _, c := range cases {
		if got := table.Rows[c.row].CellString(c.col); got != c.want {
			t.Errorf("row %d col %d: want %q, got %q", c.row, c.col, got, c.want)
		}
	}
}

func TestFetchTable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("sheet"); got != "log" {
			t.Errorf("expected sheet=log, got %q", got)
		}
		w.Write([]byte("google.visualization.Query.setResponse(" + samplePayload + ");"))
	}))
	defer srv.Close()

	c := NewClient("sheet-id")
	c.httpClient = srv.Client()

	// Point the request at the test server by rewriting through a transport.
	c.httpClient.Transport = rewriteHost(srv.URL)

	table, err := c.FetchTable(context.Background(), "log")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Errorf("expected 2 rows, got %d", len(table.Rows))
	}
}

func TestFetchTable_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient("sheet-id")
	c.httpClient = srv.Client()
	c.httpClient.Transport = rewriteHost(srv.URL)

	if _, err := c.FetchTable(context.Background(), "log"); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

// rewriteHost redirects every request to the test server regardless of the
// URL the client built.
func rewriteHost(target string) http.RoundTripper {
	return roundTripFunc(func(req *http.Request) (*http.Response, error) {
		u := *req.URL
		u.Scheme = "http"
		u.Host = strings.TrimPrefix(target, "http://")
		clone := req.Clone(req.Context())
		clone.URL = &u
		return http.DefaultTransport.RoundTrip(clone)
	})
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
