package http

import (
	"context"
	"errors"
	nethttp "net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGetSendsHeadersAndQuery(t *testing.T) {
	var gotAuth, gotAgent, gotQuery string
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAgent = r.Header.Get("User-Agent")
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := NewClient()
	client.SetBearerToken("secret")

	params := url.Values{"query": {"Inception"}, "language": {"es"}}
	body, err := client.Get(context.Background(), server.URL+"/search", params)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(body) != `{"ok":true}` {
		t.Errorf("body = %q", body)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer secret")
	}
	if gotAgent != "MovieRenamer" {
		t.Errorf("User-Agent = %q, want %q", gotAgent, "MovieRenamer")
	}
	if gotQuery != "language=es&query=Inception" {
		t.Errorf("query = %q", gotQuery)
	}
}

func TestGetStatusError(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Retry-After", "3")
		w.WriteHeader(nethttp.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient()
	_, err := client.Get(context.Background(), server.URL, nil)
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *StatusError", err)
	}
	if se.Code != nethttp.StatusTooManyRequests {
		t.Errorf("Code = %d, want 429", se.Code)
	}
	if se.RetryAfter != 3*time.Second {
		t.Errorf("RetryAfter = %v, want 3s", se.RetryAfter)
	}
	if !se.Retryable() {
		t.Error("429 should be retryable")
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"rate limited", &StatusError{Code: 429}, true},
		{"server error", &StatusError{Code: 502}, true},
		{"not found", &StatusError{Code: 404}, false},
		{"unauthorized", &StatusError{Code: 401}, false},
		{"transport", errors.New("connection reset"), true},
		{"cancelled", context.Canceled, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestDownloadFile(t *testing.T) {
	content := []byte("poster image bytes")
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Write(content)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "poster.jpg")
	var lastWritten, lastTotal int64

	client := NewClient()
	err := client.DownloadFile(context.Background(), server.URL, dest, func(written, total int64) {
		lastWritten = written
		lastTotal = total
	})
	if err != nil {
		t.Fatalf("DownloadFile: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("reading download: %v", err)
	}
	if string(data) != string(content) {
		t.Errorf("downloaded %q, want %q", data, content)
	}
	if lastWritten != int64(len(content)) {
		t.Errorf("progress written = %d, want %d", lastWritten, len(content))
	}
	if lastTotal != int64(len(content)) {
		t.Errorf("progress total = %d, want %d", lastTotal, len(content))
	}
}

func TestDownloadFileNotFound(t *testing.T) {
	server := httptest.NewServer(nethttp.NotFoundHandler())
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "poster.jpg")
	client := NewClient()
	err := client.DownloadFile(context.Background(), server.URL, dest, nil)
	var se *StatusError
	if !errors.As(err, &se) || se.Code != nethttp.StatusNotFound {
		t.Fatalf("err = %v, want 404 *StatusError", err)
	}
	if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
		t.Error("no file should be created on a failed download")
	}
}

func TestParseRetryAfter(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"2", 2 * time.Second},
		{" 1.5 ", time.Second},
		{"0", 0},
		{"-3", 0},
		{"soon", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := parseRetryAfter(tt.value); got != tt.want {
			t.Errorf("parseRetryAfter(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
