package fetcher_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/rohmanhakim/docscrawler/internal/fetcher"
	"github.com/rohmanhakim/docscrawler/internal/metadata"
)

func mustParse(t *testing.T, raw string) url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("failed to parse %q: %v", raw, err)
	}
	return *u
}

type fakeBrowser struct {
	html string
	err  error
	got  []string
}

func (f *fakeBrowser) Fetch(_ context.Context, rawURL string) (string, error) {
	f.got = append(f.got, rawURL)
	if f.err != nil {
		return "", f.err
	}
	return f.html, nil
}

func (f *fakeBrowser) Close() error { return nil }

func TestFetchMany_HTTPSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><body>hi</body></html>"))
	}))
	defer srv.Close()

	f := fetcher.New(metadata.NoopRecorder{}, 2*time.Second, 2*time.Second, nil)
	outcomes := f.FetchMany(context.Background(), []url.URL{mustParse(t, srv.URL)}, "test-agent")

	if len(outcomes) != 1 {
		t.Fatalf("expected 1 outcome, got %d", len(outcomes))
	}
	if !outcomes[0].OK() {
		t.Fatalf("expected success, got error: %v", outcomes[0].Err)
	}
	if string(outcomes[0].HTML) == "" {
		t.Error("expected non-empty HTML body")
	}
	if outcomes[0].Transport != "http" {
		t.Errorf("Transport = %q, want http", outcomes[0].Transport)
	}
}

func TestFetchMany_NonHTMLFallsBackToBrowser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"not":"html"}`))
	}))
	defer srv.Close()

	browser := &fakeBrowser{html: "<html><body>rendered</body></html>"}
	f := fetcher.New(metadata.NoopRecorder{}, 2*time.Second, 2*time.Second, browser)
	outcomes := f.FetchMany(context.Background(), []url.URL{mustParse(t, srv.URL)}, "test-agent")

	if !outcomes[0].OK() {
		t.Fatalf("expected browser fallback to succeed, got error: %v", outcomes[0].Err)
	}
	if outcomes[0].Transport != "browser" {
		t.Errorf("Transport = %q, want browser", outcomes[0].Transport)
	}
	if len(browser.got) != 1 {
		t.Errorf("expected browser.Fetch called once, got %d", len(browser.got))
	}
}

func TestFetchMany_HTTPErrorWithoutBrowserReturnsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	f := fetcher.New(metadata.NoopRecorder{}, 2*time.Second, 2*time.Second, nil)
	outcomes := f.FetchMany(context.Background(), []url.URL{mustParse(t, srv.URL)}, "test-agent")

	if outcomes[0].OK() {
		t.Fatal("expected failure with no browser fallback configured")
	}
}

func TestFetchMany_IndexAlignment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	urls := []url.URL{mustParse(t, srv.URL+"/a"), mustParse(t, srv.URL+"/b"), mustParse(t, srv.URL+"/c")}
	f := fetcher.New(metadata.NoopRecorder{}, 2*time.Second, 2*time.Second, nil)
	outcomes := f.FetchMany(context.Background(), urls, "test-agent")

	if len(outcomes) != len(urls) {
		t.Fatalf("expected %d outcomes, got %d", len(urls), len(outcomes))
	}
	for i, o := range outcomes {
		if o.URL.String() != urls[i].String() {
			t.Errorf("outcome[%d].URL = %q, want %q", i, o.URL.String(), urls[i].String())
		}
	}
}
