package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestHTTPFetcherFetch(t *testing.T) {
	payload := []byte("not actually an mp4, but bytes all the same")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		w.Write(payload)
	}))
	defer server.Close()

	destPath := filepath.Join(t.TempDir(), "input.mp4")
	fetcher := NewHTTPFetcher(5 * time.Second)

	if err := fetcher.Fetch(context.Background(), server.URL+"/video.mp4", destPath); err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}

	got, err := os.ReadFile(destPath)
	if err != nil {
		t.Fatalf("reading download: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("downloaded %d bytes, want %d", len(got), len(payload))
	}
}

func TestHTTPFetcherFetchErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	destPath := filepath.Join(t.TempDir(), "input.mp4")
	fetcher := NewHTTPFetcher(5 * time.Second)

	if err := fetcher.Fetch(context.Background(), server.URL+"/missing.mp4", destPath); err == nil {
		t.Fatal("Fetch() succeeded on a 404")
	}
	if _, err := os.Stat(destPath); !os.IsNotExist(err) {
		t.Errorf("a file was written for a failed download (stat err = %v)", err)
	}
}

func TestHTTPFetcherFetchUnreachableHost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	destPath := filepath.Join(t.TempDir(), "input.mp4")
	fetcher := NewHTTPFetcher(2 * time.Second)

	if err := fetcher.Fetch(context.Background(), url+"/video.mp4", destPath); err == nil {
		t.Fatal("Fetch() succeeded against a closed server")
	}
}

func TestHTTPFetcherFetchBadURL(t *testing.T) {
	fetcher := NewHTTPFetcher(time.Second)
	if err := fetcher.Fetch(context.Background(), "://not-a-url", filepath.Join(t.TempDir(), "x.mp4")); err == nil {
		t.Fatal("Fetch() accepted a malformed URL")
	}
}
