package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestClient_RetryOn429(t *testing.T) {
	var attempts atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := New(WithRetries(3), WithBackoff(10*time.Millisecond))

	start := time.Now()
	body, err := client.Do(context.Background(), http.MethodGet, server.URL, nil, nil)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}

	if string(body) != `{"ok":true}` {
		t.Errorf("unexpected body: %s", body)
	}

	if attempts.Load() != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts.Load())
	}

	// Backoff sleeps: 10ms after attempt 1, 20ms after attempt 2.
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("expected at least 30ms of backoff, got %v", elapsed)
	}
}

func TestClient_ExhaustsRetriesOn500(t *testing.T) {
	var attempts atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(WithRetries(3), WithBackoff(time.Millisecond))

	_, err := client.Do(context.Background(), http.MethodGet, server.URL, nil, nil)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	if attempts.Load() != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts.Load())
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %T: %v", err, err)
	}

	if statusErr.Code != http.StatusInternalServerError {
		t.Errorf("expected code 500, got %d", statusErr.Code)
	}

	if !strings.Contains(err.Error(), "max retries exceeded") {
		t.Errorf("expected max retries message, got: %v", err)
	}
}

func TestClient_RetriesClampedToOneAttempt(t *testing.T) {
	var attempts atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := New(WithRetries(0), WithBackoff(time.Millisecond))

	if _, err := client.Do(context.Background(), http.MethodGet, server.URL, nil, nil); err != nil {
		t.Fatalf("Do: %v", err)
	}

	if attempts.Load() != 1 {
		t.Errorf("expected exactly 1 attempt, got %d", attempts.Load())
	}
}

func TestClient_UserAgentHeader(t *testing.T) {
	var gotUA string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := New()
	if _, err := client.Do(context.Background(), http.MethodGet, server.URL, nil, nil); err != nil {
		t.Fatalf("Do: %v", err)
	}

	if gotUA != DefaultUserAgent {
		t.Errorf("expected User-Agent %q, got %q", DefaultUserAgent, gotUA)
	}
}

func TestClient_ExtraHeaders(t *testing.T) {
	var gotToken string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("token")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := New()
	header := http.Header{"Token": []string{"secret"}}
	if _, err := client.Do(context.Background(), http.MethodGet, server.URL, header, nil); err != nil {
		t.Fatalf("Do: %v", err)
	}

	if gotToken != "secret" {
		t.Errorf("expected token header, got %q", gotToken)
	}
}

func TestClient_GetJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name":"pool","tvl":42.5}`))
	}))
	defer server.Close()

	client := New()

	var out struct {
		Name string  `json:"name"`
		TVL  float64 `json:"tvl"`
	}
	if err := client.GetJSON(context.Background(), server.URL, nil, &out); err != nil {
		t.Fatalf("GetJSON: %v", err)
	}

	if out.Name != "pool" || out.TVL != 42.5 {
		t.Errorf("unexpected decode: %+v", out)
	}
}

func TestClient_GetJSON_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := New()

	var out map[string]any
	err := client.GetJSON(context.Background(), server.URL, nil, &out)
	if err == nil {
		t.Fatal("expected error for malformed body")
	}
}

func TestClient_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Do(ctx, http.MethodGet, server.URL, nil, nil)
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
}

func TestClient_DeadlineSurfacesAsContextError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := New(WithRetries(3), WithBackoff(time.Millisecond))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Do(ctx, http.MethodGet, server.URL, nil, nil)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
