package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitegen_server/internal/extract"
	"sitegen_server/internal/pipeline"
	"sitegen_server/internal/synth"
)

var sampleConfig = synth.Synthesize(synth.Input{Name: "Acme", BusinessType: extract.TypeAgency})

func newTestClient(url string) *Client {
	return NewClient(Config{Endpoint: url, APIKey: "k-123", MaxRetries: 2, RetryDelay: time.Millisecond, Timeout: time.Second})
}

func TestGenerateSendsRequestAndParsesEnvelope(t *testing.T) {
	var got generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer k-123", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": sampleConfig})
	}))
	defer srv.Close()

	cfg, err := newTestClient(srv.URL).Generate(context.Background(), pipeline.Request{
		Prompt: "agency site", MaxFeatures: 4, BusinessType: extract.TypeAgency,
	})
	require.NoError(t, err)
	assert.Equal(t, sampleConfig, cfg)
	assert.Equal(t, "agency site", got.Prompt)
	assert.Equal(t, DefaultSchema, got.Schema)
	assert.Equal(t, 4, got.Options.MaxFeatures)
	assert.Equal(t, "agency", got.Options.BusinessType)
}

func TestGenerateAcceptsBareConfig(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(sampleConfig)
	}))
	defer srv.Close()

	cfg, err := newTestClient(srv.URL).Generate(context.Background(), pipeline.Request{Prompt: "x"})
	require.NoError(t, err)
	assert.Equal(t, "Acme", cfg.Name)
}

func TestGenerateRetriesTransientFailures(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(sampleConfig)
	}))
	defer srv.Close()

	cfg, err := newTestClient(srv.URL).Generate(context.Background(), pipeline.Request{Prompt: "x"})
	require.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestGenerateGivesUpAfterMaxRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Generate(context.Background(), pipeline.Request{Prompt: "x"})
	var rerr *Error
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, http.StatusTooManyRequests, rerr.StatusCode)
	assert.True(t, rerr.Transient())
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestGenerateDoesNotRetryPermanentFailures(t *testing.T) {
	testCases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"bad request", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad prompt", http.StatusBadRequest)
		}},
		{"envelope failure", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success":false,"error":"quota exceeded"}`))
		}},
		{"malformed", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>oops</html>`))
		}},
		{"empty object", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var calls int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				tc.handler(w, r)
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL).Generate(context.Background(), pipeline.Request{Prompt: "x"})
			var rerr *Error
			require.True(t, errors.As(err, &rerr))
			assert.False(t, rerr.Transient())
			assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
		})
	}
}

func TestGenerateTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	c := NewClient(Config{Endpoint: srv.URL, Timeout: 20 * time.Millisecond, MaxRetries: 0})
	_, err := c.Generate(context.Background(), pipeline.Request{Prompt: "x"})
	var rerr *Error
	require.True(t, errors.As(err, &rerr))
	assert.True(t, rerr.Transient())
}

func TestGenerateHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	c := NewClient(Config{Endpoint: srv.URL, MaxRetries: 5, RetryDelay: time.Hour})
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	_, err := c.Generate(ctx, pipeline.Request{Prompt: "x"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateWithoutEndpoint(t *testing.T) {
	_, err := NewClient(Config{}).Generate(context.Background(), pipeline.Request{Prompt: "x"})
	assert.Error(t, err)
}
