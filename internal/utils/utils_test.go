package utils

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
)

type flaky struct{ retry bool }

func (f flaky) Error() string   { return "rate limit exceeded" }
func (f flaky) Transient() bool { return f.retry }

func TestShouldRetry(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"transient marker wins over text", fmt.Errorf("call: %w", flaky{retry: false}), false},
		{"transient marker", flaky{retry: true}, true},
		{"openai 429", &openai.APIError{HTTPStatusCode: http.StatusTooManyRequests}, true},
		{"openai 500", &openai.APIError{HTTPStatusCode: http.StatusInternalServerError}, true},
		{"openai 400", &openai.APIError{HTTPStatusCode: http.StatusBadRequest}, false},
		{"openai request error 503", &openai.RequestError{HTTPStatusCode: http.StatusServiceUnavailable, Err: errors.New("x")}, true},
		{"deadline", fmt.Errorf("post: %w", context.DeadlineExceeded), true},
		{"connection refused", errors.New("dial tcp: connection refused"), true},
		{"plain", errors.New("invalid json"), false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ShouldRetry(tc.err))
		})
	}
}

func TestTruncateCountsRunes(t *testing.T) {
	assert.Equal(t, "héll", Truncate("héllo", 4))
	assert.Equal(t, "héllo", Truncate("héllo", 10))
	assert.Equal(t, "", Truncate("héllo", 0))
	assert.Equal(t, "héll...", Excerpt("héllo", 4))
	assert.Equal(t, "hi", Excerpt("hi", 4))
}
