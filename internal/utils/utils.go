package utils

import (
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/sashabaranov/go-openai"
)

// transient is implemented by errors that know whether a retry can help.
type transient interface {
	Transient() bool
}

// ShouldRetry reports whether err looks like a temporary failure: rate limits,
// server errors, timeouts or dropped connections.
func ShouldRetry(err error) bool {
	if err == nil {
		return false
	}
	var t transient
	if errors.As(err, &t) {
		return t.Transient()
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return RetryableStatus(apiErr.HTTPStatusCode)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return RetryableStatus(reqErr.HTTPStatusCode)
	}

	errMsg := strings.ToLower(err.Error())
	for _, s := range []string{
		"rate limit",
		"resource_exhausted",
		"500 internal server error",
		"502 bad gateway",
		"503 service unavailable",
		"504 gateway timeout",
		"unavailable",
		"timeout",
		"connection reset by peer",
		"connection refused",
		"context deadline exceeded",
	} {
		if strings.Contains(errMsg, s) {
			return true
		}
	}
	return false
}

// RetryableStatus is true for 429 and any 5xx status.
func RetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

// Truncate cuts s to at most n characters.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// Excerpt shortens s for log lines and warnings, marking the cut with "...".
func Excerpt(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return Truncate(s, n) + "..."
}
