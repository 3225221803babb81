// Package webhook implements the signed-delivery contract for configurations
// pushed to the service by other systems.
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

// SignatureHeader carries "sha256=<hex digest>" of the raw request body.
const SignatureHeader = "X-Signature-256"

// DeliveryHeader carries the sender's unique delivery ID.
const DeliveryHeader = "X-Delivery-ID"

const signaturePrefix = "sha256="

var (
	ErrMissingSecret    = errors.New("webhook secret is not configured")
	ErrInvalidSignature = errors.New("invalid webhook signature")
)

// Sign returns the signature header value for body.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return signaturePrefix + hex.EncodeToString(mac.Sum(nil))
}

// Verify checks header against the HMAC-SHA-256 of body. An empty secret is
// a failure, never a pass-through.
func Verify(secret string, body []byte, header string) error {
	if secret == "" {
		return ErrMissingSecret
	}
	if !strings.HasPrefix(header, signaturePrefix) {
		return ErrInvalidSignature
	}
	got, err := hex.DecodeString(strings.TrimPrefix(header, signaturePrefix))
	if err != nil {
		return ErrInvalidSignature
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	if !hmac.Equal(got, mac.Sum(nil)) {
		return ErrInvalidSignature
	}
	return nil
}
