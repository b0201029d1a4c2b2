// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
)

var (
	ErrInvalidOperatorKey = errors.New("invalid operator key")
	ErrMissingOperator    = errors.New("operator id required")
)

// GenerateOperatorKey creates the HMAC-based key an operator presents with
// every write. It is deterministic, so nothing needs storing.
func GenerateOperatorKey(operatorID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(operatorID))
	sum := h.Sum(nil)
	// URL-safe base64, padding trimmed
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateOperatorKey checks the key presented for an operator.
func ValidateOperatorKey(operatorID, key, salt string) error {
	if strings.TrimSpace(operatorID) == "" {
		return ErrMissingOperator
	}
	expected := GenerateOperatorKey(operatorID, salt)
	if !hmac.Equal([]byte(key), []byte(expected)) {
		return ErrInvalidOperatorKey
	}
	return nil
}
