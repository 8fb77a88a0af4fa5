// Copyright (c) 2026 DOMINUSBABEL.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
)

var ErrInvalidAdminKey = errors.New("invalid admin key")

// GenerateAdminKey derives the HMAC-based admin key for a dataset.
// Deterministic, so the key never needs to be stored: possession of the
// key is proof the caller created the dataset.
func GenerateAdminKey(datasetID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(datasetID))
	sum := h.Sum(nil)
	// URL-safe base64 without padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateAdminKey checks the provided key against the dataset's derived
// key in constant time.
func ValidateAdminKey(datasetID, adminKey, salt string) error {
	expected := GenerateAdminKey(datasetID, salt)
	if !hmac.Equal([]byte(adminKey), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}
