package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeMultiFieldToken(t *testing.T) {
	// Typical cursor shape: created_at timestamp plus a row id.
	timestampStr := time.Date(2026, 3, 15, 14, 30, 45, 123456789, time.UTC).Format(time.RFC3339Nano)
	token := EncodeMultiFieldToken(timestampStr, "receipt-42")

	decoded, err := DecodeMultiFieldToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, []string{timestampStr, "receipt-42"}, decoded, "Fields should match after decode")

	// Empty token encodes to a single empty field.
	emptyToken := EncodeMultiFieldToken()
	decodedEmpty, err := DecodeMultiFieldToken(emptyToken)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, []string{""}, decodedEmpty, "Should decode to slice with one empty string")

	// Pipes inside a field split; cursor fields must not contain them.
	specialToken := EncodeMultiFieldToken("a|b", "c")
	decodedSpecial, err := DecodeMultiFieldToken(specialToken)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Len(t, decodedSpecial, 3, "Should split on all pipe characters")
}

func TestDecodeMultiFieldTokenError(t *testing.T) {
	_, err := DecodeMultiFieldToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode", "Error should mention base64 decoding")
}
