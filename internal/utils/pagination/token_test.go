package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	// Test case 1: Standard date/time values
	submissionDate := time.Date(2025, 3, 15, 14, 30, 45, 123456789, time.UTC)
	claimID := "claim-123"

	// Encode the token
	token := EncodeToken(submissionDate, claimID)
	assert.NotEmpty(t, token, "Token should not be empty")

	// Decode the token and verify
	decodedDate, decodedClaimID, err := DecodeToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, submissionDate, decodedDate, "Submission date should match after decode")
	assert.Equal(t, claimID, decodedClaimID, "Claim ID should match after decode")

	// Test case 2: Zero time value
	zeroTime := time.Time{}
	zeroToken := EncodeToken(zeroTime, claimID)
	decodedZeroDate, decodedZeroClaimID, err := DecodeToken(zeroToken)
	assert.NoError(t, err, "Decoding zero time should not return an error")
	assert.Equal(t, zeroTime, decodedZeroDate, "Zero date should match after decode")
	assert.Equal(t, claimID, decodedZeroClaimID, "Claim ID should match after decode")

	// Test case 3: Current time value
	now := time.Now().UTC()
	nowToken := EncodeToken(now, claimID)
	decodedNowDate, _, err := DecodeToken(nowToken)
	assert.NoError(t, err, "Decoding current time should not return an error")

	// Due to potential nanosecond precision issues, use Equal instead of direct comparison
	assert.True(t, now.Equal(decodedNowDate), "Current date should match after decode")
}

func TestDecodeTokenError(t *testing.T) {
	// Test invalid base64
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode", "Error should mention base64 decoding")

	// Test invalid format (missing separator)
	invalidToken := "MjAyNS0wMy0xNVQwMDowMDowMFo=" // Base64 encoded date without separator
	_, _, err = DecodeToken(invalidToken)
	assert.Error(t, err, "Should return an error for invalid token format")
	assert.Contains(t, err.Error(), "split", "Error should mention splitting issue")

	// Test invalid date format
	invalidDateToken := "bm90YWRhdGV8Y2xhaW0tMTIz" // Base64 encoded "notadate|claim-123"
	_, _, err = DecodeToken(invalidDateToken)
	assert.Error(t, err, "Should return an error for invalid date format")
	assert.Contains(t, err.Error(), "submission date parse", "Error should mention date parsing issue")
}
