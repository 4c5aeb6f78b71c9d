package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// EncodeToken creates a base64 encoded token from a submission date and claim ID.
// The (submission_date, claim_id) pair totally orders claims, so the token
// names an exact resume point for keyset pagination.
func EncodeToken(submissionDate time.Time, claimID string) string {
	tokenStr := fmt.Sprintf("%s|%s", submissionDate.Format(timeFormat), claimID)
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses the base64 encoded token back into submission date and claim ID.
func DecodeToken(token string) (time.Time, string, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	tokenStr := string(decodedBytes)
	parts := strings.SplitN(tokenStr, "|", 2)
	if len(parts) != 2 {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (split)")
	}

	submissionDate, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (submission date parse): %w", err)
	}

	if parts[1] == "" {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (empty claim id)")
	}

	return submissionDate, parts[1], nil
}
