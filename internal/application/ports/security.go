package ports

import "time"

// TokenIssuer signs and validates project access tokens (RS256).
type TokenIssuer interface {
	IssueProjectToken(projectID string, ttl time.Duration) (string, error)
	// ValidateProjectToken returns the project id carried by a valid token.
	ValidateProjectToken(tokenString string) (projectID string, err error)
}
