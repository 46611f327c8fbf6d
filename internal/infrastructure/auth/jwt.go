package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/amirhosseinghanipour/projectdb/internal/application/ports"
	"github.com/amirhosseinghanipour/projectdb/internal/domain/ident"
)

// TokenIssuer implements ports.TokenIssuer with RS256.
type TokenIssuer struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	issuer     string
	audience   string
}

type projectClaims struct {
	jwt.RegisteredClaims
	ProjectID string `json:"project_id"`
}

func NewTokenIssuer(privateKey *rsa.PrivateKey, issuer, audience string) *TokenIssuer {
	return &TokenIssuer{
		privateKey: privateKey,
		publicKey:  &privateKey.PublicKey,
		issuer:     issuer,
		audience:   audience,
	}
}

func (t *TokenIssuer) IssueProjectToken(projectID string, ttl time.Duration) (string, error) {
	if !ident.IsValidProjectID(projectID) {
		return "", fmt.Errorf("issue token: invalid project id %q", projectID)
	}
	now := time.Now()
	claims := projectClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Audience:  jwt.ClaimStrings{t.audience},
			Subject:   projectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		ProjectID: projectID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(t.privateKey)
}

func (t *TokenIssuer) ValidateProjectToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &projectClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.publicKey, nil
	}, jwt.WithIssuer(t.issuer), jwt.WithAudience(t.audience))
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*projectClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token claims")
	}
	if !ident.IsValidProjectID(claims.ProjectID) {
		return "", errors.New("token carries an invalid project id")
	}
	return claims.ProjectID, nil
}

var _ ports.TokenIssuer = (*TokenIssuer)(nil)
