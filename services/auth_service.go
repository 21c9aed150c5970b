package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"talkboard_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMissingToken is returned when the request carries no bearer token.
	ErrMissingToken = errors.New("missing bearer token")
	// ErrInvalidToken is returned for tokens that fail parsing or signature
	// verification, or that lack a subject.
	ErrInvalidToken = errors.New("invalid identity token")
	// ErrNotAllowed is returned for authenticated accounts that are not on
	// the board's allow-list.
	ErrNotAllowed = errors.New("account is not allowed to use the board")
)

// DirectoryStore is the allow-list lookup the auth gate needs.
// *DynamoService satisfies it.
type DirectoryStore interface {
	GetItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error)
}

// AuthService turns the identity provider's bearer token into an Identity and
// gates it on the allowed-users directory. The provider mints the token; this
// service only verifies and reads it.
type AuthService struct {
	Dynamo DirectoryStore
	Secret []byte
}

// identityClaims are the provider claims this app reads. Claim names follow
// the provider's ID token format.
type identityClaims struct {
	jwt.RegisteredClaims
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// IdentityFromRequest extracts and verifies the bearer token, without
// consulting the allow-list.
func (s *AuthService) IdentityFromRequest(r *http.Request) (models.Identity, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return models.Identity{}, ErrMissingToken
	}
	tokenString := strings.TrimPrefix(header, "Bearer ")
	if tokenString == header || strings.TrimSpace(tokenString) == "" {
		return models.Identity{}, ErrMissingToken
	}

	var claims identityClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.Secret, nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return models.Identity{}, ErrInvalidToken
	}

	return models.Identity{
		ID:          claims.Subject,
		Email:       claims.Email,
		DisplayName: claims.Name,
		PhotoURL:    claims.Picture,
	}, nil
}

// Authenticate verifies the bearer token and checks the account against the
// allow-list. Accounts with no directory record get ErrNotAllowed.
func (s *AuthService) Authenticate(ctx context.Context, r *http.Request) (models.Identity, error) {
	identity, err := s.IdentityFromRequest(r)
	if err != nil {
		return models.Identity{}, err
	}

	if _, err := s.lookupAllowedUser(ctx, identity.Email); err != nil {
		return models.Identity{}, err
	}
	return identity, nil
}

// IsAllowed reports whether the email has an allow-list record.
func (s *AuthService) IsAllowed(ctx context.Context, email string) (bool, error) {
	_, err := s.lookupAllowedUser(ctx, email)
	if errors.Is(err, ErrNotAllowed) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *AuthService) lookupAllowedUser(ctx context.Context, email string) (models.AllowedUser, error) {
	key := map[string]types.AttributeValue{
		"email": &types.AttributeValueMemberS{Value: email},
	}
	item, err := s.Dynamo.GetItem(ctx, models.AllowedUsersTable, key)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return models.AllowedUser{}, ErrNotAllowed
		}
		return models.AllowedUser{}, fmt.Errorf("failed to look up allowed user %s: %w", email, err)
	}

	var allowed models.AllowedUser
	if err := attributevalue.UnmarshalMap(item, &allowed); err != nil {
		return models.AllowedUser{}, fmt.Errorf("failed to parse allowed user record: %w", err)
	}
	return allowed, nil
}
