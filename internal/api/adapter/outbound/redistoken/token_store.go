package redistoken

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthanhphan/go-files-manager/internal/api/port"
	"github.com/redis/go-redis/v9"
)

// keyPrefix matches the convention of the token issuer: one key per live
// session, expiry handled by the issuer's TTL.
const keyPrefix = "auth_"

// TokenStore implements port.TokenStore over redis.
type TokenStore struct {
	client *redis.Client
}

var _ port.TokenStore = (*TokenStore)(nil)

func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

// UserIDForToken resolves token to the user id string stored under
// auth_<token>. An absent or expired key yields port.ErrNotFound.
func (s *TokenStore) UserIDForToken(ctx context.Context, token string) (string, error) {
	userID, err := s.client.Get(ctx, keyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", port.ErrNotFound
		}
		return "", fmt.Errorf("token lookup: %w", err)
	}
	return userID, nil
}

// Ping reports whether redis is reachable.
func (s *TokenStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
