package service

import (
	"context"
	"errors"

	"github.com/anthanhphan/go-files-manager/internal/api/domain"
	"github.com/anthanhphan/go-files-manager/internal/api/port"
	"github.com/anthanhphan/gosdk/logger"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// authService resolves bearer tokens to users.
type authService struct {
	tokens port.TokenStore
	users  port.UserRepository
}

// newAuthService creates the auth use-case service.
func newAuthService(tokens port.TokenStore, users port.UserRepository) *authService {
	return &authService{tokens: tokens, users: users}
}

// resolve maps a token to its user. A missing token, an unknown token, a
// malformed user id mapping, or a vanished user all resolve to (nil, nil):
// the requester is anonymous, not in error. Only infrastructure failures
// surface as errors.
func (s *authService) resolve(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, nil
	}

	userID, err := s.tokens.UserIDForToken(ctx, token)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	oid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		logger.Warnw("Token maps to malformed user id", "user_id", userID)
		return nil, nil
	}

	user, err := s.users.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// requireUser resolves the token and turns an anonymous result into
// port.ErrUnauthorized for the operations that demand an identity.
func (s *authService) requireUser(ctx context.Context, token string) (*domain.User, error) {
	user, err := s.resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, port.ErrUnauthorized
	}
	return user, nil
}
