package service

import (
	"context"

	"github.com/anthanhphan/go-files-manager/internal/api/port"
	"github.com/anthanhphan/gosdk/logger"
)

// statsService backs the unauthenticated status/stats endpoints.
type statsService struct {
	files    port.FileRepository
	users    port.UserRepository
	tokens   port.TokenStore
	dbHealth port.Pinger
}

// newStatsService creates the stats use-case service.
func newStatsService(files port.FileRepository, users port.UserRepository, tokens port.TokenStore, dbHealth port.Pinger) *statsService {
	return &statsService{files: files, users: users, tokens: tokens, dbHealth: dbHealth}
}

// status pings both backing stores. An unreachable store is reported,
// not an error; the endpoint itself always succeeds.
func (s *statsService) status(ctx context.Context) port.Status {
	st := port.Status{Redis: true, DB: true}

	if err := s.tokens.Ping(ctx); err != nil {
		logger.Warnw("Redis ping failed", "error", err.Error())
		st.Redis = false
	}
	if err := s.dbHealth.Ping(ctx); err != nil {
		logger.Warnw("DB ping failed", "error", err.Error())
		st.DB = false
	}
	return st
}

// stats returns the user and file collection counts.
func (s *statsService) stats(ctx context.Context) (port.Stats, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return port.Stats{}, err
	}
	files, err := s.files.Count(ctx)
	if err != nil {
		return port.Stats{}, err
	}
	return port.Stats{Users: users, Files: files}, nil
}
