package services

import (
	"context"
	"sync"

	"script9/models"
	"script9/services/logger"
)

type UserServiceOptions struct {
	Users  UserRepository
	Logger logger.Logger
}

// UserService keeps the local users table in step with the auth provider's
// profiles. Each (id, role, email, name) tuple is written once per process.
type UserService struct {
	users  UserRepository
	logger logger.Logger
	seen   sync.Map
}

func NewUserService(opts UserServiceOptions) *UserService {
	s := &UserService{users: opts.Users, logger: opts.Logger}
	if s.logger == nil {
		s.logger = logger.NewNop()
	}
	return s
}

// SyncProfile upserts the profile unless an identical one was already stored.
func (s *UserService) SyncProfile(ctx context.Context, profile models.User) error {
	if profile.ID == "" {
		return nil
	}
	if prev, ok := s.seen.Load(profile.ID); ok && prev.(models.User) == profile {
		return nil
	}
	row := profile
	if err := s.users.Upsert(ctx, &row); err != nil {
		s.logger.WithFields(logger.Fields{"userId": profile.ID}).Warn("user sync: %v", err)
		return err
	}
	s.seen.Store(profile.ID, profile)
	return nil
}
