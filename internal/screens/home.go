package screens

import (
	"context"
	"fmt"
	"log/slog"

	"banking-client/internal/models/users"
	"banking-client/internal/session"
)

const BalanceErrPrefix = "Error by refresh balance"

// HomeScreen shows the cached profile and refreshes the balance.
type HomeScreen struct {
	machine
	sess    *session.Session
	backend Backend
}

func NewHomeScreen(sess *session.Session, backend Backend) *HomeScreen {
	return &HomeScreen{
		sess:    sess,
		backend: backend,
	}
}

func (s *HomeScreen) Profile(ctx context.Context) users.User {
	return s.sess.Profile(ctx)
}

// Refresh fetches /balance and caches the result.
func (s *HomeScreen) Refresh(ctx context.Context) (users.User, error) {
	if err := s.begin(); err != nil {
		return users.User{}, err
	}

	current, err := s.sess.Require(ctx)
	if err != nil {
		return users.User{}, s.finish("", err)
	}

	user, err := s.backend.Balance(ctx, current.Token, current.UserEmail)
	if err != nil {
		return users.User{}, s.finish("", s.sess.HandleError(ctx, err))
	}

	if err := s.sess.CacheUser(ctx, user); err != nil {
		return users.User{}, s.finish("", fmt.Errorf("%s - %w", BalanceErrPrefix, err))
	}

	return user, s.finish("", nil)
}

// syncProfile refreshes the cached user after a session change or a money
// movement. Failures are logged only.
func syncProfile(ctx context.Context, sess *session.Session, backend Backend, current users.Session, logger *slog.Logger) {
	user, err := backend.Balance(ctx, current.Token, current.UserEmail)
	if err == nil {
		err = sess.CacheUser(ctx, user)
	} else {
		err = sess.HandleError(ctx, err)
	}

	if err != nil && logger != nil {
		logger.Warn(fmt.Sprintf("%s - %v", BalanceErrPrefix, err))
	}
}
