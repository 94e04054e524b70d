// Package session keeps the client's authentication state, cached profile and
// device-local preferences on top of a store.Store. One Session value is
// handed to every screen controller.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"banking-client/internal/auth"
	"banking-client/internal/errs"
	"banking-client/internal/models/beneficiaries"
	"banking-client/internal/models/history"
	"banking-client/internal/models/users"
	"banking-client/internal/store"
)

type Session struct {
	store    store.Store
	currency string
	logger   *slog.Logger
	now      func() time.Time
}

func New(s store.Store, defaultCurrency string, logger *slog.Logger) *Session {
	return &Session{
		store:    s,
		currency: defaultCurrency,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *Session) DefaultCurrency() string {
	return s.currency
}

// Load returns the persisted session. ok is false when nobody is logged in
// or the stored token has expired; an expired session is cleared.
func (s *Session) Load(ctx context.Context) (users.Session, bool, error) {
	token, err := s.store.Get(ctx, store.KeyAuthToken)
	if errors.Is(err, errs.ErrNotFound) {
		return users.Session{}, false, nil
	}
	if err != nil {
		return users.Session{}, false, fmt.Errorf("unable read auth token - %w", err)
	}

	if auth.Expired(token, s.now()) {
		if s.logger != nil {
			s.logger.Info("stored token expired, clearing session")
		}
		return users.Session{}, false, s.Clear(ctx)
	}

	user, found, err := s.cachedUser(ctx)
	if err != nil {
		return users.Session{}, false, err
	}

	result := users.Session{Token: token}
	if found {
		result.UserEmail = user.Email
		result.Username = user.Username
	}

	return result, result.Valid(), nil
}

// Require is Load that turns an absent session into errs.ErrNoSession.
func (s *Session) Require(ctx context.Context) (users.Session, error) {
	current, ok, err := s.Load(ctx)
	if err != nil {
		return users.Session{}, err
	}

	if !ok {
		return users.Session{}, errs.ErrNoSession
	}

	return current, nil
}

// Save overwrites the stored session. The cached user is replaced unless it
// already belongs to the same email.
func (s *Session) Save(ctx context.Context, current users.Session) error {
	if err := s.store.Set(ctx, store.KeyAuthToken, current.Token); err != nil {
		return fmt.Errorf("unable save auth token - %w", err)
	}

	cached, found, err := s.cachedUser(ctx)
	if err != nil {
		return err
	}

	if found && cached.Email == current.UserEmail {
		return nil
	}

	return s.CacheUser(ctx, users.User{
		Username: current.Username,
		Email:    current.UserEmail,
		Currency: s.currency,
	})
}

// Clear forgets the session and the cached user.
func (s *Session) Clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, store.KeyAuthToken, store.KeyUser); err != nil {
		return fmt.Errorf("unable clear session - %w", err)
	}

	return nil
}

// HandleError clears the session when err is an authorization failure and
// returns err unchanged.
func (s *Session) HandleError(ctx context.Context, err error) error {
	if err == nil || !errs.IsAuth(err) {
		return err
	}

	if clearErr := s.Clear(ctx); clearErr != nil && s.logger != nil {
		s.logger.Error(fmt.Sprintf("unable drop rejected session - %v", clearErr))
	}

	return err
}

func (s *Session) CacheUser(ctx context.Context, user users.User) error {
	if user.Currency == "" {
		user.Currency = s.currency
	}

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("unable encode user - %w", err)
	}

	if err := s.store.Set(ctx, store.KeyUser, string(data)); err != nil {
		return fmt.Errorf("unable cache user - %w", err)
	}

	return nil
}

// Profile returns the cached user, or the guest profile when there is none.
func (s *Session) Profile(ctx context.Context) users.User {
	user, found, err := s.cachedUser(ctx)
	if err != nil && s.logger != nil {
		s.logger.Warn(fmt.Sprintf("unable read cached user - %v", err))
	}

	if !found {
		return users.Guest(s.currency)
	}

	return user
}

func (s *Session) cachedUser(ctx context.Context) (users.User, bool, error) {
	var user users.User

	raw, err := s.store.Get(ctx, store.KeyUser)
	if errors.Is(err, errs.ErrNotFound) {
		return user, false, nil
	}
	if err != nil {
		return user, false, fmt.Errorf("unable read cached user - %w", err)
	}

	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return user, false, fmt.Errorf("unable decode cached user - %w", err)
	}

	return user, true, nil
}

func (s *Session) FaceID(ctx context.Context) bool {
	raw, err := s.store.Get(ctx, store.KeyFaceID)
	if err != nil {
		return false
	}

	enabled, err := strconv.ParseBool(raw)

	return err == nil && enabled
}

func (s *Session) SetFaceID(ctx context.Context, enabled bool) error {
	if err := s.store.Set(ctx, store.KeyFaceID, strconv.FormatBool(enabled)); err != nil {
		return fmt.Errorf("unable save face ID flag - %w", err)
	}

	return nil
}

func (s *Session) Beneficiaries(ctx context.Context) (beneficiaries.List, error) {
	list := beneficiaries.List{}

	raw, err := s.store.Get(ctx, store.KeyBeneficiaries)
	if errors.Is(err, errs.ErrNotFound) {
		return list, nil
	}
	if err != nil {
		return list, fmt.Errorf("unable read beneficiaries - %w", err)
	}

	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return beneficiaries.List{}, fmt.Errorf("unable decode beneficiaries - %w", err)
	}

	return list, nil
}

func (s *Session) SaveBeneficiaries(ctx context.Context, list beneficiaries.List) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("unable encode beneficiaries - %w", err)
	}

	if err := s.store.Set(ctx, store.KeyBeneficiaries, string(data)); err != nil {
		return fmt.Errorf("unable save beneficiaries - %w", err)
	}

	return nil
}

// Record journals a pending money movement.
func (s *Session) Record(ctx context.Context, entry history.Entry) error {
	if err := s.store.AddEntry(ctx, entry); err != nil {
		return fmt.Errorf("unable journal %s - %w", entry.Kind, err)
	}

	return nil
}

func (s *Session) Resolve(ctx context.Context, id string, status history.Status, message string) error {
	if err := s.store.UpdateEntryStatus(ctx, id, status, message); err != nil {
		return fmt.Errorf("unable resolve entry '%s' - %w", id, err)
	}

	return nil
}

func (s *Session) History(ctx context.Context, kind history.Kind) ([]history.Entry, error) {
	return s.store.ListEntries(ctx, kind)
}
