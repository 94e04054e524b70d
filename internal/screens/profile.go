package screens

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"banking-client/internal/models/users"
	"banking-client/internal/session"
	"banking-client/internal/validate"
)

const UpdateErrPrefix = "Error by update profile"

type ProfileForm struct {
	Username           string
	Email              string
	PhoneNumber        string
	LanguagePreference string
}

type ProfileScreen struct {
	machine
	sess    *session.Session
	backend Backend
	logger  *slog.Logger
}

func NewProfileScreen(sess *session.Session, backend Backend, logger *slog.Logger) *ProfileScreen {
	return &ProfileScreen{
		sess:    sess,
		backend: backend,
		logger:  logger,
	}
}

func (s *ProfileScreen) Show(ctx context.Context) users.User {
	return s.sess.Profile(ctx)
}

func (s *ProfileScreen) FaceID(ctx context.Context) bool {
	return s.sess.FaceID(ctx)
}

// Update sends the changed fields with PUT /users. A new email or username
// is carried into the stored session.
func (s *ProfileScreen) Update(ctx context.Context, data ProfileForm) (users.User, error) {
	if err := s.begin(); err != nil {
		return users.User{}, err
	}

	form := validate.Form{}
	form.Required("username", data.Username)
	form.Email("email", data.Email)
	if validate.Required(data.PhoneNumber) {
		form.Phone("phone_number", data.PhoneNumber)
	}
	if err := form.Err(); err != nil {
		return users.User{}, s.finish("", err)
	}

	current, err := s.sess.Require(ctx)
	if err != nil {
		return users.User{}, s.finish("", err)
	}

	user, err := s.backend.UpdateUser(ctx, current.Token, users.Update{
		Email:              strings.TrimSpace(data.Email),
		Username:           strings.TrimSpace(data.Username),
		PhoneNumber:        strings.TrimSpace(data.PhoneNumber),
		LanguagePreference: data.LanguagePreference,
	})
	if err != nil {
		return users.User{}, s.finish("", s.sess.HandleError(ctx, err))
	}

	if err := s.sess.CacheUser(ctx, user); err != nil {
		return users.User{}, s.finish("", fmt.Errorf("%s - %w", UpdateErrPrefix, err))
	}

	current.UserEmail = user.Email
	current.Username = user.Username
	if err := s.sess.Save(ctx, current); err != nil {
		return users.User{}, s.finish("", fmt.Errorf("%s - %w", UpdateErrPrefix, err))
	}

	return user, s.finish("Profile updated successfully", nil)
}

func (s *ProfileScreen) ChangePassword(ctx context.Context, currentPassword, newPassword, confirmation string) error {
	if err := s.begin(); err != nil {
		return err
	}

	form := validate.Form{}
	form.Required("current_password", currentPassword)
	form.Password("new_password", newPassword)
	form.Confirm("confirm_password", newPassword, confirmation)
	if err := form.Err(); err != nil {
		return s.finish("", err)
	}

	current, err := s.sess.Require(ctx)
	if err != nil {
		return s.finish("", err)
	}

	_, err = s.backend.UpdateUser(ctx, current.Token, users.Update{
		Email:           current.UserEmail,
		Password:        newPassword,
		CurrentPassword: currentPassword,
	})
	if err != nil {
		return s.finish("", s.sess.HandleError(ctx, err))
	}

	return s.finish("Password changed successfully", nil)
}

func (s *ProfileScreen) SetFaceID(ctx context.Context, enabled bool) error {
	if err := s.begin(); err != nil {
		return err
	}

	message := "Face ID disabled"
	if enabled {
		message = "Face ID enabled"
	}

	return s.finish(message, s.sess.SetFaceID(ctx, enabled))
}

func (s *ProfileScreen) Logout(ctx context.Context) error {
	if err := s.begin(); err != nil {
		return err
	}

	if err := s.sess.Clear(ctx); err != nil {
		return s.finish("", err)
	}

	if s.logger != nil {
		s.logger.Info("logged out")
	}

	return s.finish("Logged out", nil)
}
