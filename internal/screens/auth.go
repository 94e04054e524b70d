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

const (
	LoginErrPrefix  = "Error by login"
	SignupErrPrefix = "Error by signup"

	ForgotPasswordMessage = "If an account exists for this email, reset instructions have been sent."
)

type LoginScreen struct {
	machine
	sess    *session.Session
	backend Backend
	logger  *slog.Logger
}

func NewLoginScreen(sess *session.Session, backend Backend, logger *slog.Logger) *LoginScreen {
	return &LoginScreen{
		sess:    sess,
		backend: backend,
		logger:  logger,
	}
}

// Submit logs in and persists the session. The cached profile is refreshed
// from /balance when possible.
func (s *LoginScreen) Submit(ctx context.Context, email, password string) (users.Session, error) {
	if err := s.begin(); err != nil {
		return users.Session{}, err
	}

	form := validate.Form{}
	form.Email("email", email)
	form.Required("password", password)
	if err := form.Err(); err != nil {
		return users.Session{}, s.finish("", err)
	}

	current, err := s.backend.Login(ctx, users.Credentials{
		Email:    strings.TrimSpace(email),
		Password: password,
	})
	if err != nil {
		return users.Session{}, s.finish("", err)
	}

	if err := s.sess.Save(ctx, current); err != nil {
		return users.Session{}, s.finish("", fmt.Errorf("%s - %w", LoginErrPrefix, err))
	}

	syncProfile(ctx, s.sess, s.backend, current, s.logger)

	return current, s.finish(fmt.Sprintf("Welcome back, %s", displayName(current)), nil)
}

// ForgotPassword only validates the address: the backend has no reset endpoint.
func (s *LoginScreen) ForgotPassword(_ context.Context, email string) (string, error) {
	if err := s.begin(); err != nil {
		return "", err
	}

	form := validate.Form{}
	form.Email("email", email)
	if err := form.Err(); err != nil {
		return "", s.finish("", err)
	}

	return ForgotPasswordMessage, s.finish(ForgotPasswordMessage, nil)
}

type SignupForm struct {
	Username        string
	Email           string
	PhoneNumber     string
	Password        string
	ConfirmPassword string
}

type SignupScreen struct {
	machine
	sess    *session.Session
	backend Backend
	logger  *slog.Logger
}

func NewSignupScreen(sess *session.Session, backend Backend, logger *slog.Logger) *SignupScreen {
	return &SignupScreen{
		sess:    sess,
		backend: backend,
		logger:  logger,
	}
}

func (s *SignupScreen) Submit(ctx context.Context, data SignupForm) (users.Session, error) {
	if err := s.begin(); err != nil {
		return users.Session{}, err
	}

	form := validate.Form{}
	form.Required("username", data.Username)
	form.Email("email", data.Email)
	if validate.Required(data.PhoneNumber) {
		form.Phone("phone_number", data.PhoneNumber)
	}
	form.Password("password", data.Password)
	form.Confirm("confirm_password", data.Password, data.ConfirmPassword)
	if err := form.Err(); err != nil {
		return users.Session{}, s.finish("", err)
	}

	current, err := s.backend.Register(ctx, users.Registration{
		Email:       strings.TrimSpace(data.Email),
		Username:    strings.TrimSpace(data.Username),
		Password:    data.Password,
		PhoneNumber: strings.TrimSpace(data.PhoneNumber),
	})
	if err != nil {
		return users.Session{}, s.finish("", err)
	}

	if err := s.sess.Save(ctx, current); err != nil {
		return users.Session{}, s.finish("", fmt.Errorf("%s - %w", SignupErrPrefix, err))
	}

	syncProfile(ctx, s.sess, s.backend, current, s.logger)

	return current, s.finish("Account created successfully", nil)
}

func displayName(current users.Session) string {
	if current.Username != "" {
		return current.Username
	}

	return current.UserEmail
}
