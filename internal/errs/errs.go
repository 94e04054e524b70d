package errs

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrNoSession         = errors.New("session expired, please login again")
	ErrSubmitInProgress  = errors.New("request is already being processed")
	ErrDuplicateEntry    = errors.New("entry already exists")
	ErrLocationRequired  = errors.New("location is required to search for banks")
	ErrUnexpectedPayload = errors.New("unexpected response payload")
)

const NetworkMessage = "Please check your internet connection."

// ValidationError carries field-level problems found before (or reported
// instead of) a successful request.
type ValidationError struct {
	Fields map[string][]string
}

func NewValidationError(field string, messages ...string) *ValidationError {
	e := &ValidationError{Fields: map[string][]string{}}
	e.Add(field, messages...)

	return e
}

func (e *ValidationError) Add(field string, messages ...string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}

	e.Fields[field] = append(e.Fields[field], messages...)
}

func (e *ValidationError) Empty() bool {
	return e == nil || len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], ", ")))
	}

	return strings.Join(parts, "; ")
}

// AuthError means the backend rejected the credentials or the bearer token.
// The session must be dropped when one is seen.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "authorization failed"
	}

	return e.Message
}

// BusinessError is a domain failure reported by the backend, shown verbatim.
type BusinessError struct {
	Status  int
	Message string
}

func (e *BusinessError) Error() string {
	return e.Message
}

type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s (%v)", NetworkMessage, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// UserMessage returns the text a screen shows for err.
func UserMessage(err error) string {
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return NetworkMessage
	}

	var bizErr *BusinessError
	if errors.As(err, &bizErr) {
		return bizErr.Message
	}

	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.Error()
	}

	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return valErr.Error()
	}

	return err.Error()
}

func IsAuth(err error) bool {
	var authErr *AuthError

	return errors.As(err, &authErr)
}
