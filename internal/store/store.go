package store

import (
	"context"

	"banking-client/internal/models/history"
)

// Fixed keys of the local key-value storage.
const (
	KeyAuthToken     = "authToken"
	KeyUser          = "user"
	KeyFaceID        = "faceIDEnabled"
	KeyBeneficiaries = "beneficiaries"
)

// Store is the device-local persistence used by the session. Get returns
// errs.ErrNotFound for a missing key.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error

	// AddEntry fails with errs.ErrDuplicateEntry when the idempotency key
	// was already journaled.
	AddEntry(ctx context.Context, entry history.Entry) error
	UpdateEntryStatus(ctx context.Context, id string, status history.Status, message string) error
	// ListEntries returns entries oldest first. An empty kind means all.
	ListEntries(ctx context.Context, kind history.Kind) ([]history.Entry, error)

	Close() error
}
