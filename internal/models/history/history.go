package history

import (
	"encoding/json"
	"time"

	"github.com/beevik/guid"

	"banking-client/internal/models/money"
)

type Kind string

const (
	KindTransfer Kind = "transfer"
	KindDeposit  Kind = "deposit"
	KindBill     Kind = "bill"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Entry is one locally journaled money movement.
type Entry struct {
	ID             string      `json:"id"`
	Kind           Kind        `json:"kind"`
	Counterparty   string      `json:"counterparty"`
	Amount         money.Money `json:"amount"`
	Currency       string      `json:"currency"`
	IdempotencyKey string      `json:"idempotency_key"`
	Status         Status      `json:"status"`
	Message        string      `json:"message,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
}

func NewEntry(kind Kind, counterparty string, amount money.Money, currency, idempotencyKey string) *Entry {
	return &Entry{
		ID:             guid.NewString(),
		Kind:           kind,
		Counterparty:   counterparty,
		Amount:         amount,
		Currency:       currency,
		IdempotencyKey: idempotencyKey,
		Status:         StatusPending,
		CreatedAt:      time.Now().UTC(),
	}
}

func (e Entry) MarshalJSON() ([]byte, error) {
	type EntryAlias Entry

	aliasValue := struct {
		EntryAlias
		CreatedAt string `json:"created_at"`
	}{
		EntryAlias: EntryAlias(e),
		CreatedAt:  e.CreatedAt.Format(time.RFC3339),
	}

	return json.Marshal(aliasValue)
}

func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindTransfer, KindDeposit, KindBill:
		return Kind(s), true
	}

	return "", false
}
