package beneficiaries

import (
	"strconv"
	"strings"
	"time"

	"github.com/beevik/guid"
)

// Beneficiary is a saved transfer recipient. Exactly one of Email or
// CardNumber identifies it.
type Beneficiary struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email,omitempty"`
	CardNumber string    `json:"card_number,omitempty"`
	Bank       string    `json:"bank,omitempty"`
	Branch     string    `json:"branch,omitempty"`
	AddedAt    time.Time `json:"added_at"`
}

func NewBeneficiary(name, email, cardNumber, bank, branch string) *Beneficiary {
	return &Beneficiary{
		ID:         guid.NewString(),
		Name:       strings.TrimSpace(name),
		Email:      strings.TrimSpace(email),
		CardNumber: NormalizeCardNumber(cardNumber),
		Bank:       strings.TrimSpace(bank),
		Branch:     strings.TrimSpace(branch),
		AddedAt:    time.Now().UTC(),
	}
}

// MaskedCard keeps the last four digits only.
func (b Beneficiary) MaskedCard() string {
	if len(b.CardNumber) <= 4 {
		return b.CardNumber
	}

	return strings.Repeat("*", len(b.CardNumber)-4) + b.CardNumber[len(b.CardNumber)-4:]
}

func NormalizeCardNumber(number string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(number))
}

// ValidateCardNumber checks length and the Luhn checksum.
func ValidateCardNumber(number string) bool {
	number = NormalizeCardNumber(number)
	if len(number) < 12 || len(number) > 19 {
		return false
	}

	value, err := strconv.ParseUint(number, 10, 64)
	if err != nil {
		return false
	}

	return (value%10+checkSum(value/10))%10 == 0
}

func checkSum(number uint64) uint64 {
	var luhn uint64

	for i := 0; number > 0; i++ {
		cur := number % 10

		if i%2 == 0 {
			cur = cur * 2
			if cur > 9 {
				cur = cur%10 + cur/10
			}
		}

		luhn += cur
		number = number / 10
	}
	return luhn % 10
}

// List is an ordered collection keyed by ID.
type List []Beneficiary

func (l List) Find(id string) (Beneficiary, bool) {
	for _, b := range l {
		if b.ID == id {
			return b, true
		}
	}

	return Beneficiary{}, false
}

func (l List) Without(id string) (List, bool) {
	result := make(List, 0, len(l))
	removed := false

	for _, b := range l {
		if b.ID == id {
			removed = true
			continue
		}
		result = append(result, b)
	}

	return result, removed
}

// HasRecipient reports whether an entry with the same email or card exists.
func (l List) HasRecipient(email, cardNumber string) bool {
	cardNumber = NormalizeCardNumber(cardNumber)

	for _, b := range l {
		if email != "" && strings.EqualFold(b.Email, email) {
			return true
		}
		if cardNumber != "" && b.CardNumber == cardNumber {
			return true
		}
	}

	return false
}
